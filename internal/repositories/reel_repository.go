package repositories

import (
	"context"
	"slices"

	"github.com/anonto42/orion/backend/internal/models"
	"github.com/anonto42/orion/backend/pkg/ids"
)

// ReelRepository defines the interface for reel data operations
type ReelRepository interface {
	CreateReel(ctx context.Context, reel *models.Reel) error
	GetReelByID(ctx context.Context, id string) (*models.Reel, error)
	GetAllReels(ctx context.Context) ([]models.Reel, error)
	ToggleLike(ctx context.Context, reelID, userID string) (bool, error)
	IncrementCommentsCount(ctx context.Context, reelID string) error
}

// StoreReelRepository implements ReelRepository over the reels collection
type StoreReelRepository struct {
	reels *Collection[models.Reel]
}

// NewStoreReelRepository creates a new StoreReelRepository
func NewStoreReelRepository(c *Collections) *StoreReelRepository {
	return &StoreReelRepository{reels: Open[models.Reel](c, ReelsKey)}
}

// CreateReel puts a new reel at the head of the collection
func (r *StoreReelRepository) CreateReel(ctx context.Context, reel *models.Reel) error {
	if reel.ID == "" {
		reel.ID = ids.New()
	}
	reel.Likes = []string{}
	reel.Comments = 0

	return r.reels.Update(ctx, func(reels []models.Reel) ([]models.Reel, error) {
		return append([]models.Reel{*reel}, reels...), nil
	})
}

func (r *StoreReelRepository) GetReelByID(ctx context.Context, id string) (*models.Reel, error) {
	reels, err := r.reels.ReadAll(ctx)
	if err != nil {
		return nil, err
	}
	for i := range reels {
		if reels[i].ID == id {
			return &reels[i], nil
		}
	}
	return nil, ErrNotFound
}

func (r *StoreReelRepository) GetAllReels(ctx context.Context) ([]models.Reel, error) {
	return r.reels.ReadAll(ctx)
}

func (r *StoreReelRepository) ToggleLike(ctx context.Context, reelID, userID string) (bool, error) {
	liked := false
	err := r.reels.Update(ctx, func(reels []models.Reel) ([]models.Reel, error) {
		idx := slices.IndexFunc(reels, func(rl models.Reel) bool { return rl.ID == reelID })
		if idx == -1 {
			return nil, ErrSkipWrite
		}
		reels[idx].Likes, liked = toggleID(reels[idx].Likes, userID)
		return reels, nil
	})
	return liked, err
}

// IncrementCommentsCount bumps the stored comment counter of a reel. Unknown reels are ignored.
func (r *StoreReelRepository) IncrementCommentsCount(ctx context.Context, reelID string) error {
	return r.reels.Update(ctx, func(reels []models.Reel) ([]models.Reel, error) {
		idx := slices.IndexFunc(reels, func(rl models.Reel) bool { return rl.ID == reelID })
		if idx == -1 {
			return nil, ErrSkipWrite
		}
		reels[idx].Comments++
		return reels, nil
	})
}
