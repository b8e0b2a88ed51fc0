package services

import (
	"context"
	"fmt"

	"github.com/anonto42/orion/backend/internal/models"
	"github.com/anonto42/orion/backend/internal/repositories"
)

// ReelService handles reel creation, likes and the comment counter
type ReelService struct {
	reels repositories.ReelRepository
	users repositories.UserRepository
}

// NewReelService creates a new reel service
func NewReelService(reels repositories.ReelRepository, users repositories.UserRepository) *ReelService {
	return &ReelService{reels: reels, users: users}
}

func (s *ReelService) CreateReel(ctx context.Context, userID, desc, videoURL, song string, isVideo bool) (*models.Reel, error) {
	reel := &models.Reel{
		UserID:   userID,
		Desc:     desc,
		Song:     song,
		VideoURL: videoURL,
		IsVideo:  isVideo,
	}
	if err := s.reels.CreateReel(ctx, reel); err != nil {
		return nil, fmt.Errorf("failed to create reel: %w", err)
	}
	return reel, nil
}

func (s *ReelService) GetReel(ctx context.Context, reelID string) (*models.Reel, error) {
	reel, err := s.reels.GetReelByID(ctx, reelID)
	if err != nil {
		return nil, mapRepoErr(err)
	}
	return reel, nil
}

// ToggleLike flips userID in the reel's likes. A missing reel is ignored.
func (s *ReelService) ToggleLike(ctx context.Context, userID, reelID string) (bool, error) {
	return s.reels.ToggleLike(ctx, reelID, userID)
}

// AddComment counts a comment against the reel. Reel comments carry no text.
func (s *ReelService) AddComment(ctx context.Context, reelID string) error {
	return s.reels.IncrementCommentsCount(ctx, reelID)
}

// ListReels returns every reel with its author's name and avatar.
func (s *ReelService) ListReels(ctx context.Context) ([]ReelView, error) {
	reels, err := s.reels.GetAllReels(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load reels: %w", err)
	}
	users, err := s.users.GetUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load users: %w", err)
	}

	dir := newDirectory(users)
	views := make([]ReelView, 0, len(reels))
	for _, r := range reels {
		views = append(views, dir.hydrateReel(r))
	}
	return views, nil
}
