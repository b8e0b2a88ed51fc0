package repositories

import (
	"context"
	"slices"
	"time"

	"github.com/anonto42/orion/backend/internal/models"
	"github.com/anonto42/orion/backend/pkg/ids"
)

// StoryRepository defines the interface for story operations
type StoryRepository interface {
	CreateStory(ctx context.Context, story *models.Story) error
	GetStories(ctx context.Context) ([]models.Story, error)
	DeleteStory(ctx context.Context, id string) error
	MarkViewed(ctx context.Context, id string) error
	Clear(ctx context.Context) error
}

// StoreStoryRepository keeps stories in a collection. The server binds it to a
// session-only memory store, so stories do not survive a restart.
type StoreStoryRepository struct {
	stories *Collection[models.Story]
}

func NewStoreStoryRepository(c *Collections) *StoreStoryRepository {
	return &StoreStoryRepository{stories: Open[models.Story](c, StoriesKey)}
}

func (r *StoreStoryRepository) CreateStory(ctx context.Context, story *models.Story) error {
	if story.ID == "" {
		story.ID = ids.New()
	}
	if story.CreatedAt.IsZero() {
		story.CreatedAt = time.Now()
	}
	// the author is hydrated on read
	story.User = nil

	return r.stories.Update(ctx, func(stories []models.Story) ([]models.Story, error) {
		return append([]models.Story{*story}, stories...), nil
	})
}

func (r *StoreStoryRepository) GetStories(ctx context.Context) ([]models.Story, error) {
	return r.stories.ReadAll(ctx)
}

func (r *StoreStoryRepository) DeleteStory(ctx context.Context, id string) error {
	return r.stories.Update(ctx, func(stories []models.Story) ([]models.Story, error) {
		idx := slices.IndexFunc(stories, func(s models.Story) bool { return s.ID == id })
		if idx == -1 {
			return nil, ErrSkipWrite
		}
		return slices.Delete(stories, idx, idx+1), nil
	})
}

func (r *StoreStoryRepository) MarkViewed(ctx context.Context, id string) error {
	return r.stories.Update(ctx, func(stories []models.Story) ([]models.Story, error) {
		idx := slices.IndexFunc(stories, func(s models.Story) bool { return s.ID == id })
		if idx == -1 || stories[idx].IsViewed {
			return nil, ErrSkipWrite
		}
		stories[idx].IsViewed = true
		return stories, nil
	})
}

// Clear drops every story.
func (r *StoreStoryRepository) Clear(ctx context.Context) error {
	return r.stories.WriteAll(ctx, nil)
}
