package services

import (
	"context"
	"fmt"

	"github.com/anonto42/orion/backend/internal/models"
	"github.com/anonto42/orion/backend/internal/repositories"
)

// StoryService manages session-only stories
type StoryService struct {
	stories repositories.StoryRepository
	users   repositories.UserRepository
	clock   Clock
}

func NewStoryService(stories repositories.StoryRepository, users repositories.UserRepository, clock Clock) *StoryService {
	return &StoryService{stories: stories, users: users, clock: clock}
}

func (s *StoryService) CreateStory(ctx context.Context, userID, imageURL string) (*models.Story, error) {
	story := &models.Story{
		UserID:    userID,
		ImageURL:  imageURL,
		CreatedAt: s.clock.now(),
	}
	if err := s.stories.CreateStory(ctx, story); err != nil {
		return nil, fmt.Errorf("failed to create story: %w", err)
	}
	return story, nil
}

// ListStories returns stories newest first with their author attached.
func (s *StoryService) ListStories(ctx context.Context) ([]models.Story, error) {
	stories, err := s.stories.GetStories(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load stories: %w", err)
	}
	users, err := s.users.GetUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load users: %w", err)
	}

	dir := newDirectory(users)
	for i := range stories {
		stories[i].User = dir.lookup(stories[i].UserID)
	}
	return stories, nil
}

func (s *StoryService) DeleteStory(ctx context.Context, storyID string) error {
	return s.stories.DeleteStory(ctx, storyID)
}

func (s *StoryService) MarkViewed(ctx context.Context, storyID string) error {
	return s.stories.MarkViewed(ctx, storyID)
}

// Clear drops all stories, e.g. on logout.
func (s *StoryService) Clear(ctx context.Context) error {
	return s.stories.Clear(ctx)
}
