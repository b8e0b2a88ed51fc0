package services

import (
	"context"
	"fmt"

	"github.com/anonto42/orion/backend/internal/models"
	"github.com/anonto42/orion/backend/internal/repositories"
)

// UserService handles profile reads, edits and the follow graph
type UserService struct {
	users repositories.UserRepository
}

// NewUserService creates a new user service
func NewUserService(users repositories.UserRepository) *UserService {
	return &UserService{users: users}
}

// GetUser returns the sanitized user or ErrNotFound
func (s *UserService) GetUser(ctx context.Context, id string) (*models.User, error) {
	user, err := s.users.GetUserByID(ctx, id)
	if err != nil {
		return nil, mapRepoErr(err)
	}
	safe := user.Sanitized()
	return &safe, nil
}

// UpdateProfile merges the provided fields into the stored user.
func (s *UserService) UpdateProfile(ctx context.Context, userID string, req models.UpdateUserRequest) (*models.User, error) {
	updated, err := s.users.UpdateUser(ctx, userID, func(u *models.User) {
		if req.Name != nil {
			u.Name = *req.Name
		}
		if req.Handle != nil {
			u.Handle = NormalizeHandle(*req.Handle)
		}
		if req.Avatar != nil {
			u.Avatar = *req.Avatar
		}
		if req.Cover != nil {
			u.Cover = *req.Cover
		}
		if req.Bio != nil {
			u.Bio = *req.Bio
		}
	})
	if err != nil {
		return nil, mapRepoErr(err)
	}
	safe := updated.Sanitized()
	return &safe, nil
}

// ToggleFollow flips the follow edge and reports whether currentUserID now follows targetUserID.
func (s *UserService) ToggleFollow(ctx context.Context, currentUserID, targetUserID string) (bool, error) {
	following, err := s.users.ToggleFollow(ctx, currentUserID, targetUserID)
	if err != nil {
		return false, fmt.Errorf("failed to toggle follow: %w", err)
	}
	return following, nil
}

func (s *UserService) SearchUsers(ctx context.Context, query string) ([]models.User, error) {
	matches, err := s.users.SearchUsers(ctx, query)
	if err != nil {
		return nil, err
	}
	out := make([]models.User, 0, len(matches))
	for _, u := range matches {
		out = append(out, u.Sanitized())
	}
	return out, nil
}
