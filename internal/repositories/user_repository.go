package repositories

import (
	"context"
	"slices"
	"strings"

	"github.com/anonto42/orion/backend/internal/models"
	"github.com/anonto42/orion/backend/pkg/ids"
)

// UserRepository defines the interface for user data operations
type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUsers(ctx context.Context) ([]models.User, error)
	UpdateUser(ctx context.Context, id string, mutate func(*models.User)) (*models.User, error)
	ToggleFollow(ctx context.Context, currentUserID, targetUserID string) (bool, error)
	SearchUsers(ctx context.Context, query string) ([]models.User, error)
}

// StoreUserRepository implements UserRepository over the users collection
type StoreUserRepository struct {
	users *Collection[models.User]
}

// NewStoreUserRepository creates a new StoreUserRepository
func NewStoreUserRepository(c *Collections) *StoreUserRepository {
	return &StoreUserRepository{users: Open[models.User](c, UsersKey)}
}

// CreateUser appends a new user. Emails are unique; an ID is assigned when missing.
func (r *StoreUserRepository) CreateUser(ctx context.Context, user *models.User) error {
	return r.users.Update(ctx, func(users []models.User) ([]models.User, error) {
		for _, u := range users {
			if u.Email == user.Email {
				return nil, ErrAlreadyExists
			}
		}
		if user.ID == "" {
			user.ID = ids.New()
		}
		if user.Followers == nil {
			user.Followers = []string{}
		}
		if user.Following == nil {
			user.Following = []string{}
		}
		return append(users, *user), nil
	})
}

// GetUserByID retrieves a user by ID
func (r *StoreUserRepository) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	users, err := r.users.ReadAll(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].ID == id {
			return &users[i], nil
		}
	}
	return nil, ErrNotFound
}

// GetUserByEmail retrieves a user by exact email match
func (r *StoreUserRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	users, err := r.users.ReadAll(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].Email == email {
			return &users[i], nil
		}
	}
	return nil, ErrNotFound
}

// GetUsers retrieves all users in insertion order
func (r *StoreUserRepository) GetUsers(ctx context.Context) ([]models.User, error) {
	return r.users.ReadAll(ctx)
}

// UpdateUser applies mutate to the stored user and writes the collection back.
// The ID is preserved whatever mutate does to it.
func (r *StoreUserRepository) UpdateUser(ctx context.Context, id string, mutate func(*models.User)) (*models.User, error) {
	var updated *models.User
	err := r.users.Update(ctx, func(users []models.User) ([]models.User, error) {
		idx := slices.IndexFunc(users, func(u models.User) bool { return u.ID == id })
		if idx == -1 {
			return nil, ErrNotFound
		}
		mutate(&users[idx])
		users[idx].ID = id
		u := users[idx]
		updated = &u
		return users, nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// ToggleFollow flips currentUserID's follow of targetUserID. Both sides of the edge are
// changed in the same collection write. It returns whether current now follows target;
// unknown IDs and self-follows are a no-op returning false.
func (r *StoreUserRepository) ToggleFollow(ctx context.Context, currentUserID, targetUserID string) (bool, error) {
	following := false
	err := r.users.Update(ctx, func(users []models.User) ([]models.User, error) {
		ci := slices.IndexFunc(users, func(u models.User) bool { return u.ID == currentUserID })
		ti := slices.IndexFunc(users, func(u models.User) bool { return u.ID == targetUserID })
		if ci == -1 || ti == -1 || ci == ti {
			return nil, ErrSkipWrite
		}

		current, target := &users[ci], &users[ti]
		if slices.Contains(current.Following, targetUserID) {
			current.Following = removeID(current.Following, targetUserID)
			target.Followers = removeID(target.Followers, currentUserID)
		} else {
			current.Following = append(current.Following, targetUserID)
			if !slices.Contains(target.Followers, currentUserID) {
				target.Followers = append(target.Followers, currentUserID)
			}
			following = true
		}
		return users, nil
	})
	if err != nil {
		return false, err
	}
	return following, nil
}

// SearchUsers matches name or handle, case-insensitively
func (r *StoreUserRepository) SearchUsers(ctx context.Context, query string) ([]models.User, error) {
	users, err := r.users.ReadAll(ctx)
	if err != nil {
		return nil, err
	}
	q := strings.ToLower(strings.TrimSpace(query))
	matches := []models.User{}
	for _, u := range users {
		if strings.Contains(strings.ToLower(u.Name), q) || strings.Contains(strings.ToLower(u.Handle), q) {
			matches = append(matches, u)
		}
	}
	return matches, nil
}

// removeID returns list without any occurrence of id.
func removeID(list []string, id string) []string {
	out := make([]string, 0, len(list))
	for _, v := range list {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}

// toggleID adds id to list when absent and removes it when present. It reports whether id is now present.
func toggleID(list []string, id string) ([]string, bool) {
	if slices.Contains(list, id) {
		return removeID(list, id), false
	}
	return append(list, id), true
}
