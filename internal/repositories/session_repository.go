package repositories

import (
	"context"
	"fmt"
)

// SessionRepository persists the session marker: the ID of the signed-in user.
type SessionRepository interface {
	GetToken(ctx context.Context) (string, bool, error)
	SetToken(ctx context.Context, userID string) error
	ClearToken(ctx context.Context) error
}

// StoreSessionRepository stores the marker as a raw string under AuthTokenKey
type StoreSessionRepository struct {
	c *Collections
}

func NewStoreSessionRepository(c *Collections) *StoreSessionRepository {
	return &StoreSessionRepository{c: c}
}

func (r *StoreSessionRepository) GetToken(ctx context.Context) (string, bool, error) {
	raw, found, err := r.c.Store().Get(ctx, AuthTokenKey)
	if err != nil {
		return "", false, fmt.Errorf("read %s: %w", AuthTokenKey, err)
	}
	if !found || len(raw) == 0 {
		return "", false, nil
	}
	return string(raw), true, nil
}

func (r *StoreSessionRepository) SetToken(ctx context.Context, userID string) error {
	if err := r.c.Store().Set(ctx, AuthTokenKey, []byte(userID)); err != nil {
		return fmt.Errorf("write %s: %w", AuthTokenKey, err)
	}
	return nil
}

func (r *StoreSessionRepository) ClearToken(ctx context.Context) error {
	if err := r.c.Store().Delete(ctx, AuthTokenKey); err != nil {
		return fmt.Errorf("delete %s: %w", AuthTokenKey, err)
	}
	return nil
}
