package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/anonto42/orion/backend/pkg/kvstore"
)

// Persisted keys.
const (
	UsersKey         = "users"
	PostsKey         = "posts"
	ReelsKey         = "reels"
	StoriesKey       = "stories"
	NotificationsKey = "notifications"
	AuthTokenKey     = "auth_token"
)

// Collection is a named, ordered sequence of records persisted as one JSON value.
// Every mutation rewrites the whole sequence.
type Collection[T any] struct {
	key   string
	store kvstore.Store
	mu    *sync.Mutex
}

// ReadAll decodes the whole collection. A missing key reads as an empty collection.
func (c *Collection[T]) ReadAll(ctx context.Context) ([]T, error) {
	raw, found, err := c.store.Get(ctx, c.key)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", c.key, err)
	}
	items := []T{}
	if !found || len(raw) == 0 {
		return items, nil
	}
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("decode %s: %w", c.key, err)
	}
	return items, nil
}

// WriteAll replaces the whole collection.
func (c *Collection[T]) WriteAll(ctx context.Context, items []T) error {
	if items == nil {
		items = []T{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode %s: %w", c.key, err)
	}
	if err := c.store.Set(ctx, c.key, raw); err != nil {
		return fmt.Errorf("write %s: %w", c.key, err)
	}
	return nil
}

// Update runs one read-modify-write cycle under the collection lock. The slice returned
// by fn is written back; returning ErrSkipWrite leaves the stored value untouched.
func (c *Collection[T]) Update(ctx context.Context, fn func([]T) ([]T, error)) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	items, err := c.ReadAll(ctx)
	if err != nil {
		return err
	}
	next, err := fn(items)
	if err != nil {
		if errors.Is(err, ErrSkipWrite) {
			return nil
		}
		return err
	}
	return c.WriteAll(ctx, next)
}

// Collections hands out collections over one store, sharing a single lock per key
// so repositories touching the same key serialize their writes.
type Collections struct {
	store kvstore.Store

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewCollections(store kvstore.Store) *Collections {
	return &Collections{store: store, locks: make(map[string]*sync.Mutex)}
}

// Store returns the underlying key-value store.
func (c *Collections) Store() kvstore.Store {
	return c.store
}

func (c *Collections) lock(key string) *sync.Mutex {
	c.mu.Lock()
	defer c.mu.Unlock()

	l, ok := c.locks[key]
	if !ok {
		l = &sync.Mutex{}
		c.locks[key] = l
	}
	return l
}

// Open returns the typed collection stored under key.
func Open[T any](c *Collections, key string) *Collection[T] {
	return &Collection[T]{key: key, store: c.store, mu: c.lock(key)}
}
