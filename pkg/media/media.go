// Package media uploads user media and keeps a local fallback when the remote store fails.
package media

import (
	"context"
	"errors"
	"path"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/anonto42/orion/backend/pkg/ids"
)

// LocalPrefix marks references that only resolve inside this process.
const LocalPrefix = "blob:orion/"

// ErrUploadFailed wraps every remote upload error.
var ErrUploadFailed = errors.New("upload failed")

// File is an uploaded file held in memory.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

// IsVideo reports whether the file carries a video content type.
func (f File) IsVideo() bool {
	return strings.HasPrefix(f.ContentType, "video/")
}

// Ext returns the file extension including the dot, or "" when there is none.
func (f File) Ext() string {
	return strings.ToLower(path.Ext(f.Name))
}

// Uploader stores a file remotely and returns its public URL.
type Uploader interface {
	Upload(ctx context.Context, f File) (string, error)
}

// LocalStore keeps files in memory under blob references.
type LocalStore struct {
	mu    sync.RWMutex
	blobs map[string]File
}

func NewLocalStore() *LocalStore {
	return &LocalStore{blobs: make(map[string]File)}
}

// Put stores f and returns its blob reference.
func (s *LocalStore) Put(f File) string {
	id := ids.New()
	f.Data = append([]byte(nil), f.Data...)

	s.mu.Lock()
	s.blobs[id] = f
	s.mu.Unlock()
	return LocalPrefix + id
}

// Get resolves a blob ID (without the prefix).
func (s *LocalStore) Get(id string) (File, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	f, ok := s.blobs[id]
	return f, ok
}

// Service uploads through an Uploader and falls back to the LocalStore on failure.
type Service struct {
	uploader Uploader
	local    *LocalStore
}

// NewService creates a media service. A nil uploader keeps every file local.
func NewService(uploader Uploader, local *LocalStore) *Service {
	if local == nil {
		local = NewLocalStore()
	}
	return &Service{uploader: uploader, local: local}
}

// Upload returns the remote URL of f, or a local blob reference when the upload fails.
// It never returns an error.
func (s *Service) Upload(ctx context.Context, f File) string {
	if s.uploader == nil {
		return s.local.Put(f)
	}

	url, err := s.uploader.Upload(ctx, f)
	if err != nil {
		log.Warn().Err(err).Str("file", f.Name).Msg("Media upload failed, keeping a local reference")
		return s.local.Put(f)
	}
	return url
}

// StoreLocal keeps f in process memory without attempting a remote upload.
func (s *Service) StoreLocal(f File) string {
	return s.local.Put(f)
}

func (s *Service) Local() *LocalStore {
	return s.local
}
