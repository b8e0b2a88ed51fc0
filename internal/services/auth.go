package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/anonto42/orion/backend/internal/models"
	"github.com/anonto42/orion/backend/internal/repositories"
)

const (
	defaultAvatarURL = "https://api.dicebear.com/7.x/avataaars/svg?seed="
	defaultCoverURL  = "https://picsum.photos/800/300?grayscale&blur=2"
	defaultBio       = "New to Orion 🌌"
)

// AuthService handles sign-up, sign-in and the persisted session marker
type AuthService struct {
	users    repositories.UserRepository
	sessions repositories.SessionRepository
	hashCost int
}

// NewAuthService creates a new auth service
func NewAuthService(users repositories.UserRepository, sessions repositories.SessionRepository) *AuthService {
	return &AuthService{
		users:    users,
		sessions: sessions,
		hashCost: bcrypt.DefaultCost,
	}
}

// Authenticate checks the credentials and records the session marker on success.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), passwordDigest(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	if err := s.sessions.SetToken(ctx, user.ID); err != nil {
		return nil, fmt.Errorf("failed to persist session: %w", err)
	}

	log.Info().Str("user_id", user.ID).Msg("User signed in")
	safe := user.Sanitized()
	return &safe, nil
}

// Register creates an account with default profile media and signs it in.
func (s *AuthService) Register(ctx context.Context, req models.RegisterRequest) (*models.User, error) {
	if _, err := s.users.GetUserByEmail(ctx, req.Email); err == nil {
		return nil, ErrDuplicateEmail
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword(passwordDigest(req.Password), s.hashCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Name:      req.Name,
		Handle:    NormalizeHandle(req.Handle),
		Email:     req.Email,
		Password:  string(hash),
		Avatar:    defaultAvatarURL + url.QueryEscape(req.Name),
		Cover:     defaultCoverURL,
		Bio:       defaultBio,
		Followers: []string{},
		Following: []string{},
	}

	if err := s.users.CreateUser(ctx, user); err != nil {
		return nil, mapRepoErr(err)
	}

	if err := s.sessions.SetToken(ctx, user.ID); err != nil {
		return nil, fmt.Errorf("failed to persist session: %w", err)
	}

	log.Info().Str("user_id", user.ID).Str("handle", user.Handle).Msg("User registered")
	safe := user.Sanitized()
	return &safe, nil
}

// CurrentUser resolves the session marker. It returns nil without error when nobody is
// signed in or the marker points at a user that no longer exists.
func (s *AuthService) CurrentUser(ctx context.Context) (*models.User, error) {
	userID, found, err := s.sessions.GetToken(ctx)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}

	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	safe := user.Sanitized()
	return &safe, nil
}

// Logout removes the session marker only; stored content is kept.
func (s *AuthService) Logout(ctx context.Context) error {
	return s.sessions.ClearToken(ctx)
}

// NormalizeHandle ensures a handle carries exactly one leading '@'.
func NormalizeHandle(handle string) string {
	handle = strings.TrimSpace(handle)
	if strings.HasPrefix(handle, "@") {
		return handle
	}
	return "@" + handle
}

// passwordDigest folds a password of any length into the 64 bytes bcrypt hashes,
// since bcrypt rejects inputs longer than 72 bytes.
func passwordDigest(password string) []byte {
	sum := sha256.Sum256([]byte(password))
	return []byte(hex.EncodeToString(sum[:]))
}
