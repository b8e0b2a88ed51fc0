// Package state holds the in-memory view of one signed-in session and the user
// actions that change it.
package state

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sort"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/anonto42/orion/backend/internal/models"
	"github.com/anonto42/orion/backend/internal/services"
	"github.com/anonto42/orion/backend/pkg/media"
)

var (
	ErrNotAuthenticated = errors.New("not signed in")
	ErrEmptyComment     = errors.New("comment text is required")
	ErrInvalidShareKind = errors.New("share kind must be post or reel")
)

// Media is the upload surface the store needs.
type Media interface {
	Upload(ctx context.Context, f media.File) string
	StoreLocal(f media.File) string
}

// Deps wires the store to the domain services.
type Deps struct {
	Auth          *services.AuthService
	Users         *services.UserService
	Posts         *services.PostService
	Reels         *services.ReelService
	Notifications *services.NotificationService
	Stories       *services.StoryService
	Media         Media
	// ShareBaseURL prefixes share links: <ShareBaseURL>/<kind>/<id>.
	ShareBaseURL string
}

// revisions count optimistic local mutations per collection. A refetch that started
// under an older revision is discarded.
type revisions struct {
	feed          uint64
	reels         uint64
	notifications uint64
}

// Store is the client state cache. It is safe for concurrent use.
type Store struct {
	deps Deps

	mu            sync.RWMutex
	authenticated bool
	currentUser   models.User
	feed          []services.PostView
	reels         []services.ReelView
	notifications []services.NotificationView
	stories       []models.Story
	following     map[string]struct{}
	savedPosts    map[string]struct{}
	savedReels    map[string]struct{}
	rev           revisions
}

func New(deps Deps) *Store {
	s := &Store{deps: deps}
	s.resetLocked()
	return s
}

// resetLocked restores the signed-out state. Callers hold s.mu or own s exclusively.
func (s *Store) resetLocked() {
	s.authenticated = false
	s.currentUser = emptyUser()
	s.feed = []services.PostView{}
	s.reels = []services.ReelView{}
	s.notifications = []services.NotificationView{}
	s.stories = []models.Story{}
	s.following = map[string]struct{}{}
	s.savedPosts = map[string]struct{}{}
	s.savedReels = map[string]struct{}{}
	s.rev.feed++
	s.rev.reels++
	s.rev.notifications++
}

func emptyUser() models.User {
	return models.User{Followers: []string{}, Following: []string{}}
}

// session returns the signed-in user's ID.
func (s *Store) session() (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.authenticated {
		return "", ErrNotAuthenticated
	}
	return s.currentUser.ID, nil
}

func (s *Store) signIn(user *models.User) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.authenticated = true
	s.currentUser = user.Sanitized()
	s.following = make(map[string]struct{}, len(user.Following))
	for _, id := range user.Following {
		s.following[id] = struct{}{}
	}
}

// Init restores a persisted session, if any, and loads its data.
func (s *Store) Init(ctx context.Context) error {
	user, err := s.deps.Auth.CurrentUser(ctx)
	if err != nil {
		return fmt.Errorf("failed to restore session: %w", err)
	}
	if user == nil {
		log.Debug().Msg("No persisted session")
		return nil
	}

	s.signIn(user)
	log.Info().Str("user_id", user.ID).Msg("Session restored")
	return s.RefreshData(ctx)
}

func (s *Store) Login(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.deps.Auth.Authenticate(ctx, email, password)
	if err != nil {
		return nil, err
	}
	s.signIn(user)
	s.refreshAfterSignIn(ctx)
	return user, nil
}

func (s *Store) Signup(ctx context.Context, req models.RegisterRequest) (*models.User, error) {
	user, err := s.deps.Auth.Register(ctx, req)
	if err != nil {
		return nil, err
	}
	s.signIn(user)
	s.refreshAfterSignIn(ctx)
	return user, nil
}

// refreshAfterSignIn loads the session's data. Failures are logged; the sign-in stands.
func (s *Store) refreshAfterSignIn(ctx context.Context) {
	if err := s.RefreshData(ctx); err != nil {
		log.Warn().Err(err).Msg("Initial data load failed")
	}
}

// Logout clears the session marker and every in-memory collection. Persisted content is kept.
func (s *Store) Logout(ctx context.Context) error {
	if err := s.deps.Auth.Logout(ctx); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	if err := s.deps.Stories.Clear(ctx); err != nil {
		log.Warn().Err(err).Msg("Failed to clear stories")
	}

	s.mu.Lock()
	s.resetLocked()
	s.mu.Unlock()
	return nil
}

func (s *Store) UpdateProfile(ctx context.Context, req models.UpdateUserRequest) (*models.User, error) {
	userID, err := s.session()
	if err != nil {
		return nil, err
	}

	updated, err := s.deps.Users.UpdateProfile(ctx, userID, req)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	if s.authenticated && s.currentUser.ID == updated.ID {
		s.currentUser = updated.Sanitized()
	}
	s.mu.Unlock()
	return updated, nil
}

// maxRefreshAttempts bounds how often RefreshData reloads a collection whose fetch
// was overtaken by a local mutation.
const maxRefreshAttempts = 3

// RefreshData reloads feed, reels and notifications, in that order. Each load is
// independent; their errors are joined. A load discarded as stale is retried so that
// writes made just before the refresh still show up.
func (s *Store) RefreshData(ctx context.Context) error {
	var errs []error
	feedDone, reelsDone, notifsDone := false, false, false

	for attempt := 0; attempt < maxRefreshAttempts; attempt++ {
		s.mu.RLock()
		userID := s.currentUser.ID
		authenticated := s.authenticated
		start := s.rev
		s.mu.RUnlock()

		if !feedDone {
			if posts, err := s.deps.Posts.ListPosts(ctx); err != nil {
				errs = append(errs, err)
				feedDone = true
			} else {
				feedDone = s.applyFeed(posts, start.feed)
			}
		}

		if !reelsDone {
			if reels, err := s.deps.Reels.ListReels(ctx); err != nil {
				errs = append(errs, err)
				reelsDone = true
			} else {
				reelsDone = s.applyReels(reels, start.reels)
			}
		}

		if !notifsDone {
			if !authenticated {
				notifsDone = true
			} else if notifs, err := s.deps.Notifications.List(ctx, userID); err != nil {
				errs = append(errs, err)
				notifsDone = true
			} else {
				notifsDone = s.applyNotifications(notifs, start.notifications)
			}
		}

		if feedDone && reelsDone && notifsDone {
			return errors.Join(errs...)
		}
	}

	log.Warn().
		Bool("feed", feedDone).
		Bool("reels", reelsDone).
		Bool("notifications", notifsDone).
		Msg("Refresh kept losing to local changes, some collections were not reloaded")
	return errors.Join(errs...)
}

// applyFeed installs a fetched feed unless a local mutation happened since startRev.
func (s *Store) applyFeed(posts []services.PostView, startRev uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.rev.feed != startRev {
		log.Debug().Msg("Discarding stale feed refetch")
		return false
	}

	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].CreatedAt.After(posts[j].CreatedAt)
	})
	for i := range posts {
		posts[i].IsLiked = s.authenticated && posts[i].LikedBy(s.currentUser.ID)
		_, posts[i].IsSaved = s.savedPosts[posts[i].ID]
	}
	s.feed = posts
	return true
}

func (s *Store) applyReels(reels []services.ReelView, startRev uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.rev.reels != startRev {
		log.Debug().Msg("Discarding stale reels refetch")
		return false
	}

	for i := range reels {
		reels[i].IsLiked = s.authenticated && reels[i].LikedBy(s.currentUser.ID)
		_, reels[i].IsSaved = s.savedReels[reels[i].ID]
	}
	s.reels = reels
	return true
}

func (s *Store) applyNotifications(notifs []services.NotificationView, startRev uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.rev.notifications != startRev {
		log.Debug().Msg("Discarding stale notifications refetch")
		return false
	}

	sort.SliceStable(notifs, func(i, j int) bool {
		return notifs[i].CreatedAt.After(notifs[j].CreatedAt)
	})
	s.notifications = notifs
	return true
}

// toggleMember returns a new slice with id added or removed, and whether it is now present.
func toggleMember(list []string, id string) ([]string, bool) {
	if slices.Contains(list, id) {
		out := make([]string, 0, len(list))
		for _, v := range list {
			if v != id {
				out = append(out, v)
			}
		}
		return out, false
	}
	out := make([]string, 0, len(list)+1)
	out = append(out, list...)
	return append(out, id), true
}

// ShareLink builds the public URL for a post or reel.
func (s *Store) ShareLink(kind, id string) (string, error) {
	kind = strings.ToLower(kind)
	if kind != "post" && kind != "reel" {
		return "", ErrInvalidShareKind
	}
	return fmt.Sprintf("%s/%s/%s", strings.TrimRight(s.deps.ShareBaseURL, "/"), kind, id), nil
}
