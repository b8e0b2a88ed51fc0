package state

import (
	"slices"

	"github.com/anonto42/orion/backend/internal/models"
	"github.com/anonto42/orion/backend/internal/services"
)

// Snapshot is a point-in-time copy of the session state.
type Snapshot struct {
	IsAuthenticated bool                        `json:"isAuthenticated"`
	CurrentUser     models.User                 `json:"currentUser"`
	Feed            []services.PostView         `json:"posts"`
	Reels           []services.ReelView         `json:"reels"`
	Notifications   []services.NotificationView `json:"notifications"`
	Stories         []models.Story              `json:"stories"`
	Following       []string                    `json:"followingIds"`
	UnreadCount     int                         `json:"unreadCount"`
}

// Snapshot copies the whole session state. Engagement slices are replaced rather
// than mutated in place, so sharing them with the copy is safe.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	following := followingList(s.following)
	slices.Sort(following)

	return Snapshot{
		IsAuthenticated: s.authenticated,
		CurrentUser:     s.currentUser.Sanitized(),
		Feed:            slices.Clone(s.feed),
		Reels:           slices.Clone(s.reels),
		Notifications:   slices.Clone(s.notifications),
		Stories:         slices.Clone(s.stories),
		Following:       following,
		UnreadCount:     s.unreadLocked(),
	}
}

func (s *Store) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.authenticated
}

// CurrentUser returns the signed-in user, or false when signed out.
func (s *Store) CurrentUser() (models.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.currentUser.Sanitized(), s.authenticated
}

func (s *Store) Feed() []services.PostView {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.feed)
}

func (s *Store) Reels() []services.ReelView {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.reels)
}

func (s *Store) Notifications() []services.NotificationView {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.notifications)
}

func (s *Store) Stories() []models.Story {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.stories)
}

func (s *Store) unreadLocked() int {
	n := 0
	for _, v := range s.notifications {
		if !v.IsRead {
			n++
		}
	}
	return n
}

// UnreadCount counts cached notifications not yet marked read.
func (s *Store) UnreadCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.unreadLocked()
}
