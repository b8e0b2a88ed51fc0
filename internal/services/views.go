package services

import (
	"github.com/anonto42/orion/backend/internal/models"
	"github.com/anonto42/orion/backend/pkg/timeago"
)

// PostView is a post joined with its author and commenters. IsLiked and IsSaved are
// per-session flags filled in by the state store.
type PostView struct {
	models.Post
	User     models.User   `json:"user"`
	Comments []CommentView `json:"comments"`
	TimeAgo  string        `json:"timeAgo"`
	IsLiked  bool          `json:"isLiked"`
	IsSaved  bool          `json:"isSaved"`
}

type CommentView struct {
	models.Comment
	User *models.User `json:"user,omitempty"`
}

// ReelView carries only the author's display name and avatar.
type ReelView struct {
	models.Reel
	User       string `json:"user"`
	UserAvatar string `json:"userAvatar"`
	IsLiked    bool   `json:"isLiked"`
	IsSaved    bool   `json:"isSaved"`
}

type NotificationView struct {
	models.Notification
	Sender  *models.User `json:"sender,omitempty"`
	TimeAgo string       `json:"timeAgo"`
}

// directory indexes sanitized users by ID for hydration joins.
type directory map[string]models.User

func newDirectory(users []models.User) directory {
	d := make(directory, len(users))
	for _, u := range users {
		d[u.ID] = u.Sanitized()
	}
	return d
}

func (d directory) lookup(id string) *models.User {
	u, ok := d[id]
	if !ok {
		return nil
	}
	return &u
}

func (d directory) hydratePost(p models.Post, clock Clock) PostView {
	author := models.UnknownUser()
	if u := d.lookup(p.UserID); u != nil {
		author = *u
	}

	comments := make([]CommentView, 0, len(p.Comments))
	for _, c := range p.Comments {
		comments = append(comments, CommentView{Comment: c, User: d.lookup(c.UserID)})
	}

	return PostView{
		Post:     p,
		User:     author,
		Comments: comments,
		TimeAgo:  timeago.Since(p.CreatedAt, clock.now()),
	}
}

func (d directory) hydrateReel(r models.Reel) ReelView {
	view := ReelView{Reel: r, User: "Unknown"}
	if u := d.lookup(r.UserID); u != nil {
		view.User = u.Name
		view.UserAvatar = u.Avatar
	}
	return view
}

func (d directory) hydrateNotification(n models.Notification, clock Clock) NotificationView {
	return NotificationView{
		Notification: n,
		Sender:       d.lookup(n.SenderID),
		TimeAgo:      timeago.Since(n.CreatedAt, clock.now()),
	}
}
