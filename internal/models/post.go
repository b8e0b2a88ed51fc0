package models

import (
	"slices"
	"time"
)

// Post is a feed item as persisted under the posts key. Likes holds each liker's ID at most once
// and Comments is append-only.
type Post struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	ImageURL  string    `json:"imageUrl"`
	Caption   string    `json:"caption"`
	Song      string    `json:"song,omitempty"`
	Likes     []string  `json:"likes"`
	Comments  []Comment `json:"comments"`
	CreatedAt time.Time `json:"createdAt"`
}

// LikedBy reports whether userID is among the post's likers.
func (p Post) LikedBy(userID string) bool {
	return slices.Contains(p.Likes, userID)
}

// CreatePostRequest carries the form fields of a new post; the image arrives as a file part.
type CreatePostRequest struct {
	Caption string `json:"caption" form:"caption" validate:"max=2200"`
	Song    string `json:"song,omitempty" form:"song" validate:"omitempty,max=200"`
}
