package models

import "time"

// Story is an ephemeral image owned by one user. Stories are kept for the session only.
type Story struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	User      *User     `json:"user,omitempty"`
	ImageURL  string    `json:"imageUrl"`
	IsViewed  bool      `json:"isViewed"`
	CreatedAt time.Time `json:"createdAt"`
}
