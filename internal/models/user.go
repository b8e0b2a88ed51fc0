package models

import "slices"

// User is a persisted account record. The follow graph is stored on both ends:
// Followers holds the IDs of users following this one, Following the IDs this user follows.
type User struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Handle    string   `json:"handle"`
	Email     string   `json:"email"`
	Password  string   `json:"password,omitempty"` // bcrypt hash; never leaves the services layer
	Avatar    string   `json:"avatar"`
	Cover     string   `json:"cover,omitempty"`
	Bio       string   `json:"bio,omitempty"`
	IsOnline  bool     `json:"isOnline,omitempty"`
	Followers []string `json:"followers"`
	Following []string `json:"following"`
}

// Sanitized returns a copy of the user without the password field.
func (u User) Sanitized() User {
	u.Password = ""
	u.Followers = append([]string{}, u.Followers...)
	u.Following = append([]string{}, u.Following...)
	return u
}

// IsFollowing reports whether u follows the given user.
func (u User) IsFollowing(userID string) bool {
	return slices.Contains(u.Following, userID)
}

// UnknownUser is the placeholder attached to content whose author no longer resolves.
func UnknownUser() User {
	return User{
		ID:        "unknown",
		Name:      "Unknown",
		Handle:    "@unknown",
		Followers: []string{},
		Following: []string{},
	}
}

type RegisterRequest struct {
	Name     string `json:"name" form:"name" validate:"required,min=1,max=50"`
	Handle   string `json:"handle" form:"handle" validate:"required,min=1,max=30"`
	Email    string `json:"email" form:"email" validate:"required,email"`
	Password string `json:"password" form:"password" validate:"required,min=1"`
}

type LoginRequest struct {
	Email    string `json:"email" form:"email" validate:"required,email"`
	Password string `json:"password" form:"password" validate:"required"`
}

// UpdateUserRequest is a partial profile update; nil fields are left untouched.
type UpdateUserRequest struct {
	Name   *string `json:"name,omitempty" validate:"omitempty,min=1,max=50"`
	Handle *string `json:"handle,omitempty" validate:"omitempty,min=1,max=30"`
	Avatar *string `json:"avatar,omitempty" validate:"omitempty,max=2048"`
	Cover  *string `json:"cover,omitempty" validate:"omitempty,max=2048"`
	Bio    *string `json:"bio,omitempty" validate:"omitempty,max=300"`
}
