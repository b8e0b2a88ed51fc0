package models

// ChatMessage is one prior turn sent with a chat request.
type ChatMessage struct {
	Role    string `json:"role" validate:"required,oneof=user model"`
	Content string `json:"content" validate:"required"`
}

type ChatRequest struct {
	History []ChatMessage `json:"history" validate:"dive"`
	Message string        `json:"message" validate:"required,notblank,max=2000"`
}
