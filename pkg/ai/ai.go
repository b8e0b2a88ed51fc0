// Package ai wraps the generative model used for the chat persona and media generation.
package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/anonto42/orion/backend/pkg/media"
)

const (
	ChatModel  = "gemini-2.5-flash"
	ImageModel = "gemini-2.5-flash-image"
	VideoModel = "veo-3.1-fast-generate-preview"

	Persona = "You are Starlight, a friendly and mysterious space explorer character on the social media app Orion. " +
		"You love nebula photography, stars, and deep space philosophical questions. " +
		"Keep responses concise, casual, and slightly poetic. Use emojis related to space."

	DefaultImagePrompt = "Enhance this image with a futuristic space theme"
	DefaultVideoPrompt = "Animate this image cinematically"

	MissingKeyReply  = "I'm disconnected from the galaxy (API Key missing)."
	UnavailableReply = "The cosmic connection is weak right now... try again later."
)

// ErrServiceUnavailable is returned when no API key is configured.
var ErrServiceUnavailable = errors.New("ai service unavailable: API key missing")

// ServiceError wraps a failure reported by the model backend.
type ServiceError struct {
	Op  string
	Err error
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("ai %s: %v", e.Op, e.Err)
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

// Message is one turn of a chat transcript. Role is "user" for the human side; any
// other value is treated as the model.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Backend talks to a model provider.
type Backend interface {
	Chat(ctx context.Context, history []Message, message string) (string, error)
	EditImage(ctx context.Context, image media.File, prompt string) ([]byte, error)
	GenerateVideo(ctx context.Context, image media.File, prompt string) ([]byte, error)
}

// BackendFactory builds a fresh backend. It is called per request so that rotated
// credentials are picked up.
type BackendFactory func(ctx context.Context) (Backend, error)

// Service exposes the AI features with the fallbacks the app relies on.
type Service struct {
	newBackend BackendFactory
}

// NewService creates an AI service. A nil factory means no key is configured.
func NewService(factory BackendFactory) *Service {
	return &Service{newBackend: factory}
}

// Enabled reports whether a backend is configured.
func (s *Service) Enabled() bool {
	return s.newBackend != nil
}

// GenerateReply answers as the Starlight persona. It never fails: configuration and
// backend problems produce canned replies.
func (s *Service) GenerateReply(ctx context.Context, history []Message, message string) string {
	if !s.Enabled() {
		return MissingKeyReply
	}

	backend, err := s.newBackend(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Failed to create AI client")
		return UnavailableReply
	}

	reply, err := backend.Chat(ctx, history, message)
	if err != nil {
		log.Error().Err(err).Msg("AI chat failed")
		return UnavailableReply
	}
	return reply
}

// EditImage restyles an image. It returns nil bytes when the model produced no image.
func (s *Service) EditImage(ctx context.Context, image media.File, prompt string) ([]byte, error) {
	if !s.Enabled() {
		return nil, ErrServiceUnavailable
	}
	if strings.TrimSpace(prompt) == "" {
		prompt = DefaultImagePrompt
	}

	backend, err := s.newBackend(ctx)
	if err != nil {
		return nil, &ServiceError{Op: "edit image", Err: err}
	}
	out, err := backend.EditImage(ctx, image, prompt)
	if err != nil {
		return nil, &ServiceError{Op: "edit image", Err: err}
	}
	return out, nil
}

// GenerateVideo animates an image. A stale-credential failure is retried once with a
// freshly built backend.
func (s *Service) GenerateVideo(ctx context.Context, image media.File, prompt string) ([]byte, error) {
	if !s.Enabled() {
		return nil, ErrServiceUnavailable
	}
	if strings.TrimSpace(prompt) == "" {
		prompt = DefaultVideoPrompt
	}

	var lastErr error
	for attempt := 0; attempt < 2; attempt++ {
		backend, err := s.newBackend(ctx)
		if err != nil {
			return nil, &ServiceError{Op: "generate video", Err: err}
		}

		out, err := backend.GenerateVideo(ctx, image, prompt)
		if err == nil {
			return out, nil
		}
		lastErr = err
		if !IsStaleCredential(err) || ctx.Err() != nil {
			break
		}
		log.Warn().Err(err).Msg("Video generation hit a stale credential, retrying with a fresh client")
	}
	return nil, &ServiceError{Op: "generate video", Err: lastErr}
}
