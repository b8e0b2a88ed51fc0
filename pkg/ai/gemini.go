package ai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/anonto42/orion/backend/pkg/media"
)

// GeminiBackend calls the Gemini API through the genai SDK.
type GeminiBackend struct {
	client       *genai.Client
	pollInterval time.Duration
}

func NewGeminiBackend(ctx context.Context, apiKey string, pollInterval time.Duration) (*GeminiBackend, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}
	if pollInterval <= 0 {
		pollInterval = 5 * time.Second
	}
	return &GeminiBackend{client: client, pollInterval: pollInterval}, nil
}

// GeminiFactory returns a BackendFactory for apiKey, or nil when the key is empty.
func GeminiFactory(apiKey string, pollInterval time.Duration) BackendFactory {
	if apiKey == "" {
		return nil
	}
	return func(ctx context.Context) (Backend, error) {
		return NewGeminiBackend(ctx, apiKey, pollInterval)
	}
}

func (g *GeminiBackend) Chat(ctx context.Context, history []Message, message string) (string, error) {
	contents := make([]*genai.Content, 0, len(history))
	for _, h := range history {
		role := genai.Role(genai.RoleModel)
		if h.Role == "user" {
			role = genai.RoleUser
		}
		contents = append(contents, genai.NewContentFromText(h.Content, role))
	}

	chat, err := g.client.Chats.Create(ctx, ChatModel, &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(Persona, genai.RoleUser),
	}, contents)
	if err != nil {
		return "", err
	}

	resp, err := chat.SendMessage(ctx, genai.Part{Text: message})
	if err != nil {
		return "", err
	}
	return resp.Text(), nil
}

func (g *GeminiBackend) EditImage(ctx context.Context, image media.File, prompt string) ([]byte, error) {
	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{
			genai.NewPartFromBytes(image.Data, image.ContentType),
			genai.NewPartFromText(prompt),
		}, genai.RoleUser),
	}

	resp, err := g.client.Models.GenerateContent(ctx, ImageModel, contents, &genai.GenerateContentConfig{
		ResponseModalities: []string{"IMAGE"},
	})
	if err != nil {
		return nil, err
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, nil
	}
	for _, part := range resp.Candidates[0].Content.Parts {
		if part != nil && part.InlineData != nil {
			return part.InlineData.Data, nil
		}
	}
	return nil, nil
}

// GenerateVideo starts a long-running generation and polls it until done or ctx ends.
func (g *GeminiBackend) GenerateVideo(ctx context.Context, image media.File, prompt string) ([]byte, error) {
	op, err := g.client.Models.GenerateVideos(ctx, VideoModel, prompt,
		&genai.Image{ImageBytes: image.Data, MIMEType: image.ContentType},
		&genai.GenerateVideosConfig{
			NumberOfVideos: 1,
			Resolution:     "720p",
			AspectRatio:    "9:16",
		})
	if err != nil {
		return nil, err
	}

	ticker := time.NewTicker(g.pollInterval)
	defer ticker.Stop()

	for !op.Done {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}
		op, err = g.client.Operations.GetVideosOperation(ctx, op, nil)
		if err != nil {
			return nil, err
		}
	}

	if op.Response == nil || len(op.Response.GeneratedVideos) == 0 || op.Response.GeneratedVideos[0].Video == nil {
		return nil, nil
	}

	video := op.Response.GeneratedVideos[0]
	if len(video.Video.VideoBytes) > 0 {
		return video.Video.VideoBytes, nil
	}
	return g.client.Files.Download(ctx, genai.NewDownloadURIFromGeneratedVideo(video), nil)
}

// IsStaleCredential detects the "entity not found" failure the video API reports when
// the key it was started with is no longer valid.
func IsStaleCredential(err error) bool {
	if err == nil {
		return false
	}
	var apiErr genai.APIError
	if errors.As(err, &apiErr) && apiErr.Code == http.StatusNotFound {
		return true
	}
	return strings.Contains(err.Error(), "Requested entity was not found")
}
