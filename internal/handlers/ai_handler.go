package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/anonto42/orion/backend/internal/models"
	"github.com/anonto42/orion/backend/pkg/ai"
)

// AIHandler exposes the assistant chat and the image and video generators
type AIHandler struct {
	ai *ai.Service
}

// NewAIHandler creates a new AIHandler
func NewAIHandler(svc *ai.Service) *AIHandler {
	return &AIHandler{ai: svc}
}

func (h *AIHandler) RegisterAIRoutes(g *echo.Group) {
	g.POST("/ai/chat", h.Chat)
	g.POST("/ai/image", h.EditImage)
	g.POST("/ai/video", h.GenerateVideo)
}

// Chat always answers; backend problems come back as a canned reply
func (h *AIHandler) Chat(c echo.Context) error {
	var req models.ChatRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	history := make([]ai.Message, 0, len(req.History))
	for _, m := range req.History {
		history = append(history, ai.Message{Role: m.Role, Content: m.Content})
	}

	reply := h.ai.GenerateReply(c.Request().Context(), history, req.Message)
	return ok(c, http.StatusOK, echo.Map{"reply": reply})
}

// EditImage takes an "image" part and an optional "prompt" field
func (h *AIHandler) EditImage(c echo.Context) error {
	image, err := readFile(c, "image")
	if err != nil {
		return err
	}

	out, err := h.ai.EditImage(c.Request().Context(), image, c.FormValue("prompt"))
	if err != nil {
		return httpError(err)
	}
	if out == nil {
		return c.NoContent(http.StatusNoContent)
	}
	return c.Blob(http.StatusOK, http.DetectContentType(out), out)
}

// GenerateVideo takes an "image" part and an optional "prompt" field. It blocks
// until the long-running generation finishes or the request is cancelled.
func (h *AIHandler) GenerateVideo(c echo.Context) error {
	image, err := readFile(c, "image")
	if err != nil {
		return err
	}

	out, err := h.ai.GenerateVideo(c.Request().Context(), image, c.FormValue("prompt"))
	if err != nil {
		return httpError(err)
	}
	if out == nil {
		return c.NoContent(http.StatusNoContent)
	}
	return c.Blob(http.StatusOK, "video/mp4", out)
}
