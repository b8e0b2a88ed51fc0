package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/anonto42/orion/backend/internal/state"
)

// StoryHandler handles session-scoped stories
type StoryHandler struct {
	store *state.Store
}

// NewStoryHandler creates a new StoryHandler
func NewStoryHandler(store *state.Store) *StoryHandler {
	return &StoryHandler{store: store}
}

// RegisterStoryRoutes registers story-related routes
func (h *StoryHandler) RegisterStoryRoutes(g *echo.Group) {
	g.GET("/stories", h.GetStories)
	g.POST("/stories", h.CreateStory)
	g.DELETE("/stories/:id", h.DeleteStory)
	g.POST("/stories/:id/view", h.MarkViewed)
}

func (h *StoryHandler) GetStories(c echo.Context) error {
	return ok(c, http.StatusOK, echo.Map{"stories": h.store.Stories()})
}

// CreateStory accepts multipart form data with an "image" file part
func (h *StoryHandler) CreateStory(c echo.Context) error {
	image, err := readFile(c, "image")
	if err != nil {
		return err
	}

	story, err := h.store.AddStory(c.Request().Context(), image)
	if err != nil {
		return httpError(err)
	}
	return ok(c, http.StatusCreated, echo.Map{"story": story})
}

func (h *StoryHandler) DeleteStory(c echo.Context) error {
	if err := h.store.DeleteStory(c.Request().Context(), c.Param("id")); err != nil {
		return httpError(err)
	}
	return ok(c, http.StatusOK, echo.Map{"stories": h.store.Stories()})
}

func (h *StoryHandler) MarkViewed(c echo.Context) error {
	if err := h.store.MarkStoryViewed(c.Request().Context(), c.Param("id")); err != nil {
		return httpError(err)
	}
	return ok(c, http.StatusOK, echo.Map{"stories": h.store.Stories()})
}
