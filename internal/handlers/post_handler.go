package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/anonto42/orion/backend/internal/models"
	"github.com/anonto42/orion/backend/internal/state"
)

// PostHandler handles post creation and interactions
type PostHandler struct {
	store *state.Store
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(store *state.Store) *PostHandler {
	return &PostHandler{store: store}
}

// RegisterPostRoutes registers post-related routes
func (h *PostHandler) RegisterPostRoutes(g *echo.Group) {
	g.POST("/posts", h.CreatePost)
	g.POST("/posts/:id/like", h.ToggleLike)
	g.POST("/posts/:id/save", h.ToggleSave)
	g.POST("/posts/:id/comments", h.AddComment)
	g.GET("/posts/:id/share", h.Share)
}

// CreatePost accepts multipart form data with an "image" file part
func (h *PostHandler) CreatePost(c echo.Context) error {
	var req models.CreatePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	image, err := readFile(c, "image")
	if err != nil {
		return err
	}

	post, err := h.store.AddPost(c.Request().Context(), req.Caption, image, req.Song)
	if err != nil {
		return httpError(err)
	}
	return ok(c, http.StatusCreated, echo.Map{"post": post})
}

func (h *PostHandler) ToggleLike(c echo.Context) error {
	if err := h.store.TogglePostLike(c.Request().Context(), c.Param("id")); err != nil {
		return httpError(err)
	}
	return ok(c, http.StatusOK, echo.Map{"posts": h.store.Feed()})
}

// ToggleSave flips the session-local bookmark
func (h *PostHandler) ToggleSave(c echo.Context) error {
	if !h.store.IsAuthenticated() {
		return httpError(state.ErrNotAuthenticated)
	}
	saved := h.store.TogglePostSave(c.Param("id"))
	return ok(c, http.StatusOK, echo.Map{"saved": saved})
}

func (h *PostHandler) AddComment(c echo.Context) error {
	var req models.CreateCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := h.store.CommentOnPost(c.Request().Context(), c.Param("id"), req.Text); err != nil {
		return httpError(err)
	}
	return ok(c, http.StatusCreated, echo.Map{"posts": h.store.Feed()})
}

func (h *PostHandler) Share(c echo.Context) error {
	link, err := h.store.ShareLink("post", c.Param("id"))
	if err != nil {
		return httpError(err)
	}
	return ok(c, http.StatusOK, echo.Map{"url": link})
}
