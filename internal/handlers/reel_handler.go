package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/anonto42/orion/backend/internal/models"
	"github.com/anonto42/orion/backend/internal/state"
)

// ReelHandler handles reel requests
type ReelHandler struct {
	store *state.Store
}

func NewReelHandler(store *state.Store) *ReelHandler {
	return &ReelHandler{store: store}
}

func (h *ReelHandler) RegisterReelRoutes(g *echo.Group) {
	g.GET("/reels", h.ListReels)
	g.POST("/reels", h.CreateReel)
	g.POST("/reels/:id/like", h.ToggleLike)
	g.POST("/reels/:id/save", h.ToggleSave)
	g.POST("/reels/:id/comments", h.AddComment)
	g.GET("/reels/:id/share", h.Share)
}

func (h *ReelHandler) ListReels(c echo.Context) error {
	return ok(c, http.StatusOK, echo.Map{"reels": h.store.Reels()})
}

// CreateReel accepts multipart form data with a "file" part holding a video or image
func (h *ReelHandler) CreateReel(c echo.Context) error {
	var req models.CreateReelRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	file, err := readFile(c, "file")
	if err != nil {
		return err
	}

	reel, err := h.store.AddReel(c.Request().Context(), req.Caption, file, req.Song)
	if err != nil {
		return httpError(err)
	}
	return ok(c, http.StatusCreated, echo.Map{"reel": reel})
}

func (h *ReelHandler) ToggleLike(c echo.Context) error {
	if err := h.store.ToggleReelLike(c.Request().Context(), c.Param("id")); err != nil {
		return httpError(err)
	}
	return ok(c, http.StatusOK, echo.Map{"reels": h.store.Reels()})
}

func (h *ReelHandler) ToggleSave(c echo.Context) error {
	if !h.store.IsAuthenticated() {
		return httpError(state.ErrNotAuthenticated)
	}
	saved := h.store.ToggleReelSave(c.Param("id"))
	return ok(c, http.StatusOK, echo.Map{"saved": saved})
}

// AddComment only bumps the reel's comment counter
func (h *ReelHandler) AddComment(c echo.Context) error {
	if err := h.store.CommentOnReel(c.Request().Context(), c.Param("id")); err != nil {
		return httpError(err)
	}
	return ok(c, http.StatusOK, echo.Map{"reels": h.store.Reels()})
}

func (h *ReelHandler) Share(c echo.Context) error {
	link, err := h.store.ShareLink("reel", c.Param("id"))
	if err != nil {
		return httpError(err)
	}
	return ok(c, http.StatusOK, echo.Map{"url": link})
}
