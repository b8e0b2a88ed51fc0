package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/anonto42/orion/backend/internal/state"
)

// FeedHandler exposes the cached session view and the refresh trigger
type FeedHandler struct {
	store *state.Store
}

func NewFeedHandler(store *state.Store) *FeedHandler {
	return &FeedHandler{store: store}
}

func (h *FeedHandler) RegisterFeedRoutes(g *echo.Group) {
	g.GET("/feed", h.GetFeed)
	g.GET("/state", h.GetState)
	g.POST("/refresh", h.Refresh)
}

// GetFeed returns the cached posts, newest first
func (h *FeedHandler) GetFeed(c echo.Context) error {
	return ok(c, http.StatusOK, echo.Map{"posts": h.store.Feed()})
}

// GetState returns everything the client renders in one read
func (h *FeedHandler) GetState(c echo.Context) error {
	return ok(c, http.StatusOK, h.store.Snapshot())
}

// Refresh refetches feed, reels and notifications. Partial failures still
// return the snapshot so the client keeps whatever succeeded.
func (h *FeedHandler) Refresh(c echo.Context) error {
	if err := h.store.RefreshData(c.Request().Context()); err != nil {
		return httpError(err)
	}
	return ok(c, http.StatusOK, h.store.Snapshot())
}
