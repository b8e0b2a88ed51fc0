package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/anonto42/orion/backend/internal/state"
)

// FollowHandler handles follow toggles
type FollowHandler struct {
	store *state.Store
}

func NewFollowHandler(store *state.Store) *FollowHandler {
	return &FollowHandler{store: store}
}

func (h *FollowHandler) RegisterFollowRoutes(g *echo.Group) {
	g.POST("/users/:id/follow", h.ToggleFollow)
	g.GET("/users/:id/follow", h.FollowStatus)
}

func (h *FollowHandler) ToggleFollow(c echo.Context) error {
	following, err := h.store.ToggleFollow(c.Request().Context(), c.Param("id"))
	if err != nil {
		return httpError(err)
	}
	return ok(c, http.StatusOK, echo.Map{"following": following})
}

func (h *FollowHandler) FollowStatus(c echo.Context) error {
	return ok(c, http.StatusOK, echo.Map{"following": h.store.IsFollowing(c.Param("id"))})
}
