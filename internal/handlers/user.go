package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/anonto42/orion/backend/internal/models"
	"github.com/anonto42/orion/backend/internal/state"
)

// UserHandler handles profile requests
type UserHandler struct {
	store *state.Store
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(store *state.Store) *UserHandler {
	return &UserHandler{store: store}
}

func (h *UserHandler) RegisterProfileRoutes(g *echo.Group) {
	g.GET("/profile", h.GetProfile)      // Get own profile
	g.PATCH("/profile", h.UpdateProfile) // Update own profile
	g.GET("/users/search", h.SearchUsers)
	g.GET("/users/:id", h.GetUser) // Get other user's profile by ID
}

func (h *UserHandler) GetUser(c echo.Context) error {
	user, err := h.store.GetUser(c.Request().Context(), c.Param("id"))
	if err != nil {
		return httpError(err)
	}
	return ok(c, http.StatusOK, echo.Map{
		"user":        user,
		"isFollowing": h.store.IsFollowing(user.ID),
	})
}

func (h *UserHandler) GetProfile(c echo.Context) error {
	user, signedIn := h.store.CurrentUser()
	if !signedIn {
		return echo.NewHTTPError(http.StatusUnauthorized, "Sign in to continue")
	}
	return ok(c, http.StatusOK, echo.Map{"user": user})
}

func (h *UserHandler) UpdateProfile(c echo.Context) error {
	var req models.UpdateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.store.UpdateProfile(c.Request().Context(), req)
	if err != nil {
		return httpError(err)
	}
	return ok(c, http.StatusOK, echo.Map{"user": user})
}

// SearchUsers matches ?q= against names and handles
func (h *UserHandler) SearchUsers(c echo.Context) error {
	query := c.QueryParam("q")
	if query == "" {
		return ok(c, http.StatusOK, echo.Map{"users": []models.User{}})
	}

	users, err := h.store.SearchUsers(c.Request().Context(), query)
	if err != nil {
		return httpError(err)
	}
	return ok(c, http.StatusOK, echo.Map{"users": users})
}
