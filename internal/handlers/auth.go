package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/anonto42/orion/backend/internal/models"
	"github.com/anonto42/orion/backend/internal/state"
)

// AuthHandler handles sign-up, sign-in and the session lifecycle
type AuthHandler struct {
	store *state.Store
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(store *state.Store) *AuthHandler {
	return &AuthHandler{store: store}
}

// RegisterAuthRoutes registers authentication-related routes
func (h *AuthHandler) RegisterAuthRoutes(g *echo.Group) {
	g.POST("/signup", h.Signup)
	g.POST("/signin", h.SignIn)
	g.POST("/logout", h.Logout)
	g.GET("/session", h.Session)
}

// Signup registers a new account and signs it in
func (h *AuthHandler) Signup(c echo.Context) error {
	var req models.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.store.Signup(c.Request().Context(), req)
	if err != nil {
		return httpError(err)
	}
	return ok(c, http.StatusCreated, echo.Map{"user": user})
}

// SignIn authenticates with email and password
func (h *AuthHandler) SignIn(c echo.Context) error {
	var req models.LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.store.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return httpError(err)
	}
	return ok(c, http.StatusOK, echo.Map{"user": user})
}

func (h *AuthHandler) Logout(c echo.Context) error {
	if err := h.store.Logout(c.Request().Context()); err != nil {
		return httpError(err)
	}
	return ok(c, http.StatusOK, echo.Map{"isAuthenticated": false})
}

// Session reports whether someone is signed in and who
func (h *AuthHandler) Session(c echo.Context) error {
	user, signedIn := h.store.CurrentUser()
	data := echo.Map{"isAuthenticated": signedIn}
	if signedIn {
		data["user"] = user
	}
	return ok(c, http.StatusOK, data)
}
