package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/anonto42/orion/backend/internal/state"
)

// UserIDKey is the echo context key holding the signed-in user's ID.
const UserIDKey = "userID"

// SessionMiddleware rejects requests while no user is signed in to the session.
func SessionMiddleware(store *state.Store) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, ok := store.CurrentUser()
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "Sign in to continue")
			}

			c.Set(UserIDKey, user.ID)
			return next(c)
		}
	}
}
