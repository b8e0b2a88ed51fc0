package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anonto42/orion/backend/internal/models"
	"github.com/anonto42/orion/backend/internal/services"
	"github.com/anonto42/orion/backend/internal/state"
	"github.com/anonto42/orion/backend/pkg/ai"
)

func TestHTTPErrorStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
	}{
		{"signed out", state.ErrNotAuthenticated, http.StatusUnauthorized},
		{"bad credentials", services.ErrInvalidCredentials, http.StatusUnauthorized},
		{"duplicate email", fmt.Errorf("register: %w", services.ErrDuplicateEmail), http.StatusConflict},
		{"missing", services.ErrNotFound, http.StatusNotFound},
		{"empty comment", state.ErrEmptyComment, http.StatusBadRequest},
		{"share kind", state.ErrInvalidShareKind, http.StatusBadRequest},
		{"ai disabled", ai.ErrServiceUnavailable, http.StatusServiceUnavailable},
		{"ai failure", &ai.ServiceError{Op: "edit image", Err: errors.New("boom")}, http.StatusBadGateway},
		{"anything else", errors.New("disk on fire"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var he *echo.HTTPError
			require.ErrorAs(t, httpError(tt.err), &he)
			assert.Equal(t, tt.code, he.Code)
		})
	}
}

func TestHTTPErrorHidesInternals(t *testing.T) {
	var he *echo.HTTPError
	require.ErrorAs(t, httpError(errors.New("pq: connection refused")), &he)
	assert.NotContains(t, fmt.Sprint(he.Message), "pq")
}

func TestGroupByPeriod(t *testing.T) {
	now := time.Date(2024, 5, 15, 12, 0, 0, 0, time.UTC)
	at := func(d time.Duration) services.NotificationView {
		return services.NotificationView{Notification: models.Notification{CreatedAt: now.Add(-d)}}
	}

	list := []services.NotificationView{
		at(time.Hour),
		at(11 * time.Hour),
		at(13 * time.Hour),
		at(3 * 24 * time.Hour),
		at(30 * 24 * time.Hour),
	}

	today, yesterday, thisWeek, older := groupByPeriod(list, now)
	assert.Len(t, today, 2)
	assert.Len(t, yesterday, 1)
	assert.Len(t, thisWeek, 1)
	assert.Len(t, older, 1)
}

func TestGroupByPeriodEmpty(t *testing.T) {
	today, yesterday, thisWeek, older := groupByPeriod(nil, time.Now())
	assert.NotNil(t, today)
	assert.Empty(t, yesterday)
	assert.Empty(t, thisWeek)
	assert.Empty(t, older)
}
