package handlers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/anonto42/orion/backend/internal/services"
	"github.com/anonto42/orion/backend/internal/state"
)

// NotificationHandler handles notification requests
type NotificationHandler struct {
	store *state.Store
	now   func() time.Time
}

// NewNotificationHandler creates a new NotificationHandler
func NewNotificationHandler(store *state.Store) *NotificationHandler {
	return &NotificationHandler{store: store, now: time.Now}
}

// RegisterNotificationRoutes registers notification routes
func (h *NotificationHandler) RegisterNotificationRoutes(g *echo.Group) {
	g.GET("/notifications", h.GetNotifications)
	g.GET("/notifications/grouped", h.GetGroupedNotifications)
	g.GET("/notifications/unread-count", h.GetUnreadCount)
	g.PUT("/notifications/read-all", h.MarkAllAsRead)
}

// GetNotifications returns the cached notifications, newest first
func (h *NotificationHandler) GetNotifications(c echo.Context) error {
	return ok(c, http.StatusOK, echo.Map{
		"notifications": h.store.Notifications(),
		"unreadCount":   h.store.UnreadCount(),
	})
}

// GetGroupedNotifications returns notifications grouped by time period
func (h *NotificationHandler) GetGroupedNotifications(c echo.Context) error {
	today, yesterday, thisWeek, older := groupByPeriod(h.store.Notifications(), h.now())

	return ok(c, http.StatusOK, echo.Map{
		"notifications": echo.Map{
			"today":     today,
			"yesterday": yesterday,
			"thisWeek":  thisWeek,
			"older":     older,
		},
		"unreadCount": h.store.UnreadCount(),
	})
}

func (h *NotificationHandler) GetUnreadCount(c echo.Context) error {
	return ok(c, http.StatusOK, echo.Map{"count": h.store.UnreadCount()})
}

// MarkAllAsRead marks every notification of the signed-in user as read
func (h *NotificationHandler) MarkAllAsRead(c echo.Context) error {
	if err := h.store.MarkNotificationsRead(c.Request().Context()); err != nil {
		return httpError(err)
	}
	return ok(c, http.StatusOK, echo.Map{"unreadCount": h.store.UnreadCount()})
}

// groupByPeriod buckets notifications by calendar day relative to now.
func groupByPeriod(list []services.NotificationView, now time.Time) (today, yesterday, thisWeek, older []services.NotificationView) {
	today = []services.NotificationView{}
	yesterday = []services.NotificationView{}
	thisWeek = []services.NotificationView{}
	older = []services.NotificationView{}

	startOfToday := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	startOfYesterday := startOfToday.AddDate(0, 0, -1)
	startOfWeek := startOfToday.AddDate(0, 0, -7)

	for _, n := range list {
		created := n.CreatedAt.In(now.Location())
		switch {
		case !created.Before(startOfToday):
			today = append(today, n)
		case !created.Before(startOfYesterday):
			yesterday = append(yesterday, n)
		case !created.Before(startOfWeek):
			thisWeek = append(thisWeek, n)
		default:
			older = append(older, n)
		}
	}
	return today, yesterday, thisWeek, older
}
