package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/anonto42/orion/backend/internal/models"
	"github.com/anonto42/orion/backend/internal/repositories"
	"github.com/anonto42/orion/backend/pkg/events"
)

// NotificationService stores notifications and announces the ones it keeps
type NotificationService struct {
	notifications repositories.NotificationRepository
	users         repositories.UserRepository
	publisher     events.Publisher
	clock         Clock
}

// NewNotificationService creates a new notification service. A nil publisher disables events.
func NewNotificationService(
	notifications repositories.NotificationRepository,
	users repositories.UserRepository,
	publisher events.Publisher,
	clock Clock,
) *NotificationService {
	if publisher == nil {
		publisher = events.Noop{}
	}
	return &NotificationService{
		notifications: notifications,
		users:         users,
		publisher:     publisher,
		clock:         clock,
	}
}

// Create stores a notification unless it is self-directed or a repeated LIKE.
// It reports whether a record was written.
func (s *NotificationService) Create(
	ctx context.Context,
	recipientID, senderID string,
	kind models.NotificationType,
	contentID, preview string,
) (bool, error) {
	n := &models.Notification{
		RecipientID: recipientID,
		SenderID:    senderID,
		Type:        kind,
		ContentID:   contentID,
		Preview:     preview,
		CreatedAt:   s.clock.now(),
	}

	created, err := s.notifications.CreateNotification(ctx, n)
	if err != nil {
		return false, fmt.Errorf("failed to create notification: %w", err)
	}
	if !created {
		return false, nil
	}

	if err := s.publisher.Publish(ctx, events.NotificationCreated, n); err != nil {
		log.Warn().Err(err).Str("notification_id", n.ID).Msg("Failed to publish notification event")
	}
	return true, nil
}

// List returns the user's notifications, newest first, with the sender attached.
func (s *NotificationService) List(ctx context.Context, userID string) ([]NotificationView, error) {
	list, err := s.notifications.GetByRecipientID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load notifications: %w", err)
	}
	users, err := s.users.GetUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load users: %w", err)
	}

	dir := newDirectory(users)
	views := make([]NotificationView, 0, len(list))
	for _, n := range list {
		views = append(views, dir.hydrateNotification(n, s.clock))
	}
	return views, nil
}

func (s *NotificationService) MarkAllRead(ctx context.Context, userID string) error {
	return s.notifications.MarkAllAsRead(ctx, userID)
}

func (s *NotificationService) UnreadCount(ctx context.Context, userID string) (int, error) {
	return s.notifications.GetUnreadCount(ctx, userID)
}
