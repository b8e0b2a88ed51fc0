package repositories

import (
	"context"
	"time"

	"github.com/anonto42/orion/backend/internal/models"
	"github.com/anonto42/orion/backend/pkg/ids"
)

// NotificationRepository defines the interface for notification operations
type NotificationRepository interface {
	CreateNotification(ctx context.Context, notification *models.Notification) (bool, error)
	GetByRecipientID(ctx context.Context, recipientID string) ([]models.Notification, error)
	GetUnreadCount(ctx context.Context, recipientID string) (int, error)
	MarkAllAsRead(ctx context.Context, recipientID string) error
}

// StoreNotificationRepository implements NotificationRepository over the notifications collection
type StoreNotificationRepository struct {
	notifications *Collection[models.Notification]
}

// NewStoreNotificationRepository creates a new StoreNotificationRepository
func NewStoreNotificationRepository(c *Collections) *StoreNotificationRepository {
	return &StoreNotificationRepository{notifications: Open[models.Notification](c, NotificationsKey)}
}

// CreateNotification prepends a notification and reports whether one was stored.
// Self-directed notifications are dropped, and a LIKE is stored at most once per
// (recipient, sender, content) triple.
func (r *StoreNotificationRepository) CreateNotification(ctx context.Context, n *models.Notification) (bool, error) {
	if n.RecipientID == n.SenderID {
		return false, nil
	}
	if n.ID == "" {
		n.ID = ids.New()
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now()
	}
	n.IsRead = false

	created := false
	err := r.notifications.Update(ctx, func(list []models.Notification) ([]models.Notification, error) {
		if n.Type == models.NotificationLike {
			for _, existing := range list {
				if existing.Type == models.NotificationLike &&
					existing.RecipientID == n.RecipientID &&
					existing.SenderID == n.SenderID &&
					existing.ContentID == n.ContentID {
					return nil, ErrSkipWrite
				}
			}
		}
		created = true
		return append([]models.Notification{*n}, list...), nil
	})
	if err != nil {
		return false, err
	}
	return created, nil
}

func (r *StoreNotificationRepository) GetByRecipientID(ctx context.Context, recipientID string) ([]models.Notification, error) {
	list, err := r.notifications.ReadAll(ctx)
	if err != nil {
		return nil, err
	}
	out := []models.Notification{}
	for _, n := range list {
		if n.RecipientID == recipientID {
			out = append(out, n)
		}
	}
	return out, nil
}

func (r *StoreNotificationRepository) GetUnreadCount(ctx context.Context, recipientID string) (int, error) {
	list, err := r.GetByRecipientID(ctx, recipientID)
	if err != nil {
		return 0, err
	}
	count := 0
	for _, n := range list {
		if !n.IsRead {
			count++
		}
	}
	return count, nil
}

// MarkAllAsRead flags every notification addressed to recipientID as read.
func (r *StoreNotificationRepository) MarkAllAsRead(ctx context.Context, recipientID string) error {
	return r.notifications.Update(ctx, func(list []models.Notification) ([]models.Notification, error) {
		changed := false
		for i := range list {
			if list[i].RecipientID == recipientID && !list[i].IsRead {
				list[i].IsRead = true
				changed = true
			}
		}
		if !changed {
			return nil, ErrSkipWrite
		}
		return list, nil
	})
}
