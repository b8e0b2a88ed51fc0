package models

import "time"

// NotificationType tags what triggered a notification.
type NotificationType string

const (
	NotificationLike    NotificationType = "LIKE"
	NotificationComment NotificationType = "COMMENT"
	NotificationFollow  NotificationType = "FOLLOW"
)

// Notification is a directed edge from SenderID to RecipientID. It is never self-directed.
type Notification struct {
	ID          string           `json:"id"`
	RecipientID string           `json:"recipientId"`
	SenderID    string           `json:"senderId"`
	Type        NotificationType `json:"type"`
	ContentID   string           `json:"contentId,omitempty"` // post or reel ID
	Preview     string           `json:"preview,omitempty"`   // comment text or image URL
	IsRead      bool             `json:"isRead"`
	CreatedAt   time.Time        `json:"createdAt"`
}
