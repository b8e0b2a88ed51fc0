// Package events publishes domain events to interested listeners.
package events

import "context"

// NotificationCreated is the subject carrying every stored notification.
const NotificationCreated = "orion.notifications.created"

// Publisher sends a payload on a subject.
type Publisher interface {
	Publish(ctx context.Context, subject string, data any) error
	Close()
}

// Noop discards every event. It is used when no broker is configured.
type Noop struct{}

func (Noop) Publish(context.Context, string, any) error { return nil }

func (Noop) Close() {}
