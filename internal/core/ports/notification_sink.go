package ports

import (
	"context"

	"fieldops/internal/core/domain/model/kernel"
)

// Notification is a message delivered to an actor after a state change.
type Notification struct {
	Title    string
	Body     string
	Priority string
	Metadata map[string]string
}

// NotificationSink delivers notifications produced by command handlers.
// Delivery runs after the owning transaction commits; a failed delivery
// never unwinds the state change.
type NotificationSink interface {
	// Notify delivers a notification to a single actor.
	Notify(ctx context.Context, targetID kernel.UUID, n Notification) error

	// NotifyAdmins delivers a notification to every admin.
	NotifyAdmins(ctx context.Context, n Notification) error
}

// ImageStore persists task evidence photos and returns their public URLs.
type ImageStore interface {
	// Store uploads a raw image and returns the URL it is served from.
	Store(ctx context.Context, raw []byte) (string, error)
}
