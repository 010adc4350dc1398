// Package effects delivers the side effects of committed commands.
// Handlers collect pending notifications while mutating state and hand
// them to the Dispatcher only after the transaction commits, so a slow or
// failing delivery channel can never unwind a state change.
package effects

import (
	"context"
	"log/slog"

	"fieldops/internal/core/domain/model/kernel"
	"fieldops/internal/core/ports"
)

// Pending is a notification waiting for its command's commit.
type Pending struct {
	// TargetID is the recipient; ignored when Broadcast is set.
	TargetID kernel.UUID
	// Broadcast sends to every admin instead of a single recipient.
	Broadcast bool
	Note      ports.Notification
}

// ToActor builds a Pending addressed to a single recipient.
func ToActor(targetID kernel.UUID, note ports.Notification) Pending {
	return Pending{TargetID: targetID, Note: note}
}

// ToAdmins builds a Pending addressed to every admin.
func ToAdmins(note ports.Notification) Pending {
	return Pending{Broadcast: true, Note: note}
}

// Dispatcher pushes pending notifications into the sink, logging failures
// instead of propagating them.
type Dispatcher struct {
	sink   ports.NotificationSink
	logger *slog.Logger
}

// NewDispatcher creates a Dispatcher over the given sink.
func NewDispatcher(sink ports.NotificationSink, logger *slog.Logger) *Dispatcher {
	return &Dispatcher{
		sink:   sink,
		logger: logger.With("component", "effects"),
	}
}

// Dispatch delivers every pending notification. Failures are logged and
// skipped; Dispatch never returns an error.
func (d *Dispatcher) Dispatch(ctx context.Context, pending []Pending) {
	for _, p := range pending {
		var err error
		if p.Broadcast {
			err = d.sink.NotifyAdmins(ctx, p.Note)
		} else {
			err = d.sink.Notify(ctx, p.TargetID, p.Note)
		}
		if err != nil {
			d.logger.Error("notification delivery failed",
				"title", p.Note.Title,
				"broadcast", p.Broadcast,
				"error", err)
		}
	}
}
