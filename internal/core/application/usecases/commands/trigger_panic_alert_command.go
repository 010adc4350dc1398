package commands

import (
	"errors"

	"fieldops/internal/core/domain/model/kernel"
	"fieldops/internal/pkg/guard"
)

// ErrTriggerPanicAlertCommandIsNotConstructed is returned when the command
// bypassed its constructor.
var ErrTriggerPanicAlertCommandIsNotConstructed = errors.New(
	"TriggerPanicAlertCommand must be created via NewTriggerPanicAlertCommand constructor",
)

// TriggerPanicAlertCommand represents a site pressing its panic button.
type TriggerPanicAlertCommand struct { //nolint:recvcheck //using for validation
	taskID      kernel.UUID
	siteID      kernel.UUID
	triggeredBy kernel.UUID
	message     string
	photos      [][]byte

	guard guard.ConstructorGuard
}

// NewTriggerPanicAlertCommand creates a panic alert command. The message
// and photo evidence are optional.
func NewTriggerPanicAlertCommand(taskID, siteID, triggeredBy kernel.UUID, message string, photos [][]byte) (TriggerPanicAlertCommand, error) {
	if err := errors.Join(taskID.Validate(), siteID.Validate(), triggeredBy.Validate()); err != nil {
		return TriggerPanicAlertCommand{}, err
	}

	return TriggerPanicAlertCommand{
		taskID:      taskID,
		siteID:      siteID,
		triggeredBy: triggeredBy,
		message:     message,
		photos:      photos,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c TriggerPanicAlertCommand) Validate() error {
	return c.guard.Validate(ErrTriggerPanicAlertCommandIsNotConstructed)
}

// TaskID returns the identity of the alert task to create.
func (c TriggerPanicAlertCommand) TaskID() kernel.UUID { return c.taskID }

// SiteID returns the site raising the alert.
func (c TriggerPanicAlertCommand) SiteID() kernel.UUID { return c.siteID }

// TriggeredBy returns the actor who pressed the button.
func (c TriggerPanicAlertCommand) TriggeredBy() kernel.UUID { return c.triggeredBy }

// Message returns the optional free-form alert message.
func (c TriggerPanicAlertCommand) Message() string { return c.message }

// Photos returns the raw evidence images to upload.
func (c TriggerPanicAlertCommand) Photos() [][]byte { return c.photos }
