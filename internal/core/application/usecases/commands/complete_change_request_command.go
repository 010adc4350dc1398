package commands

import (
	"errors"

	"fieldops/internal/core/domain/model/kernel"
	"fieldops/internal/pkg/guard"
)

// ErrCompleteChangeRequestCommandIsNotConstructed is returned when the
// command bypassed its constructor.
var ErrCompleteChangeRequestCommandIsNotConstructed = errors.New(
	"CompleteChangeRequestCommand must be created via NewCompleteChangeRequestCommand constructor",
)

// CompleteChangeRequestCommand represents the exchange physically
// happening at the site.
type CompleteChangeRequestCommand struct { //nolint:recvcheck //using for validation
	requestID kernel.UUID
	callerID  kernel.UUID

	guard guard.ConstructorGuard
}

// NewCompleteChangeRequestCommand creates a completion command.
func NewCompleteChangeRequestCommand(requestID, callerID kernel.UUID) (CompleteChangeRequestCommand, error) {
	if err := errors.Join(requestID.Validate(), callerID.Validate()); err != nil {
		return CompleteChangeRequestCommand{}, err
	}

	return CompleteChangeRequestCommand{
		requestID: requestID,
		callerID:  callerID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c CompleteChangeRequestCommand) Validate() error {
	return c.guard.Validate(ErrCompleteChangeRequestCommandIsNotConstructed)
}

// RequestID returns the change request to complete.
func (c CompleteChangeRequestCommand) RequestID() kernel.UUID { return c.requestID }

// CallerID returns the completing actor's identity.
func (c CompleteChangeRequestCommand) CallerID() kernel.UUID { return c.callerID }
