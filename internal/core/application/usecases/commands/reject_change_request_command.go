package commands

import (
	"errors"

	"fieldops/internal/core/domain/model/actor"
	"fieldops/internal/core/domain/model/kernel"
	"fieldops/internal/pkg/errs"
	"fieldops/internal/pkg/guard"
)

// ErrRejectChangeRequestCommandIsNotConstructed is returned when the
// command bypassed its constructor.
var ErrRejectChangeRequestCommandIsNotConstructed = errors.New(
	"RejectChangeRequestCommand must be created via NewRejectChangeRequestCommand constructor",
)

// RejectChangeRequestCommand represents an admin declining a pending
// change request.
type RejectChangeRequestCommand struct { //nolint:recvcheck //using for validation
	requestID kernel.UUID
	caller    actor.Actor
	reason    string

	guard guard.ConstructorGuard
}

// NewRejectChangeRequestCommand creates a rejection command. A reason is
// mandatory so the requester learns why.
func NewRejectChangeRequestCommand(requestID kernel.UUID, caller actor.Actor, reason string) (RejectChangeRequestCommand, error) {
	if err := errors.Join(requestID.Validate(), caller.Validate()); err != nil {
		return RejectChangeRequestCommand{}, err
	}
	if reason == "" {
		return RejectChangeRequestCommand{}, errs.NewValueIsRequiredError("reason")
	}

	return RejectChangeRequestCommand{
		requestID: requestID,
		caller:    caller,
		reason:    reason,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c RejectChangeRequestCommand) Validate() error {
	return c.guard.Validate(ErrRejectChangeRequestCommandIsNotConstructed)
}

// RequestID returns the change request to reject.
func (c RejectChangeRequestCommand) RequestID() kernel.UUID { return c.requestID }

// Caller returns the acting admin.
func (c RejectChangeRequestCommand) Caller() actor.Actor { return c.caller }

// Reason returns the admin's reason.
func (c RejectChangeRequestCommand) Reason() string { return c.reason }
