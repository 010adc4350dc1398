package commands

import (
	"errors"

	"fieldops/internal/core/domain/model/actor"
	"fieldops/internal/core/domain/model/kernel"
	"fieldops/internal/pkg/guard"
)

// ErrApproveChangeRequestCommandIsNotConstructed is returned when the
// command bypassed its constructor.
var ErrApproveChangeRequestCommandIsNotConstructed = errors.New(
	"ApproveChangeRequestCommand must be created via NewApproveChangeRequestCommand constructor",
)

// ApproveChangeRequestCommand represents an admin approving a pending
// change request, optionally naming the courier who will carry it out.
type ApproveChangeRequestCommand struct { //nolint:recvcheck //using for validation
	requestID kernel.UUID
	caller    actor.Actor
	courierID *kernel.UUID

	guard guard.ConstructorGuard
}

// NewApproveChangeRequestCommand creates an approval command.
func NewApproveChangeRequestCommand(requestID kernel.UUID, caller actor.Actor, courierID *kernel.UUID) (ApproveChangeRequestCommand, error) {
	if err := errors.Join(requestID.Validate(), caller.Validate()); err != nil {
		return ApproveChangeRequestCommand{}, err
	}
	if courierID != nil {
		if err := courierID.Validate(); err != nil {
			return ApproveChangeRequestCommand{}, err
		}
	}

	return ApproveChangeRequestCommand{
		requestID: requestID,
		caller:    caller,
		courierID: courierID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c ApproveChangeRequestCommand) Validate() error {
	return c.guard.Validate(ErrApproveChangeRequestCommandIsNotConstructed)
}

// RequestID returns the change request to approve.
func (c ApproveChangeRequestCommand) RequestID() kernel.UUID { return c.requestID }

// Caller returns the acting admin.
func (c ApproveChangeRequestCommand) Caller() actor.Actor { return c.caller }

// CourierID returns the courier chosen to carry out the exchange, or nil.
func (c ApproveChangeRequestCommand) CourierID() *kernel.UUID { return c.courierID }
