package commands

import (
	"errors"

	"fieldops/internal/core/domain/model/actor"
	"fieldops/internal/core/domain/model/kernel"
	"fieldops/internal/pkg/guard"
)

// ErrReassignTaskCommandIsNotConstructed is returned when the command
// bypassed its constructor.
var ErrReassignTaskCommandIsNotConstructed = errors.New(
	"ReassignTaskCommand must be created via NewReassignTaskCommand constructor",
)

// ReassignTaskCommand represents an admin moving a task to a different
// courier.
type ReassignTaskCommand struct { //nolint:recvcheck //using for validation
	taskID    kernel.UUID
	courierID kernel.UUID
	caller    actor.Actor

	guard guard.ConstructorGuard
}

// NewReassignTaskCommand creates a reassignment command.
func NewReassignTaskCommand(taskID, courierID kernel.UUID, caller actor.Actor) (ReassignTaskCommand, error) {
	if err := errors.Join(taskID.Validate(), courierID.Validate(), caller.Validate()); err != nil {
		return ReassignTaskCommand{}, err
	}

	return ReassignTaskCommand{
		taskID:    taskID,
		courierID: courierID,
		caller:    caller,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c ReassignTaskCommand) Validate() error {
	return c.guard.Validate(ErrReassignTaskCommandIsNotConstructed)
}

// TaskID returns the task to move.
func (c ReassignTaskCommand) TaskID() kernel.UUID { return c.taskID }

// CourierID returns the replacement assignee.
func (c ReassignTaskCommand) CourierID() kernel.UUID { return c.courierID }

// Caller returns the acting admin.
func (c ReassignTaskCommand) Caller() actor.Actor { return c.caller }
