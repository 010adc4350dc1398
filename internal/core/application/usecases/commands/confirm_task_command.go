package commands

import (
	"errors"

	"fieldops/internal/core/domain/model/actor"
	"fieldops/internal/core/domain/model/kernel"
	"fieldops/internal/pkg/guard"
)

// ErrConfirmTaskCommandIsNotConstructed is returned when the command
// bypassed its constructor.
var ErrConfirmTaskCommandIsNotConstructed = errors.New(
	"ConfirmTaskCommand must be created via NewConfirmTaskCommand constructor",
)

// ConfirmTaskCommand represents one side (site or courier) confirming that
// a task's work happened.
type ConfirmTaskCommand struct { //nolint:recvcheck //using for validation
	taskID kernel.UUID
	caller actor.Actor

	guard guard.ConstructorGuard
}

// NewConfirmTaskCommand creates a confirmation command.
func NewConfirmTaskCommand(taskID kernel.UUID, caller actor.Actor) (ConfirmTaskCommand, error) {
	if err := errors.Join(taskID.Validate(), caller.Validate()); err != nil {
		return ConfirmTaskCommand{}, err
	}

	return ConfirmTaskCommand{
		taskID: taskID,
		caller: caller,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c ConfirmTaskCommand) Validate() error {
	return c.guard.Validate(ErrConfirmTaskCommandIsNotConstructed)
}

// TaskID returns the task being confirmed.
func (c ConfirmTaskCommand) TaskID() kernel.UUID { return c.taskID }

// Caller returns the confirming actor.
func (c ConfirmTaskCommand) Caller() actor.Actor { return c.caller }
