package commands

import (
	"errors"

	"fieldops/internal/core/domain/model/kernel"
	"fieldops/internal/pkg/guard"
)

// ErrAcceptTaskCommandIsNotConstructed is returned when the command
// bypassed its constructor.
var ErrAcceptTaskCommandIsNotConstructed = errors.New(
	"AcceptTaskCommand must be created via NewAcceptTaskCommand constructor",
)

// AcceptTaskCommand represents an assignee acknowledging a task.
type AcceptTaskCommand struct { //nolint:recvcheck //using for validation
	taskID   kernel.UUID
	callerID kernel.UUID

	guard guard.ConstructorGuard
}

// NewAcceptTaskCommand creates a command for a courier to accept a task.
func NewAcceptTaskCommand(taskID, callerID kernel.UUID) (AcceptTaskCommand, error) {
	if err := errors.Join(taskID.Validate(), callerID.Validate()); err != nil {
		return AcceptTaskCommand{}, err
	}

	return AcceptTaskCommand{
		taskID:   taskID,
		callerID: callerID,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c AcceptTaskCommand) Validate() error {
	return c.guard.Validate(ErrAcceptTaskCommandIsNotConstructed)
}

// TaskID returns the task to accept.
func (c AcceptTaskCommand) TaskID() kernel.UUID { return c.taskID }

// CallerID returns the identity of the accepting courier.
func (c AcceptTaskCommand) CallerID() kernel.UUID { return c.callerID }
