package commands

import (
	"errors"

	"fieldops/internal/core/domain/model/kernel"
	"fieldops/internal/core/domain/model/task"
	"fieldops/internal/pkg/guard"
)

// ErrAdvanceTaskStatusCommandIsNotConstructed is returned when the command
// bypassed its constructor.
var ErrAdvanceTaskStatusCommandIsNotConstructed = errors.New(
	"AdvanceTaskStatusCommand must be created via NewAdvanceTaskStatusCommand constructor",
)

// AdvanceTaskStatusCommand represents the assignee moving a task one step
// along its forward chain.
type AdvanceTaskStatusCommand struct { //nolint:recvcheck //using for validation
	taskID   kernel.UUID
	callerID kernel.UUID
	next     task.Status

	guard guard.ConstructorGuard
}

// NewAdvanceTaskStatusCommand creates a command to advance a task. The
// target status must parse; whether the step is legal from the current
// status is the aggregate's call.
func NewAdvanceTaskStatusCommand(taskID, callerID kernel.UUID, next string) (AdvanceTaskStatusCommand, error) {
	if err := errors.Join(taskID.Validate(), callerID.Validate()); err != nil {
		return AdvanceTaskStatusCommand{}, err
	}
	status, err := task.StatusFromString(next)
	if err != nil {
		return AdvanceTaskStatusCommand{}, err
	}

	return AdvanceTaskStatusCommand{
		taskID:   taskID,
		callerID: callerID,
		next:     status,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c AdvanceTaskStatusCommand) Validate() error {
	return c.guard.Validate(ErrAdvanceTaskStatusCommandIsNotConstructed)
}

// TaskID returns the task to advance.
func (c AdvanceTaskStatusCommand) TaskID() kernel.UUID { return c.taskID }

// CallerID returns the identity of the advancing courier.
func (c AdvanceTaskStatusCommand) CallerID() kernel.UUID { return c.callerID }

// Next returns the requested target status.
func (c AdvanceTaskStatusCommand) Next() task.Status { return c.next }
