package commands

import (
	"context"
	"time"
)

// AcceptTaskCommandHandler moves a task from assigned to accepted on the
// assignee's acknowledgment. A caller who is not the assignee gets a
// forbidden error and the task is untouched.
type AcceptTaskCommandHandler struct {
	uowFactory TaskUoWFactory
}

// NewAcceptTaskCommandHandler creates a handler for task acceptance.
func NewAcceptTaskCommandHandler(uowFactory TaskUoWFactory) AcceptTaskCommandHandler {
	return AcceptTaskCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the acceptance command.
func (h AcceptTaskCommandHandler) Handle(ctx context.Context, cmd AcceptTaskCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	taskRepo := uow.TaskRepository()
	aggregate, err := taskRepo.Get(ctx, cmd.TaskID())
	if err != nil {
		return err
	}

	if err = aggregate.Accept(cmd.CallerID(), time.Now()); err != nil {
		return err
	}

	if err = taskRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
