package commands

import (
	"context"
	"fmt"
	"time"

	"fieldops/internal/core/application/effects"
	"fieldops/internal/core/ports"
	"fieldops/internal/pkg/errs"
)

// ReassignTaskCommandHandler replaces a task's assignee on admin request.
// The replacement courier must exist and be active; the task resets to
// assigned with its travel timestamps cleared.
type ReassignTaskCommandHandler struct {
	uowFactory TaskUoWFactory
	dispatcher *effects.Dispatcher
}

// NewReassignTaskCommandHandler creates a handler for task reassignment.
func NewReassignTaskCommandHandler(uowFactory TaskUoWFactory, dispatcher *effects.Dispatcher) ReassignTaskCommandHandler {
	return ReassignTaskCommandHandler{
		uowFactory: uowFactory,
		dispatcher: dispatcher,
	}
}

// Handle processes the reassignment command.
func (h ReassignTaskCommandHandler) Handle(ctx context.Context, cmd ReassignTaskCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	if !cmd.Caller().IsAdmin() {
		return errs.NewForbiddenError("only admins may reassign tasks")
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	replacement, err := uow.CourierRepository().Get(ctx, cmd.CourierID())
	if err != nil {
		return err
	}
	if !replacement.IsActive() {
		return errs.NewValueIsInvalidError("courier is not active")
	}

	taskRepo := uow.TaskRepository()
	aggregate, err := taskRepo.Get(ctx, cmd.TaskID())
	if err != nil {
		return err
	}

	if err = aggregate.Reassign(replacement.ID(), time.Now()); err != nil {
		return err
	}

	if err = taskRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.dispatcher.Dispatch(ctx, []effects.Pending{
		effects.ToActor(replacement.ID(), ports.Notification{
			Title:    "Task reassigned to you",
			Body:     fmt.Sprintf("%s task needs your attention", aggregate.Kind()),
			Priority: string(aggregate.Priority()),
			Metadata: map[string]string{"task_id": aggregate.ID().String()},
		}),
	})
	return nil
}
