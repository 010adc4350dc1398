package commands

import (
	"context"
	"time"

	"fieldops/internal/core/application/effects"
	"fieldops/internal/pkg/errs"
)

// ConfirmTaskCommandHandler records one-sided confirmations and completes
// the task the moment both sides have confirmed, wherever it sits in the
// forward chain. Completion triggered here runs the same completion
// effects as a forward-chain finish, exactly once.
type ConfirmTaskCommandHandler struct {
	uowFactory TaskUoWFactory
	dispatcher *effects.Dispatcher
}

// NewConfirmTaskCommandHandler creates a handler for task confirmation.
func NewConfirmTaskCommandHandler(uowFactory TaskUoWFactory, dispatcher *effects.Dispatcher) ConfirmTaskCommandHandler {
	return ConfirmTaskCommandHandler{
		uowFactory: uowFactory,
		dispatcher: dispatcher,
	}
}

// Handle processes the confirmation command. A courier may only confirm a
// task assigned to them; a site attendant only a task at their own site.
func (h ConfirmTaskCommandHandler) Handle(ctx context.Context, cmd ConfirmTaskCommand) error {
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

	caller := cmd.Caller()
	switch {
	case caller.IsCourier() && !aggregate.IsAssignedTo(caller.ID()):
		return errs.NewForbiddenError("task is not assigned to the caller")
	case caller.IsSite() && !aggregate.SiteID().IsEqual(caller.ID()):
		return errs.NewForbiddenError("task does not belong to the caller's site")
	}

	completed, err := aggregate.Confirm(caller.Role(), time.Now())
	if err != nil {
		return err
	}

	if err = taskRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	if completed {
		if err = applyCompletionCredit(ctx, uow.SiteRepository(), aggregate); err != nil {
			return err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	if completed {
		h.dispatcher.Dispatch(ctx, completionNotifications(aggregate))
	}
	return nil
}
