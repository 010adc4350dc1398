package commands

import (
	"context"
	"fmt"
	"time"

	"fieldops/internal/core/application/effects"
	"fieldops/internal/core/domain/model/task"
	"fieldops/internal/core/ports"
)

// AdvanceTaskStatusCommandHandler moves a task one forward-chain step on
// the assignee's report. When the step lands on completed, completion
// effects run: a reserve refill credits the site float inside the same
// transaction.
type AdvanceTaskStatusCommandHandler struct {
	uowFactory TaskUoWFactory
	dispatcher *effects.Dispatcher
}

// NewAdvanceTaskStatusCommandHandler creates a handler for status advancement.
func NewAdvanceTaskStatusCommandHandler(uowFactory TaskUoWFactory, dispatcher *effects.Dispatcher) AdvanceTaskStatusCommandHandler {
	return AdvanceTaskStatusCommandHandler{
		uowFactory: uowFactory,
		dispatcher: dispatcher,
	}
}

// Handle processes the advancement command.
func (h AdvanceTaskStatusCommandHandler) Handle(ctx context.Context, cmd AdvanceTaskStatusCommand) error {
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

	if err = aggregate.Advance(cmd.CallerID(), cmd.Next(), time.Now()); err != nil {
		return err
	}

	if err = taskRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = applyCompletionCredit(ctx, uow.SiteRepository(), aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	if aggregate.Status() == task.StatusCompleted {
		h.dispatcher.Dispatch(ctx, completionNotifications(aggregate))
	}
	return nil
}

// applyCompletionCredit credits the site float when a just-completed task
// carries one (reserve refills only). Must run inside the task's
// transaction so the credit and the status change land together.
func applyCompletionCredit(ctx context.Context, sites ports.SiteRepository, t *task.Task) error {
	if t.Status() != task.StatusCompleted {
		return nil
	}
	credit := t.FundCreditOnCompletion()
	if credit == 0 {
		return nil
	}
	return sites.CreditFund(ctx, t.SiteID(), credit)
}

func completionNotifications(t *task.Task) []effects.Pending {
	return []effects.Pending{
		effects.ToActor(t.CreatedBy(), ports.Notification{
			Title:    "Task completed",
			Body:     fmt.Sprintf("%s task is done", t.Kind()),
			Priority: string(task.PriorityNormal),
			Metadata: map[string]string{"task_id": t.ID().String()},
		}),
	}
}
