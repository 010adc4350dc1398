package commands

import (
	"context"
	"fmt"
	"time"

	"fieldops/internal/core/application/effects"
	"fieldops/internal/core/ports"
	"fieldops/internal/pkg/errs"
)

// CompleteChangeRequestCommandHandler finishes an approved change request
// and debits the site float. The debit is an atomic compare-and-subtract
// in the repository, inside the same transaction as the status change, so
// the float can never go negative even under concurrent completions. The
// fund floor deliberately does not apply on this path.
type CompleteChangeRequestCommandHandler struct {
	uowFactory ChangeRequestUoWFactory
	dispatcher *effects.Dispatcher
}

// NewCompleteChangeRequestCommandHandler creates a handler for change request completion.
func NewCompleteChangeRequestCommandHandler(uowFactory ChangeRequestUoWFactory, dispatcher *effects.Dispatcher) CompleteChangeRequestCommandHandler {
	return CompleteChangeRequestCommandHandler{
		uowFactory: uowFactory,
		dispatcher: dispatcher,
	}
}

// Handle processes the completion command.
func (h CompleteChangeRequestCommandHandler) Handle(ctx context.Context, cmd CompleteChangeRequestCommand) error {
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

	requestRepo := uow.ChangeRequestRepository()
	request, err := requestRepo.Get(ctx, cmd.RequestID())
	if err != nil {
		return err
	}

	if assigned := request.AssignedCourier(); assigned != nil && !assigned.IsEqual(cmd.CallerID()) {
		return errs.NewForbiddenError("only the assigned courier can complete the exchange")
	}

	if err = request.Complete(time.Now()); err != nil {
		return err
	}

	if err = requestRepo.Update(ctx, request); err != nil {
		return err
	}

	if err = uow.SiteRepository().DeductFund(ctx, request.SiteID(), request.TotalAmount(), false); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.dispatcher.Dispatch(ctx, []effects.Pending{
		effects.ToActor(request.RequestedBy(), ports.Notification{
			Title:    "Change delivered",
			Body:     fmt.Sprintf("%d in change was delivered and debited", request.TotalAmount()),
			Priority: "normal",
			Metadata: map[string]string{"change_request_id": request.ID().String()},
		}),
	})
	return nil
}
