package commands

import (
	"context"
	"fmt"
	"time"

	"fieldops/internal/core/application/effects"
	"fieldops/internal/core/ports"
	"fieldops/internal/pkg/errs"
)

// ApproveChangeRequestCommandHandler moves a pending change request to
// approved. Cash does not move yet; the debit waits for completion.
type ApproveChangeRequestCommandHandler struct {
	uowFactory ChangeRequestUoWFactory
	dispatcher *effects.Dispatcher
}

// NewApproveChangeRequestCommandHandler creates a handler for change request approval.
func NewApproveChangeRequestCommandHandler(uowFactory ChangeRequestUoWFactory, dispatcher *effects.Dispatcher) ApproveChangeRequestCommandHandler {
	return ApproveChangeRequestCommandHandler{
		uowFactory: uowFactory,
		dispatcher: dispatcher,
	}
}

// Handle processes the approval command.
func (h ApproveChangeRequestCommandHandler) Handle(ctx context.Context, cmd ApproveChangeRequestCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	if !cmd.Caller().IsAdmin() {
		return errs.NewForbiddenError("only admins may approve change requests")
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

	if err = request.Approve(cmd.Caller().ID(), cmd.CourierID(), time.Now()); err != nil {
		return err
	}

	if err = requestRepo.Update(ctx, request); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	pending := []effects.Pending{
		effects.ToActor(request.RequestedBy(), ports.Notification{
			Title:    "Change request approved",
			Body:     fmt.Sprintf("your request for %d was approved", request.TotalAmount()),
			Priority: "normal",
			Metadata: map[string]string{"change_request_id": request.ID().String()},
		}),
	}
	if request.AssignedCourier() != nil {
		pending = append(pending, effects.ToActor(*request.AssignedCourier(), ports.Notification{
			Title:    "Change run assigned",
			Body:     fmt.Sprintf("deliver %d in change", request.TotalAmount()),
			Priority: "normal",
			Metadata: map[string]string{"change_request_id": request.ID().String()},
		}))
	}
	h.dispatcher.Dispatch(ctx, pending)
	return nil
}
