package commands

import (
	"context"
	"time"

	"fieldops/internal/core/application/effects"
	"fieldops/internal/core/ports"
	"fieldops/internal/pkg/errs"
)

// RejectChangeRequestCommandHandler moves a pending change request to
// rejected with the admin's reason.
type RejectChangeRequestCommandHandler struct {
	uowFactory ChangeRequestUoWFactory
	dispatcher *effects.Dispatcher
}

// NewRejectChangeRequestCommandHandler creates a handler for change request rejection.
func NewRejectChangeRequestCommandHandler(uowFactory ChangeRequestUoWFactory, dispatcher *effects.Dispatcher) RejectChangeRequestCommandHandler {
	return RejectChangeRequestCommandHandler{
		uowFactory: uowFactory,
		dispatcher: dispatcher,
	}
}

// Handle processes the rejection command.
func (h RejectChangeRequestCommandHandler) Handle(ctx context.Context, cmd RejectChangeRequestCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	if !cmd.Caller().IsAdmin() {
		return errs.NewForbiddenError("only admins may reject change requests")
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

	if err = request.Reject(cmd.Caller().ID(), cmd.Reason(), time.Now()); err != nil {
		return err
	}

	if err = requestRepo.Update(ctx, request); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.dispatcher.Dispatch(ctx, []effects.Pending{
		effects.ToActor(request.RequestedBy(), ports.Notification{
			Title:    "Change request rejected",
			Body:     cmd.Reason(),
			Priority: "normal",
			Metadata: map[string]string{"change_request_id": request.ID().String()},
		}),
	})
	return nil
}
