package commands

import (
	"context"
	"fmt"
	"time"

	"fieldops/internal/core/application/effects"
	"fieldops/internal/core/domain/model/changerequest"
	"fieldops/internal/core/domain/model/courier"
	"fieldops/internal/core/domain/services"
	"fieldops/internal/core/ports"
)

// CreateChangeRequestCommandHandler opens a pending change request. The
// lenient exchange rule applies at creation: the site float merely has to
// cover the requested amount, the fund floor is not consulted. No cash
// moves until the request completes.
//
// The nearest courier by fresh GPS position is matched right away so the
// admin sees a suggested carrier, but the request stays pending until the
// admin decides.
type CreateChangeRequestCommandHandler struct {
	uowFactory ChangeRequestUoWFactory
	dispatcher *effects.Dispatcher
	matcher    services.ProximityMatcher
}

// NewCreateChangeRequestCommandHandler creates a handler for change request creation.
func NewCreateChangeRequestCommandHandler(uowFactory ChangeRequestUoWFactory, dispatcher *effects.Dispatcher) CreateChangeRequestCommandHandler {
	return CreateChangeRequestCommandHandler{
		uowFactory: uowFactory,
		dispatcher: dispatcher,
		matcher:    services.NewProximityMatcher(),
	}
}

// Handle processes the change request creation command.
func (h CreateChangeRequestCommandHandler) Handle(ctx context.Context, cmd CreateChangeRequestCommand) error {
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

	siteAggregate, err := uow.SiteRepository().Get(ctx, cmd.SiteID())
	if err != nil {
		return err
	}

	request, err := changerequest.NewChangeRequest(cmd.RequestID(), cmd.SiteID(), cmd.RequestedBy(), cmd.Coins5(), cmd.Coins10(), cmd.Notes(), time.Now())
	if err != nil {
		return err
	}

	if err = siteAggregate.CanExchange(request.TotalAmount()); err != nil {
		return err
	}

	// Best-effort courier match. No fresh positions or no site coordinates
	// simply leave the request unassigned for the admin to staff.
	if origin := siteAggregate.Coordinates(); origin != nil {
		cutoff := time.Now().Add(-courier.PositionRetention)
		positions, posErr := uow.PositionRepository().GetLatestAll(ctx, cutoff)
		if posErr != nil {
			return posErr
		}

		candidates := make([]services.Candidate, 0, len(positions))
		for _, p := range positions {
			candidates = append(candidates, services.Candidate{CourierID: p.CourierID(), Point: p.Point()})
		}

		if best, ok := h.matcher.Nearest(*origin, candidates); ok {
			if err = request.AutoAssign(best.CourierID); err != nil {
				return err
			}
		}
	}

	if err = uow.ChangeRequestRepository().Add(ctx, request); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.dispatcher.Dispatch(ctx, []effects.Pending{
		effects.ToAdmins(ports.Notification{
			Title:    "Change request pending",
			Body:     fmt.Sprintf("site %s requests %d in change", siteAggregate.Name(), request.TotalAmount()),
			Priority: "normal",
			Metadata: map[string]string{"change_request_id": request.ID().String()},
		}),
	})
	return nil
}
