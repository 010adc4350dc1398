package commands

import (
	"context"
	"fmt"

	"fieldops/internal/core/application/effects"
	"fieldops/internal/core/ports"
)

// SweepLowFundSitesCommandHandler finds active sites running under their
// fund floor and tells admins, so a refill can be scheduled before the
// site stops being able to distribute.
type SweepLowFundSitesCommandHandler struct {
	uowFactory SiteUoWFactory
	dispatcher *effects.Dispatcher
}

// NewSweepLowFundSitesCommandHandler creates a handler for the low-fund sweep.
func NewSweepLowFundSitesCommandHandler(uowFactory SiteUoWFactory, dispatcher *effects.Dispatcher) SweepLowFundSitesCommandHandler {
	return SweepLowFundSitesCommandHandler{
		uowFactory: uowFactory,
		dispatcher: dispatcher,
	}
}

// Handle runs the sweep and returns how many sites were flagged.
func (h SweepLowFundSitesCommandHandler) Handle(ctx context.Context, cmd SweepLowFundSitesCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	low, err := uow.SiteRepository().GetActiveBelowMinimumFund(ctx)
	if err != nil {
		return 0, err
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	pending := make([]effects.Pending, 0, len(low))
	for _, s := range low {
		pending = append(pending, effects.ToAdmins(ports.Notification{
			Title:    "Site fund below minimum",
			Body:     fmt.Sprintf("%s holds %d, floor is %d", s.Name(), s.CurrentFund(), s.MinimumFund()),
			Priority: "high",
			Metadata: map[string]string{"site_id": s.ID().String()},
		}))
	}
	h.dispatcher.Dispatch(ctx, pending)

	return len(low), nil
}
