package commands

import (
	"context"
)

// PurgeExpiredPositionsCommandHandler physically deletes GPS pings past
// the retention window. Reads already ignore them via cutoff filters;
// this reclaims the storage.
type PurgeExpiredPositionsCommandHandler struct {
	uowFactory PositionUoWFactory
}

// NewPurgeExpiredPositionsCommandHandler creates a handler for the retention sweep.
func NewPurgeExpiredPositionsCommandHandler(uowFactory PositionUoWFactory) PurgeExpiredPositionsCommandHandler {
	return PurgeExpiredPositionsCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle runs the purge and returns the number of pings deleted.
func (h PurgeExpiredPositionsCommandHandler) Handle(ctx context.Context, cmd PurgeExpiredPositionsCommand) (int64, error) {
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

	purged, err := uow.PositionRepository().PurgeOlderThan(ctx, cmd.Cutoff())
	if err != nil {
		return 0, err
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	return purged, nil
}
