package commands

import (
	"context"

	"fieldops/internal/core/domain/model/courier"
	"fieldops/internal/core/domain/model/kernel"
)

// RecordCourierPositionCommandHandler appends courier GPS pings. Pings are
// last-write-wins by device timestamp: a late-arriving older ping is stored
// but never shadows a fresher one, because reads order by RecordedAt.
type RecordCourierPositionCommandHandler struct {
	uowFactory PositionUoWFactory
}

// NewRecordCourierPositionCommandHandler creates a handler for position recording.
func NewRecordCourierPositionCommandHandler(uowFactory PositionUoWFactory) RecordCourierPositionCommandHandler {
	return RecordCourierPositionCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle stores the ping inside a transaction.
func (h RecordCourierPositionCommandHandler) Handle(ctx context.Context, cmd RecordCourierPositionCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	point, err := kernel.NewGeoPoint(cmd.Latitude(), cmd.Longitude())
	if err != nil {
		return err
	}

	position, err := courier.NewPosition(cmd.CourierID(), point, cmd.AccuracyM(), cmd.SpeedKMH(), cmd.HeadingDeg(), cmd.RecordedAt())
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.PositionRepository().Add(ctx, position); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
