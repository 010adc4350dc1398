package ports

import (
	"context"
	"time"

	"fieldops/internal/core/domain/model/courier"
	"fieldops/internal/core/domain/model/kernel"
)

// CourierRepository defines the persistence contract for courier aggregates.
type CourierRepository interface {
	// Add persists a new courier aggregate to storage.
	Add(ctx context.Context, aggregate *courier.Courier) error

	// Update persists changes to an existing courier aggregate.
	Update(ctx context.Context, aggregate *courier.Courier) error

	// Get retrieves a courier aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*courier.Courier, error)

	// GetFirstActive retrieves any active courier, used as the assignment
	// fallback when no courier has a fresh position. Returns
	// errs.ObjectNotFoundError when no courier is active.
	GetFirstActive(ctx context.Context) (*courier.Courier, error)
}

// PositionRepository defines the persistence contract for courier GPS
// positions. Positions are append-only; retention is enforced by the
// cutoff arguments and the periodic purge.
type PositionRepository interface {
	// Add persists a new position sample.
	Add(ctx context.Context, position courier.Position) error

	// GetLatest retrieves the courier's positions recorded at or after
	// cutoff, newest first.
	GetLatest(ctx context.Context, courierID kernel.UUID, cutoff time.Time) ([]courier.Position, error)

	// GetLatestAll retrieves the single freshest position per courier,
	// ignoring samples recorded before cutoff.
	GetLatestAll(ctx context.Context, cutoff time.Time) ([]courier.Position, error)

	// PurgeOlderThan deletes all samples recorded before cutoff and
	// returns the number of rows removed.
	PurgeOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}
