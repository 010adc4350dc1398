// Package queries contains read-side operations. Handlers query the
// database directly with raw SQL for read performance, bypassing the
// aggregates, per the CQRS split.
package queries

import (
	"errors"
	"time"

	"fieldops/internal/core/domain/model/kernel"
	"fieldops/internal/pkg/guard"
)

// ErrGetCourierPositionsQueryIsNotConstructed is returned when the query
// bypassed its constructor.
var ErrGetCourierPositionsQueryIsNotConstructed = errors.New(
	"GetCourierPositionsQuery must be created via NewGetCourierPositionsQuery constructor",
)

// GetCourierPositionsQuery retrieves a courier's GPS trail inside the
// retention window, newest first.
type GetCourierPositionsQuery struct {
	courierID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetCourierPositionsQuery creates a query for one courier's trail.
func NewGetCourierPositionsQuery(courierID kernel.UUID) (GetCourierPositionsQuery, error) {
	if err := courierID.Validate(); err != nil {
		return GetCourierPositionsQuery{}, err
	}

	return GetCourierPositionsQuery{
		courierID: courierID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetCourierPositionsQuery) Validate() error {
	return q.guard.Validate(ErrGetCourierPositionsQueryIsNotConstructed)
}

// CourierID returns the courier whose trail is requested.
func (q GetCourierPositionsQuery) CourierID() kernel.UUID { return q.courierID }

// GetCourierPositionsQueryResponse is one GPS ping of the trail.
type GetCourierPositionsQueryResponse struct {
	Latitude   float64
	Longitude  float64
	AccuracyM  float64
	SpeedKMH   float64
	HeadingDeg float64
	RecordedAt time.Time
}
