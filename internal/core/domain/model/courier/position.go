package courier

import (
	"errors"
	"time"

	"fieldops/internal/core/domain/model/kernel"
	"fieldops/internal/pkg/errs"
	"fieldops/internal/pkg/guard"
)

// PositionRetention is how long a position ping stays visible to queries.
// Older pings are invisible immediately and physically purged by the
// background reaper, which runs eventually rather than at the expiry moment.
const PositionRetention = 72 * time.Hour

// ErrPositionIsNotConstructed is returned when using an improperly initialized Position.
var ErrPositionIsNotConstructed = errors.New("Position must be created via NewPosition")

// Position is a single immutable GPS ping reported by a courier. Pings are
// appended, never updated; ordering between pings is by RecordedAt only,
// not by arrival order.
type Position struct { //nolint:recvcheck //using for validation
	courierID  kernel.UUID
	point      kernel.GeoPoint
	accuracyM  float64
	speedKMH   float64
	headingDeg float64
	recordedAt time.Time
	guard      guard.ConstructorGuard
}

// NewPosition creates a Position ping. Accuracy, speed and heading are
// reported as-is by the device; only structural validity is enforced.
func NewPosition(courierID kernel.UUID, point kernel.GeoPoint, accuracyM, speedKMH, headingDeg float64, recordedAt time.Time) (Position, error) {
	if err := courierID.Validate(); err != nil {
		return Position{}, err
	}
	if err := point.Validate(); err != nil {
		return Position{}, err
	}
	if recordedAt.IsZero() {
		return Position{}, errs.NewValueIsRequiredError("recordedAt")
	}
	if accuracyM < 0 {
		return Position{}, errs.NewValueIsInvalidError("accuracyM")
	}

	return Position{
		courierID:  courierID,
		point:      point,
		accuracyM:  accuracyM,
		speedKMH:   speedKMH,
		headingDeg: headingDeg,
		recordedAt: recordedAt,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the Position was created through NewPosition.
func (p Position) Validate() error {
	return p.guard.Validate(ErrPositionIsNotConstructed)
}

// CourierID returns the reporting courier's identity.
func (p Position) CourierID() kernel.UUID { return p.courierID }

// Point returns the reported coordinates.
func (p Position) Point() kernel.GeoPoint { return p.point }

// AccuracyM returns the device-reported accuracy in meters.
func (p Position) AccuracyM() float64 { return p.accuracyM }

// SpeedKMH returns the device-reported speed in km/h.
func (p Position) SpeedKMH() float64 { return p.speedKMH }

// HeadingDeg returns the device-reported heading in degrees.
func (p Position) HeadingDeg() float64 { return p.headingDeg }

// RecordedAt returns the device timestamp of the ping.
func (p Position) RecordedAt() time.Time { return p.recordedAt }

// IsExpired reports whether the ping has outlived the retention window at
// the given instant.
func (p Position) IsExpired(now time.Time) bool {
	return now.Sub(p.recordedAt) > PositionRetention
}
