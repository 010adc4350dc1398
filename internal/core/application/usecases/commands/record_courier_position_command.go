package commands

import (
	"errors"
	"time"

	"fieldops/internal/core/domain/model/kernel"
	"fieldops/internal/pkg/errs"
	"fieldops/internal/pkg/guard"
)

// ErrRecordCourierPositionCommandIsNotConstructed is returned when the
// command bypassed its constructor.
var ErrRecordCourierPositionCommandIsNotConstructed = errors.New(
	"RecordCourierPositionCommand must be created via NewRecordCourierPositionCommand constructor",
)

// RecordCourierPositionCommand represents a GPS ping reported by a courier
// device.
type RecordCourierPositionCommand struct { //nolint:recvcheck //using for validation
	courierID  kernel.UUID
	latitude   float64
	longitude  float64
	accuracyM  float64
	speedKMH   float64
	headingDeg float64
	recordedAt time.Time

	guard guard.ConstructorGuard
}

// NewRecordCourierPositionCommand creates a command to store a courier
// position ping. A zero recordedAt is replaced with the current time, since
// devices with a skewed clock routinely omit it.
func NewRecordCourierPositionCommand(courierID kernel.UUID, latitude, longitude, accuracyM, speedKMH, headingDeg float64, recordedAt time.Time) (RecordCourierPositionCommand, error) {
	if err := courierID.Validate(); err != nil {
		return RecordCourierPositionCommand{}, err
	}
	if accuracyM < 0 {
		return RecordCourierPositionCommand{}, errs.NewValueIsInvalidError("accuracyM")
	}
	if recordedAt.IsZero() {
		recordedAt = time.Now()
	}

	return RecordCourierPositionCommand{
		courierID:  courierID,
		latitude:   latitude,
		longitude:  longitude,
		accuracyM:  accuracyM,
		speedKMH:   speedKMH,
		headingDeg: headingDeg,
		recordedAt: recordedAt,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c RecordCourierPositionCommand) Validate() error {
	return c.guard.Validate(ErrRecordCourierPositionCommandIsNotConstructed)
}

// CourierID returns the reporting courier's identity.
func (c RecordCourierPositionCommand) CourierID() kernel.UUID { return c.courierID }

// Latitude returns the reported latitude.
func (c RecordCourierPositionCommand) Latitude() float64 { return c.latitude }

// Longitude returns the reported longitude.
func (c RecordCourierPositionCommand) Longitude() float64 { return c.longitude }

// AccuracyM returns the device-reported accuracy in meters.
func (c RecordCourierPositionCommand) AccuracyM() float64 { return c.accuracyM }

// SpeedKMH returns the device-reported speed in km/h.
func (c RecordCourierPositionCommand) SpeedKMH() float64 { return c.speedKMH }

// HeadingDeg returns the device-reported heading in degrees.
func (c RecordCourierPositionCommand) HeadingDeg() float64 { return c.headingDeg }

// RecordedAt returns the ping timestamp.
func (c RecordCourierPositionCommand) RecordedAt() time.Time { return c.recordedAt }
