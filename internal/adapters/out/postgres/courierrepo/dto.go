// Package courierrepo persists courier aggregates and their GPS position
// trail. Couriers and positions live in separate tables; positions are
// append-only and reaped past the retention window.
package courierrepo

import (
	"time"

	"fieldops/internal/core/domain/model/courier"
	"fieldops/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// CourierDTO represents the database structure for persisting courier aggregates.
type CourierDTO struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name   string    `gorm:"type:varchar(255);not null"`
	Active bool      `gorm:"not null;index"`
}

// TableName overrides GORM's default naming to use "couriers".
func (CourierDTO) TableName() string {
	return "couriers"
}

// PositionDTO represents one stored GPS ping. Rows are never updated;
// the (courier_id, recorded_at) index serves both the latest-per-courier
// read and the retention purge.
type PositionDTO struct {
	ID         int64     `gorm:"primaryKey;autoIncrement"`
	CourierID  uuid.UUID `gorm:"type:uuid;not null;index:idx_courier_recorded,priority:1"`
	Latitude   float64   `gorm:"type:double precision;not null"`
	Longitude  float64   `gorm:"type:double precision;not null"`
	AccuracyM  float64   `gorm:"type:double precision;not null"`
	SpeedKMH   float64   `gorm:"type:double precision;not null"`
	HeadingDeg float64   `gorm:"type:double precision;not null"`
	RecordedAt time.Time `gorm:"not null;index:idx_courier_recorded,priority:2,sort:desc"`
}

// TableName overrides GORM's default naming to use "courier_positions".
func (PositionDTO) TableName() string {
	return "courier_positions"
}

func fromDomain(aggregate *courier.Courier) CourierDTO {
	return CourierDTO{
		ID:     aggregate.ID().Bytes(),
		Name:   aggregate.Name(),
		Active: aggregate.IsActive(),
	}
}

func toDomain(dto CourierDTO) (*courier.Courier, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	return courier.RestoreCourier(id, dto.Name, dto.Active)
}

func positionFromDomain(position courier.Position) PositionDTO {
	return PositionDTO{
		CourierID:  position.CourierID().Bytes(),
		Latitude:   position.Point().Latitude(),
		Longitude:  position.Point().Longitude(),
		AccuracyM:  position.AccuracyM(),
		SpeedKMH:   position.SpeedKMH(),
		HeadingDeg: position.HeadingDeg(),
		RecordedAt: position.RecordedAt(),
	}
}

func positionToDomain(dto PositionDTO) (courier.Position, error) {
	id, err := kernel.UUIDFromBytes(dto.CourierID[:])
	if err != nil {
		return courier.Position{}, err
	}

	point, err := kernel.NewGeoPoint(dto.Latitude, dto.Longitude)
	if err != nil {
		return courier.Position{}, err
	}

	return courier.NewPosition(id, point, dto.AccuracyM, dto.SpeedKMH, dto.HeadingDeg, dto.RecordedAt)
}
