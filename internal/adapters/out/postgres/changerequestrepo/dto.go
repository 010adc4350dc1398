// Package changerequestrepo persists change request aggregates.
package changerequestrepo

import (
	"time"

	"fieldops/internal/core/domain/model/changerequest"
	"fieldops/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// ChangeRequestDTO represents the database structure for persisting change
// request aggregates.
type ChangeRequestDTO struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey"`
	SiteID          uuid.UUID  `gorm:"type:uuid;not null;index"`
	RequestedBy     uuid.UUID  `gorm:"type:uuid;not null"`
	AssignedCourier *uuid.UUID `gorm:"type:uuid;index"`
	ApprovedBy      *uuid.UUID `gorm:"type:uuid"`
	Status          string     `gorm:"type:varchar(32);not null;index"`
	Coins5          int        `gorm:"column:coins_5;type:int;not null"`
	Coins10         int        `gorm:"column:coins_10;type:int;not null"`
	TotalAmount     int        `gorm:"type:int;not null"`
	Notes           string     `gorm:"type:text;not null"`
	RejectionReason string     `gorm:"type:text;not null"`
	CreatedAt       time.Time  `gorm:"not null;index"`
	DecidedAt       *time.Time
	CompletedAt     *time.Time
}

// TableName overrides GORM's default naming to use "change_requests".
func (ChangeRequestDTO) TableName() string {
	return "change_requests"
}

func fromDomain(aggregate *changerequest.ChangeRequest) ChangeRequestDTO {
	snap := aggregate.Snapshot()

	dto := ChangeRequestDTO{
		ID:              snap.ID.Bytes(),
		SiteID:          snap.SiteID.Bytes(),
		RequestedBy:     snap.RequestedBy.Bytes(),
		Status:          string(snap.Status),
		Coins5:          snap.Coins5,
		Coins10:         snap.Coins10,
		TotalAmount:     snap.TotalAmount,
		Notes:           snap.Notes,
		RejectionReason: snap.RejectionReason,
		CreatedAt:       snap.CreatedAt,
		DecidedAt:       snap.DecidedAt,
		CompletedAt:     snap.CompletedAt,
	}

	if snap.AssignedCourier != nil {
		raw := snap.AssignedCourier.Bytes()
		dto.AssignedCourier = &raw
	}
	if snap.ApprovedBy != nil {
		raw := snap.ApprovedBy.Bytes()
		dto.ApprovedBy = &raw
	}

	return dto
}

func toDomain(dto ChangeRequestDTO) (*changerequest.ChangeRequest, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	siteID, err := kernel.UUIDFromBytes(dto.SiteID[:])
	if err != nil {
		return nil, err
	}
	requestedBy, err := kernel.UUIDFromBytes(dto.RequestedBy[:])
	if err != nil {
		return nil, err
	}

	snap := changerequest.Snapshot{
		ID:              id,
		SiteID:          siteID,
		RequestedBy:     requestedBy,
		Status:          changerequest.Status(dto.Status),
		Coins5:          dto.Coins5,
		Coins10:         dto.Coins10,
		TotalAmount:     dto.TotalAmount,
		Notes:           dto.Notes,
		RejectionReason: dto.RejectionReason,
		CreatedAt:       dto.CreatedAt,
		DecidedAt:       dto.DecidedAt,
		CompletedAt:     dto.CompletedAt,
	}

	if dto.AssignedCourier != nil {
		courierID, idErr := kernel.UUIDFromBytes((*dto.AssignedCourier)[:])
		if idErr != nil {
			return nil, idErr
		}
		snap.AssignedCourier = &courierID
	}
	if dto.ApprovedBy != nil {
		adminID, idErr := kernel.UUIDFromBytes((*dto.ApprovedBy)[:])
		if idErr != nil {
			return nil, idErr
		}
		snap.ApprovedBy = &adminID
	}

	return changerequest.RestoreChangeRequest(snap)
}
