// Package taskrepo persists task aggregates. Kind-specific details and
// photo URLs are stored as JSONB; the lifecycle timestamps get their own
// columns for querying.
package taskrepo

import (
	"time"

	"fieldops/internal/core/domain/model/kernel"
	"fieldops/internal/core/domain/model/task"

	"github.com/google/uuid"
)

// ChangeDetailsDTO is the JSONB shape of a change breakdown.
type ChangeDetailsDTO struct {
	Coins5  int `json:"coins_5"`
	Coins10 int `json:"coins_10"`
}

// FailureDetailsDTO is the JSONB shape of failure context.
type FailureDetailsDTO struct {
	MachineID        *string `json:"machine_id,omitempty"`
	ErrorCode        string  `json:"error_code"`
	ErrorDescription string  `json:"error_description"`
	ClientName       string  `json:"client_name"`
}

// RefillDetailsDTO is the JSONB shape of a refill breakdown.
type RefillDetailsDTO struct {
	Type           string `json:"type"`
	Coins5         int    `json:"coins_5"`
	Coins10        int    `json:"coins_10"`
	PersonInCharge string `json:"person_in_charge"`
}

// TaskDTO represents the database structure for persisting task aggregates.
type TaskDTO struct {
	ID               uuid.UUID          `gorm:"type:uuid;primaryKey"`
	Kind             string             `gorm:"type:varchar(32);not null;index"`
	SiteID           uuid.UUID          `gorm:"type:uuid;not null;index"`
	CreatedBy        uuid.UUID          `gorm:"type:uuid;not null"`
	AssignedTo       *uuid.UUID         `gorm:"type:uuid;index"`
	Status           string             `gorm:"type:varchar(32);not null;index"`
	Priority         string             `gorm:"type:varchar(32);not null"`
	Description      string             `gorm:"type:text;not null"`
	Change           *ChangeDetailsDTO  `gorm:"type:jsonb;serializer:json"`
	Failure          *FailureDetailsDTO `gorm:"type:jsonb;serializer:json"`
	Refill           *RefillDetailsDTO  `gorm:"type:jsonb;serializer:json"`
	Amount           int                `gorm:"type:int;not null"`
	Photos           []string           `gorm:"type:jsonb;serializer:json"`
	LocalConfirmed   bool               `gorm:"not null"`
	CourierConfirmed bool               `gorm:"not null"`
	CreatedAt        time.Time          `gorm:"not null;index"`
	AssignedAt       *time.Time
	AcceptedAt       *time.Time
	InRouteAt        *time.Time
	OnSiteAt         *time.Time
	CompletedAt      *time.Time
}

// TableName overrides GORM's default naming to use "tasks".
func (TaskDTO) TableName() string {
	return "tasks"
}

func fromDomain(aggregate *task.Task) TaskDTO {
	snap := aggregate.Snapshot()

	dto := TaskDTO{
		ID:               snap.ID.Bytes(),
		Kind:             string(snap.Kind),
		SiteID:           snap.SiteID.Bytes(),
		CreatedBy:        snap.CreatedBy.Bytes(),
		Status:           string(snap.Status),
		Priority:         string(snap.Priority),
		Description:      snap.Description,
		Amount:           snap.Amount,
		Photos:           snap.Photos,
		LocalConfirmed:   snap.LocalConfirmed,
		CourierConfirmed: snap.CourierConfirmed,
		CreatedAt:        snap.CreatedAt,
		AssignedAt:       snap.AssignedAt,
		AcceptedAt:       snap.AcceptedAt,
		InRouteAt:        snap.InRouteAt,
		OnSiteAt:         snap.OnSiteAt,
		CompletedAt:      snap.CompletedAt,
	}

	if snap.AssignedTo != nil {
		raw := snap.AssignedTo.Bytes()
		dto.AssignedTo = &raw
	}
	if snap.Change != nil {
		dto.Change = &ChangeDetailsDTO{Coins5: snap.Change.Coins5, Coins10: snap.Change.Coins10}
	}
	if snap.Failure != nil {
		dto.Failure = &FailureDetailsDTO{
			MachineID:        snap.Failure.MachineID,
			ErrorCode:        snap.Failure.ErrorCode,
			ErrorDescription: snap.Failure.ErrorDescription,
			ClientName:       snap.Failure.ClientName,
		}
	}
	if snap.Refill != nil {
		dto.Refill = &RefillDetailsDTO{
			Type:           string(snap.Refill.Type),
			Coins5:         snap.Refill.Coins5,
			Coins10:        snap.Refill.Coins10,
			PersonInCharge: snap.Refill.PersonInCharge,
		}
	}

	return dto
}

func toDomain(dto TaskDTO) (*task.Task, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	siteID, err := kernel.UUIDFromBytes(dto.SiteID[:])
	if err != nil {
		return nil, err
	}
	createdBy, err := kernel.UUIDFromBytes(dto.CreatedBy[:])
	if err != nil {
		return nil, err
	}

	snap := task.Snapshot{
		ID:               id,
		Kind:             task.Kind(dto.Kind),
		SiteID:           siteID,
		CreatedBy:        createdBy,
		Status:           task.Status(dto.Status),
		Priority:         task.Priority(dto.Priority),
		Description:      dto.Description,
		Amount:           dto.Amount,
		Photos:           dto.Photos,
		LocalConfirmed:   dto.LocalConfirmed,
		CourierConfirmed: dto.CourierConfirmed,
		CreatedAt:        dto.CreatedAt,
		AssignedAt:       dto.AssignedAt,
		AcceptedAt:       dto.AcceptedAt,
		InRouteAt:        dto.InRouteAt,
		OnSiteAt:         dto.OnSiteAt,
		CompletedAt:      dto.CompletedAt,
	}

	if dto.AssignedTo != nil {
		assignedTo, idErr := kernel.UUIDFromBytes((*dto.AssignedTo)[:])
		if idErr != nil {
			return nil, idErr
		}
		snap.AssignedTo = &assignedTo
	}
	if dto.Change != nil {
		snap.Change = &task.ChangeDetails{Coins5: dto.Change.Coins5, Coins10: dto.Change.Coins10}
	}
	if dto.Failure != nil {
		snap.Failure = &task.FailureDetails{
			MachineID:        dto.Failure.MachineID,
			ErrorCode:        dto.Failure.ErrorCode,
			ErrorDescription: dto.Failure.ErrorDescription,
			ClientName:       dto.Failure.ClientName,
		}
	}
	if dto.Refill != nil {
		snap.Refill = &task.RefillDetails{
			Type:           task.RefillType(dto.Refill.Type),
			Coins5:         dto.Refill.Coins5,
			Coins10:        dto.Refill.Coins10,
			PersonInCharge: dto.Refill.PersonInCharge,
		}
	}

	return task.RestoreTask(snap)
}
