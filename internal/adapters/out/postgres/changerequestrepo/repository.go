package changerequestrepo

import (
	"context"
	"errors"

	"fieldops/internal/core/domain/model/changerequest"
	"fieldops/internal/core/domain/model/kernel"
	"fieldops/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormChangeRequestRepository implements ChangeRequestRepository using GORM.
type GormChangeRequestRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormChangeRequestRepository creates a new GORM change request repository.
func NewGormChangeRequestRepository(db *gorm.DB, tracker aggregateTracker) *GormChangeRequestRepository {
	return &GormChangeRequestRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new change request to the database.
func (r *GormChangeRequestRepository) Add(ctx context.Context, aggregate *changerequest.ChangeRequest) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing change request to the database.
func (r *GormChangeRequestRepository) Update(ctx context.Context, aggregate *changerequest.ChangeRequest) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Save(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a change request by its unique identifier.
func (r *GormChangeRequestRepository) Get(ctx context.Context, id kernel.UUID) (*changerequest.ChangeRequest, error) {
	var dto ChangeRequestDTO

	err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("changeRequest", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}
