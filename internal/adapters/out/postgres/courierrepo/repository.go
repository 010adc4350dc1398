package courierrepo

import (
	"context"
	"errors"
	"time"

	"fieldops/internal/core/domain/model/courier"
	"fieldops/internal/core/domain/model/kernel"
	"fieldops/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormCourierRepository implements CourierRepository using GORM.
type GormCourierRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormCourierRepository creates a new GORM courier repository.
func NewGormCourierRepository(db *gorm.DB, tracker aggregateTracker) *GormCourierRepository {
	return &GormCourierRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new courier to the database.
func (r *GormCourierRepository) Add(ctx context.Context, aggregate *courier.Courier) error {
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

// Update saves an existing courier to the database.
func (r *GormCourierRepository) Update(ctx context.Context, aggregate *courier.Courier) error {
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

// Get retrieves a courier by its unique identifier.
func (r *GormCourierRepository) Get(ctx context.Context, id kernel.UUID) (*courier.Courier, error) {
	var dto CourierDTO

	err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("courier", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetFirstActive retrieves any active courier, ordered by ID for a
// deterministic fallback pick.
func (r *GormCourierRepository) GetFirstActive(ctx context.Context) (*courier.Courier, error) {
	var dto CourierDTO

	err := r.db.WithContext(ctx).
		Where("active").
		Order("id").
		First(&dto).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("courier", "first active")
		}
		return nil, err
	}

	return toDomain(dto)
}

// GormPositionRepository implements PositionRepository using GORM.
// Positions carry no aggregate tracking: they are immutable pings, not
// mutated aggregates.
type GormPositionRepository struct {
	db *gorm.DB
}

// NewGormPositionRepository creates a new GORM position repository.
func NewGormPositionRepository(db *gorm.DB) *GormPositionRepository {
	return &GormPositionRepository{db: db}
}

// Add appends a position ping.
func (r *GormPositionRepository) Add(ctx context.Context, position courier.Position) error {
	if err := position.Validate(); err != nil {
		return err
	}

	dto := positionFromDomain(position)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// GetLatest retrieves the courier's pings recorded at or after cutoff,
// newest first.
func (r *GormPositionRepository) GetLatest(ctx context.Context, courierID kernel.UUID, cutoff time.Time) ([]courier.Position, error) {
	var dtos []PositionDTO

	err := r.db.WithContext(ctx).
		Where("courier_id = ? AND recorded_at >= ?", courierID.Bytes(), cutoff).
		Order("recorded_at DESC").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	return positionsToDomain(dtos)
}

// GetLatestAll retrieves the single freshest in-retention ping per active
// courier. A deactivated courier's pings stay in the table but must never
// surface here: this result set feeds assignment.
func (r *GormPositionRepository) GetLatestAll(ctx context.Context, cutoff time.Time) ([]courier.Position, error) {
	var dtos []PositionDTO

	err := r.db.WithContext(ctx).Raw(`
		SELECT DISTINCT ON (p.courier_id) p.*
		FROM courier_positions p
		JOIN couriers c ON c.id = p.courier_id AND c.active
		WHERE p.recorded_at >= ?
		ORDER BY p.courier_id, p.recorded_at DESC
	`, cutoff).Scan(&dtos).Error
	if err != nil {
		return nil, err
	}

	return positionsToDomain(dtos)
}

// PurgeOlderThan deletes pings recorded before cutoff.
func (r *GormPositionRepository) PurgeOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("recorded_at < ?", cutoff).
		Delete(&PositionDTO{})
	if result.Error != nil {
		return 0, result.Error
	}

	return result.RowsAffected, nil
}

func positionsToDomain(dtos []PositionDTO) ([]courier.Position, error) {
	positions := make([]courier.Position, 0, len(dtos))
	for _, dto := range dtos {
		position, err := positionToDomain(dto)
		if err != nil {
			return nil, err
		}
		positions = append(positions, position)
	}
	return positions, nil
}
