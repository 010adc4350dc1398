package siterepo

import (
	"context"
	"errors"

	"fieldops/internal/core/domain/model/kernel"
	"fieldops/internal/core/domain/model/site"
	"fieldops/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormSiteRepository implements SiteRepository using GORM.
type GormSiteRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormSiteRepository creates a new GORM site repository.
func NewGormSiteRepository(db *gorm.DB, tracker aggregateTracker) *GormSiteRepository {
	return &GormSiteRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new site to the database.
func (r *GormSiteRepository) Add(ctx context.Context, aggregate *site.Site) error {
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

// Update saves an existing site to the database.
func (r *GormSiteRepository) Update(ctx context.Context, aggregate *site.Site) error {
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

// Get retrieves a site by its unique identifier.
func (r *GormSiteRepository) Get(ctx context.Context, id kernel.UUID) (*site.Site, error) {
	var dto SiteDTO

	err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("site", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetActiveBelowMinimumFund retrieves active sites whose float dropped
// under their floor.
func (r *GormSiteRepository) GetActiveBelowMinimumFund(ctx context.Context) ([]*site.Site, error) {
	var dtos []SiteDTO

	err := r.db.WithContext(ctx).
		Where("status = ? AND current_fund < minimum_fund", string(site.StatusActive)).
		Order("name").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	sites := make([]*site.Site, 0, len(dtos))
	for _, dto := range dtos {
		aggregate, convErr := toDomain(dto)
		if convErr != nil {
			return nil, convErr
		}
		sites = append(sites, aggregate)
	}

	return sites, nil
}

// DeductFund atomically subtracts amount from the site's float. The
// sufficiency condition is part of the UPDATE itself, so concurrent
// deductions serialize on the row and the losing one fails instead of
// overdrawing.
func (r *GormSiteRepository) DeductFund(ctx context.Context, id kernel.UUID, amount int, enforceMinimum bool) error {
	if amount <= 0 {
		return errs.NewValueIsInvalidError("amount")
	}

	condition := "current_fund - ? >= 0"
	if enforceMinimum {
		condition = "current_fund - ? >= minimum_fund"
	}

	result := r.db.WithContext(ctx).
		Model(&SiteDTO{}).
		Where("id = ?", id.Bytes()).
		Where(condition, amount).
		UpdateColumn("current_fund", gorm.Expr("current_fund - ?", amount))
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		// Either the site is gone or the condition failed; re-read to
		// report accurate figures.
		aggregate, err := r.Get(ctx, id)
		if err != nil {
			return err
		}
		return errs.NewFundInsufficientError(amount, aggregate.CurrentFund(), aggregate.MinimumFund())
	}

	return nil
}

// CreditFund atomically adds amount to the site's float.
func (r *GormSiteRepository) CreditFund(ctx context.Context, id kernel.UUID, amount int) error {
	if amount <= 0 {
		return errs.NewValueIsInvalidError("amount")
	}

	result := r.db.WithContext(ctx).
		Model(&SiteDTO{}).
		Where("id = ?", id.Bytes()).
		UpdateColumn("current_fund", gorm.Expr("current_fund + ?", amount))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("site", id.String())
	}

	return nil
}
