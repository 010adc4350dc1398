// Package ports defines the persistence and side-effect contracts between
// the domain layer and infrastructure, enabling dependency inversion and
// testability.
package ports

import (
	"context"

	"fieldops/internal/core/domain/model/kernel"
	"fieldops/internal/core/domain/model/site"
)

// SiteRepository defines the persistence contract for site aggregates,
// including the atomic fund movements that guard against concurrent
// over-distribution.
type SiteRepository interface {
	// Add persists a new site aggregate to storage.
	Add(ctx context.Context, aggregate *site.Site) error

	// Update persists changes to an existing site aggregate.
	Update(ctx context.Context, aggregate *site.Site) error

	// Get retrieves a site aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*site.Site, error)

	// GetActiveBelowMinimumFund retrieves all active sites whose current
	// fund sits below their configured minimum. Used by the low-fund sweep.
	GetActiveBelowMinimumFund(ctx context.Context) ([]*site.Site, error)

	// DeductFund atomically subtracts amount from the site's fund. When
	// enforceMinimum is true the subtraction only happens if the remainder
	// stays at or above the site's minimum fund; otherwise the fund merely
	// must not go negative. The check and the subtraction are a single
	// statement, so two concurrent deductions cannot both pass on the same
	// balance. Returns errs.FundInsufficientError when the condition fails.
	DeductFund(ctx context.Context, id kernel.UUID, amount int, enforceMinimum bool) error

	// CreditFund atomically adds amount to the site's fund.
	CreditFund(ctx context.Context, id kernel.UUID, amount int) error
}
