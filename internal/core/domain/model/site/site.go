package site

import (
	"errors"

	"fieldops/internal/core/domain/model/kernel"
	"fieldops/internal/pkg/errs"
	"fieldops/internal/pkg/guard"
)

// Status is the operational state of a site.
type Status string

const (
	// StatusActive marks a site open for dispatch.
	StatusActive Status = "active"
	// StatusInactive marks a site closed to dispatch.
	StatusInactive Status = "inactive"
	// StatusMaintenance marks a site temporarily closed for maintenance.
	StatusMaintenance Status = "maintenance"
)

var (
	// ErrSiteIsNotConstructed is returned when using an improperly initialized Site.
	ErrSiteIsNotConstructed = errors.New("Site must be created via NewSite or RestoreSite")
	// ErrNameIsRequired is returned when attempting to create a site without a name.
	ErrNameIsRequired = errs.NewValueIsRequiredError("name")
	// ErrAddressIsRequired is returned when attempting to create a site without an address.
	ErrAddressIsRequired = errs.NewValueIsRequiredError("address")
)

// Site is the aggregate for a fixed location holding a cash float. The two
// fund-sufficiency rules of the dispatch core live here:
//
//   - CanDistribute: task-originated cash movement must leave the float at or
//     above the configured minimum (the fund floor).
//   - CanExchange: change-request-originated movement only requires the float
//     to cover the amount, with no floor.
//
// The asymmetry is intentional and mirrors the shipped behavior of the two
// independent cash-movement flows; callers must not unify the rules.
type Site struct {
	id          kernel.UUID
	name        string
	address     string
	coordinates *kernel.GeoPoint
	currentFund int
	minimumFund int
	status      Status
	guard       guard.ConstructorGuard
}

// NewSite creates an active Site with its initial cash float. Coordinates
// are optional: sites without a registered position simply cannot drive
// proximity matching.
func NewSite(id kernel.UUID, name, address string, coordinates *kernel.GeoPoint, currentFund, minimumFund int) (*Site, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if name == "" {
		return nil, ErrNameIsRequired
	}
	if address == "" {
		return nil, ErrAddressIsRequired
	}
	if currentFund < 0 {
		return nil, errs.NewValueIsInvalidError("currentFund")
	}
	if minimumFund < 0 {
		return nil, errs.NewValueIsInvalidError("minimumFund")
	}
	if coordinates != nil {
		if err := coordinates.Validate(); err != nil {
			return nil, err
		}
	}

	return &Site{
		id:          id,
		name:        name,
		address:     address,
		coordinates: coordinates,
		currentFund: currentFund,
		minimumFund: minimumFund,
		status:      StatusActive,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// RestoreSite reconstructs a Site from persistence without re-running the
// creation-time invariants beyond structural validity.
func RestoreSite(id kernel.UUID, name, address string, coordinates *kernel.GeoPoint, currentFund, minimumFund int, status Status) (*Site, error) {
	s, err := NewSite(id, name, address, coordinates, max(currentFund, 0), minimumFund)
	if err != nil {
		return nil, err
	}
	s.currentFund = currentFund
	s.status = status
	return s, nil
}

// Validate ensures the Site was created through a constructor.
func (s *Site) Validate() error {
	if s == nil {
		return ErrSiteIsNotConstructed
	}
	return s.guard.Validate(ErrSiteIsNotConstructed)
}

// ID returns the site's identity.
func (s *Site) ID() kernel.UUID { return s.id }

// Name returns the site's display name.
func (s *Site) Name() string { return s.name }

// Address returns the site's street address.
func (s *Site) Address() string { return s.address }

// Coordinates returns the registered position, or nil when none exists.
func (s *Site) Coordinates() *kernel.GeoPoint { return s.coordinates }

// CurrentFund returns the cash float currently held.
func (s *Site) CurrentFund() int { return s.currentFund }

// MinimumFund returns the fund floor the float must retain after
// task-originated distributions.
func (s *Site) MinimumFund() int { return s.minimumFund }

// Status returns the operational state.
func (s *Site) Status() Status { return s.status }

// IsActive reports whether the site is open for dispatch.
func (s *Site) IsActive() bool { return s.status == StatusActive }

// CanDistribute checks the task-flow fund rule: distributing amount must
// leave the float at or above the minimum fund. Returns a
// FundInsufficientError carrying all three figures when it does not.
func (s *Site) CanDistribute(amount int) error {
	if amount <= 0 {
		return errs.NewValueIsInvalidError("amount")
	}
	if s.currentFund-amount < s.minimumFund {
		return errs.NewFundInsufficientError(amount, s.currentFund, s.minimumFund)
	}
	return nil
}

// CanExchange checks the change-request fund rule: the float only has to
// cover the amount. No fund floor applies on this path.
func (s *Site) CanExchange(amount int) error {
	if amount <= 0 {
		return errs.NewValueIsInvalidError("amount")
	}
	if s.currentFund < amount {
		return errs.NewFundInsufficientError(amount, s.currentFund, s.minimumFund)
	}
	return nil
}

// ApplyFundDelta mutates the in-memory float: positive for refills,
// negative for distributions. It performs no clamping; callers run the
// applicable sufficiency check first, and the persistence layer enforces
// the same condition atomically.
func (s *Site) ApplyFundDelta(delta int) {
	s.currentFund += delta
}

// IsBelowMinimumFund reports whether the float has dropped under the floor.
func (s *Site) IsBelowMinimumFund() bool {
	return s.currentFund < s.minimumFund
}
