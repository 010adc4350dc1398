package courier

import (
	"errors"

	"fieldops/internal/core/domain/model/kernel"
	"fieldops/internal/pkg/errs"
	"fieldops/internal/pkg/guard"
)

var (
	// ErrCourierIsNotConstructed is returned when using an improperly initialized Courier.
	ErrCourierIsNotConstructed = errors.New("Courier must be created via NewCourier or RestoreCourier")
	// ErrNameIsRequired is returned when attempting to create a courier without a name.
	ErrNameIsRequired = errs.NewValueIsRequiredError("name")
)

// Courier is a mobile field agent executing tasks and change requests at
// sites. The aggregate only carries identity and eligibility; the courier's
// whereabouts live in the append-only position store.
type Courier struct {
	id     kernel.UUID
	name   string
	active bool
	guard  guard.ConstructorGuard
}

// NewCourier creates an active Courier.
func NewCourier(id kernel.UUID, name string) (*Courier, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if name == "" {
		return nil, ErrNameIsRequired
	}

	return &Courier{
		id:     id,
		name:   name,
		active: true,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// RestoreCourier reconstructs a Courier from persistence.
func RestoreCourier(id kernel.UUID, name string, active bool) (*Courier, error) {
	c, err := NewCourier(id, name)
	if err != nil {
		return nil, err
	}
	c.active = active
	return c, nil
}

// Validate ensures the Courier was created through a constructor.
func (c *Courier) Validate() error {
	if c == nil {
		return ErrCourierIsNotConstructed
	}
	return c.guard.Validate(ErrCourierIsNotConstructed)
}

// ID returns the courier's identity.
func (c *Courier) ID() kernel.UUID { return c.id }

// Name returns the courier's display name.
func (c *Courier) Name() string { return c.name }

// IsActive reports whether the courier is eligible for assignment.
func (c *Courier) IsActive() bool { return c.active }

// Deactivate removes the courier from the assignable pool.
func (c *Courier) Deactivate() { c.active = false }

// Activate returns the courier to the assignable pool.
func (c *Courier) Activate() { c.active = true }
