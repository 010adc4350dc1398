package commands

import (
	"errors"

	"fieldops/internal/core/domain/model/kernel"
	"fieldops/internal/pkg/errs"
	"fieldops/internal/pkg/guard"
)

// ErrCreateChangeRequestCommandIsNotConstructed is returned when the
// command bypassed its constructor.
var ErrCreateChangeRequestCommandIsNotConstructed = errors.New(
	"CreateChangeRequestCommand must be created via NewCreateChangeRequestCommand constructor",
)

// CreateChangeRequestCommand represents a site asking for a cash exchange.
type CreateChangeRequestCommand struct { //nolint:recvcheck //using for validation
	requestID   kernel.UUID
	siteID      kernel.UUID
	requestedBy kernel.UUID
	coins5      int
	coins10     int
	notes       string

	guard guard.ConstructorGuard
}

// NewCreateChangeRequestCommand creates a change request command. The
// breakdown must be non-negative with a positive total.
func NewCreateChangeRequestCommand(requestID, siteID, requestedBy kernel.UUID, coins5, coins10 int, notes string) (CreateChangeRequestCommand, error) {
	if err := errors.Join(requestID.Validate(), siteID.Validate(), requestedBy.Validate()); err != nil {
		return CreateChangeRequestCommand{}, err
	}
	if coins5 < 0 || coins10 < 0 {
		return CreateChangeRequestCommand{}, errs.NewValueIsInvalidError("denomination breakdown")
	}
	if coins5+coins10 <= 0 {
		return CreateChangeRequestCommand{}, errs.NewValueIsInvalidError("total amount")
	}

	return CreateChangeRequestCommand{
		requestID:   requestID,
		siteID:      siteID,
		requestedBy: requestedBy,
		coins5:      coins5,
		coins10:     coins10,
		notes:       notes,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateChangeRequestCommand) Validate() error {
	return c.guard.Validate(ErrCreateChangeRequestCommandIsNotConstructed)
}

// RequestID returns the identity of the change request to create.
func (c CreateChangeRequestCommand) RequestID() kernel.UUID { return c.requestID }

// SiteID returns the requesting site.
func (c CreateChangeRequestCommand) SiteID() kernel.UUID { return c.siteID }

// RequestedBy returns the creating actor's identity.
func (c CreateChangeRequestCommand) RequestedBy() kernel.UUID { return c.requestedBy }

// Coins5 returns the 5-denomination part of the breakdown.
func (c CreateChangeRequestCommand) Coins5() int { return c.coins5 }

// Coins10 returns the 10-denomination part of the breakdown.
func (c CreateChangeRequestCommand) Coins10() int { return c.coins10 }

// Notes returns the requester's free-form notes.
func (c CreateChangeRequestCommand) Notes() string { return c.notes }
