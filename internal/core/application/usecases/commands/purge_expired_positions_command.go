package commands

import (
	"errors"
	"time"

	"fieldops/internal/pkg/errs"
	"fieldops/internal/pkg/guard"
)

// ErrPurgeExpiredPositionsCommandIsNotConstructed is returned when the
// command bypassed its constructor.
var ErrPurgeExpiredPositionsCommandIsNotConstructed = errors.New(
	"PurgeExpiredPositionsCommand must be created via NewPurgeExpiredPositionsCommand constructor",
)

// PurgeExpiredPositionsCommand represents a retention sweep over stored
// GPS pings.
type PurgeExpiredPositionsCommand struct { //nolint:recvcheck //using for validation
	cutoff time.Time

	guard guard.ConstructorGuard
}

// NewPurgeExpiredPositionsCommand creates a purge command deleting pings
// recorded before cutoff.
func NewPurgeExpiredPositionsCommand(cutoff time.Time) (PurgeExpiredPositionsCommand, error) {
	if cutoff.IsZero() {
		return PurgeExpiredPositionsCommand{}, errs.NewValueIsRequiredError("cutoff")
	}

	return PurgeExpiredPositionsCommand{
		cutoff: cutoff,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c PurgeExpiredPositionsCommand) Validate() error {
	return c.guard.Validate(ErrPurgeExpiredPositionsCommandIsNotConstructed)
}

// Cutoff returns the retention boundary; everything older is deleted.
func (c PurgeExpiredPositionsCommand) Cutoff() time.Time { return c.cutoff }
