package commands

import (
	"errors"

	"fieldops/internal/pkg/guard"
)

// ErrSweepLowFundSitesCommandIsNotConstructed is returned when the command
// bypassed its constructor.
var ErrSweepLowFundSitesCommandIsNotConstructed = errors.New(
	"SweepLowFundSitesCommand must be created via NewSweepLowFundSitesCommand constructor",
)

// SweepLowFundSitesCommand represents a sweep for active sites whose float
// dropped under the floor.
type SweepLowFundSitesCommand struct { //nolint:recvcheck //using for validation
	guard guard.ConstructorGuard
}

// NewSweepLowFundSitesCommand creates a sweep command.
func NewSweepLowFundSitesCommand() SweepLowFundSitesCommand {
	return SweepLowFundSitesCommand{
		guard: guard.NewConstructorGuard(),
	}
}

// Validate ensures the command was created through the constructor.
func (c SweepLowFundSitesCommand) Validate() error {
	return c.guard.Validate(ErrSweepLowFundSitesCommandIsNotConstructed)
}
