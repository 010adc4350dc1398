package jobs

import (
	"fmt"
	"log/slog"

	"fieldops/internal/core/application/usecases/commands"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	positionReaperJob *PositionReaperJob
	lowFundAlertJob   *LowFundAlertJob
}

// NewJobManager creates a new job manager with all required jobs.
// Takes command handlers as dependencies to wire up the job execution.
func NewJobManager(
	purgePositionsHandler commands.PurgeExpiredPositionsCommandHandler,
	sweepLowFundHandler commands.SweepLowFundSitesCommandHandler,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		positionReaperJob: NewPositionReaperJob(purgePositionsHandler, logger),
		lowFundAlertJob:   NewLowFundAlertJob(sweepLowFundHandler, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.positionReaperJob.Start(); err != nil {
		return fmt.Errorf("failed to start position reaper job: %w", err)
	}

	if err := jm.lowFundAlertJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.positionReaperJob.Stop()
		return fmt.Errorf("failed to start low-fund alert job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.positionReaperJob.Stop()
	jm.lowFundAlertJob.Stop()
}
