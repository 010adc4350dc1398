package jobs

import (
	"context"
	"log/slog"
	"time"

	"fieldops/internal/core/application/usecases/commands"
	"fieldops/internal/core/domain/model/courier"

	"github.com/robfig/cron/v3"
)

// PositionReaperJob deletes courier position pings older than the
// retention window. Runs hourly; the queries filter by cutoff anyway, so
// the reaper only keeps the table from growing without bound.
type PositionReaperJob struct {
	handler commands.PurgeExpiredPositionsCommandHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewPositionReaperJob creates a new job for purging expired positions.
func NewPositionReaperJob(handler commands.PurgeExpiredPositionsCommandHandler, logger *slog.Logger) *PositionReaperJob {
	return &PositionReaperJob{
		handler: handler,
		cron:    cron.New(),
		logger:  logger.With("component", "position_reaper_job"),
	}
}

// Start begins the position reaper job to run at the top of every hour.
func (j *PositionReaperJob) Start() error {
	_, err := j.cron.AddFunc("0 * * * *", func() {
		ctx := context.Background()

		cmd, cmdErr := commands.NewPurgeExpiredPositionsCommand(time.Now().Add(-courier.PositionRetention))
		if cmdErr != nil {
			j.logger.ErrorContext(ctx, "Position reaper job misconfigured", "error", cmdErr)
			return
		}

		purged, handleErr := j.handler.Handle(ctx, cmd)
		if handleErr != nil {
			j.logger.ErrorContext(ctx, "Position reaper job failed", "error", handleErr)
			return
		}

		if purged > 0 {
			j.logger.InfoContext(ctx, "Expired positions purged", "count", purged)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Position reaper job started (running hourly)")
	return nil
}

// Stop stops the position reaper job.
func (j *PositionReaperJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Position reaper job stopped")
}
