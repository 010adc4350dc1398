package jobs

import (
	"context"
	"log/slog"

	"fieldops/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// LowFundAlertJob periodically sweeps active sites whose float dropped
// under the configured floor and alerts the back office about each one.
type LowFundAlertJob struct {
	handler commands.SweepLowFundSitesCommandHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewLowFundAlertJob creates a new job for low-fund sweeps.
func NewLowFundAlertJob(handler commands.SweepLowFundSitesCommandHandler, logger *slog.Logger) *LowFundAlertJob {
	return &LowFundAlertJob{
		handler: handler,
		cron:    cron.New(),
		logger:  logger.With("component", "low_fund_alert_job"),
	}
}

// Start begins the low-fund alert job to run every 15 minutes.
func (j *LowFundAlertJob) Start() error {
	_, err := j.cron.AddFunc("*/15 * * * *", func() {
		ctx := context.Background()

		flagged, err := j.handler.Handle(ctx, commands.NewSweepLowFundSitesCommand())
		if err != nil {
			j.logger.ErrorContext(ctx, "Low-fund sweep failed", "error", err)
			return
		}

		if flagged > 0 {
			j.logger.InfoContext(ctx, "Low-fund sites flagged", "count", flagged)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Low-fund alert job started (running every 15 minutes)")
	return nil
}

// Stop stops the low-fund alert job.
func (j *LowFundAlertJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Low-fund alert job stopped")
}
