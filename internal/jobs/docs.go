// Package jobs provides scheduled background tasks for the dispatch
// service.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle the periodic housekeeping the dispatch core requires.
//
// # Available Jobs
//
// 1. PositionReaperJob - Runs hourly to delete courier position pings
// older than the retention window
// 2. LowFundAlertJob - Runs every 15 minutes to flag active sites whose
// cash float dropped under the configured floor
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required handlers
//	jobManager := jobs.NewJobManager(purgePositionsHandler, sweepLowFundHandler, logger)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Error Handling
//
// - The position reaper logs the purge count only when rows were removed
// - The low-fund sweep logs all failures; alert delivery itself never
// unwinds the sweep
// - Failed job starts will stop any already running jobs
package jobs
