// Package jobs provides scheduled background tasks for the production
// tracking system.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required for the workshop floor.
//
// # Available Jobs
//
// 1. OverdueWatchJob - Runs every minute and logs every active order whose
// estimated completion date has passed, so supervisors see slipping lots
// without polling the board.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(overdueHandler, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
package jobs
