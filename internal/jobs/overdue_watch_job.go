package jobs

import (
	"context"
	"log/slog"
	"time"

	"atelier/internal/core/application/usecases/queries"

	"github.com/robfig/cron/v3"
)

// OverdueWatchJob periodically reports orders past their estimated
// completion date. It only observes; nothing about the orders changes.
type OverdueWatchJob struct {
	handler queries.GetOverdueOrdersQueryHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewOverdueWatchJob creates a job that surveys the floor for late lots.
func NewOverdueWatchJob(handler queries.GetOverdueOrdersQueryHandler, logger *slog.Logger) *OverdueWatchJob {
	return &OverdueWatchJob{
		handler: handler,
		cron:    cron.New(),
		logger:  logger.With("component", "overdue_watch_job"),
	}
}

// Start begins the overdue watch job to run every minute.
func (j *OverdueWatchJob) Start() error {
	_, err := j.cron.AddFunc("* * * * *", func() {
		ctx := context.Background()

		query, err := queries.NewGetOverdueOrdersQuery(time.Now().UTC())
		if err != nil {
			j.logger.ErrorContext(ctx, "Overdue watch job failed to build query", "error", err)
			return
		}

		overdue, err := j.handler.Handle(ctx, query)
		if err != nil {
			j.logger.ErrorContext(ctx, "Overdue watch job failed", "error", err)
			return
		}

		for _, o := range overdue {
			j.logger.WarnContext(ctx, "Order is past its estimated completion date",
				"orderId", o.ID.String(),
				"lotCode", o.LotCode,
				"stage", o.Stage,
				"status", o.Status,
				"estimatedCompletionAt", o.EstimatedCompletionAt,
			)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Overdue watch job started (running every minute)")
	return nil
}

// Stop stops the overdue watch job.
func (j *OverdueWatchJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Overdue watch job stopped")
}
