// Package notify contains outbound adapters that announce order lifecycle
// transitions after they are committed.
package notify

import (
	"context"
	"log/slog"

	"atelier/internal/core/domain/model/order"
	"atelier/internal/core/ports"
)

var _ ports.OrderEventPublisher = (*LogPublisher)(nil)

// LogPublisher writes every committed transition to the structured log.
// It stands in for a message broker in single-process deployments.
type LogPublisher struct {
	logger *slog.Logger
}

func NewLogPublisher(logger *slog.Logger) *LogPublisher {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogPublisher{logger: logger}
}

func (p *LogPublisher) Publish(ctx context.Context, entry order.HistoryEntry) {
	attrs := []any{
		slog.String("orderId", entry.OrderID().String()),
		slog.String("stage", entry.NewStage().String()),
		slog.String("status", entry.NewStatus().String()),
		slog.String("actingUserId", entry.ActingUserID().String()),
		slog.Time("recordedAt", entry.RecordedAt()),
	}
	if note := entry.Note(); note != "" {
		attrs = append(attrs, slog.String("note", note))
	}
	p.logger.InfoContext(ctx, "order transition recorded", attrs...)
}
