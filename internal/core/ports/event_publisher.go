package ports

import (
	"context"

	"atelier/internal/core/domain/model/order"
)

// OrderEventPublisher notifies interested parties about recorded order
// transitions. Publication happens after the owning transaction commits
// and is best effort: a failed publish never rolls the transition back.
type OrderEventPublisher interface {
	Publish(ctx context.Context, entry order.HistoryEntry)
}
