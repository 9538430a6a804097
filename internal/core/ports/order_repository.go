// Package ports defines the contracts between the application core and
// infrastructure. Adapters implement these interfaces, keeping the domain
// free of persistence and transport concerns.
package ports

import (
	"context"
	"time"

	"atelier/internal/core/domain/model/kernel"
	"atelier/internal/core/domain/model/order"
)

// OrderRepository is the persistence contract for production order aggregates
// and their history trail. The order row and its history entries live in the
// same store so a unit of work can change both atomically.
type OrderRepository interface {
	// Add persists a new order. The lot code column carries a unique index;
	// a duplicate code surfaces as errs.ErrLotCodeConflict.
	Add(ctx context.Context, aggregate *order.ProductionOrder) error

	// Update persists changes to an existing order.
	Update(ctx context.Context, aggregate *order.ProductionOrder) error

	// Get retrieves an order by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*order.ProductionOrder, error)

	// GetByLotCode retrieves an order by its lot code.
	GetByLotCode(ctx context.Context, code kernel.LotCode) (*order.ProductionOrder, error)

	// AppendHistory persists one history entry. Entries are immutable;
	// there is no update or delete counterpart.
	AppendHistory(ctx context.Context, entry order.HistoryEntry) error

	// ListHistory returns an order's full trail ordered by recording time.
	ListHistory(ctx context.Context, orderID kernel.UUID) ([]order.HistoryEntry, error)

	// MaxLotCodeSequence returns the highest lot code sequence already
	// issued for a calendar day, or 0 when the day has none.
	MaxLotCodeSequence(ctx context.Context, dayPrefix string) (int, error)

	// GetAllActive retrieves all orders whose status is not terminal.
	GetAllActive(ctx context.Context) ([]*order.ProductionOrder, error)

	// GetAllOverdue retrieves active orders whose estimated completion
	// date has already passed.
	GetAllOverdue(ctx context.Context, now time.Time) ([]*order.ProductionOrder, error)

	// GetCompletedForTeam retrieves orders assigned to the team that were
	// completed within [from, to].
	GetCompletedForTeam(ctx context.Context, teamID kernel.UUID, from, to time.Time) ([]*order.ProductionOrder, error)

	// GetCompletedForUser retrieves orders assigned to the user that were
	// completed within [from, to].
	GetCompletedForUser(ctx context.Context, userID kernel.UUID, from, to time.Time) ([]*order.ProductionOrder, error)
}
