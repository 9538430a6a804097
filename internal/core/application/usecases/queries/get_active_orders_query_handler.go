package queries

import (
	"context"
	"time"

	"atelier/internal/core/domain/model/kernel"
	"atelier/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetActiveOrdersQueryHandler reads the production board from the database.
// Reads bypass the aggregate and scan projection rows directly.
type GetActiveOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetActiveOrdersQueryHandler creates a handler for the board query.
func NewGetActiveOrdersQueryHandler(db *gorm.DB) GetActiveOrdersQueryHandler {
	return GetActiveOrdersQueryHandler{db: db}
}

// Handle returns every order whose status is not terminal, ordered by lot
// code so the board groups a day's work together.
func (h GetActiveOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetActiveOrdersQuery,
) ([]GetActiveOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders := make([]GetActiveOrdersQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			lot_code,
			quantity,
			size,
			client_name,
			stage,
			status,
			estimated_completion_at
		FROM production_orders
		WHERE status != ?
		ORDER BY lot_code
	`, order.Completed).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			resp        GetActiveOrdersQueryResponse
			id          uuid.UUID
			stage       int
			status      int
			estimatedAt time.Time
		)

		err = rows.Scan(
			&id,
			&resp.LotCode,
			&resp.Quantity,
			&resp.Size,
			&resp.ClientName,
			&stage,
			&status,
			&estimatedAt,
		)
		if err != nil {
			return nil, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}

		resp.ID = orderID
		resp.Stage = order.Stage(stage).String()
		resp.Status = order.Status(status).String()
		resp.EstimatedCompletionAt = estimatedAt
		orders = append(orders, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
