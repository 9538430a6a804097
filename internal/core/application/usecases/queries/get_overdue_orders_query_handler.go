package queries

import (
	"context"
	"time"

	"atelier/internal/core/domain/model/kernel"
	"atelier/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOverdueOrdersQueryHandler reads overdue active orders from the database.
type GetOverdueOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetOverdueOrdersQueryHandler creates a handler for the overdue query.
func NewGetOverdueOrdersQueryHandler(db *gorm.DB) GetOverdueOrdersQueryHandler {
	return GetOverdueOrdersQueryHandler{db: db}
}

// Handle returns non-terminal orders whose estimated completion date lies
// before the query's reference moment, most overdue first.
func (h GetOverdueOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetOverdueOrdersQuery,
) ([]GetOverdueOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders := make([]GetOverdueOrdersQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			lot_code,
			client_name,
			stage,
			status,
			estimated_completion_at
		FROM production_orders
		WHERE status != ?
		  AND estimated_completion_at < ?
		ORDER BY estimated_completion_at
	`, order.Completed, query.AsOf()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			resp        GetOverdueOrdersQueryResponse
			id          uuid.UUID
			stage       int
			status      int
			estimatedAt time.Time
		)

		err = rows.Scan(
			&id,
			&resp.LotCode,
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
