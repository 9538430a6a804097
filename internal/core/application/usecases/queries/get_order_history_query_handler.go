package queries

import (
	"context"
	"time"

	"atelier/internal/core/domain/model/kernel"
	"atelier/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrderHistoryQueryHandler reads an order's audit trail.
type GetOrderHistoryQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderHistoryQueryHandler creates a handler for the history query.
func NewGetOrderHistoryQueryHandler(db *gorm.DB) GetOrderHistoryQueryHandler {
	return GetOrderHistoryQueryHandler{db: db}
}

// Handle returns the order's history entries in recording order.
func (h GetOrderHistoryQueryHandler) Handle(
	ctx context.Context,
	query GetOrderHistoryQuery,
) ([]GetOrderHistoryQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	entries := make([]GetOrderHistoryQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			previous_stage,
			new_stage,
			previous_status,
			new_status,
			acting_user_id,
			note,
			recorded_at
		FROM order_history
		WHERE order_id = ?
		ORDER BY recorded_at, id
	`, query.OrderID().Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			resp       GetOrderHistoryQueryResponse
			id         uuid.UUID
			prevStage  *int
			newStage   int
			prevStatus *int
			newStatus  int
			actorID    uuid.UUID
			recordedAt time.Time
		)

		err = rows.Scan(
			&id,
			&prevStage,
			&newStage,
			&prevStatus,
			&newStatus,
			&actorID,
			&resp.Note,
			&recordedAt,
		)
		if err != nil {
			return nil, err
		}

		entryID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		actingUserID, idErr := kernel.UUIDFromBytes(actorID[:])
		if idErr != nil {
			return nil, idErr
		}

		resp.ID = entryID
		resp.ActingUserID = actingUserID
		resp.NewStage = order.Stage(newStage).String()
		resp.NewStatus = order.Status(newStatus).String()
		if prevStage != nil {
			s := order.Stage(*prevStage).String()
			resp.PreviousStage = &s
		}
		if prevStatus != nil {
			s := order.Status(*prevStatus).String()
			resp.PreviousStatus = &s
		}
		resp.RecordedAt = recordedAt
		entries = append(entries, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}
