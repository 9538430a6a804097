package commands

import (
	"context"
	"fmt"
)

// BulkUpdateResult reports the per-order outcome of a bulk status change.
type BulkUpdateResult struct {
	Succeeded int
	Failed    int
	Errors    []string
}

// BulkUpdateStatusCommandHandler applies one status change to many orders.
// Each order runs in its own transaction: one validation failure does not
// poison the rest of the batch.
type BulkUpdateStatusCommandHandler struct {
	updateHandler UpdateStatusCommandHandler
}

// NewBulkUpdateStatusCommandHandler creates a handler for bulk status updates.
func NewBulkUpdateStatusCommandHandler(
	updateHandler UpdateStatusCommandHandler,
) BulkUpdateStatusCommandHandler {
	return BulkUpdateStatusCommandHandler{
		updateHandler: updateHandler,
	}
}

// Handle processes the bulk update command. The returned result always
// accounts for every requested order; the error covers only command-level
// failures, never individual orders.
func (h BulkUpdateStatusCommandHandler) Handle(
	ctx context.Context,
	cmd BulkUpdateStatusCommand,
) (BulkUpdateResult, error) {
	if err := cmd.Validate(); err != nil {
		return BulkUpdateResult{}, err
	}

	var result BulkUpdateResult
	for _, orderID := range cmd.OrderIDs() {
		itemCmd, err := NewUpdateStatusCommand(orderID, cmd.NewStatus(), cmd.Note(), cmd.ActingUserID())
		if err == nil {
			err = h.updateHandler.Handle(ctx, itemCmd)
		}

		if err != nil {
			result.Failed++
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %s", orderID, err))
			continue
		}
		result.Succeeded++
	}

	return result, nil
}
