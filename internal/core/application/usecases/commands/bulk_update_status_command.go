package commands

import (
	"errors"

	"atelier/internal/core/domain/model/kernel"
	"atelier/internal/core/domain/model/order"
	"atelier/internal/pkg/errs"
	"atelier/internal/pkg/guard"
)

var ErrBulkUpdateStatusCommandIsNotConstructed = errors.New(
	"BulkUpdateStatusCommand must be created via NewBulkUpdateStatusCommand constructor",
)

// BulkUpdateStatusCommand represents a request to apply the same status
// change to several orders at once.
type BulkUpdateStatusCommand struct { //nolint:recvcheck //using for validation
	orderIDs     []kernel.UUID
	newStatus    order.Status
	note         string
	actingUserID kernel.UUID

	guard guard.ConstructorGuard
}

// NewBulkUpdateStatusCommand creates a command to update several orders.
func NewBulkUpdateStatusCommand(
	orderIDs []kernel.UUID,
	newStatus order.Status,
	note string,
	actingUserID kernel.UUID,
) (BulkUpdateStatusCommand, error) {
	cmd := BulkUpdateStatusCommand{
		note:  note,
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderIDs(orderIDs),
		cmd.setNewStatus(newStatus),
		cmd.setActingUserID(actingUserID),
	); err != nil {
		return BulkUpdateStatusCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c BulkUpdateStatusCommand) Validate() error {
	return c.guard.Validate(ErrBulkUpdateStatusCommandIsNotConstructed)
}

// OrderIDs returns the orders to update.
func (c BulkUpdateStatusCommand) OrderIDs() []kernel.UUID {
	return c.orderIDs
}

// NewStatus returns the target status.
func (c BulkUpdateStatusCommand) NewStatus() order.Status {
	return c.newStatus
}

// Note returns the operator note applied to every order.
func (c BulkUpdateStatusCommand) Note() string {
	return c.note
}

// ActingUserID returns the user performing the transitions.
func (c BulkUpdateStatusCommand) ActingUserID() kernel.UUID {
	return c.actingUserID
}

func (c *BulkUpdateStatusCommand) setOrderIDs(orderIDs []kernel.UUID) error {
	if len(orderIDs) == 0 {
		return errs.NewValueIsRequiredError("orderIDs")
	}
	for _, id := range orderIDs {
		if err := id.Validate(); err != nil {
			return err
		}
	}

	c.orderIDs = orderIDs
	return nil
}

func (c *BulkUpdateStatusCommand) setNewStatus(newStatus order.Status) error {
	if err := newStatus.Validate(); err != nil {
		return err
	}

	c.newStatus = newStatus
	return nil
}

func (c *BulkUpdateStatusCommand) setActingUserID(actingUserID kernel.UUID) error {
	if err := actingUserID.Validate(); err != nil {
		return err
	}

	c.actingUserID = actingUserID
	return nil
}
