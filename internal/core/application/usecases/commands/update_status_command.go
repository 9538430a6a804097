package commands

import (
	"errors"

	"atelier/internal/core/domain/model/kernel"
	"atelier/internal/core/domain/model/order"
	"atelier/internal/pkg/guard"
)

var ErrUpdateStatusCommandIsNotConstructed = errors.New(
	"UpdateStatusCommand must be created via NewUpdateStatusCommand constructor",
)

// UpdateStatusCommand represents a request to change an order's status.
// Moving to Completed triggers final costing in the handler.
type UpdateStatusCommand struct { //nolint:recvcheck //using for validation
	orderID      kernel.UUID
	newStatus    order.Status
	note         string
	actingUserID kernel.UUID

	guard guard.ConstructorGuard
}

// NewUpdateStatusCommand creates a command to change an order's status.
func NewUpdateStatusCommand(
	orderID kernel.UUID,
	newStatus order.Status,
	note string,
	actingUserID kernel.UUID,
) (UpdateStatusCommand, error) {
	cmd := UpdateStatusCommand{
		note:  note,
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setNewStatus(newStatus),
		cmd.setActingUserID(actingUserID),
	); err != nil {
		return UpdateStatusCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdateStatusCommandIsNotConstructed)
}

// OrderID returns the order to update.
func (c UpdateStatusCommand) OrderID() kernel.UUID {
	return c.orderID
}

// NewStatus returns the target status.
func (c UpdateStatusCommand) NewStatus() order.Status {
	return c.newStatus
}

// Note returns the operator note accompanying the change.
func (c UpdateStatusCommand) Note() string {
	return c.note
}

// ActingUserID returns the user performing the transition.
func (c UpdateStatusCommand) ActingUserID() kernel.UUID {
	return c.actingUserID
}

func (c *UpdateStatusCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *UpdateStatusCommand) setNewStatus(newStatus order.Status) error {
	if err := newStatus.Validate(); err != nil {
		return err
	}

	c.newStatus = newStatus
	return nil
}

func (c *UpdateStatusCommand) setActingUserID(actingUserID kernel.UUID) error {
	if err := actingUserID.Validate(); err != nil {
		return err
	}

	c.actingUserID = actingUserID
	return nil
}
