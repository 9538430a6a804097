package commands

import (
	"errors"

	"atelier/internal/core/domain/model/kernel"
	"atelier/internal/pkg/guard"
)

var ErrAssignTaskCommandIsNotConstructed = errors.New(
	"AssignTaskCommand must be created via NewAssignTaskCommand constructor",
)

// AssignTaskCommand represents a request to hand an order to a workshop
// member. Only workshop-class members can hold assignments; the aggregate
// checks the role.
type AssignTaskCommand struct { //nolint:recvcheck //using for validation
	orderID        kernel.UUID
	assignedUserID kernel.UUID
	actingUserID   kernel.UUID

	guard guard.ConstructorGuard
}

// NewAssignTaskCommand creates a command to assign an order.
func NewAssignTaskCommand(
	orderID kernel.UUID,
	assignedUserID kernel.UUID,
	actingUserID kernel.UUID,
) (AssignTaskCommand, error) {
	cmd := AssignTaskCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setAssignedUserID(assignedUserID),
		cmd.setActingUserID(actingUserID),
	); err != nil {
		return AssignTaskCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AssignTaskCommand) Validate() error {
	return c.guard.Validate(ErrAssignTaskCommandIsNotConstructed)
}

// OrderID returns the order to assign.
func (c AssignTaskCommand) OrderID() kernel.UUID {
	return c.orderID
}

// AssignedUserID returns the member receiving the order.
func (c AssignTaskCommand) AssignedUserID() kernel.UUID {
	return c.assignedUserID
}

// ActingUserID returns the user performing the assignment.
func (c AssignTaskCommand) ActingUserID() kernel.UUID {
	return c.actingUserID
}

func (c *AssignTaskCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *AssignTaskCommand) setAssignedUserID(assignedUserID kernel.UUID) error {
	if err := assignedUserID.Validate(); err != nil {
		return err
	}

	c.assignedUserID = assignedUserID
	return nil
}

func (c *AssignTaskCommand) setActingUserID(actingUserID kernel.UUID) error {
	if err := actingUserID.Validate(); err != nil {
		return err
	}

	c.actingUserID = actingUserID
	return nil
}
