package commands

import (
	"errors"

	"atelier/internal/core/domain/model/kernel"
	"atelier/internal/pkg/guard"
)

var ErrAdvanceStageCommandIsNotConstructed = errors.New(
	"AdvanceStageCommand must be created via NewAdvanceStageCommand constructor",
)

// AdvanceStageCommand represents a request to move an order forward exactly
// one production stage.
type AdvanceStageCommand struct { //nolint:recvcheck //using for validation
	orderID      kernel.UUID
	actingUserID kernel.UUID

	guard guard.ConstructorGuard
}

// NewAdvanceStageCommand creates a command to advance an order's stage.
func NewAdvanceStageCommand(orderID, actingUserID kernel.UUID) (AdvanceStageCommand, error) {
	cmd := AdvanceStageCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setActingUserID(actingUserID),
	); err != nil {
		return AdvanceStageCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AdvanceStageCommand) Validate() error {
	return c.guard.Validate(ErrAdvanceStageCommandIsNotConstructed)
}

// OrderID returns the order to advance.
func (c AdvanceStageCommand) OrderID() kernel.UUID {
	return c.orderID
}

// ActingUserID returns the user performing the transition.
func (c AdvanceStageCommand) ActingUserID() kernel.UUID {
	return c.actingUserID
}

func (c *AdvanceStageCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *AdvanceStageCommand) setActingUserID(actingUserID kernel.UUID) error {
	if err := actingUserID.Validate(); err != nil {
		return err
	}

	c.actingUserID = actingUserID
	return nil
}
