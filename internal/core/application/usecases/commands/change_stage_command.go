package commands

import (
	"errors"

	"atelier/internal/core/domain/model/kernel"
	"atelier/internal/core/domain/model/order"
	"atelier/internal/pkg/guard"
)

var ErrChangeStageCommandIsNotConstructed = errors.New(
	"ChangeStageCommand must be created via NewChangeStageCommand constructor",
)

// ChangeStageCommand represents a request to move an order to an arbitrary
// stage. Backward moves are corrections and must carry a note; the aggregate
// enforces that.
type ChangeStageCommand struct { //nolint:recvcheck //using for validation
	orderID      kernel.UUID
	newStage     order.Stage
	note         string
	actingUserID kernel.UUID

	guard guard.ConstructorGuard
}

// NewChangeStageCommand creates a command to set an order's stage.
func NewChangeStageCommand(
	orderID kernel.UUID,
	newStage order.Stage,
	note string,
	actingUserID kernel.UUID,
) (ChangeStageCommand, error) {
	cmd := ChangeStageCommand{
		note:  note,
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setNewStage(newStage),
		cmd.setActingUserID(actingUserID),
	); err != nil {
		return ChangeStageCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ChangeStageCommand) Validate() error {
	return c.guard.Validate(ErrChangeStageCommandIsNotConstructed)
}

// OrderID returns the order to move.
func (c ChangeStageCommand) OrderID() kernel.UUID {
	return c.orderID
}

// NewStage returns the target stage.
func (c ChangeStageCommand) NewStage() order.Stage {
	return c.newStage
}

// Note returns the operator note accompanying the move.
func (c ChangeStageCommand) Note() string {
	return c.note
}

// ActingUserID returns the user performing the transition.
func (c ChangeStageCommand) ActingUserID() kernel.UUID {
	return c.actingUserID
}

func (c *ChangeStageCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *ChangeStageCommand) setNewStage(newStage order.Stage) error {
	if err := newStage.Validate(); err != nil {
		return err
	}

	c.newStage = newStage
	return nil
}

func (c *ChangeStageCommand) setActingUserID(actingUserID kernel.UUID) error {
	if err := actingUserID.Validate(); err != nil {
		return err
	}

	c.actingUserID = actingUserID
	return nil
}
