package commands

import (
	"errors"
	"strings"
	"time"

	"atelier/internal/core/domain/model/kernel"
	"atelier/internal/pkg/errs"
	"atelier/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderCommand represents a request to register a new production order.
// The lot code is not part of the command: it is allocated by the handler at
// creation time so the day sequence stays gapless under concurrency.
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID               kernel.UUID
	productID             kernel.UUID
	quantity              int
	size                  string
	estimatedCompletionAt time.Time
	clientName            string
	assignedUserID        *kernel.UUID
	assignedTeamID        *kernel.UUID
	actingUserID          kernel.UUID

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to register a new production order.
// Deep validation (future completion date, assignee role) happens in the
// domain; here only presence and basic shape are checked.
func NewCreateOrderCommand(
	orderID kernel.UUID,
	productID kernel.UUID,
	quantity int,
	size string,
	estimatedCompletionAt time.Time,
	clientName string,
	assignedUserID *kernel.UUID,
	assignedTeamID *kernel.UUID,
	actingUserID kernel.UUID,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		estimatedCompletionAt: estimatedCompletionAt,
		clientName:            clientName,
		guard:                 guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setProductID(productID),
		cmd.setQuantity(quantity),
		cmd.setSize(size),
		cmd.setAssignedUserID(assignedUserID),
		cmd.setAssignedTeamID(assignedTeamID),
		cmd.setActingUserID(actingUserID),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the identifier for the new order.
func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// ProductID returns the catalog product the order produces.
func (c CreateOrderCommand) ProductID() kernel.UUID {
	return c.productID
}

// Quantity returns the number of garment units to produce.
func (c CreateOrderCommand) Quantity() int {
	return c.quantity
}

// Size returns the garment size label.
func (c CreateOrderCommand) Size() string {
	return c.size
}

// EstimatedCompletionAt returns the promised completion date.
func (c CreateOrderCommand) EstimatedCompletionAt() time.Time {
	return c.estimatedCompletionAt
}

// ClientName returns the optional client the order is produced for.
func (c CreateOrderCommand) ClientName() string {
	return c.clientName
}

// AssignedUserID returns the optional initial assignee.
func (c CreateOrderCommand) AssignedUserID() *kernel.UUID {
	return c.assignedUserID
}

// AssignedTeamID returns the optional initial team.
func (c CreateOrderCommand) AssignedTeamID() *kernel.UUID {
	return c.assignedTeamID
}

// ActingUserID returns the user recorded in the creation history entry.
func (c CreateOrderCommand) ActingUserID() kernel.UUID {
	return c.actingUserID
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setProductID(productID kernel.UUID) error {
	if err := productID.Validate(); err != nil {
		return err
	}

	c.productID = productID
	return nil
}

func (c *CreateOrderCommand) setQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidError("quantity")
	}

	c.quantity = quantity
	return nil
}

func (c *CreateOrderCommand) setSize(size string) error {
	if strings.TrimSpace(size) == "" {
		return errs.NewValueIsRequiredError("size")
	}

	c.size = size
	return nil
}

func (c *CreateOrderCommand) setAssignedUserID(userID *kernel.UUID) error {
	if userID != nil {
		if err := userID.Validate(); err != nil {
			return err
		}
	}

	c.assignedUserID = userID
	return nil
}

func (c *CreateOrderCommand) setAssignedTeamID(teamID *kernel.UUID) error {
	if teamID != nil {
		if err := teamID.Validate(); err != nil {
			return err
		}
	}

	c.assignedTeamID = teamID
	return nil
}

func (c *CreateOrderCommand) setActingUserID(actingUserID kernel.UUID) error {
	if err := actingUserID.Validate(); err != nil {
		return err
	}

	c.actingUserID = actingUserID
	return nil
}
