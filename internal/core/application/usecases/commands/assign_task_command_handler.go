package commands

import (
	"context"
	"time"

	"atelier/internal/core/ports"
)

// AssignTaskCommandHandler hands an order to a workshop member.
type AssignTaskCommandHandler struct {
	uowFactory UoWFactory
	publisher  ports.OrderEventPublisher
}

// NewAssignTaskCommandHandler creates a handler for order assignment.
func NewAssignTaskCommandHandler(
	uowFactory UoWFactory,
	publisher ports.OrderEventPublisher,
) AssignTaskCommandHandler {
	return AssignTaskCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the assignment command.
func (h AssignTaskCommandHandler) Handle(ctx context.Context, cmd AssignTaskCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	staffRepo := uow.StaffRepository()

	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	assignee, err := staffRepo.GetMember(ctx, cmd.AssignedUserID())
	if err != nil {
		return err
	}

	entry, err := aggregate.AssignTo(assignee, time.Now().UTC())
	if err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = orderRepo.AppendHistory(ctx, entry); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	if h.publisher != nil {
		h.publisher.Publish(ctx, entry)
	}

	return nil
}
