package commands

import (
	"context"
	"time"

	"atelier/internal/core/ports"
)

// ChangeStageCommandHandler moves an order to an arbitrary stage.
type ChangeStageCommandHandler struct {
	uowFactory UoWFactory
	publisher  ports.OrderEventPublisher
}

// NewChangeStageCommandHandler creates a handler for explicit stage moves.
func NewChangeStageCommandHandler(
	uowFactory UoWFactory,
	publisher ports.OrderEventPublisher,
) ChangeStageCommandHandler {
	return ChangeStageCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the stage change command.
func (h ChangeStageCommandHandler) Handle(ctx context.Context, cmd ChangeStageCommand) error {
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

	actor, err := staffRepo.GetMember(ctx, cmd.ActingUserID())
	if err != nil {
		return err
	}

	entry, err := aggregate.ChangeStage(actor, cmd.NewStage(), cmd.Note(), time.Now().UTC())
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
