package commands

import (
	"context"
	"time"

	"atelier/internal/core/ports"
)

// AdvanceStageCommandHandler moves an order forward one stage. The actor is
// loaded first so the aggregate can enforce the workshop ownership rule.
type AdvanceStageCommandHandler struct {
	uowFactory UoWFactory
	publisher  ports.OrderEventPublisher
}

// NewAdvanceStageCommandHandler creates a handler for stage advancement.
func NewAdvanceStageCommandHandler(
	uowFactory UoWFactory,
	publisher ports.OrderEventPublisher,
) AdvanceStageCommandHandler {
	return AdvanceStageCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the stage advancement command. Order update and history
// entry are committed atomically; the event publishes only after commit.
func (h AdvanceStageCommandHandler) Handle(ctx context.Context, cmd AdvanceStageCommand) error {
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

	entry, err := aggregate.AdvanceStage(actor, time.Now().UTC())
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
