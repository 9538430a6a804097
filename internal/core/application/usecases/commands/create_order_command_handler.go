package commands

import (
	"context"
	"fmt"
	"time"

	"atelier/internal/core/domain/model/kernel"
	"atelier/internal/core/domain/model/order"
	"atelier/internal/core/domain/services"
	"atelier/internal/core/ports"
	"atelier/internal/pkg/errs"
)

// CreateOrderCommandHandler handles order registration. It allocates the
// day-scoped lot code and persists the order together with its creation
// history entry in one transaction.
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	allocator  *services.LotCodeAllocator
	catalog    ports.ProductCatalog
	publisher  ports.OrderEventPublisher
}

// NewCreateOrderCommandHandler creates a handler for order registration.
func NewCreateOrderCommandHandler(
	uowFactory OrderUoWFactory,
	allocator *services.LotCodeAllocator,
	catalog ports.ProductCatalog,
	publisher ports.OrderEventPublisher,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		allocator:  allocator,
		catalog:    catalog,
		publisher:  publisher,
	}
}

// Handle processes the order creation command. The product is resolved
// against the catalog before any write. The lot code allocation and
// both inserts happen under the allocator lock; the transaction commits only
// after the code is bound to the new order row.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	exists, err := h.catalog.Exists(ctx, cmd.ProductID())
	if err != nil {
		return err
	}
	if !exists {
		return errs.NewValueIsInvalidErrorWithCause(
			"productId",
			fmt.Errorf("product %s is not in the catalog", cmd.ProductID().String()),
		)
	}

	now := time.Now().UTC()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()

	var entry order.HistoryEntry
	_, err = h.allocator.Allocate(ctx, orderRepo, now, func(code kernel.LotCode) error {
		newOrder, orderErr := order.NewProductionOrder(
			cmd.OrderID(),
			code,
			cmd.ProductID(),
			cmd.Quantity(),
			cmd.Size(),
			cmd.EstimatedCompletionAt(),
			cmd.ClientName(),
			cmd.AssignedUserID(),
			cmd.AssignedTeamID(),
			now,
		)
		if orderErr != nil {
			return orderErr
		}

		if addErr := orderRepo.Add(ctx, newOrder); addErr != nil {
			return addErr
		}

		entry, orderErr = newOrder.CreationEntry(cmd.ActingUserID())
		if orderErr != nil {
			return orderErr
		}

		return orderRepo.AppendHistory(ctx, entry)
	})
	if err != nil {
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
