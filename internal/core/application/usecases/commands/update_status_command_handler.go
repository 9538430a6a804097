package commands

import (
	"context"
	"log/slog"
	"time"

	"atelier/internal/core/domain/model/order"
	"atelier/internal/core/domain/services"
	"atelier/internal/core/ports"

	"github.com/shopspring/decimal"
)

// UpdateStatusCommandHandler changes an order's status. A transition to
// Completed runs final costing in the same transaction, so an order is never
// visible as completed without its costs.
type UpdateStatusCommandHandler struct {
	uowFactory UoWFactory
	costEngine services.CostEngine
	catalog    ports.ProductCatalog
	config     ports.SystemConfig
	publisher  ports.OrderEventPublisher
}

// NewUpdateStatusCommandHandler creates a handler for status updates.
func NewUpdateStatusCommandHandler(
	uowFactory UoWFactory,
	costEngine services.CostEngine,
	catalog ports.ProductCatalog,
	config ports.SystemConfig,
	publisher ports.OrderEventPublisher,
) UpdateStatusCommandHandler {
	return UpdateStatusCommandHandler{
		uowFactory: uowFactory,
		costEngine: costEngine,
		catalog:    catalog,
		config:     config,
		publisher:  publisher,
	}
}

// Handle processes the status update command.
func (h UpdateStatusCommandHandler) Handle(ctx context.Context, cmd UpdateStatusCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
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
	staffRepo := uow.StaffRepository()

	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	actor, err := staffRepo.GetMember(ctx, cmd.ActingUserID())
	if err != nil {
		return err
	}

	entry, err := aggregate.UpdateStatus(actor, cmd.NewStatus(), cmd.Note(), now)
	if err != nil {
		return err
	}

	if aggregate.IsCompleted() {
		if err = h.applyFinalCosting(ctx, orderRepo, aggregate, entry, now); err != nil {
			return err
		}
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

// applyFinalCosting computes and stamps the completed order's costs. Missing
// reference data degrades to the engine defaults rather than blocking the
// completion; only domain errors abort the transaction.
func (h UpdateStatusCommandHandler) applyFinalCosting(
	ctx context.Context,
	orderRepo ports.OrderRepository,
	aggregate *order.ProductionOrder,
	entry order.HistoryEntry,
	now time.Time,
) error {
	history, err := orderRepo.ListHistory(ctx, aggregate.ID())
	if err != nil {
		return err
	}
	// The completing entry is not persisted yet; the interval scan needs it
	// to close the last production window.
	history = append(history, entry)

	hourlyRate := decimal.Zero
	if h.config != nil {
		rate, rateErr := h.config.HourlyRate(ctx)
		if rateErr != nil {
			slog.Warn("hourly rate lookup failed, using default",
				"order_id", aggregate.ID().String(), "error", rateErr)
		} else {
			hourlyRate = rate
		}
	}

	salePrice := decimal.Zero
	if h.catalog != nil {
		price, priceErr := h.catalog.SalePrice(ctx, aggregate.ProductID())
		if priceErr != nil {
			slog.Warn("sale price lookup failed, skipping margin",
				"order_id", aggregate.ID().String(), "error", priceErr)
		} else {
			salePrice = price
		}
	}

	costing, err := h.costEngine.CalculateFinalOrderCost(aggregate, history, hourlyRate, salePrice, now)
	if err != nil {
		return err
	}

	return aggregate.ApplyCosting(costing.TotalCost, costing.UnitCost, costing.ProfitMargin)
}
