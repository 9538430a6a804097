package commands_test

import (
	"testing"
	"time"

	"atelier/internal/core/application/usecases/commands"
	"atelier/internal/core/domain/model/kernel"
	"atelier/internal/core/domain/model/order"
	"atelier/internal/core/domain/services"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func productionStartEntry(t *testing.T, o *order.ProductionOrder, at time.Time) order.HistoryEntry {
	t.Helper()
	entry, err := order.RestoreHistoryEntry(
		kernel.NewUUID(), o.ID(),
		nil, order.Cutting,
		nil, order.InProduction,
		kernel.NewUUID(), "order created", at,
	)
	require.NoError(t, err)
	return entry
}

func TestUpdateStatusCommandHandler_Handle_Completion(t *testing.T) {
	ctx := t.Context()
	stored := storedOrder(t, nil, order.Packaging)
	actor := supervisorMember(t)
	cmd, err := commands.NewUpdateStatusCommand(stored.ID(), order.Completed, "all packed", actor.ID())
	require.NoError(t, err)

	history := []order.HistoryEntry{
		productionStartEntry(t, stored, stored.CreatedAt()),
	}

	orderRepo := new(MockOrderRepository)
	staffRepo := new(MockStaffRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		uow.On("StaffRepository").Return(staffRepo).Once(),
		orderRepo.On("Get", mock.Anything, stored.ID()).Return(stored, nil).Once(),
		staffRepo.On("GetMember", mock.Anything, actor.ID()).Return(actor, nil).Once(),
		orderRepo.On("ListHistory", mock.Anything, stored.ID()).Return(history, nil).Once(),
		orderRepo.On("Update", mock.Anything, mock.MatchedBy(func(o *order.ProductionOrder) bool {
			return o.Status() == order.Completed &&
				o.CompletedAt() != nil &&
				o.TotalCost().GreaterThan(decimal.Zero) &&
				o.UnitCost().GreaterThan(decimal.Zero)
		})).Return(nil).Once(),
		orderRepo.On("AppendHistory", mock.Anything, mock.MatchedBy(func(e order.HistoryEntry) bool {
			return e.NewStatus() == order.Completed
		})).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	config := new(MockSystemConfig)
	config.On("HourlyRate", mock.Anything).Return(decimal.NewFromInt(100), nil).Once()

	catalog := new(MockProductCatalog)
	catalog.On("SalePrice", mock.Anything, stored.ProductID()).Return(decimal.NewFromInt(25), nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	publisher := new(MockPublisher)
	publisher.On("Publish", mock.Anything, mock.AnythingOfType("order.HistoryEntry")).Once()

	h := commands.NewUpdateStatusCommandHandler(factory, services.NewCostEngine(), catalog, config, publisher)
	err = h.Handle(ctx, cmd)

	require.NoError(t, err)
	orderRepo.AssertExpectations(t)
	config.AssertExpectations(t)
	catalog.AssertExpectations(t)
	uow.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestUpdateStatusCommandHandler_Handle_Pause(t *testing.T) {
	ctx := t.Context()
	stored := storedOrder(t, nil, order.Sewing)
	actor := supervisorMember(t)
	cmd, err := commands.NewUpdateStatusCommand(stored.ID(), order.Paused, "machine down", actor.ID())
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	staffRepo := new(MockStaffRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		uow.On("StaffRepository").Return(staffRepo).Once(),
		orderRepo.On("Get", mock.Anything, stored.ID()).Return(stored, nil).Once(),
		staffRepo.On("GetMember", mock.Anything, actor.ID()).Return(actor, nil).Once(),
		orderRepo.On("Update", mock.Anything, mock.MatchedBy(func(o *order.ProductionOrder) bool {
			return o.Status() == order.Paused && o.TotalCost().IsZero()
		})).Return(nil).Once(),
		orderRepo.On("AppendHistory", mock.Anything, mock.AnythingOfType("order.HistoryEntry")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewUpdateStatusCommandHandler(factory, services.NewCostEngine(), nil, nil, nil)
	err = h.Handle(ctx, cmd)

	require.NoError(t, err)
	orderRepo.AssertExpectations(t)
	orderRepo.AssertNotCalled(t, "ListHistory", mock.Anything, mock.Anything)
}

func TestUpdateStatusCommandHandler_Handle_CompletionBeforePackaging(t *testing.T) {
	ctx := t.Context()
	stored := storedOrder(t, nil, order.Sewing)
	actor := supervisorMember(t)
	cmd, err := commands.NewUpdateStatusCommand(stored.ID(), order.Completed, "", actor.ID())
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	staffRepo := new(MockStaffRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		uow.On("StaffRepository").Return(staffRepo).Once(),
		orderRepo.On("Get", mock.Anything, stored.ID()).Return(stored, nil).Once(),
		staffRepo.On("GetMember", mock.Anything, actor.ID()).Return(actor, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewUpdateStatusCommandHandler(factory, services.NewCostEngine(), nil, nil, nil)
	err = h.Handle(ctx, cmd)

	require.ErrorIs(t, err, order.ErrCompletionRequiresPackaging)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}
