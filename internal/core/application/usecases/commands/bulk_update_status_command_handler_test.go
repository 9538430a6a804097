package commands_test

import (
	"testing"

	"atelier/internal/core/application/usecases/commands"
	"atelier/internal/core/domain/model/kernel"
	"atelier/internal/core/domain/model/order"
	"atelier/internal/core/domain/services"
	"atelier/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNewBulkUpdateStatusCommand(t *testing.T) {
	t.Run("should fail with empty order list", func(t *testing.T) {
		_, err := commands.NewBulkUpdateStatusCommand(nil, order.Paused, "", kernel.NewUUID())

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("zero value fails validation", func(t *testing.T) {
		var cmd commands.BulkUpdateStatusCommand

		require.ErrorIs(t, cmd.Validate(), commands.ErrBulkUpdateStatusCommandIsNotConstructed)
	})
}

func TestBulkUpdateStatusCommandHandler_Handle_PartialFailure(t *testing.T) {
	ctx := t.Context()
	actor := supervisorMember(t)
	okOrder := storedOrder(t, nil, order.Sewing)
	missingID := kernel.NewUUID()

	cmd, err := commands.NewBulkUpdateStatusCommand(
		[]kernel.UUID{okOrder.ID(), missingID}, order.Paused, "holiday stop", actor.ID(),
	)
	require.NoError(t, err)

	okRepo := new(MockOrderRepository)
	okStaff := new(MockStaffRepository)
	okUow := new(MockUoW)
	mock.InOrder(
		okUow.On("Begin", ctx).Return(nil).Once(),
		okUow.On("OrderRepository").Return(okRepo).Once(),
		okUow.On("StaffRepository").Return(okStaff).Once(),
		okRepo.On("Get", mock.Anything, okOrder.ID()).Return(okOrder, nil).Once(),
		okStaff.On("GetMember", mock.Anything, actor.ID()).Return(actor, nil).Once(),
		okRepo.On("Update", mock.Anything, mock.AnythingOfType("*order.ProductionOrder")).Return(nil).Once(),
		okRepo.On("AppendHistory", mock.Anything, mock.AnythingOfType("order.HistoryEntry")).Return(nil).Once(),
		okUow.On("Commit", ctx).Return(nil).Once(),
		okUow.On("Rollback", ctx).Return(nil).Once(),
	)

	missRepo := new(MockOrderRepository)
	missStaff := new(MockStaffRepository)
	missUow := new(MockUoW)
	mock.InOrder(
		missUow.On("Begin", ctx).Return(nil).Once(),
		missUow.On("OrderRepository").Return(missRepo).Once(),
		missUow.On("StaffRepository").Return(missStaff).Once(),
		missRepo.On("Get", mock.Anything, missingID).
			Return(nil, errs.NewObjectNotFoundError("order", missingID.String())).Once(),
		missUow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(okUow).Once()
	factory.On("Create").Return(missUow).Once()

	updateHandler := commands.NewUpdateStatusCommandHandler(factory, services.NewCostEngine(), nil, nil, nil)
	h := commands.NewBulkUpdateStatusCommandHandler(updateHandler)

	result, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, 1, result.Succeeded)
	assert.Equal(t, 1, result.Failed)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], missingID.String())
	okUow.AssertExpectations(t)
	missUow.AssertExpectations(t)
	missUow.AssertNotCalled(t, "Commit", mock.Anything)
}
