package commands_test

import (
	"testing"
	"time"

	"fieldops/internal/core/application/usecases/commands"
	"fieldops/internal/core/domain/model/actor"
	"fieldops/internal/core/domain/model/kernel"
	"fieldops/internal/core/domain/model/task"
	"fieldops/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func acceptedRefillTask(t *testing.T, refillType task.RefillType) (*task.Task, kernel.UUID, kernel.UUID) {
	t.Helper()

	siteID := kernel.NewUUID()
	courierID := kernel.NewUUID()
	tk, err := task.NewTask(kernel.NewUUID(), task.KindRefill, siteID, kernel.NewUUID(), time.Now(), task.Attributes{
		Refill: &task.RefillDetails{Type: refillType, Coins5: 1000, Coins10: 2000},
	})
	require.NoError(t, err)
	require.NoError(t, tk.Assign(courierID, time.Now()))
	require.NoError(t, tk.Accept(courierID, time.Now()))
	return tk, siteID, courierID
}

func TestConfirmTaskCommandHandler_Handle_DualConfirmationCreditsReserveRefill(t *testing.T) {
	ctx := t.Context()
	tk, siteID, courierID := acceptedRefillTask(t, task.RefillReserve)
	_, err := tk.Confirm(actor.RoleSite, time.Now())
	require.NoError(t, err)

	taskRepo := new(MockTaskRepository)
	taskRepo.On("Get", mock.Anything, tk.ID()).Return(tk, nil).Once()
	taskRepo.On("Update", mock.Anything, tk).Return(nil).Once()

	siteRepo := new(MockSiteRepository)
	siteRepo.On("CreditFund", mock.Anything, siteID, 3000).Return(nil).Once()

	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("TaskRepository").Return(taskRepo)
	uow.On("SiteRepository").Return(siteRepo)
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockTaskUoWFactory)
	factory.On("Create").Return(uow).Once()

	dispatcher, _ := silentDispatcher()
	h := commands.NewConfirmTaskCommandHandler(factory, dispatcher)

	caller, err := actor.NewActor(courierID, actor.RoleCourier)
	require.NoError(t, err)
	cmd, err := commands.NewConfirmTaskCommand(tk.ID(), caller)
	require.NoError(t, err)

	require.NoError(t, h.Handle(ctx, cmd))
	assert.Equal(t, task.StatusCompleted, tk.Status())
	siteRepo.AssertExpectations(t)
}

func TestConfirmTaskCommandHandler_Handle_SingleConfirmationMovesNoCash(t *testing.T) {
	ctx := t.Context()
	tk, siteID, _ := acceptedRefillTask(t, task.RefillReserve)

	taskRepo := new(MockTaskRepository)
	taskRepo.On("Get", mock.Anything, tk.ID()).Return(tk, nil).Once()
	taskRepo.On("Update", mock.Anything, tk).Return(nil).Once()

	siteRepo := new(MockSiteRepository)

	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("TaskRepository").Return(taskRepo)
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockTaskUoWFactory)
	factory.On("Create").Return(uow).Once()

	dispatcher, _ := silentDispatcher()
	h := commands.NewConfirmTaskCommandHandler(factory, dispatcher)

	caller, err := actor.NewActor(siteID, actor.RoleSite)
	require.NoError(t, err)
	cmd, err := commands.NewConfirmTaskCommand(tk.ID(), caller)
	require.NoError(t, err)

	require.NoError(t, h.Handle(ctx, cmd))
	assert.Equal(t, task.StatusAccepted, tk.Status())
	assert.True(t, tk.LocalConfirmed())
	siteRepo.AssertNotCalled(t, "CreditFund", mock.Anything, mock.Anything, mock.Anything)
}

func TestConfirmTaskCommandHandler_Handle_WrongCourierForbidden(t *testing.T) {
	ctx := t.Context()
	tk, _, _ := acceptedRefillTask(t, task.RefillDrawer)

	taskRepo := new(MockTaskRepository)
	taskRepo.On("Get", mock.Anything, tk.ID()).Return(tk, nil).Once()

	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("TaskRepository").Return(taskRepo)
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockTaskUoWFactory)
	factory.On("Create").Return(uow).Once()

	dispatcher, _ := silentDispatcher()
	h := commands.NewConfirmTaskCommandHandler(factory, dispatcher)

	caller, err := actor.NewActor(kernel.NewUUID(), actor.RoleCourier)
	require.NoError(t, err)
	cmd, err := commands.NewConfirmTaskCommand(tk.ID(), caller)
	require.NoError(t, err)

	err = h.Handle(ctx, cmd)

	assert.ErrorIs(t, err, errs.ErrForbidden)
	assert.False(t, tk.CourierConfirmed())
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestConfirmTaskCommandHandler_Handle_DrawerRefillCompletionMovesNoCash(t *testing.T) {
	ctx := t.Context()
	tk, _, courierID := acceptedRefillTask(t, task.RefillDrawer)
	_, err := tk.Confirm(actor.RoleSite, time.Now())
	require.NoError(t, err)

	taskRepo := new(MockTaskRepository)
	taskRepo.On("Get", mock.Anything, tk.ID()).Return(tk, nil).Once()
	taskRepo.On("Update", mock.Anything, tk).Return(nil).Once()

	siteRepo := new(MockSiteRepository)

	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("TaskRepository").Return(taskRepo)
	uow.On("SiteRepository").Return(siteRepo)
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockTaskUoWFactory)
	factory.On("Create").Return(uow).Once()

	dispatcher, _ := silentDispatcher()
	h := commands.NewConfirmTaskCommandHandler(factory, dispatcher)

	caller, err := actor.NewActor(courierID, actor.RoleCourier)
	require.NoError(t, err)
	cmd, err := commands.NewConfirmTaskCommand(tk.ID(), caller)
	require.NoError(t, err)

	require.NoError(t, h.Handle(ctx, cmd))
	assert.Equal(t, task.StatusCompleted, tk.Status())
	siteRepo.AssertNotCalled(t, "CreditFund", mock.Anything, mock.Anything, mock.Anything)
}
