package commands_test

import (
	"errors"
	"testing"
	"time"

	"fieldops/internal/core/application/usecases/commands"
	"fieldops/internal/core/domain/model/actor"
	"fieldops/internal/core/domain/model/courier"
	"fieldops/internal/core/domain/model/kernel"
	"fieldops/internal/core/domain/model/site"
	"fieldops/internal/core/domain/model/task"
	"fieldops/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func testSite(t *testing.T, currentFund, minimumFund int) *site.Site {
	t.Helper()

	point, err := kernel.NewGeoPoint(19.4326, -99.1332)
	require.NoError(t, err)
	s, err := site.NewSite(kernel.NewUUID(), "Centro", "Av. Juarez 10", &point, currentFund, minimumFund)
	require.NoError(t, err)
	return s
}

func testActor(t *testing.T, role actor.Role) actor.Actor {
	t.Helper()

	a, err := actor.NewActor(kernel.NewUUID(), role)
	require.NoError(t, err)
	return a
}

func TestCreateTaskCommandHandler_Handle_AssignsNearestCourier(t *testing.T) {
	ctx := t.Context()
	siteAggregate := testSite(t, 5000, 1500)

	nearID := kernel.NewUUID()
	farID := kernel.NewUUID()
	nearPoint, _ := kernel.NewGeoPoint(19.44, -99.14)
	farPoint, _ := kernel.NewGeoPoint(20.5, -100.0)
	nearPing, err := courier.NewPosition(nearID, nearPoint, 5, 0, 0, time.Now())
	require.NoError(t, err)
	farPing, err := courier.NewPosition(farID, farPoint, 5, 0, 0, time.Now())
	require.NoError(t, err)

	siteRepo := new(MockSiteRepository)
	siteRepo.On("Get", mock.Anything, siteAggregate.ID()).Return(siteAggregate, nil).Once()

	positionRepo := new(MockPositionRepository)
	positionRepo.On("GetLatestAll", mock.Anything, mock.Anything).
		Return([]courier.Position{farPing, nearPing}, nil).Once()

	var stored *task.Task
	taskRepo := new(MockTaskRepository)
	taskRepo.On("Add", mock.Anything, mock.AnythingOfType("*task.Task")).
		Run(func(args mock.Arguments) { stored = args.Get(1).(*task.Task) }).
		Return(nil).Once()

	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("SiteRepository").Return(siteRepo)
	uow.On("PositionRepository").Return(positionRepo)
	uow.On("TaskRepository").Return(taskRepo)
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockTaskUoWFactory)
	factory.On("Create").Return(uow).Once()

	dispatcher, _ := silentDispatcher()
	h := commands.NewCreateTaskCommandHandler(factory, new(MockImageStore), dispatcher, discardLogger())

	cmd, err := commands.NewCreateTaskCommand(kernel.NewUUID(), task.KindFailure, siteAggregate.ID(), testActor(t, actor.RoleSite), task.Attributes{
		Failure: &task.FailureDetails{ErrorCode: "E42", ErrorDescription: "coin jam"},
	}, nil, time.Now())
	require.NoError(t, err)

	require.NoError(t, h.Handle(ctx, cmd))
	require.NotNil(t, stored)
	assert.Equal(t, task.StatusAssigned, stored.Status())
	assert.True(t, stored.IsAssignedTo(nearID))
	taskRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestCreateTaskCommandHandler_Handle_FallsBackToFirstActive(t *testing.T) {
	ctx := t.Context()
	siteAggregate := testSite(t, 5000, 1500)

	fallback, err := courier.NewCourier(kernel.NewUUID(), "Pedro")
	require.NoError(t, err)

	siteRepo := new(MockSiteRepository)
	siteRepo.On("Get", mock.Anything, siteAggregate.ID()).Return(siteAggregate, nil).Once()

	positionRepo := new(MockPositionRepository)
	positionRepo.On("GetLatestAll", mock.Anything, mock.Anything).Return([]courier.Position{}, nil).Once()

	courierRepo := new(MockCourierRepository)
	courierRepo.On("GetFirstActive", mock.Anything).Return(fallback, nil).Once()

	var stored *task.Task
	taskRepo := new(MockTaskRepository)
	taskRepo.On("Add", mock.Anything, mock.AnythingOfType("*task.Task")).
		Run(func(args mock.Arguments) { stored = args.Get(1).(*task.Task) }).
		Return(nil).Once()

	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("SiteRepository").Return(siteRepo)
	uow.On("PositionRepository").Return(positionRepo)
	uow.On("CourierRepository").Return(courierRepo)
	uow.On("TaskRepository").Return(taskRepo)
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockTaskUoWFactory)
	factory.On("Create").Return(uow).Once()

	dispatcher, _ := silentDispatcher()
	h := commands.NewCreateTaskCommandHandler(factory, new(MockImageStore), dispatcher, discardLogger())

	cmd, err := commands.NewCreateTaskCommand(kernel.NewUUID(), task.KindPrize, siteAggregate.ID(), testActor(t, actor.RoleAdmin), task.Attributes{Amount: 800}, nil, time.Now())
	require.NoError(t, err)

	require.NoError(t, h.Handle(ctx, cmd))
	require.NotNil(t, stored)
	assert.True(t, stored.IsAssignedTo(fallback.ID()))
}

func TestCreateTaskCommandHandler_Handle_LeavesCreatedWithoutCouriers(t *testing.T) {
	ctx := t.Context()
	siteAggregate := testSite(t, 5000, 1500)

	siteRepo := new(MockSiteRepository)
	siteRepo.On("Get", mock.Anything, siteAggregate.ID()).Return(siteAggregate, nil).Once()

	positionRepo := new(MockPositionRepository)
	positionRepo.On("GetLatestAll", mock.Anything, mock.Anything).Return([]courier.Position{}, nil).Once()

	courierRepo := new(MockCourierRepository)
	courierRepo.On("GetFirstActive", mock.Anything).
		Return(nil, errs.NewObjectNotFoundError("courier", nil)).Once()

	var stored *task.Task
	taskRepo := new(MockTaskRepository)
	taskRepo.On("Add", mock.Anything, mock.AnythingOfType("*task.Task")).
		Run(func(args mock.Arguments) { stored = args.Get(1).(*task.Task) }).
		Return(nil).Once()

	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("SiteRepository").Return(siteRepo)
	uow.On("PositionRepository").Return(positionRepo)
	uow.On("CourierRepository").Return(courierRepo)
	uow.On("TaskRepository").Return(taskRepo)
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockTaskUoWFactory)
	factory.On("Create").Return(uow).Once()

	dispatcher, sink := silentDispatcher()
	h := commands.NewCreateTaskCommandHandler(factory, new(MockImageStore), dispatcher, discardLogger())

	cmd, err := commands.NewCreateTaskCommand(kernel.NewUUID(), task.KindExpense, siteAggregate.ID(), testActor(t, actor.RoleSite), task.Attributes{Amount: 200}, nil, time.Now())
	require.NoError(t, err)

	require.NoError(t, h.Handle(ctx, cmd))
	require.NotNil(t, stored)
	assert.Equal(t, task.StatusCreated, stored.Status())
	assert.Nil(t, stored.AssignedTo())
	sink.AssertCalled(t, "NotifyAdmins", mock.Anything, mock.Anything)
}

func TestCreateTaskCommandHandler_Handle_SkipsAssignmentForCourierRequester(t *testing.T) {
	ctx := t.Context()
	siteAggregate := testSite(t, 5000, 1500)
	requester := testActor(t, actor.RoleCourier)

	// A fresh ping exists; it must not be consulted for a courier's own task.
	siteRepo := new(MockSiteRepository)
	siteRepo.On("Get", mock.Anything, siteAggregate.ID()).Return(siteAggregate, nil).Once()

	positionRepo := new(MockPositionRepository)
	courierRepo := new(MockCourierRepository)

	var stored *task.Task
	taskRepo := new(MockTaskRepository)
	taskRepo.On("Add", mock.Anything, mock.AnythingOfType("*task.Task")).
		Run(func(args mock.Arguments) { stored = args.Get(1).(*task.Task) }).
		Return(nil).Once()

	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("SiteRepository").Return(siteRepo)
	uow.On("TaskRepository").Return(taskRepo)
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockTaskUoWFactory)
	factory.On("Create").Return(uow).Once()

	dispatcher, sink := silentDispatcher()
	h := commands.NewCreateTaskCommandHandler(factory, new(MockImageStore), dispatcher, discardLogger())

	cmd, err := commands.NewCreateTaskCommand(kernel.NewUUID(), task.KindExpense, siteAggregate.ID(), requester, task.Attributes{Amount: 350}, nil, time.Now())
	require.NoError(t, err)

	require.NoError(t, h.Handle(ctx, cmd))
	require.NotNil(t, stored)
	assert.Equal(t, task.StatusCreated, stored.Status())
	assert.Nil(t, stored.AssignedTo())
	positionRepo.AssertNotCalled(t, "GetLatestAll", mock.Anything, mock.Anything)
	courierRepo.AssertNotCalled(t, "GetFirstActive", mock.Anything)
	sink.AssertNotCalled(t, "NotifyAdmins", mock.Anything, mock.Anything)
}

func TestCreateTaskCommandHandler_Handle_ProceedsWhenPhotoUploadFails(t *testing.T) {
	ctx := t.Context()
	siteAggregate := testSite(t, 5000, 1500)

	images := new(MockImageStore)
	images.On("Store", mock.Anything, []byte("broken")).Return("", errors.New("media endpoint down")).Once()
	images.On("Store", mock.Anything, []byte("good")).Return("https://media/photos/1.jpg", nil).Once()

	siteRepo := new(MockSiteRepository)
	siteRepo.On("Get", mock.Anything, siteAggregate.ID()).Return(siteAggregate, nil).Once()

	positionRepo := new(MockPositionRepository)
	positionRepo.On("GetLatestAll", mock.Anything, mock.Anything).Return([]courier.Position{}, nil).Once()

	courierRepo := new(MockCourierRepository)
	courierRepo.On("GetFirstActive", mock.Anything).
		Return(nil, errs.NewObjectNotFoundError("courier", nil)).Once()

	var stored *task.Task
	taskRepo := new(MockTaskRepository)
	taskRepo.On("Add", mock.Anything, mock.AnythingOfType("*task.Task")).
		Run(func(args mock.Arguments) { stored = args.Get(1).(*task.Task) }).
		Return(nil).Once()

	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("SiteRepository").Return(siteRepo)
	uow.On("PositionRepository").Return(positionRepo)
	uow.On("CourierRepository").Return(courierRepo)
	uow.On("TaskRepository").Return(taskRepo)
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockTaskUoWFactory)
	factory.On("Create").Return(uow).Once()

	dispatcher, _ := silentDispatcher()
	h := commands.NewCreateTaskCommandHandler(factory, images, dispatcher, discardLogger())

	cmd, err := commands.NewCreateTaskCommand(kernel.NewUUID(), task.KindFailure, siteAggregate.ID(), testActor(t, actor.RoleSite), task.Attributes{
		Failure: &task.FailureDetails{ErrorCode: "E17", ErrorDescription: "bill jam"},
	}, [][]byte{[]byte("broken"), []byte("good")}, time.Now())
	require.NoError(t, err)

	require.NoError(t, h.Handle(ctx, cmd))
	require.NotNil(t, stored)
	assert.Equal(t, []string{"https://media/photos/1.jpg"}, stored.Photos())
	images.AssertExpectations(t)
	taskRepo.AssertExpectations(t)
}

func TestCreateTaskCommandHandler_Handle_ChangeFundGate(t *testing.T) {
	ctx := t.Context()
	// 2000 held, floor 1500: distributing 600 would land at 1400.
	siteAggregate := testSite(t, 2000, 1500)

	siteRepo := new(MockSiteRepository)
	siteRepo.On("Get", mock.Anything, siteAggregate.ID()).Return(siteAggregate, nil).Once()

	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("SiteRepository").Return(siteRepo)
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockTaskUoWFactory)
	factory.On("Create").Return(uow).Once()

	dispatcher, _ := silentDispatcher()
	h := commands.NewCreateTaskCommandHandler(factory, new(MockImageStore), dispatcher, discardLogger())

	cmd, err := commands.NewCreateTaskCommand(kernel.NewUUID(), task.KindChange, siteAggregate.ID(), testActor(t, actor.RoleSite), task.Attributes{
		Change: &task.ChangeDetails{Coins5: 300, Coins10: 300},
	}, nil, time.Now())
	require.NoError(t, err)

	err = h.Handle(ctx, cmd)

	assert.ErrorIs(t, err, errs.ErrFundInsufficient)
	// The gate only validates: the site float stays untouched.
	assert.Equal(t, 2000, siteAggregate.CurrentFund())
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}
