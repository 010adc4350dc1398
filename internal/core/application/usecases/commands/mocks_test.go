package commands_test

import (
	"context"
	"io"
	"log/slog"
	"time"

	"fieldops/internal/core/application/effects"
	"fieldops/internal/core/application/usecases/commands"
	"fieldops/internal/core/domain/model/changerequest"
	"fieldops/internal/core/domain/model/courier"
	"fieldops/internal/core/domain/model/kernel"
	"fieldops/internal/core/domain/model/site"
	"fieldops/internal/core/domain/model/task"
	"fieldops/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockSiteRepository struct{ mock.Mock }

func (m *MockSiteRepository) Add(ctx context.Context, s *site.Site) error {
	return m.Called(ctx, s).Error(0)
}
func (m *MockSiteRepository) Update(ctx context.Context, s *site.Site) error {
	return m.Called(ctx, s).Error(0)
}
func (m *MockSiteRepository) Get(ctx context.Context, id kernel.UUID) (*site.Site, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*site.Site), args.Error(1)
}
func (m *MockSiteRepository) GetActiveBelowMinimumFund(ctx context.Context) ([]*site.Site, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*site.Site), args.Error(1)
}
func (m *MockSiteRepository) DeductFund(ctx context.Context, id kernel.UUID, amount int, enforceMinimum bool) error {
	return m.Called(ctx, id, amount, enforceMinimum).Error(0)
}
func (m *MockSiteRepository) CreditFund(ctx context.Context, id kernel.UUID, amount int) error {
	return m.Called(ctx, id, amount).Error(0)
}

type MockCourierRepository struct{ mock.Mock }

func (m *MockCourierRepository) Add(ctx context.Context, c *courier.Courier) error {
	return m.Called(ctx, c).Error(0)
}
func (m *MockCourierRepository) Update(ctx context.Context, c *courier.Courier) error {
	return m.Called(ctx, c).Error(0)
}
func (m *MockCourierRepository) Get(ctx context.Context, id kernel.UUID) (*courier.Courier, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*courier.Courier), args.Error(1)
}
func (m *MockCourierRepository) GetFirstActive(ctx context.Context) (*courier.Courier, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*courier.Courier), args.Error(1)
}

type MockPositionRepository struct{ mock.Mock }

func (m *MockPositionRepository) Add(ctx context.Context, p courier.Position) error {
	return m.Called(ctx, p).Error(0)
}
func (m *MockPositionRepository) GetLatest(ctx context.Context, courierID kernel.UUID, cutoff time.Time) ([]courier.Position, error) {
	args := m.Called(ctx, courierID, cutoff)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]courier.Position), args.Error(1)
}
func (m *MockPositionRepository) GetLatestAll(ctx context.Context, cutoff time.Time) ([]courier.Position, error) {
	args := m.Called(ctx, cutoff)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]courier.Position), args.Error(1)
}
func (m *MockPositionRepository) PurgeOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int64), args.Error(1)
}

type MockTaskRepository struct{ mock.Mock }

func (m *MockTaskRepository) Add(ctx context.Context, t *task.Task) error {
	return m.Called(ctx, t).Error(0)
}
func (m *MockTaskRepository) Update(ctx context.Context, t *task.Task) error {
	return m.Called(ctx, t).Error(0)
}
func (m *MockTaskRepository) Get(ctx context.Context, id kernel.UUID) (*task.Task, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*task.Task), args.Error(1)
}

type MockChangeRequestRepository struct{ mock.Mock }

func (m *MockChangeRequestRepository) Add(ctx context.Context, r *changerequest.ChangeRequest) error {
	return m.Called(ctx, r).Error(0)
}
func (m *MockChangeRequestRepository) Update(ctx context.Context, r *changerequest.ChangeRequest) error {
	return m.Called(ctx, r).Error(0)
}
func (m *MockChangeRequestRepository) Get(ctx context.Context, id kernel.UUID) (*changerequest.ChangeRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*changerequest.ChangeRequest), args.Error(1)
}

// MockUoW satisfies every narrowed unit-of-work interface the handlers use.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error    { return m.Called(ctx).Error(0) }
func (m *MockUoW) Commit(ctx context.Context) error   { return m.Called(ctx).Error(0) }
func (m *MockUoW) Rollback(ctx context.Context) error { return m.Called(ctx).Error(0) }
func (m *MockUoW) SiteRepository() ports.SiteRepository {
	return m.Called().Get(0).(ports.SiteRepository)
}
func (m *MockUoW) CourierRepository() ports.CourierRepository {
	return m.Called().Get(0).(ports.CourierRepository)
}
func (m *MockUoW) PositionRepository() ports.PositionRepository {
	return m.Called().Get(0).(ports.PositionRepository)
}
func (m *MockUoW) TaskRepository() ports.TaskRepository {
	return m.Called().Get(0).(ports.TaskRepository)
}
func (m *MockUoW) ChangeRequestRepository() ports.ChangeRequestRepository {
	return m.Called().Get(0).(ports.ChangeRequestRepository)
}

type MockTaskUoWFactory struct{ mock.Mock }

func (m *MockTaskUoWFactory) Create() commands.TaskUoW {
	return m.Called().Get(0).(commands.TaskUoW)
}

type MockChangeRequestUoWFactory struct{ mock.Mock }

func (m *MockChangeRequestUoWFactory) Create() commands.ChangeRequestUoW {
	return m.Called().Get(0).(commands.ChangeRequestUoW)
}

type MockPositionUoWFactory struct{ mock.Mock }

func (m *MockPositionUoWFactory) Create() commands.PositionUoW {
	return m.Called().Get(0).(commands.PositionUoW)
}

type MockSiteUoWFactory struct{ mock.Mock }

func (m *MockSiteUoWFactory) Create() commands.SiteUoW {
	return m.Called().Get(0).(commands.SiteUoW)
}

type MockNotificationSink struct{ mock.Mock }

func (m *MockNotificationSink) Notify(ctx context.Context, targetID kernel.UUID, n ports.Notification) error {
	return m.Called(ctx, targetID, n).Error(0)
}
func (m *MockNotificationSink) NotifyAdmins(ctx context.Context, n ports.Notification) error {
	return m.Called(ctx, n).Error(0)
}

type MockImageStore struct{ mock.Mock }

func (m *MockImageStore) Store(ctx context.Context, raw []byte) (string, error) {
	args := m.Called(ctx, raw)
	return args.String(0), args.Error(1)
}

// silentDispatcher builds an effects dispatcher whose deliveries all
// succeed and whose logging goes nowhere.
func silentDispatcher() (*effects.Dispatcher, *MockNotificationSink) {
	sink := new(MockNotificationSink)
	sink.On("Notify", mock.Anything, mock.Anything, mock.Anything).Return(nil).Maybe()
	sink.On("NotifyAdmins", mock.Anything, mock.Anything).Return(nil).Maybe()
	return effects.NewDispatcher(sink, discardLogger()), sink
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
