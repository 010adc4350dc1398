package siterepo_test

import (
	"context"
	"testing"
	"time"

	"fieldops/internal/adapters/out/postgres/siterepo"
	"fieldops/internal/core/domain/model/kernel"
	"fieldops/internal/core/domain/model/site"
	"fieldops/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// MockAggregateTracker is a mock implementation of aggregateTracker.
type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate interface{}) {
	m.Called(id, aggregate)
}

// SiteRepositoryIntegrationTestSuite exercises site persistence and the
// atomic fund movements against a real PostgreSQL.
type SiteRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *siterepo.GormSiteRepository
	tracker    *MockAggregateTracker
}

func (suite *SiteRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&siterepo.SiteDTO{}))
}

func (suite *SiteRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE sites").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything).Maybe()
	suite.repository = siterepo.NewGormSiteRepository(suite.db, suite.tracker)
}

func (suite *SiteRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *SiteRepositoryIntegrationTestSuite) createTestSite(currentFund, minimumFund int) *site.Site {
	point, err := kernel.NewGeoPoint(19.4326, -99.1332)
	suite.Require().NoError(err)

	aggregate, err := site.NewSite(kernel.NewUUID(), "Centro", "Av. Juarez 10", &point, currentFund, minimumFund)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Add(context.Background(), aggregate))
	return aggregate
}

func (suite *SiteRepositoryIntegrationTestSuite) TestAddAndGet_RoundTrip() {
	ctx := context.Background()
	aggregate := suite.createTestSite(5000, 1500)

	restored, err := suite.repository.Get(ctx, aggregate.ID())

	suite.Require().NoError(err)
	suite.Equal(aggregate.Name(), restored.Name())
	suite.Equal(aggregate.Address(), restored.Address())
	suite.Equal(5000, restored.CurrentFund())
	suite.Equal(1500, restored.MinimumFund())
	suite.Require().NotNil(restored.Coordinates())
	suite.InDelta(19.4326, restored.Coordinates().Latitude(), 1e-9)
}

func (suite *SiteRepositoryIntegrationTestSuite) TestGet_NotFound() {
	_, err := suite.repository.Get(context.Background(), kernel.NewUUID())
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *SiteRepositoryIntegrationTestSuite) TestDeductFund_EnforcedMinimum() {
	ctx := context.Background()
	aggregate := suite.createTestSite(2000, 1500)

	// 500 leaves exactly the floor: allowed.
	suite.Require().NoError(suite.repository.DeductFund(ctx, aggregate.ID(), 500, true))

	restored, err := suite.repository.Get(ctx, aggregate.ID())
	suite.Require().NoError(err)
	suite.Equal(1500, restored.CurrentFund())

	// Any further enforced deduction breaches the floor.
	err = suite.repository.DeductFund(ctx, aggregate.ID(), 1, true)
	suite.ErrorIs(err, errs.ErrFundInsufficient)
}

func (suite *SiteRepositoryIntegrationTestSuite) TestDeductFund_LenientPathIgnoresFloor() {
	ctx := context.Background()
	aggregate := suite.createTestSite(2000, 1500)

	// 1800 breaches the floor but is covered by the float.
	suite.Require().NoError(suite.repository.DeductFund(ctx, aggregate.ID(), 1800, false))

	restored, err := suite.repository.Get(ctx, aggregate.ID())
	suite.Require().NoError(err)
	suite.Equal(200, restored.CurrentFund())

	// Going negative is never allowed.
	err = suite.repository.DeductFund(ctx, aggregate.ID(), 201, false)
	suite.ErrorIs(err, errs.ErrFundInsufficient)
}

func (suite *SiteRepositoryIntegrationTestSuite) TestDeductFund_ConcurrentDeductionsCannotOverdraw() {
	ctx := context.Background()
	aggregate := suite.createTestSite(1000, 0)

	// Two racing 600 deductions: exactly one may win on a 1000 float.
	results := make(chan error, 2)
	for range 2 {
		go func() {
			results <- siterepo.NewGormSiteRepository(suite.db, suite.tracker).
				DeductFund(ctx, aggregate.ID(), 600, false)
		}()
	}

	var failures int
	for range 2 {
		if err := <-results; err != nil {
			suite.ErrorIs(err, errs.ErrFundInsufficient)
			failures++
		}
	}
	suite.Equal(1, failures)

	restored, err := suite.repository.Get(ctx, aggregate.ID())
	suite.Require().NoError(err)
	suite.Equal(400, restored.CurrentFund())
}

func (suite *SiteRepositoryIntegrationTestSuite) TestCreditFund() {
	ctx := context.Background()
	aggregate := suite.createTestSite(1000, 1500)

	suite.Require().NoError(suite.repository.CreditFund(ctx, aggregate.ID(), 2500))

	restored, err := suite.repository.Get(ctx, aggregate.ID())
	suite.Require().NoError(err)
	suite.Equal(3500, restored.CurrentFund())
	suite.False(restored.IsBelowMinimumFund())
}

func (suite *SiteRepositoryIntegrationTestSuite) TestGetActiveBelowMinimumFund() {
	ctx := context.Background()
	low := suite.createTestSite(1000, 1500)
	suite.createTestSite(5000, 1500)

	sites, err := suite.repository.GetActiveBelowMinimumFund(ctx)

	suite.Require().NoError(err)
	suite.Require().Len(sites, 1)
	suite.True(sites[0].ID().IsEqual(low.ID()))
}

func TestSiteRepositoryIntegrationTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration tests in short mode")
	}
	suite.Run(t, new(SiteRepositoryIntegrationTestSuite))
}
