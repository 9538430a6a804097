package orderrepo_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"atelier/internal/adapters/out/postgres/orderrepo"
	"atelier/internal/core/domain/model/kernel"
	"atelier/internal/core/domain/model/order"
	"atelier/internal/core/domain/model/staff"
	"atelier/internal/pkg/errs"

	_ "github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// MockAggregateTracker is a mock implementation of the aggregateTracker
// interface.
type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate any) {
	m.Called(id, aggregate)
}

// OrderRepositoryIntegrationTestSuite exercises order persistence against a
// real PostgreSQL container. The connection goes through database/sql with
// the pq driver, exactly as the composition root wires it, so constraint
// violations carry pq error codes.
type OrderRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *orderrepo.GormOrderRepository
	tracker    *MockAggregateTracker
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupSuite() {
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

	sqlDB, err := sql.Open("postgres", connStr)
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.New(postgresdriver.Config{Conn: sqlDB}), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&orderrepo.OrderDTO{}, &orderrepo.HistoryEntryDTO{}))
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE production_orders, order_history").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.repository = orderrepo.NewGormOrderRepository(suite.db, suite.tracker)
}

func (suite *OrderRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) createTestOrder(sequence int) *order.ProductionOrder {
	now := time.Now().UTC()
	code, err := kernel.NewLotCode(now, sequence)
	suite.Require().NoError(err)

	o, err := order.NewProductionOrder(
		kernel.NewUUID(), code, kernel.NewUUID(),
		25, "M", now.Add(72*time.Hour), "Acme Fashion",
		nil, nil, now,
	)
	suite.Require().NoError(err)
	return o
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_ValidOrder_Success() {
	ctx := context.Background()
	testOrder := suite.createTestOrder(1)

	suite.tracker.On("TrackAggregate", testOrder.ID(), testOrder).Once()

	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	var count int64
	suite.Require().NoError(suite.db.Model(&orderrepo.OrderDTO{}).Count(&count).Error)
	suite.Equal(int64(1), count)
	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_DuplicateLotCode_Conflict() {
	ctx := context.Background()
	first := suite.createTestOrder(1)
	second := suite.createTestOrder(1) // same day, same sequence

	suite.tracker.On("TrackAggregate", first.ID(), first).Once()
	suite.Require().NoError(suite.repository.Add(ctx, first))

	err := suite.repository.Add(ctx, second)

	suite.Require().ErrorIs(err, errs.ErrLotCodeConflict)
	suite.tracker.AssertNotCalled(suite.T(), "TrackAggregate", second.ID(), second)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_RoundTrip() {
	ctx := context.Background()
	testOrder := suite.createTestOrder(3)

	suite.tracker.On("TrackAggregate", testOrder.ID(), testOrder).Once()
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	restored, err := suite.repository.Get(ctx, testOrder.ID())

	suite.Require().NoError(err)
	suite.True(restored.ID().IsEqual(testOrder.ID()))
	suite.True(restored.LotCode().IsEqual(testOrder.LotCode()))
	suite.Equal(testOrder.Quantity(), restored.Quantity())
	suite.Equal(order.Cutting, restored.Stage())
	suite.Equal(order.InProduction, restored.Status())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_NotFound() {
	ctx := context.Background()

	_, err := suite.repository.Get(ctx, kernel.NewUUID())

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetByLotCode() {
	ctx := context.Background()
	testOrder := suite.createTestOrder(7)

	suite.tracker.On("TrackAggregate", testOrder.ID(), testOrder).Once()
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	restored, err := suite.repository.GetByLotCode(ctx, testOrder.LotCode())

	suite.Require().NoError(err)
	suite.True(restored.ID().IsEqual(testOrder.ID()))
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_PersistsTransition() {
	ctx := context.Background()
	testOrder := suite.createTestOrder(2)

	suite.tracker.On("TrackAggregate", testOrder.ID(), testOrder).Twice()
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	supervisor := suite.newSupervisor()
	_, err := testOrder.AdvanceStage(supervisor, time.Now().UTC())
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Update(ctx, testOrder))

	restored, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Sewing, restored.Stage())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestHistory_AppendAndListInOrder() {
	ctx := context.Background()
	testOrder := suite.createTestOrder(4)

	suite.tracker.On("TrackAggregate", testOrder.ID(), testOrder).Once()
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	creation, err := testOrder.CreationEntry(kernel.NewUUID())
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.AppendHistory(ctx, creation))

	supervisor := suite.newSupervisor()
	advance, err := testOrder.AdvanceStage(supervisor, time.Now().UTC().Add(time.Hour))
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.AppendHistory(ctx, advance))

	entries, err := suite.repository.ListHistory(ctx, testOrder.ID())

	suite.Require().NoError(err)
	suite.Require().Len(entries, 2)
	suite.Nil(entries[0].PreviousStage())
	suite.Equal(order.Cutting, entries[0].NewStage())
	suite.Equal(order.Sewing, entries[1].NewStage())

	stage, status, err := order.ReplayHistory(entries)
	suite.Require().NoError(err)
	suite.Equal(testOrder.Stage(), stage)
	suite.Equal(testOrder.Status(), status)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestMaxLotCodeSequence() {
	ctx := context.Background()
	now := time.Now().UTC()

	// Sequences 9 and 10 expose lexicographic ordering mistakes.
	for _, seq := range []int{9, 10} {
		o := suite.createTestOrder(seq)
		suite.tracker.On("TrackAggregate", o.ID(), o).Once()
		suite.Require().NoError(suite.repository.Add(ctx, o))
	}

	maxSeq, err := suite.repository.MaxLotCodeSequence(ctx, kernel.LotCodeDayPrefix(now))
	suite.Require().NoError(err)
	suite.Equal(10, maxSeq)

	emptySeq, err := suite.repository.MaxLotCodeSequence(ctx, kernel.LotCodeDayPrefix(now.Add(24*time.Hour)))
	suite.Require().NoError(err)
	suite.Equal(0, emptySeq)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetCompletedForTeam_Window() {
	ctx := context.Background()
	teamID := kernel.NewUUID()
	now := time.Now().UTC()

	inWindow := suite.completedOrder(1, teamID, now.Add(-24*time.Hour))
	outOfWindow := suite.completedOrder(2, teamID, now.Add(-30*24*time.Hour))

	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything).Twice()
	suite.Require().NoError(suite.repository.Add(ctx, inWindow))
	suite.Require().NoError(suite.repository.Add(ctx, outOfWindow))

	completed, err := suite.repository.GetCompletedForTeam(
		ctx, teamID, now.Add(-7*24*time.Hour), now,
	)

	suite.Require().NoError(err)
	suite.Require().Len(completed, 1)
	suite.True(completed[0].ID().IsEqual(inWindow.ID()))
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetAllOverdue() {
	ctx := context.Background()
	now := time.Now().UTC()

	overdue := suite.overdueOrder(5, now)
	onTime := suite.createTestOrder(6)

	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything).Twice()
	suite.Require().NoError(suite.repository.Add(ctx, overdue))
	suite.Require().NoError(suite.repository.Add(ctx, onTime))

	result, err := suite.repository.GetAllOverdue(ctx, now)

	suite.Require().NoError(err)
	suite.Require().Len(result, 1)
	suite.True(result[0].ID().IsEqual(overdue.ID()))
}

func (suite *OrderRepositoryIntegrationTestSuite) newSupervisor() *staff.Member {
	member, err := staff.NewMember(kernel.NewUUID(), "Paula Lima", staff.RoleSupervisor, nil)
	suite.Require().NoError(err)
	return member
}

func (suite *OrderRepositoryIntegrationTestSuite) completedOrder(
	sequence int,
	teamID kernel.UUID,
	completedAt time.Time,
) *order.ProductionOrder {
	code, err := kernel.NewLotCode(completedAt, sequence)
	suite.Require().NoError(err)

	createdAt := completedAt.Add(-48 * time.Hour)
	startedAt := createdAt

	o, err := order.RestoreProductionOrder(
		kernel.NewUUID(), code, kernel.NewUUID(),
		25, "M", "Acme Fashion",
		order.Packaging, order.Completed,
		createdAt, completedAt, completedAt.Add(24*time.Hour),
		&startedAt, &completedAt,
		decimal.NewFromInt(200), decimal.NewFromInt(8), decimal.NewFromInt(60),
		nil, &teamID,
	)
	suite.Require().NoError(err)
	return o
}

func (suite *OrderRepositoryIntegrationTestSuite) overdueOrder(sequence int, now time.Time) *order.ProductionOrder {
	code, err := kernel.NewLotCode(now, sequence)
	suite.Require().NoError(err)

	createdAt := now.Add(-96 * time.Hour)

	o, err := order.RestoreProductionOrder(
		kernel.NewUUID(), code, kernel.NewUUID(),
		25, "M", "Acme Fashion",
		order.Sewing, order.InProduction,
		createdAt, createdAt, now.Add(-24*time.Hour),
		nil, nil,
		decimal.Zero, decimal.Zero, decimal.Zero,
		nil, nil,
	)
	suite.Require().NoError(err)
	return o
}

func TestOrderRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(OrderRepositoryIntegrationTestSuite))
}
