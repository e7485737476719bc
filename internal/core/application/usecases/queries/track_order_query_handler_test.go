package queries_test

import (
	"context"
	"testing"
	"time"

	"logistics/internal/adapters/out/postgres/orderrepo"
	"logistics/internal/core/application/usecases/queries"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/order"
	"logistics/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// TrackOrderQueryHandlerTestSuite verifies the customer-facing tracking
// projection against a real PostgreSQL instance.
type TrackOrderQueryHandlerTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	handler   queries.TrackOrderQueryHandler
	orderRepo *orderrepo.GormOrderRepository
}

func (suite *TrackOrderQueryHandlerTestSuite) SetupSuite() {
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

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{TranslateError: true})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&orderrepo.OrderDTO{}))

	suite.handler = queries.NewTrackOrderQueryHandler(db)
	suite.orderRepo = orderrepo.NewGormOrderRepository(db, noopAggregateTracker{})
}

func (suite *TrackOrderQueryHandlerTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE orders").Error)
}

func (suite *TrackOrderQueryHandlerTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *TrackOrderQueryHandlerTestSuite) TestHandle_NonExistentOrder_ReturnsNotFoundError() {
	query, err := queries.NewTrackOrderQuery(kernel.NewUUID())
	suite.Require().NoError(err)

	_, err = suite.handler.Handle(context.Background(), query)

	var notFoundErr *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)
}

func (suite *TrackOrderQueryHandlerTestSuite) TestHandle_InvalidQuery_ReturnsError() {
	_, err := suite.handler.Handle(context.Background(), queries.TrackOrderQuery{})

	suite.Require().Error(err)
	suite.Contains(err.Error(), "must be created via NewTrackOrderQuery constructor")
}

func (suite *TrackOrderQueryHandlerTestSuite) TestHandle_OrderMidPipeline_ProjectsProgressAndLocation() {
	ctx := context.Background()
	expectedDelivery := time.Now().Add(72 * time.Hour).Truncate(time.Second)
	agg := seedOrder(suite.T(), kernel.NewUUID(), time.Now())
	agg.SetPricing(1240, expectedDelivery)
	agg.AppendTracking("Order placed", "Bengaluru", agg.CreatedAt())
	walkOrderTo(suite.T(), agg, order.AtDestinationHub, "Mumbai")
	suite.Require().NoError(suite.orderRepo.Add(ctx, agg))

	query, err := queries.NewTrackOrderQuery(agg.ID())
	suite.Require().NoError(err)

	resp, err := suite.handler.Handle(ctx, query)

	suite.Require().NoError(err)
	suite.Equal(agg.ID().String(), resp.OrderID)
	suite.Equal(agg.AWB(), resp.AWB)
	suite.Equal(agg.SellerOrderID(), resp.SellerOrderID)
	suite.Equal("AT_DESTINATION_HUB", resp.Status)
	suite.Equal(70, resp.Progress)
	suite.Equal("Mumbai", resp.CurrentLocation)
	suite.WithinDuration(expectedDelivery, resp.ExpectedDelivery, time.Second)
	suite.Require().Len(resp.Tracking, 1)
	suite.Equal("Order placed", resp.Tracking[0].Activity)
	suite.Equal("Bengaluru", resp.Tracking[0].Location)
}

func (suite *TrackOrderQueryHandlerTestSuite) TestHandle_FreshOrder_HasNoCurrentLocation() {
	ctx := context.Background()
	agg := seedOrder(suite.T(), kernel.NewUUID(), time.Now())
	suite.Require().NoError(suite.orderRepo.Add(ctx, agg))

	query, err := queries.NewTrackOrderQuery(agg.ID())
	suite.Require().NoError(err)

	resp, err := suite.handler.Handle(ctx, query)

	suite.Require().NoError(err)
	suite.Equal("PENDING", resp.Status)
	suite.Equal(10, resp.Progress)
	suite.Empty(resp.CurrentLocation)
	suite.Empty(resp.Tracking)
}

func TestTrackOrderQueryHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(TrackOrderQueryHandlerTestSuite))
}
