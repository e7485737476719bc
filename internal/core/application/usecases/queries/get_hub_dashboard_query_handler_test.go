package queries_test

import (
	"context"
	"testing"
	"time"

	"logistics/internal/adapters/out/postgres/networkrepo"
	"logistics/internal/adapters/out/postgres/orderrepo"
	"logistics/internal/core/application/usecases/queries"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/network"
	"logistics/internal/core/domain/model/order"
	"logistics/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// GetHubDashboardQueryHandlerTestSuite verifies the hub workload read model
// against a real PostgreSQL instance.
type GetHubDashboardQueryHandlerTestSuite struct {
	suite.Suite
	container   *postgres.PostgresContainer
	db          *gorm.DB
	handler     queries.GetHubDashboardQueryHandler
	networkRepo *networkrepo.GormNetworkRepository
	orderRepo   *orderrepo.GormOrderRepository
}

func (suite *GetHubDashboardQueryHandlerTestSuite) SetupSuite() {
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

	suite.Require().NoError(db.AutoMigrate(&networkrepo.HubDTO{}, &orderrepo.OrderDTO{}))

	suite.handler = queries.NewGetHubDashboardQueryHandler(db)
	suite.networkRepo = networkrepo.NewGormNetworkRepository(db, noopAggregateTracker{})
	suite.orderRepo = orderrepo.NewGormOrderRepository(db, noopAggregateTracker{})
}

func (suite *GetHubDashboardQueryHandlerTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE hubs, orders").Error)
}

func (suite *GetHubDashboardQueryHandlerTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *GetHubDashboardQueryHandlerTestSuite) TestHandle_NonExistentHub_ReturnsNotFoundError() {
	query, err := queries.NewGetHubDashboardQuery(kernel.NewUUID())
	suite.Require().NoError(err)

	_, err = suite.handler.Handle(context.Background(), query)

	var notFoundErr *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)
}

func (suite *GetHubDashboardQueryHandlerTestSuite) TestHandle_InvalidQuery_ReturnsError() {
	_, err := suite.handler.Handle(context.Background(), queries.GetHubDashboardQuery{})

	suite.Require().Error(err)
	suite.Contains(err.Error(), "must be created via NewGetHubDashboardQuery constructor")
}

func (suite *GetHubDashboardQueryHandlerTestSuite) TestHandle_HubWithoutOrders_ReportsZeroWorkload() {
	ctx := context.Background()
	hub := suite.registerHub("BLR-01")

	query, err := queries.NewGetHubDashboardQuery(hub.ID())
	suite.Require().NoError(err)

	resp, err := suite.handler.Handle(ctx, query)

	suite.Require().NoError(err)
	suite.Equal(hub.ID().String(), resp.HubID)
	suite.Equal("BLR-01", resp.Code)
	suite.Equal("Karnataka", resp.State)
	suite.Equal("Bengaluru", resp.City)
	suite.Equal(100, resp.MaxOrders)
	suite.Equal(0, resp.CurrentLoad)
	suite.True(resp.Active)
	suite.Zero(resp.PendingDispatch)
	suite.Zero(resp.PendingDelivery)
	suite.Zero(resp.OutForDelivery)
	suite.Zero(resp.TotalHandled)
}

func (suite *GetHubDashboardQueryHandlerTestSuite) TestHandle_HubWithWorkload_CountsOrdersByStatus() {
	ctx := context.Background()
	hub := suite.registerHub("BLR-02")
	otherHub := kernel.NewUUID()

	// Two orders waiting to leave this hub
	suite.addBoundOrder(ctx, hub.ID(), otherHub, order.AtOriginHub)
	suite.addBoundOrder(ctx, hub.ID(), otherHub, order.AtOriginHub)

	// One waiting for a delivery agent and one out on the street here
	suite.addBoundOrder(ctx, otherHub, hub.ID(), order.AtDestinationHub)
	suite.addBoundOrder(ctx, otherHub, hub.ID(), order.OutForDelivery)

	// Unrelated order touching neither side of this hub
	suite.addBoundOrder(ctx, kernel.NewUUID(), kernel.NewUUID(), order.InTransit)

	query, err := queries.NewGetHubDashboardQuery(hub.ID())
	suite.Require().NoError(err)

	resp, err := suite.handler.Handle(ctx, query)

	suite.Require().NoError(err)
	suite.Equal(2, resp.PendingDispatch)
	suite.Equal(1, resp.PendingDelivery)
	suite.Equal(1, resp.OutForDelivery)
	suite.Equal(4, resp.TotalHandled)
}

func (suite *GetHubDashboardQueryHandlerTestSuite) registerHub(code string) *network.Hub {
	hub, err := network.NewHub(
		kernel.NewUUID(), code, "Karnataka", "Bengaluru",
		network.AreaSouth, 100, []string{"560001", "560002"}, time.Now())
	suite.Require().NoError(err)
	suite.Require().NoError(suite.networkRepo.AddHub(context.Background(), hub))
	return hub
}

func (suite *GetHubDashboardQueryHandlerTestSuite) addBoundOrder(
	ctx context.Context,
	originHub, destinationHub kernel.UUID,
	status order.Status,
) {
	agg := seedOrder(suite.T(), kernel.NewUUID(), time.Now())
	suite.Require().NoError(agg.BindNetwork(originHub, destinationHub, nil, nil))
	walkOrderTo(suite.T(), agg, status, "")
	suite.Require().NoError(suite.orderRepo.Add(ctx, agg))
}

func TestGetHubDashboardQueryHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(GetHubDashboardQueryHandlerTestSuite))
}
