package postgres_test

import (
	"context"
	"testing"
	"time"

	"logistics/internal/adapters/out/postgres"
	"logistics/internal/adapters/out/postgres/customerrepo"
	"logistics/internal/adapters/out/postgres/networkrepo"
	"logistics/internal/adapters/out/postgres/orderrepo"
	"logistics/internal/core/domain/model/customer"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/network"
	"logistics/internal/core/domain/model/order"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// UnitOfWorkIntegrationTestSuite verifies transaction coordination across the
// order, network and customer repositories.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	container *tcpostgres.PostgresContainer
	db        *gorm.DB
	factory   *postgres.GormUnitOfWorkFactory
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx,
		"postgres:15-alpine",
		tcpostgres.WithDatabase("testdb"),
		tcpostgres.WithUsername("testuser"),
		tcpostgres.WithPassword("testpass"),
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

	suite.Require().NoError(db.AutoMigrate(
		&orderrepo.OrderDTO{},
		&networkrepo.HubDTO{},
		&networkrepo.AgentDTO{},
		&networkrepo.VehicleDTO{},
		&customerrepo.CustomerDTO{},
	))

	suite.factory = postgres.NewGormUnitOfWorkFactory(db)
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(
		suite.db.Exec("TRUNCATE TABLE orders, hubs, agents, vehicles, customers").Error)
}

func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWorkFactory_Create() {
	uow := suite.factory.Create()
	suite.Require().NotNil(uow)
	suite.NotNil(uow.OrderRepository())
	suite.NotNil(uow.NetworkRepository())
	suite.NotNil(uow.CustomerRepository())

	// Each instance is isolated
	other := suite.factory.Create()
	suite.NotSame(uow, other)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestTransactionLifecycle() {
	ctx := context.Background()
	uow := suite.factory.Create()

	suite.Require().NoError(uow.Begin(ctx))
	// Begin is idempotent
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Commit(ctx))

	// Commit without an active transaction fails
	suite.Require().ErrorIs(uow.Commit(ctx), gorm.ErrInvalidTransaction)
	suite.Require().ErrorIs(uow.Rollback(ctx), gorm.ErrInvalidTransaction)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCommit_PersistsAcrossRepositories() {
	ctx := context.Background()
	uow := suite.factory.Create()

	cust := suite.createTestCustomer()
	testOrder := suite.createTestOrder(cust.ID())
	hub := suite.createTestHub()

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.CustomerRepository().Add(ctx, cust))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, testOrder))
	suite.Require().NoError(uow.NetworkRepository().AddHub(ctx, hub))
	suite.Require().NoError(uow.Commit(ctx))

	// Visible through a fresh unit of work
	fresh := suite.factory.Create()
	retrievedOrder, err := fresh.OrderRepository().Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(cust.ID(), retrievedOrder.CustomerID())

	retrievedHub, err := fresh.NetworkRepository().GetHub(ctx, hub.ID())
	suite.Require().NoError(err)
	suite.Equal(hub.Code(), retrievedHub.Code())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestRollback_DiscardsAllChanges() {
	ctx := context.Background()
	uow := suite.factory.Create()

	cust := suite.createTestCustomer()
	testOrder := suite.createTestOrder(cust.ID())

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.CustomerRepository().Add(ctx, cust))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, testOrder))
	suite.Require().NoError(uow.Rollback(ctx))

	var orderCount, customerCount int64
	suite.Require().NoError(suite.db.Model(&orderrepo.OrderDTO{}).Count(&orderCount).Error)
	suite.Require().NoError(suite.db.Model(&customerrepo.CustomerDTO{}).Count(&customerCount).Error)
	suite.Zero(orderCount)
	suite.Zero(customerCount)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestWithoutTransaction_RepositoriesWorkDirectly() {
	ctx := context.Background()
	uow := suite.factory.Create()

	// No Begin: operations run on the main connection
	hub := suite.createTestHub()
	suite.Require().NoError(uow.NetworkRepository().AddHub(ctx, hub))

	retrieved, err := uow.NetworkRepository().GetHub(ctx, hub.ID())
	suite.Require().NoError(err)
	suite.Equal(hub.ID(), retrieved.ID())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestOrderPlacementWorkflow() {
	ctx := context.Background()

	// Seed the network outside the transaction
	seed := suite.factory.Create()
	hub := suite.createTestHub()
	agent := suite.createTestAgent(hub.ID())
	suite.Require().NoError(seed.NetworkRepository().AddHub(ctx, hub))
	suite.Require().NoError(seed.NetworkRepository().AddAgent(ctx, agent))

	cust := suite.createTestCustomer()
	suite.Require().NoError(seed.CustomerRepository().Add(ctx, cust))

	// Place an order: bind network, reserve the agent, record the order
	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))

	testOrder := suite.createTestOrder(cust.ID())
	agentID := agent.ID()
	suite.Require().NoError(testOrder.BindNetwork(hub.ID(), hub.ID(), nil, &agentID))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, testOrder))
	suite.Require().NoError(uow.NetworkRepository().AdjustAgentLoad(ctx, agent.ID(), 1))
	suite.Require().NoError(cust.RecordOrder(testOrder.ID()))
	suite.Require().NoError(uow.CustomerRepository().Update(ctx, cust))
	suite.Require().NoError(uow.Commit(ctx))

	fresh := suite.factory.Create()
	retrievedAgent, err := fresh.NetworkRepository().GetAgent(ctx, agent.ID())
	suite.Require().NoError(err)
	suite.Equal(1, retrievedAgent.CurrentOrders())

	retrievedCustomer, err := fresh.CustomerRepository().Get(ctx, cust.ID())
	suite.Require().NoError(err)
	suite.Equal([]kernel.UUID{testOrder.ID()}, retrievedCustomer.OrderHistory())
}

func (suite *UnitOfWorkIntegrationTestSuite) createTestCustomer() *customer.Customer {
	cust, err := customer.NewCustomer(
		kernel.NewUUID(), "Anita Buyer", "anita@example.com", "9123456780", time.Now())
	suite.Require().NoError(err)
	return cust
}

func (suite *UnitOfWorkIntegrationTestSuite) createTestHub() *network.Hub {
	hub, err := network.NewHub(
		kernel.NewUUID(), "HUB-BLR-01", "Karnataka", "Bengaluru", network.AreaSouth,
		network.DefaultHubMaxOrders, []string{"560001"}, time.Now())
	suite.Require().NoError(err)
	return hub
}

func (suite *UnitOfWorkIntegrationTestSuite) createTestAgent(hubID kernel.UUID) *network.Agent {
	agent, err := network.NewAgent(
		kernel.NewUUID(), "AGT-001", "Test Agent", "9876500000", hubID,
		network.AreaSouth, network.DefaultAgentMaxOrders, time.Now())
	suite.Require().NoError(err)
	return agent
}

func (suite *UnitOfWorkIntegrationTestSuite) createTestOrder(customerID kernel.UUID) *order.Order {
	pickup, err := kernel.NewAddress(
		"Ravi Seller", "9876543210", "14 MG Road", "", "Bengaluru", "Karnataka", "560001")
	suite.Require().NoError(err)
	drop, err := kernel.NewAddress(
		"Anita Buyer", "9123456780", "22 Marine Drive", "", "Mumbai", "Maharashtra", "400001")
	suite.Require().NoError(err)

	testOrder, err := order.NewOrder(
		kernel.NewUUID(),
		customerID,
		order.NewSellerOrderID(time.Now()),
		pickup,
		drop,
		[]order.Item{{Name: "Ceramic vase", Quantity: 1, WeightKg: 2, Value: 1500}},
		order.TypeNormal,
		order.PriorityMedium,
		order.DeliveryStandard,
		order.PaymentPrepaid,
		time.Now(),
	)
	suite.Require().NoError(err)
	return testOrder
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
