package networkrepo_test

import (
	"context"
	"testing"
	"time"

	"logistics/internal/adapters/out/postgres/networkrepo"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/network"
	"logistics/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// MockAggregateTracker is a mock implementation of aggregateTracker interface.
type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate interface{}) {
	m.Called(id, aggregate)
}

// NetworkRepositoryIntegrationTestSuite provides integration tests for
// NetworkRepository, with particular focus on the guarded capacity updates.
type NetworkRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *networkrepo.GormNetworkRepository
	tracker    *MockAggregateTracker
}

func (suite *NetworkRepositoryIntegrationTestSuite) SetupSuite() {
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

	suite.Require().NoError(db.AutoMigrate(
		&networkrepo.HubDTO{},
		&networkrepo.AgentDTO{},
		&networkrepo.VehicleDTO{},
	))
}

func (suite *NetworkRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE hubs, agents, vehicles").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything).Maybe()
	suite.repository = networkrepo.NewGormNetworkRepository(suite.db, suite.tracker)
}

func (suite *NetworkRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *NetworkRepositoryIntegrationTestSuite) TestHub_AddAndGet_RoundTrip() {
	ctx := context.Background()

	hub := suite.createTestHub("HUB-BLR-01", "Karnataka", "Bengaluru")
	suite.Require().NoError(suite.repository.AddHub(ctx, hub))

	retrieved, err := suite.repository.GetHub(ctx, hub.ID())
	suite.Require().NoError(err)
	suite.Equal(hub.Code(), retrieved.Code())
	suite.Equal("Karnataka", retrieved.State())
	suite.Equal(network.AreaSouth, retrieved.Area())
	suite.Equal([]string{"560001", "560002"}, retrieved.ServiceAreas())
	suite.True(retrieved.Active())
}

func (suite *NetworkRepositoryIntegrationTestSuite) TestGetHubsByState_ExcludesInactiveAndOtherStates() {
	ctx := context.Background()

	active := suite.createTestHub("HUB-BLR-01", "Karnataka", "Bengaluru")
	other := suite.createTestHub("HUB-BOM-01", "Maharashtra", "Mumbai")
	inactive := suite.createTestHub("HUB-MYS-01", "Karnataka", "Mysuru")
	inactive.Deactivate()

	suite.Require().NoError(suite.repository.AddHub(ctx, active))
	suite.Require().NoError(suite.repository.AddHub(ctx, other))
	suite.Require().NoError(suite.repository.AddHub(ctx, inactive))

	hubs, err := suite.repository.GetHubsByState(ctx, "Karnataka")
	suite.Require().NoError(err)
	suite.Require().Len(hubs, 1)
	suite.Equal(active.ID(), hubs[0].ID())
}

func (suite *NetworkRepositoryIntegrationTestSuite) TestGetAvailableAgentsByHub_LeastLoadedFirst() {
	ctx := context.Background()

	hub := suite.createTestHub("HUB-BLR-01", "Karnataka", "Bengaluru")
	suite.Require().NoError(suite.repository.AddHub(ctx, hub))

	busy := suite.createTestAgent("AGT-001", hub.ID())
	idle := suite.createTestAgent("AGT-002", hub.ID())
	offDuty := suite.createTestAgent("AGT-003", hub.ID())
	suite.Require().NoError(offDuty.SetStatus(network.AgentOffDuty))

	suite.Require().NoError(suite.repository.AddAgent(ctx, busy))
	suite.Require().NoError(suite.repository.AddAgent(ctx, idle))
	suite.Require().NoError(suite.repository.AddAgent(ctx, offDuty))

	// Load up the first agent so ordering is observable
	suite.Require().NoError(suite.repository.AdjustAgentLoad(ctx, busy.ID(), 5))

	agents, err := suite.repository.GetAvailableAgentsByHub(ctx, hub.ID())
	suite.Require().NoError(err)
	suite.Require().Len(agents, 2)
	suite.Equal(idle.ID(), agents[0].ID())
	suite.Equal(busy.ID(), agents[1].ID())
	suite.Equal(5, agents[1].CurrentOrders())
}

func (suite *NetworkRepositoryIntegrationTestSuite) TestAdjustAgentLoad_ExceedingCapacity_AllOrNothing() {
	ctx := context.Background()

	hub := suite.createTestHub("HUB-BLR-01", "Karnataka", "Bengaluru")
	suite.Require().NoError(suite.repository.AddHub(ctx, hub))
	agent := suite.createTestAgent("AGT-001", hub.ID())
	suite.Require().NoError(suite.repository.AddAgent(ctx, agent))

	suite.Require().NoError(suite.repository.AdjustAgentLoad(ctx, agent.ID(), 18))

	// 18 + 3 > DefaultAgentMaxOrders, nothing is applied
	err := suite.repository.AdjustAgentLoad(ctx, agent.ID(), 3)
	suite.Require().ErrorIs(err, network.ErrCapacityExceeded)

	retrieved, getErr := suite.repository.GetAgent(ctx, agent.ID())
	suite.Require().NoError(getErr)
	suite.Equal(18, retrieved.CurrentOrders())
}

func (suite *NetworkRepositoryIntegrationTestSuite) TestAdjustAgentLoad_NegativeDelta_ReleasesLoad() {
	ctx := context.Background()

	hub := suite.createTestHub("HUB-BLR-01", "Karnataka", "Bengaluru")
	suite.Require().NoError(suite.repository.AddHub(ctx, hub))
	agent := suite.createTestAgent("AGT-001", hub.ID())
	suite.Require().NoError(suite.repository.AddAgent(ctx, agent))

	suite.Require().NoError(suite.repository.AdjustAgentLoad(ctx, agent.ID(), 2))
	suite.Require().NoError(suite.repository.AdjustAgentLoad(ctx, agent.ID(), -1))

	retrieved, err := suite.repository.GetAgent(ctx, agent.ID())
	suite.Require().NoError(err)
	suite.Equal(1, retrieved.CurrentOrders())
}

func (suite *NetworkRepositoryIntegrationTestSuite) TestAdjustAgentLoad_UnknownAgent_ReturnsNotFound() {
	ctx := context.Background()

	err := suite.repository.AdjustAgentLoad(ctx, kernel.NewUUID(), 1)
	suite.Require().Error(err)

	var notFoundErr *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)
}

func (suite *NetworkRepositoryIntegrationTestSuite) TestGetAvailableVehicles_ExcludesUnavailable() {
	ctx := context.Background()

	available := suite.createTestVehicle("VEH-001")
	maintenance := suite.createTestVehicle("VEH-002")
	suite.Require().NoError(maintenance.SetStatus(network.VehicleMaintenance))

	suite.Require().NoError(suite.repository.AddVehicle(ctx, available))
	suite.Require().NoError(suite.repository.AddVehicle(ctx, maintenance))

	vehicles, err := suite.repository.GetAvailableVehicles(ctx)
	suite.Require().NoError(err)
	suite.Require().Len(vehicles, 1)
	suite.Equal(available.ID(), vehicles[0].ID())
	suite.Equal([]string{"Karnataka", "Maharashtra"}, vehicles[0].ServiceStates())
}

func (suite *NetworkRepositoryIntegrationTestSuite) TestAdjustVehicleLoad_ExceedingCapacity_AllOrNothing() {
	ctx := context.Background()

	vehicle := suite.createTestVehicle("VEH-001")
	suite.Require().NoError(suite.repository.AddVehicle(ctx, vehicle))

	suite.Require().NoError(suite.repository.AdjustVehicleLoad(ctx, vehicle.ID(), 9))

	err := suite.repository.AdjustVehicleLoad(ctx, vehicle.ID(), 2)
	suite.Require().ErrorIs(err, network.ErrCapacityExceeded)

	retrieved, getErr := suite.repository.GetVehicle(ctx, vehicle.ID())
	suite.Require().NoError(getErr)
	suite.Equal(9, retrieved.CurrentOrders())
}

func (suite *NetworkRepositoryIntegrationTestSuite) TestUpdateHub_PersistsLoadAndFlags() {
	ctx := context.Background()

	hub := suite.createTestHub("HUB-BLR-01", "Karnataka", "Bengaluru")
	suite.Require().NoError(suite.repository.AddHub(ctx, hub))

	suite.Require().NoError(hub.AdmitOrders(3))
	hub.Deactivate()
	suite.Require().NoError(suite.repository.UpdateHub(ctx, hub))

	retrieved, err := suite.repository.GetHub(ctx, hub.ID())
	suite.Require().NoError(err)
	suite.Equal(3, retrieved.CurrentLoad())
	suite.False(retrieved.Active())
}

func (suite *NetworkRepositoryIntegrationTestSuite) createTestHub(code, state, city string) *network.Hub {
	hub, err := network.NewHub(
		kernel.NewUUID(), code, state, city, network.AreaSouth,
		network.DefaultHubMaxOrders, []string{"560001", "560002"}, time.Now())
	suite.Require().NoError(err)
	return hub
}

func (suite *NetworkRepositoryIntegrationTestSuite) createTestAgent(code string, hubID kernel.UUID) *network.Agent {
	agent, err := network.NewAgent(
		kernel.NewUUID(), code, "Test Agent "+code, "9876500000", hubID,
		network.AreaSouth, network.DefaultAgentMaxOrders, time.Now())
	suite.Require().NoError(err)
	return agent
}

func (suite *NetworkRepositoryIntegrationTestSuite) createTestVehicle(code string) *network.Vehicle {
	vehicle, err := network.NewVehicle(
		kernel.NewUUID(), code, network.VehicleTruck, "KA01AB1234",
		5000, 40, 10, []string{"Karnataka", "Maharashtra"}, time.Now())
	suite.Require().NoError(err)
	return vehicle
}

func TestNetworkRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(NetworkRepositoryIntegrationTestSuite))
}
