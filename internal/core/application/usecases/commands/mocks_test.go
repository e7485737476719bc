package commands_test

import (
	"context"
	"time"

	"logistics/internal/core/application/usecases/commands"
	"logistics/internal/core/domain/model/customer"
	"logistics/internal/core/domain/model/estimate"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/network"
	"logistics/internal/core/domain/model/order"
	"logistics/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) UpdateWithStatusGuard(ctx context.Context, o *order.Order, expected order.Status) error {
	args := m.Called(ctx, o, expected)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if v := args.Get(0); v != nil {
		return v.(*order.Order), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockOrderRepository) GetBySellerOrderID(ctx context.Context, sellerOrderID string) (*order.Order, error) {
	args := m.Called(ctx, sellerOrderID)
	if v := args.Get(0); v != nil {
		return v.(*order.Order), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockOrderRepository) GetAllUnassigned(ctx context.Context) ([]*order.Order, error) {
	args := m.Called(ctx)
	if v := args.Get(0); v != nil {
		return v.([]*order.Order), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockOrderRepository) GetAllInStatus(ctx context.Context, status order.Status) ([]*order.Order, error) {
	args := m.Called(ctx, status)
	if v := args.Get(0); v != nil {
		return v.([]*order.Order), args.Error(1)
	}
	return nil, args.Error(1)
}

type MockNetworkRepository struct{ mock.Mock }

func (m *MockNetworkRepository) AddHub(ctx context.Context, hub *network.Hub) error {
	args := m.Called(ctx, hub)
	return args.Error(0)
}

func (m *MockNetworkRepository) UpdateHub(ctx context.Context, hub *network.Hub) error {
	args := m.Called(ctx, hub)
	return args.Error(0)
}

func (m *MockNetworkRepository) GetHub(ctx context.Context, id kernel.UUID) (*network.Hub, error) {
	args := m.Called(ctx, id)
	if v := args.Get(0); v != nil {
		return v.(*network.Hub), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockNetworkRepository) GetHubsByState(ctx context.Context, state string) ([]*network.Hub, error) {
	args := m.Called(ctx, state)
	if v := args.Get(0); v != nil {
		return v.([]*network.Hub), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockNetworkRepository) AddAgent(ctx context.Context, agent *network.Agent) error {
	args := m.Called(ctx, agent)
	return args.Error(0)
}

func (m *MockNetworkRepository) UpdateAgent(ctx context.Context, agent *network.Agent) error {
	args := m.Called(ctx, agent)
	return args.Error(0)
}

func (m *MockNetworkRepository) GetAgent(ctx context.Context, id kernel.UUID) (*network.Agent, error) {
	args := m.Called(ctx, id)
	if v := args.Get(0); v != nil {
		return v.(*network.Agent), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockNetworkRepository) GetAvailableAgentsByHub(ctx context.Context, hubID kernel.UUID) ([]*network.Agent, error) {
	args := m.Called(ctx, hubID)
	if v := args.Get(0); v != nil {
		return v.([]*network.Agent), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockNetworkRepository) AdjustAgentLoad(ctx context.Context, agentID kernel.UUID, delta int) error {
	args := m.Called(ctx, agentID, delta)
	return args.Error(0)
}

func (m *MockNetworkRepository) AddVehicle(ctx context.Context, vehicle *network.Vehicle) error {
	args := m.Called(ctx, vehicle)
	return args.Error(0)
}

func (m *MockNetworkRepository) UpdateVehicle(ctx context.Context, vehicle *network.Vehicle) error {
	args := m.Called(ctx, vehicle)
	return args.Error(0)
}

func (m *MockNetworkRepository) GetVehicle(ctx context.Context, id kernel.UUID) (*network.Vehicle, error) {
	args := m.Called(ctx, id)
	if v := args.Get(0); v != nil {
		return v.(*network.Vehicle), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockNetworkRepository) GetAvailableVehicles(ctx context.Context) ([]*network.Vehicle, error) {
	args := m.Called(ctx)
	if v := args.Get(0); v != nil {
		return v.([]*network.Vehicle), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockNetworkRepository) AdjustVehicleLoad(ctx context.Context, vehicleID kernel.UUID, delta int) error {
	args := m.Called(ctx, vehicleID, delta)
	return args.Error(0)
}

type MockCustomerRepository struct{ mock.Mock }

func (m *MockCustomerRepository) Add(ctx context.Context, c *customer.Customer) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCustomerRepository) Update(ctx context.Context, c *customer.Customer) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCustomerRepository) Get(ctx context.Context, id kernel.UUID) (*customer.Customer, error) {
	args := m.Called(ctx, id)
	if v := args.Get(0); v != nil {
		return v.(*customer.Customer), args.Error(1)
	}
	return nil, args.Error(1)
}

type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUoW) NetworkRepository() ports.NetworkRepository {
	args := m.Called()
	return args.Get(0).(ports.NetworkRepository)
}

func (m *MockUoW) CustomerRepository() ports.CustomerRepository {
	args := m.Called()
	return args.Get(0).(ports.CustomerRepository)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type MockOrderUoW struct{ mock.Mock }

func (m *MockOrderUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockNetworkUoW struct{ mock.Mock }

func (m *MockNetworkUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockNetworkUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockNetworkUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockNetworkUoW) NetworkRepository() ports.NetworkRepository {
	args := m.Called()
	return args.Get(0).(ports.NetworkRepository)
}

type MockNetworkUoWFactory struct{ mock.Mock }

func (m *MockNetworkUoWFactory) Create() commands.NetworkUoW {
	args := m.Called()
	return args.Get(0).(commands.NetworkUoW)
}

type MockCustomerUoW struct{ mock.Mock }

func (m *MockCustomerUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockCustomerUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockCustomerUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockCustomerUoW) CustomerRepository() ports.CustomerRepository {
	args := m.Called()
	return args.Get(0).(ports.CustomerRepository)
}

type MockCustomerUoWFactory struct{ mock.Mock }

func (m *MockCustomerUoWFactory) Create() commands.CustomerUoW {
	args := m.Called()
	return args.Get(0).(commands.CustomerUoW)
}

type MockOrderNetworkUoW struct{ mock.Mock }

func (m *MockOrderNetworkUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderNetworkUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderNetworkUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderNetworkUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockOrderNetworkUoW) NetworkRepository() ports.NetworkRepository {
	args := m.Called()
	return args.Get(0).(ports.NetworkRepository)
}

type MockOrderNetworkUoWFactory struct{ mock.Mock }

func (m *MockOrderNetworkUoWFactory) Create() commands.OrderNetworkUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderNetworkUoW)
}

type MockEstimator struct{ mock.Mock }

func (m *MockEstimator) EstimatePrice(ctx context.Context, req estimate.Request) (estimate.PriceBreakdown, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(estimate.PriceBreakdown), args.Error(1)
}

func (m *MockEstimator) EstimateDeliveryTime(ctx context.Context, req estimate.Request) (estimate.TimeEstimate, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(estimate.TimeEstimate), args.Error(1)
}

func (m *MockEstimator) PlanRoute(ctx context.Context, req estimate.Request) (estimate.RoutePlan, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(estimate.RoutePlan), args.Error(1)
}

type MockNotifier struct{ mock.Mock }

func (m *MockNotifier) Notify(ctx context.Context, recipientRef string, event ports.NotificationEvent, payload map[string]any) {
	m.Called(ctx, recipientRef, event, payload)
}

// NoopNotifier satisfies ports.Notifier for tests that do not assert on
// notifications.
type NoopNotifier struct{}

func (NoopNotifier) Notify(context.Context, string, ports.NotificationEvent, map[string]any) {}

type fixtures struct {
	customerID kernel.UUID
	pickup     kernel.Address
	drop       kernel.Address
	items      []order.Item
}

func newFixtures() fixtures {
	pickup, _ := kernel.NewAddress(
		"Ravi Seller", "9876543210", "12 MG Road", "", "Bengaluru", "Karnataka", "560001")
	drop, _ := kernel.NewAddress(
		"Anita Buyer", "9123456780", "7 Marine Drive", "", "Mumbai", "Maharashtra", "400001")
	return fixtures{
		customerID: kernel.NewUUID(),
		pickup:     pickup,
		drop:       drop,
		items: []order.Item{{
			Name:     "Ceramic vase",
			Quantity: 1,
			WeightKg: 2,
			Dims:     order.Dimensions{Length: 30, Width: 20, Height: 15},
			Value:    1500,
		}},
	}
}

func testCustomer(id kernel.UUID) *customer.Customer {
	c, _ := customer.NewCustomer(
		id, "Anita Buyer", "anita@example.com", "9123456780",
		time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC))
	return c
}

func testEstimates() (estimate.PriceBreakdown, estimate.TimeEstimate, estimate.RoutePlan) {
	price := estimate.PriceBreakdown{
		Total:             526.87,
		EstimatedDelivery: time.Date(2025, 9, 2, 12, 0, 0, 0, time.UTC),
	}
	eta := estimate.TimeEstimate{EstimatedDays: 4, MinDays: 2, MaxDays: 6, Confidence: 75}
	route := estimate.RoutePlan{RecommendedVehicle: "TRUCK", TotalTransitHours: 48}
	return price, eta, route
}
