package ports

import (
	"context"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/network"
)

// NetworkRepository defines the persistence contract for hubs, agents and
// vehicles. Capacity deltas are applied as single guarded updates so that
// concurrent admissions cannot oversubscribe a resource.
type NetworkRepository interface {
	AddHub(ctx context.Context, hub *network.Hub) error
	UpdateHub(ctx context.Context, hub *network.Hub) error
	GetHub(ctx context.Context, id kernel.UUID) (*network.Hub, error)

	// GetHubsByState retrieves the active hubs covering a state.
	GetHubsByState(ctx context.Context, state string) ([]*network.Hub, error)

	AddAgent(ctx context.Context, agent *network.Agent) error
	UpdateAgent(ctx context.Context, agent *network.Agent) error
	GetAgent(ctx context.Context, id kernel.UUID) (*network.Agent, error)

	// GetAvailableAgentsByHub retrieves active AVAILABLE agents attached to
	// a hub, least loaded first.
	GetAvailableAgentsByHub(ctx context.Context, hubID kernel.UUID) ([]*network.Agent, error)

	// AdjustAgentLoad atomically applies delta to an agent's open-order
	// count, rejecting the whole batch when it would exceed capacity.
	// Over-capacity surfaces as network.ErrCapacityExceeded.
	AdjustAgentLoad(ctx context.Context, agentID kernel.UUID, delta int) error

	AddVehicle(ctx context.Context, vehicle *network.Vehicle) error
	UpdateVehicle(ctx context.Context, vehicle *network.Vehicle) error
	GetVehicle(ctx context.Context, id kernel.UUID) (*network.Vehicle, error)

	// GetAvailableVehicles retrieves active AVAILABLE vehicles.
	GetAvailableVehicles(ctx context.Context) ([]*network.Vehicle, error)

	// AdjustVehicleLoad atomically applies delta to a vehicle's open-order
	// count with the same all-or-nothing capacity guard as agents.
	AdjustVehicleLoad(ctx context.Context, vehicleID kernel.UUID, delta int) error
}
