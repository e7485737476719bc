package networkrepo

import (
	"context"
	"errors"
	"fmt"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/network"
	"logistics/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormNetworkRepository implements NetworkRepository using GORM. Capacity
// deltas are applied as single guarded UPDATE statements so that two
// concurrent admissions can never push a resource past its maximum.
type GormNetworkRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormNetworkRepository creates a new GORM network repository.
func NewGormNetworkRepository(db *gorm.DB, tracker aggregateTracker) *GormNetworkRepository {
	return &GormNetworkRepository{
		db:      db,
		tracker: tracker,
	}
}

// AddHub saves a new hub to the database.
func (r *GormNetworkRepository) AddHub(ctx context.Context, hub *network.Hub) error {
	if err := hub.Validate(); err != nil {
		return err
	}

	dto := hubFromDomain(hub)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(hub.ID(), hub)
	return nil
}

// UpdateHub saves an existing hub to the database.
func (r *GormNetworkRepository) UpdateHub(ctx context.Context, hub *network.Hub) error {
	if err := hub.Validate(); err != nil {
		return err
	}

	dto := hubFromDomain(hub)
	result := r.db.WithContext(ctx).
		Model(&HubDTO{}).
		Where("id = ?", dto.ID).
		Select("*").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(hub.ID(), hub)
	return nil
}

// GetHub retrieves a hub by ID.
func (r *GormNetworkRepository) GetHub(ctx context.Context, id kernel.UUID) (*network.Hub, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto HubDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("hub", id.String())
		}
		return nil, err
	}

	return hubToDomain(dto)
}

// GetHubsByState retrieves the active hubs covering a state.
func (r *GormNetworkRepository) GetHubsByState(ctx context.Context, state string) ([]*network.Hub, error) {
	if state == "" {
		return nil, errs.NewValueIsRequiredError("state")
	}

	var dtos []HubDTO
	err := r.db.WithContext(ctx).
		Where("state = ? AND active", state).
		Order("current_load").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	hubs := make([]*network.Hub, 0, len(dtos))
	for _, dto := range dtos {
		hub, err := hubToDomain(dto)
		if err != nil {
			return nil, err
		}
		hubs = append(hubs, hub)
	}
	return hubs, nil
}

// AddAgent saves a new agent to the database.
func (r *GormNetworkRepository) AddAgent(ctx context.Context, agent *network.Agent) error {
	if err := agent.Validate(); err != nil {
		return err
	}

	dto := agentFromDomain(agent)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(agent.ID(), agent)
	return nil
}

// UpdateAgent saves an existing agent to the database.
func (r *GormNetworkRepository) UpdateAgent(ctx context.Context, agent *network.Agent) error {
	if err := agent.Validate(); err != nil {
		return err
	}

	dto := agentFromDomain(agent)
	result := r.db.WithContext(ctx).
		Model(&AgentDTO{}).
		Where("id = ?", dto.ID).
		Select("*").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(agent.ID(), agent)
	return nil
}

// GetAgent retrieves an agent by ID.
func (r *GormNetworkRepository) GetAgent(ctx context.Context, id kernel.UUID) (*network.Agent, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto AgentDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("agent", id.String())
		}
		return nil, err
	}

	return agentToDomain(dto)
}

// GetAvailableAgentsByHub retrieves active AVAILABLE agents attached to a
// hub with remaining headroom, least loaded first.
func (r *GormNetworkRepository) GetAvailableAgentsByHub(
	ctx context.Context,
	hubID kernel.UUID,
) ([]*network.Agent, error) {
	if err := hubID.Validate(); err != nil {
		return nil, err
	}

	var dtos []AgentDTO
	err := r.db.WithContext(ctx).
		Where("hub_id = ? AND active AND status = ? AND current_orders < max_orders",
			hubID.Bytes(), string(network.AgentAvailable)).
		Order("current_orders").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	agents := make([]*network.Agent, 0, len(dtos))
	for _, dto := range dtos {
		agent, err := agentToDomain(dto)
		if err != nil {
			return nil, err
		}
		agents = append(agents, agent)
	}
	return agents, nil
}

// AdjustAgentLoad atomically applies delta to an agent's open-order count.
// Positive deltas require an active AVAILABLE agent with enough headroom
// for the whole delta; a zero row count on an existing agent surfaces as
// network.ErrCapacityExceeded.
func (r *GormNetworkRepository) AdjustAgentLoad(ctx context.Context, agentID kernel.UUID, delta int) error {
	if err := agentID.Validate(); err != nil {
		return err
	}
	if delta == 0 {
		return nil
	}

	query := r.db.WithContext(ctx).Model(&AgentDTO{})
	if delta > 0 {
		query = query.Where(
			"id = ? AND active AND status = ? AND current_orders + ? <= max_orders",
			agentID.Bytes(), string(network.AgentAvailable), delta)
	} else {
		query = query.Where("id = ? AND current_orders + ? >= 0", agentID.Bytes(), delta)
	}

	result := query.Update("current_orders", gorm.Expr("current_orders + ?", delta))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		agent, err := r.GetAgent(ctx, agentID)
		if err != nil {
			return err
		}
		return fmt.Errorf("%w: agent %s has headroom %d, requested %d",
			network.ErrCapacityExceeded, agent.Code(), agent.Headroom(), delta)
	}
	return nil
}

// AddVehicle saves a new vehicle to the database.
func (r *GormNetworkRepository) AddVehicle(ctx context.Context, vehicle *network.Vehicle) error {
	if err := vehicle.Validate(); err != nil {
		return err
	}

	dto := vehicleFromDomain(vehicle)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(vehicle.ID(), vehicle)
	return nil
}

// UpdateVehicle saves an existing vehicle to the database.
func (r *GormNetworkRepository) UpdateVehicle(ctx context.Context, vehicle *network.Vehicle) error {
	if err := vehicle.Validate(); err != nil {
		return err
	}

	dto := vehicleFromDomain(vehicle)
	result := r.db.WithContext(ctx).
		Model(&VehicleDTO{}).
		Where("id = ?", dto.ID).
		Select("*").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(vehicle.ID(), vehicle)
	return nil
}

// GetVehicle retrieves a vehicle by ID.
func (r *GormNetworkRepository) GetVehicle(ctx context.Context, id kernel.UUID) (*network.Vehicle, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto VehicleDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("vehicle", id.String())
		}
		return nil, err
	}

	return vehicleToDomain(dto)
}

// GetAvailableVehicles retrieves active AVAILABLE vehicles with remaining
// headroom, least loaded first.
func (r *GormNetworkRepository) GetAvailableVehicles(ctx context.Context) ([]*network.Vehicle, error) {
	var dtos []VehicleDTO
	err := r.db.WithContext(ctx).
		Where("active AND status = ? AND current_orders < max_orders", string(network.VehicleAvailable)).
		Order("current_orders").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	vehicles := make([]*network.Vehicle, 0, len(dtos))
	for _, dto := range dtos {
		vehicle, err := vehicleToDomain(dto)
		if err != nil {
			return nil, err
		}
		vehicles = append(vehicles, vehicle)
	}
	return vehicles, nil
}

// AdjustVehicleLoad atomically applies delta to a vehicle's open-order
// count with the same all-or-nothing capacity guard as agents.
func (r *GormNetworkRepository) AdjustVehicleLoad(ctx context.Context, vehicleID kernel.UUID, delta int) error {
	if err := vehicleID.Validate(); err != nil {
		return err
	}
	if delta == 0 {
		return nil
	}

	query := r.db.WithContext(ctx).Model(&VehicleDTO{})
	if delta > 0 {
		query = query.Where(
			"id = ? AND active AND status = ? AND current_orders + ? <= max_orders",
			vehicleID.Bytes(), string(network.VehicleAvailable), delta)
	} else {
		query = query.Where("id = ? AND current_orders + ? >= 0", vehicleID.Bytes(), delta)
	}

	result := query.Update("current_orders", gorm.Expr("current_orders + ?", delta))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		vehicle, err := r.GetVehicle(ctx, vehicleID)
		if err != nil {
			return err
		}
		return fmt.Errorf("%w: vehicle %s has headroom %d, requested %d",
			network.ErrCapacityExceeded, vehicle.Code(), vehicle.Headroom(), delta)
	}
	return nil
}
