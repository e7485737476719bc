// Package networkrepo provides data transfer objects and mapping functions
// for the delivery network: hubs, pickup/delivery agents and line-haul
// vehicles. Coverage lists are stored as Postgres text arrays.
package networkrepo

import (
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/network"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// HubDTO represents the database structure for persisting hub aggregates.
type HubDTO struct {
	ID           uuid.UUID      `gorm:"type:uuid;primaryKey"`
	Code         string         `gorm:"type:varchar(32);not null;uniqueIndex"`
	State        string         `gorm:"type:varchar(64);not null;index"`
	City         string         `gorm:"type:varchar(64);not null"`
	Area         string         `gorm:"type:varchar(16);not null"`
	MaxOrders    int            `gorm:"not null"`
	CurrentLoad  int            `gorm:"not null"`
	ServiceAreas pq.StringArray `gorm:"type:text[]"`
	Active       bool           `gorm:"not null"`
	CreatedAt    time.Time
}

// TableName specifies the database table name for hub entities.
func (HubDTO) TableName() string {
	return "hubs"
}

// AgentDTO represents the database structure for persisting agent aggregates.
// Agents belong to a hub; current_orders is adjusted via guarded updates,
// never written blindly from the aggregate during load bookkeeping.
type AgentDTO struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	Code          string    `gorm:"type:varchar(32);not null;uniqueIndex"`
	Name          string    `gorm:"type:varchar(255);not null"`
	Phone         string    `gorm:"type:varchar(32);not null"`
	HubID         uuid.UUID `gorm:"type:uuid;not null;index"`
	Area          string    `gorm:"type:varchar(16);not null"`
	Status        string    `gorm:"type:varchar(16);not null"`
	MaxOrders     int       `gorm:"not null"`
	CurrentOrders int       `gorm:"not null"`
	Active        bool      `gorm:"not null"`
	CreatedAt     time.Time
}

// TableName specifies the database table name for agent entities.
func (AgentDTO) TableName() string {
	return "agents"
}

// VehicleDTO represents the database structure for persisting vehicle aggregates.
type VehicleDTO struct {
	ID            uuid.UUID      `gorm:"type:uuid;primaryKey"`
	Code          string         `gorm:"type:varchar(32);not null;uniqueIndex"`
	VehicleType   string         `gorm:"type:varchar(16);not null"`
	Registration  string         `gorm:"type:varchar(32);not null"`
	MaxWeightKg   float64        `gorm:"not null"`
	MaxVolumeCbm  float64        `gorm:"not null"`
	MaxOrders     int            `gorm:"not null"`
	CurrentOrders int            `gorm:"not null"`
	ServiceStates pq.StringArray `gorm:"type:text[]"`
	Status        string         `gorm:"type:varchar(16);not null"`
	Active        bool           `gorm:"not null"`
	CreatedAt     time.Time
}

// TableName specifies the database table name for vehicle entities.
func (VehicleDTO) TableName() string {
	return "vehicles"
}

func hubFromDomain(hub *network.Hub) HubDTO {
	return HubDTO{
		ID:           hub.ID().Bytes(),
		Code:         hub.Code(),
		State:        hub.State(),
		City:         hub.City(),
		Area:         string(hub.Area()),
		MaxOrders:    hub.MaxOrders(),
		CurrentLoad:  hub.CurrentLoad(),
		ServiceAreas: hub.ServiceAreas(),
		Active:       hub.Active(),
		CreatedAt:    hub.CreatedAt(),
	}
}

func hubToDomain(dto HubDTO) (*network.Hub, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	return network.RestoreHub(
		id,
		dto.Code,
		dto.State,
		dto.City,
		network.Area(dto.Area),
		dto.MaxOrders,
		dto.CurrentLoad,
		dto.ServiceAreas,
		dto.Active,
		dto.CreatedAt,
	)
}

func agentFromDomain(agent *network.Agent) AgentDTO {
	return AgentDTO{
		ID:            agent.ID().Bytes(),
		Code:          agent.Code(),
		Name:          agent.Name(),
		Phone:         agent.Phone(),
		HubID:         agent.Hub().Bytes(),
		Area:          string(agent.Area()),
		Status:        string(agent.Status()),
		MaxOrders:     agent.MaxOrders(),
		CurrentOrders: agent.CurrentOrders(),
		Active:        agent.Active(),
		CreatedAt:     agent.CreatedAt(),
	}
}

func agentToDomain(dto AgentDTO) (*network.Agent, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	hubID, err := kernel.UUIDFromBytes(dto.HubID[:])
	if err != nil {
		return nil, err
	}
	return network.RestoreAgent(
		id,
		dto.Code,
		dto.Name,
		dto.Phone,
		hubID,
		network.Area(dto.Area),
		network.AgentStatus(dto.Status),
		dto.MaxOrders,
		dto.CurrentOrders,
		dto.Active,
		dto.CreatedAt,
	)
}

func vehicleFromDomain(vehicle *network.Vehicle) VehicleDTO {
	return VehicleDTO{
		ID:            vehicle.ID().Bytes(),
		Code:          vehicle.Code(),
		VehicleType:   string(vehicle.Type()),
		Registration:  vehicle.Registration(),
		MaxWeightKg:   vehicle.MaxWeightKg(),
		MaxVolumeCbm:  vehicle.MaxVolumeCbm(),
		MaxOrders:     vehicle.MaxOrders(),
		CurrentOrders: vehicle.CurrentOrders(),
		ServiceStates: vehicle.ServiceStates(),
		Status:        string(vehicle.Status()),
		Active:        vehicle.Active(),
		CreatedAt:     vehicle.CreatedAt(),
	}
}

func vehicleToDomain(dto VehicleDTO) (*network.Vehicle, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	return network.RestoreVehicle(
		id,
		dto.Code,
		network.VehicleType(dto.VehicleType),
		dto.Registration,
		dto.MaxWeightKg,
		dto.MaxVolumeCbm,
		dto.MaxOrders,
		dto.CurrentOrders,
		dto.ServiceStates,
		network.VehicleStatus(dto.Status),
		dto.Active,
		dto.CreatedAt,
	)
}
