package network

import (
	"fmt"

	"logistics/internal/pkg/errs"
)

// Area is a coarse geographic zone used for hub and agent routing.
type Area string

const (
	AreaNorth   Area = "NORTH"
	AreaSouth   Area = "SOUTH"
	AreaEast    Area = "EAST"
	AreaWest    Area = "WEST"
	AreaCentral Area = "CENTRAL"
)

func (a Area) Validate() error {
	switch a {
	case AreaNorth, AreaSouth, AreaEast, AreaWest, AreaCentral:
		return nil
	}
	return errs.NewValueIsInvalidErrorWithCause(
		"area", fmt.Errorf("%q is not a valid area", string(a)))
}

// AgentStatus is the duty state of a delivery agent.
type AgentStatus string

const (
	AgentAvailable  AgentStatus = "AVAILABLE"
	AgentOnDelivery AgentStatus = "ON_DELIVERY"
	AgentOffDuty    AgentStatus = "OFF_DUTY"
	AgentOnBreak    AgentStatus = "BREAK"
)

func (s AgentStatus) Validate() error {
	switch s {
	case AgentAvailable, AgentOnDelivery, AgentOffDuty, AgentOnBreak:
		return nil
	}
	return errs.NewValueIsInvalidErrorWithCause(
		"agentStatus", fmt.Errorf("%q is not a valid agent status", string(s)))
}

// VehicleStatus is the operational state of a line-haul vehicle.
type VehicleStatus string

const (
	VehicleAvailable   VehicleStatus = "AVAILABLE"
	VehicleInTransit   VehicleStatus = "IN_TRANSIT"
	VehicleLoading     VehicleStatus = "LOADING"
	VehicleMaintenance VehicleStatus = "MAINTENANCE"
)

func (s VehicleStatus) Validate() error {
	switch s {
	case VehicleAvailable, VehicleInTransit, VehicleLoading, VehicleMaintenance:
		return nil
	}
	return errs.NewValueIsInvalidErrorWithCause(
		"vehicleStatus", fmt.Errorf("%q is not a valid vehicle status", string(s)))
}

// VehicleType classifies line-haul vehicles by body type.
type VehicleType string

const (
	VehicleMiniTruck VehicleType = "MINI_TRUCK"
	VehicleTruck     VehicleType = "TRUCK"
	VehicleTempo     VehicleType = "TEMPO"
	VehicleContainer VehicleType = "CONTAINER"
)

func (t VehicleType) Validate() error {
	switch t {
	case VehicleMiniTruck, VehicleTruck, VehicleTempo, VehicleContainer:
		return nil
	}
	return errs.NewValueIsInvalidErrorWithCause(
		"vehicleType", fmt.Errorf("%q is not a valid vehicle type", string(t)))
}
