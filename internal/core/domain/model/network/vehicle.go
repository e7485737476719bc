package network

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"
)

// ErrVehicleIsNotConstructed is returned when a Vehicle was not created
// through NewVehicle or RestoreVehicle.
var ErrVehicleIsNotConstructed = errors.New("Vehicle must be created via NewVehicle or RestoreVehicle")

// DefaultVehicleMaxOrders is the per-vehicle order limit when none is given.
const DefaultVehicleMaxOrders = 500

// Vehicle is a line-haul vehicle moving shipments between hubs. It serves a
// set of states and admits orders up to its capacity, all or nothing.
type Vehicle struct {
	id            kernel.UUID
	code          string
	vehicleType   VehicleType
	registration  string
	maxWeightKg   float64
	maxVolumeCbm  float64
	maxOrders     int
	currentOrders int
	serviceStates []string
	status        VehicleStatus
	active        bool
	createdAt     time.Time

	isConstructed bool
}

// NewVehicle creates an active, available Vehicle with no orders loaded.
// A maxOrders of 0 falls back to DefaultVehicleMaxOrders.
func NewVehicle(id kernel.UUID, code string, vehicleType VehicleType, registration string, maxWeightKg, maxVolumeCbm float64, maxOrders int, serviceStates []string, createdAt time.Time) (*Vehicle, error) {
	if maxOrders == 0 {
		maxOrders = DefaultVehicleMaxOrders
	}

	v := &Vehicle{
		status:        VehicleAvailable,
		active:        true,
		createdAt:     createdAt,
		isConstructed: true,
	}

	if err := errors.Join(
		v.setID(id),
		v.setIdentity(code, vehicleType, registration),
		v.setCapacity(maxWeightKg, maxVolumeCbm, maxOrders),
	); err != nil {
		return nil, err
	}

	v.serviceStates = slices.Clone(serviceStates)
	return v, nil
}

// RestoreVehicle reconstructs a Vehicle from persistent storage.
func RestoreVehicle(id kernel.UUID, code string, vehicleType VehicleType, registration string, maxWeightKg, maxVolumeCbm float64, maxOrders, currentOrders int, serviceStates []string, status VehicleStatus, active bool, createdAt time.Time) (*Vehicle, error) {
	v, err := NewVehicle(id, code, vehicleType, registration, maxWeightKg, maxVolumeCbm, maxOrders, serviceStates, createdAt)
	if err != nil {
		return nil, err
	}
	if err := status.Validate(); err != nil {
		return nil, err
	}
	if currentOrders < 0 || currentOrders > v.maxOrders {
		return nil, errs.NewValueIsOutOfRangeError("currentOrders", currentOrders, 0, v.maxOrders)
	}
	v.status = status
	v.currentOrders = currentOrders
	v.active = active
	return v, nil
}

// Validate ensures the Vehicle was properly constructed.
func (v *Vehicle) Validate() error {
	if v == nil || !v.isConstructed {
		return ErrVehicleIsNotConstructed
	}
	return nil
}

func (v *Vehicle) ID() kernel.UUID          { return v.id }
func (v *Vehicle) Code() string             { return v.code }
func (v *Vehicle) Type() VehicleType        { return v.vehicleType }
func (v *Vehicle) Registration() string     { return v.registration }
func (v *Vehicle) MaxWeightKg() float64     { return v.maxWeightKg }
func (v *Vehicle) MaxVolumeCbm() float64    { return v.maxVolumeCbm }
func (v *Vehicle) MaxOrders() int           { return v.maxOrders }
func (v *Vehicle) CurrentOrders() int       { return v.currentOrders }
func (v *Vehicle) Status() VehicleStatus    { return v.status }
func (v *Vehicle) Active() bool             { return v.active }
func (v *Vehicle) CreatedAt() time.Time     { return v.createdAt }

// ServiceStates returns a copy of the states this vehicle serves.
func (v *Vehicle) ServiceStates() []string {
	return slices.Clone(v.serviceStates)
}

// Headroom returns how many more orders the vehicle can load.
func (v *Vehicle) Headroom() int {
	return v.maxOrders - v.currentOrders
}

// Available reports whether the vehicle can be considered for assignment.
func (v *Vehicle) Available() bool {
	return v.active && v.status == VehicleAvailable && v.Headroom() > 0
}

// Serves reports whether the vehicle covers the given state.
func (v *Vehicle) Serves(state string) bool {
	return slices.Contains(v.serviceStates, state)
}

// LoadOrders takes n orders onto the vehicle, all or nothing. A successful
// load moves an available vehicle to LOADING.
func (v *Vehicle) LoadOrders(n int) error {
	if n <= 0 {
		return errs.NewValueIsOutOfRangeError("count", n, 1, v.Headroom())
	}
	if !v.active || v.status == VehicleMaintenance {
		return errs.NewValueIsInvalidErrorWithCause(
			"vehicleStatus", fmt.Errorf("vehicle %s is not in service", v.code))
	}
	if n > v.Headroom() {
		return capacityExceeded(fmt.Sprintf("vehicle %s", v.code), v.Headroom(), n)
	}
	v.currentOrders += n
	if v.status == VehicleAvailable {
		v.status = VehicleLoading
	}
	return nil
}

// UnloadOrders returns n orders worth of capacity. Dropping to zero open
// orders moves the vehicle back to AVAILABLE.
func (v *Vehicle) UnloadOrders(n int) {
	v.currentOrders -= n
	if v.currentOrders < 0 {
		v.currentOrders = 0
	}
	if v.currentOrders == 0 && (v.status == VehicleLoading || v.status == VehicleInTransit) {
		v.status = VehicleAvailable
	}
}

// SetStatus changes the vehicle's operational state.
func (v *Vehicle) SetStatus(status VehicleStatus) error {
	if err := status.Validate(); err != nil {
		return err
	}
	v.status = status
	return nil
}

// Deactivate removes the vehicle from assignment without deleting it.
func (v *Vehicle) Deactivate() {
	v.active = false
}

func (v *Vehicle) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	v.id = id
	return nil
}

func (v *Vehicle) setIdentity(code string, vehicleType VehicleType, registration string) error {
	if code == "" {
		return errs.NewValueIsRequiredError("vehicleCode")
	}
	if err := vehicleType.Validate(); err != nil {
		return err
	}
	if registration == "" {
		return errs.NewValueIsRequiredError("registrationNumber")
	}
	v.code = code
	v.vehicleType = vehicleType
	v.registration = registration
	return nil
}

func (v *Vehicle) setCapacity(maxWeightKg, maxVolumeCbm float64, maxOrders int) error {
	if maxWeightKg <= 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"maxWeightKg", fmt.Errorf("%f is not greater than 0", maxWeightKg))
	}
	if maxVolumeCbm <= 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"maxVolumeCbm", fmt.Errorf("%f is not greater than 0", maxVolumeCbm))
	}
	if maxOrders < 0 {
		return errs.NewValueIsOutOfRangeError("maxOrders", maxOrders, 0, DefaultVehicleMaxOrders)
	}
	v.maxWeightKg = maxWeightKg
	v.maxVolumeCbm = maxVolumeCbm
	v.maxOrders = maxOrders
	return nil
}
