package commands

import (
	"errors"

	"logistics/internal/core/domain/model/network"
	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"
)

// ErrRegisterVehicleCommandIsNotConstructed is returned when a
// RegisterVehicleCommand bypassed its constructor.
var ErrRegisterVehicleCommandIsNotConstructed = errors.New(
	"RegisterVehicleCommand must be created via NewRegisterVehicleCommand constructor",
)

// RegisterVehicleCommand creates a line-haul vehicle. MaxOrders defaults
// to network.DefaultVehicleMaxOrders when zero.
type RegisterVehicleCommand struct { //nolint:recvcheck //using for validation
	code          string
	vehicleType   network.VehicleType
	registration  string
	maxWeightKg   float64
	maxVolumeCbm  float64
	maxOrders     int
	serviceStates []string

	guard guard.ConstructorGuard
}

// NewRegisterVehicleCommand builds and validates the command.
func NewRegisterVehicleCommand(
	code string,
	vehicleType network.VehicleType,
	registration string,
	maxWeightKg, maxVolumeCbm float64,
	maxOrders int,
	serviceStates []string,
) (RegisterVehicleCommand, error) {
	if code == "" {
		return RegisterVehicleCommand{}, errs.NewValueIsRequiredError("code")
	}
	if registration == "" {
		return RegisterVehicleCommand{}, errs.NewValueIsRequiredError("registration")
	}
	if err := vehicleType.Validate(); err != nil {
		return RegisterVehicleCommand{}, err
	}
	if maxWeightKg < 0 || maxVolumeCbm < 0 {
		return RegisterVehicleCommand{}, errs.NewValueIsInvalidError("capacity")
	}
	if maxOrders == 0 {
		maxOrders = network.DefaultVehicleMaxOrders
	}

	states := make([]string, len(serviceStates))
	copy(states, serviceStates)
	return RegisterVehicleCommand{
		code:          code,
		vehicleType:   vehicleType,
		registration:  registration,
		maxWeightKg:   maxWeightKg,
		maxVolumeCbm:  maxVolumeCbm,
		maxOrders:     maxOrders,
		serviceStates: states,
		guard:         guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c RegisterVehicleCommand) Validate() error {
	return c.guard.Validate(ErrRegisterVehicleCommandIsNotConstructed)
}

func (c RegisterVehicleCommand) Code() string                     { return c.code }
func (c RegisterVehicleCommand) VehicleType() network.VehicleType { return c.vehicleType }
func (c RegisterVehicleCommand) Registration() string             { return c.registration }
func (c RegisterVehicleCommand) MaxWeightKg() float64             { return c.maxWeightKg }
func (c RegisterVehicleCommand) MaxVolumeCbm() float64            { return c.maxVolumeCbm }
func (c RegisterVehicleCommand) MaxOrders() int                   { return c.maxOrders }

// ServiceStates returns a copy of the states the vehicle may serve.
func (c RegisterVehicleCommand) ServiceStates() []string {
	states := make([]string, len(c.serviceStates))
	copy(states, c.serviceStates)
	return states
}
