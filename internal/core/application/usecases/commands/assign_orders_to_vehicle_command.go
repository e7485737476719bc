package commands

import (
	"errors"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"
)

// ErrAssignOrdersToVehicleCommandIsNotConstructed is returned when an
// AssignOrdersToVehicleCommand bypassed its constructor.
var ErrAssignOrdersToVehicleCommandIsNotConstructed = errors.New(
	"AssignOrdersToVehicleCommand must be created via NewAssignOrdersToVehicleCommand constructor",
)

// AssignOrdersToVehicleCommand loads a batch of dispatched orders onto a
// line-haul vehicle. Like agent dispatch, the batch is all or nothing.
type AssignOrdersToVehicleCommand struct { //nolint:recvcheck //using for validation
	vehicleID kernel.UUID
	orderIDs  []kernel.UUID

	guard guard.ConstructorGuard
}

// NewAssignOrdersToVehicleCommand builds and validates the command.
func NewAssignOrdersToVehicleCommand(vehicleID kernel.UUID, orderIDs []kernel.UUID) (AssignOrdersToVehicleCommand, error) {
	if err := vehicleID.Validate(); err != nil {
		return AssignOrdersToVehicleCommand{}, errs.NewValueIsRequiredErrorWithCause("vehicleId", err)
	}
	if len(orderIDs) == 0 {
		return AssignOrdersToVehicleCommand{}, errs.NewValueIsRequiredError("orderIds")
	}
	for _, id := range orderIDs {
		if err := id.Validate(); err != nil {
			return AssignOrdersToVehicleCommand{}, errs.NewValueIsInvalidErrorWithCause("orderIds", err)
		}
	}

	ids := make([]kernel.UUID, len(orderIDs))
	copy(ids, orderIDs)
	return AssignOrdersToVehicleCommand{
		vehicleID: vehicleID,
		orderIDs:  ids,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c AssignOrdersToVehicleCommand) Validate() error {
	return c.guard.Validate(ErrAssignOrdersToVehicleCommandIsNotConstructed)
}

func (c AssignOrdersToVehicleCommand) VehicleID() kernel.UUID { return c.vehicleID }

// OrderIDs returns a copy of the batch.
func (c AssignOrdersToVehicleCommand) OrderIDs() []kernel.UUID {
	ids := make([]kernel.UUID, len(c.orderIDs))
	copy(ids, c.orderIDs)
	return ids
}
