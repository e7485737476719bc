package commands

import (
	"context"
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/network"
	"logistics/internal/pkg/errs"
)

// RegisterVehicleCommandHandler persists a new vehicle.
type RegisterVehicleCommandHandler struct {
	uowFactory NetworkUoWFactory
	now        func() time.Time
}

// NewRegisterVehicleCommandHandler creates the handler.
func NewRegisterVehicleCommandHandler(uowFactory NetworkUoWFactory) (*RegisterVehicleCommandHandler, error) {
	if uowFactory == nil {
		return nil, errs.NewValueIsRequiredError("uowFactory")
	}
	return &RegisterVehicleCommandHandler{uowFactory: uowFactory, now: time.Now}, nil
}

// Handle creates the vehicle and returns its identifier.
func (h *RegisterVehicleCommandHandler) Handle(ctx context.Context, cmd RegisterVehicleCommand) (kernel.UUID, error) {
	if err := cmd.Validate(); err != nil {
		return kernel.UUID{}, err
	}

	vehicle, err := network.NewVehicle(
		kernel.NewUUID(),
		cmd.Code(),
		cmd.VehicleType(),
		cmd.Registration(),
		cmd.MaxWeightKg(),
		cmd.MaxVolumeCbm(),
		cmd.MaxOrders(),
		cmd.ServiceStates(),
		h.now(),
	)
	if err != nil {
		return kernel.UUID{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return kernel.UUID{}, err
	}
	defer func() { _ = uow.Rollback(ctx) }()

	if err := uow.NetworkRepository().AddVehicle(ctx, vehicle); err != nil {
		return kernel.UUID{}, err
	}
	if err := uow.Commit(ctx); err != nil {
		return kernel.UUID{}, err
	}
	return vehicle.ID(), nil
}
