package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"logistics/internal/core/domain/model/order"
	"logistics/internal/pkg/errs"
)

// AssignOrdersToVehicleCommandHandler moves a batch of dispatched orders
// into transit on a single vehicle. Capacity is reserved for the whole
// batch up front; a failing order rolls back every sibling.
type AssignOrdersToVehicleCommandHandler struct {
	uowFactory OrderNetworkUoWFactory
	logger     *slog.Logger
	now        func() time.Time
}

// NewAssignOrdersToVehicleCommandHandler creates the handler with its
// dependencies.
func NewAssignOrdersToVehicleCommandHandler(uowFactory OrderNetworkUoWFactory, logger *slog.Logger) (*AssignOrdersToVehicleCommandHandler, error) {
	if uowFactory == nil {
		return nil, errs.NewValueIsRequiredError("uowFactory")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &AssignOrdersToVehicleCommandHandler{
		uowFactory: uowFactory,
		logger:     logger.With("handler", "assign-orders-to-vehicle"),
		now:        time.Now,
	}, nil
}

// Handle executes the batch loading use case.
func (h *AssignOrdersToVehicleCommandHandler) Handle(ctx context.Context, cmd AssignOrdersToVehicleCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer func() { _ = uow.Rollback(ctx) }()

	vehicle, err := uow.NetworkRepository().GetVehicle(ctx, cmd.VehicleID())
	if err != nil {
		return err
	}
	if !vehicle.Available() {
		return errs.NewValueIsInvalidErrorWithCause(
			"vehicleId", fmt.Errorf("vehicle %s is not available", vehicle.Code()))
	}

	ids := cmd.OrderIDs()
	if err := uow.NetworkRepository().AdjustVehicleLoad(ctx, vehicle.ID(), len(ids)); err != nil {
		return err
	}

	now := h.now()
	for _, id := range ids {
		agg, err := uow.OrderRepository().Get(ctx, id)
		if err != nil {
			return err
		}
		prior := agg.Status()
		if err := agg.AdvanceStatus(order.InTransit, now, "", vehicle.Code(), ""); err != nil {
			return err
		}
		if err := uow.OrderRepository().UpdateWithStatusGuard(ctx, agg, prior); err != nil {
			return err
		}
	}

	if err := uow.Commit(ctx); err != nil {
		return err
	}

	h.logger.Info("orders loaded onto vehicle",
		"vehicleId", vehicle.ID().String(), "orders", len(ids))
	return nil
}
