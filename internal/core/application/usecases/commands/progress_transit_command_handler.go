package commands

import (
	"context"
	"log/slog"
	"time"

	"logistics/internal/core/domain/model/order"
	"logistics/internal/pkg/errs"
)

// ProgressTransitCommandHandler moves dispatched orders into transit.
// Each order is written with the status guard, so a concurrent transition
// on the same order just skips it here.
type ProgressTransitCommandHandler struct {
	uowFactory OrderUoWFactory
	logger     *slog.Logger
	now        func() time.Time
}

// NewProgressTransitCommandHandler creates the handler.
func NewProgressTransitCommandHandler(uowFactory OrderUoWFactory, logger *slog.Logger) (*ProgressTransitCommandHandler, error) {
	if uowFactory == nil {
		return nil, errs.NewValueIsRequiredError("uowFactory")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ProgressTransitCommandHandler{
		uowFactory: uowFactory,
		logger:     logger.With("handler", "progress-transit"),
		now:        time.Now,
	}, nil
}

// Handle advances the dispatched backlog and returns how many orders moved.
func (h *ProgressTransitCommandHandler) Handle(ctx context.Context, cmd ProgressTransitCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}
	defer func() { _ = uow.Rollback(ctx) }()

	orders, err := uow.OrderRepository().GetAllInStatus(ctx, order.DispatchedFromOrigin)
	if err != nil {
		return 0, err
	}

	now := h.now()
	moved := 0
	for _, agg := range orders {
		if err := agg.AdvanceStatus(order.InTransit, now, "", "system", "Line-haul departure"); err != nil {
			h.logger.Warn("transit progression skipped",
				"orderId", agg.ID().String(), "error", err)
			continue
		}
		if err := uow.OrderRepository().UpdateWithStatusGuard(ctx, agg, order.DispatchedFromOrigin); err != nil {
			h.logger.Warn("transit progression write skipped",
				"orderId", agg.ID().String(), "error", err)
			continue
		}
		moved++
	}

	if err := uow.Commit(ctx); err != nil {
		return 0, err
	}

	if moved > 0 {
		h.logger.Info("transit progression finished", "moved", moved)
	}
	return moved, nil
}
