package commands

import (
	"context"
	"log/slog"
	"time"

	"logistics/internal/core/domain/services"
	"logistics/internal/pkg/errs"
)

// AssignNetworkResult reports how many unassigned orders were examined
// and how many ended up fully bound.
type AssignNetworkResult struct {
	Processed int
	Assigned  int
}

// AssignNetworkCommandHandler is the retry half of best-effort assignment:
// orders stored unassigned because no hub, vehicle or agent could be bound
// at creation time get another chance here. The assignment retry job runs
// it on a schedule.
type AssignNetworkCommandHandler struct {
	uowFactory OrderNetworkUoWFactory
	resolver   services.AssignmentResolver
	logger     *slog.Logger
	now        func() time.Time
}

// NewAssignNetworkCommandHandler creates the handler with its dependencies.
func NewAssignNetworkCommandHandler(
	uowFactory OrderNetworkUoWFactory,
	resolver services.AssignmentResolver,
	logger *slog.Logger,
) (*AssignNetworkCommandHandler, error) {
	if uowFactory == nil {
		return nil, errs.NewValueIsRequiredError("uowFactory")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &AssignNetworkCommandHandler{
		uowFactory: uowFactory,
		resolver:   resolver,
		logger:     logger.With("handler", "assign-network"),
		now:        time.Now,
	}, nil
}

// Handle rebinds every unassigned order it can. Orders that still cannot
// be bound stay flagged for the next run; they are never an error.
func (h *AssignNetworkCommandHandler) Handle(ctx context.Context, cmd AssignNetworkCommand) (AssignNetworkResult, error) {
	if err := cmd.Validate(); err != nil {
		return AssignNetworkResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return AssignNetworkResult{}, err
	}
	defer func() { _ = uow.Rollback(ctx) }()

	orders, err := uow.OrderRepository().GetAllUnassigned(ctx)
	if err != nil {
		return AssignNetworkResult{}, err
	}

	binder := networkBinder{resolver: h.resolver, logger: h.logger}
	now := h.now()

	result := AssignNetworkResult{Processed: len(orders)}
	for _, agg := range orders {
		binding := binder.resolve(ctx, uow.NetworkRepository(), agg.Pickup(), agg.Drop(), now)
		bound, err := binding.apply(agg)
		if err != nil {
			h.logger.Warn("binding failed", "orderId", agg.ID().String(), "error", err)
			continue
		}
		if !bound {
			continue
		}
		if err := uow.OrderRepository().Update(ctx, agg); err != nil {
			return AssignNetworkResult{}, err
		}
		result.Assigned++
	}

	if err := uow.Commit(ctx); err != nil {
		return AssignNetworkResult{}, err
	}

	if result.Processed > 0 {
		h.logger.Info("assignment retry finished",
			"processed", result.Processed, "assigned", result.Assigned)
	}
	return result, nil
}
