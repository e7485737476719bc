package commands

import (
	"context"
	"log/slog"
	"time"

	"logistics/internal/core/domain/model/order"
	"logistics/internal/core/domain/services"
	"logistics/internal/core/ports"
	"logistics/internal/pkg/errs"
)

// AdvanceOrderStatusResult reports the order state after the transition.
// Changed is false when the target equalled the current status and the
// submission was treated as an idempotent no-op.
type AdvanceOrderStatusResult struct {
	Status   order.Status
	Progress int
	Changed  bool
}

// AdvanceOrderStatusCommandHandler drives the workflow state machine.
// The write is guarded on the status read at the start of the transaction
// so concurrent transitions on the same order cannot both land.
//
// Agent bookkeeping rides along with specific transitions:
//   - PICKED_UP releases the pickup agent's slot
//   - AT_DESTINATION_HUB binds a delivery agent and takes a slot,
//     unless one is already bound
//   - DELIVERED releases the delivery agent's slot
//
// Bookkeeping failures are logged and never block the transition.
type AdvanceOrderStatusCommandHandler struct {
	uowFactory OrderNetworkUoWFactory
	resolver   services.AssignmentResolver
	notifier   ports.Notifier
	logger     *slog.Logger
	now        func() time.Time
}

// NewAdvanceOrderStatusCommandHandler creates the handler with its
// dependencies.
func NewAdvanceOrderStatusCommandHandler(
	uowFactory OrderNetworkUoWFactory,
	resolver services.AssignmentResolver,
	notifier ports.Notifier,
	logger *slog.Logger,
) (*AdvanceOrderStatusCommandHandler, error) {
	if uowFactory == nil {
		return nil, errs.NewValueIsRequiredError("uowFactory")
	}
	if notifier == nil {
		return nil, errs.NewValueIsRequiredError("notifier")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &AdvanceOrderStatusCommandHandler{
		uowFactory: uowFactory,
		resolver:   resolver,
		notifier:   notifier,
		logger:     logger.With("handler", "advance-order-status"),
		now:        time.Now,
	}, nil
}

// Handle executes the status transition use case.
func (h *AdvanceOrderStatusCommandHandler) Handle(ctx context.Context, cmd AdvanceOrderStatusCommand) (AdvanceOrderStatusResult, error) {
	if err := cmd.Validate(); err != nil {
		return AdvanceOrderStatusResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return AdvanceOrderStatusResult{}, err
	}
	defer func() { _ = uow.Rollback(ctx) }()

	agg, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return AdvanceOrderStatusResult{}, err
	}

	prior := agg.Status()
	if cmd.Target() == prior {
		return AdvanceOrderStatusResult{Status: prior, Progress: prior.Progress()}, nil
	}

	if err := agg.AdvanceStatus(cmd.Target(), h.now(), cmd.Location(), cmd.HandledBy(), cmd.Remarks()); err != nil {
		return AdvanceOrderStatusResult{}, err
	}

	h.applyAgentBookkeeping(ctx, uow, agg, cmd.Target())

	if err := uow.OrderRepository().UpdateWithStatusGuard(ctx, agg, prior); err != nil {
		return AdvanceOrderStatusResult{}, err
	}
	if err := uow.Commit(ctx); err != nil {
		return AdvanceOrderStatusResult{}, err
	}

	h.notifier.Notify(ctx, agg.CustomerID().String(), statusEvent(cmd.Target()), map[string]any{
		"orderId": agg.ID().String(),
		"awb":     agg.AWB(),
		"status":  cmd.Target().String(),
	})

	return AdvanceOrderStatusResult{
		Status:   agg.Status(),
		Progress: agg.Progress(),
		Changed:  true,
	}, nil
}

func (h *AdvanceOrderStatusCommandHandler) applyAgentBookkeeping(ctx context.Context, uow OrderNetworkUoW, agg *order.Order, target order.Status) {
	repo := uow.NetworkRepository()

	switch target {
	case order.PickedUp:
		if agentID := agg.PickupAgent(); agentID != nil {
			if err := repo.AdjustAgentLoad(ctx, *agentID, -1); err != nil {
				h.logger.Warn("pickup agent release failed",
					"orderId", agg.ID().String(), "agentId", agentID.String(), "error", err)
			}
		}

	case order.AtDestinationHub:
		if agg.DeliveryAgent() != nil {
			return
		}
		hubID := agg.DestinationHub()
		if hubID == nil {
			return
		}
		agents, err := repo.GetAvailableAgentsByHub(ctx, *hubID)
		if err != nil {
			h.logger.Warn("delivery agent lookup failed",
				"orderId", agg.ID().String(), "hubId", hubID.String(), "error", err)
			return
		}
		agent := h.resolver.SelectAgent(agents)
		if agent == nil {
			h.logger.Warn("no delivery agent available",
				"orderId", agg.ID().String(), "hubId", hubID.String())
			return
		}
		if err := repo.AdjustAgentLoad(ctx, agent.ID(), 1); err != nil {
			h.logger.Warn("delivery agent load adjustment failed",
				"orderId", agg.ID().String(), "agentId", agent.ID().String(), "error", err)
			return
		}
		if err := agg.BindDeliveryAgent(agent.ID()); err != nil {
			h.logger.Warn("delivery agent binding failed",
				"orderId", agg.ID().String(), "agentId", agent.ID().String(), "error", err)
		}

	case order.Delivered:
		if agentID := agg.DeliveryAgent(); agentID != nil {
			if err := repo.AdjustAgentLoad(ctx, *agentID, -1); err != nil {
				h.logger.Warn("delivery agent release failed",
					"orderId", agg.ID().String(), "agentId", agentID.String(), "error", err)
			}
		}

	default:
	}
}

func statusEvent(target order.Status) ports.NotificationEvent {
	switch target {
	case order.Delivered:
		return ports.EventOrderDelivered
	case order.Cancelled:
		return ports.EventOrderCancelled
	default:
		return ports.EventStatusChanged
	}
}
