package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"logistics/internal/core/domain/model/order"
	"logistics/internal/pkg/errs"
)

// AssignOrdersToAgentCommandHandler moves a batch of orders out for
// delivery on a single agent. Capacity is reserved for the whole batch up
// front; a failing order rolls back every sibling.
type AssignOrdersToAgentCommandHandler struct {
	uowFactory OrderNetworkUoWFactory
	logger     *slog.Logger
	now        func() time.Time
}

// NewAssignOrdersToAgentCommandHandler creates the handler with its
// dependencies.
func NewAssignOrdersToAgentCommandHandler(uowFactory OrderNetworkUoWFactory, logger *slog.Logger) (*AssignOrdersToAgentCommandHandler, error) {
	if uowFactory == nil {
		return nil, errs.NewValueIsRequiredError("uowFactory")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &AssignOrdersToAgentCommandHandler{
		uowFactory: uowFactory,
		logger:     logger.With("handler", "assign-orders-to-agent"),
		now:        time.Now,
	}, nil
}

// Handle executes the batch dispatch use case.
func (h *AssignOrdersToAgentCommandHandler) Handle(ctx context.Context, cmd AssignOrdersToAgentCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer func() { _ = uow.Rollback(ctx) }()

	agent, err := uow.NetworkRepository().GetAgent(ctx, cmd.AgentID())
	if err != nil {
		return err
	}
	if !agent.Available() {
		return errs.NewValueIsInvalidErrorWithCause(
			"agentId", fmt.Errorf("agent %s is not available", agent.Code()))
	}

	ids := cmd.OrderIDs()
	if err := uow.NetworkRepository().AdjustAgentLoad(ctx, agent.ID(), len(ids)); err != nil {
		return err
	}

	now := h.now()
	for _, id := range ids {
		agg, err := uow.OrderRepository().Get(ctx, id)
		if err != nil {
			return err
		}
		prior := agg.Status()
		if err := agg.AdvanceStatus(order.OutForDelivery, now, "", agent.Name(), ""); err != nil {
			return err
		}
		if err := agg.BindDeliveryAgent(agent.ID()); err != nil {
			return err
		}
		if err := uow.OrderRepository().UpdateWithStatusGuard(ctx, agg, prior); err != nil {
			return err
		}
	}

	if err := uow.Commit(ctx); err != nil {
		return err
	}

	h.logger.Info("orders dispatched to agent",
		"agentId", agent.ID().String(), "orders", len(ids))
	return nil
}
