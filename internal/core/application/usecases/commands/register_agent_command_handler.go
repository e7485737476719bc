package commands

import (
	"context"
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/network"
	"logistics/internal/pkg/errs"
)

// RegisterAgentCommandHandler persists a new delivery agent. The hub must
// exist; registering against an unknown hub is an error.
type RegisterAgentCommandHandler struct {
	uowFactory NetworkUoWFactory
	now        func() time.Time
}

// NewRegisterAgentCommandHandler creates the handler.
func NewRegisterAgentCommandHandler(uowFactory NetworkUoWFactory) (*RegisterAgentCommandHandler, error) {
	if uowFactory == nil {
		return nil, errs.NewValueIsRequiredError("uowFactory")
	}
	return &RegisterAgentCommandHandler{uowFactory: uowFactory, now: time.Now}, nil
}

// Handle creates the agent and returns its identifier.
func (h *RegisterAgentCommandHandler) Handle(ctx context.Context, cmd RegisterAgentCommand) (kernel.UUID, error) {
	if err := cmd.Validate(); err != nil {
		return kernel.UUID{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return kernel.UUID{}, err
	}
	defer func() { _ = uow.Rollback(ctx) }()

	if _, err := uow.NetworkRepository().GetHub(ctx, cmd.HubID()); err != nil {
		return kernel.UUID{}, err
	}

	agent, err := network.NewAgent(
		kernel.NewUUID(),
		cmd.Code(),
		cmd.Name(),
		cmd.Phone(),
		cmd.HubID(),
		cmd.Area(),
		cmd.MaxOrders(),
		h.now(),
	)
	if err != nil {
		return kernel.UUID{}, err
	}

	if err := uow.NetworkRepository().AddAgent(ctx, agent); err != nil {
		return kernel.UUID{}, err
	}
	if err := uow.Commit(ctx); err != nil {
		return kernel.UUID{}, err
	}
	return agent.ID(), nil
}
