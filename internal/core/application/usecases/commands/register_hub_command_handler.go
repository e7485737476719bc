package commands

import (
	"context"
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/network"
	"logistics/internal/pkg/errs"
)

// RegisterHubCommandHandler persists a new hub.
type RegisterHubCommandHandler struct {
	uowFactory NetworkUoWFactory
	now        func() time.Time
}

// NewRegisterHubCommandHandler creates the handler.
func NewRegisterHubCommandHandler(uowFactory NetworkUoWFactory) (*RegisterHubCommandHandler, error) {
	if uowFactory == nil {
		return nil, errs.NewValueIsRequiredError("uowFactory")
	}
	return &RegisterHubCommandHandler{uowFactory: uowFactory, now: time.Now}, nil
}

// Handle creates the hub and returns its identifier.
func (h *RegisterHubCommandHandler) Handle(ctx context.Context, cmd RegisterHubCommand) (kernel.UUID, error) {
	if err := cmd.Validate(); err != nil {
		return kernel.UUID{}, err
	}

	hub, err := network.NewHub(
		kernel.NewUUID(),
		cmd.Code(),
		cmd.State(),
		cmd.City(),
		cmd.Area(),
		cmd.MaxOrders(),
		cmd.ServiceAreas(),
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

	if err := uow.NetworkRepository().AddHub(ctx, hub); err != nil {
		return kernel.UUID{}, err
	}
	if err := uow.Commit(ctx); err != nil {
		return kernel.UUID{}, err
	}
	return hub.ID(), nil
}
