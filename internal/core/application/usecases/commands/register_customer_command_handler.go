package commands

import (
	"context"
	"time"

	"logistics/internal/core/domain/model/customer"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"
)

// RegisterCustomerCommandHandler persists a new customer account.
type RegisterCustomerCommandHandler struct {
	uowFactory CustomerUoWFactory
	now        func() time.Time
}

// NewRegisterCustomerCommandHandler creates the handler.
func NewRegisterCustomerCommandHandler(uowFactory CustomerUoWFactory) (*RegisterCustomerCommandHandler, error) {
	if uowFactory == nil {
		return nil, errs.NewValueIsRequiredError("uowFactory")
	}
	return &RegisterCustomerCommandHandler{uowFactory: uowFactory, now: time.Now}, nil
}

// Handle creates the customer and returns their identifier.
func (h *RegisterCustomerCommandHandler) Handle(ctx context.Context, cmd RegisterCustomerCommand) (kernel.UUID, error) {
	if err := cmd.Validate(); err != nil {
		return kernel.UUID{}, err
	}

	cust, err := customer.NewCustomer(
		kernel.NewUUID(), cmd.Name(), cmd.Email(), cmd.Phone(), h.now())
	if err != nil {
		return kernel.UUID{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return kernel.UUID{}, err
	}
	defer func() { _ = uow.Rollback(ctx) }()

	if err := uow.CustomerRepository().Add(ctx, cust); err != nil {
		return kernel.UUID{}, err
	}
	if err := uow.Commit(ctx); err != nil {
		return kernel.UUID{}, err
	}
	return cust.ID(), nil
}
