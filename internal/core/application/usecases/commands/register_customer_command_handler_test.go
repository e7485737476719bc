package commands_test

import (
	"testing"

	"logistics/internal/core/application/usecases/commands"
	"logistics/internal/core/domain/model/customer"
	"logistics/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestRegisterCustomerCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewRegisterCustomerCommand(
		"Anita Buyer", "anita@example.com", "9123456780")
	require.NoError(t, err)

	customerRepo := new(MockCustomerRepository)
	customerRepo.On("Add", mock.Anything, mock.AnythingOfType("*customer.Customer")).
		Run(func(args mock.Arguments) {
			cust := args.Get(1).(*customer.Customer)
			assert.Equal(t, "anita@example.com", cust.Email())
			assert.Empty(t, cust.OrderHistory())
		}).
		Return(nil).Once()

	uow := new(MockCustomerUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("CustomerRepository").Return(customerRepo).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockCustomerUoWFactory)
	factory.On("Create").Return(uow).Once()

	h, err := commands.NewRegisterCustomerCommandHandler(factory)
	require.NoError(t, err)

	id, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	require.NoError(t, id.Validate())
	customerRepo.AssertExpectations(t)
}

func TestNewRegisterCustomerCommand_Validation(t *testing.T) {
	_, err := commands.NewRegisterCustomerCommand("", "anita@example.com", "9123456780")
	require.ErrorIs(t, err, errs.ErrValueIsRequired)

	_, err = commands.NewRegisterCustomerCommand("Anita Buyer", "", "9123456780")
	require.ErrorIs(t, err, errs.ErrValueIsRequired)

	_, err = commands.NewRegisterCustomerCommand("Anita Buyer", "anita@example.com", "")
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
}
