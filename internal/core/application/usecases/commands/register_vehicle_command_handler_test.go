package commands_test

import (
	"testing"

	"logistics/internal/core/application/usecases/commands"
	"logistics/internal/core/domain/model/network"
	"logistics/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestRegisterVehicleCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewRegisterVehicleCommand(
		"VEH-11", network.VehicleTempo, "KA05XY9876", 1200, 8, 0,
		[]string{"Karnataka"})
	require.NoError(t, err)

	networkRepo := new(MockNetworkRepository)
	networkRepo.On("AddVehicle", mock.Anything, mock.AnythingOfType("*network.Vehicle")).
		Run(func(args mock.Arguments) {
			vehicle := args.Get(1).(*network.Vehicle)
			assert.Equal(t, "VEH-11", vehicle.Code())
			assert.Equal(t, network.DefaultVehicleMaxOrders, vehicle.MaxOrders())
			assert.True(t, vehicle.Serves("Karnataka"))
		}).
		Return(nil).Once()

	uow := new(MockNetworkUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("NetworkRepository").Return(networkRepo).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockNetworkUoWFactory)
	factory.On("Create").Return(uow).Once()

	h, err := commands.NewRegisterVehicleCommandHandler(factory)
	require.NoError(t, err)

	id, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	require.NoError(t, id.Validate())
	networkRepo.AssertExpectations(t)
}

func TestNewRegisterVehicleCommand_Validation(t *testing.T) {
	t.Run("bad_type", func(t *testing.T) {
		_, err := commands.NewRegisterVehicleCommand(
			"VEH-11", network.VehicleType("BICYCLE"), "KA05XY9876", 100, 1, 0, nil)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("negative_capacity", func(t *testing.T) {
		_, err := commands.NewRegisterVehicleCommand(
			"VEH-11", network.VehicleTempo, "KA05XY9876", -1, 1, 0, nil)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}
