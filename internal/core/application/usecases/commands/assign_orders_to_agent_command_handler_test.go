package commands_test

import (
	"testing"

	"logistics/internal/core/application/usecases/commands"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/network"
	"logistics/internal/core/domain/model/order"
	"logistics/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newAgentDispatchHandler(t *testing.T, factory commands.OrderNetworkUoWFactory) *commands.AssignOrdersToAgentCommandHandler {
	t.Helper()
	h, err := commands.NewAssignOrdersToAgentCommandHandler(factory, nil)
	require.NoError(t, err)
	return h
}

func TestAssignOrdersToAgentCommandHandler_Handle_Success(t *testing.T) {
	// Given two orders at the destination hub and an available agent
	ctx := t.Context()
	f := newFixtures()
	aggA := orderInStatus(t, f, order.AtDestinationHub)
	aggB := orderInStatus(t, f, order.AtDestinationHub)
	agent := availableAgent(t, kernel.NewUUID())
	cmd, err := commands.NewAssignOrdersToAgentCommand(
		agent.ID(), []kernel.UUID{aggA.ID(), aggB.ID()})
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	orderRepo.On("Get", mock.Anything, aggA.ID()).Return(aggA, nil).Once()
	orderRepo.On("Get", mock.Anything, aggB.ID()).Return(aggB, nil).Once()
	orderRepo.On("UpdateWithStatusGuard", mock.Anything, aggA, order.AtDestinationHub).Return(nil).Once()
	orderRepo.On("UpdateWithStatusGuard", mock.Anything, aggB, order.AtDestinationHub).Return(nil).Once()

	networkRepo := new(MockNetworkRepository)
	networkRepo.On("GetAgent", mock.Anything, agent.ID()).Return(agent, nil).Once()
	networkRepo.On("AdjustAgentLoad", mock.Anything, agent.ID(), 2).Return(nil).Once()

	uow := new(MockOrderNetworkUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo)
	uow.On("NetworkRepository").Return(networkRepo)
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockOrderNetworkUoWFactory)
	factory.On("Create").Return(uow).Once()

	// When the batch is dispatched
	h := newAgentDispatchHandler(t, factory)
	err = h.Handle(ctx, cmd)

	// Then both orders go out for delivery bound to the agent
	require.NoError(t, err)
	assert.Equal(t, order.OutForDelivery, aggA.Status())
	assert.Equal(t, order.OutForDelivery, aggB.Status())
	require.NotNil(t, aggA.DeliveryAgent())
	assert.True(t, aggA.DeliveryAgent().IsEqual(agent.ID()))
	orderRepo.AssertExpectations(t)
	networkRepo.AssertExpectations(t)
}

func TestAssignOrdersToAgentCommandHandler_Handle_CapacityExceededFailsWholeBatch(t *testing.T) {
	// Given an agent without headroom for the batch
	ctx := t.Context()
	f := newFixtures()
	agg := orderInStatus(t, f, order.AtDestinationHub)
	agent := availableAgent(t, kernel.NewUUID())
	cmd, err := commands.NewAssignOrdersToAgentCommand(agent.ID(), []kernel.UUID{agg.ID()})
	require.NoError(t, err)

	networkRepo := new(MockNetworkRepository)
	networkRepo.On("GetAgent", mock.Anything, agent.ID()).Return(agent, nil).Once()
	networkRepo.On("AdjustAgentLoad", mock.Anything, agent.ID(), 1).
		Return(network.ErrCapacityExceeded).Once()

	uow := new(MockOrderNetworkUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("NetworkRepository").Return(networkRepo)
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockOrderNetworkUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := newAgentDispatchHandler(t, factory)
	err = h.Handle(ctx, cmd)

	require.ErrorIs(t, err, network.ErrCapacityExceeded)
	assert.Equal(t, order.AtDestinationHub, agg.Status())
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestAssignOrdersToAgentCommandHandler_Handle_InvalidOrderStatusFailsWholeBatch(t *testing.T) {
	// Given a batch containing an order still in transit
	ctx := t.Context()
	f := newFixtures()
	good := orderInStatus(t, f, order.AtDestinationHub)
	early := orderInStatus(t, f, order.InTransit)
	agent := availableAgent(t, kernel.NewUUID())
	cmd, err := commands.NewAssignOrdersToAgentCommand(
		agent.ID(), []kernel.UUID{good.ID(), early.ID()})
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	orderRepo.On("Get", mock.Anything, good.ID()).Return(good, nil).Once()
	orderRepo.On("Get", mock.Anything, early.ID()).Return(early, nil).Once()
	orderRepo.On("UpdateWithStatusGuard", mock.Anything, good, order.AtDestinationHub).Return(nil).Once()

	networkRepo := new(MockNetworkRepository)
	networkRepo.On("GetAgent", mock.Anything, agent.ID()).Return(agent, nil).Once()
	networkRepo.On("AdjustAgentLoad", mock.Anything, agent.ID(), 2).Return(nil).Once()

	uow := new(MockOrderNetworkUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo)
	uow.On("NetworkRepository").Return(networkRepo)
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockOrderNetworkUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := newAgentDispatchHandler(t, factory)
	err = h.Handle(ctx, cmd)

	require.ErrorIs(t, err, order.ErrInvalidTransition)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestAssignOrdersToAgentCommandHandler_Handle_UnavailableAgentRejected(t *testing.T) {
	ctx := t.Context()
	f := newFixtures()
	agg := orderInStatus(t, f, order.AtDestinationHub)
	agent := availableAgent(t, kernel.NewUUID())
	require.NoError(t, agent.SetStatus(network.AgentOffDuty))
	cmd, err := commands.NewAssignOrdersToAgentCommand(agent.ID(), []kernel.UUID{agg.ID()})
	require.NoError(t, err)

	networkRepo := new(MockNetworkRepository)
	networkRepo.On("GetAgent", mock.Anything, agent.ID()).Return(agent, nil).Once()

	uow := new(MockOrderNetworkUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("NetworkRepository").Return(networkRepo)
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockOrderNetworkUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := newAgentDispatchHandler(t, factory)
	err = h.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	networkRepo.AssertNotCalled(t, "AdjustAgentLoad", mock.Anything, mock.Anything, mock.Anything)
}
