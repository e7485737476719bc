package commands_test

import (
	"testing"

	"logistics/internal/core/application/usecases/commands"
	"logistics/internal/core/domain/model/order"
	"logistics/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestProgressTransitCommandHandler_Handle_MovesDispatchedOrders(t *testing.T) {
	// Given two orders dispatched from their origin hubs
	ctx := t.Context()
	f := newFixtures()
	aggA := orderInStatus(t, f, order.DispatchedFromOrigin)
	aggB := orderInStatus(t, f, order.DispatchedFromOrigin)

	orderRepo := new(MockOrderRepository)
	orderRepo.On("GetAllInStatus", mock.Anything, order.DispatchedFromOrigin).
		Return([]*order.Order{aggA, aggB}, nil).Once()
	orderRepo.On("UpdateWithStatusGuard", mock.Anything, aggA, order.DispatchedFromOrigin).Return(nil).Once()
	orderRepo.On("UpdateWithStatusGuard", mock.Anything, aggB, order.DispatchedFromOrigin).Return(nil).Once()

	uow := new(MockOrderUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo)
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h, err := commands.NewProgressTransitCommandHandler(factory, nil)
	require.NoError(t, err)

	// When the progression runs
	moved, err := h.Handle(ctx, commands.NewProgressTransitCommand())

	// Then both orders are in transit
	require.NoError(t, err)
	assert.Equal(t, 2, moved)
	assert.Equal(t, order.InTransit, aggA.Status())
	assert.Equal(t, order.InTransit, aggB.Status())
	orderRepo.AssertExpectations(t)
}

func TestProgressTransitCommandHandler_Handle_SkipsConflictingWrites(t *testing.T) {
	// Given a concurrent transition stealing one of the orders
	ctx := t.Context()
	f := newFixtures()
	agg := orderInStatus(t, f, order.DispatchedFromOrigin)

	orderRepo := new(MockOrderRepository)
	orderRepo.On("GetAllInStatus", mock.Anything, order.DispatchedFromOrigin).
		Return([]*order.Order{agg}, nil).Once()
	orderRepo.On("UpdateWithStatusGuard", mock.Anything, agg, order.DispatchedFromOrigin).
		Return(errs.NewVersionIsInvalidError("order status")).Once()

	uow := new(MockOrderUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo)
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h, err := commands.NewProgressTransitCommandHandler(factory, nil)
	require.NoError(t, err)

	moved, err := h.Handle(ctx, commands.NewProgressTransitCommand())

	require.NoError(t, err)
	assert.Zero(t, moved)
}

func TestProgressTransitCommandHandler_Handle_EmptyBacklog(t *testing.T) {
	ctx := t.Context()

	orderRepo := new(MockOrderRepository)
	orderRepo.On("GetAllInStatus", mock.Anything, order.DispatchedFromOrigin).
		Return([]*order.Order{}, nil).Once()

	uow := new(MockOrderUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo)
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h, err := commands.NewProgressTransitCommandHandler(factory, nil)
	require.NoError(t, err)

	moved, err := h.Handle(ctx, commands.NewProgressTransitCommand())
	require.NoError(t, err)
	assert.Zero(t, moved)
}
