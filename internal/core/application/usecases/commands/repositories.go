// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS
// architecture. All commands follow a consistent pattern: validation,
// transaction management, and persistence.
package commands

import (
	"context"

	"logistics/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command
// handlers. Each handler depends on the narrowest interface that covers
// the aggregates it touches.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides the order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// NetworkRepoFactory provides the network repository within a transaction.
	NetworkRepoFactory interface {
		NetworkRepository() ports.NetworkRepository
	}

	// CustomerRepoFactory provides the customer repository within a transaction.
	CustomerRepoFactory interface {
		CustomerRepository() ports.CustomerRepository
	}

	// OrderUoW manages transactions for order-only operations.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// NetworkUoW manages transactions for network-only operations.
	NetworkUoW interface {
		TxManager
		NetworkRepoFactory
	}

	// NetworkUoWFactory creates new network unit of work instances.
	NetworkUoWFactory interface {
		Create() NetworkUoW
	}

	// CustomerUoW manages transactions for customer-only operations.
	CustomerUoW interface {
		TxManager
		CustomerRepoFactory
	}

	// CustomerUoWFactory creates new customer unit of work instances.
	CustomerUoWFactory interface {
		Create() CustomerUoW
	}

	// OrderNetworkUoW manages transactions touching orders and the network.
	OrderNetworkUoW interface {
		TxManager
		OrderRepoFactory
		NetworkRepoFactory
	}

	// OrderNetworkUoWFactory creates order+network unit of work instances.
	OrderNetworkUoWFactory interface {
		Create() OrderNetworkUoW
	}

	// UoW manages transactions across all aggregates.
	UoW interface {
		TxManager
		OrderRepoFactory
		NetworkRepoFactory
		CustomerRepoFactory
	}

	// UoWFactory creates new unit of work instances for cross-aggregate
	// operations.
	UoWFactory interface {
		Create() UoW
	}
)
