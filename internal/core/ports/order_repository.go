package ports

import (
	"context"
	"errors"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/order"
)

// ErrDuplicateSellerOrderID is returned by Add when the sellerOrderId
// collides with an existing order. Callers retry with a fresh reference.
var ErrDuplicateSellerOrderID = errors.New("seller order id already exists")

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	// Returns ErrDuplicateSellerOrderID when the sellerOrderId is taken.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate.
	Update(ctx context.Context, aggregate *order.Order) error

	// UpdateWithStatusGuard persists the order only when its stored status
	// still equals expectedStatus (compare-and-swap on the prior status).
	// A concurrent transition surfaces as errs.VersionIsInvalidError.
	UpdateWithStatusGuard(ctx context.Context, aggregate *order.Order, expectedStatus order.Status) error

	// Get retrieves an order aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetBySellerOrderID retrieves an order by its seller reference.
	GetBySellerOrderID(ctx context.Context, sellerOrderID string) (*order.Order, error)

	// GetAllUnassigned retrieves orders flagged for the assignment retry job.
	GetAllUnassigned(ctx context.Context) ([]*order.Order, error)

	// GetAllInStatus retrieves all orders currently in the given status.
	GetAllInStatus(ctx context.Context, status order.Status) ([]*order.Order, error)
}
