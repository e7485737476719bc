package commands

import (
	"errors"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/order"
	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"
)

// ErrBulkAdvanceStatusCommandIsNotConstructed is returned when a
// BulkAdvanceStatusCommand bypassed its constructor.
var ErrBulkAdvanceStatusCommandIsNotConstructed = errors.New(
	"BulkAdvanceStatusCommand must be created via NewBulkAdvanceStatusCommand constructor",
)

// BulkAdvanceStatusCommand moves a batch of orders to the same target
// status. Each order is processed independently; one failure never stops
// the rest of the batch.
type BulkAdvanceStatusCommand struct { //nolint:recvcheck //using for validation
	orderIDs  []kernel.UUID
	target    order.Status
	location  string
	handledBy string
	remarks   string

	guard guard.ConstructorGuard
}

// NewBulkAdvanceStatusCommand builds and validates the command.
func NewBulkAdvanceStatusCommand(
	orderIDs []kernel.UUID,
	target order.Status,
	location, handledBy, remarks string,
) (BulkAdvanceStatusCommand, error) {
	if len(orderIDs) == 0 {
		return BulkAdvanceStatusCommand{}, errs.NewValueIsRequiredError("orderIds")
	}
	if err := target.Validate(); err != nil {
		return BulkAdvanceStatusCommand{}, err
	}
	for _, id := range orderIDs {
		if err := id.Validate(); err != nil {
			return BulkAdvanceStatusCommand{}, errs.NewValueIsInvalidErrorWithCause("orderIds", err)
		}
	}
	if handledBy == "" {
		handledBy = "system"
	}

	ids := make([]kernel.UUID, len(orderIDs))
	copy(ids, orderIDs)
	return BulkAdvanceStatusCommand{
		orderIDs:  ids,
		target:    target,
		location:  location,
		handledBy: handledBy,
		remarks:   remarks,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c BulkAdvanceStatusCommand) Validate() error {
	return c.guard.Validate(ErrBulkAdvanceStatusCommandIsNotConstructed)
}

// OrderIDs returns a copy of the batch.
func (c BulkAdvanceStatusCommand) OrderIDs() []kernel.UUID {
	ids := make([]kernel.UUID, len(c.orderIDs))
	copy(ids, c.orderIDs)
	return ids
}

func (c BulkAdvanceStatusCommand) Target() order.Status { return c.target }
func (c BulkAdvanceStatusCommand) Location() string     { return c.location }
func (c BulkAdvanceStatusCommand) HandledBy() string    { return c.handledBy }
func (c BulkAdvanceStatusCommand) Remarks() string      { return c.remarks }
