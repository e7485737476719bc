package commands

import (
	"errors"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/order"
	"logistics/internal/pkg/guard"
)

// ErrAdvanceOrderStatusCommandIsNotConstructed is returned when an
// AdvanceOrderStatusCommand bypassed its constructor.
var ErrAdvanceOrderStatusCommandIsNotConstructed = errors.New(
	"AdvanceOrderStatusCommand must be created via NewAdvanceOrderStatusCommand constructor",
)

// AdvanceOrderStatusCommand moves an order to a target workflow status.
// Location, handler and remarks are optional annotations for the audit
// trail; a blank handler is recorded as "system".
type AdvanceOrderStatusCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.UUID
	target    order.Status
	location  string
	handledBy string
	remarks   string

	guard guard.ConstructorGuard
}

// NewAdvanceOrderStatusCommand builds and validates the command.
func NewAdvanceOrderStatusCommand(
	orderID kernel.UUID,
	target order.Status,
	location, handledBy, remarks string,
) (AdvanceOrderStatusCommand, error) {
	if err := errors.Join(orderID.Validate(), target.Validate()); err != nil {
		return AdvanceOrderStatusCommand{}, err
	}
	if handledBy == "" {
		handledBy = "system"
	}
	return AdvanceOrderStatusCommand{
		orderID:   orderID,
		target:    target,
		location:  location,
		handledBy: handledBy,
		remarks:   remarks,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c AdvanceOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrAdvanceOrderStatusCommandIsNotConstructed)
}

func (c AdvanceOrderStatusCommand) OrderID() kernel.UUID { return c.orderID }
func (c AdvanceOrderStatusCommand) Target() order.Status { return c.target }
func (c AdvanceOrderStatusCommand) Location() string     { return c.location }
func (c AdvanceOrderStatusCommand) HandledBy() string    { return c.handledBy }
func (c AdvanceOrderStatusCommand) Remarks() string      { return c.remarks }
