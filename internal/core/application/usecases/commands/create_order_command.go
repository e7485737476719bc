package commands

import (
	"errors"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/order"
	"logistics/internal/pkg/guard"
)

// ErrCreateOrderCommandIsNotConstructed is returned when a
// CreateOrderCommand bypassed its constructor.
var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderCommand represents a request to register a new shipment.
// Blank order attributes receive defaults: NORMAL type, MEDIUM priority,
// STANDARD delivery, PREPAID payment. A blank seller order reference is
// generated at handling time.
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	customerID    kernel.UUID
	sellerOrderID string
	pickup        kernel.Address
	drop          kernel.Address
	items         []order.Item
	orderType     order.OrderType
	priority      order.Priority
	deliveryType  order.DeliveryType
	paymentMode   order.PaymentMode

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand builds and validates the command. The item list
// must be present; individual item fields may be blank.
func NewCreateOrderCommand(
	customerID kernel.UUID,
	sellerOrderID string,
	pickup kernel.Address,
	drop kernel.Address,
	items []order.Item,
	orderType order.OrderType,
	priority order.Priority,
	deliveryType order.DeliveryType,
	paymentMode order.PaymentMode,
) (CreateOrderCommand, error) {
	if orderType == "" {
		orderType = order.TypeNormal
	}
	if priority == "" {
		priority = order.PriorityMedium
	}
	if deliveryType == "" {
		deliveryType = order.DeliveryStandard
	}
	if paymentMode == "" {
		paymentMode = order.PaymentPrepaid
	}

	cmd := CreateOrderCommand{
		sellerOrderID: sellerOrderID,
		guard:         guard.NewConstructorGuard(),
	}

	normalized, err := order.NormalizeItems(items)
	if err != nil {
		return CreateOrderCommand{}, err
	}
	cmd.items = normalized

	if err := errors.Join(
		cmd.setCustomerID(customerID),
		cmd.setAddresses(pickup, drop),
		cmd.setAttributes(orderType, priority, deliveryType, paymentMode),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) CustomerID() kernel.UUID          { return c.customerID }
func (c CreateOrderCommand) SellerOrderID() string            { return c.sellerOrderID }
func (c CreateOrderCommand) Pickup() kernel.Address           { return c.pickup }
func (c CreateOrderCommand) Drop() kernel.Address             { return c.drop }
func (c CreateOrderCommand) Items() []order.Item              { return c.items }
func (c CreateOrderCommand) OrderType() order.OrderType       { return c.orderType }
func (c CreateOrderCommand) Priority() order.Priority         { return c.priority }
func (c CreateOrderCommand) DeliveryType() order.DeliveryType { return c.deliveryType }
func (c CreateOrderCommand) PaymentMode() order.PaymentMode   { return c.paymentMode }

func (c *CreateOrderCommand) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}
	c.customerID = customerID
	return nil
}

func (c *CreateOrderCommand) setAddresses(pickup, drop kernel.Address) error {
	if err := errors.Join(pickup.IsValid(), drop.IsValid()); err != nil {
		return err
	}
	c.pickup = pickup
	c.drop = drop
	return nil
}

func (c *CreateOrderCommand) setAttributes(t order.OrderType, p order.Priority, d order.DeliveryType, m order.PaymentMode) error {
	if err := errors.Join(t.Validate(), p.Validate(), d.Validate(), m.Validate()); err != nil {
		return err
	}
	c.orderType = t
	c.priority = p
	c.deliveryType = d
	c.paymentMode = m
	return nil
}
