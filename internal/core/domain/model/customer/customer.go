package customer

import (
	"errors"
	"slices"
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"
)

// ErrCustomerIsNotConstructed is returned when a Customer was not created
// through NewCustomer or RestoreCustomer.
var ErrCustomerIsNotConstructed = errors.New("Customer must be created via NewCustomer or RestoreCustomer")

// Customer is a registered seller or consignee. The order history is an
// append-only list of order identifiers in creation sequence.
type Customer struct {
	id           kernel.UUID
	name         string
	email        string
	phone        string
	orderHistory []kernel.UUID
	createdAt    time.Time

	isConstructed bool
}

// NewCustomer creates a Customer with an empty order history.
func NewCustomer(id kernel.UUID, name, email, phone string, createdAt time.Time) (*Customer, error) {
	c := &Customer{
		createdAt:     createdAt,
		isConstructed: true,
	}

	if err := errors.Join(
		c.setID(id),
		c.setIdentity(name, email, phone),
	); err != nil {
		return nil, err
	}

	return c, nil
}

// RestoreCustomer reconstructs a Customer from persistent storage.
func RestoreCustomer(id kernel.UUID, name, email, phone string, orderHistory []kernel.UUID, createdAt time.Time) (*Customer, error) {
	c, err := NewCustomer(id, name, email, phone, createdAt)
	if err != nil {
		return nil, err
	}
	c.orderHistory = slices.Clone(orderHistory)
	return c, nil
}

// Validate ensures the Customer was properly constructed.
func (c *Customer) Validate() error {
	if c == nil || !c.isConstructed {
		return ErrCustomerIsNotConstructed
	}
	return nil
}

func (c *Customer) ID() kernel.UUID      { return c.id }
func (c *Customer) Name() string         { return c.name }
func (c *Customer) Email() string        { return c.email }
func (c *Customer) Phone() string        { return c.phone }
func (c *Customer) CreatedAt() time.Time { return c.createdAt }

// OrderHistory returns a copy of the customer's order identifiers.
func (c *Customer) OrderHistory() []kernel.UUID {
	return slices.Clone(c.orderHistory)
}

// RecordOrder appends an order to the customer's history. Appending the
// same order twice is a no-op.
func (c *Customer) RecordOrder(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	for _, existing := range c.orderHistory {
		if existing.IsEqual(orderID) {
			return nil
		}
	}
	c.orderHistory = append(c.orderHistory, orderID)
	return nil
}

func (c *Customer) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.id = id
	return nil
}

func (c *Customer) setIdentity(name, email, phone string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	if email == "" {
		return errs.NewValueIsRequiredError("email")
	}
	if phone == "" {
		return errs.NewValueIsRequiredError("phone")
	}
	c.name = name
	c.email = email
	c.phone = phone
	return nil
}
