package commands

import (
	"errors"

	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"
)

// ErrRegisterCustomerCommandIsNotConstructed is returned when a
// RegisterCustomerCommand bypassed its constructor.
var ErrRegisterCustomerCommandIsNotConstructed = errors.New(
	"RegisterCustomerCommand must be created via NewRegisterCustomerCommand constructor",
)

// RegisterCustomerCommand creates a customer account.
type RegisterCustomerCommand struct { //nolint:recvcheck //using for validation
	name  string
	email string
	phone string

	guard guard.ConstructorGuard
}

// NewRegisterCustomerCommand builds and validates the command.
func NewRegisterCustomerCommand(name, email, phone string) (RegisterCustomerCommand, error) {
	if name == "" {
		return RegisterCustomerCommand{}, errs.NewValueIsRequiredError("name")
	}
	if email == "" {
		return RegisterCustomerCommand{}, errs.NewValueIsRequiredError("email")
	}
	if phone == "" {
		return RegisterCustomerCommand{}, errs.NewValueIsRequiredError("phone")
	}
	return RegisterCustomerCommand{
		name:  name,
		email: email,
		phone: phone,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c RegisterCustomerCommand) Validate() error {
	return c.guard.Validate(ErrRegisterCustomerCommandIsNotConstructed)
}

func (c RegisterCustomerCommand) Name() string  { return c.name }
func (c RegisterCustomerCommand) Email() string { return c.email }
func (c RegisterCustomerCommand) Phone() string { return c.phone }
