package commands

import (
	"errors"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/network"
	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"
)

// ErrRegisterAgentCommandIsNotConstructed is returned when a
// RegisterAgentCommand bypassed its constructor.
var ErrRegisterAgentCommandIsNotConstructed = errors.New(
	"RegisterAgentCommand must be created via NewRegisterAgentCommand constructor",
)

// RegisterAgentCommand creates a delivery agent attached to a hub.
// MaxOrders defaults to network.DefaultAgentMaxOrders when zero.
type RegisterAgentCommand struct { //nolint:recvcheck //using for validation
	code      string
	name      string
	phone     string
	hubID     kernel.UUID
	area      network.Area
	maxOrders int

	guard guard.ConstructorGuard
}

// NewRegisterAgentCommand builds and validates the command.
func NewRegisterAgentCommand(
	code, name, phone string,
	hubID kernel.UUID,
	area network.Area,
	maxOrders int,
) (RegisterAgentCommand, error) {
	if code == "" {
		return RegisterAgentCommand{}, errs.NewValueIsRequiredError("code")
	}
	if name == "" {
		return RegisterAgentCommand{}, errs.NewValueIsRequiredError("name")
	}
	if phone == "" {
		return RegisterAgentCommand{}, errs.NewValueIsRequiredError("phone")
	}
	if err := hubID.Validate(); err != nil {
		return RegisterAgentCommand{}, errs.NewValueIsRequiredErrorWithCause("hubId", err)
	}
	if err := area.Validate(); err != nil {
		return RegisterAgentCommand{}, err
	}
	if maxOrders == 0 {
		maxOrders = network.DefaultAgentMaxOrders
	}

	return RegisterAgentCommand{
		code:      code,
		name:      name,
		phone:     phone,
		hubID:     hubID,
		area:      area,
		maxOrders: maxOrders,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c RegisterAgentCommand) Validate() error {
	return c.guard.Validate(ErrRegisterAgentCommandIsNotConstructed)
}

func (c RegisterAgentCommand) Code() string        { return c.code }
func (c RegisterAgentCommand) Name() string        { return c.name }
func (c RegisterAgentCommand) Phone() string       { return c.phone }
func (c RegisterAgentCommand) HubID() kernel.UUID  { return c.hubID }
func (c RegisterAgentCommand) Area() network.Area  { return c.area }
func (c RegisterAgentCommand) MaxOrders() int      { return c.maxOrders }
