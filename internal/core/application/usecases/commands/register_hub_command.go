package commands

import (
	"errors"

	"logistics/internal/core/domain/model/network"
	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"
)

// ErrRegisterHubCommandIsNotConstructed is returned when a
// RegisterHubCommand bypassed its constructor.
var ErrRegisterHubCommandIsNotConstructed = errors.New(
	"RegisterHubCommand must be created via NewRegisterHubCommand constructor",
)

// RegisterHubCommand creates a hub in the delivery network. MaxOrders
// defaults to network.DefaultHubMaxOrders when zero.
type RegisterHubCommand struct { //nolint:recvcheck //using for validation
	code         string
	state        string
	city         string
	area         network.Area
	maxOrders    int
	serviceAreas []string

	guard guard.ConstructorGuard
}

// NewRegisterHubCommand builds and validates the command.
func NewRegisterHubCommand(
	code, state, city string,
	area network.Area,
	maxOrders int,
	serviceAreas []string,
) (RegisterHubCommand, error) {
	if code == "" {
		return RegisterHubCommand{}, errs.NewValueIsRequiredError("code")
	}
	if state == "" {
		return RegisterHubCommand{}, errs.NewValueIsRequiredError("state")
	}
	if city == "" {
		return RegisterHubCommand{}, errs.NewValueIsRequiredError("city")
	}
	if err := area.Validate(); err != nil {
		return RegisterHubCommand{}, err
	}
	if maxOrders == 0 {
		maxOrders = network.DefaultHubMaxOrders
	}

	areas := make([]string, len(serviceAreas))
	copy(areas, serviceAreas)
	return RegisterHubCommand{
		code:         code,
		state:        state,
		city:         city,
		area:         area,
		maxOrders:    maxOrders,
		serviceAreas: areas,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c RegisterHubCommand) Validate() error {
	return c.guard.Validate(ErrRegisterHubCommandIsNotConstructed)
}

func (c RegisterHubCommand) Code() string       { return c.code }
func (c RegisterHubCommand) State() string      { return c.state }
func (c RegisterHubCommand) City() string       { return c.city }
func (c RegisterHubCommand) Area() network.Area { return c.area }
func (c RegisterHubCommand) MaxOrders() int     { return c.maxOrders }

// ServiceAreas returns a copy of the covered pincodes.
func (c RegisterHubCommand) ServiceAreas() []string {
	areas := make([]string, len(c.serviceAreas))
	copy(areas, c.serviceAreas)
	return areas
}
