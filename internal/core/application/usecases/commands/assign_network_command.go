package commands

import (
	"errors"

	"logistics/internal/pkg/guard"
)

// ErrAssignNetworkCommandIsNotConstructed is returned when an
// AssignNetworkCommand bypassed its constructor.
var ErrAssignNetworkCommandIsNotConstructed = errors.New(
	"AssignNetworkCommand must be created via NewAssignNetworkCommand constructor",
)

// AssignNetworkCommand rebinds network resources to every order currently
// flagged unassigned. It carries no parameters; the batch is whatever the
// store reports at execution time.
type AssignNetworkCommand struct {
	guard guard.ConstructorGuard
}

// NewAssignNetworkCommand builds the command.
func NewAssignNetworkCommand() AssignNetworkCommand {
	return AssignNetworkCommand{guard: guard.NewConstructorGuard()}
}

// Validate ensures the command was created through the constructor.
func (c AssignNetworkCommand) Validate() error {
	return c.guard.Validate(ErrAssignNetworkCommandIsNotConstructed)
}
