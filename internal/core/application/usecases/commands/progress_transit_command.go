package commands

import (
	"errors"

	"logistics/internal/pkg/guard"
)

// ErrProgressTransitCommandIsNotConstructed is returned when a
// ProgressTransitCommand bypassed its constructor.
var ErrProgressTransitCommandIsNotConstructed = errors.New(
	"ProgressTransitCommand must be created via NewProgressTransitCommand constructor",
)

// ProgressTransitCommand advances every order dispatched from its origin
// hub into transit. The transit progression job runs it on a schedule.
type ProgressTransitCommand struct {
	guard guard.ConstructorGuard
}

// NewProgressTransitCommand builds the command.
func NewProgressTransitCommand() ProgressTransitCommand {
	return ProgressTransitCommand{guard: guard.NewConstructorGuard()}
}

// Validate ensures the command was created through the constructor.
func (c ProgressTransitCommand) Validate() error {
	return c.guard.Validate(ErrProgressTransitCommandIsNotConstructed)
}
