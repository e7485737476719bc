package commands

import (
	"errors"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"
)

// ErrAssignOrdersToAgentCommandIsNotConstructed is returned when an
// AssignOrdersToAgentCommand bypassed its constructor.
var ErrAssignOrdersToAgentCommandIsNotConstructed = errors.New(
	"AssignOrdersToAgentCommand must be created via NewAssignOrdersToAgentCommand constructor",
)

// AssignOrdersToAgentCommand hands a batch of orders at the destination
// hub to a delivery agent for the last mile. The batch is all or nothing:
// if the agent lacks capacity for the whole batch, no order moves.
type AssignOrdersToAgentCommand struct { //nolint:recvcheck //using for validation
	agentID  kernel.UUID
	orderIDs []kernel.UUID

	guard guard.ConstructorGuard
}

// NewAssignOrdersToAgentCommand builds and validates the command.
func NewAssignOrdersToAgentCommand(agentID kernel.UUID, orderIDs []kernel.UUID) (AssignOrdersToAgentCommand, error) {
	if err := agentID.Validate(); err != nil {
		return AssignOrdersToAgentCommand{}, errs.NewValueIsRequiredErrorWithCause("agentId", err)
	}
	if len(orderIDs) == 0 {
		return AssignOrdersToAgentCommand{}, errs.NewValueIsRequiredError("orderIds")
	}
	for _, id := range orderIDs {
		if err := id.Validate(); err != nil {
			return AssignOrdersToAgentCommand{}, errs.NewValueIsInvalidErrorWithCause("orderIds", err)
		}
	}

	ids := make([]kernel.UUID, len(orderIDs))
	copy(ids, orderIDs)
	return AssignOrdersToAgentCommand{
		agentID:  agentID,
		orderIDs: ids,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c AssignOrdersToAgentCommand) Validate() error {
	return c.guard.Validate(ErrAssignOrdersToAgentCommandIsNotConstructed)
}

func (c AssignOrdersToAgentCommand) AgentID() kernel.UUID { return c.agentID }

// OrderIDs returns a copy of the batch.
func (c AssignOrdersToAgentCommand) OrderIDs() []kernel.UUID {
	ids := make([]kernel.UUID, len(c.orderIDs))
	copy(ids, c.orderIDs)
	return ids
}
