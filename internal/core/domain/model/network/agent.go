package network

import (
	"errors"
	"fmt"
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"
)

// ErrAgentIsNotConstructed is returned when an Agent was not created through
// NewAgent or RestoreAgent.
var ErrAgentIsNotConstructed = errors.New("Agent must be created via NewAgent or RestoreAgent")

// DefaultAgentMaxOrders is the per-agent order limit when none is given.
const DefaultAgentMaxOrders = 20

// Agent is a last-mile delivery agent attached to a hub. Agents carry
// orders up to their capacity; batch admission is all or nothing.
type Agent struct {
	id            kernel.UUID
	code          string
	name          string
	phone         string
	hubID         kernel.UUID
	area          Area
	status        AgentStatus
	maxOrders     int
	currentOrders int
	active        bool
	createdAt     time.Time

	isConstructed bool
}

// NewAgent creates an active, available Agent with no orders assigned.
// A maxOrders of 0 falls back to DefaultAgentMaxOrders.
func NewAgent(id kernel.UUID, code, name, phone string, hubID kernel.UUID, area Area, maxOrders int, createdAt time.Time) (*Agent, error) {
	if maxOrders == 0 {
		maxOrders = DefaultAgentMaxOrders
	}

	a := &Agent{
		status:        AgentAvailable,
		active:        true,
		createdAt:     createdAt,
		isConstructed: true,
	}

	if err := errors.Join(
		a.setID(id),
		a.setIdentity(code, name, phone),
		a.setHub(hubID),
		a.setArea(area),
		a.setCapacity(maxOrders),
	); err != nil {
		return nil, err
	}

	return a, nil
}

// RestoreAgent reconstructs an Agent from persistent storage.
func RestoreAgent(id kernel.UUID, code, name, phone string, hubID kernel.UUID, area Area, status AgentStatus, maxOrders, currentOrders int, active bool, createdAt time.Time) (*Agent, error) {
	a, err := NewAgent(id, code, name, phone, hubID, area, maxOrders, createdAt)
	if err != nil {
		return nil, err
	}
	if err := status.Validate(); err != nil {
		return nil, err
	}
	if currentOrders < 0 || currentOrders > a.maxOrders {
		return nil, errs.NewValueIsOutOfRangeError("currentOrders", currentOrders, 0, a.maxOrders)
	}
	a.status = status
	a.currentOrders = currentOrders
	a.active = active
	return a, nil
}

// Validate ensures the Agent was properly constructed.
func (a *Agent) Validate() error {
	if a == nil || !a.isConstructed {
		return ErrAgentIsNotConstructed
	}
	return nil
}

func (a *Agent) ID() kernel.UUID       { return a.id }
func (a *Agent) Code() string          { return a.code }
func (a *Agent) Name() string          { return a.name }
func (a *Agent) Phone() string         { return a.phone }
func (a *Agent) Hub() kernel.UUID      { return a.hubID }
func (a *Agent) Area() Area            { return a.area }
func (a *Agent) Status() AgentStatus   { return a.status }
func (a *Agent) MaxOrders() int        { return a.maxOrders }
func (a *Agent) CurrentOrders() int    { return a.currentOrders }
func (a *Agent) Active() bool          { return a.active }
func (a *Agent) CreatedAt() time.Time  { return a.createdAt }

// Headroom returns how many more orders the agent can carry.
func (a *Agent) Headroom() int {
	return a.maxOrders - a.currentOrders
}

// Available reports whether the agent can be considered for assignment.
func (a *Agent) Available() bool {
	return a.active && a.status == AgentAvailable && a.Headroom() > 0
}

// AssignOrders takes n orders onto the agent, all or nothing. A successful
// assignment moves an available agent to ON_DELIVERY.
func (a *Agent) AssignOrders(n int) error {
	if n <= 0 {
		return errs.NewValueIsOutOfRangeError("count", n, 1, a.Headroom())
	}
	if !a.active || a.status == AgentOffDuty {
		return errs.NewValueIsInvalidErrorWithCause(
			"agentStatus", fmt.Errorf("agent %s is not on duty", a.code))
	}
	if n > a.Headroom() {
		return capacityExceeded(fmt.Sprintf("agent %s", a.code), a.Headroom(), n)
	}
	a.currentOrders += n
	a.status = AgentOnDelivery
	return nil
}

// ReleaseOrders returns n orders worth of capacity. Dropping to zero open
// orders moves an ON_DELIVERY agent back to AVAILABLE.
func (a *Agent) ReleaseOrders(n int) {
	a.currentOrders -= n
	if a.currentOrders < 0 {
		a.currentOrders = 0
	}
	if a.currentOrders == 0 && a.status == AgentOnDelivery {
		a.status = AgentAvailable
	}
}

// SetStatus changes the agent's duty state.
func (a *Agent) SetStatus(status AgentStatus) error {
	if err := status.Validate(); err != nil {
		return err
	}
	a.status = status
	return nil
}

// Deactivate removes the agent from assignment without deleting it.
func (a *Agent) Deactivate() {
	a.active = false
}

func (a *Agent) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	a.id = id
	return nil
}

func (a *Agent) setIdentity(code, name, phone string) error {
	if code == "" {
		return errs.NewValueIsRequiredError("agentCode")
	}
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	if phone == "" {
		return errs.NewValueIsRequiredError("phone")
	}
	a.code = code
	a.name = name
	a.phone = phone
	return nil
}

func (a *Agent) setHub(hubID kernel.UUID) error {
	if err := hubID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("hubId", err)
	}
	a.hubID = hubID
	return nil
}

func (a *Agent) setArea(area Area) error {
	if err := area.Validate(); err != nil {
		return err
	}
	a.area = area
	return nil
}

func (a *Agent) setCapacity(maxOrders int) error {
	if maxOrders < 0 {
		return errs.NewValueIsOutOfRangeError("maxOrders", maxOrders, 0, DefaultAgentMaxOrders)
	}
	a.maxOrders = maxOrders
	return nil
}
