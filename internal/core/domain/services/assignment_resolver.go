package services

import (
	"errors"
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/network"
)

// ErrHubNotResolved is returned when no hub can be selected and no fallback
// hub can be minted for the requested state.
var ErrHubNotResolved = errors.New("hub not resolved")

// fallbackServiceArea is the placeholder pincode given to hubs minted by
// the resolver when a state has no coverage yet.
const fallbackServiceArea = "000000"

// AssignmentResolver selects network resources for a shipment. Selection is
// pure: callers load the candidate sets, the resolver picks.
//
// Policies:
//   - hubs: exact city+state match first, then any active hub in the state
//   - agents: active, AVAILABLE, spare capacity, lowest load first
//   - vehicles: active, AVAILABLE, serving either endpoint state
//
// A nil agent or vehicle result is acceptable; orders proceed unassigned
// and the retry job binds them later. Hub resolution never fails for a
// well-formed state: NewFallbackHub mints a default hub on demand.
type AssignmentResolver struct{}

// NewAssignmentResolver creates a new AssignmentResolver.
func NewAssignmentResolver() AssignmentResolver {
	return AssignmentResolver{}
}

// ResolveHub picks the best hub for a city and state, or nil when no
// candidate qualifies.
func (r AssignmentResolver) ResolveHub(hubs []*network.Hub, city, state string) *network.Hub {
	var stateMatch *network.Hub
	for _, h := range hubs {
		if h == nil || h.Validate() != nil || !h.Active() || h.State() != state {
			continue
		}
		if h.City() == city {
			return h
		}
		if stateMatch == nil {
			stateMatch = h
		}
	}
	return stateMatch
}

// NewFallbackHub mints a default hub for a state with no coverage:
// area NORTH, default capacity, placeholder service area.
func (r AssignmentResolver) NewFallbackHub(state, city string, now time.Time) (*network.Hub, error) {
	hub, err := network.NewHub(
		kernel.NewUUID(),
		"HUB-"+state+"-"+city,
		state,
		city,
		network.AreaNorth,
		network.DefaultHubMaxOrders,
		[]string{fallbackServiceArea},
		now,
	)
	if err != nil {
		return nil, errors.Join(ErrHubNotResolved, err)
	}
	return hub, nil
}

// SelectAgent picks the least-loaded available agent, or nil.
// Ties go to the earlier candidate.
func (r AssignmentResolver) SelectAgent(agents []*network.Agent) *network.Agent {
	var best *network.Agent
	for _, a := range agents {
		if a == nil || a.Validate() != nil || !a.Available() {
			continue
		}
		if best == nil || a.CurrentOrders() < best.CurrentOrders() {
			best = a
		}
	}
	return best
}

// SelectVehicle picks the first available vehicle serving either endpoint
// state, or nil.
func (r AssignmentResolver) SelectVehicle(vehicles []*network.Vehicle, pickupState, dropState string) *network.Vehicle {
	for _, v := range vehicles {
		if v == nil || v.Validate() != nil || !v.Available() {
			continue
		}
		if v.Serves(pickupState) || v.Serves(dropState) {
			return v
		}
	}
	return nil
}
