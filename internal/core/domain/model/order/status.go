package order

import (
	"errors"
	"fmt"

	"logistics/internal/pkg/errs"
)

// ErrInvalidTransition is returned when a requested status change does not
// follow the order workflow. Wrap it with details via fmt.Errorf("%w: ...").
var ErrInvalidTransition = errors.New("invalid status transition")

// Status represents the lifecycle state of an order.
// It implements a state machine with defined transitions so orders move
// through the fulfillment pipeline in sequence.
//
// State transitions:
//
//	Pending -> AssignedPickup -> PickedUp -> AtOriginHub ->
//	DispatchedFromOrigin -> InTransit -> AtDestinationHub ->
//	OutForDelivery -> Delivered
//
// Cancelled and Returned are reachable from any non-terminal state.
// Delivered, Cancelled and Returned are terminal: no further transitions.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status when an order is first created.
	Pending

	// AssignedPickup indicates a pickup agent has been assigned.
	AssignedPickup

	// PickedUp indicates the shipment has left the seller.
	PickedUp

	// AtOriginHub indicates arrival at the origin hub.
	AtOriginHub

	// DispatchedFromOrigin indicates departure from the origin hub.
	DispatchedFromOrigin

	// InTransit indicates line-haul movement between hubs.
	InTransit

	// AtDestinationHub indicates arrival at the destination hub.
	AtDestinationHub

	// OutForDelivery indicates a delivery agent is carrying the shipment.
	OutForDelivery

	// Delivered is the successful terminal state.
	Delivered

	// Cancelled is a terminal state reachable from any non-terminal status.
	Cancelled

	// Returned is a terminal state reachable from any non-terminal status.
	Returned
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:              "UNKNOWN",
		Pending:              "PENDING",
		AssignedPickup:       "ASSIGNED_PICKUP",
		PickedUp:             "PICKED_UP",
		AtOriginHub:          "AT_ORIGIN_HUB",
		DispatchedFromOrigin: "DISPATCHED_FROM_ORIGIN",
		InTransit:            "IN_TRANSIT",
		AtDestinationHub:     "AT_DESTINATION_HUB",
		OutForDelivery:       "OUT_FOR_DELIVERY",
		Delivered:            "DELIVERED",
		Cancelled:            "CANCELLED",
		Returned:             "RETURNED",
	}
}

// successor maps each status to its single forward successor in the
// fulfillment pipeline. Terminal states have no successor.
func successor(s Status) (Status, bool) {
	//nolint:exhaustive // terminal states intentionally have no successor
	next, ok := map[Status]Status{
		Pending:              AssignedPickup,
		AssignedPickup:       PickedUp,
		PickedUp:             AtOriginHub,
		AtOriginHub:          DispatchedFromOrigin,
		DispatchedFromOrigin: InTransit,
		InTransit:            AtDestinationHub,
		AtDestinationHub:     OutForDelivery,
		OutForDelivery:       Delivered,
	}[s]
	return next, ok
}

// ParseStatus converts a wire/storage representation like "PICKED_UP"
// into a Status. Returns an error for unrecognized values.
func ParseStatus(s string) (Status, error) {
	for status, str := range getStatusStrings() {
		if str == s && status != Unknown {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause(
		"status", fmt.Errorf("%q is not a valid status", s))
}

// Validate checks if the Status value is valid.
// Unknown (0) and out-of-range values are invalid.
func (s Status) Validate() error {
	if _, ok := getStatusStrings()[s]; !ok || s == Unknown {
		return errs.NewValueIsInvalidErrorWithCause(
			"status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the storage representation of the status, e.g. "IN_TRANSIT".
// Safe to call on any Status value, including invalid ones.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// IsTerminal reports whether the status admits no further transitions.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled || s == Returned
}

// Next returns the forward successor of the status.
// Terminal states and Unknown have no successor.
func (s Status) Next() (Status, bool) {
	return successor(s)
}

// CanTransitionTo reports whether target is reachable from s in one step.
//
// Allowed moves:
//   - the single forward successor in the pipeline
//   - Cancelled or Returned from any non-terminal status
//
// Re-submitting the current status is not a transition; callers treat it
// as an idempotent no-op before consulting this method.
func (s Status) CanTransitionTo(target Status) bool {
	if s.IsTerminal() {
		return false
	}
	if target == Cancelled || target == Returned {
		return true
	}
	next, ok := successor(s)
	return ok && next == target
}

// ValidateTransition returns ErrInvalidTransition (wrapped with detail)
// when target is not reachable from s.
func (s Status) ValidateTransition(target Status) error {
	if err := target.Validate(); err != nil {
		return err
	}
	if !s.CanTransitionTo(target) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, s, target)
	}
	return nil
}

// Progress returns the customer-facing completion percentage for the status.
func (s Status) Progress() int {
	//nolint:exhaustive // Unknown, Cancelled and Returned report zero progress
	return map[Status]int{
		Pending:              10,
		AssignedPickup:       20,
		PickedUp:             30,
		AtOriginHub:          40,
		DispatchedFromOrigin: 50,
		InTransit:            60,
		AtDestinationHub:     70,
		OutForDelivery:       85,
		Delivered:            100,
	}[s]
}
