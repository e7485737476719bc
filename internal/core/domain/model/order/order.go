package order

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"
)

// ErrOrderIsNotConstructed is returned when an Order instance was not created
// through NewOrder or RestoreOrder. This ensures all orders are validated.
var ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")

// Order is the aggregate root for a shipment. It owns the workflow state
// machine, the append-only status history, the customer-facing tracking feed
// and the network bindings (hubs, agents, vehicle).
//
// Invariants:
//   - the status history has at least one entry and is ordered by timestamp
//   - the current status equals the status of the last history entry
//   - terminal statuses (Delivered, Cancelled, Returned) are frozen
//   - can only be created through NewOrder or RestoreOrder
type Order struct {
	id            kernel.UUID
	customerID    kernel.UUID
	sellerOrderID string
	awb           string

	orderType    OrderType
	priority     Priority
	deliveryType DeliveryType
	paymentMode  PaymentMode

	pickup kernel.Address
	drop   kernel.Address
	items  []Item

	totalAmount          float64
	expectedDeliveryDate time.Time

	status   Status
	history  []StatusHistoryEntry
	tracking []TrackingEntry

	originHubID      *kernel.UUID
	destinationHubID *kernel.UUID
	pickupAgentID    *kernel.UUID
	deliveryAgentID  *kernel.UUID
	vehicleID        *kernel.UUID
	unassigned       bool

	shippedAt   *time.Time
	deliveredAt *time.Time
	createdAt   time.Time

	isConstructed bool
}

// NewOrder creates a new Order in Pending status with the initial history
// entry and tracking activity. Items are normalized: blank optional fields
// receive nominal defaults, only a wholly absent list is rejected.
//
// The order starts unassigned; BindNetwork clears that flag once the
// resolver has bound hubs and transport.
func NewOrder(
	id kernel.UUID,
	customerID kernel.UUID,
	sellerOrderID string,
	pickup kernel.Address,
	drop kernel.Address,
	items []Item,
	orderType OrderType,
	priority Priority,
	deliveryType DeliveryType,
	paymentMode PaymentMode,
	createdAt time.Time,
) (*Order, error) {
	o := &Order{
		status:        Pending,
		unassigned:    true,
		createdAt:     createdAt,
		isConstructed: true,
	}

	normalized, err := NormalizeItems(items)
	if err != nil {
		return nil, err
	}
	o.items = normalized

	if err := errors.Join(
		o.setID(id),
		o.setCustomerID(customerID),
		o.setSellerOrderID(sellerOrderID),
		o.setPickup(pickup),
		o.setDrop(drop),
		o.setAttributes(orderType, priority, deliveryType, paymentMode),
	); err != nil {
		return nil, err
	}

	o.history = append(o.history, StatusHistoryEntry{
		Status:    Pending,
		Timestamp: createdAt,
		Location:  pickup.City(),
		HandledBy: "system",
		Remarks:   "Order created",
	})
	o.tracking = append(o.tracking, TrackingEntry{
		Activity:  "Order placed",
		Location:  pickup.City(),
		Timestamp: createdAt,
	})

	return o, nil
}

// Snapshot carries the full persisted state of an Order. It is used to
// rebuild the aggregate from storage via RestoreOrder.
type Snapshot struct {
	ID            kernel.UUID
	CustomerID    kernel.UUID
	SellerOrderID string
	AWB           string

	OrderType    OrderType
	Priority     Priority
	DeliveryType DeliveryType
	PaymentMode  PaymentMode

	Pickup kernel.Address
	Drop   kernel.Address
	Items  []Item

	TotalAmount          float64
	ExpectedDeliveryDate time.Time

	Status   Status
	History  []StatusHistoryEntry
	Tracking []TrackingEntry

	OriginHubID      *kernel.UUID
	DestinationHubID *kernel.UUID
	PickupAgentID    *kernel.UUID
	DeliveryAgentID  *kernel.UUID
	VehicleID        *kernel.UUID
	Unassigned       bool

	ShippedAt   *time.Time
	DeliveredAt *time.Time
	CreatedAt   time.Time
}

// RestoreOrder reconstructs an Order from persistent storage. It validates
// identity, status and the status/history consistency invariant, but does
// not re-run creation-time normalization.
func RestoreOrder(s Snapshot) (*Order, error) {
	if err := errors.Join(
		s.ID.Validate(),
		s.CustomerID.Validate(),
		s.Status.Validate(),
	); err != nil {
		return nil, err
	}
	if len(s.History) == 0 {
		return nil, errs.NewValueIsRequiredError("history")
	}
	if last := s.History[len(s.History)-1].Status; last != s.Status {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"history",
			fmt.Errorf("status %s does not match last history entry %s", s.Status, last))
	}

	return &Order{
		id:                   s.ID,
		customerID:           s.CustomerID,
		sellerOrderID:        s.SellerOrderID,
		awb:                  s.AWB,
		orderType:            s.OrderType,
		priority:             s.Priority,
		deliveryType:         s.DeliveryType,
		paymentMode:          s.PaymentMode,
		pickup:               s.Pickup,
		drop:                 s.Drop,
		items:                s.Items,
		totalAmount:          s.TotalAmount,
		expectedDeliveryDate: s.ExpectedDeliveryDate,
		status:               s.Status,
		history:              s.History,
		tracking:             s.Tracking,
		originHubID:          s.OriginHubID,
		destinationHubID:     s.DestinationHubID,
		pickupAgentID:        s.PickupAgentID,
		deliveryAgentID:      s.DeliveryAgentID,
		vehicleID:            s.VehicleID,
		unassigned:           s.Unassigned,
		shippedAt:            s.ShippedAt,
		deliveredAt:          s.DeliveredAt,
		createdAt:            s.CreatedAt,
		isConstructed:        true,
	}, nil
}

// Validate ensures the Order was properly constructed.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID              { return o.id }
func (o *Order) CustomerID() kernel.UUID      { return o.customerID }
func (o *Order) SellerOrderID() string        { return o.sellerOrderID }
func (o *Order) AWB() string                  { return o.awb }
func (o *Order) OrderType() OrderType         { return o.orderType }
func (o *Order) Priority() Priority           { return o.priority }
func (o *Order) DeliveryType() DeliveryType   { return o.deliveryType }
func (o *Order) PaymentMode() PaymentMode     { return o.paymentMode }
func (o *Order) Pickup() kernel.Address       { return o.pickup }
func (o *Order) Drop() kernel.Address         { return o.drop }
func (o *Order) TotalAmount() float64         { return o.totalAmount }
func (o *Order) Status() Status               { return o.status }
func (o *Order) OriginHub() *kernel.UUID      { return o.originHubID }
func (o *Order) DestinationHub() *kernel.UUID { return o.destinationHubID }
func (o *Order) PickupAgent() *kernel.UUID    { return o.pickupAgentID }
func (o *Order) DeliveryAgent() *kernel.UUID  { return o.deliveryAgentID }
func (o *Order) Vehicle() *kernel.UUID        { return o.vehicleID }
func (o *Order) Unassigned() bool             { return o.unassigned }
func (o *Order) ShippedAt() *time.Time        { return o.shippedAt }
func (o *Order) DeliveredAt() *time.Time      { return o.deliveredAt }
func (o *Order) CreatedAt() time.Time         { return o.createdAt }

// ExpectedDeliveryDate returns the promised delivery timestamp.
// Zero when the order has not been priced yet.
func (o *Order) ExpectedDeliveryDate() time.Time { return o.expectedDeliveryDate }

// Items returns a copy of the item lines.
func (o *Order) Items() []Item {
	items := make([]Item, len(o.items))
	copy(items, o.items)
	return items
}

// History returns a copy of the workflow audit trail.
func (o *Order) History() []StatusHistoryEntry {
	history := make([]StatusHistoryEntry, len(o.history))
	copy(history, o.history)
	return history
}

// Tracking returns a copy of the customer-facing tracking feed.
func (o *Order) Tracking() []TrackingEntry {
	tracking := make([]TrackingEntry, len(o.tracking))
	copy(tracking, o.tracking)
	return tracking
}

// Progress returns the customer-facing completion percentage.
func (o *Order) Progress() int {
	return o.status.Progress()
}

// AdvanceStatus moves the order one step through the workflow and appends a
// history entry. Re-submitting the current status is an idempotent no-op:
// no history is appended and no error is returned.
//
// PickedUp stamps shippedAt; Delivered stamps deliveredAt. Both stamps use
// the transition timestamp so the persisted record and the trail agree.
func (o *Order) AdvanceStatus(target Status, at time.Time, location, handledBy, remarks string) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if target == o.status {
		return nil
	}
	if err := o.status.ValidateTransition(target); err != nil {
		return err
	}

	o.status = target
	if location == "" {
		location = o.currentLocation()
	}
	if remarks == "" {
		remarks = fmt.Sprintf("Status updated to %s", target)
	}
	o.history = append(o.history, StatusHistoryEntry{
		Status:    target,
		Timestamp: at,
		Location:  location,
		HandledBy: handledBy,
		Remarks:   remarks,
	})
	o.tracking = append(o.tracking, TrackingEntry{
		Activity:  trackingActivity(target),
		Location:  location,
		Timestamp: at,
	})

	switch target {
	case PickedUp:
		o.shippedAt = &at
	case Delivered:
		o.deliveredAt = &at
	}

	return nil
}

// SetPricing records the estimated charge and promised delivery date.
func (o *Order) SetPricing(totalAmount float64, expectedDeliveryDate time.Time) {
	o.totalAmount = totalAmount
	o.expectedDeliveryDate = expectedDeliveryDate
}

// AssignAWB sets the air waybill number. The AWB is immutable once set.
func (o *Order) AssignAWB(awb string) error {
	if awb == "" {
		return errs.NewValueIsRequiredError("awb")
	}
	if o.awb != "" {
		return errs.NewValueIsInvalidErrorWithCause(
			"awb", errors.New("awb is already assigned"))
	}
	o.awb = awb
	return nil
}

// BindNetwork records the resolved origin and destination hubs together with
// the optional vehicle and pickup agent, and clears the unassigned flag.
func (o *Order) BindNetwork(originHub, destinationHub kernel.UUID, vehicleID, pickupAgentID *kernel.UUID) error {
	if err := errors.Join(originHub.Validate(), destinationHub.Validate()); err != nil {
		return err
	}
	o.originHubID = &originHub
	o.destinationHubID = &destinationHub
	o.vehicleID = vehicleID
	o.pickupAgentID = pickupAgentID
	o.unassigned = false
	return nil
}

// MarkUnassigned flags the order for the assignment retry job.
func (o *Order) MarkUnassigned() {
	o.unassigned = true
}

// BindDeliveryAgent records the agent carrying the last-mile leg.
func (o *Order) BindDeliveryAgent(agentID kernel.UUID) error {
	if err := agentID.Validate(); err != nil {
		return err
	}
	o.deliveryAgentID = &agentID
	return nil
}

// AppendTracking adds a free-form activity to the customer-facing feed.
func (o *Order) AppendTracking(activity, location string, at time.Time) {
	o.tracking = append(o.tracking, TrackingEntry{
		Activity:  activity,
		Location:  location,
		Timestamp: at,
	})
}

// currentLocation is the location of the most recent history entry.
func (o *Order) currentLocation() string {
	if len(o.history) == 0 {
		return o.pickup.City()
	}
	return o.history[len(o.history)-1].Location
}

func trackingActivity(s Status) string {
	//nolint:exhaustive // Pending is only produced at creation time
	activities := map[Status]string{
		AssignedPickup:       "Pickup agent assigned",
		PickedUp:             "Shipment picked up",
		AtOriginHub:          "Arrived at origin hub",
		DispatchedFromOrigin: "Dispatched from origin hub",
		InTransit:            "Shipment in transit",
		AtDestinationHub:     "Arrived at destination hub",
		OutForDelivery:       "Out for delivery",
		Delivered:            "Delivered",
		Cancelled:            "Order cancelled",
		Returned:             "Returned to seller",
	}
	if activity, ok := activities[s]; ok {
		return activity
	}
	return fmt.Sprintf("Status updated to %s", s)
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setCustomerID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("customerId", err)
	}
	o.customerID = id
	return nil
}

func (o *Order) setSellerOrderID(sellerOrderID string) error {
	if sellerOrderID == "" {
		return errs.NewValueIsRequiredError("sellerOrderId")
	}
	o.sellerOrderID = sellerOrderID
	return nil
}

func (o *Order) setPickup(pickup kernel.Address) error {
	if err := pickup.IsValid(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("pickupAddress", err)
	}
	o.pickup = pickup
	return nil
}

func (o *Order) setDrop(drop kernel.Address) error {
	if err := drop.IsValid(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("dropAddress", err)
	}
	o.drop = drop
	return nil
}

func (o *Order) setAttributes(t OrderType, p Priority, d DeliveryType, m PaymentMode) error {
	if err := errors.Join(t.Validate(), p.Validate(), d.Validate(), m.Validate()); err != nil {
		return err
	}
	o.orderType = t
	o.priority = p
	o.deliveryType = d
	o.paymentMode = m
	return nil
}

const sellerOrderIDAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// NewSellerOrderID generates a seller order reference of the form
// ORD-<unix millis>-<6 random upper-alphanumerics>. Uniqueness is enforced
// by the store; callers retry with a fresh suffix on collision.
func NewSellerOrderID(now time.Time) string {
	var b strings.Builder
	for range 6 {
		b.WriteByte(sellerOrderIDAlphabet[rand.Intn(len(sellerOrderIDAlphabet))])
	}
	return fmt.Sprintf("ORD-%d-%s", now.UnixMilli(), b.String())
}

// NewAWB generates an air waybill number from the last six digits of the
// current unix millis plus three random digits.
func NewAWB(now time.Time) string {
	millis := fmt.Sprintf("%d", now.UnixMilli())
	if len(millis) > 6 {
		millis = millis[len(millis)-6:]
	}
	return fmt.Sprintf("AWB%s%03d", millis, rand.Intn(1000))
}
