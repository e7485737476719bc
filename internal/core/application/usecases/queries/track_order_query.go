package queries

import (
	"errors"
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/guard"
)

var ErrTrackOrderQueryIsNotConstructed = errors.New(
	"TrackOrderQuery must be created via NewTrackOrderQuery constructor",
)

// TrackOrderQuery retrieves the customer-facing tracking projection of an
// order: current status with progress percentage, the activity feed and
// the promised delivery date.
type TrackOrderQuery struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewTrackOrderQuery creates the query for one order.
func NewTrackOrderQuery(orderID kernel.UUID) (TrackOrderQuery, error) {
	if err := orderID.Validate(); err != nil {
		return TrackOrderQuery{}, err
	}
	return TrackOrderQuery{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q TrackOrderQuery) Validate() error {
	return q.guard.Validate(ErrTrackOrderQueryIsNotConstructed)
}

func (q TrackOrderQuery) OrderID() kernel.UUID { return q.orderID }

// TrackingItem is one customer-visible activity in the read model.
type TrackingItem struct {
	Activity  string    `json:"activity"`
	Location  string    `json:"location"`
	Timestamp time.Time `json:"timestamp"`
}

// TrackOrderQueryResponse is the tracking projection read model.
type TrackOrderQueryResponse struct {
	OrderID          string
	AWB              string
	SellerOrderID    string
	Status           string
	Progress         int
	CurrentLocation  string
	ExpectedDelivery time.Time
	Tracking         []TrackingItem
}
