// Package estimate defines the input and output shapes shared by the
// pricing, delivery-time and route estimators.
package estimate

import (
	"time"

	"logistics/internal/core/domain/model/order"
)

// Request carries everything an estimator needs about a shipment.
// Callers fill what they have; estimators default the rest.
type Request struct {
	Items []order.Item

	PickupCity    string
	PickupState   string
	PickupPincode string

	DropCity    string
	DropState   string
	DropPincode string

	OrderType    order.OrderType
	DeliveryType order.DeliveryType
	Priority     order.Priority
}

// PriceBreakdown is the itemized result of a pricing run. All amounts are
// in rupees; the multipliers are recorded so callers can display the math.
type PriceBreakdown struct {
	BasePrice      float64
	WeightCharge   float64
	VolumeCharge   float64
	ValueCharge    float64
	DistanceCharge float64

	OrderTypeCharge    float64
	PriorityMultiplier float64
	DeliveryMultiplier float64

	Subtotal float64
	GST      float64
	Total    float64

	DistanceKm        float64
	EstimatedHours    int
	EstimatedDelivery time.Time
}

// TimeEstimate is a delivery-time projection with a confidence percentage
// and the factors that contributed to it.
type TimeEstimate struct {
	EstimatedDays int
	MinDays       int
	MaxDays       int
	Confidence    int
	Factors       []string
	EstimatedDate time.Time
}

// TransitLeg is one hop of a planned route between facilities.
type TransitLeg struct {
	Step          int
	Hub           string
	State         string
	City          string
	TransportMode string
	DurationHours int
}

// RoutePlan is the hub-to-hub path a shipment should take, together with
// the recommended line-haul vehicle type and last-mile delivery area.
type RoutePlan struct {
	Legs               []TransitLeg
	RecommendedVehicle string
	DeliveryArea       string
	TotalDistanceKm    float64
	TotalTransitHours  int
}
