package services

import (
	"context"
	"math"
	"strconv"
	"time"

	"logistics/internal/core/domain/model/estimate"
	"logistics/internal/core/domain/model/order"
)

// Pricing pipeline rates. All amounts in rupees.
const (
	basePricePerItem  = 50.0
	weightRatePerKg   = 15.0
	volumeRatePerUnit = 5.0
	valueRate         = 0.001
	distanceRatePerKm = 2.0
	minDistanceCharge = 50.0
	gstRate           = 0.18

	handleWithCareCharge = 100.0
	byAirCharge          = 200.0

	baseProcessingHours    = 24
	expressProcessingHours = 12
)

// Delivery-time projection constants used when no provider data exists.
const (
	fallbackEstimatedDays = 4
	fallbackMinDays       = 2
	fallbackMaxDays       = 6
	fallbackConfidence    = 75
)

// DeterministicEstimator computes estimates with pure arithmetic. It never
// performs I/O and never fails on missing optional item fields; only a
// wholly absent item list is an error.
type DeterministicEstimator struct {
	now func() time.Time
}

// NewDeterministicEstimator creates an estimator using the wall clock.
func NewDeterministicEstimator() *DeterministicEstimator {
	return &DeterministicEstimator{now: time.Now}
}

// NewDeterministicEstimatorWithClock creates an estimator with a fixed
// clock, used in tests.
func NewDeterministicEstimatorWithClock(now func() time.Time) *DeterministicEstimator {
	return &DeterministicEstimator{now: now}
}

// EstimatePrice runs the arithmetic pricing pipeline:
// per-item base, weight, volume and declared-value charges, a coarse
// pincode-difference distance charge floored at a minimum, priority and
// delivery-type multipliers, a flat order-type surcharge, then GST.
func (e *DeterministicEstimator) EstimatePrice(_ context.Context, req estimate.Request) (estimate.PriceBreakdown, error) {
	items, err := order.NormalizeItems(req.Items)
	if err != nil {
		return estimate.PriceBreakdown{}, err
	}

	var breakdown estimate.PriceBreakdown
	for _, item := range items {
		breakdown.BasePrice += basePricePerItem
		breakdown.WeightCharge += item.WeightKg * weightRatePerKg
		breakdown.VolumeCharge += item.VolumeCm3() / 1000 * volumeRatePerUnit
		breakdown.ValueCharge += item.Value * valueRate
	}

	breakdown.DistanceKm = pincodeDistanceKm(req.PickupPincode, req.DropPincode)
	breakdown.DistanceCharge = math.Max(breakdown.DistanceKm*distanceRatePerKm, minDistanceCharge)

	breakdown.PriorityMultiplier = priorityMultiplier(req.Priority)
	breakdown.DeliveryMultiplier = deliveryMultiplier(req.DeliveryType)
	breakdown.OrderTypeCharge = orderTypeCharge(req.OrderType)

	subtotal := (breakdown.BasePrice + breakdown.WeightCharge + breakdown.VolumeCharge +
		breakdown.ValueCharge + breakdown.DistanceCharge) *
		breakdown.PriorityMultiplier * breakdown.DeliveryMultiplier
	subtotal += breakdown.OrderTypeCharge

	breakdown.Subtotal = subtotal
	breakdown.GST = subtotal * gstRate
	breakdown.Total = subtotal + breakdown.GST

	breakdown.EstimatedHours = processingHours(req.DeliveryType, req.Priority)
	breakdown.EstimatedDelivery = e.now().Add(time.Duration(breakdown.EstimatedHours) * time.Hour)

	return breakdown, nil
}

// EstimateDeliveryTime returns the fixed deterministic projection:
// 4 days, bounded 2 to 6, at 75 percent confidence.
func (e *DeterministicEstimator) EstimateDeliveryTime(_ context.Context, req estimate.Request) (estimate.TimeEstimate, error) {
	factors := []string{"Standard processing"}
	if req.PickupState != "" && req.DropState != "" && req.PickupState != req.DropState {
		factors = append(factors, "Interstate delivery")
	}

	return estimate.TimeEstimate{
		EstimatedDays: fallbackEstimatedDays,
		MinDays:       fallbackMinDays,
		MaxDays:       fallbackMaxDays,
		Confidence:    fallbackConfidence,
		Factors:       factors,
		EstimatedDate: e.now().Add(fallbackEstimatedDays * 24 * time.Hour),
	}, nil
}

// PlanRoute builds a two or three leg hub route: origin state hub, a
// transfer hub when the shipment crosses states, then the destination
// city hub.
func (e *DeterministicEstimator) PlanRoute(_ context.Context, req estimate.Request) (estimate.RoutePlan, error) {
	interState := req.PickupState != req.DropState

	legs := []estimate.TransitLeg{{
		Step:          1,
		Hub:           req.PickupState + " State Hub",
		State:         req.PickupState,
		City:          req.PickupCity,
		TransportMode: "STATE_VEHICLE",
		DurationHours: baseProcessingHours,
	}}
	if interState {
		legs = append(legs, estimate.TransitLeg{
			Step:          2,
			Hub:           req.DropState + " State Hub",
			State:         req.DropState,
			City:          req.DropCity,
			TransportMode: "STATE_VEHICLE",
			DurationHours: baseProcessingHours,
		})
	}
	legs = append(legs, estimate.TransitLeg{
		Step:          len(legs) + 1,
		Hub:           req.DropCity + " City Hub",
		State:         req.DropState,
		City:          req.DropCity,
		TransportMode: "LOCAL_DELIVERY",
		DurationHours: 0,
	})

	totalHours := baseProcessingHours
	if interState {
		totalHours = 2 * baseProcessingHours
	}

	return estimate.RoutePlan{
		Legs:               legs,
		RecommendedVehicle: recommendedVehicle(req.OrderType),
		DeliveryArea:       "NORTH",
		TotalDistanceKm:    pincodeDistanceKm(req.PickupPincode, req.DropPincode),
		TotalTransitHours:  totalHours,
	}, nil
}

// pincodeDistanceKm is a coarse distance proxy: the absolute pincode
// difference scaled down. Unparseable pincodes contribute zero.
func pincodeDistanceKm(pickup, drop string) float64 {
	p, _ := strconv.Atoi(pickup)
	d, _ := strconv.Atoi(drop)
	return math.Abs(float64(p-d)) / 1000
}

func priorityMultiplier(p order.Priority) float64 {
	switch p {
	case order.PriorityHigh:
		return 1.5
	case order.PriorityCritical:
		return 2
	default:
		return 1
	}
}

func deliveryMultiplier(d order.DeliveryType) float64 {
	switch d {
	case order.DeliveryExpress:
		return 1.5
	case order.DeliveryScheduled:
		return 1.2
	default:
		return 1
	}
}

func orderTypeCharge(t order.OrderType) float64 {
	switch t {
	case order.TypeHandleWithCare:
		return handleWithCareCharge
	case order.TypeByAir:
		return byAirCharge
	default:
		return 0
	}
}

func processingHours(d order.DeliveryType, p order.Priority) int {
	hours := baseProcessingHours
	if d == order.DeliveryExpress {
		hours = expressProcessingHours
	}
	if p == order.PriorityCritical {
		hours /= 2
	}
	return hours
}

func recommendedVehicle(t order.OrderType) string {
	if t == order.TypeByAir {
		return "MINI_TRUCK"
	}
	return "TRUCK"
}
