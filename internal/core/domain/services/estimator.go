package services

import (
	"context"

	"logistics/internal/core/domain/model/estimate"
)

// Estimator produces pricing, delivery-time and route projections for a
// shipment. Implementations may be pure arithmetic or delegate to an
// external provider; FallbackEstimator composes both and guarantees that
// callers never see a provider failure.
type Estimator interface {
	EstimatePrice(ctx context.Context, req estimate.Request) (estimate.PriceBreakdown, error)
	EstimateDeliveryTime(ctx context.Context, req estimate.Request) (estimate.TimeEstimate, error)
	PlanRoute(ctx context.Context, req estimate.Request) (estimate.RoutePlan, error)
}
