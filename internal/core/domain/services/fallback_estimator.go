package services

import (
	"context"
	"log/slog"

	"logistics/internal/core/domain/model/estimate"
)

// FallbackEstimator tries a remote provider first and silently falls back
// to deterministic arithmetic on ANY provider error: network failure,
// timeout, open circuit or unparseable output. Callers never receive a
// provider error; the only errors surfaced come from the deterministic
// path itself (an absent item list).
type FallbackEstimator struct {
	remote        Estimator
	deterministic *DeterministicEstimator
	logger        *slog.Logger
}

// NewFallbackEstimator composes the remote and deterministic estimators.
// A nil remote disables delegation entirely.
func NewFallbackEstimator(remote Estimator, deterministic *DeterministicEstimator, logger *slog.Logger) *FallbackEstimator {
	if logger == nil {
		logger = slog.Default()
	}
	return &FallbackEstimator{
		remote:        remote,
		deterministic: deterministic,
		logger:        logger.With("component", "fallback-estimator"),
	}
}

func (f *FallbackEstimator) EstimatePrice(ctx context.Context, req estimate.Request) (estimate.PriceBreakdown, error) {
	if f.remote != nil {
		breakdown, err := f.remote.EstimatePrice(ctx, req)
		if err == nil {
			return breakdown, nil
		}
		f.logger.Warn("remote price estimate failed, using deterministic", "error", err)
	}
	return f.deterministic.EstimatePrice(ctx, req)
}

func (f *FallbackEstimator) EstimateDeliveryTime(ctx context.Context, req estimate.Request) (estimate.TimeEstimate, error) {
	if f.remote != nil {
		te, err := f.remote.EstimateDeliveryTime(ctx, req)
		if err == nil {
			return te, nil
		}
		f.logger.Warn("remote time estimate failed, using deterministic", "error", err)
	}
	return f.deterministic.EstimateDeliveryTime(ctx, req)
}

func (f *FallbackEstimator) PlanRoute(ctx context.Context, req estimate.Request) (estimate.RoutePlan, error) {
	if f.remote != nil {
		plan, err := f.remote.PlanRoute(ctx, req)
		if err == nil {
			return plan, nil
		}
		f.logger.Warn("remote route plan failed, using deterministic", "error", err)
	}
	return f.deterministic.PlanRoute(ctx, req)
}
