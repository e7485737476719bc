package gemini_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"logistics/internal/adapters/out/gemini"
	"logistics/internal/core/domain/model/estimate"
	"logistics/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRequest() estimate.Request {
	return estimate.Request{
		Items: []order.Item{{
			Name: "Ceramic vase", Quantity: 1, WeightKg: 2, Value: 1500,
		}},
		PickupCity:    "Bengaluru",
		PickupState:   "Karnataka",
		PickupPincode: "560001",
		DropCity:      "Mumbai",
		DropState:     "Maharashtra",
		DropPincode:   "400001",
		OrderType:     order.TypeNormal,
		DeliveryType:  order.DeliveryStandard,
		Priority:      order.PriorityMedium,
	}
}

// completionServer serves a fixed candidate text in the provider's wire format.
func completionServer(t *testing.T, text string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.NotEmpty(t, r.URL.Query().Get("key"))

		response := map[string]any{
			"candidates": []map[string]any{{
				"content": map[string]any{
					"parts": []map[string]any{{"text": text}},
				},
			}},
		}
		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(response))
	}))
}

func newEstimator(t *testing.T, baseURL string) *gemini.RemoteEstimator {
	t.Helper()
	estimator, err := gemini.NewRemoteEstimator(gemini.Config{
		APIKey:  "test-key",
		BaseURL: baseURL,
		Timeout: 2 * time.Second,
	}, nil)
	require.NoError(t, err)
	return estimator
}

func TestNewRemoteEstimator_RequiresAPIKey(t *testing.T) {
	// When
	estimator, err := gemini.NewRemoteEstimator(gemini.Config{}, nil)

	// Then
	require.Error(t, err)
	assert.Nil(t, estimator)
}

func TestRemoteEstimator_EstimatePrice_Success(t *testing.T) {
	// Given: the model wraps the JSON in prose and a markdown fence
	text := "Here is the pricing breakdown:\n```json\n" +
		`{"basePrice": 50, "weightCharge": 60, "volumeCharge": 45,
		"valueCharge": 1.5, "distanceCharge": 320, "orderTypeCharge": 0,
		"priorityMultiplier": 1, "deliveryMultiplier": 1,
		"subtotal": 476.5, "gst": 85.77, "total": 562.27,
		"distanceKm": 980, "estimatedHours": 72}` + "\n```\nLet me know if you need anything else."
	server := completionServer(t, text)
	defer server.Close()

	estimator := newEstimator(t, server.URL)

	// When
	breakdown, err := estimator.EstimatePrice(context.Background(), testRequest())

	// Then
	require.NoError(t, err)
	assert.InDelta(t, 50, breakdown.BasePrice, 0.001)
	assert.InDelta(t, 562.27, breakdown.Total, 0.001)
	assert.InDelta(t, 980, breakdown.DistanceKm, 0.001)
	assert.Equal(t, 72, breakdown.EstimatedHours)
	assert.False(t, breakdown.EstimatedDelivery.IsZero())
}

func TestRemoteEstimator_EstimateDeliveryTime_ParsesDate(t *testing.T) {
	// Given
	estimatedDate := time.Now().AddDate(0, 0, 4).UTC().Truncate(time.Second)
	doc := map[string]any{
		"estimatedDays": 4, "minDays": 2, "maxDays": 6, "confidence": 85,
		"factors":               []string{"interstate", "metro to metro"},
		"estimatedDeliveryDate": estimatedDate.Format(time.RFC3339),
	}
	raw, err := json.Marshal(doc)
	require.NoError(t, err)
	server := completionServer(t, string(raw))
	defer server.Close()

	estimator := newEstimator(t, server.URL)

	// When
	te, err := estimator.EstimateDeliveryTime(context.Background(), testRequest())

	// Then
	require.NoError(t, err)
	assert.Equal(t, 4, te.EstimatedDays)
	assert.Equal(t, 85, te.Confidence)
	assert.Equal(t, estimatedDate, te.EstimatedDate.UTC())
	assert.Contains(t, te.Factors, "interstate")
}

func TestRemoteEstimator_EstimateDeliveryTime_BadDateFallsBackToDays(t *testing.T) {
	// Given: an unparseable delivery date
	server := completionServer(t,
		`{"estimatedDays": 3, "minDays": 2, "maxDays": 5, "confidence": 70,
		"factors": [], "estimatedDeliveryDate": "next Tuesday"}`)
	defer server.Close()

	estimator := newEstimator(t, server.URL)

	// When
	te, err := estimator.EstimateDeliveryTime(context.Background(), testRequest())

	// Then: the date is derived from estimatedDays instead of failing
	require.NoError(t, err)
	assert.Equal(t, 3, te.EstimatedDays)
	assert.WithinDuration(t, time.Now().AddDate(0, 0, 3), te.EstimatedDate, time.Minute)
}

func TestRemoteEstimator_PlanRoute_MapsLegs(t *testing.T) {
	// Given
	server := completionServer(t,
		`{"transitRoute": [
			{"step": 1, "hub": "HUB-BLR-01", "state": "Karnataka", "city": "Bengaluru",
			 "transportMode": "STATE_VEHICLE", "durationHours": 24},
			{"step": 2, "hub": "HUB-BOM-01", "state": "Maharashtra", "city": "Mumbai",
			 "transportMode": "LOCAL_DELIVERY", "durationHours": 6}],
		"recommendedVehicle": "TRUCK", "deliveryArea": "WEST",
		"totalDistanceKm": 980, "totalTransitHours": 30}`)
	defer server.Close()

	estimator := newEstimator(t, server.URL)

	// When
	plan, err := estimator.PlanRoute(context.Background(), testRequest())

	// Then
	require.NoError(t, err)
	require.Len(t, plan.Legs, 2)
	assert.Equal(t, "HUB-BLR-01", plan.Legs[0].Hub)
	assert.Equal(t, "LOCAL_DELIVERY", plan.Legs[1].TransportMode)
	assert.Equal(t, "TRUCK", plan.RecommendedVehicle)
	assert.Equal(t, 30, plan.TotalTransitHours)
}

func TestRemoteEstimator_ServerError_ReturnsError(t *testing.T) {
	// Given
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"error": {"message": "API key not valid"}}`, http.StatusBadRequest)
	}))
	defer server.Close()

	estimator := newEstimator(t, server.URL)

	// When
	_, err := estimator.EstimatePrice(context.Background(), testRequest())

	// Then
	require.Error(t, err)
	assert.Contains(t, err.Error(), "400")
}

func TestRemoteEstimator_EmptyCandidates_ReturnsError(t *testing.T) {
	// Given
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates": []}`))
	}))
	defer server.Close()

	estimator := newEstimator(t, server.URL)

	// When
	_, err := estimator.EstimatePrice(context.Background(), testRequest())

	// Then
	require.ErrorIs(t, err, gemini.ErrEmptyCompletion)
}

func TestRemoteEstimator_ProseWithoutJSON_ReturnsError(t *testing.T) {
	// Given
	server := completionServer(t, "I cannot produce an estimate for this shipment.")
	defer server.Close()

	estimator := newEstimator(t, server.URL)

	// When
	_, err := estimator.EstimatePrice(context.Background(), testRequest())

	// Then
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no JSON object")
}

func TestRemoteEstimator_CircuitOpensAfterConsecutiveFailures(t *testing.T) {
	// Given: an endpoint that always fails
	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls++
		http.Error(w, "unavailable", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	estimator := newEstimator(t, server.URL)
	ctx := context.Background()

	// When: failures accumulate past the trip threshold
	for range 5 {
		_, err := estimator.EstimatePrice(ctx, testRequest())
		require.Error(t, err)
	}

	// Then: the breaker short-circuits without reaching the endpoint
	assert.Equal(t, 3, calls)
}
