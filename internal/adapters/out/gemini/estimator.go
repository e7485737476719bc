// Package gemini implements the Estimator port against a generative
// language model endpoint. Every call is bounded by the configured timeout
// and guarded by a circuit breaker; callers compose this adapter with the
// deterministic estimator so a provider outage never reaches an order.
package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"logistics/internal/core/domain/model/estimate"
	"logistics/internal/pkg/errs"

	"github.com/sony/gobreaker"
)

// ErrEmptyCompletion is returned when the model responds without any
// candidate text to parse.
var ErrEmptyCompletion = errors.New("model returned no completion")

const (
	defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta/models/gemini-1.5-flash-latest:generateContent"

	pricingMaxTokens = 1000
	timeMaxTokens    = 800
	routeMaxTokens   = 1200
)

// Config carries the provider settings for the remote estimator.
type Config struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
}

// RemoteEstimator asks the model for pricing, delivery-time and route
// projections. Responses are free-form text with an embedded JSON object;
// the adapter extracts and decodes that object.
type RemoteEstimator struct {
	apiKey  string
	baseURL string
	client  *http.Client
	breaker *gobreaker.CircuitBreaker
	logger  *slog.Logger
	now     func() time.Time
}

// NewRemoteEstimator creates the adapter. The API key is required; base URL
// and timeout fall back to defaults when unset.
func NewRemoteEstimator(cfg Config, logger *slog.Logger) (*RemoteEstimator, error) {
	if cfg.APIKey == "" {
		return nil, errs.NewValueIsRequiredError("apiKey")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "gemini-estimator")

	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "gemini",
		MaxRequests: 1,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state changed",
				"name", name, "from", from.String(), "to", to.String())
		},
	})

	return &RemoteEstimator{
		apiKey:  cfg.APIKey,
		baseURL: cfg.BaseURL,
		client:  &http.Client{Timeout: cfg.Timeout},
		breaker: breaker,
		logger:  logger,
		now:     time.Now,
	}, nil
}

// priceDoc is the JSON object the pricing prompt asks the model for.
type priceDoc struct {
	BasePrice          float64 `json:"basePrice"`
	WeightCharge       float64 `json:"weightCharge"`
	VolumeCharge       float64 `json:"volumeCharge"`
	ValueCharge        float64 `json:"valueCharge"`
	DistanceCharge     float64 `json:"distanceCharge"`
	OrderTypeCharge    float64 `json:"orderTypeCharge"`
	PriorityMultiplier float64 `json:"priorityMultiplier"`
	DeliveryMultiplier float64 `json:"deliveryMultiplier"`
	Subtotal           float64 `json:"subtotal"`
	GST                float64 `json:"gst"`
	Total              float64 `json:"total"`
	DistanceKm         float64 `json:"distanceKm"`
	EstimatedHours     int     `json:"estimatedHours"`
}

// EstimatePrice asks the model for an itemized shipping price.
func (e *RemoteEstimator) EstimatePrice(ctx context.Context, req estimate.Request) (estimate.PriceBreakdown, error) {
	text, err := e.generate(ctx, pricingPrompt(req), pricingMaxTokens)
	if err != nil {
		return estimate.PriceBreakdown{}, err
	}

	var doc priceDoc
	if err := decodeEmbeddedJSON(text, &doc); err != nil {
		return estimate.PriceBreakdown{}, err
	}

	return estimate.PriceBreakdown{
		BasePrice:          doc.BasePrice,
		WeightCharge:       doc.WeightCharge,
		VolumeCharge:       doc.VolumeCharge,
		ValueCharge:        doc.ValueCharge,
		DistanceCharge:     doc.DistanceCharge,
		OrderTypeCharge:    doc.OrderTypeCharge,
		PriorityMultiplier: doc.PriorityMultiplier,
		DeliveryMultiplier: doc.DeliveryMultiplier,
		Subtotal:           doc.Subtotal,
		GST:                doc.GST,
		Total:              doc.Total,
		DistanceKm:         doc.DistanceKm,
		EstimatedHours:     doc.EstimatedHours,
		EstimatedDelivery:  e.now().Add(time.Duration(doc.EstimatedHours) * time.Hour),
	}, nil
}

// timeDoc is the JSON object the delivery-time prompt asks the model for.
type timeDoc struct {
	EstimatedDays         int      `json:"estimatedDays"`
	MinDays               int      `json:"minDays"`
	MaxDays               int      `json:"maxDays"`
	Confidence            int      `json:"confidence"`
	Factors               []string `json:"factors"`
	EstimatedDeliveryDate string   `json:"estimatedDeliveryDate"`
}

// EstimateDeliveryTime asks the model for a delivery window projection.
func (e *RemoteEstimator) EstimateDeliveryTime(ctx context.Context, req estimate.Request) (estimate.TimeEstimate, error) {
	text, err := e.generate(ctx, timePrompt(req, e.now()), timeMaxTokens)
	if err != nil {
		return estimate.TimeEstimate{}, err
	}

	var doc timeDoc
	if err := decodeEmbeddedJSON(text, &doc); err != nil {
		return estimate.TimeEstimate{}, err
	}

	estimatedDate, err := time.Parse(time.RFC3339, doc.EstimatedDeliveryDate)
	if err != nil {
		estimatedDate = e.now().AddDate(0, 0, doc.EstimatedDays)
	}

	return estimate.TimeEstimate{
		EstimatedDays: doc.EstimatedDays,
		MinDays:       doc.MinDays,
		MaxDays:       doc.MaxDays,
		Confidence:    doc.Confidence,
		Factors:       doc.Factors,
		EstimatedDate: estimatedDate,
	}, nil
}

// routeDoc is the JSON object the route prompt asks the model for.
type routeDoc struct {
	TransitRoute []struct {
		Step          int    `json:"step"`
		Hub           string `json:"hub"`
		State         string `json:"state"`
		City          string `json:"city"`
		TransportMode string `json:"transportMode"`
		DurationHours int    `json:"durationHours"`
	} `json:"transitRoute"`
	RecommendedVehicle string  `json:"recommendedVehicle"`
	DeliveryArea       string  `json:"deliveryArea"`
	TotalDistanceKm    float64 `json:"totalDistanceKm"`
	TotalTransitHours  int     `json:"totalTransitHours"`
}

// PlanRoute asks the model for a hub-to-hub transit plan.
func (e *RemoteEstimator) PlanRoute(ctx context.Context, req estimate.Request) (estimate.RoutePlan, error) {
	text, err := e.generate(ctx, routePrompt(req), routeMaxTokens)
	if err != nil {
		return estimate.RoutePlan{}, err
	}

	var doc routeDoc
	if err := decodeEmbeddedJSON(text, &doc); err != nil {
		return estimate.RoutePlan{}, err
	}

	legs := make([]estimate.TransitLeg, 0, len(doc.TransitRoute))
	for _, leg := range doc.TransitRoute {
		legs = append(legs, estimate.TransitLeg{
			Step:          leg.Step,
			Hub:           leg.Hub,
			State:         leg.State,
			City:          leg.City,
			TransportMode: leg.TransportMode,
			DurationHours: leg.DurationHours,
		})
	}

	return estimate.RoutePlan{
		Legs:               legs,
		RecommendedVehicle: doc.RecommendedVehicle,
		DeliveryArea:       doc.DeliveryArea,
		TotalDistanceKm:    doc.TotalDistanceKm,
		TotalTransitHours:  doc.TotalTransitHours,
	}, nil
}

// generateRequest is the provider wire format for a completion call.
type generateRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	Temperature     float64 `json:"temperature"`
	TopK            int     `json:"topK"`
	TopP            float64 `json:"topP"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

// generate runs one completion call through the circuit breaker and returns
// the first candidate's text.
func (e *RemoteEstimator) generate(ctx context.Context, prompt string, maxTokens int) (string, error) {
	result, err := e.breaker.Execute(func() (interface{}, error) {
		return e.call(ctx, prompt, maxTokens)
	})
	if err != nil {
		return "", err
	}
	text, ok := result.(string)
	if !ok || text == "" {
		return "", ErrEmptyCompletion
	}
	return text, nil
}

func (e *RemoteEstimator) call(ctx context.Context, prompt string, maxTokens int) (string, error) {
	body, err := json.Marshal(generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
		GenerationConfig: generationConfig{
			Temperature:     0.1,
			TopK:            1,
			TopP:            1,
			MaxOutputTokens: maxTokens,
		},
	})
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s?key=%s", e.baseURL, e.apiKey)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := e.client.Do(httpReq)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("model endpoint returned %d: %s", resp.StatusCode, string(snippet))
	}

	var decoded generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", err
	}
	if len(decoded.Candidates) == 0 || len(decoded.Candidates[0].Content.Parts) == 0 {
		return "", ErrEmptyCompletion
	}
	return decoded.Candidates[0].Content.Parts[0].Text, nil
}

// decodeEmbeddedJSON extracts the outermost JSON object from model text,
// tolerating prose and markdown fences around it.
func decodeEmbeddedJSON(text string, target any) error {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end <= start {
		return fmt.Errorf("no JSON object in model response")
	}
	return json.Unmarshal([]byte(text[start:end+1]), target)
}

func pricingPrompt(req estimate.Request) string {
	var items []string
	for _, item := range req.Items {
		items = append(items, fmt.Sprintf("%s (x%d, %.1fkg)", item.Name, item.Quantity, item.WeightKg))
	}

	return fmt.Sprintf(`You are a pricing engine for an Indian logistics company.
Calculate the shipping cost for this shipment.

ORDER DETAILS:
- Pickup: %s, %s (%s)
- Delivery: %s, %s (%s)
- Items: %s
- Order Type: %s
- Delivery Type: %s
- Priority: %s

Consider distance, chargeable weight (higher of dead and volumetric),
order type surcharges, priority and delivery multipliers, and 18%% GST.

Respond with exactly this JSON object and nothing else:
{"basePrice": number, "weightCharge": number, "volumeCharge": number,
"valueCharge": number, "distanceCharge": number, "orderTypeCharge": number,
"priorityMultiplier": number, "deliveryMultiplier": number,
"subtotal": number, "gst": number, "total": number,
"distanceKm": number, "estimatedHours": number}`,
		req.PickupCity, req.PickupState, req.PickupPincode,
		req.DropCity, req.DropState, req.DropPincode,
		strings.Join(items, ", "),
		req.OrderType, req.DeliveryType, req.Priority)
}

func timePrompt(req estimate.Request, now time.Time) string {
	return fmt.Sprintf(`You are a logistics delivery-time expert.
Estimate the delivery window for this route.

ROUTE DETAILS:
- From: %s, %s (%s)
- To: %s, %s (%s)
- Order Type: %s
- Priority: %s
- Current Time: %s

Respond with exactly this JSON object and nothing else:
{"estimatedDays": number, "minDays": number, "maxDays": number,
"confidence": number, "factors": ["string"],
"estimatedDeliveryDate": "RFC3339 timestamp"}`,
		req.PickupCity, req.PickupState, req.PickupPincode,
		req.DropCity, req.DropState, req.DropPincode,
		req.OrderType, req.Priority, now.Format(time.RFC3339))
}

func routePrompt(req estimate.Request) string {
	return fmt.Sprintf(`You are a logistics route planner for an Indian hub network.
Plan the hub-to-hub transit route for this shipment.

ROUTE DETAILS:
- From: %s, %s (%s)
- To: %s, %s (%s)
- Order Type: %s

Respond with exactly this JSON object and nothing else:
{"transitRoute": [{"step": number, "hub": "string", "state": "string",
"city": "string", "transportMode": "STATE_VEHICLE or LOCAL_DELIVERY",
"durationHours": number}],
"recommendedVehicle": "MINI_TRUCK/TRUCK/TEMPO/CONTAINER",
"deliveryArea": "NORTH/SOUTH/EAST/WEST/CENTRAL",
"totalDistanceKm": number, "totalTransitHours": number}`,
		req.PickupCity, req.PickupState, req.PickupPincode,
		req.DropCity, req.DropState, req.DropPincode,
		req.OrderType)
}
