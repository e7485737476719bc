package http

import (
	"time"

	"logistics/internal/core/application/usecases/commands"
	"logistics/internal/core/application/usecases/queries"
	"logistics/internal/core/domain/model/estimate"
)

// Error is the uniform error envelope for every non-2xx response.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// IDResponse carries the identifier of a newly registered resource.
type IDResponse struct {
	ID string `json:"id"`
}

// PriceBreakdownResponse itemizes a pricing run in rupees.
type PriceBreakdownResponse struct {
	BasePrice      float64 `json:"basePrice"`
	WeightCharge   float64 `json:"weightCharge"`
	VolumeCharge   float64 `json:"volumeCharge"`
	ValueCharge    float64 `json:"valueCharge"`
	DistanceCharge float64 `json:"distanceCharge"`

	OrderTypeCharge    float64 `json:"orderTypeCharge"`
	PriorityMultiplier float64 `json:"priorityMultiplier"`
	DeliveryMultiplier float64 `json:"deliveryMultiplier"`

	Subtotal float64 `json:"subtotal"`
	GST      float64 `json:"gst"`
	Total    float64 `json:"total"`

	DistanceKm        float64   `json:"distanceKm"`
	EstimatedHours    int       `json:"estimatedHours"`
	EstimatedDelivery time.Time `json:"estimatedDelivery"`
}

func priceBreakdownResponse(p estimate.PriceBreakdown) PriceBreakdownResponse {
	return PriceBreakdownResponse{
		BasePrice:          p.BasePrice,
		WeightCharge:       p.WeightCharge,
		VolumeCharge:       p.VolumeCharge,
		ValueCharge:        p.ValueCharge,
		DistanceCharge:     p.DistanceCharge,
		OrderTypeCharge:    p.OrderTypeCharge,
		PriorityMultiplier: p.PriorityMultiplier,
		DeliveryMultiplier: p.DeliveryMultiplier,
		Subtotal:           p.Subtotal,
		GST:                p.GST,
		Total:              p.Total,
		DistanceKm:         p.DistanceKm,
		EstimatedHours:     p.EstimatedHours,
		EstimatedDelivery:  p.EstimatedDelivery,
	}
}

// TimeEstimateResponse is the delivery window projection.
type TimeEstimateResponse struct {
	EstimatedDays int       `json:"estimatedDays"`
	MinDays       int       `json:"minDays"`
	MaxDays       int       `json:"maxDays"`
	Confidence    int       `json:"confidence"`
	Factors       []string  `json:"factors"`
	EstimatedDate time.Time `json:"estimatedDate"`
}

func timeEstimateResponse(t estimate.TimeEstimate) TimeEstimateResponse {
	return TimeEstimateResponse{
		EstimatedDays: t.EstimatedDays,
		MinDays:       t.MinDays,
		MaxDays:       t.MaxDays,
		Confidence:    t.Confidence,
		Factors:       t.Factors,
		EstimatedDate: t.EstimatedDate,
	}
}

// TransitLegResponse is one hop of a planned route.
type TransitLegResponse struct {
	Step          int    `json:"step"`
	Hub           string `json:"hub"`
	State         string `json:"state"`
	City          string `json:"city"`
	TransportMode string `json:"transportMode"`
	DurationHours int    `json:"durationHours"`
}

// RoutePlanResponse is the planned hub-to-hub route for a shipment.
type RoutePlanResponse struct {
	Legs               []TransitLegResponse `json:"legs"`
	RecommendedVehicle string               `json:"recommendedVehicle"`
	DeliveryArea       string               `json:"deliveryArea"`
	TotalDistanceKm    float64              `json:"totalDistanceKm"`
	TotalTransitHours  int                  `json:"totalTransitHours"`
}

func routePlanResponse(r estimate.RoutePlan) RoutePlanResponse {
	legs := make([]TransitLegResponse, len(r.Legs))
	for i, leg := range r.Legs {
		legs[i] = TransitLegResponse{
			Step:          leg.Step,
			Hub:           leg.Hub,
			State:         leg.State,
			City:          leg.City,
			TransportMode: leg.TransportMode,
			DurationHours: leg.DurationHours,
		}
	}
	return RoutePlanResponse{
		Legs:               legs,
		RecommendedVehicle: r.RecommendedVehicle,
		DeliveryArea:       r.DeliveryArea,
		TotalDistanceKm:    r.TotalDistanceKm,
		TotalTransitHours:  r.TotalTransitHours,
	}
}

// CreateOrderResponse is returned on successful order registration.
type CreateOrderResponse struct {
	OrderID       string `json:"orderId"`
	SellerOrderID string `json:"sellerOrderId"`
	AWB           string `json:"awb"`
	Status        string `json:"status"`
	Unassigned    bool   `json:"unassigned"`

	Pricing PriceBreakdownResponse `json:"pricing"`
	Time    TimeEstimateResponse   `json:"timeEstimate"`
	Route   RoutePlanResponse      `json:"route"`
}

func createOrderResponse(r commands.CreateOrderResult) CreateOrderResponse {
	return CreateOrderResponse{
		OrderID:       r.OrderID.String(),
		SellerOrderID: r.SellerOrderID,
		AWB:           r.AWB,
		Status:        r.Status.String(),
		Unassigned:    r.Unassigned,
		Pricing:       priceBreakdownResponse(r.Pricing),
		Time:          timeEstimateResponse(r.Time),
		Route:         routePlanResponse(r.Route),
	}
}

// EstimateResponse bundles the three estimator projections for a
// shipment that has not been created yet.
type EstimateResponse struct {
	Pricing PriceBreakdownResponse `json:"pricing"`
	Time    TimeEstimateResponse   `json:"timeEstimate"`
	Route   RoutePlanResponse      `json:"route"`
}

// AdvanceStatusResponse reports the outcome of a single transition.
type AdvanceStatusResponse struct {
	Status   string `json:"status"`
	Progress int    `json:"progress"`
	Changed  bool   `json:"changed"`
}

// BulkItemResponse is one order's outcome inside a batch transition.
type BulkItemResponse struct {
	OrderID string `json:"orderId"`
	Changed bool   `json:"changed"`
	Reason  string `json:"reason,omitempty"`
}

// BulkStatusResponse summarizes a batch transition. The endpoint always
// answers 200; per-order failures live in the results list.
type BulkStatusResponse struct {
	Successful int                `json:"successful"`
	Failed     int                `json:"failed"`
	Results    []BulkItemResponse `json:"results"`
}

func bulkStatusResponse(r commands.BulkAdvanceStatusResult) BulkStatusResponse {
	results := make([]BulkItemResponse, len(r.Results))
	for i, item := range r.Results {
		results[i] = BulkItemResponse{
			OrderID: item.OrderID.String(),
			Changed: item.Changed,
			Reason:  item.Reason,
		}
	}
	return BulkStatusResponse{
		Successful: r.Successful,
		Failed:     r.Failed,
		Results:    results,
	}
}

// AssignOrdersResponse reports how many orders an assignment touched.
type AssignOrdersResponse struct {
	Assigned int `json:"assigned"`
}

// WorkflowStatusResponse is the workflow snapshot of one order.
type WorkflowStatusResponse struct {
	OrderID       string `json:"orderId"`
	SellerOrderID string `json:"sellerOrderId"`
	AWB           string `json:"awb"`
	Status        string `json:"status"`
	Progress      int    `json:"progress"`
	Unassigned    bool   `json:"unassigned"`

	OriginHubID      *string `json:"originHubId"`
	DestinationHubID *string `json:"destinationHubId"`
	PickupAgentID    *string `json:"pickupAgentId"`
	DeliveryAgentID  *string `json:"deliveryAgentId"`
	VehicleID        *string `json:"vehicleId"`

	ExpectedDeliveryDate time.Time                   `json:"expectedDeliveryDate"`
	History              []queries.StatusHistoryItem `json:"history"`
	CreatedAt            time.Time                   `json:"createdAt"`
}

func workflowStatusResponse(r queries.GetWorkflowStatusQueryResponse) WorkflowStatusResponse {
	return WorkflowStatusResponse{
		OrderID:              r.OrderID,
		SellerOrderID:        r.SellerOrderID,
		AWB:                  r.AWB,
		Status:               r.Status,
		Progress:             r.Progress,
		Unassigned:           r.Unassigned,
		OriginHubID:          r.OriginHubID,
		DestinationHubID:     r.DestinationHubID,
		PickupAgentID:        r.PickupAgentID,
		DeliveryAgentID:      r.DeliveryAgentID,
		VehicleID:            r.VehicleID,
		ExpectedDeliveryDate: r.ExpectedDeliveryDate,
		History:              r.History,
		CreatedAt:            r.CreatedAt,
	}
}

// TrackOrderResponse is the customer-facing tracking projection.
type TrackOrderResponse struct {
	OrderID          string                 `json:"orderId"`
	AWB              string                 `json:"awb"`
	SellerOrderID    string                 `json:"sellerOrderId"`
	Status           string                 `json:"status"`
	Progress         int                    `json:"progress"`
	CurrentLocation  string                 `json:"currentLocation"`
	ExpectedDelivery time.Time              `json:"expectedDelivery"`
	Tracking         []queries.TrackingItem `json:"tracking"`
}

func trackOrderResponse(r queries.TrackOrderQueryResponse) TrackOrderResponse {
	return TrackOrderResponse{
		OrderID:          r.OrderID,
		AWB:              r.AWB,
		SellerOrderID:    r.SellerOrderID,
		Status:           r.Status,
		Progress:         r.Progress,
		CurrentLocation:  r.CurrentLocation,
		ExpectedDelivery: r.ExpectedDelivery,
		Tracking:         r.Tracking,
	}
}

// HubDashboardResponse is the hub profile plus live workload counters.
type HubDashboardResponse struct {
	HubID       string `json:"hubId"`
	Code        string `json:"code"`
	State       string `json:"state"`
	City        string `json:"city"`
	Area        string `json:"area"`
	MaxOrders   int    `json:"maxOrders"`
	CurrentLoad int    `json:"currentLoad"`
	Active      bool   `json:"active"`

	PendingDispatch int `json:"pendingDispatch"`
	PendingDelivery int `json:"pendingDelivery"`
	OutForDelivery  int `json:"outForDelivery"`
	TotalHandled    int `json:"totalHandled"`
}

func hubDashboardResponse(r queries.GetHubDashboardQueryResponse) HubDashboardResponse {
	return HubDashboardResponse{
		HubID:           r.HubID,
		Code:            r.Code,
		State:           r.State,
		City:            r.City,
		Area:            r.Area,
		MaxOrders:       r.MaxOrders,
		CurrentLoad:     r.CurrentLoad,
		Active:          r.Active,
		PendingDispatch: r.PendingDispatch,
		PendingDelivery: r.PendingDelivery,
		OutForDelivery:  r.OutForDelivery,
		TotalHandled:    r.TotalHandled,
	}
}

// CustomerAnalyticsResponse is the per-customer spend and loyalty rollup.
type CustomerAnalyticsResponse struct {
	CustomerID string `json:"customerId"`
	Name       string `json:"name"`
	Email      string `json:"email"`

	TotalOrders       int     `json:"totalOrders"`
	TotalSpend        float64 `json:"totalSpend"`
	AverageOrderValue float64 `json:"averageOrderValue"`
	DeliveredOrders   int     `json:"deliveredOrders"`
	CancelledOrders   int     `json:"cancelledOrders"`
	LoyaltyTier       string  `json:"loyaltyTier"`
}

func customerAnalyticsResponse(r queries.GetCustomerAnalyticsQueryResponse) CustomerAnalyticsResponse {
	return CustomerAnalyticsResponse{
		CustomerID:        r.CustomerID,
		Name:              r.Name,
		Email:             r.Email,
		TotalOrders:       r.TotalOrders,
		TotalSpend:        r.TotalSpend,
		AverageOrderValue: r.AverageOrderValue,
		DeliveredOrders:   r.DeliveredOrders,
		CancelledOrders:   r.CancelledOrders,
		LoyaltyTier:       r.LoyaltyTier,
	}
}
