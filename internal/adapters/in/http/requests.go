package http

import (
	"logistics/internal/core/domain/model/estimate"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/order"
)

// AddressRequest is the wire shape of a pickup or drop address.
type AddressRequest struct {
	Name         string `json:"name" validate:"required"`
	Phone        string `json:"phone" validate:"required"`
	AddressLine1 string `json:"addressLine1" validate:"required"`
	AddressLine2 string `json:"addressLine2"`
	City         string `json:"city" validate:"required"`
	State        string `json:"state" validate:"required"`
	Pincode      string `json:"pincode" validate:"required,len=6,numeric"`
}

func (r AddressRequest) toDomain() (kernel.Address, error) {
	return kernel.NewAddress(
		r.Name, r.Phone, r.AddressLine1, r.AddressLine2, r.City, r.State, r.Pincode)
}

// ItemRequest is one shipment line. Only the name is mandatory; the
// command layer fills defaults for quantity and physical attributes.
type ItemRequest struct {
	Name     string  `json:"name" validate:"required"`
	Quantity int     `json:"quantity" validate:"min=0"`
	WeightKg float64 `json:"weightKg" validate:"min=0"`
	LengthCm float64 `json:"lengthCm" validate:"min=0"`
	WidthCm  float64 `json:"widthCm" validate:"min=0"`
	HeightCm float64 `json:"heightCm" validate:"min=0"`
	Value    float64 `json:"value" validate:"min=0"`
}

func itemsToDomain(reqs []ItemRequest) []order.Item {
	items := make([]order.Item, len(reqs))
	for i, r := range reqs {
		items[i] = order.Item{
			Name:     r.Name,
			Quantity: r.Quantity,
			WeightKg: r.WeightKg,
			Dims: order.Dimensions{
				Length: r.LengthCm,
				Width:  r.WidthCm,
				Height: r.HeightCm,
			},
			Value: r.Value,
		}
	}
	return items
}

// CreateOrderRequest registers a shipment for an existing customer.
type CreateOrderRequest struct {
	CustomerID    string         `json:"customerId" validate:"required,uuid"`
	SellerOrderID string         `json:"sellerOrderId" validate:"required"`
	PickupAddress AddressRequest `json:"pickupAddress" validate:"required"`
	DropAddress   AddressRequest `json:"dropAddress" validate:"required"`
	Items         []ItemRequest  `json:"items" validate:"required,min=1,dive"`
	OrderType     string         `json:"orderType"`
	Priority      string         `json:"priority"`
	DeliveryType  string         `json:"deliveryType"`
	PaymentMode   string         `json:"paymentMode"`
}

// AdvanceStatusRequest moves one order to the named workflow status.
type AdvanceStatusRequest struct {
	Status    string `json:"status" validate:"required"`
	Location  string `json:"location"`
	HandledBy string `json:"handledBy"`
	Remarks   string `json:"remarks"`
}

// BulkStatusRequest moves a batch of orders to the same target status.
type BulkStatusRequest struct {
	OrderIDs  []string `json:"orderIds" validate:"required,min=1,dive,uuid"`
	Status    string   `json:"status" validate:"required"`
	Location  string   `json:"location"`
	HandledBy string   `json:"handledBy"`
	Remarks   string   `json:"remarks"`
}

// EstimateRequest prices a hypothetical shipment without creating it.
type EstimateRequest struct {
	Items []ItemRequest `json:"items" validate:"required,min=1,dive"`

	PickupCity    string `json:"pickupCity" validate:"required"`
	PickupState   string `json:"pickupState" validate:"required"`
	PickupPincode string `json:"pickupPincode" validate:"required,len=6,numeric"`

	DropCity    string `json:"dropCity" validate:"required"`
	DropState   string `json:"dropState" validate:"required"`
	DropPincode string `json:"dropPincode" validate:"required,len=6,numeric"`

	OrderType    string `json:"orderType"`
	DeliveryType string `json:"deliveryType"`
	Priority     string `json:"priority"`
}

func (r EstimateRequest) toDomain() (estimate.Request, error) {
	items, err := order.NormalizeItems(itemsToDomain(r.Items))
	if err != nil {
		return estimate.Request{}, err
	}
	return estimate.Request{
		Items:         items,
		PickupCity:    r.PickupCity,
		PickupState:   r.PickupState,
		PickupPincode: r.PickupPincode,
		DropCity:      r.DropCity,
		DropState:     r.DropState,
		DropPincode:   r.DropPincode,
		OrderType:     order.OrderType(r.OrderType),
		DeliveryType:  order.DeliveryType(r.DeliveryType),
		Priority:      order.Priority(r.Priority),
	}, nil
}

// RegisterHubRequest adds a sorting hub to the network.
type RegisterHubRequest struct {
	Code         string   `json:"code" validate:"required"`
	State        string   `json:"state" validate:"required"`
	City         string   `json:"city" validate:"required"`
	Area         string   `json:"area" validate:"required"`
	MaxOrders    int      `json:"maxOrders" validate:"min=0"`
	ServiceAreas []string `json:"serviceAreas"`
}

// RegisterAgentRequest adds a delivery agent attached to a hub.
type RegisterAgentRequest struct {
	Code      string `json:"code" validate:"required"`
	Name      string `json:"name" validate:"required"`
	Phone     string `json:"phone" validate:"required"`
	HubID     string `json:"hubId" validate:"required,uuid"`
	Area      string `json:"area" validate:"required"`
	MaxOrders int    `json:"maxOrders" validate:"min=0"`
}

// RegisterVehicleRequest adds a line-haul vehicle to the fleet.
type RegisterVehicleRequest struct {
	Code          string   `json:"code" validate:"required"`
	VehicleType   string   `json:"vehicleType" validate:"required"`
	Registration  string   `json:"registration" validate:"required"`
	MaxWeightKg   float64  `json:"maxWeightKg" validate:"min=0"`
	MaxVolumeCbm  float64  `json:"maxVolumeCbm" validate:"min=0"`
	MaxOrders     int      `json:"maxOrders" validate:"min=0"`
	ServiceStates []string `json:"serviceStates"`
}

// RegisterCustomerRequest creates a customer profile.
type RegisterCustomerRequest struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
	Phone string `json:"phone"`
}

// AssignOrdersRequest binds a batch of orders to one agent or vehicle.
type AssignOrdersRequest struct {
	OrderIDs []string `json:"orderIds" validate:"required,min=1,dive,uuid"`
}

func parseUUIDs(raw []string) ([]kernel.UUID, error) {
	ids := make([]kernel.UUID, len(raw))
	for i, s := range raw {
		id, err := kernel.UUIDFromString(s)
		if err != nil {
			return nil, err
		}
		ids[i] = id
	}
	return ids, nil
}
