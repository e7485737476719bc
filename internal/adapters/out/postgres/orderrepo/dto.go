// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order domain aggregate, handling
// the conversion between domain entities and database representations.
package orderrepo

import (
	"encoding/json"
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Addresses, item lines, the workflow trail and the tracking feed are stored
// as jsonb documents; network bindings are nullable foreign keys so an order
// can exist before the resolver has placed it.
type OrderDTO struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	CustomerID    uuid.UUID `gorm:"type:uuid;not null;index"`
	SellerOrderID string    `gorm:"type:varchar(64);not null;uniqueIndex"`
	AWB           string    `gorm:"type:varchar(32);index"`

	OrderType    string `gorm:"type:varchar(32);not null"`
	Priority     string `gorm:"type:varchar(16);not null"`
	DeliveryType string `gorm:"type:varchar(16);not null"`
	PaymentMode  string `gorm:"type:varchar(16);not null"`

	PickupAddress datatypes.JSON `gorm:"type:jsonb;not null"`
	DropAddress   datatypes.JSON `gorm:"type:jsonb;not null"`
	Items         datatypes.JSON `gorm:"type:jsonb;not null"`

	TotalAmount          float64
	ExpectedDeliveryDate time.Time

	Status   string         `gorm:"type:varchar(32);not null;index"`
	History  datatypes.JSON `gorm:"type:jsonb;not null"`
	Tracking datatypes.JSON `gorm:"type:jsonb;not null"`

	OriginHubID      *uuid.UUID `gorm:"type:uuid;index"`
	DestinationHubID *uuid.UUID `gorm:"type:uuid;index"`
	PickupAgentID    *uuid.UUID `gorm:"type:uuid"`
	DeliveryAgentID  *uuid.UUID `gorm:"type:uuid"`
	VehicleID        *uuid.UUID `gorm:"type:uuid"`
	Unassigned       bool       `gorm:"index"`

	ShippedAt   *time.Time
	DeliveredAt *time.Time
	CreatedAt   time.Time
}

// TableName specifies the database table name for order entities.
// Overrides GORM's default naming convention to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// addressDoc is the jsonb shape of a pickup or drop address.
type addressDoc struct {
	Name         string `json:"name"`
	Phone        string `json:"phone"`
	AddressLine1 string `json:"addressLine1"`
	AddressLine2 string `json:"addressLine2,omitempty"`
	City         string `json:"city"`
	State        string `json:"state"`
	Pincode      string `json:"pincode"`
}

// itemDoc is the jsonb shape of one item line.
type itemDoc struct {
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	WeightKg float64 `json:"weightKg"`
	LengthCm float64 `json:"lengthCm"`
	WidthCm  float64 `json:"widthCm"`
	HeightCm float64 `json:"heightCm"`
	Value    float64 `json:"value"`
}

// historyDoc is the jsonb shape of one workflow trail entry. The status is
// stored by its string representation so the document stays readable.
type historyDoc struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Location  string    `json:"location,omitempty"`
	HandledBy string    `json:"handledBy,omitempty"`
	Remarks   string    `json:"remarks,omitempty"`
}

// trackingDoc is the jsonb shape of one tracking feed entry.
type trackingDoc struct {
	Activity  string    `json:"activity"`
	Location  string    `json:"location,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// fromDomain converts an order domain aggregate to its database
// representation, serializing the document-valued fields to jsonb.
func fromDomain(aggregate *order.Order) (OrderDTO, error) {
	pickup, err := marshalAddress(aggregate.Pickup())
	if err != nil {
		return OrderDTO{}, err
	}
	drop, err := marshalAddress(aggregate.Drop())
	if err != nil {
		return OrderDTO{}, err
	}

	items := make([]itemDoc, 0, len(aggregate.Items()))
	for _, item := range aggregate.Items() {
		items = append(items, itemDoc{
			Name:     item.Name,
			Quantity: item.Quantity,
			WeightKg: item.WeightKg,
			LengthCm: item.Dims.Length,
			WidthCm:  item.Dims.Width,
			HeightCm: item.Dims.Height,
			Value:    item.Value,
		})
	}
	itemsJSON, err := json.Marshal(items)
	if err != nil {
		return OrderDTO{}, err
	}

	history := make([]historyDoc, 0, len(aggregate.History()))
	for _, entry := range aggregate.History() {
		history = append(history, historyDoc{
			Status:    entry.Status.String(),
			Timestamp: entry.Timestamp,
			Location:  entry.Location,
			HandledBy: entry.HandledBy,
			Remarks:   entry.Remarks,
		})
	}
	historyJSON, err := json.Marshal(history)
	if err != nil {
		return OrderDTO{}, err
	}

	tracking := make([]trackingDoc, 0, len(aggregate.Tracking()))
	for _, entry := range aggregate.Tracking() {
		tracking = append(tracking, trackingDoc{
			Activity:  entry.Activity,
			Location:  entry.Location,
			Timestamp: entry.Timestamp,
		})
	}
	trackingJSON, err := json.Marshal(tracking)
	if err != nil {
		return OrderDTO{}, err
	}

	return OrderDTO{
		ID:                   aggregate.ID().Bytes(),
		CustomerID:           aggregate.CustomerID().Bytes(),
		SellerOrderID:        aggregate.SellerOrderID(),
		AWB:                  aggregate.AWB(),
		OrderType:            string(aggregate.OrderType()),
		Priority:             string(aggregate.Priority()),
		DeliveryType:         string(aggregate.DeliveryType()),
		PaymentMode:          string(aggregate.PaymentMode()),
		PickupAddress:        pickup,
		DropAddress:          drop,
		Items:                itemsJSON,
		TotalAmount:          aggregate.TotalAmount(),
		ExpectedDeliveryDate: aggregate.ExpectedDeliveryDate(),
		Status:               aggregate.Status().String(),
		History:              historyJSON,
		Tracking:             trackingJSON,
		OriginHubID:          optionalID(aggregate.OriginHub()),
		DestinationHubID:     optionalID(aggregate.DestinationHub()),
		PickupAgentID:        optionalID(aggregate.PickupAgent()),
		DeliveryAgentID:      optionalID(aggregate.DeliveryAgent()),
		VehicleID:            optionalID(aggregate.Vehicle()),
		Unassigned:           aggregate.Unassigned(),
		ShippedAt:            aggregate.ShippedAt(),
		DeliveredAt:          aggregate.DeliveredAt(),
		CreatedAt:            aggregate.CreatedAt(),
	}, nil
}

// toDomain converts a database DTO to an order domain aggregate.
// Reconstructs the complete aggregate including the workflow trail and
// network bindings using RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}

	status, err := order.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	pickup, err := unmarshalAddress(dto.PickupAddress)
	if err != nil {
		return nil, err
	}
	drop, err := unmarshalAddress(dto.DropAddress)
	if err != nil {
		return nil, err
	}

	var itemDocs []itemDoc
	if err := json.Unmarshal(dto.Items, &itemDocs); err != nil {
		return nil, err
	}
	items := make([]order.Item, 0, len(itemDocs))
	for _, doc := range itemDocs {
		items = append(items, order.Item{
			Name:     doc.Name,
			Quantity: doc.Quantity,
			WeightKg: doc.WeightKg,
			Dims: order.Dimensions{
				Length: doc.LengthCm,
				Width:  doc.WidthCm,
				Height: doc.HeightCm,
			},
			Value: doc.Value,
		})
	}

	var historyDocs []historyDoc
	if err := json.Unmarshal(dto.History, &historyDocs); err != nil {
		return nil, err
	}
	history := make([]order.StatusHistoryEntry, 0, len(historyDocs))
	for _, doc := range historyDocs {
		entryStatus, statusErr := order.ParseStatus(doc.Status)
		if statusErr != nil {
			return nil, statusErr
		}
		history = append(history, order.StatusHistoryEntry{
			Status:    entryStatus,
			Timestamp: doc.Timestamp,
			Location:  doc.Location,
			HandledBy: doc.HandledBy,
			Remarks:   doc.Remarks,
		})
	}

	var trackingDocs []trackingDoc
	if err := json.Unmarshal(dto.Tracking, &trackingDocs); err != nil {
		return nil, err
	}
	tracking := make([]order.TrackingEntry, 0, len(trackingDocs))
	for _, doc := range trackingDocs {
		tracking = append(tracking, order.TrackingEntry{
			Activity:  doc.Activity,
			Location:  doc.Location,
			Timestamp: doc.Timestamp,
		})
	}

	originHub, err := optionalKernelID(dto.OriginHubID)
	if err != nil {
		return nil, err
	}
	destinationHub, err := optionalKernelID(dto.DestinationHubID)
	if err != nil {
		return nil, err
	}
	pickupAgent, err := optionalKernelID(dto.PickupAgentID)
	if err != nil {
		return nil, err
	}
	deliveryAgent, err := optionalKernelID(dto.DeliveryAgentID)
	if err != nil {
		return nil, err
	}
	vehicleID, err := optionalKernelID(dto.VehicleID)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(order.Snapshot{
		ID:                   id,
		CustomerID:           customerID,
		SellerOrderID:        dto.SellerOrderID,
		AWB:                  dto.AWB,
		OrderType:            order.OrderType(dto.OrderType),
		Priority:             order.Priority(dto.Priority),
		DeliveryType:         order.DeliveryType(dto.DeliveryType),
		PaymentMode:          order.PaymentMode(dto.PaymentMode),
		Pickup:               pickup,
		Drop:                 drop,
		Items:                items,
		TotalAmount:          dto.TotalAmount,
		ExpectedDeliveryDate: dto.ExpectedDeliveryDate,
		Status:               status,
		History:              history,
		Tracking:             tracking,
		OriginHubID:          originHub,
		DestinationHubID:     destinationHub,
		PickupAgentID:        pickupAgent,
		DeliveryAgentID:      deliveryAgent,
		VehicleID:            vehicleID,
		Unassigned:           dto.Unassigned,
		ShippedAt:            dto.ShippedAt,
		DeliveredAt:          dto.DeliveredAt,
		CreatedAt:            dto.CreatedAt,
	})
}

func marshalAddress(addr kernel.Address) (datatypes.JSON, error) {
	return json.Marshal(addressDoc{
		Name:         addr.Name(),
		Phone:        addr.Phone(),
		AddressLine1: addr.AddressLine1(),
		AddressLine2: addr.AddressLine2(),
		City:         addr.City(),
		State:        addr.State(),
		Pincode:      addr.Pincode(),
	})
}

func unmarshalAddress(raw datatypes.JSON) (kernel.Address, error) {
	var doc addressDoc
	if err := json.Unmarshal(raw, &doc); err != nil {
		return kernel.Address{}, err
	}
	return kernel.NewAddress(
		doc.Name, doc.Phone, doc.AddressLine1, doc.AddressLine2,
		doc.City, doc.State, doc.Pincode,
	)
}

func optionalID(id *kernel.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	raw := id.Bytes()
	return &raw
}

func optionalKernelID(id *uuid.UUID) (*kernel.UUID, error) {
	if id == nil {
		return nil, nil
	}
	converted, err := kernel.UUIDFromBytes((*id)[:])
	if err != nil {
		return nil, err
	}
	return &converted, nil
}
