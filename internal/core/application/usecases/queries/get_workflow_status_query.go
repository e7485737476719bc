// Package queries contains read operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS architecture.
// Queries return optimized read models for specific use cases.
package queries

import (
	"errors"
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/guard"
)

var ErrGetWorkflowStatusQueryIsNotConstructed = errors.New(
	"GetWorkflowStatusQuery must be created via NewGetWorkflowStatusQuery constructor",
)

// GetWorkflowStatusQuery retrieves the workflow snapshot of a single order:
// its current status, network bindings and the full status history.
type GetWorkflowStatusQuery struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetWorkflowStatusQuery creates the query for one order.
func NewGetWorkflowStatusQuery(orderID kernel.UUID) (GetWorkflowStatusQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetWorkflowStatusQuery{}, err
	}
	return GetWorkflowStatusQuery{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetWorkflowStatusQuery) Validate() error {
	return q.guard.Validate(ErrGetWorkflowStatusQueryIsNotConstructed)
}

func (q GetWorkflowStatusQuery) OrderID() kernel.UUID { return q.orderID }

// StatusHistoryItem is one audit-trail entry in the read model.
type StatusHistoryItem struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Location  string    `json:"location"`
	HandledBy string    `json:"handledBy"`
	Remarks   string    `json:"remarks"`
}

// GetWorkflowStatusQueryResponse is the workflow snapshot read model.
// Network binding fields are nil until the resolver has bound them.
type GetWorkflowStatusQueryResponse struct {
	OrderID       string
	SellerOrderID string
	AWB           string
	Status        string
	Progress      int
	Unassigned    bool

	OriginHubID      *string
	DestinationHubID *string
	PickupAgentID    *string
	DeliveryAgentID  *string
	VehicleID        *string

	ExpectedDeliveryDate time.Time
	History              []StatusHistoryItem
	CreatedAt            time.Time
}
