package queries

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"logistics/internal/core/domain/model/order"
	"logistics/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetWorkflowStatusQueryHandler reads the workflow snapshot straight from
// the orders table. Uses direct SQL for optimal read performance in the
// CQRS pattern.
type GetWorkflowStatusQueryHandler struct {
	db *gorm.DB
}

// NewGetWorkflowStatusQueryHandler creates a handler for workflow queries.
// Requires a GORM database connection for query execution.
func NewGetWorkflowStatusQueryHandler(db *gorm.DB) GetWorkflowStatusQueryHandler {
	return GetWorkflowStatusQueryHandler{db: db}
}

// Handle executes the query. Returns errs.ObjectNotFoundError when the
// order does not exist.
func (h GetWorkflowStatusQueryHandler) Handle(
	ctx context.Context,
	query GetWorkflowStatusQuery,
) (GetWorkflowStatusQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetWorkflowStatusQueryResponse{}, err
	}

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			seller_order_id,
			awb,
			status,
			unassigned,
			origin_hub_id,
			destination_hub_id,
			pickup_agent_id,
			delivery_agent_id,
			vehicle_id,
			expected_delivery_date,
			history,
			created_at
		FROM orders
		WHERE id = ?
	`, query.OrderID().Bytes()).Row()

	var resp GetWorkflowStatusQueryResponse
	var id uuid.UUID
	var originHub, destinationHub, pickupAgent, deliveryAgent, vehicle uuid.NullUUID
	var status string
	var history []byte

	err := row.Scan(
		&id,
		&resp.SellerOrderID,
		&resp.AWB,
		&status,
		&resp.Unassigned,
		&originHub,
		&destinationHub,
		&pickupAgent,
		&deliveryAgent,
		&vehicle,
		&resp.ExpectedDeliveryDate,
		&history,
		&resp.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return GetWorkflowStatusQueryResponse{}, errs.NewObjectNotFoundError("orderId", query.OrderID().String())
	}
	if err != nil {
		return GetWorkflowStatusQueryResponse{}, err
	}

	resp.OrderID = id.String()
	resp.Status = status
	if parsed, parseErr := order.ParseStatus(status); parseErr == nil {
		resp.Progress = parsed.Progress()
	}
	resp.OriginHubID = nullableID(originHub)
	resp.DestinationHubID = nullableID(destinationHub)
	resp.PickupAgentID = nullableID(pickupAgent)
	resp.DeliveryAgentID = nullableID(deliveryAgent)
	resp.VehicleID = nullableID(vehicle)

	if len(history) > 0 {
		if err := json.Unmarshal(history, &resp.History); err != nil {
			return GetWorkflowStatusQueryResponse{}, err
		}
	}

	return resp, nil
}

func nullableID(id uuid.NullUUID) *string {
	if !id.Valid {
		return nil
	}
	s := id.UUID.String()
	return &s
}
