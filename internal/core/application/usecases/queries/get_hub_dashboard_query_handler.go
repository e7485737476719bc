package queries

import (
	"context"
	"database/sql"
	"errors"

	"logistics/internal/core/domain/model/order"
	"logistics/internal/pkg/errs"

	"gorm.io/gorm"
)

// GetHubDashboardQueryHandler reads a hub's profile and aggregates its
// order workload in a single pass over the orders table.
type GetHubDashboardQueryHandler struct {
	db *gorm.DB
}

// NewGetHubDashboardQueryHandler creates a handler for hub dashboards.
// Requires a GORM database connection for query execution.
func NewGetHubDashboardQueryHandler(db *gorm.DB) GetHubDashboardQueryHandler {
	return GetHubDashboardQueryHandler{db: db}
}

// Handle executes the query. Returns errs.ObjectNotFoundError when the hub
// does not exist.
func (h GetHubDashboardQueryHandler) Handle(
	ctx context.Context,
	query GetHubDashboardQuery,
) (GetHubDashboardQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetHubDashboardQueryResponse{}, err
	}

	hubID := query.HubID().Bytes()

	var resp GetHubDashboardQueryResponse
	row := h.db.WithContext(ctx).Raw(`
		SELECT code, state, city, area, max_orders, current_load, active
		FROM hubs
		WHERE id = ?
	`, hubID).Row()

	err := row.Scan(
		&resp.Code,
		&resp.State,
		&resp.City,
		&resp.Area,
		&resp.MaxOrders,
		&resp.CurrentLoad,
		&resp.Active,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return GetHubDashboardQueryResponse{}, errs.NewObjectNotFoundError("hubId", query.HubID().String())
	}
	if err != nil {
		return GetHubDashboardQueryResponse{}, err
	}
	resp.HubID = query.HubID().String()

	row = h.db.WithContext(ctx).Raw(`
		SELECT
			COUNT(*) FILTER (WHERE origin_hub_id = ? AND status = ?),
			COUNT(*) FILTER (WHERE destination_hub_id = ? AND status = ?),
			COUNT(*) FILTER (WHERE destination_hub_id = ? AND status = ?),
			COUNT(*) FILTER (WHERE origin_hub_id = ? OR destination_hub_id = ?)
		FROM orders
	`,
		hubID, order.AtOriginHub.String(),
		hubID, order.AtDestinationHub.String(),
		hubID, order.OutForDelivery.String(),
		hubID, hubID,
	).Row()

	if err := row.Scan(
		&resp.PendingDispatch,
		&resp.PendingDelivery,
		&resp.OutForDelivery,
		&resp.TotalHandled,
	); err != nil {
		return GetHubDashboardQueryResponse{}, err
	}

	return resp, nil
}
