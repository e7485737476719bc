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

// TrackOrderQueryHandler reads the tracking projection straight from the
// orders table.
type TrackOrderQueryHandler struct {
	db *gorm.DB
}

// NewTrackOrderQueryHandler creates a handler for tracking queries.
// Requires a GORM database connection for query execution.
func NewTrackOrderQueryHandler(db *gorm.DB) TrackOrderQueryHandler {
	return TrackOrderQueryHandler{db: db}
}

// Handle executes the query. The current location is the location of the
// most recent history entry.
func (h TrackOrderQueryHandler) Handle(
	ctx context.Context,
	query TrackOrderQuery,
) (TrackOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return TrackOrderQueryResponse{}, err
	}

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			awb,
			seller_order_id,
			status,
			expected_delivery_date,
			history,
			tracking
		FROM orders
		WHERE id = ?
	`, query.OrderID().Bytes()).Row()

	var resp TrackOrderQueryResponse
	var id uuid.UUID
	var status string
	var history, tracking []byte

	err := row.Scan(
		&id,
		&resp.AWB,
		&resp.SellerOrderID,
		&status,
		&resp.ExpectedDelivery,
		&history,
		&tracking,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return TrackOrderQueryResponse{}, errs.NewObjectNotFoundError("orderId", query.OrderID().String())
	}
	if err != nil {
		return TrackOrderQueryResponse{}, err
	}

	resp.OrderID = id.String()
	resp.Status = status
	if parsed, parseErr := order.ParseStatus(status); parseErr == nil {
		resp.Progress = parsed.Progress()
	}

	if len(tracking) > 0 {
		if err := json.Unmarshal(tracking, &resp.Tracking); err != nil {
			return TrackOrderQueryResponse{}, err
		}
	}

	var entries []StatusHistoryItem
	if len(history) > 0 {
		if err := json.Unmarshal(history, &entries); err != nil {
			return TrackOrderQueryResponse{}, err
		}
	}
	if len(entries) > 0 {
		resp.CurrentLocation = entries[len(entries)-1].Location
	}

	return resp, nil
}
