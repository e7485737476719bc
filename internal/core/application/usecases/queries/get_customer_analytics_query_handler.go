package queries

import (
	"context"
	"database/sql"
	"errors"

	"logistics/internal/core/domain/model/order"
	"logistics/internal/pkg/errs"

	"gorm.io/gorm"
)

// GetCustomerAnalyticsQueryHandler reads a customer's profile and
// aggregates spend and outcome counters over their orders.
type GetCustomerAnalyticsQueryHandler struct {
	db *gorm.DB
}

// NewGetCustomerAnalyticsQueryHandler creates a handler for customer
// analytics. Requires a GORM database connection for query execution.
func NewGetCustomerAnalyticsQueryHandler(db *gorm.DB) GetCustomerAnalyticsQueryHandler {
	return GetCustomerAnalyticsQueryHandler{db: db}
}

// Handle executes the query. Returns errs.ObjectNotFoundError when the
// customer does not exist.
func (h GetCustomerAnalyticsQueryHandler) Handle(
	ctx context.Context,
	query GetCustomerAnalyticsQuery,
) (GetCustomerAnalyticsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetCustomerAnalyticsQueryResponse{}, err
	}

	customerID := query.CustomerID().Bytes()

	var resp GetCustomerAnalyticsQueryResponse
	row := h.db.WithContext(ctx).Raw(`
		SELECT name, email
		FROM customers
		WHERE id = ?
	`, customerID).Row()

	err := row.Scan(&resp.Name, &resp.Email)
	if errors.Is(err, sql.ErrNoRows) {
		return GetCustomerAnalyticsQueryResponse{},
			errs.NewObjectNotFoundError("customerId", query.CustomerID().String())
	}
	if err != nil {
		return GetCustomerAnalyticsQueryResponse{}, err
	}
	resp.CustomerID = query.CustomerID().String()

	row = h.db.WithContext(ctx).Raw(`
		SELECT
			COUNT(*),
			COALESCE(SUM(total_amount), 0),
			COUNT(*) FILTER (WHERE status = ?),
			COUNT(*) FILTER (WHERE status = ?)
		FROM orders
		WHERE customer_id = ?
	`,
		order.Delivered.String(),
		order.Cancelled.String(),
		customerID,
	).Row()

	if err := row.Scan(
		&resp.TotalOrders,
		&resp.TotalSpend,
		&resp.DeliveredOrders,
		&resp.CancelledOrders,
	); err != nil {
		return GetCustomerAnalyticsQueryResponse{}, err
	}

	if resp.TotalOrders > 0 {
		resp.AverageOrderValue = resp.TotalSpend / float64(resp.TotalOrders)
	}
	resp.LoyaltyTier = loyaltyTierForSpend(resp.TotalSpend)

	return resp, nil
}

func loyaltyTierForSpend(spend float64) string {
	switch {
	case spend >= 50000:
		return LoyaltyTierPlatinum
	case spend >= 20000:
		return LoyaltyTierGold
	case spend >= 5000:
		return LoyaltyTierSilver
	default:
		return LoyaltyTierBronze
	}
}
