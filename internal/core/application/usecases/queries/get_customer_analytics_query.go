package queries

import (
	"errors"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/guard"
)

var ErrGetCustomerAnalyticsQueryIsNotConstructed = errors.New(
	"GetCustomerAnalyticsQuery must be created via NewGetCustomerAnalyticsQuery constructor",
)

// Loyalty tiers derived from the customer's lifetime spend.
const (
	LoyaltyTierPlatinum = "PLATINUM"
	LoyaltyTierGold     = "GOLD"
	LoyaltyTierSilver   = "SILVER"
	LoyaltyTierBronze   = "BRONZE"
)

// GetCustomerAnalyticsQuery retrieves a customer's profile together with
// aggregates over their order history: order counts, spend and the loyalty
// tier the spend places them in.
type GetCustomerAnalyticsQuery struct {
	customerID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetCustomerAnalyticsQuery creates the query for one customer.
func NewGetCustomerAnalyticsQuery(customerID kernel.UUID) (GetCustomerAnalyticsQuery, error) {
	if err := customerID.Validate(); err != nil {
		return GetCustomerAnalyticsQuery{}, err
	}
	return GetCustomerAnalyticsQuery{
		customerID: customerID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetCustomerAnalyticsQuery) Validate() error {
	return q.guard.Validate(ErrGetCustomerAnalyticsQueryIsNotConstructed)
}

func (q GetCustomerAnalyticsQuery) CustomerID() kernel.UUID { return q.customerID }

// GetCustomerAnalyticsQueryResponse is the customer analytics read model.
type GetCustomerAnalyticsQueryResponse struct {
	CustomerID string
	Name       string
	Email      string

	TotalOrders       int
	TotalSpend        float64
	AverageOrderValue float64
	DeliveredOrders   int
	CancelledOrders   int
	LoyaltyTier       string
}
