package queries

import (
	"errors"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/guard"
)

var ErrGetHubDashboardQueryIsNotConstructed = errors.New(
	"GetHubDashboardQuery must be created via NewGetHubDashboardQuery constructor",
)

// GetHubDashboardQuery retrieves a hub's profile together with its order
// workload: what is waiting to leave, what is waiting to be handed to an
// agent and what is out on the street.
type GetHubDashboardQuery struct {
	hubID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetHubDashboardQuery creates the query for one hub.
func NewGetHubDashboardQuery(hubID kernel.UUID) (GetHubDashboardQuery, error) {
	if err := hubID.Validate(); err != nil {
		return GetHubDashboardQuery{}, err
	}
	return GetHubDashboardQuery{
		hubID: hubID,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetHubDashboardQuery) Validate() error {
	return q.guard.Validate(ErrGetHubDashboardQueryIsNotConstructed)
}

func (q GetHubDashboardQuery) HubID() kernel.UUID { return q.hubID }

// GetHubDashboardQueryResponse is the hub workload read model.
type GetHubDashboardQueryResponse struct {
	HubID       string
	Code        string
	State       string
	City        string
	Area        string
	MaxOrders   int
	CurrentLoad int
	Active      bool

	PendingDispatch int
	PendingDelivery int
	OutForDelivery  int
	TotalHandled    int
}
