package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"logistics/internal/core/domain/model/estimate"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/order"
	"logistics/internal/core/domain/services"
	"logistics/internal/core/ports"
	"logistics/internal/pkg/errs"
)

// maxSellerOrderIDAttempts bounds the regeneration loop for generated
// seller references that collide in storage.
const maxSellerOrderIDAttempts = 3

// CreateOrderResult reports the persisted order together with the
// estimates produced while pricing it.
type CreateOrderResult struct {
	OrderID       kernel.UUID
	SellerOrderID string
	AWB           string
	Status        order.Status
	Unassigned    bool

	Pricing estimate.PriceBreakdown
	Time    estimate.TimeEstimate
	Route   estimate.RoutePlan
}

// CreateOrderCommandHandler processes order registration: it prices the
// shipment, mints the AWB, binds network resources where it can and
// persists the aggregate. Network resolution is best effort: when no hub,
// agent or vehicle can be bound the order is stored unassigned and the
// retry job picks it up later.
type CreateOrderCommandHandler struct {
	uowFactory UoWFactory
	estimator  services.Estimator
	resolver   services.AssignmentResolver
	notifier   ports.Notifier
	payments   ports.PaymentProvider
	logger     *slog.Logger
	now        func() time.Time
}

// NewCreateOrderCommandHandler creates the handler with its dependencies.
// The payment provider may be nil; payment collection is then skipped.
func NewCreateOrderCommandHandler(
	uowFactory UoWFactory,
	estimator services.Estimator,
	resolver services.AssignmentResolver,
	notifier ports.Notifier,
	payments ports.PaymentProvider,
	logger *slog.Logger,
) (*CreateOrderCommandHandler, error) {
	if uowFactory == nil {
		return nil, errs.NewValueIsRequiredError("uowFactory")
	}
	if estimator == nil {
		return nil, errs.NewValueIsRequiredError("estimator")
	}
	if notifier == nil {
		return nil, errs.NewValueIsRequiredError("notifier")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &CreateOrderCommandHandler{
		uowFactory: uowFactory,
		estimator:  estimator,
		resolver:   resolver,
		notifier:   notifier,
		payments:   payments,
		logger:     logger.With("handler", "create-order"),
		now:        time.Now,
	}, nil
}

// Handle executes the order creation use case.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (CreateOrderResult, error) {
	if err := cmd.Validate(); err != nil {
		return CreateOrderResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return CreateOrderResult{}, err
	}
	defer func() { _ = uow.Rollback(ctx) }()

	cust, err := uow.CustomerRepository().Get(ctx, cmd.CustomerID())
	if err != nil {
		return CreateOrderResult{}, err
	}

	now := h.now()
	req := estimateRequest(cmd)
	price, err := h.estimator.EstimatePrice(ctx, req)
	if err != nil {
		return CreateOrderResult{}, err
	}
	eta, err := h.estimator.EstimateDeliveryTime(ctx, req)
	if err != nil {
		return CreateOrderResult{}, err
	}
	route, err := h.estimator.PlanRoute(ctx, req)
	if err != nil {
		return CreateOrderResult{}, err
	}

	binder := networkBinder{resolver: h.resolver, logger: h.logger}
	binding := binder.resolve(ctx, uow.NetworkRepository(), cmd.Pickup(), cmd.Drop(), now)

	agg, err := h.persistWithFreshReference(ctx, uow, cmd, now, price, binding)
	if err != nil {
		return CreateOrderResult{}, err
	}

	if err := cust.RecordOrder(agg.ID()); err != nil {
		return CreateOrderResult{}, err
	}
	if err := uow.CustomerRepository().Update(ctx, cust); err != nil {
		return CreateOrderResult{}, err
	}

	if err := uow.Commit(ctx); err != nil {
		return CreateOrderResult{}, err
	}

	// Payment sits outside the workflow; a failed intent never fails
	// the order.
	if h.payments != nil && agg.PaymentMode() != order.PaymentCOD {
		if _, payErr := h.payments.CreateIntent(ctx, agg.ID().String(), agg.TotalAmount()); payErr != nil {
			h.logger.WarnContext(ctx, "payment intent creation failed",
				"orderId", agg.ID().String(), "error", payErr)
		}
	}

	h.notifier.Notify(ctx, cust.Email(), ports.EventOrderCreated, map[string]any{
		"orderId":       agg.ID().String(),
		"sellerOrderId": agg.SellerOrderID(),
		"awb":           agg.AWB(),
		"totalAmount":   agg.TotalAmount(),
	})

	return CreateOrderResult{
		OrderID:       agg.ID(),
		SellerOrderID: agg.SellerOrderID(),
		AWB:           agg.AWB(),
		Status:        agg.Status(),
		Unassigned:    agg.Unassigned(),
		Pricing:       price,
		Time:          eta,
		Route:         route,
	}, nil
}

// persistWithFreshReference assembles the aggregate and adds it, minting a
// new seller reference on collision. Explicit references are never
// regenerated: a collision there is the caller's error.
func (h *CreateOrderCommandHandler) persistWithFreshReference(
	ctx context.Context,
	uow UoW,
	cmd CreateOrderCommand,
	now time.Time,
	price estimate.PriceBreakdown,
	binding networkBinding,
) (*order.Order, error) {
	sellerOrderID := cmd.SellerOrderID()
	generated := sellerOrderID == ""

	for attempt := 1; ; attempt++ {
		if generated {
			sellerOrderID = order.NewSellerOrderID(now)
		}
		agg, err := h.assemble(cmd, sellerOrderID, now, price, binding)
		if err != nil {
			return nil, err
		}

		addErr := uow.OrderRepository().Add(ctx, agg)
		if addErr == nil {
			return agg, nil
		}
		if !errors.Is(addErr, ports.ErrDuplicateSellerOrderID) || !generated || attempt >= maxSellerOrderIDAttempts {
			return nil, addErr
		}
		h.logger.Warn("seller order id collision, regenerating",
			"sellerOrderId", sellerOrderID, "attempt", attempt)
	}
}

func (h *CreateOrderCommandHandler) assemble(
	cmd CreateOrderCommand,
	sellerOrderID string,
	now time.Time,
	price estimate.PriceBreakdown,
	binding networkBinding,
) (*order.Order, error) {
	agg, err := order.NewOrder(
		kernel.NewUUID(),
		cmd.CustomerID(),
		sellerOrderID,
		cmd.Pickup(),
		cmd.Drop(),
		cmd.Items(),
		cmd.OrderType(),
		cmd.Priority(),
		cmd.DeliveryType(),
		cmd.PaymentMode(),
		now,
	)
	if err != nil {
		return nil, err
	}

	agg.SetPricing(price.Total, price.EstimatedDelivery)
	if err := agg.AssignAWB(order.NewAWB(now)); err != nil {
		return nil, err
	}

	if _, err := binding.apply(agg); err != nil {
		return nil, err
	}

	return agg, nil
}

func estimateRequest(cmd CreateOrderCommand) estimate.Request {
	return estimate.Request{
		Items:         cmd.Items(),
		PickupCity:    cmd.Pickup().City(),
		PickupState:   cmd.Pickup().State(),
		PickupPincode: cmd.Pickup().Pincode(),
		DropCity:      cmd.Drop().City(),
		DropState:     cmd.Drop().State(),
		DropPincode:   cmd.Drop().Pincode(),
		OrderType:     cmd.OrderType(),
		DeliveryType:  cmd.DeliveryType(),
		Priority:      cmd.Priority(),
	}
}
