package ports

import "context"

// PaymentIntent is a provider-side charge reference for an order.
type PaymentIntent struct {
	Reference string
	OrderID   string
	Amount    float64
	Status    string
}

// PaymentProvider is the outbound contract for collecting payment. It sits
// entirely outside the workflow state machine: payment state never gates a
// status transition.
type PaymentProvider interface {
	CreateIntent(ctx context.Context, orderID string, amount float64) (PaymentIntent, error)
	Confirm(ctx context.Context, reference string) (PaymentIntent, error)
	Status(ctx context.Context, reference string) (PaymentIntent, error)
}
