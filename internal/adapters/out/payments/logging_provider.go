// Package payments implements the PaymentProvider port as a logging stub.
// Intents are acknowledged and confirmed unconditionally; payment state
// never gates the order workflow.
package payments

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"logistics/internal/core/ports"
	"logistics/internal/pkg/errs"
)

// Intent lifecycle states reported by the stub provider.
const (
	StatusCreated   = "CREATED"
	StatusConfirmed = "CONFIRMED"
)

// LoggingProvider records intents in memory and logs every call. Safe for
// concurrent use.
type LoggingProvider struct {
	logger *slog.Logger
	now    func() time.Time

	mu      sync.Mutex
	intents map[string]ports.PaymentIntent
}

// NewLoggingProvider creates the stub provider.
func NewLoggingProvider(logger *slog.Logger) *LoggingProvider {
	if logger == nil {
		logger = slog.Default()
	}
	return &LoggingProvider{
		logger:  logger.With("component", "payments"),
		now:     time.Now,
		intents: make(map[string]ports.PaymentIntent),
	}
}

// CreateIntent registers a charge for the order and returns its reference.
func (p *LoggingProvider) CreateIntent(ctx context.Context, orderID string, amount float64) (ports.PaymentIntent, error) {
	if orderID == "" {
		return ports.PaymentIntent{}, errs.NewValueIsRequiredError("orderId")
	}
	if amount < 0 {
		return ports.PaymentIntent{}, errs.NewValueIsInvalidError("amount")
	}

	intent := ports.PaymentIntent{
		Reference: fmt.Sprintf("PAY-%d-%s", p.now().UnixMilli(), orderID),
		OrderID:   orderID,
		Amount:    amount,
		Status:    StatusCreated,
	}

	p.mu.Lock()
	p.intents[intent.Reference] = intent
	p.mu.Unlock()

	p.logger.InfoContext(ctx, "payment intent created",
		"reference", intent.Reference, "orderId", orderID, "amount", amount)
	return intent, nil
}

// Confirm marks the intent as collected.
func (p *LoggingProvider) Confirm(ctx context.Context, reference string) (ports.PaymentIntent, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	intent, ok := p.intents[reference]
	if !ok {
		return ports.PaymentIntent{}, errs.NewObjectNotFoundError("reference", reference)
	}
	intent.Status = StatusConfirmed
	p.intents[reference] = intent

	p.logger.InfoContext(ctx, "payment confirmed", "reference", reference)
	return intent, nil
}

// Status reports the current state of an intent.
func (p *LoggingProvider) Status(_ context.Context, reference string) (ports.PaymentIntent, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	intent, ok := p.intents[reference]
	if !ok {
		return ports.PaymentIntent{}, errs.NewObjectNotFoundError("reference", reference)
	}
	return intent, nil
}
