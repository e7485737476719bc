// Package notify implements the Notifier port over structured logging.
// Notifications are an at-most-once side channel: a real deployment would
// swap this adapter for email or SMS without touching the workflow.
package notify

import (
	"context"
	"log/slog"

	"logistics/internal/core/ports"
)

// SlogNotifier writes each notification as one structured log record.
type SlogNotifier struct {
	logger *slog.Logger
}

// NewSlogNotifier creates a logging notifier.
func NewSlogNotifier(logger *slog.Logger) *SlogNotifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &SlogNotifier{logger: logger.With("component", "notifier")}
}

// Notify records the event. It never blocks and never fails the caller.
func (n *SlogNotifier) Notify(
	ctx context.Context,
	recipientRef string,
	event ports.NotificationEvent,
	payload map[string]any,
) {
	attrs := make([]any, 0, 2+2*len(payload))
	attrs = append(attrs, "recipient", recipientRef)
	for key, value := range payload {
		attrs = append(attrs, key, value)
	}
	n.logger.InfoContext(ctx, string(event), attrs...)
}
