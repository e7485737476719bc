package ports

import "context"

// NotificationEvent names a workflow occurrence worth telling someone about.
type NotificationEvent string

const (
	EventOrderCreated   NotificationEvent = "ORDER_CREATED"
	EventStatusChanged  NotificationEvent = "STATUS_CHANGED"
	EventOrderDelivered NotificationEvent = "ORDER_DELIVERED"
	EventOrderCancelled NotificationEvent = "ORDER_CANCELLED"
)

// Notifier delivers workflow notifications to a recipient. Calls are fire
// and forget: implementations must never block the workflow and errors are
// logged, not surfaced.
type Notifier interface {
	Notify(ctx context.Context, recipientRef string, event NotificationEvent, payload map[string]any)
}
