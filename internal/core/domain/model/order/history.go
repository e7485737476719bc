package order

import "time"

// StatusHistoryEntry is one step of the internal workflow audit trail.
// The trail is append-only and ordered by timestamp; the order's current
// status always equals the status of the last entry.
type StatusHistoryEntry struct {
	Status    Status
	Timestamp time.Time
	Location  string
	HandledBy string
	Remarks   string
}

// TrackingEntry is one step of the customer-facing tracking feed. Unlike the
// workflow trail it carries free-form activity text rather than a status.
type TrackingEntry struct {
	Activity  string
	Location  string
	Timestamp time.Time
}
