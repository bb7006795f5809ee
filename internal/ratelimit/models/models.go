package models

import "time"

// Decision is the outcome of one admit check against a client's window.
type Decision struct {
	Allowed   bool
	Limit     int
	Remaining int
	// ResetAt is when the oldest counted request leaves the window.
	ResetAt time.Time
	// RetryAfter is zero for admitted requests.
	RetryAfter time.Duration
}

// ClientKey namespaces a client identifier inside a shared store.
func ClientKey(clientID string) string {
	return "ip:" + clientID
}
