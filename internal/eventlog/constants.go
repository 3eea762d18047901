package eventlog

import "time"

// Payload keys that name the account an event is about, in lookup order
var accountKeys = []string{"account_id", "buyer_id", "seller_id", "actor_id"}

// Query limits
const (
	DefaultQueryLimit = 50
	MaxQueryLimit     = 500
)

// DefaultRetention keeps thirty days of events
const DefaultRetention = 30 * 24 * time.Hour

// Error messages
const (
	ErrMsgEncodePayloadFailed = "failed to encode %s payload: %w"
	ErrMsgLogEventFailed      = "failed to log %s event: %w"
	ErrMsgQueryFailed         = "failed to query events: %w"
	ErrMsgCleanupFailed       = "failed to clean up events: %w"
)

// Log messages - service events
const (
	LogMsgFailedToLogEvent = "Failed to log event"
	LogMsgEventLogged      = "Event logged"
)

// Log messages - cleanup job
const (
	LogMsgCleanupJobStarting  = "Starting event log cleanup job"
	LogMsgCleanupJobFailed    = "Event log cleanup failed"
	LogMsgCleanupJobCompleted = "Event log cleanup completed"
)
