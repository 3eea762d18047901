package metrics

// ============================================================================
// Metric Names
// ============================================================================

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// Event metric names
const (
	MetricNameEventsPublished    = "events_published_total"
	MetricNameEventHandlerErrors = "event_handler_errors_total"
)

// Business metric names
const (
	MetricNamePurchases          = "purchases_total"
	MetricNameItemsBought        = "items_bought_total"
	MetricNameStonesSpent        = "spirit_stones_spent_total"
	MetricNameStonesEarned       = "spirit_stones_earned_total"
	MetricNameListingsCreated    = "listings_created_total"
	MetricNameListingsClosed     = "listings_closed_total"
	MetricNameSystemRestocks     = "system_restocks_total"
	MetricNameCrafts             = "crafts_total"
	MetricNameFlowFailures       = "flow_failures_total"
	MetricNameUncompensatedSteps = "flow_uncompensated_steps_total"
	MetricNameTxRetries          = "tx_retries_total"
)

// ============================================================================
// Metric Help Text
// ============================================================================

// HTTP metric help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
)

// Event metric help text
const (
	HelpTextEventsPublished    = "Total number of events published"
	HelpTextEventHandlerErrors = "Total number of event handler errors"
)

// Business metric help text
const (
	HelpTextPurchases          = "Total number of completed purchases"
	HelpTextItemsBought        = "Total number of item units bought"
	HelpTextStonesSpent        = "Total spirit stones debited by purchases and crafting"
	HelpTextStonesEarned       = "Total spirit stones credited to sellers"
	HelpTextListingsCreated    = "Total number of player listings created"
	HelpTextListingsClosed     = "Total number of listings taken down by a seller or an admin"
	HelpTextSystemRestocks     = "Total number of admin restocks of system goods"
	HelpTextCrafts             = "Total number of finished crafting attempts"
	HelpTextFlowFailures       = "Total number of failed flows"
	HelpTextUncompensatedSteps = "Steps that failed after an earlier step of the same flow was applied"
	HelpTextTxRetries          = "Total number of retried serializable transactions"
)

// ============================================================================
// Metric Label Names
// ============================================================================

// Common label names used across metrics
const (
	LabelMethod  = "method"
	LabelPath    = "path"
	LabelStatus  = "status"
	LabelType    = "type"
	LabelSource  = "source"
	LabelFlow    = "flow"
	LabelKind    = "kind"
	LabelOutcome = "outcome"
	LabelReason  = "reason"
	LabelStep    = "step"
)

// Label values
const (
	FailureBusiness = "business"
	FailureFatal    = "fatal"

	ClosedWithdrawn = "withdrawn"
	ClosedForfeited = "forfeited"

	// PathUnmatched labels requests no route matched
	PathUnmatched = "unmatched"
)

// ============================================================================
// Histogram Buckets
// ============================================================================

// HTTPLatencyBuckets defines the histogram buckets for HTTP request duration
// in seconds, from 1ms to 10s.
var HTTPLatencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}

// ============================================================================
// Log Messages
// ============================================================================

// Debug log messages
const (
	LogMsgPayloadDecodeFailed = "Event payload could not be decoded"
	LogMsgMetricsRecorded     = "Metrics recorded for event"
)
