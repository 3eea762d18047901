// Package metrics exposes Prometheus collectors for HTTP traffic and for the
// economy flows, fed by the event bus.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHTTPRequestsTotal,
			Help: HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameHTTPRequestDuration,
			Help:    HelpTextHTTPRequestDuration,
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameHTTPRequestsInFlight,
			Help: HelpTextHTTPRequestsInFlight,
		},
	)
)

// Event Metrics
var (
	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventsPublished,
			Help: HelpTextEventsPublished,
		},
		[]string{LabelType},
	)

	EventHandlerErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventHandlerErrors,
			Help: HelpTextEventHandlerErrors,
		},
		[]string{LabelType},
	)
)

// Business Metrics
var (
	Purchases = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNamePurchases,
			Help: HelpTextPurchases,
		},
		[]string{LabelSource},
	)

	ItemsBought = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameItemsBought,
			Help: HelpTextItemsBought,
		},
		[]string{LabelSource},
	)

	StonesSpent = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameStonesSpent,
			Help: HelpTextStonesSpent,
		},
		[]string{LabelFlow},
	)

	StonesEarned = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameStonesEarned,
			Help: HelpTextStonesEarned,
		},
	)

	ListingsCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameListingsCreated,
			Help: HelpTextListingsCreated,
		},
	)

	ListingsClosed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameListingsClosed,
			Help: HelpTextListingsClosed,
		},
		[]string{LabelReason},
	)

	SystemRestocks = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameSystemRestocks,
			Help: HelpTextSystemRestocks,
		},
	)

	Crafts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameCrafts,
			Help: HelpTextCrafts,
		},
		[]string{LabelKind, LabelOutcome},
	)

	FlowFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameFlowFailures,
			Help: HelpTextFlowFailures,
		},
		[]string{LabelFlow, LabelKind},
	)

	UncompensatedSteps = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameUncompensatedSteps,
			Help: HelpTextUncompensatedSteps,
		},
		[]string{LabelFlow, LabelStep},
	)

	TxRetries = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameTxRetries,
			Help: HelpTextTxRetries,
		},
	)
)

// RecordTxRetry is the postgres store's OnRetry hook
func RecordTxRetry() {
	TxRetries.Inc()
}
