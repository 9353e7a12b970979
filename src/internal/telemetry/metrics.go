package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ledger_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ledger_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	// Transfer metrics
	TransfersTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ledger_transfers_total",
			Help: "Total number of transfer attempts by outcome",
		},
		[]string{"outcome"}, // completed or an error kind
	)

	TransferDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "ledger_transfer_duration_seconds",
			Help:    "Time to execute a transfer unit of work, including hold waits",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
	)

	// Event metrics
	EventsPublishedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ledger_events_published_total",
			Help: "Total number of transaction events published",
		},
		[]string{"subject", "result"},
	)
)

const TransferOutcomeCompleted = "completed"
