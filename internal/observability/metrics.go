package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestDuration tracks HTTP request duration
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "bot_massagistas_request_duration_seconds",
			Help: "Duration of HTTP requests in seconds",
		},
		[]string{"path", "method", "status"},
	)

	// ActiveConnections tracks active HTTP connections
	ActiveConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "bot_massagistas_active_connections",
			Help: "Number of active connections",
		},
	)

	// UpdatesReceived tracks Telegram updates by transport and kind
	UpdatesReceived = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bot_massagistas_updates_received_total",
			Help: "Number of Telegram updates received",
		},
		[]string{"transport", "kind"},
	)

	// DispatchOutcomes tracks what the dispatcher did with each message
	DispatchOutcomes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bot_massagistas_dispatch_outcomes_total",
			Help: "Number of handled messages by outcome",
		},
		[]string{"outcome"},
	)

	// Submissions tracks registration attempts by grammar and result
	Submissions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bot_massagistas_submissions_total",
			Help: "Number of registration submissions",
		},
		[]string{"grammar", "status"},
	)

	// StoreOperations tracks directory store calls
	StoreOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bot_massagistas_store_operations_total",
			Help: "Number of directory store operations",
		},
		[]string{"backend", "operation", "status"},
	)

	// StoreOperationDuration tracks directory store latency
	StoreOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "bot_massagistas_store_operation_duration_seconds",
			Help:    "Duration of directory store operations in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"backend", "operation"},
	)

	// ReplyFailures tracks messages that could not be delivered to Telegram
	ReplyFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "bot_massagistas_reply_failures_total",
			Help: "Number of replies that failed to be delivered",
		},
	)

	// DuplicateUpdates tracks redelivered updates that were skipped
	DuplicateUpdates = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "bot_massagistas_duplicate_updates_total",
			Help: "Number of redelivered updates skipped",
		},
	)
)
