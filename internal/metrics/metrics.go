package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "steve_http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "steve_http_request_duration_seconds",
			Help:    "HTTP request duration",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		},
		[]string{"method", "path"},
	)

	// Business metrics
	CommandsReceived = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "steve_commands_received_total",
			Help: "Total slash commands received",
		},
		[]string{"command"},
	)

	StatusQueries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "steve_status_queries_total",
			Help: "Total Minecraft status queries",
		},
		[]string{"result"}, // "populated", "empty" or "down"
	)

	IdentityLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "steve_identity_lookups_total",
			Help: "Total player identity lookups",
		},
		[]string{"outcome"}, // "hit", "miss" or "error"
	)

	DeliveryAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "steve_delivery_attempts_total",
			Help: "Total message delivery attempts, by fallback tier",
		},
		[]string{"tier", "result"},
	)

	MessagesDeleted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "steve_messages_deleted_total",
			Help: "Total bot messages deleted on request",
		},
	)

	DeletionsRejected = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "steve_deletions_rejected_total",
			Help: "Total delete requests rejected by the authorizer",
		},
	)

	// Infrastructure metrics
	MojangLatency = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "steve_mojang_latency_seconds",
			Help:    "Mojang profile lookup latency",
			Buckets: []float64{.01, .05, .1, .25, .5, 1, 2.5},
		},
	)

	PingLatency = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "steve_ping_latency_seconds",
			Help:    "Minecraft server list ping latency",
			Buckets: []float64{.005, .01, .05, .1, .25, .5, 1, 2.5},
		},
	)
)
