package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RequestCount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gerch_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "gerch_request_duration_seconds",
			Help: "HTTP request duration in seconds",
		},
		[]string{"method", "endpoint"},
	)

	ProviderCalls = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gerch_provider_calls_total",
			Help: "Provider calls by outcome (success, absent, failed)",
		},
		[]string{"provider", "outcome"},
	)

	ProviderLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "gerch_provider_latency_seconds",
			Help: "Provider call latency in seconds",
		},
		[]string{"provider"},
	)

	Routes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gerch_routes_total",
			Help: "Chat requests by the fallback tier that answered them",
		},
		[]string{"route"},
	)

	ActiveSessions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "gerch_active_ws_sessions",
			Help: "Number of open websocket chat sessions",
		},
	)
)
