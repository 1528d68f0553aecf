package gateway

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus instruments exposed on /metrics. Each Gateway
// owns its registry so two instances never collide on registration.
type Metrics struct {
	registry *prometheus.Registry

	TurnsTotal    *prometheus.CounterVec
	TurnDuration  prometheus.Histogram
	ResetsTotal   prometheus.Counter
	StreamClients prometheus.Gauge
}

// NewMetrics creates and registers the gateway instruments on a fresh
// registry. activeSessions is sampled on every scrape.
func NewMetrics(activeSessions func() int) *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	m := &Metrics{registry: reg}

	m.TurnsTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lapwise_turns_total",
			Help: "Total number of processed conversation turns",
		},
		[]string{"outcome"},
	)

	m.TurnDuration = factory.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "lapwise_turn_duration_seconds",
			Help:    "Duration of conversation turns in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	m.ResetsTotal = factory.NewCounter(
		prometheus.CounterOpts{
			Name: "lapwise_session_resets_total",
			Help: "Total number of explicit session resets",
		},
	)

	m.StreamClients = factory.NewGauge(
		prometheus.GaugeOpts{
			Name: "lapwise_stream_clients",
			Help: "Number of connected transcript stream clients",
		},
	)

	factory.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: "lapwise_sessions_active",
			Help: "Number of live sessions in the store",
		},
		func() float64 { return float64(activeSessions()) },
	)

	return m
}

// RecordTurn records one processed turn.
func (m *Metrics) RecordTurn(outcome string, duration time.Duration) {
	m.TurnsTotal.WithLabelValues(outcome).Inc()
	m.TurnDuration.Observe(duration.Seconds())
}
