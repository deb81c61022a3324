package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Charge sources for ChargesTotal.
const (
	SourceGateway = "gateway"
	SourceMock    = "mock"
)

// Background sinks for BackgroundWriteFailures.
const (
	SinkRepository = "repository"
	SinkPublisher  = "publisher"
)

var (
	GatewayAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pix_gateway_attempts_total",
		Help: "Gateway attempts by strategy and outcome.",
	}, []string{"gateway", "outcome"})

	GatewayAttemptDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "pix_gateway_attempt_duration_seconds",
		Help:    "Latency of gateway attempts.",
		Buckets: []float64{0.1, 0.25, 0.5, 1, 2, 4, 8, 15},
	}, []string{"gateway"})

	ChargesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pix_charges_total",
		Help: "PIX charges returned to customers by source.",
	}, []string{"source"})

	BackgroundWriteFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pix_background_write_failures_total",
		Help: "Failed fire-and-forget writes by sink.",
	}, []string{"sink"})
)
