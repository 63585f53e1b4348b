// Package metrics declares the Prometheus collectors of the booking service.
// Collectors are registered on the default registry and served by promhttp at /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	BookingTransitionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "booking_status_transitions_total",
			Help: "Total number of committed booking status changes",
		},
		[]string{"from", "to"},
	)

	BookingsByStatus = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "bookings_by_status",
			Help: "Number of stored bookings per lifecycle status",
		},
		[]string{"status"},
	)

	OutboxPublishedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "outbox_messages_published_total",
			Help: "Total number of outbox messages delivered to the broker",
		},
		[]string{"type"},
	)

	OutboxFailedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "outbox_messages_failed_total",
			Help: "Total number of outbox messages that exhausted their publish retries",
		},
		[]string{"type"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)
)
