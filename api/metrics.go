package api

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const metricsNamespace = "registration_payments"

type reconcilePath string

const (
	reconcilePathCapture      reconcilePath = "paypal_capture"
	reconcilePathNotification reconcilePath = "gpay_notification"
)

var reconcilePathsByRoute = map[string]reconcilePath{
	"POST /api/paypal/capture":    reconcilePathCapture,
	"POST /api/gpay-notification": reconcilePathNotification,
}

type metrics struct {
	requests        *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	reconciliations *prometheus.CounterVec
}

func newMetrics(reg prometheus.Registerer) *metrics {
	m := &metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route and status code.",
		}, []string{"route", "code"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
		reconciliations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "reconciliations_total",
			Help:      "Payment reconciliation attempts by path and outcome.",
		}, []string{"path", "outcome"}),
	}

	reg.MustRegister(m.requests, m.requestDuration, m.reconciliations)

	return m
}

func (m *metrics) observeRequest(route string, statusCode int, latency time.Duration) {
	m.requests.WithLabelValues(route, strconv.Itoa(statusCode)).Inc()
	m.requestDuration.WithLabelValues(route).Observe(latency.Seconds())
}

// observeReconciliation counts one attempt. The outcome is the error code the client got,
// or "success".
func (m *metrics) observeReconciliation(path reconcilePath, outcome string) {
	m.reconciliations.WithLabelValues(string(path), outcome).Inc()
}
