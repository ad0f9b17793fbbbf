package services

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type PrometheusMetrics struct {
	transactionsTotal   *prometheus.CounterVec
	transactionDuration *prometheus.HistogramVec
	listSize            prometheus.Gauge
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
}

// NewPrometheusMetrics registers the collectors with registerer. Passing nil
// registers nothing, which keeps handler tests free of global state.
func NewPrometheusMetrics(registerer prometheus.Registerer) *PrometheusMetrics {
	factory := promauto.With(registerer)

	return &PrometheusMetrics{
		transactionsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "transaksi_operations_total",
				Help: "Total number of transaction operations by operation and status",
			},
			[]string{"operation", "status"},
		),
		transactionDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "transaksi_operation_duration_milliseconds",
				Help:    "Transaction operation duration in milliseconds",
				Buckets: prometheus.ExponentialBuckets(1, 2, 12),
			},
			[]string{"operation"},
		),
		listSize: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "transaksi_list_size",
				Help: "Number of rows returned by the most recent list",
			},
		),
		httpRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests by method, route and status",
			},
			[]string{"method", "path", "status"},
		),
		httpRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
	}
}

func (m *PrometheusMetrics) IncrementCounter(name string, tags map[string]string) {
	switch name {
	case MetricTransactionCreated:
		m.transactionsTotal.WithLabelValues("create", "success").Inc()
	case MetricTransactionFailed:
		operation := tags["operation"]
		reason := tags["reason"]
		if reason == "" {
			reason = "unknown"
		}
		m.transactionsTotal.WithLabelValues(operation, "failed_"+reason).Inc()
	case MetricTransactionListed:
		m.transactionsTotal.WithLabelValues("list", "success").Inc()
	}
}

func (m *PrometheusMetrics) RecordProcessingTime(name string, duration time.Duration) {
	switch name {
	case MetricTransactionCreate:
		m.transactionDuration.WithLabelValues("create").Observe(float64(duration.Milliseconds()))
	case MetricTransactionList:
		m.transactionDuration.WithLabelValues("list").Observe(float64(duration.Milliseconds()))
	}
}

func (m *PrometheusMetrics) RecordGauge(name string, value float64, tags map[string]string) {
	if name == MetricListSize {
		m.listSize.Set(value)
	}
}

func (m *PrometheusMetrics) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	m.httpRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	m.httpRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}
