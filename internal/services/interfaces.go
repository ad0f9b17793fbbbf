package services

import (
	"time"
)

// Metric names understood by MetricsRecorderInterface implementations.
const (
	MetricTransactionCreated = "transaction.created"
	MetricTransactionFailed  = "transaction.failed"
	MetricTransactionListed  = "transaction.listed"
	MetricTransactionCreate  = "transaction.create"
	MetricTransactionList    = "transaction.list"
	MetricListSize           = "transaction.list_size"
)

type MetricsRecorderInterface interface {
	IncrementCounter(name string, tags map[string]string)
	RecordProcessingTime(name string, duration time.Duration)
	RecordGauge(name string, value float64, tags map[string]string)
	ObserveHTTPRequest(method, path string, status int, duration time.Duration)
}
