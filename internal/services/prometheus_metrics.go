package services

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metric names understood by PrometheusMetrics
const (
	MetricRecordCreated = "ledger.record.created"
	MetricQuery         = "ledger.query"
	MetricBootstrap     = "ledger.bootstrap"
	MetricLedgerBalance = "ledger.balance"
)

type PrometheusMetrics struct {
	recordsCreated *prometheus.CounterVec
	queriesTotal   *prometheus.CounterVec
	queryDuration  prometheus.Histogram
	bootstrapTotal *prometheus.CounterVec
	balance        *prometheus.GaugeVec
}

// NewPrometheusMetrics registers the ledger collectors on registerer, or on
// the default registry when registerer is nil
func NewPrometheusMetrics(registerer prometheus.Registerer) MetricsRecorderInterface {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}
	return newPrometheusMetrics(registerer)
}

func newPrometheusMetrics(registerer prometheus.Registerer) *PrometheusMetrics {
	factory := promauto.With(registerer)

	return &PrometheusMetrics{
		recordsCreated: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ledger_records_created_total",
				Help: "Total number of ledger records created",
			},
			[]string{"entity"},
		),
		queriesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ledger_queries_total",
				Help: "Total number of aggregate queries by outcome",
			},
			[]string{"query", "status"},
		),
		queryDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "ledger_query_duration_seconds",
				Help:    "Aggregate query duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
		),
		bootstrapTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ledger_bootstrap_total",
				Help: "Total number of bootstrap attempts by outcome",
			},
			[]string{"status"},
		),
		balance: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "ledger_amount",
				Help: "Last computed ledger aggregate",
			},
			[]string{"aggregate"},
		),
	}
}

func (m *PrometheusMetrics) IncrementCounter(name string, tags map[string]string) {
	status := tags["status"]

	switch name {
	case MetricRecordCreated:
		if entity := tags["entity"]; entity != "" {
			m.recordsCreated.WithLabelValues(entity).Inc()
		}
	case MetricQuery:
		if query := tags["query"]; query != "" && status != "" {
			m.queriesTotal.WithLabelValues(query, status).Inc()
		}
	case MetricBootstrap:
		if status != "" {
			m.bootstrapTotal.WithLabelValues(status).Inc()
		}
	}
}

func (m *PrometheusMetrics) RecordProcessingTime(name string, duration time.Duration) {
	switch name {
	case MetricQuery:
		m.queryDuration.Observe(duration.Seconds())
	}
}

func (m *PrometheusMetrics) RecordGauge(name string, value float64, tags map[string]string) {
	switch name {
	case MetricLedgerBalance:
		if aggregate := tags["aggregate"]; aggregate != "" {
			m.balance.WithLabelValues(aggregate).Set(value)
		}
	}
}

// noopMetrics discards everything
type noopMetrics struct{}

func (noopMetrics) IncrementCounter(string, map[string]string)    {}
func (noopMetrics) RecordProcessingTime(string, time.Duration)     {}
func (noopMetrics) RecordGauge(string, float64, map[string]string) {}

func metricsOrNoop(metrics MetricsRecorderInterface) MetricsRecorderInterface {
	if metrics == nil {
		return noopMetrics{}
	}
	return metrics
}
