package observability

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce        sync.Once
	requestsTotal       *prometheus.CounterVec
	latencySeconds      *prometheus.HistogramVec
	errorsTotal         *prometheus.CounterVec
	datasetLoadsTotal   *prometheus.CounterVec
	datasetRowsGauge    *prometheus.GaugeVec
	datasetLoadDuration prometheus.Histogram
)

// RegisterMetrics initialises the Prometheus collectors used by the dashboard
// service.
func RegisterMetrics() {
	registerOnce.Do(func() {
		requestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "dashboard_requests_total",
			Help: "Total number of dashboard API requests served.",
		}, []string{"method", "route", "status"})

		latencySeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "dashboard_latency_seconds",
			Help:    "Latency distribution for dashboard API requests.",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.0},
		}, []string{"method", "route"})

		errorsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "dashboard_errors_total",
			Help: "Total number of error responses returned by dashboard endpoints.",
		}, []string{"method", "route", "status"})

		datasetLoadsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "dataset_loads_total",
			Help: "Total number of snapshot load attempts by outcome.",
		}, []string{"outcome"})

		datasetRowsGauge = prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "dataset_rows",
			Help: "Row count of each dataset in the current snapshot.",
		}, []string{"dataset"})

		datasetLoadDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "dataset_load_duration_seconds",
			Help:    "Duration of full snapshot loads.",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0},
		})

		prometheus.MustRegister(
			requestsTotal,
			latencySeconds,
			errorsTotal,
			datasetLoadsTotal,
			datasetRowsGauge,
			datasetLoadDuration,
		)
	})
}

// Requests exposes the counter for dashboard requests.
func Requests() *prometheus.CounterVec {
	RegisterMetrics()
	return requestsTotal
}

// Latency exposes the latency histogram for dashboard requests.
func Latency() *prometheus.HistogramVec {
	RegisterMetrics()
	return latencySeconds
}

// Errors exposes the counter for dashboard error responses.
func Errors() *prometheus.CounterVec {
	RegisterMetrics()
	return errorsTotal
}

// DatasetLoads exposes the counter for snapshot load attempts.
func DatasetLoads() *prometheus.CounterVec {
	RegisterMetrics()
	return datasetLoadsTotal
}

// DatasetRows exposes the per-dataset row gauge.
func DatasetRows() *prometheus.GaugeVec {
	RegisterMetrics()
	return datasetRowsGauge
}

// DatasetLoadDuration exposes the snapshot load duration histogram.
func DatasetLoadDuration() prometheus.Histogram {
	RegisterMetrics()
	return datasetLoadDuration
}
