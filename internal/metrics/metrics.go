// Package metrics holds the Prometheus collectors shared by the overlay
// builder, the watcher and the HTTP server.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for argo-indicators.
type Metrics struct {
	// Indicator computation
	IndicatorComputeDur *prometheus.HistogramVec // labels: indicator
	IndicatorPoints     *prometheus.CounterVec   // labels: indicator
	IndicatorErrors     *prometheus.CounterVec   // labels: indicator
	OverlayBuildDur     prometheus.Histogram

	// Backend fetches
	BarFetchDur    prometheus.Histogram
	BarFetchErrors prometheus.Counter

	// Watcher
	WatchRuns *prometheus.CounterVec // labels: status=ok|error

	// API server
	HTTPRequests *prometheus.CounterVec // labels: route, code
	WSClients    prometheus.Gauge

	gatherer prometheus.Gatherer
}

// NewMetrics creates the collectors and registers them with a fresh registry.
func NewMetrics() *Metrics {
	return NewMetricsWithRegistry(prometheus.NewRegistry())
}

// NewMetricsWithRegistry creates the collectors and registers them with reg.
func NewMetricsWithRegistry(reg *prometheus.Registry) *Metrics {
	m := &Metrics{
		IndicatorComputeDur: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "argo_indicator_compute_duration_seconds",
			Help:    "Indicator compute latency per series",
			Buckets: []float64{0.00001, 0.00005, 0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05},
		}, []string{"indicator"}),
		IndicatorPoints: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "argo_indicator_points_total",
			Help: "Total indicator points computed",
		}, []string{"indicator"}),
		IndicatorErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "argo_indicator_errors_total",
			Help: "Indicator configurations rejected during overlay builds",
		}, []string{"indicator"}),
		OverlayBuildDur: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "argo_overlay_build_duration_seconds",
			Help:    "Latency of building a full indicator overlay",
			Buckets: prometheus.DefBuckets,
		}),
		BarFetchDur: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "argo_bar_fetch_duration_seconds",
			Help:    "Backend /get_stock_data latency",
			Buckets: prometheus.DefBuckets,
		}),
		BarFetchErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "argo_bar_fetch_errors_total",
			Help: "Failed backend bar fetches",
		}),
		WatchRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "argo_watch_runs_total",
			Help: "Watcher refresh runs by status",
		}, []string{"status"}),
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "argo_http_requests_total",
			Help: "API requests by route and status code",
		}, []string{"route", "code"}),
		WSClients: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "argo_ws_clients",
			Help: "Connected websocket clients",
		}),
		gatherer: reg,
	}

	reg.MustRegister(
		m.IndicatorComputeDur,
		m.IndicatorPoints,
		m.IndicatorErrors,
		m.OverlayBuildDur,
		m.BarFetchDur,
		m.BarFetchErrors,
		m.WatchRuns,
		m.HTTPRequests,
		m.WSClients,
	)

	return m
}

// Handler serves the registered metrics in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
