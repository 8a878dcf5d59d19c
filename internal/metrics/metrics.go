// Package metrics exposes forecast counters and latencies to Prometheus.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Status label values
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// UnknownMethod labels requests for methods that are not registered
const UnknownMethod = "unknown"

// Recorder records forecast activity on its own registry
type Recorder struct {
	registry      *prometheus.Registry
	forecasts     *prometheus.CounterVec
	errorsTotal   *prometheus.CounterVec
	latency       *prometheus.HistogramVec
	lastForecast  *prometheus.GaugeVec
	lastRMSE      *prometheus.GaugeVec
	eventsPublish *prometheus.CounterVec
}

// New creates a recorder backed by a fresh registry that also carries Go runtime
// and process collectors
func New() *Recorder {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Recorder{
		registry: reg,
		forecasts: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "salescast_forecasts_total",
				Help: "Total number of forecast requests",
			},
			[]string{"method", "status"},
		),
		errorsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "salescast_errors_total",
				Help: "Total number of errors by kind",
			},
			[]string{"kind"},
		),
		latency: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "salescast_forecast_duration_seconds",
				Help:    "Duration of forecast operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method"},
		),
		lastForecast: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "salescast_last_forecast_value",
				Help: "First value of the most recent forecast",
			},
			[]string{"method"},
		),
		lastRMSE: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "salescast_last_backtest_rmse",
				Help: "RMSE of the most recent backtest",
			},
			[]string{"method"},
		),
		eventsPublish: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "salescast_events_published_total",
				Help: "Forecast events handed to the queue",
			},
			[]string{"status"},
		),
	}
}

// RecordForecast records one forecast with its outcome and duration
func (r *Recorder) RecordForecast(method, status string, d time.Duration) {
	r.forecasts.WithLabelValues(method, status).Inc()
	r.latency.WithLabelValues(method).Observe(d.Seconds())
}

// RecordError records an error occurrence
func (r *Recorder) RecordError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}

// RecordLastForecast records the first projected value
func (r *Recorder) RecordLastForecast(method string, value float64) {
	r.lastForecast.WithLabelValues(method).Set(value)
}

// RecordRMSE records the latest backtest error
func (r *Recorder) RecordRMSE(method string, rmse float64) {
	r.lastRMSE.WithLabelValues(method).Set(rmse)
}

// RecordPublish records a forecast event publish attempt
func (r *Recorder) RecordPublish(status string) {
	r.eventsPublish.WithLabelValues(status).Inc()
}

// Registry returns the underlying registry
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// Handler serves the registry in the Prometheus text format
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}
