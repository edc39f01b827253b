package observability

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/prometheus/client_golang/prometheus/push"
)

var (
	registry *prometheus.Registry

	// Pipeline runs by result ("success" or an error category). Watch for: any non-success.
	PlotRunsTotal *prometheus.CounterVec

	// Wall time per pipeline stage (load, normalize, render, write). Watch for: load/write growth with file size.
	PlotStageDuration *prometheus.HistogramVec

	// Data rows in the last loaded CSV.
	PlotRowsLoaded prometheus.Gauge

	// Size of the last written image.
	PlotOutputBytes prometheus.Gauge

	// Unix time of the last successful run. Alert on staleness.
	PlotLastSuccessTimestamp prometheus.Gauge
)

func init() {
	registry = prometheus.NewRegistry()

	registry.MustRegister(
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewGoCollector(),
	)

	PlotRunsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "plotRunsTotal",
			Help: "Total number of pipeline runs by result",
		},
		[]string{"result"},
	)
	PlotStageDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "plotStageDurationSeconds",
			Help:    "Pipeline stage latency in seconds",
			Buckets: []float64{.001, .005, .01, .05, .1, .25, .5, 1, 2.5, 5},
		},
		[]string{"stage"},
	)
	PlotRowsLoaded = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "plotRowsLoaded",
			Help: "Data rows read from the input CSV in the last run",
		},
	)
	PlotOutputBytes = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "plotOutputBytes",
			Help: "Size in bytes of the last rendered image",
		},
	)
	PlotLastSuccessTimestamp = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "plotLastSuccessTimestampSeconds",
			Help: "Unix time of the last successful run",
		},
	)

	registry.MustRegister(
		PlotRunsTotal, PlotStageDuration,
		PlotRowsLoaded, PlotOutputBytes, PlotLastSuccessTimestamp,
	)
}

// ObserveStage records how long a pipeline stage took.
func ObserveStage(stage string, d time.Duration) {
	PlotStageDuration.WithLabelValues(stage).Observe(d.Seconds())
}

// RecordRunSuccess marks a completed run.
func RecordRunSuccess(at time.Time) {
	PlotRunsTotal.WithLabelValues("success").Inc()
	PlotLastSuccessTimestamp.Set(float64(at.Unix()))
}

// RecordRunFailure marks a failed run under its error category.
func RecordRunFailure(category string) {
	if category == "" {
		category = "unknown"
	}
	PlotRunsTotal.WithLabelValues(category).Inc()
}

// ExportConfig selects where ExportMetrics sends the registry. Empty fields are skipped.
type ExportConfig struct {
	Textfile       string
	PushgatewayURL string
	Job            string
	Instance       string
}

// ExportMetrics writes the registry to a node_exporter textfile and/or pushes it
// to a Pushgateway. Both targets are attempted; errors are joined.
func ExportMetrics(ctx context.Context, cfg ExportConfig) error {
	var errs []error
	if cfg.Textfile != "" {
		if err := prometheus.WriteToTextfile(cfg.Textfile, registry); err != nil {
			errs = append(errs, fmt.Errorf("write metrics textfile: %w", err))
		}
	}
	if cfg.PushgatewayURL != "" {
		pusher := push.New(cfg.PushgatewayURL, cfg.Job).Gatherer(registry)
		if cfg.Instance != "" {
			pusher = pusher.Grouping("instance", cfg.Instance)
		}
		if err := pusher.PushContext(ctx); err != nil {
			errs = append(errs, fmt.Errorf("push metrics: %w", err))
		}
	}
	return errors.Join(errs...)
}

// MetricsHandler returns an http.Handler that serves application and runtime metrics.
// Used by tests to scrape the registry in exposition format.
func MetricsHandler() http.Handler {
	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
}
