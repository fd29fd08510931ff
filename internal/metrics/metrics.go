// Package metrics exposes Prometheus collectors for batch runs. The binary is
// a cron job rather than a long-lived service, so series are exported at the
// end of a run through the node_exporter textfile collector instead of an
// HTTP endpoint.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder owns the registry and collectors for a single process. Each
// Recorder has its own registry so textfile export carries only batch series,
// not the default Go runtime collectors.
type Recorder struct {
	registry *prometheus.Registry

	runsTotal        *prometheus.CounterVec
	regionsTotal     *prometheus.CounterVec
	regionDuration   *prometheus.HistogramVec
	pacingWait       prometheus.Histogram
	lastRunTimestamp prometheus.Gauge
}

// NewRecorder builds a Recorder with a fresh registry.
func NewRecorder() *Recorder {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)
	return &Recorder{
		registry: reg,
		runsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "regionharvest_runs_total",
				Help: "Total batch runs, labeled by final status.",
			},
			[]string{"status"},
		),
		regionsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "regionharvest_regions_total",
				Help: "Total region collection attempts, labeled by region and outcome.",
			},
			[]string{"region", "status"},
		),
		regionDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "regionharvest_region_duration_seconds",
				Help:    "Histogram of per-region collection durations.",
				Buckets: []float64{1, 5, 15, 60, 300, 900, 1800, 3600},
			},
			[]string{"region"},
		),
		pacingWait: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "regionharvest_pacing_wait_seconds",
				Help:    "Histogram of pauses inserted between region collections.",
				Buckets: []float64{0.1, 1, 5, 10, 30, 60},
			},
		),
		lastRunTimestamp: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "regionharvest_last_run_timestamp_seconds",
				Help: "Unix time of the most recently completed batch run.",
			},
		),
	}
}

// RegionDone records one finished region attempt.
func (r *Recorder) RegionDone(region string, succeeded bool, took time.Duration) {
	status := "succeeded"
	if !succeeded {
		status = "failed"
	}
	r.regionsTotal.WithLabelValues(region, status).Inc()
	r.regionDuration.WithLabelValues(region).Observe(took.Seconds())
}

// RunDone records the batch-level outcome.
func (r *Recorder) RunDone(status string, endedAt time.Time) {
	r.runsTotal.WithLabelValues(status).Inc()
	r.lastRunTimestamp.Set(float64(endedAt.Unix()))
}

// ObservePacingWait records one inter-region pause.
func (r *Recorder) ObservePacingWait(d time.Duration) {
	r.pacingWait.Observe(d.Seconds())
}

// WriteTextfile dumps the registry to path in the exposition format the
// node_exporter textfile collector expects. An empty path disables export.
func (r *Recorder) WriteTextfile(path string) error {
	if path == "" {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
