// Package metrics exposes inventory build and query counters on a private
// Prometheus registry.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Registry struct {
	reg            *prometheus.Registry
	RecordsMerged  prometheus.Counter
	RowsDropped    *prometheus.CounterVec
	ReportLines    *prometheus.CounterVec
	Queries        *prometheus.CounterVec
	Builds         prometheus.Counter
	LastBuildTime  prometheus.Gauge
	BuildDuration  prometheus.Histogram
	StoreRecords   prometheus.Gauge
	ReportsWritten prometheus.Counter
}

func NewRegistry() *Registry {
	r := prometheus.NewRegistry()
	merged := prometheus.NewCounter(prometheus.CounterOpts{Name: "inventory_records_merged_total"})
	dropped := prometheus.NewCounterVec(prometheus.CounterOpts{Name: "inventory_rows_dropped_total"}, []string{"table"})
	lines := prometheus.NewCounterVec(prometheus.CounterOpts{Name: "inventory_report_lines_total"}, []string{"report"})
	queries := prometheus.NewCounterVec(prometheus.CounterOpts{Name: "inventory_queries_total"}, []string{"outcome"})
	builds := prometheus.NewCounter(prometheus.CounterOpts{Name: "inventory_builds_total"})
	lastBuild := prometheus.NewGauge(prometheus.GaugeOpts{Name: "inventory_last_build_timestamp_seconds"})
	buildDuration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "inventory_build_duration_seconds",
		Buckets: prometheus.DefBuckets,
	})
	records := prometheus.NewGauge(prometheus.GaugeOpts{Name: "inventory_store_records"})
	written := prometheus.NewCounter(prometheus.CounterOpts{Name: "inventory_reports_written_total"})

	r.MustRegister(merged, dropped, lines, queries, builds, lastBuild, buildDuration, records, written)
	return &Registry{
		reg:            r,
		RecordsMerged:  merged,
		RowsDropped:    dropped,
		ReportLines:    lines,
		Queries:        queries,
		Builds:         builds,
		LastBuildTime:  lastBuild,
		BuildDuration:  buildDuration,
		StoreRecords:   records,
		ReportsWritten: written,
	}
}

// ObserveBuild records a completed build.
func (r *Registry) ObserveBuild(records int, builtAt time.Time, took time.Duration) {
	r.Builds.Inc()
	r.RecordsMerged.Add(float64(records))
	r.StoreRecords.Set(float64(records))
	r.LastBuildTime.Set(float64(builtAt.Unix()))
	r.BuildDuration.Observe(took.Seconds())
}

// ObserveDropped counts rows of table that referenced unknown ids.
func (r *Registry) ObserveDropped(table string, n int) {
	if n > 0 {
		r.RowsDropped.WithLabelValues(table).Add(float64(n))
	}
}

// ObserveReport counts one written report and its lines.
func (r *Registry) ObserveReport(name string, lines int) {
	r.ReportsWritten.Inc()
	r.ReportLines.WithLabelValues(name).Add(float64(lines))
}

// ObserveQuery counts one query by outcome.
func (r *Registry) ObserveQuery(outcome string) {
	r.Queries.WithLabelValues(outcome).Inc()
}

func (r *Registry) Handler() http.Handler { return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{}) }
