// Package metrics provides Prometheus instrumentation for the throwbench
// analyzer. The tool is a one-shot CLI, not a scrape target: metrics are
// collected on a private registry and dumped in text exposition format at
// the end of a run when the user asks for them.
package metrics

import (
	"fmt"
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/common/expfmt"
)

// Manager manages all Prometheus metrics for the analyzer.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         prometheus.Registerer

	// Ingestion - data quality at the boundary
	throwsIngested  prometheus.Counter
	rowsDuplicate   prometheus.Counter
	filesIngested   *prometheus.CounterVec
	ingestionErrors prometheus.Counter

	// Analysis - the core pipeline
	sessionsAnalyzed  prometheus.Counter
	analyzeDuration   prometheus.Histogram
	issuesDiagnosed   *prometheus.CounterVec
	percentileQueries prometheus.Counter
	histogramBuilds   prometheus.Counter

	// Population - synthetic benchmark generation
	populationBuilds        prometheus.Counter
	populationBuildDuration prometheus.Histogram
	populationSize          prometheus.Gauge

	// Rendering and batch processing
	reportsRendered *prometheus.CounterVec
	batchWorkers    prometheus.Gauge
	batchJobErrors  prometheus.Counter
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

// Initialize global metrics.
func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "throwbench",
		subsystem:        "analyzer",
		histogramBuckets: prometheus.DefBuckets,
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.throwsIngested = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "throws_ingested_total",
		Help:      "Total number of throw rows accepted from input files",
	})

	m.rowsDuplicate = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "rows_duplicate_total",
		Help:      "Total number of rows dropped for carrying an already-seen id",
	})

	m.filesIngested = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "files_ingested_total",
			Help:      "Total number of session files read, by format",
		},
		[]string{"format"},
	)

	m.ingestionErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "ingestion_errors_total",
		Help:      "Total number of files rejected as unreadable or malformed",
	})

	m.sessionsAnalyzed = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "sessions_analyzed_total",
		Help:      "Total number of sessions run through the full pipeline",
	})

	m.analyzeDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "analyze_duration_milliseconds",
		Help:      "End-to-end analysis duration in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.issuesDiagnosed = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "issues_diagnosed_total",
			Help:      "Total number of coaching issues raised, by metric",
		},
		[]string{"metric"},
	)

	m.percentileQueries = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "percentile_queries_total",
		Help:      "Total number of percentile lookups against the population",
	})

	m.histogramBuilds = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "histogram_builds_total",
		Help:      "Total number of histogram bucketings computed",
	})

	m.populationBuilds = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "population_builds_total",
		Help:      "Total number of synthetic population generations",
	})

	m.populationBuildDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "population_build_duration_milliseconds",
		Help:      "Population generation and sort duration in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.populationSize = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "population_size",
		Help:      "Sample count of the most recently generated population",
	})

	m.reportsRendered = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "reports_rendered_total",
			Help:      "Total number of reports written, by output format",
		},
		[]string{"format"},
	)

	m.batchWorkers = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "batch_workers",
		Help:      "Number of workers in the multi-file batch pool",
	})

	m.batchJobErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "batch_job_errors_total",
		Help:      "Total number of batch jobs that ended in an error",
	})
}

// RecordThrowsIngested adds accepted rows to the ingestion counter.
func RecordThrowsIngested(n int) {
	globalManager.throwsIngested.Add(float64(n))
}

// RecordRowDuplicate increments the duplicate-row counter.
func RecordRowDuplicate() {
	globalManager.rowsDuplicate.Inc()
}

// RecordFileIngested increments the per-format file counter.
func RecordFileIngested(format string) {
	globalManager.filesIngested.WithLabelValues(format).Inc()
}

// RecordIngestionError increments the rejected-file counter.
func RecordIngestionError() {
	globalManager.ingestionErrors.Inc()
}

// RecordSessionAnalyzed increments the analyzed-session counter.
func RecordSessionAnalyzed() {
	globalManager.sessionsAnalyzed.Inc()
}

// RecordAnalyzeDuration records one full pipeline run in milliseconds.
func RecordAnalyzeDuration(ms float64) {
	globalManager.analyzeDuration.Observe(ms)
}

// RecordIssueDiagnosed increments the issue counter for one metric.
func RecordIssueDiagnosed(metric string) {
	globalManager.issuesDiagnosed.WithLabelValues(metric).Inc()
}

// RecordPercentileQuery increments the percentile lookup counter.
func RecordPercentileQuery() {
	globalManager.percentileQueries.Inc()
}

// RecordHistogramBuild increments the histogram bucketing counter.
func RecordHistogramBuild() {
	globalManager.histogramBuilds.Inc()
}

// RecordPopulationBuild records one generation and its duration.
func RecordPopulationBuild(ms float64, size int) {
	globalManager.populationBuilds.Inc()
	globalManager.populationBuildDuration.Observe(ms)
	globalManager.populationSize.Set(float64(size))
}

// RecordReportRendered increments the per-format report counter.
func RecordReportRendered(format string) {
	globalManager.reportsRendered.WithLabelValues(format).Inc()
}

// UpdateBatchWorkers sets the current batch pool size.
func UpdateBatchWorkers(n int) {
	globalManager.batchWorkers.Set(float64(n))
}

// RecordBatchJobError increments the failed-job counter.
func RecordBatchJobError() {
	globalManager.batchJobErrors.Inc()
}

// WriteText dumps every metric on the global registry to w in the Prometheus
// text exposition format. This is the CLI's substitute for a scrape endpoint.
func WriteText(w io.Writer) error {
	families, err := customRegistry.Gather()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrGatherFailed, err)
	}

	enc := expfmt.NewEncoder(w, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, mf := range families {
		if err := enc.Encode(mf); err != nil {
			return fmt.Errorf("%w: %v", ErrEncodeFailed, err)
		}
	}
	return nil
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
