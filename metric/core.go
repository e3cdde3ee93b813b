package metric

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics contains all harvest-level metrics (not source-specific).
// A nil *Metrics is valid; every Record method becomes a no-op.
type Metrics struct {
	// Page metrics
	PagesProcessed *prometheus.CounterVec
	PageDuration   *prometheus.HistogramVec

	// Dataset metrics
	DatasetsParsed    *prometheus.CounterVec
	DatasetsWritten   *prometheus.CounterVec
	DatasetsSkipped   *prometheus.CounterVec
	DatasetsUnchanged *prometheus.CounterVec

	// Error metrics
	ErrorsTotal      *prometheus.CounterVec
	VocabularyMisses *prometheus.CounterVec
}

// NewMetrics creates a new Metrics instance with all harvest metrics
func NewMetrics() *Metrics {
	return &Metrics{
		PagesProcessed: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "dcatharvest",
				Subsystem: "pages",
				Name:      "processed_total",
				Help:      "Total number of catalog pages processed",
			},
			[]string{"source", "status"},
		),

		PageDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "dcatharvest",
				Subsystem: "pages",
				Name:      "duration_seconds",
				Help:      "Page processing duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"source"},
		),

		DatasetsParsed: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "dcatharvest",
				Subsystem: "datasets",
				Name:      "parsed_total",
				Help:      "Total number of dataset subjects parsed from source graphs",
			},
			[]string{"source"},
		),

		DatasetsWritten: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "dcatharvest",
				Subsystem: "datasets",
				Name:      "written_total",
				Help:      "Total number of datasets written to the store",
			},
			[]string{"source", "operation"},
		),

		DatasetsSkipped: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "dcatharvest",
				Subsystem: "datasets",
				Name:      "skipped_total",
				Help:      "Total number of datasets skipped before writing",
			},
			[]string{"source", "reason"},
		),

		DatasetsUnchanged: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "dcatharvest",
				Subsystem: "datasets",
				Name:      "unchanged_total",
				Help:      "Total number of datasets confirmed unchanged",
			},
			[]string{"source"},
		),

		ErrorsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "dcatharvest",
				Subsystem: "errors",
				Name:      "total",
				Help:      "Total number of harvest errors",
			},
			[]string{"source", "type"},
		),

		VocabularyMisses: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "dcatharvest",
				Subsystem: "vocabulary",
				Name:      "misses_total",
				Help:      "Total number of values dropped for missing a vocabulary table",
			},
			[]string{"table"},
		),
	}
}

// Register registers every metric with the given registerer
func (c *Metrics) Register(reg prometheus.Registerer) error {
	collectors := []prometheus.Collector{
		c.PagesProcessed,
		c.PageDuration,
		c.DatasetsParsed,
		c.DatasetsWritten,
		c.DatasetsSkipped,
		c.DatasetsUnchanged,
		c.ErrorsTotal,
		c.VocabularyMisses,
	}
	for _, col := range collectors {
		if err := reg.Register(col); err != nil {
			return err
		}
	}
	return nil
}

// RecordPage increments the processed-page counter
func (c *Metrics) RecordPage(source, status string) {
	if c == nil {
		return
	}
	c.PagesProcessed.WithLabelValues(source, status).Inc()
}

// RecordPageDuration records the time spent on one page
func (c *Metrics) RecordPageDuration(source string, duration time.Duration) {
	if c == nil {
		return
	}
	c.PageDuration.WithLabelValues(source).Observe(duration.Seconds())
}

// RecordParsed increments the parsed-dataset counter
func (c *Metrics) RecordParsed(source string, n int) {
	if c == nil {
		return
	}
	c.DatasetsParsed.WithLabelValues(source).Add(float64(n))
}

// RecordWritten increments the written-dataset counter for an operation
func (c *Metrics) RecordWritten(source, operation string) {
	if c == nil {
		return
	}
	c.DatasetsWritten.WithLabelValues(source, operation).Inc()
}

// RecordSkipped increments the skipped-dataset counter with a reason
func (c *Metrics) RecordSkipped(source, reason string) {
	if c == nil {
		return
	}
	c.DatasetsSkipped.WithLabelValues(source, reason).Inc()
}

// RecordUnchanged increments the unchanged-dataset counter
func (c *Metrics) RecordUnchanged(source string) {
	if c == nil {
		return
	}
	c.DatasetsUnchanged.WithLabelValues(source).Inc()
}

// RecordError increments the error counter
func (c *Metrics) RecordError(source, errorType string) {
	if c == nil {
		return
	}
	c.ErrorsTotal.WithLabelValues(source, errorType).Inc()
}

// RecordVocabularyMiss increments the vocabulary-miss counter
func (c *Metrics) RecordVocabularyMiss(table string) {
	if c == nil {
		return
	}
	c.VocabularyMisses.WithLabelValues(table).Inc()
}
