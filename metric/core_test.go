package metric

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister(t *testing.T) {
	m := NewMetrics()
	reg := prometheus.NewRegistry()
	require.NoError(t, m.Register(reg))

	// Re-registering the same collectors must fail.
	assert.Error(t, m.Register(reg))
}

func TestCounters(t *testing.T) {
	m := NewMetrics()

	m.RecordPage("src", "ok")
	m.RecordParsed("src", 3)
	m.RecordWritten("src", "create")
	m.RecordWritten("src", "update")
	m.RecordSkipped("src", "excluded_identifier")
	m.RecordUnchanged("src")
	m.RecordError("src", "guid")
	m.RecordVocabularyMiss("frequency")
	m.RecordPageDuration("src", 250*time.Millisecond)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.PagesProcessed.WithLabelValues("src", "ok")))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.DatasetsParsed.WithLabelValues("src")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.DatasetsWritten.WithLabelValues("src", "create")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.DatasetsWritten.WithLabelValues("src", "update")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.DatasetsSkipped.WithLabelValues("src", "excluded_identifier")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.DatasetsUnchanged.WithLabelValues("src")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ErrorsTotal.WithLabelValues("src", "guid")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.VocabularyMisses.WithLabelValues("frequency")))
}
