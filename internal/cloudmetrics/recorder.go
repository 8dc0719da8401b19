package cloudmetrics

import (
	"strings"
	"sync"
)

// Recorder receives accounting events from the report pipeline. The
// package-level functions route through the active recorder so services
// never depend on cloud wiring; on OSS installs they hit a noop.
type Recorder interface {
	RecordDatasetPrepared(records int)
	RecordFetchFailure(table string)
	RecordExportRendered(format string)
	RecordCacheEvent(cache, outcome string)
}

type recorder struct {
	metrics *metrics
	org     string
}

func newRecorder(m *metrics, org string) *recorder {
	return &recorder{metrics: m, org: org}
}

type noopRecorder struct{}

func (noopRecorder) RecordDatasetPrepared(int)       {}
func (noopRecorder) RecordFetchFailure(string)       {}
func (noopRecorder) RecordExportRendered(string)     {}
func (noopRecorder) RecordCacheEvent(string, string) {}

var (
	activeRecorder Recorder = noopRecorder{}
	recorderMu     sync.RWMutex
)

func setRecorder(rec Recorder) {
	if rec == nil {
		return
	}
	recorderMu.Lock()
	activeRecorder = rec
	recorderMu.Unlock()
}

func RecordDatasetPrepared(records int) {
	recorderMu.RLock()
	rec := activeRecorder
	recorderMu.RUnlock()
	rec.RecordDatasetPrepared(records)
}

func RecordFetchFailure(table string) {
	recorderMu.RLock()
	rec := activeRecorder
	recorderMu.RUnlock()
	rec.RecordFetchFailure(table)
}

func RecordExportRendered(format string) {
	recorderMu.RLock()
	rec := activeRecorder
	recorderMu.RUnlock()
	rec.RecordExportRendered(format)
}

func RecordCacheEvent(cache, outcome string) {
	recorderMu.RLock()
	rec := activeRecorder
	recorderMu.RUnlock()
	rec.RecordCacheEvent(cache, outcome)
}

func (r *recorder) RecordDatasetPrepared(records int) {
	if r == nil || r.metrics == nil {
		return
	}
	if records < 0 {
		records = 0
	}
	r.metrics.datasetsPrepared.WithLabelValues(r.org).Inc()
	r.metrics.datasetRecords.WithLabelValues(r.org).Set(float64(records))
}

func (r *recorder) RecordFetchFailure(table string) {
	if r == nil || r.metrics == nil {
		return
	}
	r.metrics.fetchFailures.WithLabelValues(r.org, normalizeLabel(table)).Inc()
}

func (r *recorder) RecordExportRendered(format string) {
	if r == nil || r.metrics == nil {
		return
	}
	r.metrics.exportsRendered.WithLabelValues(r.org, normalizeLabel(format)).Inc()
}

func (r *recorder) RecordCacheEvent(cache, outcome string) {
	if r == nil || r.metrics == nil {
		return
	}
	r.metrics.cacheEvents.WithLabelValues(r.org, normalizeLabel(cache), normalizeLabel(outcome)).Inc()
}

func normalizeLabel(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return "unknown"
	}
	return value
}
