package ledger

import (
	"sync"

	"github.com/rs/zerolog"

	"platerental/logger"
)

// AnomalyKind names a recoverable data problem found while computing.
type AnomalyKind string

const (
	AnomalyMissingDate     AnomalyKind = "missing_date"
	AnomalyMissingItems    AnomalyKind = "missing_items"
	AnomalyNegativeBalance AnomalyKind = "negative_balance"
	AnomalyBadPeriod       AnomalyKind = "bad_period"
	AnomalyInvertedPeriod  AnomalyKind = "inverted_period"
	AnomalyPartialWrite    AnomalyKind = "partial_write"
)

// Reporter receives anomalies. Computation always continues after a report.
type Reporter interface {
	Report(kind AnomalyKind, fields map[string]interface{})
}

// LogReporter writes anomalies as zerolog warnings.
type LogReporter struct {
	Log zerolog.Logger
}

func NewLogReporter() *LogReporter {
	return &LogReporter{Log: logger.WithComponent("ledger")}
}

func (r *LogReporter) Report(kind AnomalyKind, fields map[string]interface{}) {
	r.Log.Warn().
		Str("anomaly", string(kind)).
		Fields(fields).
		Msg("ledger data anomaly")
}

type NopReporter struct{}

func (NopReporter) Report(AnomalyKind, map[string]interface{}) {}

// Anomaly is one report captured by RecordingReporter.
type Anomaly struct {
	Kind   AnomalyKind
	Fields map[string]interface{}
}

// RecordingReporter keeps anomalies in memory.
type RecordingReporter struct {
	mu        sync.Mutex
	anomalies []Anomaly
}

func (r *RecordingReporter) Report(kind AnomalyKind, fields map[string]interface{}) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.anomalies = append(r.anomalies, Anomaly{Kind: kind, Fields: fields})
}

func (r *RecordingReporter) Anomalies() []Anomaly {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Anomaly, len(r.anomalies))
	copy(out, r.anomalies)
	return out
}

// Count returns how many anomalies of kind were reported.
func (r *RecordingReporter) Count(kind AnomalyKind) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, a := range r.anomalies {
		if a.Kind == kind {
			n++
		}
	}
	return n
}

func orNop(r Reporter) Reporter {
	if r == nil {
		return NopReporter{}
	}
	return r
}
