package model

import (
	"log/slog"
	"time"

	"github.com/cvforge/chronicle/pkg/domain/types"
	"github.com/google/uuid"
)

// DataQualityMetrics is the audit record of one sanitization run. It is
// logged for telemetry and never persisted with the timeline itself.
type DataQualityMetrics struct {
	RunID            string
	TotalEvents      int
	CleanedEvents    int
	ValidationErrors int
	FieldsRemoved    map[types.EventField]int
	ProcessingTime   time.Duration
}

// NewDataQualityMetrics creates a metrics accumulator for a run over the
// given number of raw events
func NewDataQualityMetrics(totalEvents int) *DataQualityMetrics {
	return &DataQualityMetrics{
		RunID:         uuid.NewString(),
		TotalEvents:   totalEvents,
		FieldsRemoved: make(map[types.EventField]int),
	}
}

// CountRemoved records the removal of one field value
func (m *DataQualityMetrics) CountRemoved(field types.EventField) {
	m.FieldsRemoved[field]++
}

// TotalFieldsRemoved sums the per-field removal counters
func (m *DataQualityMetrics) TotalFieldsRemoved() int {
	total := 0
	for _, n := range m.FieldsRemoved {
		total += n
	}
	return total
}

// SuccessRate returns the share of events that survived cleaning, in percent
func (m *DataQualityMetrics) SuccessRate() float64 {
	if m.TotalEvents == 0 {
		return 100.0
	}
	return float64(m.CleanedEvents) / float64(m.TotalEvents) * 100.0
}

// LogValue renders the metrics as a structured log group
func (m *DataQualityMetrics) LogValue() slog.Value {
	removed := make([]slog.Attr, 0, len(m.FieldsRemoved))
	for field, n := range m.FieldsRemoved {
		if n > 0 {
			removed = append(removed, slog.Int(field.String(), n))
		}
	}
	return slog.GroupValue(
		slog.String("run_id", m.RunID),
		slog.Int("total_events", m.TotalEvents),
		slog.Int("cleaned_events", m.CleanedEvents),
		slog.Int("validation_errors", m.ValidationErrors),
		slog.Float64("success_rate", m.SuccessRate()),
		slog.Any("fields_removed", slog.GroupValue(removed...)),
		slog.Duration("processing_time", m.ProcessingTime),
	)
}
