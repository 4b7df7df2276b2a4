package sanitize

import (
	"strings"

	"github.com/cvforge/chronicle/pkg/domain/model"
	"github.com/cvforge/chronicle/pkg/domain/types"
)

// ArraySanitizer deep-cleans array-typed event fields. Invalid elements are
// dropped individually; a field whose cleaned result is empty is omitted and
// counted as removed, never stored as an empty array.
type ArraySanitizer struct{}

// NewArraySanitizer creates an ArraySanitizer
func NewArraySanitizer() *ArraySanitizer {
	return &ArraySanitizer{}
}

// Strings cleans a string-array field: elements are trimmed and
// empty-after-trim entries are dropped. Returns nil (and counts the field
// removed) when nothing survives.
func (s *ArraySanitizer) Strings(values []string, field types.EventField, metrics *model.DataQualityMetrics) []string {
	if values == nil {
		return nil
	}

	cleaned := make([]string, 0, len(values))
	for _, v := range values {
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			continue
		}
		cleaned = append(cleaned, trimmed)
	}

	if len(cleaned) == 0 {
		metrics.CountRemoved(field)
		return nil
	}
	return cleaned
}

// Impact cleans the impact field: each element must carry a non-empty metric
// and value after trimming.
func (s *ArraySanitizer) Impact(values []model.ImpactMetric, metrics *model.DataQualityMetrics) []model.ImpactMetric {
	if values == nil {
		return nil
	}

	cleaned := make([]model.ImpactMetric, 0, len(values))
	for _, v := range values {
		metric := strings.TrimSpace(v.Metric)
		value := strings.TrimSpace(v.Value)
		if metric == "" || value == "" {
			continue
		}
		cleaned = append(cleaned, model.ImpactMetric{Metric: metric, Value: value})
	}

	if len(cleaned) == 0 {
		metrics.CountRemoved(types.FieldImpact)
		return nil
	}
	return cleaned
}

// Any cleans an untyped array value as found in raw documents. Non-array
// input is counted as removed. The impact field gets the metric/value object
// check; string elements are trimmed and dropped when empty.
func (s *ArraySanitizer) Any(value any, field types.EventField, metrics *model.DataQualityMetrics) []any {
	arr, ok := toAnySlice(value)
	if !ok {
		metrics.CountRemoved(field)
		return nil
	}

	cleaned := make([]any, 0, len(arr))
	for _, item := range arr {
		switch v := item.(type) {
		case nil:
			continue
		case string:
			trimmed := strings.TrimSpace(v)
			if trimmed == "" {
				continue
			}
			cleaned = append(cleaned, trimmed)
		case map[string]any:
			if field == types.FieldImpact && !validImpactElement(v) {
				continue
			}
			cleaned = append(cleaned, v)
		default:
			cleaned = append(cleaned, item)
		}
	}

	if len(cleaned) == 0 {
		metrics.CountRemoved(field)
		return nil
	}
	return cleaned
}

func toAnySlice(value any) ([]any, bool) {
	switch arr := value.(type) {
	case []any:
		return arr, true
	case []string:
		out := make([]any, len(arr))
		for i, v := range arr {
			out[i] = v
		}
		return out, true
	default:
		return nil, false
	}
}

func validImpactElement(v map[string]any) bool {
	metric, ok := v["metric"].(string)
	if !ok || strings.TrimSpace(metric) == "" {
		return false
	}
	value, ok := v["value"].(string)
	if !ok || strings.TrimSpace(value) == "" {
		return false
	}
	return true
}
