package storage

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/cvforge/chronicle/pkg/service/sanitize"
)

const (
	// MaxDepth bounds document nesting; timelines are nested but shallow
	MaxDepth = 15
	// MaxDocumentSize approximates the Firestore per-document limit
	MaxDocumentSize = 1 << 20
)

// ValidationResult carries the outcome of a storage-safety check. Critical
// errors abort the write tier; warnings only mean the auto-sanitized
// document differs from the input.
type ValidationResult struct {
	Sanitized map[string]any
	Errors    []string
	Warnings  []string
}

// Valid reports whether the document passed without errors
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// ValidateDocument re-checks an already-sanitized payload against storage
// constraints: no unsupported value types, no undefined markers, bounded
// nesting depth and bounded serialized size. Required-field policy is
// relaxed since timeline fields are inherently optional. In strict mode an
// empty leftover value is an error instead of an auto-sanitized warning.
func ValidateDocument(doc map[string]any, strict bool) *ValidationResult {
	result := &ValidationResult{}

	walkValue(doc, "", 0, strict, result)

	cleaned, _ := sanitize.RemoveEmptyValues(doc).(map[string]any)
	result.Sanitized = cleaned

	if serialized, err := json.Marshal(cleaned); err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("document is not serializable: %v", err))
	} else if len(serialized) > MaxDocumentSize {
		result.Errors = append(result.Errors, fmt.Sprintf("document size %d exceeds limit %d", len(serialized), MaxDocumentSize))
	}

	return result
}

func walkValue(value any, path string, depth int, strict bool, result *ValidationResult) {
	if depth > MaxDepth {
		result.Errors = append(result.Errors, fmt.Sprintf("nesting depth exceeds %d at %s", MaxDepth, path))
		return
	}

	switch v := value.(type) {
	case nil:
		result.Errors = append(result.Errors, fmt.Sprintf("undefined value at %s", path))
	case string:
		if v == "undefined" {
			result.Errors = append(result.Errors, fmt.Sprintf("undefined marker at %s", path))
		} else if strings.TrimSpace(v) == "" {
			report(result, strict, fmt.Sprintf("empty string at %s", path))
		}
	case bool, int, int32, int64, float32, float64, time.Time:
	case []any:
		if len(v) == 0 {
			report(result, strict, fmt.Sprintf("empty array at %s", path))
			return
		}
		for i, item := range v {
			walkValue(item, fmt.Sprintf("%s[%d]", path, i), depth+1, strict, result)
		}
	case map[string]any:
		if len(v) == 0 {
			report(result, strict, fmt.Sprintf("empty map at %s", path))
			return
		}
		for key, item := range v {
			childPath := key
			if path != "" {
				childPath = path + "." + key
			}
			walkValue(item, childPath, depth+1, strict, result)
		}
	default:
		result.Errors = append(result.Errors, fmt.Sprintf("unsupported value type %T at %s", value, path))
	}
}

func report(result *ValidationResult, strict bool, msg string) {
	if strict {
		result.Errors = append(result.Errors, msg)
	} else {
		result.Warnings = append(result.Warnings, msg)
	}
}
