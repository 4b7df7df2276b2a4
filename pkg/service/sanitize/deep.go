package sanitize

import "strings"

// RemoveEmptyValues recursively strips nil values, empty-after-trim strings,
// empty arrays and empty maps at any depth. A map that ends up entirely
// empty collapses to nil so callers can detect total failure.
func RemoveEmptyValues(value any) any {
	switch v := value.(type) {
	case nil:
		return nil
	case string:
		if strings.TrimSpace(v) == "" {
			return nil
		}
		return v
	case []any:
		cleaned := make([]any, 0, len(v))
		for _, item := range v {
			if c := RemoveEmptyValues(item); c != nil {
				cleaned = append(cleaned, c)
			}
		}
		if len(cleaned) == 0 {
			return nil
		}
		return cleaned
	case map[string]any:
		cleaned := make(map[string]any, len(v))
		for key, item := range v {
			if c := RemoveEmptyValues(item); c != nil {
				cleaned[key] = c
			}
		}
		if len(cleaned) == 0 {
			return nil
		}
		return cleaned
	default:
		return value
	}
}
