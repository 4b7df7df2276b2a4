package model

import (
	"strings"

	"github.com/araddon/dateparse"
	"github.com/cvforge/chronicle/pkg/domain/types"
)

// FieldRule declares the expected shape of one event field
type FieldRule struct {
	Required bool
	Kind     types.FieldKind
}

// EventSchema maps event fields to their validation rules
type EventSchema map[types.EventField]FieldRule

// DefaultEventSchema returns the validation schema for timeline events
func DefaultEventSchema() EventSchema {
	return EventSchema{
		types.FieldID:           {Required: true, Kind: types.FieldKindString},
		types.FieldType:         {Required: true, Kind: types.FieldKindString},
		types.FieldTitle:        {Required: true, Kind: types.FieldKindString},
		types.FieldOrganization: {Required: true, Kind: types.FieldKindString},
		types.FieldStartDate:    {Required: true, Kind: types.FieldKindDate},
		types.FieldEndDate:      {Kind: types.FieldKindDate},
		types.FieldCurrent:      {Kind: types.FieldKindBoolean},
		types.FieldDescription:  {Kind: types.FieldKindString},
		types.FieldAchievements: {Kind: types.FieldKindArray},
		types.FieldSkills:       {Kind: types.FieldKindArray},
		types.FieldLocation:     {Kind: types.FieldKindString},
		types.FieldLogo:         {Kind: types.FieldKindString},
		types.FieldImpact:       {Kind: types.FieldKindArray},
	}
}

// FieldValidator validates event field values against an EventSchema,
// counting failures into a DataQualityMetrics accumulator. A failed field is
// dropped by the caller; only required-field failures drop the whole event.
type FieldValidator struct {
	schema EventSchema
}

// NewFieldValidator creates a FieldValidator with the given schema
func NewFieldValidator(schema EventSchema) *FieldValidator {
	return &FieldValidator{schema: schema}
}

// ValidateField checks a single field value. A nil value is valid for
// optional fields and a counted error for required ones.
func (v *FieldValidator) ValidateField(field types.EventField, value any, metrics *DataQualityMetrics) bool {
	rule, ok := v.schema[field]
	if !ok {
		return false
	}

	if value == nil {
		if rule.Required {
			metrics.ValidationErrors++
			return false
		}
		return true
	}

	if !v.validateKind(rule.Kind, value) {
		metrics.ValidationErrors++
		return false
	}
	return true
}

func (v *FieldValidator) validateKind(kind types.FieldKind, value any) bool {
	switch kind {
	case types.FieldKindString:
		s, ok := value.(string)
		return ok && strings.TrimSpace(s) != ""
	case types.FieldKindBoolean:
		_, ok := value.(bool)
		return ok
	case types.FieldKindArray:
		switch arr := value.(type) {
		case []any:
			return len(arr) > 0
		case []string:
			return len(arr) > 0
		case []ImpactMetric:
			return len(arr) > 0
		default:
			return false
		}
	case types.FieldKindDate:
		s, ok := value.(string)
		if !ok || strings.TrimSpace(s) == "" {
			return false
		}
		_, err := dateparse.ParseAny(s)
		return err == nil
	default:
		return false
	}
}
