package types

// EventField identifies one field of a timeline event
type EventField string

const (
	FieldID           EventField = "id"
	FieldType         EventField = "type"
	FieldTitle        EventField = "title"
	FieldOrganization EventField = "organization"
	FieldStartDate    EventField = "startDate"
	FieldEndDate      EventField = "endDate"
	FieldCurrent      EventField = "current"
	FieldDescription  EventField = "description"
	FieldAchievements EventField = "achievements"
	FieldSkills       EventField = "skills"
	FieldLocation     EventField = "location"
	FieldLogo         EventField = "logo"
	FieldImpact       EventField = "impact"

	// Derived-view fields tracked by the same removal counters
	FieldCareerHighlights EventField = "careerHighlights"
	FieldIndustryFocus    EventField = "industryFocus"
	FieldNextSteps        EventField = "nextSteps"
)

// String returns the string representation of the event field
func (f EventField) String() string {
	return string(f)
}

// FieldKind represents the value shape a field must carry
type FieldKind string

const (
	FieldKindString  FieldKind = "string"
	FieldKindBoolean FieldKind = "boolean"
	FieldKindArray   FieldKind = "array"
	FieldKindDate    FieldKind = "date"
)

// IsValid checks if the field kind is valid
func (k FieldKind) IsValid() bool {
	switch k {
	case FieldKindString, FieldKindBoolean, FieldKindArray, FieldKindDate:
		return true
	default:
		return false
	}
}

// String returns the string representation of the field kind
func (k FieldKind) String() string {
	return string(k)
}
