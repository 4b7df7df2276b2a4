package types

import "fmt"

// EventType represents the kind of CV milestone a timeline event describes
type EventType string

const (
	EventTypeWork          EventType = "work"
	EventTypeEducation     EventType = "education"
	EventTypeAchievement   EventType = "achievement"
	EventTypeCertification EventType = "certification"
)

// AllEventTypes returns all valid event types
func AllEventTypes() []EventType {
	return []EventType{
		EventTypeWork,
		EventTypeEducation,
		EventTypeAchievement,
		EventTypeCertification,
	}
}

// IsValid checks if the event type is valid
func (t EventType) IsValid() bool {
	switch t {
	case EventTypeWork,
		EventTypeEducation,
		EventTypeAchievement,
		EventTypeCertification:
		return true
	default:
		return false
	}
}

// String returns the string representation of the event type
func (t EventType) String() string {
	return string(t)
}

// ParseEventType parses a string into an EventType
func ParseEventType(s string) (EventType, error) {
	t := EventType(s)
	if !t.IsValid() {
		return "", fmt.Errorf("invalid event type: %s", s)
	}
	return t, nil
}
