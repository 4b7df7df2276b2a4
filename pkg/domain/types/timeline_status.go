package types

import "fmt"

// TimelineStatus represents the outcome recorded on a stored timeline document
type TimelineStatus string

const (
	TimelineStatusCompleted TimelineStatus = "completed"
	TimelineStatusFailed    TimelineStatus = "failed"
)

// AllTimelineStatuses returns all valid timeline statuses
func AllTimelineStatuses() []TimelineStatus {
	return []TimelineStatus{
		TimelineStatusCompleted,
		TimelineStatusFailed,
	}
}

// IsValid checks if the timeline status is valid
func (s TimelineStatus) IsValid() bool {
	switch s {
	case TimelineStatusCompleted, TimelineStatusFailed:
		return true
	default:
		return false
	}
}

// String returns the string representation of the timeline status
func (s TimelineStatus) String() string {
	return string(s)
}

// ParseTimelineStatus parses a string into a TimelineStatus
func ParseTimelineStatus(s string) (TimelineStatus, error) {
	status := TimelineStatus(s)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid timeline status: %s", s)
	}
	return status, nil
}
