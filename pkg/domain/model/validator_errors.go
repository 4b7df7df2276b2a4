package model

// Context keys for error values
const (
	EventIndexKey = "event_index"
	JobIDKey      = "job_id"
)
