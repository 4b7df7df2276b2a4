package usecase

import "errors"

// Sentinel errors for use case layer
var (
	ErrTimelineNotFound = errors.New("timeline not found")
	ErrStorageDisabled  = errors.New("storage is not configured")
)
