package types

import (
	"strings"

	"github.com/m-mizutani/goerr/v2"
)

// JobID identifies one CV processing job. It is the storage key for the
// job's timeline document.
type JobID string

// Validate checks if the job ID is usable as a document key
func (id JobID) Validate() error {
	trimmed := strings.TrimSpace(string(id))
	if trimmed == "" {
		return goerr.New("job ID is empty")
	}
	if strings.Contains(trimmed, "/") {
		return goerr.New("job ID must not contain a path separator", goerr.V("job_id", string(id)))
	}
	return nil
}

// String returns the string representation of the job ID
func (id JobID) String() string {
	return string(id)
}
