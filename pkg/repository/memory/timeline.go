package memory

import (
	"context"
	"sync"
	"time"

	"github.com/cvforge/chronicle/pkg/domain/model"
	"github.com/cvforge/chronicle/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

var ErrNotFound = goerr.New("timeline not found")

type timelineRepository struct {
	mu      sync.RWMutex
	records map[types.JobID]*model.TimelineRecord
}

func newTimelineRepository() *timelineRepository {
	return &timelineRepository{
		records: make(map[types.JobID]*model.TimelineRecord),
	}
}

// copyValue creates a deep copy of a document value so callers cannot
// mutate stored state through retained references.
func copyValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		m := make(map[string]any, len(val))
		for k, e := range val {
			m[k] = copyValue(e)
		}
		return m
	case []any:
		s := make([]any, len(val))
		for i, e := range val {
			s[i] = copyValue(e)
		}
		return s
	case []string:
		s := make([]string, len(val))
		copy(s, val)
		return s
	default:
		return v
	}
}

func copyRecord(r *model.TimelineRecord) *model.TimelineRecord {
	copied := *r
	if r.Data != nil {
		copied.Data = copyValue(r.Data).(map[string]any)
	}
	return &copied
}

func (r *timelineRepository) Put(ctx context.Context, jobID types.JobID, record *model.TimelineRecord) error {
	if err := jobID.Validate(); err != nil {
		return goerr.Wrap(err, "invalid job ID")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	stored := copyRecord(record)
	if stored.GeneratedAt.IsZero() {
		// Firestore fills serverTimestamp fields on write
		stored.GeneratedAt = time.Now()
	}
	r.records[jobID] = stored
	return nil
}

func (r *timelineRepository) Get(ctx context.Context, jobID types.JobID) (*model.TimelineRecord, error) {
	if err := jobID.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid job ID")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	record, ok := r.records[jobID]
	if !ok {
		return nil, goerr.Wrap(ErrNotFound, "job has no timeline", goerr.V("jobID", jobID))
	}
	return copyRecord(record), nil
}
