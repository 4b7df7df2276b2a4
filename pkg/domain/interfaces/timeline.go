package interfaces

import (
	"context"

	"github.com/cvforge/chronicle/pkg/domain/model"
	"github.com/cvforge/chronicle/pkg/domain/types"
)

// TimelineRepository persists timeline records keyed by job ID. Put writes
// the whole record wholesale; concurrent regenerations for the same job are
// last-writer-wins and must be serialized by the caller when exactly-once
// semantics are needed.
type TimelineRepository interface {
	Put(ctx context.Context, jobID types.JobID, record *model.TimelineRecord) error
	Get(ctx context.Context, jobID types.JobID) (*model.TimelineRecord, error)
}
