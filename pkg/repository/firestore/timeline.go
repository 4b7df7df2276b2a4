package firestore

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/cvforge/chronicle/pkg/domain/model"
	"github.com/cvforge/chronicle/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

var ErrNotFound = goerr.New("timeline not found")

// jobDoc is the Firestore document representation of a job. The timeline
// record lives under the cvTimeline field so that other job fields owned by
// surrounding services survive a wholesale timeline rewrite.
type jobDoc struct {
	CVTimeline *model.TimelineRecord `firestore:"cvTimeline"`
}

type timelineRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newTimelineRepository(client *firestore.Client) *timelineRepository {
	return &timelineRepository{
		client:           client,
		collectionPrefix: "",
	}
}

func (r *timelineRepository) jobsCollection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_jobs"
	}
	return "jobs"
}

func (r *timelineRepository) Put(ctx context.Context, jobID types.JobID, record *model.TimelineRecord) error {
	if err := jobID.Validate(); err != nil {
		return goerr.Wrap(err, "invalid job ID")
	}

	docRef := r.client.Collection(r.jobsCollection()).Doc(jobID.String())
	_, err := docRef.Set(ctx, jobDoc{CVTimeline: record}, firestore.Merge(firestore.FieldPath{"cvTimeline"}))
	if err != nil {
		return goerr.Wrap(err, "failed to put timeline", goerr.V("jobID", jobID))
	}
	return nil
}

func (r *timelineRepository) Get(ctx context.Context, jobID types.JobID) (*model.TimelineRecord, error) {
	if err := jobID.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid job ID")
	}

	docRef := r.client.Collection(r.jobsCollection()).Doc(jobID.String())
	doc, err := docRef.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "job not found", goerr.V("jobID", jobID))
		}
		return nil, goerr.Wrap(err, "failed to get timeline", goerr.V("jobID", jobID))
	}

	var job jobDoc
	if err := doc.DataTo(&job); err != nil {
		return nil, goerr.Wrap(err, "failed to decode job document", goerr.V("jobID", jobID))
	}
	if job.CVTimeline == nil {
		return nil, goerr.Wrap(ErrNotFound, "job has no timeline", goerr.V("jobID", jobID))
	}
	return job.CVTimeline, nil
}
