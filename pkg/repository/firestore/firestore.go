package firestore

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/cvforge/chronicle/pkg/domain/interfaces"
	"github.com/m-mizutani/goerr/v2"
)

type Firestore struct {
	client   *firestore.Client
	timeline *timelineRepository
}

var _ interfaces.Repository = &Firestore{}

type Option func(*Firestore)

// WithCollectionPrefix prepends a prefix to all collection names. Used by
// integration tests to isolate runs against a shared database.
func WithCollectionPrefix(prefix string) Option {
	return func(f *Firestore) {
		f.timeline.collectionPrefix = prefix
	}
}

func New(ctx context.Context, projectID, databaseID string, opts ...Option) (*Firestore, error) {
	client, err := firestore.NewClientWithDatabase(ctx, projectID, databaseID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create firestore client",
			goerr.V("projectID", projectID), goerr.V("databaseID", databaseID))
	}

	f := &Firestore{
		client:   client,
		timeline: newTimelineRepository(client),
	}

	for _, opt := range opts {
		opt(f)
	}

	return f, nil
}

func (f *Firestore) Timeline() interfaces.TimelineRepository {
	return f.timeline
}

func (f *Firestore) Close() error {
	if f.client != nil {
		return f.client.Close()
	}
	return nil
}
