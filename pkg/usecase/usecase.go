package usecase

import (
	"github.com/cvforge/chronicle/pkg/domain/interfaces"
	"github.com/cvforge/chronicle/pkg/service/sanitize"
	"github.com/cvforge/chronicle/pkg/service/storage"
	"github.com/cvforge/chronicle/pkg/service/timeline"
)

type UseCases struct {
	repo     interfaces.Repository
	timeline *timeline.Service
	cleaner  *sanitize.Cleaner
	gateway  *storage.Gateway

	Timeline *TimelineUseCase
}

type Option func(*UseCases)

// WithTimelineService replaces the event processing service, e.g. with
// custom industry keywords loaded from configuration.
func WithTimelineService(svc *timeline.Service) Option {
	return func(uc *UseCases) {
		uc.timeline = svc
	}
}

// WithCleaner replaces the sanitization pipeline
func WithCleaner(cleaner *sanitize.Cleaner) Option {
	return func(uc *UseCases) {
		uc.cleaner = cleaner
	}
}

// WithGateway replaces the storage gateway
func WithGateway(gw *storage.Gateway) Option {
	return func(uc *UseCases) {
		uc.gateway = gw
	}
}

func New(repo interfaces.Repository, opts ...Option) *UseCases {
	uc := &UseCases{
		repo: repo,
	}

	for _, opt := range opts {
		opt(uc)
	}

	if uc.timeline == nil {
		uc.timeline = timeline.New()
	}
	if uc.cleaner == nil {
		uc.cleaner = sanitize.NewCleaner()
	}
	if uc.gateway == nil && repo != nil {
		uc.gateway = storage.NewGateway(repo.Timeline())
	}

	uc.Timeline = NewTimelineUseCase(repo, uc.timeline, uc.cleaner, uc.gateway)

	return uc
}
