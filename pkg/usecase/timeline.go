package usecase

import (
	"context"

	"github.com/cvforge/chronicle/pkg/domain/interfaces"
	"github.com/cvforge/chronicle/pkg/domain/model"
	"github.com/cvforge/chronicle/pkg/domain/types"
	"github.com/cvforge/chronicle/pkg/service/sanitize"
	"github.com/cvforge/chronicle/pkg/service/storage"
	"github.com/cvforge/chronicle/pkg/service/timeline"
	"github.com/cvforge/chronicle/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
)

type TimelineUseCase struct {
	repo     interfaces.Repository
	timeline *timeline.Service
	cleaner  *sanitize.Cleaner
	gateway  *storage.Gateway
}

func NewTimelineUseCase(repo interfaces.Repository, svc *timeline.Service, cleaner *sanitize.Cleaner, gateway *storage.Gateway) *TimelineUseCase {
	return &TimelineUseCase{
		repo:     repo,
		timeline: svc,
		cleaner:  cleaner,
		gateway:  gateway,
	}
}

// Generate runs the full pipeline for one job: converts CV sections to
// timeline events, derives summary and insights, sanitizes the result, and
// persists it when a storage gateway is configured. An empty CV is not an
// error; it produces a timeline with zero events and default insights.
func (uc *TimelineUseCase) Generate(ctx context.Context, jobID types.JobID, cv *model.CV) (*model.TimelineData, error) {
	if err := jobID.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid job ID")
	}
	if cv == nil {
		return nil, goerr.New("cv is required", goerr.V(model.JobIDKey, jobID))
	}

	logger := logging.From(ctx)

	events := uc.timeline.ProcessCV(ctx, cv)
	data := &model.TimelineData{
		Events:   events,
		Summary:  uc.timeline.GenerateSummary(events, cv),
		Insights: uc.timeline.GenerateInsights(ctx, events, cv),
	}

	cleaned := uc.cleaner.CleanTimelineData(ctx, data)

	if uc.gateway == nil {
		logger.Debug("no storage gateway configured, skipping persistence",
			"job_id", jobID.String())
		return cleaned, nil
	}

	if err := uc.gateway.Store(ctx, jobID, cleaned); err != nil {
		return nil, goerr.Wrap(err, "failed to store timeline", goerr.V(model.JobIDKey, jobID))
	}

	return cleaned, nil
}

// Validate sanitizes the given timeline data and reports whether the
// resulting document would be accepted by the persistence layer.
func (uc *TimelineUseCase) Validate(ctx context.Context, data *model.TimelineData) (*storage.ValidationResult, error) {
	if data == nil {
		return nil, goerr.New("timeline data is required")
	}

	cleaned := uc.cleaner.CleanTimelineData(ctx, data)
	return storage.ValidateDocument(cleaned.Document(), false), nil
}

// Get returns the stored timeline record for a job
func (uc *TimelineUseCase) Get(ctx context.Context, jobID types.JobID) (*model.TimelineRecord, error) {
	if err := jobID.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid job ID")
	}
	if uc.repo == nil {
		return nil, goerr.Wrap(ErrStorageDisabled, "cannot read timeline", goerr.V(model.JobIDKey, jobID))
	}

	record, err := uc.repo.Timeline().Get(ctx, jobID)
	if err != nil {
		return nil, goerr.Wrap(ErrTimelineNotFound, "timeline not found", goerr.V(model.JobIDKey, jobID))
	}
	return record, nil
}
