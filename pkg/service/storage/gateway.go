package storage

import (
	"context"
	"strings"
	"time"

	"github.com/cvforge/chronicle/pkg/domain/interfaces"
	"github.com/cvforge/chronicle/pkg/domain/model"
	"github.com/cvforge/chronicle/pkg/domain/types"
	"github.com/cvforge/chronicle/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
)

// Cleaning version tags recorded on stored documents
const (
	CleaningVersion        = "2.1.0"
	cleaningVersionFall    = CleaningVersion + "-fallback"
	cleaningVersionMinimal = CleaningVersion + "-minimal"
)

const defaultRetryAttempts = 3

// Storage errors
var (
	ErrCompleteStorageFailure = goerr.New("complete storage failure")
)

// Gateway persists sanitized timeline data with a three-tier fallback:
// full write, reduced fallback write, minimal error write. Only the failure
// of all three tiers surfaces an error to the caller.
type Gateway struct {
	repo     interfaces.TimelineRepository
	attempts int
	now      func() time.Time
}

// Option configures a Gateway
type Option func(*Gateway)

// WithRetryAttempts sets the write attempt count per tier
func WithRetryAttempts(attempts int) Option {
	return func(g *Gateway) {
		if attempts > 0 {
			g.attempts = attempts
		}
	}
}

// WithClock replaces the time source (tests)
func WithClock(now func() time.Time) Option {
	return func(g *Gateway) {
		g.now = now
	}
}

// NewGateway creates a Gateway over the given timeline repository
func NewGateway(repo interfaces.TimelineRepository, opts ...Option) *Gateway {
	g := &Gateway{
		repo:     repo,
		attempts: defaultRetryAttempts,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Store validates and persists the timeline document for a job. Validation
// warnings proceed with the auto-sanitized document; critical errors or
// write failures drop to the fallback tier, then to the minimal tier.
func (g *Gateway) Store(ctx context.Context, jobID types.JobID, data *model.TimelineData) error {
	logger := logging.From(ctx)

	if data == nil {
		return goerr.New("timeline data is nil", goerr.V(model.JobIDKey, jobID.String()))
	}
	if err := jobID.Validate(); err != nil {
		return goerr.Wrap(err, "invalid job ID for storage")
	}

	result := ValidateDocument(data.Document(), false)
	if result.Valid() || !hasCriticalErrors(result.Errors) {
		if len(result.Warnings) > 0 {
			logger.Warn("timeline document auto-sanitized before write",
				"job_id", jobID.String(),
				"warnings", len(result.Warnings))
		}

		record := &model.TimelineRecord{
			Enabled: true,
			Status:  types.TimelineStatusCompleted,
			Data:    result.Sanitized,
			DataQuality: model.DataQuality{
				EventsCount:      len(data.Events),
				ValidationPassed: result.Valid(),
				CleaningVersion:  CleaningVersion,
				WarningCount:     len(result.Warnings),
			},
		}
		err := g.putWithRetry(ctx, jobID, record)
		if err == nil {
			logger.Info("timeline stored", "job_id", jobID.String(), "events", len(data.Events))
			return nil
		}
		logger.Error("primary timeline write failed, attempting fallback",
			"job_id", jobID.String(), "error", err.Error())
	} else {
		logger.Error("timeline document failed storage validation, attempting fallback",
			"job_id", jobID.String(),
			"errors", result.Errors)
	}

	return g.storeFallback(ctx, jobID, data)
}

// storeFallback rebuilds a reduced-fidelity document with every field
// coerced to a primitive-safe form and re-validates it strictly
func (g *Gateway) storeFallback(ctx context.Context, jobID types.JobID, data *model.TimelineData) error {
	logger := logging.From(ctx)

	fallbackDoc := g.fallbackDocument(data)
	result := ValidateDocument(fallbackDoc, true)
	if result.Valid() {
		record := &model.TimelineRecord{
			Enabled: true,
			Status:  types.TimelineStatusCompleted,
			Data:    result.Sanitized,
			DataQuality: model.DataQuality{
				EventsCount:      countEvents(result.Sanitized),
				ValidationPassed: true,
				CleaningVersion:  cleaningVersionFall,
				IsFallback:       true,
			},
		}
		err := g.putWithRetry(ctx, jobID, record)
		if err == nil {
			logger.Warn("timeline stored via fallback path", "job_id", jobID.String())
			return nil
		}
		logger.Error("fallback timeline write failed, attempting minimal write",
			"job_id", jobID.String(), "error", err.Error())
	} else {
		logger.Error("fallback document failed strict validation, attempting minimal write",
			"job_id", jobID.String(),
			"errors", result.Errors)
	}

	return g.storeMinimal(ctx, jobID)
}

// storeMinimal writes a fixed empty-events structure tagged failed. This
// tier must succeed or the caller receives a hard failure for the job.
func (g *Gateway) storeMinimal(ctx context.Context, jobID types.JobID) error {
	record := &model.TimelineRecord{
		Enabled: true,
		Status:  types.TimelineStatusFailed,
		Error:   "storage validation failed",
		Data:    minimalDocument(),
		DataQuality: model.DataQuality{
			EventsCount:       0,
			ValidationPassed:  false,
			CleaningVersion:   cleaningVersionMinimal,
			IsMinimalFallback: true,
		},
	}

	if err := g.putWithRetry(ctx, jobID, record); err != nil {
		return goerr.Wrap(ErrCompleteStorageFailure, "all storage tiers failed",
			goerr.V(model.JobIDKey, jobID.String()),
			goerr.V("cause", err.Error()))
	}

	logging.From(ctx).Warn("timeline stored via minimal path", "job_id", jobID.String())
	return nil
}

func (g *Gateway) putWithRetry(ctx context.Context, jobID types.JobID, record *model.TimelineRecord) error {
	var lastErr error
	for attempt := 1; attempt <= g.attempts; attempt++ {
		err := g.repo.Put(ctx, jobID, record)
		if err == nil {
			return nil
		}
		lastErr = err

		if attempt < g.attempts {
			backoff := time.Duration(attempt) * 100 * time.Millisecond
			select {
			case <-ctx.Done():
				return goerr.Wrap(ctx.Err(), "storage write canceled",
					goerr.V(model.JobIDKey, jobID.String()))
			case <-time.After(backoff):
			}
		}
	}
	return goerr.Wrap(lastErr, "storage write failed after retries",
		goerr.V(model.JobIDKey, jobID.String()),
		goerr.V("attempts", g.attempts))
}

// fallbackDocument coerces the timeline into a flat, primitive-safe shape:
// arrays and nested metrics are dropped, strings are trimmed and defaulted
func (g *Gateway) fallbackDocument(data *model.TimelineData) map[string]any {
	events := make([]any, 0, len(data.Events))
	for _, event := range data.Events {
		if strings.TrimSpace(event.ID) == "" {
			continue
		}
		eventType := event.Type
		if !eventType.IsValid() {
			eventType = types.EventTypeWork
		}
		doc := map[string]any{
			"id":           strings.TrimSpace(event.ID),
			"type":         eventType.String(),
			"title":        coalesce(event.Title, "Experience"),
			"organization": coalesce(event.Organization, "Unknown"),
			"startDate":    coalesce(event.StartDate, g.now().UTC().Format(time.RFC3339)),
		}
		if event.EndDate != "" {
			doc["endDate"] = event.EndDate
		}
		if event.Current {
			doc["current"] = true
		}
		if desc := strings.TrimSpace(event.Description); desc != "" {
			doc["description"] = desc
		}
		events = append(events, doc)
	}

	defaults := model.DefaultInsights()
	doc := map[string]any{
		"summary": map[string]any{
			"totalYearsExperience": data.Summary.TotalYearsExperience,
			"companiesWorked":      data.Summary.CompaniesWorked,
			"degreesEarned":        data.Summary.DegreesEarned,
			"certificationsEarned": data.Summary.CertificationsEarned,
		},
		"insights": map[string]any{
			"careerProgression": coalesce(data.Insights.CareerProgression, defaults.CareerProgression),
			"skillEvolution":    coalesce(data.Insights.SkillEvolution, defaults.SkillEvolution),
		},
	}
	if len(events) > 0 {
		doc["events"] = events
	}
	return doc
}

// minimalDocument has no events key at all: an empty array would violate
// the no-empty-values storage invariant, so zero events means omission
func minimalDocument() map[string]any {
	return map[string]any{
		"summary": map[string]any{
			"totalYearsExperience": 0,
			"companiesWorked":      0,
			"degreesEarned":        0,
			"certificationsEarned": 0,
		},
		"insights": map[string]any{
			"careerProgression": "Timeline generation failed - data not available",
			"skillEvolution":    "Timeline generation failed - data not available",
		},
	}
}

func hasCriticalErrors(errors []string) bool {
	for _, e := range errors {
		if strings.Contains(e, "undefined") ||
			strings.Contains(e, "unsupported") ||
			strings.Contains(e, "exceeds") {
			return true
		}
	}
	return false
}

func countEvents(doc map[string]any) int {
	events, _ := doc["events"].([]any)
	return len(events)
}

func coalesce(s, fallback string) string {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return fallback
	}
	return trimmed
}
