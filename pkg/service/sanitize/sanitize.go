package sanitize

import (
	"context"
	"math"
	"strings"
	"time"

	"github.com/cvforge/chronicle/pkg/domain/model"
	"github.com/cvforge/chronicle/pkg/domain/types"
	"github.com/cvforge/chronicle/pkg/utils/logging"
)

// Summary/insights list bounds
const (
	MaxCareerHighlights = 5
	MaxIndustryFocus    = 3
	MaxNextSteps        = 4
)

// Cleaner post-processes raw timeline data into a storage-safe structure.
// CleanTimelineData never fails: a panic anywhere in the cleaning pass falls
// back to a minimal safe structure so the pipeline always yields a storable
// object.
type Cleaner struct {
	validator *model.FieldValidator
	arrays    *ArraySanitizer
	now       func() time.Time
}

// Option configures a Cleaner
type Option func(*Cleaner)

// WithSchema replaces the event validation schema
func WithSchema(schema model.EventSchema) Option {
	return func(c *Cleaner) {
		c.validator = model.NewFieldValidator(schema)
	}
}

// WithClock replaces the time source (tests)
func WithClock(now func() time.Time) Option {
	return func(c *Cleaner) {
		c.now = now
	}
}

// NewCleaner creates a Cleaner with the default event schema
func NewCleaner(opts ...Option) *Cleaner {
	c := &Cleaner{
		validator: model.NewFieldValidator(model.DefaultEventSchema()),
		arrays:    NewArraySanitizer(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// CleanTimelineData validates and deep-cleans every event and derived field
// of the raw timeline. Events failing required-field validation are dropped;
// optional fields are trimmed and omitted when empty. Quality metrics are
// logged on every path, including the fallback one.
func (c *Cleaner) CleanTimelineData(ctx context.Context, raw *model.TimelineData) (cleaned *model.TimelineData) {
	if raw == nil {
		logging.From(ctx).Error("timeline cleaning received nil data, falling back to minimal structure")
		return c.minimalSafeStructure(nil)
	}

	started := c.now()
	metrics := model.NewDataQualityMetrics(len(raw.Events))

	defer func() {
		metrics.ProcessingTime = c.now().Sub(started)
		logging.From(ctx).Info("timeline data cleaned", "metrics", metrics)
	}()

	defer func() {
		if r := recover(); r != nil {
			metrics.ValidationErrors++
			logging.From(ctx).Error("timeline cleaning failed, falling back to minimal structure", "panic", r)
			cleaned = c.minimalSafeStructure(raw.Events)
			metrics.CleanedEvents = len(cleaned.Events)
		}
	}()

	events := make([]model.TimelineEvent, 0, len(raw.Events))
	for _, event := range raw.Events {
		if clean := c.sanitizeEvent(event, metrics); clean != nil {
			events = append(events, *clean)
		}
	}
	metrics.CleanedEvents = len(events)

	return &model.TimelineData{
		Events:   events,
		Summary:  c.sanitizeSummary(raw.Summary, metrics),
		Insights: c.sanitizeInsights(raw.Insights, metrics),
	}
}

// sanitizeEvent returns nil when any required field fails validation. Only
// the offending event is dropped; the rest of the batch continues.
func (c *Cleaner) sanitizeEvent(event model.TimelineEvent, metrics *model.DataQualityMetrics) *model.TimelineEvent {
	required := []struct {
		field types.EventField
		value any
	}{
		{types.FieldID, nonEmpty(event.ID)},
		{types.FieldType, nonEmpty(event.Type.String())},
		{types.FieldTitle, nonEmpty(event.Title)},
		{types.FieldOrganization, nonEmpty(event.Organization)},
		{types.FieldStartDate, nonEmpty(event.StartDate)},
	}
	for _, r := range required {
		if !c.validator.ValidateField(r.field, r.value, metrics) {
			return nil
		}
	}
	if !event.Type.IsValid() {
		metrics.ValidationErrors++
		return nil
	}

	clean := &model.TimelineEvent{
		ID:           strings.TrimSpace(event.ID),
		Type:         event.Type,
		Title:        strings.TrimSpace(event.Title),
		Organization: strings.TrimSpace(event.Organization),
		StartDate:    strings.TrimSpace(event.StartDate),
	}

	if event.EndDate != "" {
		if c.validator.ValidateField(types.FieldEndDate, event.EndDate, metrics) {
			clean.EndDate = strings.TrimSpace(event.EndDate)
		} else {
			metrics.CountRemoved(types.FieldEndDate)
		}
	}
	clean.Current = event.Current
	clean.Description = c.optionalString(types.FieldDescription, event.Description, metrics)
	clean.Location = c.optionalString(types.FieldLocation, event.Location, metrics)
	clean.Logo = c.optionalString(types.FieldLogo, event.Logo, metrics)

	clean.Achievements = c.arrays.Strings(event.Achievements, types.FieldAchievements, metrics)
	clean.Skills = c.arrays.Strings(event.Skills, types.FieldSkills, metrics)
	clean.Impact = c.arrays.Impact(event.Impact, metrics)

	return clean
}

func (c *Cleaner) optionalString(field types.EventField, value string, metrics *model.DataQualityMetrics) string {
	if value == "" {
		return ""
	}
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		metrics.CountRemoved(field)
		return ""
	}
	return trimmed
}

func (c *Cleaner) sanitizeSummary(summary model.Summary, metrics *model.DataQualityMetrics) model.Summary {
	clean := model.Summary{
		TotalYearsExperience: safeNumber(summary.TotalYearsExperience),
		CompaniesWorked:      max(summary.CompaniesWorked, 0),
		DegreesEarned:        max(summary.DegreesEarned, 0),
		CertificationsEarned: max(summary.CertificationsEarned, 0),
	}
	highlights := c.arrays.Strings(summary.CareerHighlights, types.FieldCareerHighlights, metrics)
	if len(highlights) > MaxCareerHighlights {
		highlights = highlights[:MaxCareerHighlights]
	}
	clean.CareerHighlights = highlights
	return clean
}

func (c *Cleaner) sanitizeInsights(insights model.Insights, metrics *model.DataQualityMetrics) model.Insights {
	defaults := model.DefaultInsights()

	clean := model.Insights{
		CareerProgression: fallbackString(insights.CareerProgression, defaults.CareerProgression),
		SkillEvolution:    fallbackString(insights.SkillEvolution, defaults.SkillEvolution),
	}

	focus := c.arrays.Strings(insights.IndustryFocus, types.FieldIndustryFocus, metrics)
	if len(focus) > MaxIndustryFocus {
		focus = focus[:MaxIndustryFocus]
	}
	clean.IndustryFocus = focus

	steps := c.arrays.Strings(insights.NextSteps, types.FieldNextSteps, metrics)
	if len(steps) > MaxNextSteps {
		steps = steps[:MaxNextSteps]
	}
	clean.NextSteps = steps

	return clean
}

// minimalSafeStructure keeps only the first event, defaulted field by field,
// plus default summary and insights
func (c *Cleaner) minimalSafeStructure(events []model.TimelineEvent) *model.TimelineData {
	safe := &model.TimelineData{
		Events:   []model.TimelineEvent{},
		Summary:  model.DefaultSummary(),
		Insights: model.DefaultInsights(),
	}

	if len(events) > 0 {
		event := events[0]
		eventType := event.Type
		if !eventType.IsValid() {
			eventType = types.EventTypeWork
		}
		safe.Events = append(safe.Events, model.TimelineEvent{
			ID:           fallbackString(event.ID, "fallback-0"),
			Type:         eventType,
			Title:        fallbackString(strings.TrimSpace(event.Title), "Untitled"),
			Organization: fallbackString(strings.TrimSpace(event.Organization), "Unknown"),
			StartDate:    fallbackString(event.StartDate, c.now().UTC().Format(time.RFC3339)),
		})
	}

	return safe
}

func nonEmpty(s string) any {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return s
}

func fallbackString(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return strings.TrimSpace(s)
}

func safeNumber(f float64) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return 0
	}
	return f
}
