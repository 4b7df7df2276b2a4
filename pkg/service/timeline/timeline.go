package timeline

import (
	"context"
	"sort"
	"time"

	"github.com/cvforge/chronicle/pkg/domain/model"
	"github.com/cvforge/chronicle/pkg/service/dateparse"
	"github.com/cvforge/chronicle/pkg/utils/logging"
)

// Service converts a canonical CV into timeline events plus the derived
// summary and insights views. One bad record never aborts a batch: each
// per-record conversion is isolated and failures are only counted.
type Service struct {
	dates            *dateparse.Parser
	industryKeywords map[string][]string
	now              func() time.Time
}

// Option configures a Service
type Option func(*Service)

// WithDateParser replaces the date parser
func WithDateParser(p *dateparse.Parser) Option {
	return func(s *Service) {
		s.dates = p
	}
}

// WithIndustryKeywords replaces the industry to keyword table used for
// industry-focus detection
func WithIndustryKeywords(keywords map[string][]string) Option {
	return func(s *Service) {
		if len(keywords) > 0 {
			s.industryKeywords = keywords
		}
	}
}

// WithClock replaces the time source (tests)
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// DefaultIndustryKeywords returns the built-in industry to keyword table
func DefaultIndustryKeywords() map[string][]string {
	return map[string][]string{
		"Technology": {"software", "tech", "it", "digital", "app", "platform", "saas"},
		"Finance":    {"bank", "financial", "investment", "trading", "fintech", "insurance"},
		"Healthcare": {"health", "medical", "pharma", "hospital", "clinic", "biotech"},
		"E-commerce": {"ecommerce", "retail", "marketplace", "shopping"},
		"Education":  {"education", "university", "school", "learning", "training"},
		"Consulting": {"consulting", "advisory", "strategy", "management consulting"},
	}
}

// New creates a timeline Service
func New(opts ...Option) *Service {
	s := &Service{
		industryKeywords: DefaultIndustryKeywords(),
		now:              time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.dates == nil {
		s.dates = dateparse.New(dateparse.WithClock(s.now))
	}
	return s
}

// ProcessCV converts every CV section into timeline events sorted by start
// date. Records that fail conversion are skipped and counted, never fatal.
func (s *Service) ProcessCV(ctx context.Context, cv *model.CV) []model.TimelineEvent {
	logger := logging.From(ctx)

	var events []model.TimelineEvent
	processingErrors := 0

	for i, exp := range cv.Experience {
		event, err := s.ProcessWorkExperience(exp, len(events))
		if err != nil {
			processingErrors++
			logger.Warn("skipping work experience record", "index", i, "error", err.Error())
			continue
		}
		events = append(events, *event)
	}

	for i, edu := range cv.Education {
		event, err := s.ProcessEducation(edu, len(events))
		if err != nil {
			processingErrors++
			logger.Warn("skipping education record", "index", i, "error", err.Error())
			continue
		}
		events = append(events, *event)
	}

	for i, cert := range cv.Certifications {
		event, err := s.ProcessCertification(cert, len(events))
		if err != nil {
			processingErrors++
			logger.Warn("skipping certification record", "index", i, "error", err.Error())
			continue
		}
		events = append(events, *event)
	}

	for i, achievement := range cv.Achievements {
		event, err := s.ProcessAchievement(achievement, len(events), cv)
		if err != nil {
			processingErrors++
			logger.Warn("skipping achievement record", "index", i, "error", err.Error())
			continue
		}
		events = append(events, *event)
	}

	if processingErrors > 0 {
		logger.Info("CV processed with record errors",
			"events", len(events),
			"skipped", processingErrors)
	}

	// Start dates are RFC3339, so lexical order is chronological order
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].StartDate < events[j].StartDate
	})

	return events
}
