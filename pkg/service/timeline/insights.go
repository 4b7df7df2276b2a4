package timeline

import (
	"context"
	"slices"
	"strings"
	"time"

	"github.com/cvforge/chronicle/pkg/domain/model"
	"github.com/cvforge/chronicle/pkg/domain/types"
	"github.com/cvforge/chronicle/pkg/utils/logging"
)

// GenerateInsights derives the narrative view of a timeline. A failure
// anywhere inside insight generation is replaced by fixed fallback text,
// never propagated.
func (s *Service) GenerateInsights(ctx context.Context, events []model.TimelineEvent, cv *model.CV) (insights model.Insights) {
	defer func() {
		if r := recover(); r != nil {
			logging.From(ctx).Error("insight generation failed, using defaults", "panic", r)
			insights = model.DefaultInsights()
		}
	}()

	var workEvents []model.TimelineEvent
	for _, event := range events {
		if event.Type == types.EventTypeWork {
			workEvents = append(workEvents, event)
		}
	}

	return model.Insights{
		CareerProgression: careerProgression(workEvents),
		IndustryFocus:     s.identifyIndustries(workEvents),
		SkillEvolution:    skillEvolution(workEvents),
		NextSteps:         s.suggestNextSteps(events, cv),
	}
}

// careerProgression picks a framing by keyword scan over job titles
func careerProgression(workEvents []model.TimelineEvent) string {
	if len(workEvents) <= 1 {
		return "Steady career growth"
	}

	hasManagement := false
	hasSenior := false
	for _, event := range workEvents {
		title := strings.ToLower(event.Title)
		if strings.Contains(title, "manager") || strings.Contains(title, "director") ||
			strings.Contains(title, "lead") || strings.Contains(title, "head") {
			hasManagement = true
		}
		if strings.Contains(title, "senior") || strings.Contains(title, "principal") {
			hasSenior = true
		}
	}

	switch {
	case hasManagement:
		return "Progressive advancement into leadership roles"
	case hasSenior:
		return "Technical expertise growth to senior levels"
	default:
		return "Steady career growth"
	}
}

// identifyIndustries buckets work events by keyword table, capped at three.
// Industries are scanned in name order so the result is deterministic.
func (s *Service) identifyIndustries(workEvents []model.TimelineEvent) []string {
	names := make([]string, 0, len(s.industryKeywords))
	for name := range s.industryKeywords {
		names = append(names, name)
	}
	slices.Sort(names)

	var industries []string
	for _, name := range names {
		for _, event := range workEvents {
			combined := strings.ToLower(event.Organization + " " + event.Description)
			matched := false
			for _, keyword := range s.industryKeywords[name] {
				if strings.Contains(combined, keyword) {
					matched = true
					break
				}
			}
			if matched {
				industries = append(industries, name)
				break
			}
		}
		if len(industries) >= 3 {
			break
		}
	}

	return industries
}

// skillEvolution compares the skill sets of the earliest and latest work
// events
func skillEvolution(workEvents []model.TimelineEvent) string {
	if len(workEvents) == 0 {
		return "Building foundational skills"
	}

	earliest := workEvents[0].Skills
	latest := workEvents[len(workEvents)-1].Skills

	for _, skill := range latest {
		if slices.Contains(earliest, skill) {
			continue
		}
		lowered := strings.ToLower(skill)
		if strings.Contains(lowered, "lead") || strings.Contains(lowered, "architect") ||
			strings.Contains(lowered, "senior") {
			return "Evolution from implementation to architecture and leadership"
		}
	}

	if float64(len(latest)) > float64(len(earliest))*1.5 {
		return "Expanding technical expertise across multiple domains"
	}
	return "Deepening expertise in core technology areas"
}

// suggestNextSteps produces up to four career suggestions: role
// advancement, certification refresh, and missing cloud or AI/ML skills
func (s *Service) suggestNextSteps(events []model.TimelineEvent, cv *model.CV) []string {
	var suggestions []string

	var current *model.TimelineEvent
	recentCerts := 0
	yearAgo := s.now().AddDate(-1, 0, 0)
	for i, event := range events {
		switch event.Type {
		case types.EventTypeWork:
			if event.Current && current == nil {
				current = &events[i]
			}
		case types.EventTypeCertification:
			if start, err := time.Parse(time.RFC3339, event.StartDate); err == nil && start.After(yearAgo) {
				recentCerts++
			}
		}
	}

	if current != nil {
		title := strings.ToLower(current.Title)
		switch {
		case !strings.Contains(title, "senior") && !strings.Contains(title, "lead") && !strings.Contains(title, "manager"):
			suggestions = append(suggestions, "Consider advancing to a senior or lead position")
		case !strings.Contains(title, "manager") && !strings.Contains(title, "director"):
			suggestions = append(suggestions, "Explore management or technical leadership opportunities")
		}
	}

	if recentCerts == 0 {
		suggestions = append(suggestions, "Update certifications to stay current with industry standards")
	}

	if cv != nil && len(cv.Skills) > 0 {
		hasCloud, hasAI := false, false
		for _, skill := range cv.Skills {
			lowered := strings.ToLower(skill)
			if strings.Contains(lowered, "aws") || strings.Contains(lowered, "azure") || strings.Contains(lowered, "gcp") {
				hasCloud = true
			}
			if strings.Contains(lowered, "ai") || strings.Contains(lowered, "machine learning") || strings.Contains(lowered, "ml") {
				hasAI = true
			}
		}
		if !hasCloud {
			suggestions = append(suggestions, "Add cloud platform expertise (AWS, Azure, or GCP)")
		}
		if !hasAI {
			suggestions = append(suggestions, "Explore AI/ML technologies to stay ahead of industry trends")
		}
	}

	if len(suggestions) > 4 {
		suggestions = suggestions[:4]
	}
	return suggestions
}
