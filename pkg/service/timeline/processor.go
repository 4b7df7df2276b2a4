package timeline

import (
	"fmt"
	"strings"
	"time"

	"github.com/cvforge/chronicle/pkg/domain/model"
	"github.com/cvforge/chronicle/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

// Per-record conversion errors
var (
	ErrEmptyRecord = goerr.New("record carries no usable fields")
)

// ProcessWorkExperience converts one employment entry into a work event.
// Dates are best-effort parsed; an end date marked "present"/"current" maps
// to the current flag instead of an end date.
func (s *Service) ProcessWorkExperience(exp model.WorkExperience, index int) (*model.TimelineEvent, error) {
	if strings.TrimSpace(exp.Company) == "" && strings.TrimSpace(exp.Position) == "" {
		return nil, goerr.Wrap(ErrEmptyRecord, "work experience without company or position",
			goerr.V(model.EventIndexKey, index))
	}

	event := &model.TimelineEvent{
		ID:           fmt.Sprintf("work-%d", index),
		Type:         types.EventTypeWork,
		Title:        strings.TrimSpace(exp.Position),
		Organization: strings.TrimSpace(exp.Company),
		StartDate:    s.dates.Parse(exp.StartDate).UTC().Format(time.RFC3339),
		Description:  strings.TrimSpace(exp.Description),
		Achievements: exp.Achievements,
		Skills:       exp.Technologies,
		Location:     strings.TrimSpace(exp.Location),
		Logo:         strings.TrimSpace(exp.Logo),
		Impact:       ExtractImpactMetrics(exp.Achievements),
	}

	switch {
	case s.dates.IsRecent(exp.EndDate):
		event.Current = true
	case strings.TrimSpace(exp.EndDate) != "":
		event.EndDate = s.dates.Parse(exp.EndDate).UTC().Format(time.RFC3339)
	}

	return event, nil
}

// ProcessEducation converts one degree entry into an education event. A
// missing start date is estimated from the graduation date and the typical
// duration of the degree type.
func (s *Service) ProcessEducation(edu model.Education, index int) (*model.TimelineEvent, error) {
	if strings.TrimSpace(edu.Institution) == "" && strings.TrimSpace(edu.Degree) == "" {
		return nil, goerr.Wrap(ErrEmptyRecord, "education without institution or degree",
			goerr.V(model.EventIndexKey, index))
	}

	var start time.Time
	graduation := s.dates.Parse(edu.GraduationDate)
	if strings.TrimSpace(edu.StartDate) != "" {
		start = s.dates.Parse(edu.StartDate)
	} else {
		start = s.dates.EstimateEducationStart(edu.Degree, graduation)
	}

	event := &model.TimelineEvent{
		ID:           fmt.Sprintf("edu-%d", index),
		Type:         types.EventTypeEducation,
		Title:        strings.TrimSpace(edu.Degree),
		Organization: strings.TrimSpace(edu.Institution),
		StartDate:    start.UTC().Format(time.RFC3339),
		EndDate:      graduation.UTC().Format(time.RFC3339),
		Location:     strings.TrimSpace(edu.Location),
	}
	if field := strings.TrimSpace(edu.Field); field != "" {
		event.Description = field
	}

	return event, nil
}

// ProcessCertification converts one certification entry into a
// certification event
func (s *Service) ProcessCertification(cert model.Certification, index int) (*model.TimelineEvent, error) {
	if strings.TrimSpace(cert.Name) == "" {
		return nil, goerr.Wrap(ErrEmptyRecord, "certification without name",
			goerr.V(model.EventIndexKey, index))
	}

	return &model.TimelineEvent{
		ID:           fmt.Sprintf("cert-%d", index),
		Type:         types.EventTypeCertification,
		Title:        strings.TrimSpace(cert.Name),
		Organization: strings.TrimSpace(cert.Issuer),
		StartDate:    s.dates.Parse(cert.Date).UTC().Format(time.RFC3339),
		Logo:         strings.TrimSpace(cert.URL),
	}, nil
}

// ProcessAchievement converts one free-text achievement into an achievement
// event. Title and owning organization come from best-effort pattern
// extraction; the full text is kept as the description.
func (s *Service) ProcessAchievement(achievement string, index int, cv *model.CV) (*model.TimelineEvent, error) {
	text := strings.TrimSpace(achievement)
	if text == "" {
		return nil, goerr.Wrap(ErrEmptyRecord, "achievement text is empty",
			goerr.V(model.EventIndexKey, index))
	}

	return &model.TimelineEvent{
		ID:           fmt.Sprintf("achievement-%d", index),
		Type:         types.EventTypeAchievement,
		Title:        ExtractAchievementTitle(text),
		Organization: s.extractAchievementOrg(text, cv),
		StartDate:    s.dates.Parse(text).UTC().Format(time.RFC3339),
		Description:  text,
	}, nil
}
