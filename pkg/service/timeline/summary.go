package timeline

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/cvforge/chronicle/pkg/domain/model"
	"github.com/cvforge/chronicle/pkg/domain/types"
)

// maxSpanMonths rejects corrupt work spans: 50 years for a single entry
const maxSpanMonths = 600

// GenerateSummary aggregates the timeline events into headline numbers.
// Per-entry spans outside [0, 600] months are treated as corrupt and
// contribute nothing.
func (s *Service) GenerateSummary(events []model.TimelineEvent, cv *model.CV) model.Summary {
	var workEvents []model.TimelineEvent
	degrees, certs := 0, 0
	for _, event := range events {
		switch event.Type {
		case types.EventTypeWork:
			workEvents = append(workEvents, event)
		case types.EventTypeEducation:
			degrees++
		case types.EventTypeCertification:
			certs++
		}
	}

	totalMonths := 0
	companies := make(map[string]bool)
	for _, event := range workEvents {
		if event.Organization != "" {
			companies[event.Organization] = true
		}

		start, err := time.Parse(time.RFC3339, event.StartDate)
		if err != nil {
			continue
		}
		end := s.now()
		if event.EndDate != "" {
			if parsed, err := time.Parse(time.RFC3339, event.EndDate); err == nil {
				end = parsed
			}
		}

		months := (end.Year()-start.Year())*12 + int(end.Month()-start.Month())
		if months >= 0 && months <= maxSpanMonths {
			totalMonths += months
		}
	}

	totalYears := math.Round(float64(totalMonths)/12.0*10) / 10

	var highlights []string
	for _, event := range workEvents {
		if event.Current && event.Title != "" && event.Organization != "" {
			highlights = append(highlights, fmt.Sprintf("Currently %s at %s", event.Title, event.Organization))
			break
		}
	}
	if cv != nil {
		added := 0
		for _, achievement := range cv.Achievements {
			if added >= 2 {
				break
			}
			if strings.TrimSpace(achievement) == "" {
				continue
			}
			highlights = append(highlights, achievement)
			added++
		}
	}
	if len(highlights) > 5 {
		highlights = highlights[:5]
	}

	return model.Summary{
		TotalYearsExperience: math.Max(0, totalYears),
		CompaniesWorked:      len(companies),
		DegreesEarned:        degrees,
		CertificationsEarned: certs,
		CareerHighlights:     highlights,
	}
}
