package timeline_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cvforge/chronicle/pkg/domain/model"
	"github.com/cvforge/chronicle/pkg/domain/types"
	"github.com/cvforge/chronicle/pkg/service/timeline"
	"github.com/m-mizutani/gt"
)

func testClock() func() time.Time {
	fixed := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	return func() time.Time { return fixed }
}

func TestProcessWorkExperience(t *testing.T) {
	svc := timeline.New(timeline.WithClock(testClock()))

	t.Run("converts a full record", func(t *testing.T) {
		event := gt.R1(svc.ProcessWorkExperience(model.WorkExperience{
			Company:      "  Acme Corp  ",
			Position:     "Senior Engineer",
			StartDate:    "2020-01-15",
			EndDate:      "2023-03-01",
			Description:  "Platform work",
			Achievements: []string{"Increased deployment frequency by 40%"},
			Technologies: []string{"Go", "Kubernetes"},
			Location:     "Berlin",
		}, 0)).NoError(t)

		gt.Value(t, event.ID).Equal("work-0")
		gt.Value(t, event.Type).Equal(types.EventTypeWork)
		gt.Value(t, event.Organization).Equal("Acme Corp")
		gt.Value(t, event.StartDate).Equal("2020-01-15T00:00:00Z")
		gt.Value(t, event.EndDate).Equal("2023-03-01T00:00:00Z")
		gt.Bool(t, event.Current).False()
		gt.Array(t, event.Impact).Length(1)
		gt.Value(t, event.Impact[0].Value).Equal("40%")
	})

	t.Run("present end date maps to the current flag", func(t *testing.T) {
		event := gt.R1(svc.ProcessWorkExperience(model.WorkExperience{
			Company:   "Acme Corp",
			Position:  "Engineer",
			StartDate: "2022-06-01",
			EndDate:   "Present",
		}, 3)).NoError(t)

		gt.Value(t, event.ID).Equal("work-3")
		gt.Bool(t, event.Current).True()
		gt.Value(t, event.EndDate).Equal("")
	})

	t.Run("company or position alone is enough", func(t *testing.T) {
		event := gt.R1(svc.ProcessWorkExperience(model.WorkExperience{
			Position: "Consultant",
		}, 0)).NoError(t)
		gt.Value(t, event.Title).Equal("Consultant")
	})

	t.Run("empty record is rejected", func(t *testing.T) {
		_, err := svc.ProcessWorkExperience(model.WorkExperience{
			StartDate: "2020-01-01",
		}, 0)
		gt.Error(t, err)
		gt.Bool(t, errors.Is(err, timeline.ErrEmptyRecord)).True()
	})
}

func TestProcessEducation(t *testing.T) {
	svc := timeline.New(timeline.WithClock(testClock()))

	t.Run("explicit start date wins", func(t *testing.T) {
		event := gt.R1(svc.ProcessEducation(model.Education{
			Institution:    "State University",
			Degree:         "BSc Computer Science",
			Field:          "Computer Science",
			StartDate:      "2012-09-01",
			GraduationDate: "2016-05-15",
		}, 0)).NoError(t)

		gt.Value(t, event.ID).Equal("edu-0")
		gt.Value(t, event.Type).Equal(types.EventTypeEducation)
		gt.Value(t, event.StartDate).Equal("2012-09-01T00:00:00Z")
		gt.Value(t, event.EndDate).Equal("2016-05-15T00:00:00Z")
		gt.Value(t, event.Description).Equal("Computer Science")
	})

	t.Run("missing start date is estimated from the degree type", func(t *testing.T) {
		event := gt.R1(svc.ProcessEducation(model.Education{
			Institution:    "State University",
			Degree:         "Master of Science",
			GraduationDate: "2018-06-30",
		}, 1)).NoError(t)

		// masters default to a two year span, anchored to the first of the month
		gt.Value(t, event.StartDate).Equal("2016-06-01T00:00:00Z")
	})

	t.Run("empty record is rejected", func(t *testing.T) {
		_, err := svc.ProcessEducation(model.Education{GraduationDate: "2016"}, 0)
		gt.Bool(t, errors.Is(err, timeline.ErrEmptyRecord)).True()
	})
}

func TestProcessCertification(t *testing.T) {
	svc := timeline.New(timeline.WithClock(testClock()))

	t.Run("converts a full record", func(t *testing.T) {
		event := gt.R1(svc.ProcessCertification(model.Certification{
			Name:   "AWS Solutions Architect",
			Issuer: "Amazon",
			Date:   "2021-11-01",
			URL:    "https://example.com/badge.png",
		}, 2)).NoError(t)

		gt.Value(t, event.ID).Equal("cert-2")
		gt.Value(t, event.Type).Equal(types.EventTypeCertification)
		gt.Value(t, event.Organization).Equal("Amazon")
		gt.Value(t, event.StartDate).Equal("2021-11-01T00:00:00Z")
		gt.Value(t, event.Logo).Equal("https://example.com/badge.png")
	})

	t.Run("name is required", func(t *testing.T) {
		_, err := svc.ProcessCertification(model.Certification{Issuer: "Amazon"}, 0)
		gt.Bool(t, errors.Is(err, timeline.ErrEmptyRecord)).True()
	})
}

func TestProcessAchievement(t *testing.T) {
	svc := timeline.New(timeline.WithClock(testClock()))
	cv := &model.CV{
		Experience: []model.WorkExperience{{Company: "Acme Corp", Position: "Engineer"}},
	}

	t.Run("title and organization are extracted", func(t *testing.T) {
		event := gt.R1(svc.ProcessAchievement("Awarded Employee of the Year by Acme Corp in 2022", 0, cv)).NoError(t)

		gt.Value(t, event.ID).Equal("achievement-0")
		gt.Value(t, event.Type).Equal(types.EventTypeAchievement)
		gt.Value(t, event.Title).Equal("Employee of the Year")
		gt.Value(t, event.Organization).Equal("Acme Corp")
		gt.Value(t, event.StartDate).Equal("2022-01-01T00:00:00Z")
		gt.Value(t, event.Description).Equal("Awarded Employee of the Year by Acme Corp in 2022")
	})

	t.Run("blank text is rejected", func(t *testing.T) {
		_, err := svc.ProcessAchievement("   ", 0, cv)
		gt.Bool(t, errors.Is(err, timeline.ErrEmptyRecord)).True()
	})
}

func TestProcessCV(t *testing.T) {
	svc := timeline.New(timeline.WithClock(testClock()))
	ctx := context.Background()

	t.Run("a bad record never aborts the batch", func(t *testing.T) {
		cv := &model.CV{
			Experience: []model.WorkExperience{
				{Company: "Initech", Position: "Engineer", StartDate: "2016-02-01", EndDate: "2020-01-01"},
				{StartDate: "2018-01-01"}, // no company, no position
			},
			Certifications: []model.Certification{
				{Name: "CKA", Issuer: "CNCF", Date: "2022-03-01"},
				{Issuer: "nameless"},
			},
		}

		events := svc.ProcessCV(ctx, cv)
		gt.Array(t, events).Length(2)
	})

	t.Run("events are sorted by start date", func(t *testing.T) {
		cv := &model.CV{
			Experience: []model.WorkExperience{
				{Company: "Acme Corp", Position: "Senior Engineer", StartDate: "2020-03-01", EndDate: "Present"},
				{Company: "Initech", Position: "Engineer", StartDate: "2016-02-01", EndDate: "2020-01-01"},
			},
			Education: []model.Education{
				{Institution: "State University", Degree: "BSc", StartDate: "2012-09-01", GraduationDate: "2016-05-15"},
			},
		}

		events := svc.ProcessCV(ctx, cv)
		gt.Array(t, events).Length(3)
		for i := 1; i < len(events); i++ {
			if events[i-1].StartDate > events[i].StartDate {
				t.Errorf("events out of order: %q after %q", events[i-1].StartDate, events[i].StartDate)
			}
		}
		gt.Value(t, events[0].Type).Equal(types.EventTypeEducation)
	})

	t.Run("empty CV yields no events", func(t *testing.T) {
		gt.Array(t, svc.ProcessCV(ctx, &model.CV{})).Length(0)
	})
}
