package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/cvforge/chronicle/pkg/domain/model"
	"github.com/cvforge/chronicle/pkg/domain/types"
	"github.com/cvforge/chronicle/pkg/repository/memory"
	"github.com/cvforge/chronicle/pkg/usecase"
	"github.com/m-mizutani/gt"
)

func sampleCV() *model.CV {
	return &model.CV{
		Experience: []model.WorkExperience{
			{
				Company:   "Acme Corp",
				Position:  "Senior Engineer",
				StartDate: "2020-03-01",
				EndDate:   "Present",
				Achievements: []string{
					"Increased deployment frequency by 40%",
				},
			},
			{
				Company:   "Initech",
				Position:  "Engineer",
				StartDate: "2016-06-01",
				EndDate:   "2020-02-28",
			},
		},
		Education: []model.Education{
			{
				Institution:    "State University",
				Degree:         "Bachelor of Science",
				Field:          "Computer Science",
				GraduationDate: "2016-05-15",
			},
		},
		Certifications: []model.Certification{
			{Name: "AWS Solutions Architect", Issuer: "Amazon", Date: "2021-09-01"},
		},
		Achievements: []string{
			"Awarded Employee of the Year by Acme Corp in 2022",
		},
		Skills: []string{"Go", "Kubernetes", "PostgreSQL"},
	}
}

func TestTimelineUseCase_Generate(t *testing.T) {
	t.Run("full pipeline stores completed record", func(t *testing.T) {
		repo := memory.New()
		uc := usecase.New(repo)
		ctx := context.Background()
		jobID := types.JobID("job-001")

		data, err := uc.Timeline.Generate(ctx, jobID, sampleCV())
		gt.NoError(t, err).Required()
		gt.Value(t, data).NotNil()

		// 2 work + 1 education + 1 certification + 1 achievement
		gt.Array(t, data.Events).Length(5)

		record, err := repo.Timeline().Get(ctx, jobID)
		gt.NoError(t, err).Required()
		gt.Bool(t, record.Enabled).True()
		gt.Value(t, record.Status).Equal(types.TimelineStatusCompleted)
		gt.Value(t, record.DataQuality.EventsCount).Equal(5)
		gt.Bool(t, record.DataQuality.ValidationPassed).True()
		gt.Value(t, record.DataQuality.CleaningVersion).Equal("2.1.0")
		gt.Bool(t, record.GeneratedAt.IsZero()).False()
	})

	t.Run("events are sorted chronologically", func(t *testing.T) {
		repo := memory.New()
		uc := usecase.New(repo)

		data, err := uc.Timeline.Generate(context.Background(), types.JobID("job-sort"), sampleCV())
		gt.NoError(t, err).Required()

		for i := 1; i < len(data.Events); i++ {
			if data.Events[i-1].StartDate > data.Events[i].StartDate {
				t.Errorf("events out of order at %d: %s > %s",
					i, data.Events[i-1].StartDate, data.Events[i].StartDate)
			}
		}
	})

	t.Run("empty CV produces empty timeline", func(t *testing.T) {
		repo := memory.New()
		uc := usecase.New(repo)
		ctx := context.Background()
		jobID := types.JobID("job-empty")

		data, err := uc.Timeline.Generate(ctx, jobID, &model.CV{})
		gt.NoError(t, err).Required()
		gt.Array(t, data.Events).Length(0)
		gt.Value(t, data.Summary.TotalYearsExperience).Equal(0.0)
		gt.Value(t, data.Insights.CareerProgression).Equal("Career progression analysis not available")

		record, err := repo.Timeline().Get(ctx, jobID)
		gt.NoError(t, err).Required()
		gt.Value(t, record.Status).Equal(types.TimelineStatusCompleted)
		gt.Value(t, record.DataQuality.EventsCount).Equal(0)
	})

	t.Run("rejects empty job ID", func(t *testing.T) {
		uc := usecase.New(memory.New())
		_, err := uc.Timeline.Generate(context.Background(), types.JobID(""), sampleCV())
		gt.Error(t, err)
	})

	t.Run("rejects nil CV", func(t *testing.T) {
		uc := usecase.New(memory.New())
		_, err := uc.Timeline.Generate(context.Background(), types.JobID("job-nil"), nil)
		gt.Error(t, err)
	})

	t.Run("works without repository", func(t *testing.T) {
		uc := usecase.New(nil)
		data, err := uc.Timeline.Generate(context.Background(), types.JobID("job-dry"), sampleCV())
		gt.NoError(t, err).Required()
		gt.Array(t, data.Events).Length(5)
	})
}

func TestTimelineUseCase_Validate(t *testing.T) {
	t.Run("sanitized pipeline output passes validation", func(t *testing.T) {
		uc := usecase.New(nil)
		ctx := context.Background()

		data, err := uc.Timeline.Generate(ctx, types.JobID("job-validate"), sampleCV())
		gt.NoError(t, err).Required()

		result, err := uc.Timeline.Validate(ctx, data)
		gt.NoError(t, err).Required()
		gt.Bool(t, result.Valid()).True()
	})

	t.Run("nil data is rejected", func(t *testing.T) {
		uc := usecase.New(nil)
		_, err := uc.Timeline.Validate(context.Background(), nil)
		gt.Error(t, err)
	})
}

func TestTimelineUseCase_Get(t *testing.T) {
	t.Run("returns stored record", func(t *testing.T) {
		repo := memory.New()
		uc := usecase.New(repo)
		ctx := context.Background()
		jobID := types.JobID("job-get")

		_, err := uc.Timeline.Generate(ctx, jobID, sampleCV())
		gt.NoError(t, err).Required()

		record, err := uc.Timeline.Get(ctx, jobID)
		gt.NoError(t, err).Required()
		gt.Value(t, record.Status).Equal(types.TimelineStatusCompleted)
	})

	t.Run("unknown job maps to ErrTimelineNotFound", func(t *testing.T) {
		uc := usecase.New(memory.New())
		_, err := uc.Timeline.Get(context.Background(), types.JobID("job-unknown"))
		gt.Error(t, err)
		gt.Bool(t, errors.Is(err, usecase.ErrTimelineNotFound)).True()
	})

	t.Run("no repository maps to ErrStorageDisabled", func(t *testing.T) {
		uc := usecase.New(nil)
		_, err := uc.Timeline.Get(context.Background(), types.JobID("job-x"))
		gt.Error(t, err)
		gt.Bool(t, errors.Is(err, usecase.ErrStorageDisabled)).True()
	})
}
