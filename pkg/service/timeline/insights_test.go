package timeline_test

import (
	"context"
	"testing"

	"github.com/cvforge/chronicle/pkg/domain/model"
	"github.com/cvforge/chronicle/pkg/domain/types"
	"github.com/cvforge/chronicle/pkg/service/timeline"
	"github.com/m-mizutani/gt"
)

func TestCareerProgression(t *testing.T) {
	svc := timeline.New(timeline.WithClock(testClock()))
	ctx := context.Background()

	t.Run("management titles dominate", func(t *testing.T) {
		events := []model.TimelineEvent{
			workEvent("Initech", "Senior Engineer", "2016-02-01T00:00:00Z", "2020-01-01T00:00:00Z", false),
			workEvent("Acme Corp", "Engineering Manager", "2020-03-01T00:00:00Z", "", true),
		}
		insights := svc.GenerateInsights(ctx, events, nil)
		gt.Value(t, insights.CareerProgression).Equal("Progressive advancement into leadership roles")
	})

	t.Run("senior titles without management", func(t *testing.T) {
		events := []model.TimelineEvent{
			workEvent("Initech", "Engineer", "2016-02-01T00:00:00Z", "2020-01-01T00:00:00Z", false),
			workEvent("Acme Corp", "Principal Engineer", "2020-03-01T00:00:00Z", "", true),
		}
		insights := svc.GenerateInsights(ctx, events, nil)
		gt.Value(t, insights.CareerProgression).Equal("Technical expertise growth to senior levels")
	})

	t.Run("single role reads as steady growth", func(t *testing.T) {
		events := []model.TimelineEvent{
			workEvent("Acme Corp", "Director of Engineering", "2020-03-01T00:00:00Z", "", true),
		}
		insights := svc.GenerateInsights(ctx, events, nil)
		gt.Value(t, insights.CareerProgression).Equal("Steady career growth")
	})
}

func TestIdentifyIndustries(t *testing.T) {
	svc := timeline.New(timeline.WithClock(testClock()))
	ctx := context.Background()

	t.Run("keywords match organization and description", func(t *testing.T) {
		events := []model.TimelineEvent{
			{
				Type:         types.EventTypeWork,
				Organization: "Acme Software",
				Description:  "SaaS platform for retail banks",
				StartDate:    "2020-03-01T00:00:00Z",
			},
		}
		insights := svc.GenerateInsights(ctx, events, nil)
		gt.Array(t, insights.IndustryFocus).Has("Technology")
		gt.Array(t, insights.IndustryFocus).Has("Finance")
	})

	t.Run("capped at three industries", func(t *testing.T) {
		events := []model.TimelineEvent{
			{
				Type:         types.EventTypeWork,
				Organization: "Everything Inc",
				Description:  "software for banks, hospitals, universities and retail marketplaces",
				StartDate:    "2020-03-01T00:00:00Z",
			},
		}
		insights := svc.GenerateInsights(ctx, events, nil)
		gt.Array(t, insights.IndustryFocus).Length(3)
	})

	t.Run("no match yields an empty list", func(t *testing.T) {
		events := []model.TimelineEvent{
			workEvent("Nondescript LLC", "Engineer", "2020-03-01T00:00:00Z", "", true),
		}
		insights := svc.GenerateInsights(ctx, events, nil)
		gt.Array(t, insights.IndustryFocus).Length(0)
	})
}

func TestSkillEvolution(t *testing.T) {
	svc := timeline.New(timeline.WithClock(testClock()))
	ctx := context.Background()

	t.Run("leadership skills appearing later", func(t *testing.T) {
		events := []model.TimelineEvent{
			{Type: types.EventTypeWork, Organization: "Initech", Skills: []string{"Go"}, StartDate: "2016-02-01T00:00:00Z"},
			{Type: types.EventTypeWork, Organization: "Acme Corp", Skills: []string{"Go", "Architecture"}, StartDate: "2020-03-01T00:00:00Z"},
		}
		insights := svc.GenerateInsights(ctx, events, nil)
		gt.Value(t, insights.SkillEvolution).Equal("Evolution from implementation to architecture and leadership")
	})

	t.Run("broadening skill set", func(t *testing.T) {
		events := []model.TimelineEvent{
			{Type: types.EventTypeWork, Organization: "Initech", Skills: []string{"Go", "SQL"}, StartDate: "2016-02-01T00:00:00Z"},
			{Type: types.EventTypeWork, Organization: "Acme Corp", Skills: []string{"Go", "SQL", "Kubernetes", "Terraform"}, StartDate: "2020-03-01T00:00:00Z"},
		}
		insights := svc.GenerateInsights(ctx, events, nil)
		gt.Value(t, insights.SkillEvolution).Equal("Expanding technical expertise across multiple domains")
	})

	t.Run("no work history reads as foundational", func(t *testing.T) {
		insights := svc.GenerateInsights(ctx, nil, nil)
		gt.Value(t, insights.SkillEvolution).Equal("Building foundational skills")
	})
}

func TestSuggestNextSteps(t *testing.T) {
	svc := timeline.New(timeline.WithClock(testClock()))
	ctx := context.Background()

	t.Run("junior title suggests advancement", func(t *testing.T) {
		events := []model.TimelineEvent{
			workEvent("Acme Corp", "Engineer", "2020-03-01T00:00:00Z", "", true),
		}
		insights := svc.GenerateInsights(ctx, events, nil)
		gt.Array(t, insights.NextSteps).Has("Consider advancing to a senior or lead position")
	})

	t.Run("senior title suggests leadership", func(t *testing.T) {
		events := []model.TimelineEvent{
			workEvent("Acme Corp", "Senior Engineer", "2020-03-01T00:00:00Z", "", true),
		}
		insights := svc.GenerateInsights(ctx, events, nil)
		gt.Array(t, insights.NextSteps).Has("Explore management or technical leadership opportunities")
	})

	t.Run("stale certifications prompt a refresh", func(t *testing.T) {
		events := []model.TimelineEvent{
			{Type: types.EventTypeCertification, StartDate: "2020-01-01T00:00:00Z"},
		}
		insights := svc.GenerateInsights(ctx, events, nil)
		gt.Array(t, insights.NextSteps).Has("Update certifications to stay current with industry standards")
	})

	t.Run("recent certification suppresses the refresh suggestion", func(t *testing.T) {
		events := []model.TimelineEvent{
			{Type: types.EventTypeCertification, StartDate: "2025-01-01T00:00:00Z"},
		}
		insights := svc.GenerateInsights(ctx, events, nil)
		for _, step := range insights.NextSteps {
			if step == "Update certifications to stay current with industry standards" {
				t.Error("refresh suggestion present despite a recent certification")
			}
		}
	})

	t.Run("capped at four suggestions", func(t *testing.T) {
		events := []model.TimelineEvent{
			workEvent("Acme Corp", "Engineer", "2020-03-01T00:00:00Z", "", true),
		}
		cv := &model.CV{Skills: []string{"Go", "React"}}
		insights := svc.GenerateInsights(ctx, events, cv)
		gt.Array(t, insights.NextSteps).Length(4)
	})
}
