package sanitize_test

import (
	"context"
	"fmt"
	"reflect"
	"strings"
	"testing"

	"github.com/cvforge/chronicle/pkg/domain/model"
	"github.com/cvforge/chronicle/pkg/domain/types"
	"github.com/cvforge/chronicle/pkg/service/sanitize"
	"github.com/cvforge/chronicle/pkg/service/storage"
	"pgregory.net/rapid"
)

func genEvent(rt *rapid.T, i int) model.TimelineEvent {
	eventTypes := []types.EventType{
		types.EventTypeWork,
		types.EventTypeEducation,
		types.EventTypeCertification,
		types.EventTypeAchievement,
		types.EventType(""),
		types.EventType("volunteer"),
	}
	// free-text fields never spell the undefined marker: generation stays
	// within title-cased words and numeric date junk
	text := rapid.StringMatching(`( *[A-Z][a-z]{0,8}){0,3} *`)
	date := rapid.OneOf(
		rapid.SampledFrom([]string{"2020-03-01T00:00:00Z", "2016-05-15T00:00:00Z", "2021-11-01"}),
		rapid.StringMatching(`[0-9/ -]{0,12}`),
	)

	return model.TimelineEvent{
		ID:           rapid.StringMatching(`(work|edu|cert)-[0-9]{1,2}| *`).Draw(rt, fmt.Sprintf("id_%d", i)),
		Type:         rapid.SampledFrom(eventTypes).Draw(rt, fmt.Sprintf("type_%d", i)),
		Title:        text.Draw(rt, fmt.Sprintf("title_%d", i)),
		Organization: text.Draw(rt, fmt.Sprintf("org_%d", i)),
		StartDate:    date.Draw(rt, fmt.Sprintf("start_%d", i)),
		EndDate:      date.Draw(rt, fmt.Sprintf("end_%d", i)),
		Current:      rapid.Bool().Draw(rt, fmt.Sprintf("current_%d", i)),
		Description:  text.Draw(rt, fmt.Sprintf("desc_%d", i)),
		Achievements: rapid.SliceOfN(text, 0, 4).Draw(rt, fmt.Sprintf("achievements_%d", i)),
		Skills:       rapid.SliceOfN(text, 0, 4).Draw(rt, fmt.Sprintf("skills_%d", i)),
	}
}

func genTimelineData(rt *rapid.T) *model.TimelineData {
	n := rapid.IntRange(0, 8).Draw(rt, "num_events")
	events := make([]model.TimelineEvent, 0, n)
	for i := 0; i < n; i++ {
		events = append(events, genEvent(rt, i))
	}

	text := rapid.StringMatching(`( *[A-Z][a-z]{0,8}){0,3} *`)
	return &model.TimelineData{
		Events: events,
		Summary: model.Summary{
			TotalYearsExperience: rapid.Float64Range(-10, 60).Draw(rt, "years"),
			CompaniesWorked:      rapid.IntRange(-2, 10).Draw(rt, "companies"),
			DegreesEarned:        rapid.IntRange(-2, 5).Draw(rt, "degrees"),
			CertificationsEarned: rapid.IntRange(-2, 5).Draw(rt, "certs"),
			CareerHighlights:     rapid.SliceOfN(text, 0, 8).Draw(rt, "highlights"),
		},
		Insights: model.Insights{
			CareerProgression: text.Draw(rt, "progression"),
			IndustryFocus:     rapid.SliceOfN(text, 0, 6).Draw(rt, "focus"),
			SkillEvolution:    text.Draw(rt, "evolution"),
			NextSteps:         rapid.SliceOfN(text, 0, 8).Draw(rt, "steps"),
		},
	}
}

// Cleaned output must always be storable: whatever the raw input looks
// like, the cleaned document carries no nil values, no empty strings and
// no unsupported types.
func TestCleanedTimelineAlwaysPassesStorageValidation(t *testing.T) {
	cleaner := sanitize.NewCleaner()
	ctx := context.Background()

	rapid.Check(t, func(rt *rapid.T) {
		raw := genTimelineData(rt)
		cleaned := cleaner.CleanTimelineData(ctx, raw)

		result := storage.ValidateDocument(cleaned.Document(), false)
		if !result.Valid() {
			rt.Fatalf("cleaned document failed storage validation: %v", result.Errors)
		}
	})
}

// Cleaning is idempotent: a second pass over already-cleaned data changes
// nothing.
func TestCleaningIsIdempotent(t *testing.T) {
	cleaner := sanitize.NewCleaner()
	ctx := context.Background()

	rapid.Check(t, func(rt *rapid.T) {
		raw := genTimelineData(rt)
		once := cleaner.CleanTimelineData(ctx, raw)
		twice := cleaner.CleanTimelineData(ctx, once)

		if !reflect.DeepEqual(once, twice) {
			rt.Fatalf("second cleaning pass changed the data:\nonce:  %+v\ntwice: %+v", once, twice)
		}
	})
}

// The derived list bounds hold for arbitrary input sizes.
func TestCleanedListBoundsHold(t *testing.T) {
	cleaner := sanitize.NewCleaner()
	ctx := context.Background()

	rapid.Check(t, func(rt *rapid.T) {
		cleaned := cleaner.CleanTimelineData(ctx, genTimelineData(rt))

		if len(cleaned.Summary.CareerHighlights) > sanitize.MaxCareerHighlights {
			rt.Fatalf("career highlights over bound: %d", len(cleaned.Summary.CareerHighlights))
		}
		if len(cleaned.Insights.IndustryFocus) > sanitize.MaxIndustryFocus {
			rt.Fatalf("industry focus over bound: %d", len(cleaned.Insights.IndustryFocus))
		}
		if len(cleaned.Insights.NextSteps) > sanitize.MaxNextSteps {
			rt.Fatalf("next steps over bound: %d", len(cleaned.Insights.NextSteps))
		}
		if cleaned.Summary.TotalYearsExperience < 0 {
			rt.Fatalf("negative experience survived cleaning: %f", cleaned.Summary.TotalYearsExperience)
		}
	})
}

func genNestedValue(rt *rapid.T, depth int, label string) any {
	if depth <= 0 {
		return rapid.OneOf(
			rapid.StringMatching(` *[a-z]{0,6} *`).AsAny(),
			rapid.IntRange(-5, 5).AsAny(),
			rapid.Bool().AsAny(),
			rapid.Just[any](nil),
		).Draw(rt, label)
	}

	switch rapid.IntRange(0, 2).Draw(rt, label+"_kind") {
	case 0:
		n := rapid.IntRange(0, 3).Draw(rt, label+"_len")
		out := make([]any, 0, n)
		for i := 0; i < n; i++ {
			out = append(out, genNestedValue(rt, depth-1, fmt.Sprintf("%s_%d", label, i)))
		}
		return out
	case 1:
		n := rapid.IntRange(0, 3).Draw(rt, label+"_size")
		out := make(map[string]any, n)
		for i := 0; i < n; i++ {
			key := rapid.StringMatching(`[a-z]{1,6}`).Draw(rt, fmt.Sprintf("%s_key%d", label, i))
			out[key] = genNestedValue(rt, depth-1, fmt.Sprintf("%s_val%d", label, i))
		}
		return out
	default:
		return genNestedValue(rt, 0, label)
	}
}

func hasEmptyValue(value any) bool {
	switch v := value.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(v) == ""
	case []any:
		if len(v) == 0 {
			return true
		}
		for _, item := range v {
			if hasEmptyValue(item) {
				return true
			}
		}
	case map[string]any:
		if len(v) == 0 {
			return true
		}
		for _, item := range v {
			if hasEmptyValue(item) {
				return true
			}
		}
	}
	return false
}

// RemoveEmptyValues leaves no empty leaf or container behind at any depth,
// and running it twice is the same as running it once.
func TestRemoveEmptyValuesProperties(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		input := genNestedValue(rt, 4, "root")

		once := sanitize.RemoveEmptyValues(input)
		if once != nil && hasEmptyValue(once) {
			rt.Fatalf("empty value survived: %+v", once)
		}

		twice := sanitize.RemoveEmptyValues(once)
		if !reflect.DeepEqual(once, twice) {
			rt.Fatalf("not idempotent:\nonce:  %+v\ntwice: %+v", once, twice)
		}
	})
}
