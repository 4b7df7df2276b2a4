package model

import (
	"github.com/cvforge/chronicle/pkg/domain/types"
)

// ImpactMetric is a single quantified outcome extracted from achievement text
type ImpactMetric struct {
	Metric string `json:"metric" firestore:"metric"`
	Value  string `json:"value" firestore:"value"`
}

// TimelineEvent represents one dated CV milestone. Optional fields are
// encoded by omission: a sanitized event never carries an empty string or
// an empty array.
type TimelineEvent struct {
	ID           string          `json:"id" firestore:"id"`
	Type         types.EventType `json:"type" firestore:"type"`
	Title        string          `json:"title" firestore:"title"`
	Organization string          `json:"organization" firestore:"organization"`
	StartDate    string          `json:"startDate" firestore:"startDate"`
	EndDate      string          `json:"endDate,omitempty" firestore:"endDate,omitempty"`
	Current      bool            `json:"current,omitempty" firestore:"current,omitempty"`
	Description  string          `json:"description,omitempty" firestore:"description,omitempty"`
	Achievements []string        `json:"achievements,omitempty" firestore:"achievements,omitempty"`
	Skills       []string        `json:"skills,omitempty" firestore:"skills,omitempty"`
	Location     string          `json:"location,omitempty" firestore:"location,omitempty"`
	Logo         string          `json:"logo,omitempty" firestore:"logo,omitempty"`
	Impact       []ImpactMetric  `json:"impact,omitempty" firestore:"impact,omitempty"`
}

// Summary aggregates the timeline events into headline numbers
type Summary struct {
	TotalYearsExperience float64  `json:"totalYearsExperience" firestore:"totalYearsExperience"`
	CompaniesWorked      int      `json:"companiesWorked" firestore:"companiesWorked"`
	DegreesEarned        int      `json:"degreesEarned" firestore:"degreesEarned"`
	CertificationsEarned int      `json:"certificationsEarned" firestore:"certificationsEarned"`
	CareerHighlights     []string `json:"careerHighlights,omitempty" firestore:"careerHighlights,omitempty"`
}

// Insights is the derived narrative view of a timeline. Its string fields
// always carry a human-readable value, defaulted when data is insufficient.
type Insights struct {
	CareerProgression string   `json:"careerProgression" firestore:"careerProgression"`
	IndustryFocus     []string `json:"industryFocus,omitempty" firestore:"industryFocus,omitempty"`
	SkillEvolution    string   `json:"skillEvolution" firestore:"skillEvolution"`
	NextSteps         []string `json:"nextSteps,omitempty" firestore:"nextSteps,omitempty"`
}

// TimelineData is the full unit of work produced by one generation run
type TimelineData struct {
	Events   []TimelineEvent `json:"events" firestore:"events"`
	Summary  Summary         `json:"summary" firestore:"summary"`
	Insights Insights        `json:"insights" firestore:"insights"`
}

// DefaultSummary returns the safe fallback summary structure
func DefaultSummary() Summary {
	return Summary{}
}

// DefaultInsights returns the safe fallback insights structure
func DefaultInsights() Insights {
	return Insights{
		CareerProgression: "Career progression analysis not available",
		SkillEvolution:    "Skill evolution analysis not available",
	}
}

// Document encodes the timeline data as a nested map in its persisted shape.
// Optional fields that are empty are omitted rather than written as empty
// values, matching the storage-safety invariant.
func (d *TimelineData) Document() map[string]any {
	events := make([]any, 0, len(d.Events))
	for _, ev := range d.Events {
		events = append(events, ev.document())
	}

	summary := map[string]any{
		"totalYearsExperience": d.Summary.TotalYearsExperience,
		"companiesWorked":      d.Summary.CompaniesWorked,
		"degreesEarned":        d.Summary.DegreesEarned,
		"certificationsEarned": d.Summary.CertificationsEarned,
	}
	if len(d.Summary.CareerHighlights) > 0 {
		summary["careerHighlights"] = stringsToAny(d.Summary.CareerHighlights)
	}

	insights := map[string]any{
		"careerProgression": d.Insights.CareerProgression,
		"skillEvolution":    d.Insights.SkillEvolution,
	}
	if len(d.Insights.IndustryFocus) > 0 {
		insights["industryFocus"] = stringsToAny(d.Insights.IndustryFocus)
	}
	if len(d.Insights.NextSteps) > 0 {
		insights["nextSteps"] = stringsToAny(d.Insights.NextSteps)
	}

	return map[string]any{
		"events":   events,
		"summary":  summary,
		"insights": insights,
	}
}

func (e TimelineEvent) document() map[string]any {
	doc := map[string]any{
		"id":           e.ID,
		"type":         e.Type.String(),
		"title":        e.Title,
		"organization": e.Organization,
		"startDate":    e.StartDate,
	}
	if e.EndDate != "" {
		doc["endDate"] = e.EndDate
	}
	if e.Current {
		doc["current"] = true
	}
	if e.Description != "" {
		doc["description"] = e.Description
	}
	if len(e.Achievements) > 0 {
		doc["achievements"] = stringsToAny(e.Achievements)
	}
	if len(e.Skills) > 0 {
		doc["skills"] = stringsToAny(e.Skills)
	}
	if e.Location != "" {
		doc["location"] = e.Location
	}
	if e.Logo != "" {
		doc["logo"] = e.Logo
	}
	if len(e.Impact) > 0 {
		impact := make([]any, 0, len(e.Impact))
		for _, im := range e.Impact {
			impact = append(impact, map[string]any{
				"metric": im.Metric,
				"value":  im.Value,
			})
		}
		doc["impact"] = impact
	}
	return doc
}

func stringsToAny(ss []string) []any {
	out := make([]any, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}
