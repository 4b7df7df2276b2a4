package timeline

import (
	"regexp"
	"strings"

	"github.com/cvforge/chronicle/pkg/domain/model"
)

const (
	maxImpactValueLen  = 50
	maxImpactMetricLen = 100
	maxTitleLen        = 50
)

var (
	awardedTitlePattern = regexp.MustCompile(`(?i)^(Awarded|Received|Won|Achieved|Earned)\s+(.+?)(?:\s+(?:for|in|at|by)\s.*)?$`)
	suffixTitlePattern  = regexp.MustCompile(`(?i)^(.+?)\s+(Award|Prize|Recognition|Certificate)\b`)

	orgPrepositionPattern = regexp.MustCompile(`(?:at|from|by)\s+([A-Z][A-Za-z\s&]+)`)
	orgSuffixPattern      = regexp.MustCompile(`([A-Z][A-Za-z\s&]+)\s+(?:Award|Prize|Recognition)`)

	impactPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(increased|reduced|improved|grew)\s+(.+?)\s+by\s+(\d+(?:\.\d+)?%)`),
		regexp.MustCompile(`(\d+(?:\.\d+)?%)\s+(.+)`),
		regexp.MustCompile(`(\$[\d,]+(?:\.\d+)?[KMB]?)\s+(.+)`),
		regexp.MustCompile(`(?i)([\d,]+\+?)\s+(users|customers|clients|projects|team members)`),
	}
)

// ExtractAchievementTitle derives a short title from free achievement text.
// Pattern extraction first, then a bounded truncation of the raw text.
func ExtractAchievementTitle(achievement string) string {
	text := strings.TrimSpace(achievement)
	if text == "" {
		return "Achievement"
	}

	if m := awardedTitlePattern.FindStringSubmatch(text); m != nil {
		if title := strings.TrimSpace(m[2]); title != "" {
			return title
		}
	}
	if m := suffixTitlePattern.FindStringSubmatch(text); m != nil {
		title := strings.TrimSpace(m[1]) + " " + m[2]
		if strings.TrimSpace(m[1]) != "" {
			return title
		}
	}

	runes := []rune(text)
	if len(runes) > maxTitleLen {
		return string(runes[:maxTitleLen]) + "..."
	}
	return text
}

// extractAchievementOrg finds the organization an achievement belongs to:
// known company names from work history first, then capitalized-phrase
// patterns, then the literal "Achievement" fallback.
func (s *Service) extractAchievementOrg(achievement string, cv *model.CV) string {
	lowered := strings.ToLower(achievement)
	if cv != nil {
		for _, exp := range cv.Experience {
			company := strings.TrimSpace(exp.Company)
			if company != "" && strings.Contains(lowered, strings.ToLower(company)) {
				return company
			}
		}
	}

	for _, pattern := range []*regexp.Regexp{orgPrepositionPattern, orgSuffixPattern} {
		if m := pattern.FindStringSubmatch(achievement); m != nil {
			if org := strings.TrimSpace(m[1]); org != "" {
				return org
			}
		}
	}

	return "Achievement"
}

// ExtractImpactMetrics pulls quantified outcomes (percentages, currency,
// counts with units) out of achievement strings. Matches with overly long
// captures are discarded as noise and duplicates are collapsed by
// (metric, value) pair.
func ExtractImpactMetrics(achievements []string) []model.ImpactMetric {
	var metrics []model.ImpactMetric
	seen := make(map[model.ImpactMetric]bool)

	for _, achievement := range achievements {
		text := strings.TrimSpace(achievement)
		if text == "" {
			continue
		}

		for i, pattern := range impactPatterns {
			m := pattern.FindStringSubmatch(text)
			if m == nil {
				continue
			}

			var metric, value string
			if i == 0 {
				// "increased X by Y%" family: the verb phrase is the metric
				metric = strings.TrimSpace(m[1] + " " + m[2])
				value = strings.TrimSpace(m[3])
			} else {
				value = strings.TrimSpace(m[1])
				metric = strings.TrimSpace(m[2])
			}

			if metric == "" || value == "" {
				break
			}
			if len(value) > maxImpactValueLen || len(metric) > maxImpactMetricLen {
				break
			}

			im := model.ImpactMetric{Metric: metric, Value: value}
			if !seen[im] {
				seen[im] = true
				metrics = append(metrics, im)
			}
			break
		}
	}

	return metrics
}
