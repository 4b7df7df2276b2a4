package dateparse

import (
	"maps"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"time"

	aradd "github.com/araddon/dateparse"
)

// Parser converts free-text CV date fields into calendar dates. Parse never
// fails: a single unparseable date must not abort a whole timeline, so the
// current instant is the terminal fallback.
type Parser struct {
	now             func() time.Time
	degreeDurations map[string]int
}

// Option configures a Parser
type Option func(*Parser)

// WithClock replaces the time source (tests)
func WithClock(now func() time.Time) Option {
	return func(p *Parser) {
		p.now = now
	}
}

// WithDegreeDurations replaces the degree keyword to expected-years table
// used for education start estimation
func WithDegreeDurations(durations map[string]int) Option {
	return func(p *Parser) {
		if len(durations) > 0 {
			p.degreeDurations = durations
		}
	}
}

// DefaultDegreeDurations returns the built-in degree keyword to years table
func DefaultDegreeDurations() map[string]int {
	return map[string]int{
		"bachelor":    4,
		"master":      2,
		"phd":         5,
		"associate":   2,
		"diploma":     1,
		"certificate": 1,
	}
}

// New creates a Parser
func New(opts ...Option) *Parser {
	p := &Parser{
		now:             time.Now,
		degreeDurations: DefaultDegreeDurations(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

var (
	monthYearPattern = regexp.MustCompile(`^\s*([A-Za-z]+)\s+(\d{4})\s*$`)
	yearPattern      = regexp.MustCompile(`\b(19|20)\d{2}\b`)

	recentKeywords = []string{"present", "current", "now", "ongoing"}

	monthNames = map[string]time.Month{
		"january": time.January, "jan": time.January,
		"february": time.February, "feb": time.February,
		"march": time.March, "mar": time.March,
		"april": time.April, "apr": time.April,
		"may":  time.May,
		"june": time.June, "jun": time.June,
		"july": time.July, "jul": time.July,
		"august": time.August, "aug": time.August,
		"september": time.September, "sep": time.September, "sept": time.September,
		"october": time.October, "oct": time.October,
		"november": time.November, "nov": time.November,
		"december": time.December, "dec": time.December,
	}
)

// Parse converts an arbitrary date-ish string into a valid calendar date.
// Strategies are tried in order, first success wins; the fallback is the
// current instant.
func (p *Parser) Parse(input string) time.Time {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return p.now()
	}

	if direct, err := aradd.ParseAny(trimmed); err == nil && p.inRange(direct) {
		return direct
	}

	if m := monthYearPattern.FindStringSubmatch(trimmed); m != nil {
		if month, ok := monthNames[strings.ToLower(m[1])]; ok {
			year, _ := strconv.Atoi(m[2])
			if p.yearInRange(year) {
				return time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
			}
		}
	}

	if m := yearPattern.FindString(trimmed); m != "" {
		year, _ := strconv.Atoi(m)
		if p.yearInRange(year) {
			return time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
		}
	}

	return p.now()
}

// IsRecent reports whether the date string marks an ongoing position
func (p *Parser) IsRecent(input string) bool {
	lowered := strings.ToLower(input)
	for _, keyword := range recentKeywords {
		if strings.Contains(lowered, keyword) {
			return true
		}
	}
	return false
}

// EstimateEducationStart infers a start date from the degree's end date
// minus the typical duration for the degree type. Unknown degree types get
// the four-year default.
func (p *Parser) EstimateEducationStart(degree string, end time.Time) time.Time {
	years := 4
	lowered := strings.ToLower(degree)
	for _, keyword := range slices.Sorted(maps.Keys(p.degreeDurations)) {
		if strings.Contains(lowered, keyword) {
			years = p.degreeDurations[keyword]
			break
		}
	}
	return time.Date(end.Year()-years, end.Month(), 1, 0, 0, 0, 0, time.UTC)
}

func (p *Parser) inRange(t time.Time) bool {
	min := time.Date(1900, time.January, 1, 0, 0, 0, 0, time.UTC)
	max := time.Date(p.now().Year()+10, time.December, 31, 23, 59, 59, 0, time.UTC)
	return !t.Before(min) && !t.After(max)
}

func (p *Parser) yearInRange(year int) bool {
	return year >= 1900 && year <= p.now().Year()+10
}
