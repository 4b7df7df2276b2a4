package config

import (
	"os"

	"github.com/cvforge/chronicle/pkg/service/dateparse"
	"github.com/cvforge/chronicle/pkg/service/timeline"
	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/urfave/cli/v3"
)

// Heuristics holds CLI flags for the tunable keyword tables used by event
// processing: industry classification keywords and degree duration estimates.
// Without a config file the built-in defaults apply.
type Heuristics struct {
	path string
}

// heuristicsFile is the TOML shape of a heuristics configuration file
type heuristicsFile struct {
	Industries      map[string][]string `toml:"industries"`
	DegreeDurations map[string]int      `toml:"degree_durations"`
}

// Flags returns CLI flags for heuristics configuration
func (h *Heuristics) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "heuristics",
			Usage:       "Path to TOML file overriding industry keywords and degree durations",
			Sources:     cli.EnvVars("CHRONICLE_HEURISTICS"),
			Destination: &h.path,
		},
	}
}

// Configure builds the event processing service, applying the optional
// heuristics file over the defaults.
func (h *Heuristics) Configure() (*timeline.Service, error) {
	if h.path == "" {
		return timeline.New(), nil
	}

	// #nosec G304 - path is expected to be provided by CLI argument
	data, err := os.ReadFile(h.path)
	if err != nil {
		return nil, goerr.Wrap(ErrConfigNotFound, "failed to read heuristics file", goerr.V(ConfigPathKey, h.path))
	}

	var file heuristicsFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, goerr.Wrap(err, "failed to parse heuristics TOML", goerr.V(ConfigPathKey, h.path))
	}

	industries := timeline.DefaultIndustryKeywords()
	for industry, keywords := range file.Industries {
		if industry == "" || len(keywords) == 0 {
			return nil, goerr.Wrap(ErrInvalidConfig, "industry entry must have a name and keywords",
				goerr.V(ConfigPathKey, h.path), goerr.V("industry", industry))
		}
		industries[industry] = keywords
	}

	durations := dateparse.DefaultDegreeDurations()
	for degree, years := range file.DegreeDurations {
		if degree == "" || years < 1 {
			return nil, goerr.Wrap(ErrInvalidConfig, "degree duration must have a keyword and positive years",
				goerr.V(ConfigPathKey, h.path), goerr.V("degree", degree))
		}
		durations[degree] = years
	}

	parser := dateparse.New(dateparse.WithDegreeDurations(durations))
	return timeline.New(
		timeline.WithDateParser(parser),
		timeline.WithIndustryKeywords(industries),
	), nil
}
