package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/cvforge/chronicle/pkg/cli/config"
	"github.com/cvforge/chronicle/pkg/domain/model"
	"github.com/cvforge/chronicle/pkg/domain/types"
	"github.com/cvforge/chronicle/pkg/usecase"
	"github.com/cvforge/chronicle/pkg/utils/logging"
)

func cmdGenerate() *cli.Command {
	var input string
	var output string
	var jobID string
	var store bool
	var repoCfg config.Repository
	var heuristicsCfg config.Heuristics

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "input",
			Aliases:     []string{"i"},
			Usage:       "Path to CV JSON file",
			Required:    true,
			Destination: &input,
		},
		&cli.StringFlag{
			Name:        "output",
			Aliases:     []string{"o"},
			Usage:       "Write generated timeline JSON to file (stdout when empty)",
			Destination: &output,
		},
		&cli.StringFlag{
			Name:        "job-id",
			Usage:       "Job ID for the timeline (generated when empty)",
			Destination: &jobID,
		},
		&cli.BoolFlag{
			Name:        "store",
			Usage:       "Persist the generated timeline to the configured repository",
			Destination: &store,
		},
	}
	flags = append(flags, repoCfg.Flags()...)
	flags = append(flags, heuristicsCfg.Flags()...)

	return &cli.Command{
		Name:    "generate",
		Aliases: []string{"g"},
		Usage:   "Generate a timeline from a CV JSON file",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			// #nosec G304 - path is expected to be provided by CLI argument
			raw, err := os.ReadFile(input)
			if err != nil {
				return goerr.Wrap(err, "failed to read CV file", goerr.V("path", input))
			}

			var cv model.CV
			if err := json.Unmarshal(raw, &cv); err != nil {
				return goerr.Wrap(err, "failed to parse CV JSON", goerr.V("path", input))
			}

			if jobID == "" {
				jobID = "job-" + uuid.NewString()
			}

			timelineSvc, err := heuristicsCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to load heuristics configuration")
			}

			ucOpts := []usecase.Option{usecase.WithTimelineService(timelineSvc)}
			var uc *usecase.UseCases
			if store {
				repo, err := repoCfg.Configure(ctx)
				if err != nil {
					return goerr.Wrap(err, "failed to initialize repository")
				}
				defer func() {
					if err := repo.Close(); err != nil {
						logging.Default().Error("failed to close repository", "error", err.Error())
					}
				}()
				uc = usecase.New(repo, ucOpts...)
			} else {
				uc = usecase.New(nil, ucOpts...)
			}

			data, err := uc.Timeline.Generate(ctx, types.JobID(jobID), &cv)
			if err != nil {
				return goerr.Wrap(err, "failed to generate timeline", goerr.V("job_id", jobID))
			}

			printTimelineSummary(jobID, data, store)

			encoded, err := json.MarshalIndent(data, "", "  ")
			if err != nil {
				return goerr.Wrap(err, "failed to encode timeline")
			}
			if output == "" {
				fmt.Println(string(encoded))
				return nil
			}
			if err := os.WriteFile(output, encoded, 0644); err != nil {
				return goerr.Wrap(err, "failed to write timeline file", goerr.V("path", output))
			}
			return nil
		},
	}
}

func printTimelineSummary(jobID string, data *model.TimelineData, stored bool) {
	bold := color.New(color.Bold)
	green := color.New(color.FgGreen)
	cyan := color.New(color.FgCyan)

	bold.Fprintf(os.Stderr, "Timeline for %s\n", jobID)
	cyan.Fprintf(os.Stderr, "  events:         %d\n", len(data.Events))
	cyan.Fprintf(os.Stderr, "  years of exp:   %.1f\n", data.Summary.TotalYearsExperience)
	cyan.Fprintf(os.Stderr, "  companies:      %d\n", data.Summary.CompaniesWorked)
	cyan.Fprintf(os.Stderr, "  degrees:        %d\n", data.Summary.DegreesEarned)
	cyan.Fprintf(os.Stderr, "  certifications: %d\n", data.Summary.CertificationsEarned)
	if stored {
		green.Fprintln(os.Stderr, "  stored: yes")
	}
}
