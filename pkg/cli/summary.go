package cli

import (
	"context"

	"github.com/goccy/go-json"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/covidstat/pkg/cli/config"
	"github.com/secmon-lab/covidstat/pkg/domain/model"
	"github.com/secmon-lab/covidstat/pkg/usecase"
	"github.com/urfave/cli/v3"
)

type summaryOutput struct {
	Dataset     *model.Summary `json:"dataset"`
	TotalDeaths int64          `json:"total_deaths"`
	Average     *float64       `json:"average,omitempty"`
	MaxCountry  string         `json:"max_country,omitempty"`
	MinCountry  string         `json:"min_country,omitempty"`
}

func cmdSummary() *cli.Command {
	var datasetCfg config.Dataset

	return &cli.Command{
		Name:  "summary",
		Usage: "Load the dataset and print headline aggregates as JSON",
		Flags: datasetCfg.Flags(),
		Action: func(ctx context.Context, c *cli.Command) error {
			dataset, err := datasetCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to load dataset")
			}

			out, err := buildSummary(ctx, usecase.NewStatsUseCase(dataset))
			if err != nil {
				return err
			}

			enc := json.NewEncoder(c.Root().Writer)
			enc.SetIndent("", "  ")
			if err := enc.Encode(out); err != nil {
				return goerr.Wrap(err, "failed to write summary")
			}
			return nil
		},
	}
}

func buildSummary(ctx context.Context, stats *usecase.StatsUseCase) (*summaryOutput, error) {
	out := &summaryOutput{
		Dataset:     stats.Summary(ctx),
		TotalDeaths: stats.TotalDeaths(ctx),
	}

	// An empty dataset still has a summary; the aggregates below are omitted
	if out.Dataset.Rows == 0 {
		return out, nil
	}

	avg, err := stats.AverageDeaths(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to compute average")
	}
	out.Average = &avg

	maxCountry, err := stats.ExtremeCountry(ctx, model.DateRange{}, model.ExtremeMax)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to find max country")
	}
	minCountry, err := stats.ExtremeCountry(ctx, model.DateRange{}, model.ExtremeMin)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to find min country")
	}
	out.MaxCountry = maxCountry.String()
	out.MinCountry = minCountry.String()

	return out, nil
}
