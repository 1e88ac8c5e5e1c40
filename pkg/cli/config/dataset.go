package config

import (
	"context"
	"log/slog"
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/covidstat/pkg/domain/model"
	"github.com/secmon-lab/covidstat/pkg/repository"
	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"
)

// Dataset holds dataset source configuration
type Dataset struct {
	Path        string
	ColumnsPath string
}

// Flags returns CLI flags for Dataset configuration
func (d *Dataset) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "data",
			Usage:       "Path to the CSV dataset loaded at startup",
			Category:    "Dataset",
			Value:       "Data.csv",
			Sources:     cli.EnvVars("COVIDSTAT_DATA"),
			Destination: &d.Path,
		},
		&cli.StringFlag{
			Name:        "columns",
			Usage:       "Path to a YAML file mapping CSV headers to record fields (default: WHO layout)",
			Category:    "Dataset",
			Sources:     cli.EnvVars("COVIDSTAT_COLUMNS"),
			Destination: &d.ColumnsPath,
		},
	}
}

// Configure loads the dataset described by the configuration
func (d *Dataset) Configure(ctx context.Context) (*model.Dataset, error) {
	if d.Path == "" {
		return nil, goerr.New("dataset path is required")
	}

	columns := model.DefaultColumnsConfig()
	if d.ColumnsPath != "" {
		loaded, err := LoadColumnsFromFile(d.ColumnsPath)
		if err != nil {
			return nil, err
		}
		columns = loaded
	}

	ds, err := repository.LoadCSV(ctx, d.Path, columns)
	if err != nil {
		return nil, err
	}
	return ds, nil
}

// LogValue returns structured log value
func (d Dataset) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("path", d.Path),
		slog.String("columns", d.ColumnsPath),
	)
}

// LoadColumnsFromFile loads a column mapping from YAML file. Required
// fields left out of the file fall back to the WHO layout names.
func LoadColumnsFromFile(path string) (*model.ColumnsConfig, error) {
	if path == "" {
		return nil, goerr.New("configuration file path is required")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, goerr.Wrap(err, "configuration file not found",
				goerr.V("path", path))
		}
		return nil, goerr.Wrap(err, "failed to read configuration file",
			goerr.V("path", path))
	}

	var columns model.ColumnsConfig
	if err := yaml.Unmarshal(data, &columns); err != nil {
		return nil, goerr.Wrap(err, "failed to parse YAML configuration",
			goerr.V("path", path))
	}
	columns.MergeDefaults()

	if err := columns.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid configuration",
			goerr.V("path", path))
	}

	return &columns, nil
}
