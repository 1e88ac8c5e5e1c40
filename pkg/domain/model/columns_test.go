package model_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/covidstat/pkg/domain/model"
)

func TestColumnsConfigValidate(t *testing.T) {
	t.Run("default mapping is valid", func(t *testing.T) {
		gt.NoError(t, model.DefaultColumnsConfig().Validate())
	})

	t.Run("error when a required column is empty", func(t *testing.T) {
		cfg := model.DefaultColumnsConfig()
		cfg.CumulativeDeaths = ""
		gt.Error(t, cfg.Validate())
	})

	t.Run("optional columns may be empty", func(t *testing.T) {
		cfg := model.DefaultColumnsConfig()
		cfg.Year = ""
		cfg.NewCases = ""
		cfg.CountryCode = ""
		gt.NoError(t, cfg.Validate())
	})

	t.Run("error when a column is mapped twice", func(t *testing.T) {
		cfg := model.DefaultColumnsConfig()
		cfg.Region = cfg.Country
		gt.Error(t, cfg.Validate())
	})
}

func TestColumnsConfigMergeDefaults(t *testing.T) {
	cfg := &model.ColumnsConfig{Country: "country_name"}
	cfg.MergeDefaults()
	gt.Equal(t, cfg.Country, "country_name")
	gt.Equal(t, cfg.Date, "Date_reported")
	gt.Equal(t, cfg.Region, "WHO_region")
	gt.Equal(t, cfg.CumulativeDeaths, "Cumulative_deaths")
	gt.Equal(t, cfg.Year, "")
	gt.NoError(t, cfg.Validate())
}
