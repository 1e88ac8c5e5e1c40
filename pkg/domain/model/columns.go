package model

import (
	"github.com/m-mizutani/goerr/v2"
)

// ColumnsConfig maps CSV header names to record fields
type ColumnsConfig struct {
	Date             string `yaml:"date"`
	CountryCode      string `yaml:"country_code"`
	Country          string `yaml:"country"`
	Region           string `yaml:"region"`
	Year             string `yaml:"year"`              // Optional, derived from date when empty or absent
	NewCases         string `yaml:"new_cases"`         // Optional
	CumulativeCases  string `yaml:"cumulative_cases"`  // Optional
	NewDeaths        string `yaml:"new_deaths"`        // Optional
	CumulativeDeaths string `yaml:"cumulative_deaths"`
}

// DefaultColumnsConfig returns the mapping for the WHO daily report layout
func DefaultColumnsConfig() *ColumnsConfig {
	return &ColumnsConfig{
		Date:             "Date_reported",
		CountryCode:      "Country_code",
		Country:          "Country",
		Region:           "WHO_region",
		Year:             "Year",
		NewCases:         "New_cases",
		CumulativeCases:  "Cumulative_cases",
		NewDeaths:        "New_deaths",
		CumulativeDeaths: "Cumulative_deaths",
	}
}

// Validate validates the column mapping
func (c *ColumnsConfig) Validate() error {
	required := map[string]string{
		"date":              c.Date,
		"country":           c.Country,
		"region":            c.Region,
		"cumulative_deaths": c.CumulativeDeaths,
	}
	for field, header := range required {
		if header == "" {
			return goerr.New("column mapping is required", goerr.V("field", field))
		}
	}

	seen := make(map[string]string)
	for field, header := range c.fields() {
		if header == "" {
			continue
		}
		if other, ok := seen[header]; ok {
			return goerr.New("column is mapped twice",
				goerr.V("column", header),
				goerr.V("fields", []string{other, field}))
		}
		seen[header] = field
	}

	return nil
}

// MergeDefaults fills empty fields from DefaultColumnsConfig
func (c *ColumnsConfig) MergeDefaults() {
	d := DefaultColumnsConfig()
	fill := func(dst *string, def string) {
		if *dst == "" {
			*dst = def
		}
	}
	fill(&c.Date, d.Date)
	fill(&c.Country, d.Country)
	fill(&c.Region, d.Region)
	fill(&c.CumulativeDeaths, d.CumulativeDeaths)
}

func (c *ColumnsConfig) fields() map[string]string {
	return map[string]string{
		"date":              c.Date,
		"country_code":      c.CountryCode,
		"country":           c.Country,
		"region":            c.Region,
		"year":              c.Year,
		"new_cases":         c.NewCases,
		"cumulative_cases":  c.CumulativeCases,
		"new_deaths":        c.NewDeaths,
		"cumulative_deaths": c.CumulativeDeaths,
	}
}
