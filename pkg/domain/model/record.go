package model

import (
	"time"

	"github.com/secmon-lab/covidstat/pkg/domain/types"
)

// Record is one row of the dataset
type Record struct {
	Date             time.Time
	CountryCode      string
	Country          types.Country
	Region           types.Region
	Year             types.Year
	NewCases         int64
	CumulativeCases  int64
	NewDeaths        int64
	CumulativeDeaths int64
}
