package interfaces

import (
	"context"

	"github.com/secmon-lab/covidstat/pkg/domain/model"
	"github.com/secmon-lab/covidstat/pkg/domain/types"
)

// Stats defines the read-only query/aggregate operations over the dataset
type Stats interface {
	// Countries returns distinct countries in first-occurrence order
	Countries(ctx context.Context) []types.Country

	// Regions returns distinct WHO regions in first-occurrence order
	Regions(ctx context.Context) []types.Region

	// TotalDeaths sums cumulative deaths over every record
	TotalDeaths(ctx context.Context) int64

	// TotalDeathsBy sums cumulative deaths over records matching filter.
	// An unmatched filter yields 0.
	TotalDeathsBy(ctx context.Context, filter model.Filter) int64

	// ExtremeCountry returns the country of the record holding the minimum or
	// maximum cumulative deaths within dates. Returns model.ErrNoRows when no
	// record falls in the range.
	ExtremeCountry(ctx context.Context, dates model.DateRange, mode model.ExtremeMode) (types.Country, error)

	// AverageDeaths returns the mean cumulative deaths over every record
	AverageDeaths(ctx context.Context) (float64, error)

	// Summary describes the loaded dataset
	Summary(ctx context.Context) *model.Summary
}
