package usecase

import (
	"context"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/covidstat/pkg/domain/interfaces"
	"github.com/secmon-lab/covidstat/pkg/domain/model"
	"github.com/secmon-lab/covidstat/pkg/domain/types"
	"github.com/secmon-lab/covidstat/pkg/utils/metrics"
)

// StatsUseCase answers aggregate queries over an immutable dataset.
// It holds no mutable state and is safe for concurrent use.
type StatsUseCase struct {
	dataset *model.Dataset
}

var _ interfaces.Stats = (*StatsUseCase)(nil)

// NewStatsUseCase creates a new StatsUseCase instance
func NewStatsUseCase(dataset *model.Dataset) *StatsUseCase {
	return &StatsUseCase{dataset: dataset}
}

// Countries returns distinct countries in first-occurrence order
func (uc *StatsUseCase) Countries(ctx context.Context) []types.Country {
	metrics.QueriesTotal.WithLabelValues("countries").Inc()
	return distinct(uc.dataset, func(r *model.Record) types.Country { return r.Country })
}

// Regions returns distinct WHO regions in first-occurrence order
func (uc *StatsUseCase) Regions(ctx context.Context) []types.Region {
	metrics.QueriesTotal.WithLabelValues("regions").Inc()
	return distinct(uc.dataset, func(r *model.Record) types.Region { return r.Region })
}

func distinct[T comparable](ds *model.Dataset, key func(*model.Record) T) []T {
	seen := make(map[T]struct{})
	out := make([]T, 0)
	for _, r := range ds.All() {
		k := key(&r)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	return out
}

// TotalDeaths sums cumulative deaths over every record
func (uc *StatsUseCase) TotalDeaths(ctx context.Context) int64 {
	metrics.QueriesTotal.WithLabelValues("total_deaths").Inc()
	return uc.sum(model.Filter{})
}

// TotalDeathsBy sums cumulative deaths over records matching filter
func (uc *StatsUseCase) TotalDeathsBy(ctx context.Context, filter model.Filter) int64 {
	metrics.QueriesTotal.WithLabelValues("total_deaths_by").Inc()
	total := uc.sum(filter)
	ctxlog.From(ctx).Debug("Total deaths by filter", "filter", filter, "total", total)
	return total
}

func (uc *StatsUseCase) sum(filter model.Filter) int64 {
	var total int64
	if filter.IsEmpty() {
		for _, r := range uc.dataset.All() {
			total += r.CumulativeDeaths
		}
		return total
	}
	for _, r := range uc.dataset.Select(filter) {
		total += r.CumulativeDeaths
	}
	return total
}

// ExtremeCountry returns the country of the first record holding the
// minimum or maximum cumulative deaths within dates
func (uc *StatsUseCase) ExtremeCountry(ctx context.Context, dates model.DateRange, mode model.ExtremeMode) (types.Country, error) {
	metrics.QueriesTotal.WithLabelValues(mode.String() + "_deaths").Inc()

	if mode != model.ExtremeMin && mode != model.ExtremeMax {
		return "", goerr.New("invalid extreme mode", goerr.V("mode", int(mode)))
	}

	var (
		best  model.Record
		found bool
	)
	for _, r := range uc.dataset.Select(model.Filter{}.WithDates(dates)) {
		// strict comparison keeps the first record on ties
		if !found ||
			(mode == model.ExtremeMax && r.CumulativeDeaths > best.CumulativeDeaths) ||
			(mode == model.ExtremeMin && r.CumulativeDeaths < best.CumulativeDeaths) {
			best = r
			found = true
		}
	}

	if !found {
		return "", goerr.Wrap(model.ErrNoRows, "no records in date range",
			goerr.V("dates", dates),
			goerr.V("mode", mode.String()))
	}

	return best.Country, nil
}

// AverageDeaths returns the mean cumulative deaths over every record
func (uc *StatsUseCase) AverageDeaths(ctx context.Context) (float64, error) {
	metrics.QueriesTotal.WithLabelValues("avg_deaths").Inc()

	n := uc.dataset.Len()
	if n == 0 {
		return 0, goerr.Wrap(model.ErrNoRows, "cannot average an empty dataset")
	}
	return float64(uc.sum(model.Filter{})) / float64(n), nil
}

// Summary describes the loaded dataset
func (uc *StatsUseCase) Summary(ctx context.Context) *model.Summary {
	s := &model.Summary{
		DatasetID: uc.dataset.ID(),
		Source:    uc.dataset.Source(),
		LoadedAt:  uc.dataset.LoadedAt(),
		Rows:      uc.dataset.Len(),
		Countries: len(uc.Countries(ctx)),
		Regions:   len(uc.Regions(ctx)),
	}

	var first, last time.Time
	for i, r := range uc.dataset.All() {
		if i == 0 || r.Date.Before(first) {
			first = r.Date
		}
		if i == 0 || r.Date.After(last) {
			last = r.Date
		}
	}
	if s.Rows > 0 {
		s.FirstDate = first.Format(model.DateLayout)
		s.LastDate = last.Format(model.DateLayout)
	}

	return s
}
