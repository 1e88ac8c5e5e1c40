package http

import (
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/covidstat/pkg/domain/interfaces"
	"github.com/secmon-lab/covidstat/pkg/domain/model"
	"github.com/secmon-lab/covidstat/pkg/domain/types"
)

var validate = validator.New()

// dateRangeQuery holds the query parameters of /max_deaths/ and /min_deaths/
type dateRangeQuery struct {
	MinDate string `validate:"required,datetime=2006-01-02"`
	MaxDate string `validate:"required,datetime=2006-01-02"`
}

// StatsHandler serves the query/aggregate endpoints
type StatsHandler struct {
	stats interfaces.Stats
}

// NewStatsHandler creates a new stats handler
func NewStatsHandler(stats interfaces.Stats) *StatsHandler {
	return &StatsHandler{stats: stats}
}

// HandleCountries returns every distinct country
//
// @Summary List countries
// @Description Returns the unique countries present in the dataset
// @Tags Dataset
// @Produce json
// @Success 200 {array} string
// @Router /countries/ [get]
func (h *StatsHandler) HandleCountries(w http.ResponseWriter, r *http.Request) {
	countries := h.stats.Countries(r.Context())
	out := make([]string, len(countries))
	for i, c := range countries {
		out[i] = c.String()
	}
	writeJSON(r.Context(), w, http.StatusOK, out)
}

// HandleRegions returns every distinct WHO region
//
// @Summary List WHO regions
// @Description Returns the unique WHO regions present in the dataset
// @Tags Dataset
// @Produce json
// @Success 200 {array} string
// @Router /regions/ [get]
func (h *StatsHandler) HandleRegions(w http.ResponseWriter, r *http.Request) {
	regions := h.stats.Regions(r.Context())
	out := make([]string, len(regions))
	for i, reg := range regions {
		out[i] = reg.String()
	}
	writeJSON(r.Context(), w, http.StatusOK, out)
}

// HandleDeaths returns total deaths over the whole dataset
//
// @Summary Total deaths
// @Tags Deaths
// @Produce json
// @Success 200 {object} TotalDeathsResponse
// @Router /deaths [get]
func (h *StatsHandler) HandleDeaths(w http.ResponseWriter, r *http.Request) {
	writeJSON(r.Context(), w, http.StatusOK, TotalDeathsResponse{
		TotalDeaths: h.stats.TotalDeaths(r.Context()),
	})
}

// HandleDeathsByCountry returns total deaths for one country
//
// @Summary Total deaths by country
// @Description Unknown countries yield 0
// @Tags Deaths
// @Produce json
// @Param country path string true "Country name (exact match)"
// @Success 200 {object} TotalDeathsResponse
// @Router /deaths_by_country/{country} [get]
func (h *StatsHandler) HandleDeathsByCountry(w http.ResponseWriter, r *http.Request) {
	country, err := pathParam(r, "country")
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}
	h.writeTotal(w, r, model.Filter{}.WithCountry(types.Country(country)))
}

// HandleDeathsByRegion returns total deaths for one WHO region
//
// @Summary Total deaths by WHO region
// @Description Unknown regions yield 0
// @Tags Deaths
// @Produce json
// @Param region path string true "WHO region code (exact match)"
// @Success 200 {object} TotalDeathsResponse
// @Router /deaths_by_region/{region} [get]
func (h *StatsHandler) HandleDeathsByRegion(w http.ResponseWriter, r *http.Request) {
	region, err := pathParam(r, "region")
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}
	h.writeTotal(w, r, model.Filter{}.WithRegion(types.Region(region)))
}

// HandleDeathsByCountryYear returns total deaths for one country in one year
//
// @Summary Total deaths by country and year
// @Tags Deaths
// @Produce json
// @Param country path string true "Country name (exact match)"
// @Param year path int true "Year"
// @Success 200 {object} TotalDeathsResponse
// @Failure 400 {object} ErrorResponse
// @Router /deaths_by_country_year/{country}/{year} [get]
func (h *StatsHandler) HandleDeathsByCountryYear(w http.ResponseWriter, r *http.Request) {
	country, err := pathParam(r, "country")
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}
	year, err := yearParam(r)
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}
	h.writeTotal(w, r, model.Filter{}.WithCountry(types.Country(country)).WithYear(year))
}

// HandleDeathsByRegionYear returns total deaths for one WHO region in one year
//
// @Summary Total deaths by WHO region and year
// @Tags Deaths
// @Produce json
// @Param region path string true "WHO region code (exact match)"
// @Param year path int true "Year"
// @Success 200 {object} TotalDeathsResponse
// @Failure 400 {object} ErrorResponse
// @Router /deaths_by_region_year/{region}/{year} [get]
func (h *StatsHandler) HandleDeathsByRegionYear(w http.ResponseWriter, r *http.Request) {
	region, err := pathParam(r, "region")
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}
	year, err := yearParam(r)
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}
	h.writeTotal(w, r, model.Filter{}.WithRegion(types.Region(region)).WithYear(year))
}

func (h *StatsHandler) writeTotal(w http.ResponseWriter, r *http.Request, filter model.Filter) {
	writeJSON(r.Context(), w, http.StatusOK, TotalDeathsResponse{
		TotalDeaths: h.stats.TotalDeathsBy(r.Context(), filter),
	})
}

// HandleMaxDeaths returns the country with the highest cumulative deaths
//
// @Summary Country with maximum deaths
// @Description The range is inclusive and applies only when both bounds are given
// @Tags Extremes
// @Produce json
// @Param min_date query string false "Lower bound (YYYY-MM-DD)"
// @Param max_date query string false "Upper bound (YYYY-MM-DD)"
// @Success 200 {object} CountryResponse
// @Failure 400 {object} ErrorResponse
// @Router /max_deaths/ [get]
func (h *StatsHandler) HandleMaxDeaths(w http.ResponseWriter, r *http.Request) {
	h.writeExtreme(w, r, model.ExtremeMax)
}

// HandleMinDeaths returns the country with the lowest cumulative deaths
//
// @Summary Country with minimum deaths
// @Description The range is inclusive and applies only when both bounds are given
// @Tags Extremes
// @Produce json
// @Param min_date query string false "Lower bound (YYYY-MM-DD)"
// @Param max_date query string false "Upper bound (YYYY-MM-DD)"
// @Success 200 {object} CountryResponse
// @Failure 400 {object} ErrorResponse
// @Router /min_deaths/ [get]
func (h *StatsHandler) HandleMinDeaths(w http.ResponseWriter, r *http.Request) {
	h.writeExtreme(w, r, model.ExtremeMin)
}

func (h *StatsHandler) writeExtreme(w http.ResponseWriter, r *http.Request, mode model.ExtremeMode) {
	dates, err := dateRangeParams(r)
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}

	country, err := h.stats.ExtremeCountry(r.Context(), dates, mode)
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}

	writeJSON(r.Context(), w, http.StatusOK, CountryResponse{
		Country: country.String(),
		Success: true,
	})
}

// HandleAvgDeaths returns the mean cumulative deaths
//
// @Summary Average deaths
// @Tags Deaths
// @Produce json
// @Success 200 {object} AverageResponse
// @Failure 400 {object} ErrorResponse
// @Router /avg_deaths/ [get]
func (h *StatsHandler) HandleAvgDeaths(w http.ResponseWriter, r *http.Request) {
	avg, err := h.stats.AverageDeaths(r.Context())
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}
	writeJSON(r.Context(), w, http.StatusOK, AverageResponse{
		Average: avg,
		Success: true,
	})
}

// pathParam returns the decoded value of a path parameter. chi matches on
// RawPath when the request escapes reserved characters, so the value may
// still be percent-encoded.
func pathParam(r *http.Request, key string) (string, error) {
	raw := chi.URLParam(r, key)
	v, err := url.PathUnescape(raw)
	if err != nil {
		return "", goerr.Wrap(err, "malformed path parameter",
			goerr.V("param", key),
			goerr.V("value", raw),
			goerr.T(model.ErrTagInvalidInput))
	}
	return v, nil
}

func yearParam(r *http.Request) (types.Year, error) {
	raw, err := pathParam(r, "year")
	if err != nil {
		return 0, err
	}
	if err := validate.Var(raw, "required,numeric"); err != nil {
		return 0, goerr.Wrap(model.ErrInvalidYear, "year must be an integer",
			goerr.V("year", raw),
			goerr.T(model.ErrTagInvalidInput))
	}
	year, err := types.ParseYear(raw)
	if err != nil {
		return 0, goerr.Wrap(model.ErrInvalidYear, err.Error(),
			goerr.V("year", raw),
			goerr.T(model.ErrTagInvalidInput))
	}
	return year, nil
}

func dateRangeParams(r *http.Request) (model.DateRange, error) {
	q := dateRangeQuery{
		MinDate: r.URL.Query().Get("min_date"),
		MaxDate: r.URL.Query().Get("max_date"),
	}
	// a lone bound does not restrict the search
	if q.MinDate == "" || q.MaxDate == "" {
		return model.DateRange{}, nil
	}
	if err := validate.Struct(q); err != nil {
		return model.DateRange{}, goerr.Wrap(model.ErrInvalidDate, "invalid date range",
			goerr.V("min_date", q.MinDate),
			goerr.V("max_date", q.MaxDate),
			goerr.V("validation", err.Error()),
			goerr.T(model.ErrTagInvalidInput))
	}
	return model.ParseDateRange(q.MinDate, q.MaxDate)
}
