package http_test

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/gt"
	controller "github.com/secmon-lab/covidstat/pkg/controller/http"
	"github.com/secmon-lab/covidstat/pkg/domain/model"
	"github.com/secmon-lab/covidstat/pkg/domain/types"
	"github.com/secmon-lab/covidstat/pkg/usecase"
)

func record(day string, country types.Country, region types.Region, deaths int64) model.Record {
	d, err := time.Parse(model.DateLayout, day)
	if err != nil {
		panic(err)
	}
	return model.Record{
		Date:             d,
		Country:          country,
		Region:           region,
		Year:             types.Year(d.Year()),
		CumulativeDeaths: deaths,
	}
}

func testContext() context.Context {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	return ctxlog.With(context.Background(), logger)
}

func newTestServer(t *testing.T, records []model.Record, opts ...controller.ConfigOption) *controller.Server {
	t.Helper()
	ctx := testContext()
	stats := usecase.NewStatsUseCase(model.NewDataset("test", records))

	opts = append([]controller.ConfigOption{controller.WithRateLimit(0, time.Minute)}, opts...)
	server, err := controller.NewServer(ctx, controller.NewConfig(":8000", opts...), stats)
	gt.NoError(t, err).Required()
	return server
}

// sampleRecords is the dataset of the (US, 2020, 100), (US, 2021, 150), (FR, 2020, 50) example
func sampleRecords() []model.Record {
	return []model.Record{
		record("2020-06-01", "US", "AMRO", 100),
		record("2021-06-01", "US", "AMRO", 150),
		record("2020-06-01", "FR", "EURO", 50),
	}
}

func get(t *testing.T, server *controller.Server, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	w := httptest.NewRecorder()
	server.Server.Handler.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	gt.NoError(t, json.Unmarshal(w.Body.Bytes(), &v)).Required()
	return v
}

func TestServerHealthCheck(t *testing.T) {
	server := newTestServer(t, sampleRecords())

	w := get(t, server, "/health")
	gt.Equal(t, w.Code, http.StatusOK)

	resp := decode[controller.HealthResponse](t, w)
	gt.Equal(t, resp.Status, "healthy")
	gt.Equal(t, resp.Service, "covidstat")
	gt.Equal(t, resp.Rows, 3)
	gt.NotEqual(t, resp.DatasetID, "")
}

func TestServerEndToEndExample(t *testing.T) {
	server := newTestServer(t, sampleRecords())

	w := get(t, server, "/deaths_by_country_year/US/2021")
	gt.Equal(t, w.Code, http.StatusOK)
	gt.Equal(t, w.Body.String(), "{\"total_deaths\":150}\n")

	w = get(t, server, "/deaths")
	gt.Equal(t, w.Code, http.StatusOK)
	gt.Equal(t, w.Body.String(), "{\"total_deaths\":300}\n")
	gt.Equal(t, w.Header().Get("Content-Type"), "application/json")
}

func TestServerDistinctValues(t *testing.T) {
	server := newTestServer(t, sampleRecords())

	t.Run("countries", func(t *testing.T) {
		w := get(t, server, "/countries/")
		gt.Equal(t, w.Code, http.StatusOK)
		gt.Equal(t, decode[[]string](t, w), []string{"US", "FR"})
	})

	t.Run("regions", func(t *testing.T) {
		w := get(t, server, "/regions/")
		gt.Equal(t, w.Code, http.StatusOK)
		gt.Equal(t, decode[[]string](t, w), []string{"AMRO", "EURO"})
	})

	t.Run("without trailing slash", func(t *testing.T) {
		w := get(t, server, "/countries")
		gt.Equal(t, w.Code, http.StatusOK)
	})

	t.Run("empty dataset returns empty array", func(t *testing.T) {
		empty := newTestServer(t, nil)
		w := get(t, empty, "/countries/")
		gt.Equal(t, w.Code, http.StatusOK)
		gt.Equal(t, w.Body.String(), "[]\n")
	})
}

func TestServerTotals(t *testing.T) {
	server := newTestServer(t, sampleRecords())

	tests := []struct {
		name   string
		target string
		want   int64
	}{
		{"by country", "/deaths_by_country/US", 250},
		{"by region", "/deaths_by_region/EURO", 50},
		{"by region and year", "/deaths_by_region_year/AMRO/2020", 100},
		{"by country and year", "/deaths_by_country_year/FR/2020", 50},
		{"unknown country is zero", "/deaths_by_country/Atlantis", 0},
		{"unknown region is zero", "/deaths_by_region/NOWHERE", 0},
		{"year without rows is zero", "/deaths_by_country_year/US/1999", 0},
		{"escaped country name", "/deaths_by_country/United%20States", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := get(t, server, tt.target)
			gt.Equal(t, w.Code, http.StatusOK)
			gt.Equal(t, decode[controller.TotalDeathsResponse](t, w).TotalDeaths, tt.want)
		})
	}

	t.Run("non integer year is a client error", func(t *testing.T) {
		for _, target := range []string{
			"/deaths_by_country_year/US/twenty",
			"/deaths_by_region_year/AMRO/2020.5",
		} {
			w := get(t, server, target)
			gt.Equal(t, w.Code, http.StatusBadRequest)
			gt.S(t, decode[controller.ErrorResponse](t, w).Detail).Contains("year")
		}
	})
}

func TestServerEscapedPathParams(t *testing.T) {
	server := newTestServer(t, []model.Record{
		record("2021-06-01", "Bonaire, Sint Eustatius and Saba", "AMRO", 7),
		record("2021-06-01", "occupied Palestinian territory, including east Jerusalem", "EMRO", 11),
		record("2021-06-01", "US", "AMRO", 100),
	})

	tests := []struct {
		name   string
		target string
		want   int64
	}{
		{"comma left as is", "/deaths_by_country/Bonaire,%20Sint%20Eustatius%20and%20Saba", 7},
		{"comma encoded", "/deaths_by_country/Bonaire%2C%20Sint%20Eustatius%20and%20Saba", 7},
		{"comma encoded with trailing slash", "/deaths_by_country/Bonaire%2C%20Sint%20Eustatius%20and%20Saba/", 7},
		{"comma encoded with year", "/deaths_by_country_year/occupied%20Palestinian%20territory%2C%20including%20east%20Jerusalem/2021", 11},
		{"encoded region", "/deaths_by_region/AM%52O", 107},
		{"encoded region with year", "/deaths_by_region_year/EM%52O/2021", 11},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := get(t, server, tt.target)
			gt.Equal(t, w.Code, http.StatusOK)
			gt.Equal(t, decode[controller.TotalDeathsResponse](t, w).TotalDeaths, tt.want)
		})
	}

	t.Run("malformed escape is a client error", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/deaths_by_country/x", nil)
		req.URL.Path = "/deaths_by_country/a,b%zz"
		req.URL.RawPath = "/deaths_by_country/a%2Cb%zz"
		w := httptest.NewRecorder()
		server.Server.Handler.ServeHTTP(w, req)

		gt.Equal(t, w.Code, http.StatusBadRequest)
	})
}

func TestServerExtremes(t *testing.T) {
	server := newTestServer(t, sampleRecords())

	t.Run("max over full dataset", func(t *testing.T) {
		w := get(t, server, "/max_deaths/")
		gt.Equal(t, w.Code, http.StatusOK)
		resp := decode[controller.CountryResponse](t, w)
		gt.Equal(t, resp.Country, "US")
		gt.True(t, resp.Success)
	})

	t.Run("min over full dataset", func(t *testing.T) {
		w := get(t, server, "/min_deaths/")
		gt.Equal(t, w.Code, http.StatusOK)
		gt.Equal(t, decode[controller.CountryResponse](t, w).Country, "FR")
	})

	t.Run("max within date range", func(t *testing.T) {
		w := get(t, server, "/max_deaths/?min_date=2020-01-01&max_date=2020-12-31")
		gt.Equal(t, w.Code, http.StatusOK)
		gt.Equal(t, decode[controller.CountryResponse](t, w).Country, "US")
	})

	t.Run("lone bound is ignored", func(t *testing.T) {
		w := get(t, server, "/max_deaths?max_date=2020-12-31")
		gt.Equal(t, w.Code, http.StatusOK)
		gt.Equal(t, decode[controller.CountryResponse](t, w).Country, "US")

		w = get(t, server, "/max_deaths/?min_date=2099-01-01")
		gt.Equal(t, w.Code, http.StatusOK)
		gt.Equal(t, decode[controller.CountryResponse](t, w).Country, "US")
	})

	t.Run("malformed lone bound is ignored", func(t *testing.T) {
		w := get(t, server, "/min_deaths/?max_date=2021-02-30")
		gt.Equal(t, w.Code, http.StatusOK)
		gt.Equal(t, decode[controller.CountryResponse](t, w).Country, "FR")
	})

	t.Run("range without rows is a client error", func(t *testing.T) {
		w := get(t, server, "/max_deaths/?min_date=2099-01-01&max_date=2099-01-02")
		gt.Equal(t, w.Code, http.StatusBadRequest)
		gt.S(t, decode[controller.ErrorResponse](t, w).Detail).Contains("no rows")
	})

	t.Run("malformed date is a client error", func(t *testing.T) {
		for _, target := range []string{
			"/max_deaths/?min_date=2020/01/01&max_date=2020-12-31",
			"/min_deaths/?min_date=2020-01-01&max_date=tomorrow",
			"/min_deaths/?min_date=2021-01-01&max_date=2021-02-30",
		} {
			w := get(t, server, target)
			gt.Equal(t, w.Code, http.StatusBadRequest)
			gt.S(t, decode[controller.ErrorResponse](t, w).Detail).Contains("date")
		}
	})
}

func TestServerAverage(t *testing.T) {
	t.Run("mean of 10, 20, 30", func(t *testing.T) {
		server := newTestServer(t, []model.Record{
			record("2020-01-01", "A", "R", 10),
			record("2020-01-02", "A", "R", 20),
			record("2020-01-03", "B", "R", 30),
		})
		w := get(t, server, "/avg_deaths/")
		gt.Equal(t, w.Code, http.StatusOK)
		resp := decode[controller.AverageResponse](t, w)
		gt.Equal(t, resp.Average, 20.0)
		gt.True(t, resp.Success)
	})

	t.Run("empty dataset is a client error", func(t *testing.T) {
		server := newTestServer(t, nil)
		w := get(t, server, "/avg_deaths/")
		gt.Equal(t, w.Code, http.StatusBadRequest)
	})
}

func TestServerDocs(t *testing.T) {
	server := newTestServer(t, sampleRecords())

	t.Run("root redirects to documentation", func(t *testing.T) {
		w := get(t, server, "/")
		gt.Equal(t, w.Code, http.StatusTemporaryRedirect)
		gt.Equal(t, w.Header().Get("Location"), "/docs/index.html")
	})

	t.Run("documentation page", func(t *testing.T) {
		w := get(t, server, "/docs/index.html")
		gt.Equal(t, w.Code, http.StatusOK)
		gt.S(t, w.Body.String()).Contains("swagger")
	})

	t.Run("openapi document lists endpoints", func(t *testing.T) {
		w := get(t, server, "/docs/doc.json")
		gt.Equal(t, w.Code, http.StatusOK)
		gt.S(t, w.Body.String()).Contains("/deaths_by_country_year/{country}/{year}")
		gt.S(t, w.Body.String()).Contains("covidstat API")
	})
}

func TestServerMetrics(t *testing.T) {
	server := newTestServer(t, sampleRecords())
	get(t, server, "/deaths")

	w := get(t, server, "/metrics")
	gt.Equal(t, w.Code, http.StatusOK)
	gt.S(t, w.Body.String()).Contains("covidstat_http_requests_total")
	gt.S(t, w.Body.String()).Contains(`route="/deaths"`)
}

func TestServerNotFound(t *testing.T) {
	server := newTestServer(t, sampleRecords())
	w := get(t, server, "/no_such_endpoint")
	gt.Equal(t, w.Code, http.StatusNotFound)
	gt.Equal(t, decode[controller.ErrorResponse](t, w).Detail, "Not Found")
}

func TestServerRejectsWrongMethod(t *testing.T) {
	server := newTestServer(t, sampleRecords())
	req := httptest.NewRequest(http.MethodPost, "/deaths", nil)
	w := httptest.NewRecorder()
	server.Server.Handler.ServeHTTP(w, req)
	gt.Equal(t, w.Code, http.StatusMethodNotAllowed)
}
