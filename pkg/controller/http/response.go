package http

import (
	"context"
	"net/http"

	"github.com/goccy/go-json"
	"github.com/m-mizutani/ctxlog"
	"github.com/secmon-lab/covidstat/pkg/utils/apperr"
)

// ErrorResponse is the body of every non-2xx JSON response
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// TotalDeathsResponse is returned by the /deaths family of endpoints
type TotalDeathsResponse struct {
	TotalDeaths int64 `json:"total_deaths"`
}

// CountryResponse is returned by /max_deaths/ and /min_deaths/
type CountryResponse struct {
	Country string `json:"country"`
	Success bool   `json:"success"`
}

// AverageResponse is returned by /avg_deaths/
type AverageResponse struct {
	Average float64 `json:"average"`
	Success bool    `json:"success"`
}

// HealthResponse is returned by /health
type HealthResponse struct {
	Status    string `json:"status"`
	Service   string `json:"service"`
	DatasetID string `json:"dataset_id"`
	Rows      int    `json:"rows"`
}

// writeJSON writes v as a JSON response with the given status
func writeJSON(ctx context.Context, w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		ctxlog.From(ctx).Error("Failed to encode response", "error", err)
	}
}

// writeError logs err and writes it with the status matching its class
func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	apperr.Handle(ctx, err)

	status := apperr.HTTPStatus(err)
	detail := err.Error()
	if status >= http.StatusInternalServerError {
		detail = http.StatusText(status)
	}
	writeJSON(ctx, w, status, ErrorResponse{Detail: detail})
}
