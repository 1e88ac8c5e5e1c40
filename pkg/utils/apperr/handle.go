package apperr

import (
	"context"
	"errors"
	"net/http"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/covidstat/pkg/domain/model"
	"github.com/secmon-lab/covidstat/pkg/utils/metrics"
)

// IsClientError reports whether err was caused by the request rather than the server
func IsClientError(err error) bool {
	if err == nil {
		return false
	}
	return errors.Is(err, model.ErrNoRows) ||
		errors.Is(err, model.ErrInvalidDate) ||
		errors.Is(err, model.ErrInvalidYear) ||
		goerr.HasTag(err, model.ErrTagInvalidInput)
}

// HTTPStatus maps err to the response status code
func HTTPStatus(err error) int {
	if IsClientError(err) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// Handle logs err with a level matching its class
func Handle(ctx context.Context, err error) {
	logger := ctxlog.From(ctx)
	if IsClientError(err) {
		metrics.ErrorsTotal.WithLabelValues("client").Inc()
		logger.Warn("client error", "error", err)
		return
	}
	metrics.ErrorsTotal.WithLabelValues("server").Inc()
	logger.Error("application error", "error", err)
}
