package apperr_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/covidstat/pkg/domain/model"
	"github.com/secmon-lab/covidstat/pkg/utils/apperr"
)

func TestHTTPStatus(t *testing.T) {
	_, dateErr := model.ParseDate("not-a-date")

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"no rows", goerr.Wrap(model.ErrNoRows, "empty range"), http.StatusBadRequest},
		{"invalid date", dateErr, http.StatusBadRequest},
		{"wrapped invalid date", goerr.Wrap(dateErr, "invalid min_date"), http.StatusBadRequest},
		{"invalid year", goerr.Wrap(model.ErrInvalidYear, "bad year"), http.StatusBadRequest},
		{"tagged input error", goerr.New("bad query", goerr.T(model.ErrTagInvalidInput)), http.StatusBadRequest},
		{"other error", goerr.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gt.Equal(t, apperr.HTTPStatus(tt.err), tt.want)
		})
	}
}

func TestIsClientErrorNil(t *testing.T) {
	gt.False(t, apperr.IsClientError(nil))
}

func TestHandle(t *testing.T) {
	// must not panic without a logger in context
	apperr.Handle(context.Background(), goerr.New("boom"))
	apperr.Handle(context.Background(), model.ErrNoRows)
}
