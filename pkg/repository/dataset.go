package repository

import (
	"context"
	"encoding/csv"
	"errors"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/covidstat/pkg/domain/model"
	"github.com/secmon-lab/covidstat/pkg/domain/types"
	"github.com/secmon-lab/covidstat/pkg/utils/metrics"
)

// LoadCSV reads the CSV file at path into an immutable Dataset.
// A nil columns mapping uses model.DefaultColumnsConfig.
func LoadCSV(ctx context.Context, path string, columns *model.ColumnsConfig) (*model.Dataset, error) {
	logger := ctxlog.From(ctx)
	start := time.Now()

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, goerr.Wrap(err, "dataset file not found", goerr.V("path", path))
		}
		return nil, goerr.Wrap(err, "failed to open dataset file", goerr.V("path", path))
	}
	defer f.Close()

	records, err := ReadCSV(ctx, f, columns)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to load dataset", goerr.V("path", path))
	}

	ds := model.NewDataset(path, records)
	elapsed := time.Since(start)

	metrics.DatasetRows.Set(float64(ds.Len()))
	metrics.DatasetLoadDuration.Observe(elapsed.Seconds())

	logger.Info("Dataset loaded",
		slog.Any("dataset", ds),
		slog.Duration("duration", elapsed),
	)

	return ds, nil
}

// columnIndex holds header positions; -1 means the column is absent
type columnIndex struct {
	date, countryCode, country, region, year             int
	newCases, cumulativeCases, newDeaths, cumulativeDeaths int
}

func buildColumnIndex(header []string, columns *model.ColumnsConfig) (*columnIndex, error) {
	pos := make(map[string]int, len(header))
	for i, h := range header {
		pos[strings.TrimSpace(h)] = i
	}

	lookup := func(name string) int {
		if name == "" {
			return -1
		}
		if i, ok := pos[name]; ok {
			return i
		}
		return -1
	}

	idx := &columnIndex{
		date:             lookup(columns.Date),
		countryCode:      lookup(columns.CountryCode),
		country:          lookup(columns.Country),
		region:           lookup(columns.Region),
		year:             lookup(columns.Year),
		newCases:         lookup(columns.NewCases),
		cumulativeCases:  lookup(columns.CumulativeCases),
		newDeaths:        lookup(columns.NewDeaths),
		cumulativeDeaths: lookup(columns.CumulativeDeaths),
	}

	required := []struct {
		name string
		i    int
	}{
		{columns.Date, idx.date},
		{columns.Country, idx.country},
		{columns.Region, idx.region},
		{columns.CumulativeDeaths, idx.cumulativeDeaths},
	}
	for _, r := range required {
		if r.i < 0 {
			return nil, goerr.New("required column is missing",
				goerr.V("column", r.name),
				goerr.V("header", header))
		}
	}

	return idx, nil
}

// ReadCSV parses CSV rows from r. The first row must be a header.
func ReadCSV(ctx context.Context, r io.Reader, columns *model.ColumnsConfig) ([]model.Record, error) {
	if columns == nil {
		columns = model.DefaultColumnsConfig()
	}
	if err := columns.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid column mapping")
	}

	reader := csv.NewReader(r)
	reader.ReuseRecord = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, goerr.New("dataset is empty, header row is missing")
		}
		return nil, goerr.Wrap(err, "failed to read header row")
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	idx, err := buildColumnIndex(header, columns)
	if err != nil {
		return nil, err
	}

	var records []model.Record
	for {
		if len(records)%10000 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, goerr.Wrap(err, "dataset load cancelled")
			}
		}

		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to read CSV row")
		}

		line, _ := reader.FieldPos(0)
		rec, err := parseRow(row, idx, columns)
		if err != nil {
			return nil, goerr.Wrap(err, "invalid row", goerr.V("line", line))
		}
		records = append(records, rec)
	}

	return records, nil
}

func parseRow(row []string, idx *columnIndex, columns *model.ColumnsConfig) (model.Record, error) {
	var rec model.Record

	reportDate, err := model.ParseDate(strings.TrimSpace(row[idx.date]))
	if err != nil {
		return rec, goerr.Wrap(err, "invalid report date", goerr.V("column", columns.Date))
	}
	rec.Date = reportDate
	rec.Year = types.Year(reportDate.Year())

	if idx.year >= 0 {
		if v := strings.TrimSpace(row[idx.year]); v != "" {
			y, err := types.ParseYear(v)
			if err != nil {
				return rec, goerr.Wrap(err, "invalid year", goerr.V("column", columns.Year))
			}
			rec.Year = y
		}
	}

	rec.Country = types.Country(row[idx.country])
	rec.Region = types.Region(row[idx.region])
	if idx.countryCode >= 0 {
		rec.CountryCode = row[idx.countryCode]
	}

	deaths, err := parseCount(row[idx.cumulativeDeaths], true)
	if err != nil {
		return rec, goerr.Wrap(err, "invalid cumulative deaths", goerr.V("column", columns.CumulativeDeaths))
	}
	rec.CumulativeDeaths = deaths

	optional := []struct {
		i      int
		column string
		dst    *int64
	}{
		{idx.newCases, columns.NewCases, &rec.NewCases},
		{idx.cumulativeCases, columns.CumulativeCases, &rec.CumulativeCases},
		{idx.newDeaths, columns.NewDeaths, &rec.NewDeaths},
	}
	for _, o := range optional {
		if o.i < 0 {
			continue
		}
		n, err := parseCount(row[o.i], false)
		if err != nil {
			return rec, goerr.Wrap(err, "invalid count", goerr.V("column", o.column))
		}
		*o.dst = n
	}

	return rec, nil
}

// parseCount parses an integer count. Empty optional values are 0. Values
// such as "12.0" written by spreadsheet exports are accepted when integral.
func parseCount(s string, required bool) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		if required {
			return 0, goerr.New("value is empty")
		}
		return 0, nil
	}

	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		f, ferr := strconv.ParseFloat(s, 64)
		if ferr != nil || f != float64(int64(f)) {
			return 0, goerr.Wrap(err, "value is not an integer", goerr.V("value", s))
		}
		n = int64(f)
	}

	if required && n < 0 {
		return 0, goerr.New("value must not be negative", goerr.V("value", n))
	}
	return n, nil
}
