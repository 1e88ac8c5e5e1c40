package model

import (
	"log/slog"
	"strconv"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/covidstat/pkg/domain/types"
)

// DateLayout is the only accepted format for report dates
const DateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD date as UTC midnight
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, goerr.Wrap(ErrInvalidDate, "cannot parse "+strconv.Quote(s),
			goerr.V("date", s),
			goerr.V("cause", err.Error()),
			goerr.T(ErrTagInvalidInput))
	}
	return t, nil
}

// DateRange is an inclusive range of report dates. A nil bound is open.
type DateRange struct {
	From *time.Time
	To   *time.Time
}

// ParseDateRange builds a DateRange from YYYY-MM-DD strings. The range
// is applied only when both bounds are given; otherwise it is open and a
// lone bound is neither parsed nor used.
func ParseDateRange(minDate, maxDate string) (DateRange, error) {
	if minDate == "" || maxDate == "" {
		return DateRange{}, nil
	}

	from, err := ParseDate(minDate)
	if err != nil {
		return DateRange{}, goerr.Wrap(err, "invalid min_date")
	}
	to, err := ParseDate(maxDate)
	if err != nil {
		return DateRange{}, goerr.Wrap(err, "invalid max_date")
	}
	return DateRange{From: &from, To: &to}, nil
}

// IsOpen returns true when neither bound is set
func (r DateRange) IsOpen() bool {
	return r.From == nil && r.To == nil
}

// Contains reports whether t falls within the range, bounds included
func (r DateRange) Contains(t time.Time) bool {
	if r.From != nil && t.Before(*r.From) {
		return false
	}
	if r.To != nil && t.After(*r.To) {
		return false
	}
	return true
}

// LogValue returns structured log value
func (r DateRange) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, 2)
	if r.From != nil {
		attrs = append(attrs, slog.String("from", r.From.Format(DateLayout)))
	}
	if r.To != nil {
		attrs = append(attrs, slog.String("to", r.To.Format(DateLayout)))
	}
	return slog.GroupValue(attrs...)
}

// Filter is an exact-match query descriptor over records. Every set field
// must match; unset fields match anything.
type Filter struct {
	Country *types.Country
	Region  *types.Region
	Year    *types.Year
	Dates   DateRange
}

// WithCountry returns a copy of f restricted to country c
func (f Filter) WithCountry(c types.Country) Filter {
	f.Country = &c
	return f
}

// WithRegion returns a copy of f restricted to region r
func (f Filter) WithRegion(r types.Region) Filter {
	f.Region = &r
	return f
}

// WithYear returns a copy of f restricted to year y
func (f Filter) WithYear(y types.Year) Filter {
	f.Year = &y
	return f
}

// WithDates returns a copy of f restricted to the date range r
func (f Filter) WithDates(r DateRange) Filter {
	f.Dates = r
	return f
}

// IsEmpty returns true if the filter matches every record
func (f Filter) IsEmpty() bool {
	return f.Country == nil && f.Region == nil && f.Year == nil && f.Dates.IsOpen()
}

// Match reports whether rec satisfies every constraint of f
func (f Filter) Match(rec *Record) bool {
	if f.Country != nil && rec.Country != *f.Country {
		return false
	}
	if f.Region != nil && rec.Region != *f.Region {
		return false
	}
	if f.Year != nil && rec.Year != *f.Year {
		return false
	}
	return f.Dates.Contains(rec.Date)
}

// LogValue returns structured log value
func (f Filter) LogValue() slog.Value {
	var attrs []slog.Attr
	if f.Country != nil {
		attrs = append(attrs, slog.String("country", f.Country.String()))
	}
	if f.Region != nil {
		attrs = append(attrs, slog.String("region", f.Region.String()))
	}
	if f.Year != nil {
		attrs = append(attrs, slog.Int("year", int(*f.Year)))
	}
	if !f.Dates.IsOpen() {
		attrs = append(attrs, slog.Any("dates", f.Dates))
	}
	return slog.GroupValue(attrs...)
}

// ExtremeMode selects whether ExtremeCountry looks for the minimum or maximum
type ExtremeMode int

const (
	ExtremeMin ExtremeMode = iota
	ExtremeMax
)

// String returns the string representation
func (m ExtremeMode) String() string {
	switch m {
	case ExtremeMin:
		return "min"
	case ExtremeMax:
		return "max"
	default:
		return "unknown"
	}
}

// Summary describes a loaded dataset
type Summary struct {
	DatasetID types.DatasetID `json:"dataset_id"`
	Source    string          `json:"source"`
	LoadedAt  time.Time       `json:"loaded_at"`
	Rows      int             `json:"rows"`
	Countries int             `json:"countries"`
	Regions   int             `json:"regions"`
	FirstDate string          `json:"first_date,omitempty"`
	LastDate  string          `json:"last_date,omitempty"`
}
