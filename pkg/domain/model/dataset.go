package model

import (
	"iter"
	"log/slog"
	"slices"
	"time"

	"github.com/secmon-lab/covidstat/pkg/domain/types"
)

// Dataset is the immutable in-memory collection of records loaded at startup.
// It has no mutating methods; all accessors hand out copies.
type Dataset struct {
	id       types.DatasetID
	source   string
	loadedAt time.Time
	records  []Record
}

// NewDataset creates a Dataset snapshot from records. The slice is copied.
func NewDataset(source string, records []Record) *Dataset {
	return &Dataset{
		id:       types.NewDatasetID(),
		source:   source,
		loadedAt: time.Now().UTC(),
		records:  slices.Clone(records),
	}
}

// ID returns the snapshot identifier
func (d *Dataset) ID() types.DatasetID {
	return d.id
}

// Source returns where the records were loaded from
func (d *Dataset) Source() string {
	return d.source
}

// LoadedAt returns when the snapshot was created
func (d *Dataset) LoadedAt() time.Time {
	return d.loadedAt
}

// Len returns the number of records
func (d *Dataset) Len() int {
	return len(d.records)
}

// All iterates records in dataset order
func (d *Dataset) All() iter.Seq2[int, Record] {
	return func(yield func(int, Record) bool) {
		for i, r := range d.records {
			if !yield(i, r) {
				return
			}
		}
	}
}

// Select returns the records matched by f, preserving dataset order
func (d *Dataset) Select(f Filter) []Record {
	var out []Record
	for _, r := range d.All() {
		if f.Match(&r) {
			out = append(out, r)
		}
	}
	return out
}

// LogValue returns structured log value
func (d *Dataset) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("id", d.id.String()),
		slog.String("source", d.source),
		slog.Int("rows", len(d.records)),
	)
}
