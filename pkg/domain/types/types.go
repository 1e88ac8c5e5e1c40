package types

import (
	"strconv"

	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
)

// Country represents a country name as it appears in the dataset
type Country string

// String returns the string representation
func (c Country) String() string {
	return string(c)
}

// Region represents a WHO region code
type Region string

// String returns the string representation
func (r Region) String() string {
	return string(r)
}

// Year represents a calendar year
type Year int

// String returns the string representation
func (y Year) String() string {
	return strconv.Itoa(int(y))
}

// ParseYear parses a decimal year such as "2021"
func ParseYear(s string) (Year, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, goerr.Wrap(err, "year is not an integer", goerr.V("year", s))
	}
	return Year(n), nil
}

// DatasetID identifies one loaded snapshot of the dataset
type DatasetID string

// String returns the string representation
func (id DatasetID) String() string {
	return string(id)
}

// NewDatasetID creates a new DatasetID
func NewDatasetID() DatasetID {
	return DatasetID(uuid.New().String())
}
