package model

import "github.com/m-mizutani/goerr/v2"

// ErrTagInvalidInput marks errors caused by malformed client input
var ErrTagInvalidInput = goerr.NewTag("invalid_input")

// Sentinel errors for query operations
var (
	ErrNoRows      = goerr.New("no rows match the query")
	ErrInvalidDate = goerr.New("invalid date, expected YYYY-MM-DD")
	ErrInvalidYear = goerr.New("invalid year")
)
