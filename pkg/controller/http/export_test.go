package http

// Test-only exports
var (
	WriteError = writeError
)
