package cli

var BuildSummary = buildSummary
