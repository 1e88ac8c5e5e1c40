package config

import (
	"log/slog"
	"time"

	"github.com/m-mizutani/goerr/v2"
	controller "github.com/secmon-lab/covidstat/pkg/controller/http"
	"github.com/urfave/cli/v3"
)

// Server holds server configuration
type Server struct {
	Addr        string
	CORSOrigins []string
	RateLimit   int
}

// Flags returns CLI flags for Server configuration
func (s *Server) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "Server address",
			Category:    "Server",
			Value:       "localhost:8000",
			Sources:     cli.EnvVars("COVIDSTAT_ADDR"),
			Destination: &s.Addr,
		},
		&cli.StringSliceFlag{
			Name:        "cors-origins",
			Usage:       "Allowed CORS origins",
			Category:    "Server",
			Value:       []string{"*"},
			Sources:     cli.EnvVars("COVIDSTAT_CORS_ORIGINS"),
			Destination: &s.CORSOrigins,
		},
		&cli.IntFlag{
			Name:        "rate-limit",
			Usage:       "Requests per minute per client IP for query endpoints (0 disables)",
			Category:    "Server",
			Value:       100,
			Sources:     cli.EnvVars("COVIDSTAT_RATE_LIMIT"),
			Destination: &s.RateLimit,
		},
	}
}

// Validate validates the server configuration
func (s *Server) Validate() error {
	if s.Addr == "" {
		return goerr.New("server address is required")
	}
	if s.RateLimit < 0 {
		return goerr.New("rate limit must not be negative", goerr.V("rate_limit", s.RateLimit))
	}
	return nil
}

// Configure builds the HTTP controller configuration
func (s *Server) Configure() (*controller.Config, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return controller.NewConfig(s.Addr,
		controller.WithCORSOrigins(s.CORSOrigins),
		controller.WithRateLimit(s.RateLimit, time.Minute),
	), nil
}

// LogValue returns structured log value
func (s Server) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("addr", s.Addr),
		slog.Any("cors_origins", s.CORSOrigins),
		slog.Int("rate_limit", s.RateLimit),
	)
}
