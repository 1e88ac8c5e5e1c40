package config

import (
	"log/slog"
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/covidstat/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

// Logger holds logger configuration. Logs are written to stderr.
type Logger struct {
	Level  string
	Format string
}

// Flags returns CLI flags for Logger configuration
func (l *Logger) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "log-level",
			Usage:       "Log level [debug|info|warn|error]",
			Category:    "Logging",
			Value:       "info",
			Sources:     cli.EnvVars("COVIDSTAT_LOG_LEVEL"),
			Destination: &l.Level,
		},
		&cli.StringFlag{
			Name:        "log-format",
			Usage:       "Log format [auto|console|json]; auto picks console on a terminal",
			Category:    "Logging",
			Value:       "auto",
			Sources:     cli.EnvVars("COVIDSTAT_LOG_FORMAT"),
			Destination: &l.Format,
		},
	}
}

func (l *Logger) parse() (slog.Level, logging.Format, error) {
	level, ok := logging.ParseLevel(l.Level)
	if !ok {
		return 0, 0, goerr.New("invalid log level", goerr.V("level", l.Level))
	}
	format, ok := logging.ParseFormat(l.Format)
	if !ok {
		return 0, 0, goerr.New("invalid log format", goerr.V("format", l.Format))
	}
	return level, format, nil
}

// Validate validates the logger configuration
func (l *Logger) Validate() error {
	_, _, err := l.parse()
	return err
}

// Configure builds the process logger
func (l *Logger) Configure() (*slog.Logger, error) {
	level, format, err := l.parse()
	if err != nil {
		return nil, err
	}
	return logging.NewLoggerWithFormat(level, os.Stderr, format), nil
}

func (l Logger) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("level", l.Level),
		slog.String("format", l.Format),
	)
}
