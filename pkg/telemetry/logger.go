package telemetry

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// LoggingConfig selects where and how log lines are written.
type LoggingConfig struct {
	Level  string `yaml:"level" env:"LEVEL" envDefault:"info"`
	Format string `yaml:"format" env:"FORMAT" envDefault:"console"`
	Output string `yaml:"output" env:"OUTPUT" envDefault:"stderr"`
}

// NewLogger builds a zerolog logger from cfg. Output accepts "stdout",
// "stderr" or a file path opened in append mode. The returned closer
// releases the log file; for the standard streams it does nothing.
func NewLogger(cfg LoggingConfig) (zerolog.Logger, io.Closer, error) {
	switch strings.TrimSpace(cfg.Output) {
	case "", "stderr":
		return NewLoggerTo(os.Stderr, cfg), nopCloser{}, nil
	case "stdout":
		return NewLoggerTo(os.Stdout, cfg), nopCloser{}, nil
	}
	file, err := os.OpenFile(cfg.Output, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return zerolog.Nop(), nopCloser{}, fmt.Errorf("telemetry: open log output: %w", err)
	}
	return NewLoggerTo(file, cfg), file, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// NewLoggerTo builds a logger writing to w, useful for tests and for callers
// that own the destination.
func NewLoggerTo(w io.Writer, cfg LoggingConfig) zerolog.Logger {
	if strings.EqualFold(cfg.Format, "console") {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}
	}
	return zerolog.New(w).
		Level(ParseLevel(cfg.Level)).
		With().
		Timestamp().
		Logger()
}

// ParseLevel maps a level name onto zerolog, defaulting to info.
func ParseLevel(level string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "disabled", "off":
		return zerolog.Disabled
	default:
		return zerolog.InfoLevel
	}
}

// Component returns a child logger tagged with the component name.
func Component(log zerolog.Logger, name string) zerolog.Logger {
	return log.With().Str("component", name).Logger()
}
