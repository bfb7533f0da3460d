// Package config loads service settings from an optional YAML file and the
// FORMSTATE_ environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formstate/pkg/telemetry"
	"github.com/goliatone/go-formstate/pkg/theme"
)

// EnvPrefix is prepended to every environment variable name.
const EnvPrefix = "FORMSTATE_"

// overrideTag names a struct tag nothing carries, so the override pass reads
// only variables that are actually set and leaves file values alone.
const overrideTag = "envOverride"

// Config holds every tunable of the CLI and HTTP server.
type Config struct {
	Addr       string                  `yaml:"addr" env:"ADDR" envDefault:":8080"`
	Theme      string                  `yaml:"theme" env:"THEME" envDefault:"light"`
	CookieName string                  `yaml:"cookie_name" env:"COOKIE_NAME" envDefault:"formstate_session"`
	SessionTTL time.Duration           `yaml:"session_ttl" env:"SESSION_TTL" envDefault:"30m"`
	Output     string                  `yaml:"output" env:"OUTPUT" envDefault:"json"`
	Logging    telemetry.LoggingConfig `yaml:"logging" envPrefix:"LOG_"`
	Metrics    telemetry.MetricsConfig `yaml:"metrics" envPrefix:"METRICS_"`
}

// Default returns the built-in settings, ignoring the process environment.
func Default() Config {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Environment: map[string]string{}}); err != nil {
		panic(fmt.Sprintf("config: invalid defaults: %v", err))
	}
	return cfg
}

// Load layers defaults, the YAML file at path (skipped when path is empty)
// and the environment, in that order, then validates the result.
func Load(path string) (Config, error) {
	return LoadWithEnv(path, nil)
}

// LoadWithEnv is Load with an explicit environment. A nil map reads the
// process environment.
func LoadWithEnv(path string, environ map[string]string) (Config, error) {
	cfg := Default()

	if strings.TrimSpace(path) != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("config: read %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("config: decode %s: %w", path, err)
		}
	}

	opts := env.Options{Prefix: EnvPrefix, DefaultValueTagName: overrideTag}
	if environ != nil {
		opts.Environment = environ
	}
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return Config{}, fmt.Errorf("config: parse env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects settings the server cannot start with.
func (c Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.Addr) == "" {
		errs = append(errs, errors.New("addr is required"))
	}
	if _, err := theme.ParseMode(c.Theme); err != nil {
		errs = append(errs, err)
	}
	if strings.TrimSpace(c.CookieName) == "" {
		errs = append(errs, errors.New("cookie_name is required"))
	}
	if c.SessionTTL < 0 {
		errs = append(errs, errors.New("session_ttl must not be negative"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("config: %w", errors.Join(errs...))
	}
	return nil
}

// Mode returns the configured default theme mode.
func (c Config) Mode() theme.Mode {
	mode, err := theme.ParseMode(c.Theme)
	if err != nil {
		return theme.DefaultMode
	}
	return mode
}
