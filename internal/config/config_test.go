package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formstate/pkg/telemetry"
	"github.com/goliatone/go-formstate/pkg/theme"
)

func writeFile(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "formstate.yaml")
	if err := os.WriteFile(path, []byte(contents), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestDefault(t *testing.T) {
	want := Config{
		Addr:       ":8080",
		Theme:      "light",
		CookieName: "formstate_session",
		SessionTTL: 30 * time.Minute,
		Output:     "json",
		Logging:    telemetry.LoggingConfig{Level: "info", Format: "console", Output: "stderr"},
		Metrics:    telemetry.MetricsConfig{Enabled: true, Namespace: "formstate"},
	}
	if diff := cmp.Diff(want, Default()); diff != "" {
		t.Fatalf("defaults mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadLayersFileThenEnv(t *testing.T) {
	path := writeFile(t, `
addr: ":9090"
theme: dark
session_ttl: 5m
logging:
  level: debug
  format: json
metrics:
  enabled: false
`)

	cfg, err := LoadWithEnv(path, map[string]string{
		"FORMSTATE_ADDR":      ":7070",
		"FORMSTATE_LOG_LEVEL": "warn",
		"UNRELATED":           "ignored",
	})
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Addr != ":7070" {
		t.Fatalf("env should override file addr, got %q", cfg.Addr)
	}
	if cfg.Mode() != theme.Dark {
		t.Fatalf("file theme should survive unset env, got %q", cfg.Theme)
	}
	if cfg.SessionTTL != 5*time.Minute {
		t.Fatalf("unexpected session ttl %v", cfg.SessionTTL)
	}
	if cfg.Logging.Level != "warn" || cfg.Logging.Format != "json" {
		t.Fatalf("unexpected logging %+v", cfg.Logging)
	}
	if cfg.Metrics.Enabled {
		t.Fatalf("file should disable metrics")
	}
	if cfg.Metrics.Namespace != "formstate" {
		t.Fatalf("default namespace should survive, got %q", cfg.Metrics.Namespace)
	}
}

func TestLoadWithoutFile(t *testing.T) {
	cfg, err := LoadWithEnv("", map[string]string{"FORMSTATE_METRICS_ENABLED": "false"})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Metrics.Enabled {
		t.Fatalf("env should disable metrics")
	}
	if cfg.Addr != ":8080" {
		t.Fatalf("expected default addr, got %q", cfg.Addr)
	}
}

func TestLoadErrors(t *testing.T) {
	cases := []struct {
		name    string
		path    func(t *testing.T) string
		environ map[string]string
		want    string
	}{
		{
			name: "missing file",
			path: func(t *testing.T) string { return filepath.Join(t.TempDir(), "missing.yaml") },
			want: "config: read",
		},
		{
			name: "bad yaml",
			path: func(t *testing.T) string { return writeFile(t, "addr: [") },
			want: "config: decode",
		},
		{
			name:    "bad env duration",
			path:    func(*testing.T) string { return "" },
			environ: map[string]string{"FORMSTATE_SESSION_TTL": "soon"},
			want:    "config: parse env",
		},
		{
			name:    "unknown theme",
			path:    func(*testing.T) string { return "" },
			environ: map[string]string{"FORMSTATE_THEME": "sepia"},
			want:    "unknown mode",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			environ := tc.environ
			if environ == nil {
				environ = map[string]string{}
			}
			_, err := LoadWithEnv(tc.path(t), environ)
			if err == nil {
				t.Fatalf("expected error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("expected %q in error, got %v", tc.want, err)
			}
		})
	}
}
