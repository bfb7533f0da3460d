package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formstate/pkg/renderers/tui"
)

// labelDriver answers prompts by message. Unlisted prompts take the empty
// answer: blank text, "no", or the first option.
type labelDriver struct {
	answers map[string]string
	info    []string
}

func (d *labelDriver) Input(_ context.Context, cfg tui.InputConfig) (string, error) {
	return d.answers[cfg.Message], nil
}

func (d *labelDriver) Password(_ context.Context, cfg tui.InputConfig) (string, error) {
	return d.answers[cfg.Message], nil
}

func (d *labelDriver) Confirm(_ context.Context, cfg tui.ConfirmConfig) (bool, error) {
	return d.answers[cfg.Message] == "yes", nil
}

func (d *labelDriver) Select(_ context.Context, cfg tui.SelectConfig) (int, error) {
	for i, option := range cfg.Options {
		if option == d.answers[cfg.Message] {
			return i, nil
		}
	}
	return 0, nil
}

func (d *labelDriver) MultiSelect(context.Context, tui.SelectConfig) ([]int, error) {
	return nil, nil
}

func (d *labelDriver) TextArea(_ context.Context, cfg tui.TextAreaConfig) (string, error) {
	return d.answers[cfg.Message], nil
}

func (d *labelDriver) Info(_ context.Context, msg string) error {
	d.info = append(d.info, msg)
	return nil
}

func run(t *testing.T, a *app, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCommand("test", a)
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(append([]string{"--log-level", "off"}, args...))
	defer a.close()
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func writeRecord(t *testing.T, name, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(contents), 0o600); err != nil {
		t.Fatalf("write record: %v", err)
	}
	return path
}

func TestSchemaCommand(t *testing.T) {
	out, err := run(t, &app{}, "schema")
	if err != nil {
		t.Fatalf("schema: %v", err)
	}
	var doc map[string]any
	if err := json.Unmarshal([]byte(out), &doc); err != nil {
		t.Fatalf("decode schema: %v", err)
	}
	if doc["title"] != "FormRecord" {
		t.Fatalf("unexpected schema title %v", doc["title"])
	}
}

func TestValidateCommand(t *testing.T) {
	valid := writeRecord(t, "valid.yaml", `
fullName: Ada Lovelace
email: ada@x.io
password: longenough1
gender: Female
country: usa
priority: low
rating: 4
acceptTerms: true
`)
	out, err := run(t, &app{}, "validate", valid)
	if err != nil {
		t.Fatalf("valid record: %v", err)
	}
	if strings.TrimSpace(out) != "{}" {
		t.Fatalf("expected empty error record, got %s", out)
	}

	invalid := writeRecord(t, "invalid.json", `{"email":"x","password":"short"}`)
	out, err = run(t, &app{}, "validate", invalid)
	if !errors.Is(err, ErrInvalidRecord) {
		t.Fatalf("expected ErrInvalidRecord, got %v", err)
	}
	var errs map[string]string
	if err := json.Unmarshal([]byte(out), &errs); err != nil {
		t.Fatalf("decode errors: %v", err)
	}
	if len(errs) != 8 || errs["email"] != "Valid email required" {
		t.Fatalf("unexpected error record %v", errs)
	}

	malformed := writeRecord(t, "bad.json", `{"rating":"lots"}`)
	if _, err := run(t, &app{}, "validate", malformed); err == nil || errors.Is(err, ErrInvalidRecord) {
		t.Fatalf("expected a decode error, got %v", err)
	}
}

func TestValidateCommandURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/record.yaml" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte("fullName: Ada\nrating: 2\n"))
	}))
	defer srv.Close()

	out, err := run(t, &app{}, "validate", srv.URL+"/record.yaml")
	if !errors.Is(err, ErrInvalidRecord) {
		t.Fatalf("expected ErrInvalidRecord, got %v", err)
	}
	var errs map[string]string
	if err := json.Unmarshal([]byte(out), &errs); err != nil {
		t.Fatalf("decode errors: %v", err)
	}
	if _, ok := errs["fullName"]; ok {
		t.Fatalf("fullName should pass, got %v", errs)
	}
	if len(errs) != 6 {
		t.Fatalf("expected 6 failing fields, got %v", errs)
	}

	if _, err := run(t, &app{}, "validate", srv.URL+"/missing.json"); err == nil || !strings.Contains(err.Error(), "404") {
		t.Fatalf("expected status error, got %v", err)
	}
}

func TestLogFileOutputIsReleased(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "formstate.log")
	cfgPath := writeRecord(t, "formstate.yaml", "logging:\n  output: "+logPath+"\n")
	record := writeRecord(t, "record.json", `{"fullName":"Ada"}`)

	a := &app{}
	if _, err := run(t, a, "--config", cfgPath, "--log-level", "debug", "validate", record); !errors.Is(err, ErrInvalidRecord) {
		t.Fatalf("expected ErrInvalidRecord, got %v", err)
	}
	if a.logCloser != nil {
		t.Fatalf("log output should be closed after the command")
	}
	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), "record validated") {
		t.Fatalf("expected debug line in log file, got %q", data)
	}
}

func TestFillCommand(t *testing.T) {
	driver := &labelDriver{answers: map[string]string{
		"Full Name":                           "Ada Lovelace",
		"Email Address":                       "ada@x.io",
		"Password":                            "longenough1",
		"Country":                             "United States",
		"Priority (Set Dynamically)":          "Low",
		"Gender":                              "Female",
		"How would you rate your experience?": "★★★★☆",
		"I accept the terms and conditions":   "yes",
	}}

	out, err := run(t, &app{driver: driver}, "fill", "--output", "pretty", "--theme", "dark", "--max-attempts", "1")
	if err != nil {
		t.Fatalf("fill: %v (info %v)", err, driver.info)
	}
	if !strings.HasPrefix(out, "fullName=Ada Lovelace\n") || !strings.Contains(out, "rating=4\n") {
		t.Fatalf("unexpected output:\n%s", out)
	}
	if diff := cmp.Diff([]string{"» Form submitted successfully! Check console for data."}, driver.info); diff != "" {
		t.Fatalf("info mismatch (-want +got):\n%s", diff)
	}
}

func TestFillRejectsUnknownOutput(t *testing.T) {
	if _, err := run(t, &app{driver: &labelDriver{}}, "fill", "--output", "xml"); err == nil {
		t.Fatalf("expected error for unknown output format")
	}
}
