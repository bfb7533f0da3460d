package submission_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/rs/zerolog"

	"github.com/goliatone/go-formstate/pkg/model"
	"github.com/goliatone/go-formstate/pkg/submission"
	"github.com/goliatone/go-formstate/pkg/telemetry"
	"github.com/goliatone/go-formstate/pkg/testsupport"
)

func TestRecorderStoresCopies(t *testing.T) {
	recorder := submission.NewRecorder()
	record := testsupport.ValidRecord()

	outcome, err := recorder.Submit(testsupport.Context(t), record)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if diff := cmp.Diff(submission.Outcome{Reference: "submission-1", Message: "Form submitted successfully!"}, outcome); diff != "" {
		t.Fatalf("outcome mismatch (-want +got):\n%s", diff)
	}

	record.Interests.Add("Music")
	last, ok := recorder.Last()
	if !ok {
		t.Fatalf("expected a stored record")
	}
	if last.Interests.Has("Music") {
		t.Fatalf("recorder shares storage with caller")
	}
	if recorder.Len() != 1 || len(recorder.Records()) != 1 {
		t.Fatalf("expected one record")
	}
}

func TestRecorderHonoursContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := submission.NewRecorder().Submit(ctx, model.DefaultRecord()); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestLoggerWritesPayload(t *testing.T) {
	var buf bytes.Buffer
	logger := submission.NewLogger(zerolog.New(&buf))

	record := testsupport.ValidRecord()
	record.Interests = model.NewStringSet("Music", "Travel")
	outcome, err := logger.Submit(testsupport.Context(t), record)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if outcome.Message != "Form submitted successfully! Check console for data." {
		t.Fatalf("unexpected message %q", outcome.Message)
	}

	var entry struct {
		Component string         `json:"component"`
		Rating    int            `json:"rating"`
		Interests int            `json:"interests"`
		Payload   map[string]any `json:"payload"`
		Message   string         `json:"message"`
	}
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry); err != nil {
		t.Fatalf("decode log line: %v\n%s", err, buf.String())
	}
	if entry.Component != "submission" || entry.Rating != 4 || entry.Interests != 2 {
		t.Fatalf("unexpected entry %+v", entry)
	}
	if entry.Payload["fullName"] != "Ada Lovelace" {
		t.Fatalf("payload missing fullName: %v", entry.Payload)
	}
}

func TestChainStopsAtFirstError(t *testing.T) {
	first := submission.NewRecorder()
	third := submission.NewRecorder()
	chain := submission.Chain{
		first,
		nil,
		submission.Func(func(context.Context, model.Record) (submission.Outcome, error) {
			return submission.Outcome{}, submission.ErrRejected
		}),
		third,
	}

	if _, err := chain.Submit(testsupport.Context(t), testsupport.ValidRecord()); !errors.Is(err, submission.ErrRejected) {
		t.Fatalf("expected ErrRejected, got %v", err)
	}
	if first.Len() != 1 || third.Len() != 0 {
		t.Fatalf("unexpected fan-out: first=%d third=%d", first.Len(), third.Len())
	}
}

func TestChainKeepsLastOutcome(t *testing.T) {
	chain := submission.Chain{
		submission.NewRecorder(),
		submission.Func(func(context.Context, model.Record) (submission.Outcome, error) {
			return submission.Outcome{}, nil
		}),
	}
	outcome, err := chain.Submit(testsupport.Context(t), testsupport.ValidRecord())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if outcome.Reference != "submission-1" {
		t.Fatalf("expected recorder outcome to survive empty outcome, got %+v", outcome)
	}
}

func TestInstrumentedReportsResult(t *testing.T) {
	metrics, err := telemetry.NewMetrics(telemetry.MetricsConfig{Enabled: true, Namespace: "sub"})
	if err != nil {
		t.Fatalf("new metrics: %v", err)
	}

	failing := submission.NewInstrumented(submission.Func(func(context.Context, model.Record) (submission.Outcome, error) {
		time.Sleep(time.Millisecond)
		return submission.Outcome{}, submission.ErrRejected
	}), metrics)
	if _, err := failing.Submit(testsupport.Context(t), model.DefaultRecord()); !errors.Is(err, submission.ErrRejected) {
		t.Fatalf("expected ErrRejected, got %v", err)
	}

	ok := submission.NewInstrumented(submission.NewRecorder(), metrics)
	if _, err := ok.Submit(testsupport.Context(t), model.DefaultRecord()); err != nil {
		t.Fatalf("submit: %v", err)
	}

	families, err := metrics.Gatherer().Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	results := make(map[string]float64)
	for _, family := range families {
		if family.GetName() != "sub_submissions_total" {
			continue
		}
		for _, metric := range family.GetMetric() {
			results[metric.GetLabel()[0].GetValue()] = metric.GetCounter().GetValue()
		}
	}
	if diff := cmp.Diff(map[string]float64{"failed": 1, "submitted": 1}, results); diff != "" {
		t.Fatalf("submission counters mismatch (-want +got):\n%s", diff)
	}
}
