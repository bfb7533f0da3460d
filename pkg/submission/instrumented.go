package submission

import (
	"context"
	"time"

	"github.com/goliatone/go-formstate/pkg/model"
	"github.com/goliatone/go-formstate/pkg/telemetry"
)

// Instrumented wraps a Submitter and reports each hand-off to metrics.
type Instrumented struct {
	next    Submitter
	metrics *telemetry.Metrics
	now     func() time.Time
}

// NewInstrumented decorates next. A nil metrics value disables reporting.
func NewInstrumented(next Submitter, metrics *telemetry.Metrics) *Instrumented {
	return &Instrumented{next: next, metrics: metrics, now: time.Now}
}

// Submit forwards to the wrapped collaborator.
func (i *Instrumented) Submit(ctx context.Context, record model.Record) (Outcome, error) {
	start := i.now()
	outcome, err := i.next.Submit(ctx, record)
	result := telemetry.ResultSubmitted
	if err != nil {
		result = telemetry.ResultFailed
	}
	i.metrics.ObserveSubmission(result, i.now().Sub(start))
	return outcome, err
}
