package submission

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/goliatone/go-formstate/pkg/model"
)

// ErrRejected signals that a collaborator declined a payload.
var ErrRejected = errors.New("submission: rejected")

// Outcome describes what a collaborator did with a payload.
type Outcome struct {
	// Reference identifies the stored or forwarded payload when the
	// collaborator assigns one.
	Reference string `json:"reference,omitempty"`
	// Message is a human-readable confirmation.
	Message string `json:"message,omitempty"`
}

// Submitter receives finalized records from the engine.
type Submitter interface {
	Submit(ctx context.Context, record model.Record) (Outcome, error)
}

// Func adapts a function to the Submitter interface.
type Func func(ctx context.Context, record model.Record) (Outcome, error)

// Submit calls f.
func (f Func) Submit(ctx context.Context, record model.Record) (Outcome, error) {
	return f(ctx, record)
}

// Recorder keeps every submitted snapshot in memory. It is safe for
// concurrent use so a single recorder can back several sessions.
type Recorder struct {
	mu      sync.Mutex
	records []model.Record
}

// NewRecorder returns an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Submit stores a deep copy of record.
func (r *Recorder) Submit(ctx context.Context, record model.Record) (Outcome, error) {
	if err := ctx.Err(); err != nil {
		return Outcome{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = append(r.records, record.Clone())
	return Outcome{
		Reference: fmt.Sprintf("submission-%d", len(r.records)),
		Message:   "Form submitted successfully!",
	}, nil
}

// Records returns copies of the stored snapshots in submission order.
func (r *Recorder) Records() []model.Record {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]model.Record, len(r.records))
	for i, record := range r.records {
		out[i] = record.Clone()
	}
	return out
}

// Len reports how many records were submitted.
func (r *Recorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.records)
}

// Last returns the most recent snapshot.
func (r *Recorder) Last() (model.Record, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.records) == 0 {
		return model.Record{}, false
	}
	return r.records[len(r.records)-1].Clone(), true
}

// Chain fans a record out to several submitters in order and stops at the
// first error. The last non-empty outcome wins.
type Chain []Submitter

// Submit forwards record to each submitter.
func (c Chain) Submit(ctx context.Context, record model.Record) (Outcome, error) {
	var outcome Outcome
	for _, s := range c {
		if s == nil {
			continue
		}
		out, err := s.Submit(ctx, record.Clone())
		if err != nil {
			return Outcome{}, err
		}
		if out != (Outcome{}) {
			outcome = out
		}
	}
	return outcome, nil
}
