package formstate

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/goliatone/go-formstate/pkg/model"
	"github.com/goliatone/go-formstate/pkg/submission"
	"github.com/goliatone/go-formstate/pkg/telemetry"
	"github.com/goliatone/go-formstate/pkg/validation"
)

// Notices surfaced to renderers after submit and cancel.
const (
	NoticeFixErrors = "Please fix the errors before submitting"
	NoticeSubmitted = "Form submitted successfully!"
	NoticeCancelled = "Form cancelled"
)

// Option customises an Engine.
type Option func(*Engine)

// WithValidator replaces the default rule table.
func WithValidator(v *validation.Validator) Option {
	return func(e *Engine) {
		if v != nil {
			e.validator = v
		}
	}
}

// WithSubmitter sets the collaborator that receives valid records.
func WithSubmitter(s submission.Submitter) Option {
	return func(e *Engine) {
		if s != nil {
			e.submitter = s
		}
	}
}

// WithLogger attaches a logger; the engine logs at debug level.
func WithLogger(log zerolog.Logger) Option {
	return func(e *Engine) {
		e.log = telemetry.Component(log, "formstate")
	}
}

// WithInitial starts the engine from a copy of record instead of the
// defaults. Reset still returns to the defaults.
func WithInitial(record model.Record) Option {
	return func(e *Engine) {
		e.record = record.Clone()
	}
}

// WithMetrics reports edits, failed rules and resets.
func WithMetrics(m *telemetry.Metrics) Option {
	return func(e *Engine) {
		e.metrics = m
	}
}

// Engine owns one form session: the current record and the errors of the
// latest validation pass. It is not safe for concurrent use; the session that
// creates it serialises every call.
type Engine struct {
	record    model.Record
	errors    validation.ErrorRecord
	validator *validation.Validator
	submitter submission.Submitter
	log       zerolog.Logger
	metrics   *telemetry.Metrics
}

// New returns an engine holding the default record and no errors. Without
// WithSubmitter the engine records submissions in memory.
func New(options ...Option) *Engine {
	e := &Engine{
		record: model.DefaultRecord(),
		errors: make(validation.ErrorRecord),
		log:    zerolog.Nop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(e)
	}
	if e.validator == nil {
		e.validator = validation.MustNew()
	}
	if e.submitter == nil {
		e.submitter = submission.NewRecorder()
	}
	return e
}

// Record returns a snapshot of the current values.
func (e *Engine) Record() model.Record {
	return e.record.Clone()
}

// Errors returns a copy of the current error record.
func (e *Engine) Errors() validation.ErrorRecord {
	return e.errors.Clone()
}

// Value returns the current value of name.
func (e *Engine) Value(name model.FieldName) any {
	value, ok := e.record.Get(name)
	if !ok {
		violate("Value", name, "unknown field", nil)
	}
	return value
}

// Error returns the current message for name, if any.
func (e *Engine) Error(name model.FieldName) (string, bool) {
	msg, ok := e.errors[name]
	return msg, ok
}

// Valid reports whether the latest pass left no errors. A fresh engine is
// valid until the first Validate call.
func (e *Engine) Valid() bool {
	return e.errors.Valid()
}

// CanSubmit reports whether the terms gate is open. Renderers use it to
// enable the submit control.
func (e *Engine) CanSubmit() bool {
	return e.record.AcceptTerms
}

// SetField overwrites name with value after coercion (checkbox strings become
// booleans) and clears any error currently shown for name. Unknown keys and
// values the field cannot hold panic with a *ContractError.
func (e *Engine) SetField(name model.FieldName, value any) {
	if !model.Known(name) {
		violate("SetField", name, "unknown field", nil)
	}
	coerced, err := model.Coerce(name, value)
	if err != nil {
		violate("SetField", name, "invalid value", err)
	}
	if !e.record.Set(name, coerced) {
		violate("SetField", name, fmt.Sprintf("cannot store %T", coerced), nil)
	}
	e.clearError(name)
	e.metrics.ObserveEdit("set_field")
	e.log.Debug().Str("field", string(name)).Msg("field set")
}

// ToggleSetMembership adds item to the set held by group, or removes it when
// already present. The group's error is cleared only when a rule covers the
// group. Non-set fields panic with a *ContractError.
func (e *Engine) ToggleSetMembership(group model.FieldName, item string) {
	field, ok := model.Lookup(group)
	if !ok {
		violate("ToggleSetMembership", group, "unknown field", nil)
	}
	if field.Kind != model.FieldKindSet {
		violate("ToggleSetMembership", group, fmt.Sprintf("%s field is not a set", field.Kind), nil)
	}

	current, _ := e.record.Get(group)
	set := current.(model.StringSet)
	member := set.Toggle(item)
	e.record.Set(group, set)

	if e.validator.Covers(group) {
		e.clearError(group)
	}
	e.metrics.ObserveEdit("toggle")
	e.log.Debug().Str("field", string(group)).Str("item", item).Bool("member", member).Msg("set membership toggled")
}

// SetRating stores a star rating in [1,RatingMax] and clears the rating
// error. Zero is only reachable through Reset.
func (e *Engine) SetRating(value int) {
	if value < 1 || value > model.RatingMax {
		violate("SetRating", model.Rating, fmt.Sprintf("rating %d outside [1,%d]", value, model.RatingMax), nil)
	}
	e.record.Rating = value
	e.clearError(model.Rating)
	e.metrics.ObserveEdit("rating")
	e.log.Debug().Int("rating", value).Msg("rating set")
}

// Validate runs every rule against the current record and replaces the
// error record wholesale with the result.
func (e *Engine) Validate() validation.ErrorRecord {
	errs := e.validator.Validate(e.record)
	e.errors = errs
	e.log.Debug().Int("errors", len(errs)).Msg("form validated")
	return errs.Clone()
}

// Result reports a submit attempt.
type Result struct {
	Submitted bool
	Errors    validation.ErrorRecord
	Outcome   submission.Outcome
	Notice    string
}

// TrySubmit validates and, when the record is valid, hands a snapshot to the
// submitter. Validation failures are reported in the result and trigger no
// submission. The returned error is reserved for collaborator failures. State
// is kept after a successful submission; only Reset clears it.
func (e *Engine) TrySubmit(ctx context.Context) (Result, error) {
	errs := e.Validate()
	if !errs.Valid() {
		for _, name := range errs.Fields() {
			e.metrics.ObserveValidationError(string(name))
		}
		e.metrics.ObserveSubmission(telemetry.ResultInvalid, 0)
		return Result{Errors: errs, Notice: NoticeFixErrors}, nil
	}

	outcome, err := e.submitter.Submit(ctx, e.record.Clone())
	if err != nil {
		e.log.Debug().Err(err).Msg("submission failed")
		return Result{Errors: errs}, fmt.Errorf("formstate: submit: %w", err)
	}

	notice := outcome.Message
	if notice == "" {
		notice = NoticeSubmitted
	}
	return Result{Submitted: true, Errors: errs, Outcome: outcome, Notice: notice}, nil
}

// Reset restores the default record and clears every error.
func (e *Engine) Reset() {
	e.record = model.DefaultRecord()
	e.errors = make(validation.ErrorRecord)
	e.metrics.ObserveReset()
	e.log.Debug().Msg("form reset")
}

// Cancel resets the form and returns the notice renderers show.
func (e *Engine) Cancel() string {
	e.Reset()
	return NoticeCancelled
}

// Load replaces the record with a copy of record, clearing errors. Used by
// transports that receive a whole payload at once.
func (e *Engine) Load(record model.Record) {
	e.record = record.Clone()
	e.errors = make(validation.ErrorRecord)
}

func (e *Engine) clearError(name model.FieldName) {
	delete(e.errors, name)
}
