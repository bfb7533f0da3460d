// Package formstate is the quick-start entry point: it re-exports the engine
// and the record types so simple callers need a single import.
package formstate

import (
	"context"

	"github.com/goliatone/go-formstate/internal/loader"
	"github.com/goliatone/go-formstate/pkg/formstate"
	"github.com/goliatone/go-formstate/pkg/model"
	"github.com/goliatone/go-formstate/pkg/render"
	"github.com/goliatone/go-formstate/pkg/renderers/vanilla"
	"github.com/goliatone/go-formstate/pkg/schema"
	"github.com/goliatone/go-formstate/pkg/submission"
	"github.com/goliatone/go-formstate/pkg/validation"
)

// Engine owns one form session.
type Engine = formstate.Engine

// Result reports a submit attempt.
type Result = formstate.Result

// Record holds every field value of a session.
type Record = model.Record

// ErrorRecord maps failing fields to their message.
type ErrorRecord = validation.ErrorRecord

// Submitter receives valid records.
type Submitter = submission.Submitter

// RenderOptions carry the session state a renderer displays.
type RenderOptions = render.RenderOptions

// NewEngine exposes the engine constructor from the top-level module.
func NewEngine(options ...formstate.Option) *Engine {
	return formstate.New(options...)
}

// Validate runs the default rule table against record without touching any
// session.
func Validate(record Record) ErrorRecord {
	return validation.MustNew().Validate(record)
}

// RenderHTML draws the practice form for the engine's current state using
// the built-in HTML renderer.
func RenderHTML(ctx context.Context, engine *Engine, options ...vanilla.Option) ([]byte, error) {
	renderer, err := vanilla.New(options...)
	if err != nil {
		return nil, err
	}
	return renderer.Render(ctx, model.PracticeForm(), render.RenderOptions{
		Record:    engine.Record(),
		Errors:    engine.Errors(),
		CanSubmit: engine.CanSubmit(),
	})
}

// NewLoader returns a record document loader configured with the supplied
// options.
func NewLoader(options ...schema.LoaderOption) schema.Loader {
	return loader.New(schema.NewLoaderOptions(options...))
}

// LoadRecord reads a record from a file path or http(s) URL and decodes it
// over the default record.
func LoadRecord(ctx context.Context, location string, options ...schema.LoaderOption) (Record, error) {
	src, err := schema.ParseSource(location)
	if err != nil {
		return Record{}, err
	}
	doc, err := NewLoader(options...).Load(ctx, src)
	if err != nil {
		return Record{}, err
	}
	return doc.Record()
}
