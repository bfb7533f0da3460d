package tui

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/goliatone/go-formstate/pkg/formstate"
	"github.com/goliatone/go-formstate/pkg/model"
	"github.com/goliatone/go-formstate/pkg/render"
)

// skipLabel is the first entry of single-select prompts; picking it leaves the
// field unchanged.
const skipLabel = "(skip)"

// Renderer implements render.Renderer for terminal-driven sessions. Each
// Render call walks the form through a PromptDriver, dispatching every answer
// into a formstate.Engine, and submits. Failing fields are re-prompted until
// the engine accepts the record.
type Renderer struct {
	driver            PromptDriver
	outputFormat      OutputFormat
	newEngine         func() *formstate.Engine
	maxAttempts       int
	submitTransformer SubmitTransformer
	theme             Theme
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs a TUI renderer with defaults (survey driver, JSON output).
func New(options ...Option) (*Renderer, error) {
	r := &Renderer{
		outputFormat: OutputFormatJSON,
		newEngine: func() *formstate.Engine {
			return formstate.New()
		},
	}

	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}

	if r.driver == nil {
		r.driver = NewSurveyDriver(nil)
	}
	if _, ok := ParseOutputFormat(string(r.outputFormat)); !ok {
		return nil, fmt.Errorf("tui: unknown output format %q", r.outputFormat)
	}

	return r, nil
}

// Name reports the renderer identifier.
func (r *Renderer) Name() string {
	return "tui"
}

// ContentType reports the serialization format used by Render.
func (r *Renderer) ContentType() string {
	switch r.outputFormat {
	case OutputFormatFormURLEncoded:
		return "application/x-www-form-urlencoded"
	case OutputFormatPrettyText:
		return "text/plain"
	default:
		return "application/json"
	}
}

// Render fills a fresh engine seeded with opts.Record (when set), submits it
// and returns the serialized record.
func (r *Renderer) Render(ctx context.Context, form model.Form, opts render.RenderOptions) ([]byte, error) {
	engine := r.newEngine()
	if !opts.Record.Equal(model.Record{}) {
		engine.Load(opts.Record)
	}

	if _, err := r.Fill(ctx, engine, form); err != nil {
		return nil, err
	}
	return r.Serialize(engine.Record())
}

// Fill prompts every field of form, then loops: submit, report the failing
// fields and re-prompt only those, until the submission succeeds, the
// collaborator fails, the user aborts or the attempt limit is reached.
func (r *Renderer) Fill(ctx context.Context, engine *formstate.Engine, form model.Form) (formstate.Result, error) {
	if ctx == nil {
		return formstate.Result{}, errors.New("tui: context is required")
	}
	if engine == nil {
		return formstate.Result{}, errors.New("tui: engine is required")
	}
	if r.driver == nil {
		return formstate.Result{}, errors.New("tui: prompt driver is nil")
	}

	pending := promptOrder(form)
	for attempt := 1; ; attempt++ {
		for _, name := range pending {
			field, ok := form.Field(name)
			if !ok {
				continue
			}
			if err := r.promptField(ctx, engine, field); err != nil {
				return formstate.Result{}, err
			}
		}

		result, err := engine.TrySubmit(ctx)
		if err != nil {
			_ = r.driver.Info(ctx, r.theme.ErrorPrefix+err.Error())
			return result, err
		}
		if result.Submitted {
			_ = r.driver.Info(ctx, r.theme.InfoPrefix+result.Notice)
			return result, nil
		}

		_ = r.driver.Info(ctx, r.theme.ErrorPrefix+result.Notice)
		for _, name := range result.Errors.Fields() {
			label := string(name)
			if field, ok := form.Field(name); ok && field.Label != "" {
				label = field.Label
			}
			_ = r.driver.Info(ctx, fmt.Sprintf("%s  %s: %s", r.theme.ErrorPrefix, label, result.Errors[name]))
		}

		if r.maxAttempts > 0 && attempt >= r.maxAttempts {
			return result, ErrTooManyAttempts
		}
		pending = result.Errors.Fields()
	}
}

// promptOrder lists fields in section order, then any field no section
// mentions.
func promptOrder(form model.Form) []model.FieldName {
	seen := make(map[model.FieldName]struct{}, len(form.Fields))
	var out []model.FieldName
	for _, section := range form.Sections {
		for _, name := range section.Fields {
			if _, dup := seen[name]; dup {
				continue
			}
			seen[name] = struct{}{}
			out = append(out, name)
		}
	}
	for _, field := range form.Fields {
		if _, ok := seen[field.Name]; !ok {
			out = append(out, field.Name)
		}
	}
	return out
}

func (r *Renderer) promptField(ctx context.Context, engine *formstate.Engine, field model.Field) error {
	switch field.Kind {
	case model.FieldKindBoolean:
		return r.promptBoolean(ctx, engine, field)
	case model.FieldKindEnum:
		return r.promptEnum(ctx, engine, field)
	case model.FieldKindSet:
		return r.promptSet(ctx, engine, field)
	case model.FieldKindNumber:
		if field.Name == model.Rating {
			return r.promptRating(ctx, engine, field)
		}
		return r.promptNumber(ctx, engine, field)
	default:
		return r.promptText(ctx, engine, field)
	}
}

func (r *Renderer) promptText(ctx context.Context, engine *formstate.Engine, field model.Field) error {
	label := r.displayLabel(field)
	current, _ := engine.Value(field.Name).(string)

	var (
		response string
		err      error
	)
	switch {
	case field.Input == "password" && !engine.Record().ShowPassword:
		response, err = r.driver.Password(ctx, InputConfig{Message: label, Help: field.Help})
		if err == nil && response == "" {
			response = current
		}
	case field.Input == "textarea":
		response, err = r.driver.TextArea(ctx, TextAreaConfig{Message: label, Default: current, Help: field.Help})
	default:
		response, err = r.driver.Input(ctx, InputConfig{
			Message:     label,
			Default:     current,
			Help:        field.Help,
			Placeholder: field.Placeholder,
		})
	}
	if err != nil {
		return err
	}
	engine.SetField(field.Name, response)
	return nil
}

func (r *Renderer) promptBoolean(ctx context.Context, engine *formstate.Engine, field model.Field) error {
	current, _ := engine.Value(field.Name).(bool)
	resp, err := r.driver.Confirm(ctx, ConfirmConfig{
		Message: r.displayLabel(field),
		Default: current,
		Help:    field.Help,
	})
	if err != nil {
		return err
	}
	engine.SetField(field.Name, resp)
	return nil
}

func (r *Renderer) promptEnum(ctx context.Context, engine *formstate.Engine, field model.Field) error {
	current, _ := engine.Value(field.Name).(string)
	options := append([]string{skipLabel}, optionLabels(field)...)
	defaultIdx := 0
	for i, opt := range field.Options {
		if opt.Value == current {
			defaultIdx = i + 1
		}
	}

	for {
		idx, err := r.driver.Select(ctx, SelectConfig{
			Message:      r.displayLabel(field),
			Options:      options,
			DefaultIndex: defaultIdx,
			Help:         field.Help,
		})
		if err != nil {
			return err
		}
		if idx < 0 || idx >= len(options) {
			_ = r.driver.Info(ctx, fmt.Sprintf("%sInvalid %s selection", r.theme.ErrorPrefix, field.Name))
			continue
		}
		if idx == 0 {
			return nil
		}
		engine.SetField(field.Name, field.Options[idx-1].Value)
		return nil
	}
}

// promptSet turns the multi-select answer into toggles so the engine applies
// its set semantics to each changed member.
func (r *Renderer) promptSet(ctx context.Context, engine *formstate.Engine, field model.Field) error {
	current, _ := engine.Value(field.Name).(model.StringSet)
	var defaults []int
	for i, opt := range field.Options {
		if current.Has(opt.Value) {
			defaults = append(defaults, i)
		}
	}

	indices, err := r.driver.MultiSelect(ctx, SelectConfig{
		Message:  r.displayLabel(field),
		Options:  optionLabels(field),
		Defaults: defaults,
		Help:     field.Help,
	})
	if err != nil {
		return err
	}

	want := make(map[string]struct{}, len(indices))
	for _, idx := range indices {
		if idx >= 0 && idx < len(field.Options) {
			want[field.Options[idx].Value] = struct{}{}
		}
	}
	for _, opt := range field.Options {
		_, selected := want[opt.Value]
		if selected != current.Has(opt.Value) {
			engine.ToggleSetMembership(field.Name, opt.Value)
		}
	}
	return nil
}

func (r *Renderer) promptRating(ctx context.Context, engine *formstate.Engine, field model.Field) error {
	current, _ := engine.Value(field.Name).(int)
	options := []string{skipLabel}
	for star := 1; star <= model.RatingMax; star++ {
		options = append(options, strings.Repeat("★", star)+strings.Repeat("☆", model.RatingMax-star))
	}

	for {
		idx, err := r.driver.Select(ctx, SelectConfig{
			Message:      r.displayLabel(field),
			Options:      options,
			DefaultIndex: current,
			Help:         field.Help,
		})
		if err != nil {
			return err
		}
		if idx < 0 || idx >= len(options) {
			_ = r.driver.Info(ctx, r.theme.ErrorPrefix+"Invalid rating selection")
			continue
		}
		if idx == 0 {
			return nil
		}
		engine.SetRating(idx)
		return nil
	}
}

func (r *Renderer) promptNumber(ctx context.Context, engine *formstate.Engine, field model.Field) error {
	current, _ := engine.Value(field.Name).(int)
	validate := func(raw string) error {
		_, err := model.Coerce(field.Name, raw)
		return err
	}

	for {
		input, err := r.driver.Input(ctx, InputConfig{
			Message:   r.displayLabel(field),
			Default:   fmt.Sprint(current),
			Help:      field.Help,
			Validator: validate,
		})
		if err != nil {
			return err
		}
		if strings.TrimSpace(input) == "" {
			return nil
		}
		if err := validate(input); err != nil {
			_ = r.driver.Info(ctx, fmt.Sprintf("%sInvalid %s: %s", r.theme.ErrorPrefix, field.Name, coercionReason(err)))
			continue
		}
		engine.SetField(field.Name, input)
		return nil
	}
}

// Serialize encodes record in the configured output format after the
// optional submit transformer.
func (r *Renderer) Serialize(record model.Record) ([]byte, error) {
	values := record.Map()
	if r.submitTransformer != nil {
		var err error
		values, err = r.submitTransformer(values)
		if err != nil {
			return nil, fmt.Errorf("tui: submit transformer: %w", err)
		}
	}

	switch r.outputFormat {
	case OutputFormatFormURLEncoded:
		return []byte(flattenForm(values)), nil
	case OutputFormatPrettyText:
		return []byte(prettyPrint(values)), nil
	default:
		return json.Marshal(values)
	}
}

func (r *Renderer) displayLabel(field model.Field) string {
	label := field.Label
	if label == "" {
		label = string(field.Name)
	}
	return r.theme.PromptPrefix + label
}

func optionLabels(field model.Field) []string {
	out := make([]string, 0, len(field.Options))
	for _, opt := range field.Options {
		out = append(out, opt.Label)
	}
	return out
}

func coercionReason(err error) string {
	var coercionErr *model.CoercionError
	if errors.As(err, &coercionErr) {
		return coercionErr.Reason
	}
	return err.Error()
}

func flattenForm(values map[string]any) string {
	flattened := url.Values{}
	for key, value := range values {
		switch v := value.(type) {
		case []string:
			for _, item := range v {
				flattened.Add(key+"[]", item)
			}
		case []any:
			for _, item := range v {
				flattened.Add(key+"[]", fmt.Sprint(item))
			}
		default:
			flattened.Set(key, fmt.Sprint(v))
		}
	}
	return flattened.Encode()
}

// prettyPrint writes one key=value line per field, record keys first in form
// order and any transformer-added keys after them sorted.
func prettyPrint(values map[string]any) string {
	var b strings.Builder
	written := make(map[string]struct{}, len(values))
	for _, name := range model.FieldNames() {
		key := string(name)
		if value, ok := values[key]; ok {
			writePretty(&b, key, value)
			written[key] = struct{}{}
		}
	}

	var extra []string
	for key := range values {
		if _, ok := written[key]; !ok {
			extra = append(extra, key)
		}
	}
	sort.Strings(extra)
	for _, key := range extra {
		writePretty(&b, key, values[key])
	}
	return b.String()
}

func writePretty(b *strings.Builder, key string, value any) {
	switch v := value.(type) {
	case []string:
		fmt.Fprintf(b, "%s=%s\n", key, strings.Join(v, ", "))
	default:
		fmt.Fprintf(b, "%s=%v\n", key, v)
	}
}
