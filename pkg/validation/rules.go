package validation

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/goliatone/go-formstate/pkg/model"
)

// Rule binds a field to a validator tag and the message reported when the
// tag fails. Normalize, when set, runs on the field value before the check.
type Rule struct {
	Field     model.FieldName
	Tag       string
	Message   string
	Normalize func(any) any
}

// DefaultRules returns the practice form's rule table. Fields without an
// entry are always valid.
func DefaultRules() []Rule {
	return []Rule{
		{Field: model.FullName, Tag: "required", Message: "Full name is required", Normalize: trimText},
		{Field: model.Email, Tag: "contains=@", Message: "Valid email required"},
		{Field: model.Password, Tag: "min=8", Message: "Minimum 8 characters"},
		{Field: model.Gender, Tag: "required", Message: "Please select a gender"},
		{Field: model.Country, Tag: "required", Message: "Select a country"},
		{Field: model.Priority, Tag: "required", Message: "Select priority"},
		{Field: model.Rating, Tag: "ne=0", Message: "Please rate your experience"},
		{Field: model.AcceptTerms, Tag: "eq=true", Message: "You must accept terms and conditions"},
	}
}

// Validator evaluates a rule table against records. It holds no per-record
// state, so one instance can serve many engines.
type Validator struct {
	rules    []Rule
	validate *validator.Validate
	covered  map[model.FieldName]struct{}
}

// Option configures a Validator.
type Option func(*Validator) error

// WithRules replaces the default rule table.
func WithRules(rules ...Rule) Option {
	return func(v *Validator) error {
		v.rules = append([]Rule(nil), rules...)
		return nil
	}
}

// WithRule appends a rule to the table.
func WithRule(rule Rule) Option {
	return func(v *Validator) error {
		v.rules = append(v.rules, rule)
		return nil
	}
}

// WithCheck registers a custom validator tag that rules can reference.
func WithCheck(tag string, fn validator.Func) Option {
	return func(v *Validator) error {
		if err := v.validate.RegisterValidation(tag, fn); err != nil {
			return fmt.Errorf("validation: register %q: %w", tag, err)
		}
		return nil
	}
}

// New builds a Validator seeded with DefaultRules.
func New(options ...Option) (*Validator, error) {
	v := &Validator{
		rules:    DefaultRules(),
		validate: validator.New(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		if err := opt(v); err != nil {
			return nil, err
		}
	}

	v.covered = make(map[model.FieldName]struct{}, len(v.rules))
	for _, rule := range v.rules {
		if !model.Known(rule.Field) {
			return nil, fmt.Errorf("validation: rule references unknown field %q", rule.Field)
		}
		if strings.TrimSpace(rule.Tag) == "" {
			return nil, fmt.Errorf("validation: rule for %q has no tag", rule.Field)
		}
		v.covered[rule.Field] = struct{}{}
	}
	return v, nil
}

// MustNew panics when the rule table is malformed. Useful for init-time wiring.
func MustNew(options ...Option) *Validator {
	v, err := New(options...)
	if err != nil {
		panic(err)
	}
	return v
}

// Validate evaluates every rule against record without short-circuiting.
// When a field carries several rules the first failing rule's message wins.
func (v *Validator) Validate(record model.Record) ErrorRecord {
	errs := make(ErrorRecord)
	for _, rule := range v.rules {
		if errs.Has(rule.Field) {
			continue
		}
		value, _ := record.Get(rule.Field)
		if set, ok := value.(model.StringSet); ok {
			value = set.Items()
		}
		if rule.Normalize != nil {
			value = rule.Normalize(value)
		}
		if err := v.validate.Var(value, rule.Tag); err != nil {
			errs[rule.Field] = rule.Message
		}
	}
	return errs
}

// Covers reports whether at least one rule targets name.
func (v *Validator) Covers(name model.FieldName) bool {
	_, ok := v.covered[name]
	return ok
}

// Rules returns a copy of the active rule table.
func (v *Validator) Rules() []Rule {
	return append([]Rule(nil), v.rules...)
}

func trimText(value any) any {
	if s, ok := value.(string); ok {
		return strings.TrimSpace(s)
	}
	return value
}
