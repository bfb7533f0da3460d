package validation_test

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formstate/pkg/model"
	"github.com/goliatone/go-formstate/pkg/testsupport"
	"github.com/goliatone/go-formstate/pkg/validation"
)

func TestValidateReportsEveryFailingRule(t *testing.T) {
	v := validation.MustNew()

	got := v.Validate(testsupport.InvalidRecord())
	want := validation.ErrorRecord{
		model.FullName:    "Full name is required",
		model.Email:       "Valid email required",
		model.Password:    "Minimum 8 characters",
		model.Gender:      "Please select a gender",
		model.Country:     "Select a country",
		model.Priority:    "Select priority",
		model.Rating:      "Please rate your experience",
		model.AcceptTerms: "You must accept terms and conditions",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("error record mismatch (-want +got):\n%s", diff)
	}
}

func TestValidateAcceptsValidRecord(t *testing.T) {
	v := validation.MustNew()
	if got := v.Validate(testsupport.ValidRecord()); !got.Valid() {
		t.Fatalf("expected no errors, got %v", got)
	}
}

func TestValidateRuleBoundaries(t *testing.T) {
	v := validation.MustNew()

	cases := []struct {
		name   string
		mutate func(*model.Record)
		field  model.FieldName
		fails  bool
	}{
		{name: "whitespace name", mutate: func(r *model.Record) { r.FullName = "   " }, field: model.FullName, fails: true},
		{name: "padded name", mutate: func(r *model.Record) { r.FullName = "  Ada " }, field: model.FullName},
		{name: "bare at sign", mutate: func(r *model.Record) { r.Email = "@" }, field: model.Email},
		{name: "seven characters", mutate: func(r *model.Record) { r.Password = "1234567" }, field: model.Password, fails: true},
		{name: "eight characters", mutate: func(r *model.Record) { r.Password = "12345678" }, field: model.Password},
		{name: "multibyte password", mutate: func(r *model.Record) { r.Password = "ñññññññ" }, field: model.Password, fails: true},
		{name: "rating one", mutate: func(r *model.Record) { r.Rating = 1 }, field: model.Rating},
		{name: "rating zero", mutate: func(r *model.Record) { r.Rating = 0 }, field: model.Rating, fails: true},
		{name: "terms unchecked", mutate: func(r *model.Record) { r.AcceptTerms = false }, field: model.AcceptTerms, fails: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			record := testsupport.ValidRecord()
			tc.mutate(&record)
			errs := v.Validate(record)
			if errs.Has(tc.field) != tc.fails {
				t.Fatalf("field %q: expected failure=%v, got errors %v", tc.field, tc.fails, errs)
			}
			if len(errs) > 1 {
				t.Fatalf("expected at most one failing field, got %v", errs)
			}
		})
	}
}

func TestValidateIsPure(t *testing.T) {
	v := validation.MustNew()
	record := testsupport.InvalidRecord()
	before := record.Clone()

	first := v.Validate(record)
	second := v.Validate(record)

	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("repeated validation differs (-want +got):\n%s", diff)
	}
	if diff := testsupport.DiffRecords(before, record); diff != "" {
		t.Fatalf("validation mutated the record (-want +got):\n%s", diff)
	}
}

func TestCustomRules(t *testing.T) {
	v, err := validation.New(
		validation.WithCheck("has_music", func(fl validator.FieldLevel) bool {
			items, ok := fl.Field().Interface().([]string)
			if !ok {
				return false
			}
			for _, item := range items {
				if item == "Music" {
					return true
				}
			}
			return false
		}),
		validation.WithRule(validation.Rule{Field: model.Interests, Tag: "has_music", Message: "Pick music"}),
	)
	if err != nil {
		t.Fatalf("new validator: %v", err)
	}
	if !v.Covers(model.Interests) {
		t.Fatalf("expected interests to be covered")
	}

	record := testsupport.ValidRecord()
	if got := v.Validate(record); got[model.Interests] != "Pick music" {
		t.Fatalf("expected interests error, got %v", got)
	}
	record.Interests = model.NewStringSet("Music")
	if got := v.Validate(record); !got.Valid() {
		t.Fatalf("expected valid record, got %v", got)
	}
}

func TestFirstFailingRuleWins(t *testing.T) {
	v := validation.MustNew(validation.WithRules(
		validation.Rule{Field: model.Email, Tag: "required", Message: "Email is required"},
		validation.Rule{Field: model.Email, Tag: "contains=@", Message: "Valid email required"},
	))
	got := v.Validate(model.DefaultRecord())
	if diff := cmp.Diff(validation.ErrorRecord{model.Email: "Email is required"}, got); diff != "" {
		t.Fatalf("error record mismatch (-want +got):\n%s", diff)
	}
	if len(v.Rules()) != 2 {
		t.Fatalf("expected 2 rules, got %d", len(v.Rules()))
	}
}

func TestNewRejectsMalformedRules(t *testing.T) {
	if _, err := validation.New(validation.WithRule(validation.Rule{Field: "volcanoAlert", Tag: "required"})); err == nil {
		t.Fatalf("expected error for unknown field")
	}
	if _, err := validation.New(validation.WithRule(validation.Rule{Field: model.Age, Tag: " "})); err == nil {
		t.Fatalf("expected error for empty tag")
	}
}

func TestErrorRecordHelpers(t *testing.T) {
	errs := validation.ErrorRecord{
		model.AcceptTerms: "terms",
		model.FullName:    "name",
		model.Rating:      "rating",
	}
	if diff := cmp.Diff([]model.FieldName{model.FullName, model.Rating, model.AcceptTerms}, errs.Fields()); diff != "" {
		t.Fatalf("fields order mismatch (-want +got):\n%s", diff)
	}

	clone := errs.Clone()
	delete(clone, model.FullName)
	if !errs.Has(model.FullName) {
		t.Fatalf("clone shares storage with original")
	}

	var empty validation.ErrorRecord
	if !empty.Valid() || empty.Clone() == nil {
		t.Fatalf("nil record should be valid and clone to a non-nil map")
	}
}
