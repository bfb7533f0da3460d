package formstate_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formstate/pkg/formstate"
	"github.com/goliatone/go-formstate/pkg/model"
	"github.com/goliatone/go-formstate/pkg/submission"
	"github.com/goliatone/go-formstate/pkg/testsupport"
	"github.com/goliatone/go-formstate/pkg/validation"
)

func applyEdits(e *formstate.Engine, edits []testsupport.Edit) {
	for _, edit := range edits {
		e.SetField(edit.Field, edit.Value)
	}
}

func expectContractPanic(t *testing.T, op string, fn func()) {
	t.Helper()
	defer func() {
		t.Helper()
		recovered := recover()
		if recovered == nil {
			t.Fatalf("expected %s to panic", op)
		}
		contractErr, ok := recovered.(*formstate.ContractError)
		if !ok {
			t.Fatalf("expected *ContractError, got %T (%v)", recovered, recovered)
		}
		if contractErr.Op != op {
			t.Fatalf("expected op %q, got %q", op, contractErr.Op)
		}
	}()
	fn()
}

func TestNewEngineHoldsDefaults(t *testing.T) {
	engine := formstate.New()

	if diff := testsupport.DiffRecords(model.DefaultRecord(), engine.Record()); diff != "" {
		t.Fatalf("initial record mismatch (-want +got):\n%s", diff)
	}
	if !engine.Valid() || len(engine.Errors()) != 0 {
		t.Fatalf("fresh engine should carry no errors")
	}
	if engine.CanSubmit() {
		t.Fatalf("submit should be disabled until terms are accepted")
	}
	for _, name := range model.FieldNames() {
		_ = engine.Value(name)
	}
}

func TestScenarioAInvalidSubmission(t *testing.T) {
	recorder := submission.NewRecorder()
	engine := formstate.New(formstate.WithSubmitter(recorder))
	engine.SetField(model.Email, "x")
	engine.SetField(model.Password, "short")

	errs := engine.Validate()
	if len(errs) != 8 {
		t.Fatalf("expected eight errors, got %d: %v", len(errs), errs)
	}

	result, err := engine.TrySubmit(testsupport.Context(t))
	if err != nil {
		t.Fatalf("try submit: %v", err)
	}
	if result.Submitted {
		t.Fatalf("expected submission to be refused")
	}
	if result.Notice != formstate.NoticeFixErrors {
		t.Fatalf("unexpected notice %q", result.Notice)
	}
	if diff := cmp.Diff(errs, result.Errors); diff != "" {
		t.Fatalf("result errors mismatch (-want +got):\n%s", diff)
	}
	if recorder.Len() != 0 {
		t.Fatalf("collaborator should not be called on invalid submit")
	}
}

func TestScenarioBValidSubmission(t *testing.T) {
	recorder := submission.NewRecorder()
	engine := formstate.New(formstate.WithSubmitter(recorder))
	applyEdits(engine, testsupport.ValidEdits())

	if errs := engine.Validate(); !errs.Valid() {
		t.Fatalf("expected no errors, got %v", errs)
	}
	if !engine.CanSubmit() {
		t.Fatalf("expected submit to be enabled")
	}

	result, err := engine.TrySubmit(testsupport.Context(t))
	if err != nil {
		t.Fatalf("try submit: %v", err)
	}
	if !result.Submitted || result.Notice != formstate.NoticeSubmitted {
		t.Fatalf("unexpected result %+v", result)
	}

	records := recorder.Records()
	if len(records) != 1 {
		t.Fatalf("expected one submission, got %d", len(records))
	}
	if records[0].Rating != 4 || !records[0].AcceptTerms {
		t.Fatalf("unexpected submitted record %+v", records[0])
	}
	if diff := testsupport.DiffRecords(testsupport.ValidRecord(), records[0]); diff != "" {
		t.Fatalf("submitted record mismatch (-want +got):\n%s", diff)
	}

	// State is kept after a successful submission.
	if diff := testsupport.DiffRecords(testsupport.ValidRecord(), engine.Record()); diff != "" {
		t.Fatalf("record changed after submit (-want +got):\n%s", diff)
	}
}

func TestScenarioCResetRestoresDefaults(t *testing.T) {
	engine := formstate.New()
	applyEdits(engine, testsupport.ValidEdits())
	engine.ToggleSetMembership(model.Interests, "Music")
	engine.SetField(model.FullName, "")
	engine.Validate()

	engine.Reset()

	if diff := testsupport.DiffRecords(model.DefaultRecord(), engine.Record()); diff != "" {
		t.Fatalf("record after reset mismatch (-want +got):\n%s", diff)
	}
	if !engine.Valid() {
		t.Fatalf("expected errors to be cleared, got %v", engine.Errors())
	}
}

func TestScenarioDRatingLastWriteWins(t *testing.T) {
	engine := formstate.New()
	engine.Validate()
	if _, ok := engine.Error(model.Rating); !ok {
		t.Fatalf("expected rating error before rating")
	}

	engine.SetRating(3)
	if _, ok := engine.Error(model.Rating); ok {
		t.Fatalf("rating error should clear after first rating")
	}
	engine.SetRating(5)

	if got := engine.Value(model.Rating); got != 5 {
		t.Fatalf("expected rating 5, got %v", got)
	}
}

func TestEditClearsExactlyOneError(t *testing.T) {
	cases := []struct {
		name  string
		field model.FieldName
		edit  func(*formstate.Engine)
	}{
		{name: "set field", field: model.Email, edit: func(e *formstate.Engine) { e.SetField(model.Email, "still-invalid") }},
		{name: "set checkbox", field: model.AcceptTerms, edit: func(e *formstate.Engine) { e.SetField(model.AcceptTerms, "on") }},
		{name: "set rating", field: model.Rating, edit: func(e *formstate.Engine) { e.SetRating(2) }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			engine := formstate.New()
			before := engine.Validate()
			tc.edit(engine)

			want := before.Clone()
			delete(want, tc.field)
			if diff := cmp.Diff(want, engine.Errors()); diff != "" {
				t.Fatalf("errors after edit mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestEditDoesNotRevalidate(t *testing.T) {
	engine := formstate.New()
	engine.SetField(model.Email, "x")
	if !engine.Valid() {
		t.Fatalf("edits should not produce errors before Validate")
	}
}

func TestSetFieldCoercesCheckboxStrings(t *testing.T) {
	engine := formstate.New()
	engine.SetField(model.AcceptTerms, "on")
	if got := engine.Value(model.AcceptTerms); got != true {
		t.Fatalf("expected true, got %v", got)
	}
	engine.SetField(model.AcceptTerms, "")
	if got := engine.Value(model.AcceptTerms); got != false {
		t.Fatalf("expected false, got %v", got)
	}
	engine.SetField(model.Volume, "80")
	if got := engine.Value(model.Volume); got != 80 {
		t.Fatalf("expected volume 80, got %v", got)
	}
}

func TestToggleSetMembership(t *testing.T) {
	engine := formstate.New()
	engine.ToggleSetMembership(model.Interests, "Music")
	engine.ToggleSetMembership(model.Interests, "Travel")

	record := engine.Record()
	if !record.Interests.Has("Music") || !record.Interests.Has("Travel") {
		t.Fatalf("expected both interests, got %v", record.Interests.Items())
	}

	engine.ToggleSetMembership(model.Interests, "Music")
	engine.ToggleSetMembership(model.Interests, "Music")
	after := engine.Record()
	if !after.Interests.Equal(record.Interests) {
		t.Fatalf("double toggle changed membership: %v", after.Interests.Items())
	}

	// The snapshot returned earlier is independent of engine state.
	engine.ToggleSetMembership(model.Interests, "Gaming")
	if record.Interests.Has("Gaming") {
		t.Fatalf("record snapshot shares storage with engine")
	}
}

func TestToggleAddsBlankItems(t *testing.T) {
	engine := formstate.New()
	engine.ToggleSetMembership(model.Interests, "")
	engine.ToggleSetMembership(model.Interests, " ")

	if diff := cmp.Diff([]string{"", " "}, engine.Record().Interests.Items()); diff != "" {
		t.Fatalf("interests mismatch (-want +got):\n%s", diff)
	}
}

func TestToggleClearsErrorOnlyForCoveredGroups(t *testing.T) {
	v := validation.MustNew(validation.WithRule(validation.Rule{
		Field:   model.Interests,
		Tag:     "min=1",
		Message: "Pick at least one interest",
	}))
	engine := formstate.New(formstate.WithValidator(v))
	engine.Validate()
	if _, ok := engine.Error(model.Interests); !ok {
		t.Fatalf("expected interests error")
	}

	before := engine.Errors()
	engine.ToggleSetMembership(model.Interests, "Music")

	want := before.Clone()
	delete(want, model.Interests)
	if diff := cmp.Diff(want, engine.Errors()); diff != "" {
		t.Fatalf("errors after toggle mismatch (-want +got):\n%s", diff)
	}

	plain := formstate.New()
	errs := plain.Validate()
	plain.ToggleSetMembership(model.Interests, "Music")
	if diff := cmp.Diff(errs, plain.Errors()); diff != "" {
		t.Fatalf("toggle without rule changed errors (-want +got):\n%s", diff)
	}
}

func TestContractViolationsPanic(t *testing.T) {
	engine := formstate.New()

	expectContractPanic(t, "SetField", func() { engine.SetField("volcanoAlert", "x") })
	expectContractPanic(t, "SetField", func() { engine.SetField(model.FullName, 42) })
	expectContractPanic(t, "SetField", func() { engine.SetField(model.Rating, 9) })
	expectContractPanic(t, "ToggleSetMembership", func() { engine.ToggleSetMembership(model.Country, "usa") })
	expectContractPanic(t, "ToggleSetMembership", func() { engine.ToggleSetMembership("hobbies", "x") })
	expectContractPanic(t, "SetRating", func() { engine.SetRating(0) })
	expectContractPanic(t, "SetRating", func() { engine.SetRating(6) })
	expectContractPanic(t, "Value", func() { engine.Value("volcanoAlert") })

	if diff := testsupport.DiffRecords(model.DefaultRecord(), engine.Record()); diff != "" {
		t.Fatalf("rejected calls mutated the record (-want +got):\n%s", diff)
	}
}

func TestSubmitterErrorPropagates(t *testing.T) {
	engine := formstate.New(formstate.WithSubmitter(submission.Func(
		func(context.Context, model.Record) (submission.Outcome, error) {
			return submission.Outcome{}, submission.ErrRejected
		},
	)))
	applyEdits(engine, testsupport.ValidEdits())

	result, err := engine.TrySubmit(testsupport.Context(t))
	if !errors.Is(err, submission.ErrRejected) {
		t.Fatalf("expected ErrRejected, got %v", err)
	}
	if result.Submitted {
		t.Fatalf("failed submission should not report success")
	}
	if diff := testsupport.DiffRecords(testsupport.ValidRecord(), engine.Record()); diff != "" {
		t.Fatalf("record changed after failed submit (-want +got):\n%s", diff)
	}
}

func TestSubmitterOutcomeMessageIsNotice(t *testing.T) {
	engine := formstate.New(formstate.WithSubmitter(submission.Func(
		func(context.Context, model.Record) (submission.Outcome, error) {
			return submission.Outcome{Reference: "r-1", Message: "Stored"}, nil
		},
	)))
	applyEdits(engine, testsupport.ValidEdits())

	result, err := engine.TrySubmit(testsupport.Context(t))
	if err != nil {
		t.Fatalf("try submit: %v", err)
	}
	if result.Notice != "Stored" || result.Outcome.Reference != "r-1" {
		t.Fatalf("unexpected result %+v", result)
	}
}

func TestCancelResetsAndReturnsNotice(t *testing.T) {
	engine := formstate.New()
	applyEdits(engine, testsupport.ValidEdits())

	if notice := engine.Cancel(); notice != formstate.NoticeCancelled {
		t.Fatalf("unexpected notice %q", notice)
	}
	if diff := testsupport.DiffRecords(model.DefaultRecord(), engine.Record()); diff != "" {
		t.Fatalf("record after cancel mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadReplacesRecord(t *testing.T) {
	engine := formstate.New()
	engine.Validate()

	record := testsupport.ValidRecord()
	engine.Load(record)
	record.FullName = "changed"

	if got := engine.Value(model.FullName); got != "Ada Lovelace" {
		t.Fatalf("engine shares record with caller: %v", got)
	}
	if !engine.Valid() {
		t.Fatalf("load should clear errors")
	}
}

func TestWithInitialSeedsRecordButResetRestoresDefaults(t *testing.T) {
	engine := formstate.New(formstate.WithInitial(testsupport.ValidRecord()))
	if diff := testsupport.DiffRecords(testsupport.ValidRecord(), engine.Record()); diff != "" {
		t.Fatalf("initial record mismatch (-want +got):\n%s", diff)
	}

	engine.Reset()
	if diff := testsupport.DiffRecords(model.DefaultRecord(), engine.Record()); diff != "" {
		t.Fatalf("record after reset mismatch (-want +got):\n%s", diff)
	}
}

func TestContractErrorUnwraps(t *testing.T) {
	cause := errors.New("boom")
	err := &formstate.ContractError{Op: "SetField", Field: model.Age, Detail: "invalid value", Err: cause}
	if !errors.Is(err, cause) {
		t.Fatalf("expected ContractError to unwrap cause")
	}
	if err.Error() != "formstate: SetField(age): invalid value: boom" {
		t.Fatalf("unexpected message %q", err.Error())
	}
}
