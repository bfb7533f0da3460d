// Package testsupport holds fixtures and comparison helpers shared by the
// package tests.
package testsupport

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/goliatone/go-formstate/pkg/model"
)

// CmpOptions compares records by value. StringSet is compared as an
// unordered list since its membership is what matters.
func CmpOptions() []cmp.Option {
	return []cmp.Option{
		cmp.Transformer("StringSet", func(s model.StringSet) []string {
			return s.Items()
		}),
		cmpopts.SortSlices(func(a, b string) bool { return a < b }),
		cmpopts.EquateEmpty(),
	}
}

// DiffRecords returns a (-want +got) diff of two records, empty when equal.
func DiffRecords(want, got model.Record) string {
	return cmp.Diff(want, got, CmpOptions()...)
}

// InvalidRecord returns a record that fails every rule in the default table:
// blank name, an email without "@", a short password, no choices, no rating
// and unaccepted terms.
func InvalidRecord() model.Record {
	record := model.DefaultRecord()
	record.Email = "x"
	record.Password = "short"
	return record
}

// ValidRecord returns a record that passes every rule in the default table.
func ValidRecord() model.Record {
	record := model.DefaultRecord()
	record.FullName = "Ada Lovelace"
	record.Email = "ada@x.io"
	record.Password = "longenough1"
	record.Gender = "Female"
	record.Country = "usa"
	record.Priority = "low"
	record.Rating = 4
	record.AcceptTerms = true
	return record
}

// ValidEdits lists the field writes that turn a default record into
// ValidRecord, in form order.
func ValidEdits() []Edit {
	return []Edit{
		{Field: model.FullName, Value: "Ada Lovelace"},
		{Field: model.Email, Value: "ada@x.io"},
		{Field: model.Password, Value: "longenough1"},
		{Field: model.Country, Value: "usa"},
		{Field: model.Priority, Value: "low"},
		{Field: model.Gender, Value: "Female"},
		{Field: model.Rating, Value: 4},
		{Field: model.AcceptTerms, Value: true},
	}
}

// Edit is a single field write.
type Edit struct {
	Field model.FieldName
	Value any
}

// Context returns a context cancelled when the test finishes.
func Context(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	return ctx
}
