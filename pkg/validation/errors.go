package validation

import (
	"sort"

	"github.com/goliatone/go-formstate/pkg/model"
)

// ErrorRecord maps a field key to the message of its failing rule. Only
// failing fields have entries; an empty record means the form is valid.
type ErrorRecord map[model.FieldName]string

// Valid reports whether the record holds no failures.
func (e ErrorRecord) Valid() bool {
	return len(e) == 0
}

// Has reports whether name currently carries an error.
func (e ErrorRecord) Has(name model.FieldName) bool {
	_, ok := e[name]
	return ok
}

// Clone returns an independent copy. A nil or empty input yields an empty,
// non-nil record.
func (e ErrorRecord) Clone() ErrorRecord {
	out := make(ErrorRecord, len(e))
	for k, v := range e {
		out[k] = v
	}
	return out
}

// Fields returns the failing field keys sorted in form order.
func (e ErrorRecord) Fields() []model.FieldName {
	if len(e) == 0 {
		return nil
	}
	order := make(map[model.FieldName]int, len(e))
	for i, name := range model.FieldNames() {
		order[name] = i
	}
	out := make([]model.FieldName, 0, len(e))
	for name := range e {
		out = append(out, name)
	}
	sort.Slice(out, func(i, j int) bool {
		return order[out[i]] < order[out[j]]
	})
	return out
}

// Strings flattens the record into string keys for JSON payloads and
// templates.
func (e ErrorRecord) Strings() map[string]string {
	out := make(map[string]string, len(e))
	for k, v := range e {
		out[string(k)] = v
	}
	return out
}
