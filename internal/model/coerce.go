package model

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// CoercionError reports a value that cannot be stored under a field.
type CoercionError struct {
	Field  FieldName
	Kind   FieldKind
	Value  any
	Reason string
}

func (e *CoercionError) Error() string {
	return fmt.Sprintf("model: field %q (%s) cannot hold %#v: %s", e.Field, e.Kind, e.Value, e.Reason)
}

// Coerce converts a raw edit value into the Go type stored for name:
// string for text/enum, bool for boolean, int for number and StringSet for
// set fields. Checkbox style strings are accepted for booleans and decimal
// strings for numbers so transports can pass raw form values through.
func Coerce(name FieldName, value any) (any, error) {
	field, ok := Lookup(name)
	if !ok {
		return nil, &CoercionError{Field: name, Value: value, Reason: "unknown field"}
	}
	fail := func(reason string) error {
		return &CoercionError{Field: name, Kind: field.Kind, Value: value, Reason: reason}
	}

	switch field.Kind {
	case FieldKindText, FieldKindEnum:
		s, ok := value.(string)
		if !ok {
			return nil, fail("expected string")
		}
		return s, nil

	case FieldKindBoolean:
		b, ok := coerceBool(value)
		if !ok {
			return nil, fail("expected boolean or checkbox value")
		}
		return b, nil

	case FieldKindNumber:
		n, ok := coerceInt(value)
		if !ok {
			return nil, fail("expected integer")
		}
		if field.Bounds != nil && (n < field.Bounds.Min || n > field.Bounds.Max) {
			return nil, fail(fmt.Sprintf("out of range [%d,%d]", field.Bounds.Min, field.Bounds.Max))
		}
		return n, nil

	case FieldKindSet:
		set, ok := coerceSet(value)
		if !ok {
			return nil, fail("expected list of strings")
		}
		return set, nil
	}

	return nil, fail("unsupported kind")
}

func coerceBool(value any) (bool, bool) {
	switch v := value.(type) {
	case bool:
		return v, true
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "on", "true", "1", "checked", "yes":
			return true, true
		case "", "off", "false", "0", "no":
			return false, true
		}
	}
	return false, false
}

func coerceInt(value any) (int, bool) {
	switch v := value.(type) {
	case int:
		return v, true
	case int32:
		return int(v), true
	case int64:
		return int(v), true
	case float64:
		if v != math.Trunc(v) || math.IsInf(v, 0) || math.IsNaN(v) {
			return 0, false
		}
		return int(v), true
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0, false
		}
		return n, true
	}
	return 0, false
}

func coerceSet(value any) (StringSet, bool) {
	switch v := value.(type) {
	case StringSet:
		return v.Clone(), true
	case []string:
		return NewStringSet(v...), true
	case []any:
		values := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return StringSet{}, false
			}
			values = append(values, s)
		}
		return NewStringSet(values...), true
	case nil:
		return NewStringSet(), true
	}
	return StringSet{}, false
}
