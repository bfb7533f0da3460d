package schema

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formstate/pkg/model"
)

// ErrUnknownField is wrapped by ValidatePayload when a payload carries a key
// outside the record.
var ErrUnknownField = errors.New("schema: unknown field")

// RecordSchema describes the JSON form of a record as an OpenAPI schema:
// value types, option lists and numeric bounds. It says nothing about the
// rule table; a structurally valid payload can still fail validation.
func RecordSchema() *openapi3.Schema {
	root := openapi3.NewObjectSchema()
	root.Title = "FormRecord"
	root.Description = "Field values of the practice form"

	for _, name := range model.FieldNames() {
		field, _ := model.Lookup(name)
		root.WithProperty(string(name), fieldSchema(field))
	}
	return root
}

func fieldSchema(field model.Field) *openapi3.Schema {
	var s *openapi3.Schema
	switch field.Kind {
	case model.FieldKindBoolean:
		s = openapi3.NewBoolSchema()
	case model.FieldKindNumber:
		s = openapi3.NewIntegerSchema()
		if field.Bounds != nil {
			s.WithMin(float64(field.Bounds.Min)).WithMax(float64(field.Bounds.Max))
		}
	case model.FieldKindEnum:
		values := make([]any, 0, len(field.Options)+1)
		values = append(values, "")
		for _, opt := range field.Options {
			values = append(values, opt.Value)
		}
		s = openapi3.NewStringSchema().WithEnum(values...)
	case model.FieldKindSet:
		items := openapi3.NewStringSchema()
		if len(field.Options) > 0 {
			values := make([]any, 0, len(field.Options))
			for _, opt := range field.Options {
				values = append(values, opt.Value)
			}
			items.WithEnum(values...)
		}
		s = openapi3.NewArraySchema().WithItems(items).WithUniqueItems(true)
	default:
		s = openapi3.NewStringSchema()
	}
	s.Title = field.Label
	s.Description = field.Help
	return s
}

// ValidatePayload checks a decoded JSON object against RecordSchema and
// rejects keys the record does not define. Missing keys are allowed; they
// keep their defaults when the payload is applied.
func ValidatePayload(payload map[string]any) error {
	var unknown []string
	for key := range payload {
		if !model.Known(model.FieldName(key)) {
			unknown = append(unknown, key)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return fmt.Errorf("%w: %v", ErrUnknownField, unknown)
	}
	if err := RecordSchema().VisitJSON(payload); err != nil {
		return fmt.Errorf("schema: %w", err)
	}
	return nil
}

// DecodeRecord validates raw JSON and decodes it over the default record.
func DecodeRecord(raw []byte) (model.Record, error) {
	var payload map[string]any
	if err := json.Unmarshal(raw, &payload); err != nil {
		return model.Record{}, fmt.Errorf("schema: decode payload: %w", err)
	}
	return RecordFromPayload(payload)
}

// DecodeRecordYAML is DecodeRecord for YAML documents. Scalars under text
// and choice keys keep their source text, so `birthDate: 1815-12-10` and
// `age: 25` fill their string fields instead of decoding as a timestamp or
// an integer. Set items are read the same way, and keys without a value
// keep their defaults.
func DecodeRecordYAML(raw []byte) (model.Record, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return model.Record{}, fmt.Errorf("schema: decode yaml payload: %w", err)
	}
	payload, err := yamlPayload(&doc)
	if err != nil {
		return model.Record{}, fmt.Errorf("schema: decode yaml payload: %w", err)
	}
	return RecordFromPayload(payload)
}

func yamlPayload(doc *yaml.Node) (map[string]any, error) {
	payload := make(map[string]any)
	root := doc
	if root.Kind == yaml.DocumentNode {
		if len(root.Content) == 0 {
			return payload, nil
		}
		root = root.Content[0]
	}
	switch {
	case root.Kind == 0, isNull(root):
		return payload, nil
	case root.Kind != yaml.MappingNode:
		return nil, fmt.Errorf("line %d: record must be a mapping", root.Line)
	}

	for i := 0; i+1 < len(root.Content); i += 2 {
		key, node := root.Content[i].Value, root.Content[i+1]
		if node.Kind == yaml.AliasNode && node.Alias != nil {
			node = node.Alias
		}
		// "key:" with no value keeps the default.
		if isNull(node) {
			continue
		}
		if field, ok := model.Lookup(model.FieldName(key)); ok {
			if value, ok := yamlText(field, node); ok {
				payload[key] = value
				continue
			}
		}
		var value any
		if err := node.Decode(&value); err != nil {
			return nil, fmt.Errorf("%s: %w", key, err)
		}
		payload[key] = value
	}
	return payload, nil
}

// yamlText reads scalars of string-typed fields verbatim.
func yamlText(field model.Field, node *yaml.Node) (any, bool) {
	switch field.Kind {
	case model.FieldKindText, model.FieldKindEnum:
		if node.Kind != yaml.ScalarNode || isNull(node) {
			return nil, false
		}
		return node.Value, true
	case model.FieldKindSet:
		if node.Kind != yaml.SequenceNode {
			return nil, false
		}
		items := make([]any, 0, len(node.Content))
		for _, item := range node.Content {
			if item.Kind != yaml.ScalarNode || isNull(item) {
				return nil, false
			}
			items = append(items, item.Value)
		}
		return items, true
	default:
		return nil, false
	}
}

func isNull(node *yaml.Node) bool {
	return node.Kind == yaml.ScalarNode && node.ShortTag() == "!!null"
}

// RecordFromPayload applies a validated payload onto the default record.
func RecordFromPayload(payload map[string]any) (model.Record, error) {
	if err := ValidatePayload(payload); err != nil {
		return model.Record{}, err
	}
	record := model.DefaultRecord()
	for _, name := range model.FieldNames() {
		raw, ok := payload[string(name)]
		if !ok || raw == nil {
			continue
		}
		value, err := model.Coerce(name, raw)
		if err != nil {
			return model.Record{}, fmt.Errorf("schema: %w", err)
		}
		record.Set(name, value)
	}
	return record, nil
}

// MarshalIndent renders RecordSchema as indented JSON.
func MarshalIndent() ([]byte, error) {
	return json.MarshalIndent(RecordSchema(), "", "  ")
}

// ErrorPayload flattens an error returned by ValidatePayload or DecodeRecord
// into messages keyed by JSON pointer ("/rating"). Errors that carry no
// location are keyed by "form".
func ErrorPayload(err error) map[string][]string {
	if err == nil {
		return nil
	}
	out := make(map[string][]string)
	add := func(key, message string) {
		out[key] = append(out[key], message)
	}

	var multi openapi3.MultiError
	var schemaErr *openapi3.SchemaError
	var coerceErr *model.CoercionError
	switch {
	case errors.As(err, &multi):
		for _, item := range multi {
			for key, messages := range ErrorPayload(item) {
				out[key] = append(out[key], messages...)
			}
		}
	case errors.As(err, &schemaErr):
		message := schemaErr.Reason
		if message == "" {
			message = schemaErr.Error()
		}
		add("/"+strings.Join(schemaErr.JSONPointer(), "/"), message)
	case errors.As(err, &coerceErr):
		add("/"+string(coerceErr.Field), coerceErr.Reason)
	default:
		add("form", err.Error())
	}
	return out
}
