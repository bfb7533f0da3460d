package model

// FieldKind is the simplified enum for form-friendly value kinds.
type FieldKind string

const (
	FieldKindText    FieldKind = "text"
	FieldKindBoolean FieldKind = "boolean"
	FieldKindNumber  FieldKind = "number"
	FieldKindEnum    FieldKind = "enum"
	FieldKindSet     FieldKind = "set"
)

// FieldName identifies one of the fixed record keys. The string value matches
// the JSON key used on the wire and in error records.
type FieldName string

// Option is a selectable value for enum and set fields.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Bounds describes the inclusive integer range accepted by number fields.
type Bounds struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// Field describes an individual input of the form. Struct fields are annotated
// so renderers can serialise them directly when needed.
type Field struct {
	Name        FieldName         `json:"name"`
	Kind        FieldKind         `json:"kind"`
	Label       string            `json:"label"`
	Placeholder string            `json:"placeholder,omitempty"`
	Help        string            `json:"help,omitempty"`
	Input       string            `json:"input,omitempty"`
	Required    bool              `json:"required"`
	Options     []Option          `json:"options,omitempty"`
	Bounds      *Bounds           `json:"bounds,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

// HasOption reports whether value is one of the field's options.
func (f Field) HasOption(value string) bool {
	for _, opt := range f.Options {
		if opt.Value == value {
			return true
		}
	}
	return false
}

// OptionValues returns the raw option values in declaration order.
func (f Field) OptionValues() []string {
	if len(f.Options) == 0 {
		return nil
	}
	out := make([]string, 0, len(f.Options))
	for _, opt := range f.Options {
		out = append(out, opt.Value)
	}
	return out
}

// Section groups fields the way the form lays them out.
type Section struct {
	Title  string      `json:"title"`
	Fields []FieldName `json:"fields"`
	Help   string      `json:"help,omitempty"`
}

// Form is the top-level description renderers consume.
type Form struct {
	ID       string    `json:"id"`
	Title    string    `json:"title"`
	Subtitle string    `json:"subtitle,omitempty"`
	Terms    string    `json:"terms,omitempty"`
	Sections []Section `json:"sections"`
	Fields   []Field   `json:"fields"`
}

// Field looks up a field definition by name.
func (f Form) Field(name FieldName) (Field, bool) {
	for _, field := range f.Fields {
		if field.Name == name {
			return field, true
		}
	}
	return Field{}, false
}
