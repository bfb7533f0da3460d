package schema

import (
	"errors"
	"net/url"
	"path"
	"strings"

	"github.com/goliatone/go-formstate/pkg/model"
)

// Document wraps a raw record payload and its origin.
type Document struct {
	source Source
	raw    []byte
}

// NewDocument constructs a Document wrapper while validating the inputs.
func NewDocument(src Source, raw []byte) (Document, error) {
	if src == nil {
		return Document{}, errors.New("schema: source is required")
	}
	if len(raw) == 0 {
		return Document{}, errors.New("schema: raw document is empty")
	}

	clone := append([]byte(nil), raw...)
	return Document{source: src, raw: clone}, nil
}

// MustNewDocument panics if the document cannot be created. Useful for tests.
func MustNewDocument(src Source, raw []byte) Document {
	doc, err := NewDocument(src, raw)
	if err != nil {
		panic(err)
	}
	return doc
}

// Source returns the origin metadata for the document.
func (d Document) Source() Source {
	return d.source
}

// Raw returns a copy of the payload.
func (d Document) Raw() []byte {
	return append([]byte(nil), d.raw...)
}

// Location returns the string identifier for the origin.
func (d Document) Location() string {
	if d.source == nil {
		return ""
	}
	return d.source.Location()
}

// IsYAML reports whether the location names a YAML file.
func (d Document) IsYAML() bool {
	location := d.Location()
	if d.source != nil && d.source.Kind() == SourceKindURL {
		if u, err := url.Parse(location); err == nil {
			location = u.Path
		}
	}
	switch strings.ToLower(path.Ext(location)) {
	case ".yaml", ".yml":
		return true
	default:
		return false
	}
}

// Record decodes the payload over the default record, as YAML or JSON
// depending on the location's extension.
func (d Document) Record() (model.Record, error) {
	if d.IsYAML() {
		return DecodeRecordYAML(d.raw)
	}
	return DecodeRecord(d.raw)
}
