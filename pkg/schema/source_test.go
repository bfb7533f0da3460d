package schema

import (
	"testing"
)

func TestParseSource(t *testing.T) {
	tests := []struct {
		raw      string
		kind     SourceKind
		location string
	}{
		{raw: "./records/../record.yaml", kind: SourceKindFile, location: "record.yaml"},
		{raw: " https://example.com/r.json ", kind: SourceKindURL, location: "https://example.com/r.json"},
		{raw: "http://localhost:8080/r.yml", kind: SourceKindURL, location: "http://localhost:8080/r.yml"},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			src, err := ParseSource(tt.raw)
			if err != nil {
				t.Fatalf("parse: %v", err)
			}
			if src.Kind() != tt.kind || src.Location() != tt.location {
				t.Fatalf("got %s %q, want %s %q", src.Kind(), src.Location(), tt.kind, tt.location)
			}
		})
	}

	if _, err := ParseSource("  "); err == nil {
		t.Fatalf("expected error for empty source")
	}
}

func TestDocumentRecordFormat(t *testing.T) {
	yamlDoc := MustNewDocument(SourceFromURL("https://example.com/r.yaml?v=2"), []byte("rating: 3\n"))
	if !yamlDoc.IsYAML() {
		t.Fatalf("expected yaml detection through URL path")
	}
	record, err := yamlDoc.Record()
	if err != nil {
		t.Fatalf("yaml record: %v", err)
	}
	if record.Rating != 3 {
		t.Fatalf("expected rating 3, got %d", record.Rating)
	}

	jsonDoc := MustNewDocument(SourceFromFS("r.json"), []byte(`{"rating":2}`))
	if jsonDoc.IsYAML() {
		t.Fatalf("json document detected as yaml")
	}
	if _, err := MustNewDocument(SourceFromFile("r.txt"), []byte("rating: 3")).Record(); err == nil {
		t.Fatalf("expected json decode error for non-yaml extension")
	}

	raw := []byte(`{}`)
	doc := MustNewDocument(SourceFromFile("r.json"), raw)
	raw[0] = 'x'
	if string(doc.Raw()) != "{}" {
		t.Fatalf("document must copy its payload")
	}
}
