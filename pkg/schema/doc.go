// Package schema publishes the JSON shape of a form record as an OpenAPI
// schema and checks incoming payloads against it before they reach an engine.
// It also describes where record documents come from (Source, Document) and
// the Loader contract implemented by internal/loader.
package schema
