// Package model defines the practice form consumed by the engine and the
// renderers. The field catalog is fixed: Record is struct-backed so every key
// is present at all times, multi-select values are held in an
// insertion-ordered StringSet, and Coerce turns raw transport values (checkbox
// strings, JSON numbers, string lists) into the Go type each field stores.
// Definitions live in internal/model; this package re-exports them.
package model
