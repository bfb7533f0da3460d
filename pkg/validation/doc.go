// Package validation holds the practice form's rule table. Each rule pairs a
// record field with a go-playground/validator tag and the message surfaced to
// the user; every rule is evaluated on each pass and failures are returned as
// data in an ErrorRecord, never as Go errors.
package validation
