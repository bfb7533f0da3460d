// Package formstate implements the form state engine: it owns the field values
// of one form session, applies edit events, evaluates the rule table and keeps
// the resulting error record.
//
// Errors shown for a field are cleared as soon as that field is edited and are
// only recomputed on the next Validate or TrySubmit. Arguments outside an
// operation's domain are programming errors and panic with *ContractError.
package formstate
