package vanilla

// ChromeClass is a typed identifier for semantic chrome CSS classes.
type ChromeClass string

const (
	ClassForm     ChromeClass = "fs-form"
	ClassHeader   ChromeClass = "fs-header"
	ClassSection  ChromeClass = "fs-section"
	ClassField    ChromeClass = "fs-field"
	ClassActions  ChromeClass = "fs-actions"
	ClassErrors   ChromeClass = "fs-errors"
	ClassNotice   ChromeClass = "fs-notice"
	ClassHasError ChromeClass = "fs-has-error"
)

// ChromeClasses lets callers swap the class names emitted on layout
// elements. Empty entries fall back to the defaults above.
type ChromeClasses struct {
	Form    string
	Header  string
	Section string
	Field   string
	Actions string
	Errors  string
	Notice  string
}

func (c ChromeClasses) resolve() map[string]string {
	pick := func(override string, fallback ChromeClass) string {
		if cleaned := sanitizeClassList(override); cleaned != "" {
			return cleaned
		}
		return string(fallback)
	}
	return map[string]string{
		"form":      pick(c.Form, ClassForm),
		"header":    pick(c.Header, ClassHeader),
		"section":   pick(c.Section, ClassSection),
		"field":     pick(c.Field, ClassField),
		"actions":   pick(c.Actions, ClassActions),
		"errors":    pick(c.Errors, ClassErrors),
		"notice":    pick(c.Notice, ClassNotice),
		"has_error": string(ClassHasError),
	}
}
