package server

import (
	"html"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	textPolicyOnce sync.Once
	textPolicy     *bluemonday.Policy
)

// sanitizeText strips markup from a typed value. The policy escapes
// entities, which are decoded again because templates escape on output.
func sanitizeText(raw string) string {
	if raw == "" {
		return ""
	}
	return html.UnescapeString(textSanitizer().Sanitize(raw))
}

func textSanitizer() *bluemonday.Policy {
	textPolicyOnce.Do(func() {
		textPolicy = bluemonday.StrictPolicy()
	})
	return textPolicy
}
