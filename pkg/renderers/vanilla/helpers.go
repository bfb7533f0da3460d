package vanilla

import (
	"strconv"
	"strings"
)

func controlID(name string) string {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return ""
	}
	return "fs-" + trimmed
}

func errorID(name string) string {
	id := controlID(name)
	if id == "" {
		return ""
	}
	return id + "-error"
}

// sanitizeClassList drops empty tokens and any "fs-" prefixed class, which
// is reserved for the built-in chrome.
func sanitizeClassList(value string) string {
	tokens := strings.Fields(strings.TrimSpace(value))
	keep := make([]string, 0, len(tokens))
	for _, token := range tokens {
		if strings.HasPrefix(token, "fs-") {
			continue
		}
		keep = append(keep, token)
	}
	return strings.Join(keep, " ")
}

func itoa(n int) string {
	return strconv.Itoa(n)
}
