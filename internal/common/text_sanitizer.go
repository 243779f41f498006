package common

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var strictPolicy = bluemonday.StrictPolicy()

const maxSanitizePasses = 4

// SanitizeText strips all markup from admin-entered text, including markup
// hidden behind entities, and returns plain unescaped text so templates
// escape exactly once.
func SanitizeText(s string) string {
	out := s
	for i := 0; i < maxSanitizePasses; i++ {
		next := html.UnescapeString(strictPolicy.Sanitize(out))
		if next == out {
			return strings.TrimSpace(out)
		}
		out = next
	}
	// still unwrapping entities: keep the escaped form rather than guess
	return strings.TrimSpace(strictPolicy.Sanitize(out))
}
