package sanitizer

import (
	"regexp"
	"strings"
)

var whitespaceRegex = regexp.MustCompile(`\s+`)

// SanitizeName trims and collapses whitespace in a guest name. Control
// characters are stripped; the name otherwise passes through unchanged.
func SanitizeName(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= 0x20 && r != 0x7f {
			b.WriteRune(r)
		}
	}
	return whitespaceRegex.ReplaceAllString(strings.TrimSpace(b.String()), " ")
}

// NormalizeEmail lowercases and trims an email address so lookups and
// duplicate checks are case-insensitive.
func NormalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
