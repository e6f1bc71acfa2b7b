package form

import (
	"html"
	"regexp"
	"strings"
	"unicode/utf8"
)

// MaxTextLen caps free-text fields before they are rendered into a prompt.
const MaxTextLen = 200

var htmlTagRegex = regexp.MustCompile(`<[^>]*>`)

// Sanitize converts a submitted free-text value to a single plain line.
// It unescapes HTML entities, strips tags, collapses whitespace and truncates
// to MaxTextLen runes.
func Sanitize(content string) string {
	unescaped := html.UnescapeString(content)
	plain := htmlTagRegex.ReplaceAllString(unescaped, "")
	s := strings.Join(strings.Fields(plain), " ")
	if utf8.RuneCountInString(s) > MaxTextLen {
		s = strings.TrimSpace(string([]rune(s)[:MaxTextLen]))
	}
	return s
}
