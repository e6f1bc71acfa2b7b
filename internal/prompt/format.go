package prompt

import (
	"regexp"
	"strings"
)

// Format splits raw on blank lines and wraps each trimmed block in bold
// markup followed by a blank line. It does not inspect the content.
func Format(raw string) string {
	var b strings.Builder
	for _, section := range sections(raw) {
		b.WriteString("**")
		b.WriteString(strings.TrimSpace(section))
		b.WriteString("**\n\n")
	}
	return b.String()
}

// Blocks returns the trimmed blocks Format would bold, skipping empty ones.
// HTML and terminal views render these directly.
func Blocks(raw string) []string {
	var out []string
	for _, section := range sections(raw) {
		if s := strings.TrimSpace(section); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// sections splits on blank lines. CRLF line endings, as browsers submit
// textarea and hidden field values, count as newlines.
func sections(raw string) []string {
	return strings.Split(strings.ReplaceAll(raw, "\r\n", "\n"), "\n\n")
}

var weekdayPatterns = func() map[string]*regexp.Regexp {
	m := make(map[string]*regexp.Regexp, len(Weekdays))
	for _, d := range Weekdays {
		m[d] = regexp.MustCompile(`(?i)\b` + d + `\b`)
	}
	return m
}()

// Validate returns the weekdays that never appear in raw, in week order.
// A nil result means all seven sections are at least mentioned.
func Validate(raw string) []string {
	var missing []string
	for _, d := range Weekdays {
		if !weekdayPatterns[d].MatchString(raw) {
			missing = append(missing, d)
		}
	}
	return missing
}
