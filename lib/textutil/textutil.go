package textutil

import (
	"regexp"
	"strings"
	"unicode"
)

var anyWhitespace = regexp.MustCompile(`\s+`)

func removeNonPrintable(s string) string {
	out := strings.Builder{}
	for _, c := range s {
		if unicode.IsPrint(c) {
			out.WriteRune(c)
		}
	}
	return out.String()
}

// Clean normalizes text scraped out of markup: whitespace runs (including
// newlines) collapse to a single space, non-printable runes are dropped and
// surrounding whitespace is trimmed.
func Clean(s string) string {
	s = anyWhitespace.ReplaceAllString(s, " ")
	s = removeNonPrintable(s)
	return strings.Trim(s, " ")
}

// EqualsFold reports whether a and b are equal ignoring case and
// surrounding whitespace.
func EqualsFold(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
