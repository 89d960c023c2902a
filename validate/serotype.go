package validate

import (
	"regexp"
	"strings"
	"unicode"
)

var annotationPattern = regexp.MustCompile(`\([^()]*\)`)

// StripAnnotation removes parenthesized annotations (e.g., percent identity)
// and all whitespace from a typing call, leaving the bare label:
// "O157:H7 (98.5%)" becomes "O157:H7". Each innermost (...) span is removed
// once; nested parentheses are not supported and leave the outer pair behind.
func StripAnnotation(serotype string) string {
	bare := annotationPattern.ReplaceAllString(serotype, "")

	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, bare)
}
