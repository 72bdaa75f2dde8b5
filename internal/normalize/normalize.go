// Package normalize reduces free-text answers to a canonical comparable form.
package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalize trims the text, decomposes accented characters, strips the
// combining marks and lowercases the result. Comparison stays sensitive to
// interior whitespace and letter order.
func Normalize(text string) string {
	text = strings.TrimSpace(text)
	stripMarks := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)))
	stripped, _, err := transform.String(stripMarks, text)
	if err != nil {
		stripped = text
	}
	return strings.ToLower(stripped)
}

// Equal reports whether two answers are equivalent after normalization.
func Equal(a, b string) bool {
	return Normalize(a) == Normalize(b)
}
