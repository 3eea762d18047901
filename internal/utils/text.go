package utils

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

var folder = cases.Fold()

// NormalizeName produces the lookup key for an item or recipe name.
// Full-width input (common with CJK keyboards) is folded by NFKC, case is
// folded, and runs of whitespace collapse to a single space.
func NormalizeName(name string) string {
	s := norm.NFKC.String(name)
	s = folder.String(s)
	return strings.Join(strings.FieldsFunc(s, unicode.IsSpace), " ")
}
