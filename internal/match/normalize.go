package match

import (
	"strings"
	"unicode"
)

// Normalize lowercases s and drops the separators sheet, column and
// option names commonly differ by ("_", "-", " ", "@").
func Normalize(s string) string {
	var b strings.Builder

	b.Grow(len(s))

	for _, r := range s {
		if isSeparator(r) {
			continue
		}

		b.WriteRune(unicode.ToLower(r))
	}

	return b.String()
}

func isSeparator(r rune) bool {
	return r == '_' || r == '-' || r == ' ' || r == '@'
}
