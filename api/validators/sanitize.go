package validators

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// SanitizeString trims surrounding whitespace, drops control characters,
// and truncates to maxLen runes. Order names and customer notes arrive
// from five storefronts plus manual entry, so the input is not trusted
// to be printable.
func SanitizeString(input string, maxLen int) string {
	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, strings.TrimSpace(input))

	if maxLen <= 0 || utf8.RuneCountInString(cleaned) <= maxLen {
		return cleaned
	}

	runes := []rune(cleaned)
	return strings.TrimSpace(string(runes[:maxLen]))
}
