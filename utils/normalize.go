package utils

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stripMarks removes combining marks (diacritics) after NFD decomposition,
// so "café" and "cafe" normalize to the same key.
var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// NormalizeWord produces the canonical lookup key for a word: trimmed,
// lowercased, diacritics and punctuation stripped. Kana and kanji pass
// through unchanged.
func NormalizeWord(text string) string {
	lowered := strings.ToLower(strings.TrimSpace(text))

	stripped, _, err := transform.String(stripMarks, lowered)
	if err != nil {
		// Transform failures leave the lowered form as the key.
		stripped = lowered
	}

	var b strings.Builder
	b.Grow(len(stripped))
	for _, r := range stripped {
		if unicode.IsPunct(r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
