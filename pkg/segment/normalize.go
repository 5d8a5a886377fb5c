package segment

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// IsHan reports whether r falls in the CJK Unified Ideographs block
// (U+4E00–U+9FFF), the range the dictionary data covers.
func IsHan(r rune) bool {
	return r >= 0x4E00 && r <= 0x9FFF
}

// Normalize prepares raw selection text for segmentation: trims whitespace,
// strips leading and trailing runs of non-Han characters, and applies Unicode
// canonical composition. An empty result is a normal outcome for non-Chinese
// input, not an error.
func Normalize(text string) string {
	s := strings.TrimSpace(text)
	rs := []rune(s)

	start := 0
	for start < len(rs) && !IsHan(rs[start]) {
		start++
	}
	end := len(rs)
	for end > start && !IsHan(rs[end-1]) {
		end--
	}

	return norm.NFC.String(string(rs[start:end]))
}

// NormalizeKey canonicalizes a word into the identity key used by the
// vocabulary store. Two spellings that compose to the same NFC form always
// map to the same record.
func NormalizeKey(word string) string {
	return norm.NFC.String(strings.TrimSpace(word))
}
