// Package pinyin converts numeric-tone pinyin to diacritic display form.
//
// Dictionary data carries tones as trailing digits ("ni3 hao3") with ü
// written as "u:" or "v", the CEDICT conventions. Rendering is stateless
// and total: anything that does not parse as a toned syllable passes
// through unchanged.
package pinyin

import (
	"strings"
	"unicode"
)

// toneVowels indexes diacritic forms by tone (1–5); tone 5 is the bare vowel.
// The 'v' row is the ü class: CEDICT writes ü as "u:" or "v", and its marks
// come from a dedicated table, not the plain-u one.
var toneVowels = map[rune][5]rune{
	'a': {'ā', 'á', 'ǎ', 'à', 'a'},
	'e': {'ē', 'é', 'ě', 'è', 'e'},
	'i': {'ī', 'í', 'ǐ', 'ì', 'i'},
	'o': {'ō', 'ó', 'ǒ', 'ò', 'o'},
	'u': {'ū', 'ú', 'ǔ', 'ù', 'u'},
	'v': {'ǖ', 'ǘ', 'ǚ', 'ǜ', 'ü'},
}

// ToneMarks converts a whitespace-delimited string of numeric-tone syllables
// to diacritic form. Syllable boundaries are assumed to come pre-split from
// the dictionary data; output syllables are rejoined with single spaces.
func ToneMarks(s string) string {
	fields := strings.Fields(s)
	for i, syl := range fields {
		fields[i] = markSyllable(syl)
	}
	return strings.Join(fields, " ")
}

func markSyllable(syl string) string {
	runes := []rune(syl)
	if len(runes) < 2 {
		return syl
	}
	last := runes[len(runes)-1]
	if last < '0' || last > '9' {
		return syl // no tone to apply
	}
	tone := int(last - '0')
	if tone < 1 || tone > 5 {
		return syl // defensive no-op on out-of-range digits
	}

	letters := string(runes[:len(runes)-1])
	letters = strings.ReplaceAll(letters, "u:", "v")
	letters = strings.ReplaceAll(letters, "U:", "V")
	rs := []rune(letters)

	idx := markIndex(rs)
	if idx < 0 {
		// vowelless syllable, e.g. erhua "r5"
		return letters
	}

	src := rs[idx]
	class := unicode.ToLower(src)
	if class == 'ü' {
		class = 'v'
	}
	table, ok := toneVowels[class]
	if !ok {
		return letters
	}
	marked := table[tone-1]
	if unicode.IsUpper(src) {
		marked = unicode.ToUpper(marked)
	}
	rs[idx] = marked
	return string(rs)
}

// markIndex picks the tone-bearing vowel: "a" if present, else "e", else the
// "o" of "ou", else whichever of i/o/u/ü occurs rightmost.
func markIndex(rs []rune) int {
	lower := make([]rune, len(rs))
	for i, r := range rs {
		lower[i] = unicode.ToLower(r)
	}
	for i, r := range lower {
		if r == 'a' {
			return i
		}
	}
	for i, r := range lower {
		if r == 'e' {
			return i
		}
	}
	for i := 0; i+1 < len(lower); i++ {
		if lower[i] == 'o' && lower[i+1] == 'u' {
			return i
		}
	}
	best := -1
	for i, r := range lower {
		switch r {
		case 'i', 'o', 'u', 'v', 'ü':
			best = i
		}
	}
	return best
}
