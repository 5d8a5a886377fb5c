package pinyin

import (
	"regexp"
	"strconv"
	"strings"
)

var digitSyllables = [10]string{
	"ling2", "yi1", "er4", "san1", "si4",
	"wu3", "liu4", "qi1", "ba1", "jiu3",
}

var placeSyllables = []struct {
	unit int
	word string
}{
	{10000, "wan4"},
	{1000, "qian1"},
	{100, "bai3"},
	{10, "shi2"},
}

// maxReadable bounds the place-value reading at the 万 place; anything larger
// falls back to digit-by-digit.
const maxReadable = 99999

var numberPattern = regexp.MustCompile(`[0-9]+`)

// NumberReading returns the Mandarin reading of a nonnegative number in
// diacritic pinyin, e.g. 105 → "yī bǎi líng wǔ". The conventional zero
// filler is inserted when an internal place is skipped.
func NumberReading(n int) string {
	return ToneMarks(strings.Join(numberSyllables(n), " "))
}

func numberSyllables(n int) []string {
	if n < 0 || n > maxReadable {
		return digitByDigit(strconv.Itoa(n))
	}
	if n == 0 {
		return []string{digitSyllables[0]}
	}

	var out []string
	started := false
	pendingZero := false
	for _, p := range placeSyllables {
		d := n / p.unit
		n %= p.unit
		if d == 0 {
			if started {
				pendingZero = true
			}
			continue
		}
		if pendingZero {
			out = append(out, digitSyllables[0])
			pendingZero = false
		}
		// 10–19 read as shí, not yī shí
		if !(p.unit == 10 && d == 1 && !started) {
			out = append(out, digitSyllables[d])
		}
		out = append(out, p.word)
		started = true
	}
	if n > 0 {
		if pendingZero {
			out = append(out, digitSyllables[0])
		}
		out = append(out, digitSyllables[n])
	}
	return out
}

func digitByDigit(s string) []string {
	out := make([]string, 0, len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			out = append(out, digitSyllables[r-'0'])
		}
	}
	return out
}

// ExpandNumbers replaces each run of Arabic numerals embedded in text with
// its Mandarin reading. This is a display convenience only; it never feeds
// back into segmentation.
func ExpandNumbers(text string) string {
	return numberPattern.ReplaceAllStringFunc(text, func(m string) string {
		n, err := strconv.Atoi(m)
		if err != nil || len(m) > 1 && m[0] == '0' {
			// leading zeros (or overflow) read digit by digit
			return ToneMarks(strings.Join(digitByDigit(m), " "))
		}
		return NumberReading(n)
	})
}
