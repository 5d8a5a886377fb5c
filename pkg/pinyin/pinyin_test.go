package pinyin

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToneMarks(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"ma1", "mā"},
		{"ma2", "má"},
		{"ma3", "mǎ"},
		{"ma4", "mà"},
		{"ma5", "ma"},
		{"ni3 hao3", "nǐ hǎo"},
		{"zhong1 guo2", "zhōng guó"},
		{"dui4", "duì"},        // rightmost of i/u
		{"kou3", "kǒu"},        // "ou" marks the o
		{"xiong2", "xióng"},    // rightmost vowel is o
		{"lüe4", "lüè"},        // e beats ü
		{"nu:3", "nǚ"},         // CEDICT colon notation
		{"nv3", "nǚ"},          // v notation is the same class
		{"lu:4", "lǜ"},
		{"nv5", "nü"},          // tone 5 bare ü
		{"shi4", "shì"},
		{"Ma1", "Mā"},          // case preserved
		{"NI3", "NǏ"},
		{"ma", "ma"},           // no digit, unchanged
		{"ma9", "ma9"},         // out-of-range digit, unchanged
		{"ma0", "ma0"},
		{"r5", "r"},            // erhua, no vowel to mark
		{"", ""},
		{"  ni3   hao3 ", "nǐ hǎo"}, // rejoined with single spaces
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ToneMarks(tc.in), "ToneMarks(%q)", tc.in)
	}
}

func TestNumberReading(t *testing.T) {
	cases := []struct {
		n    int
		want string
	}{
		{0, "líng"},
		{5, "wǔ"},
		{10, "shí"},
		{15, "shí wǔ"},
		{25, "èr shí wǔ"},
		{100, "yī bǎi"},
		{105, "yī bǎi líng wǔ"},
		{110, "yī bǎi yī shí"},
		{1005, "yī qiān líng wǔ"},
		{9999, "jiǔ qiān jiǔ bǎi jiǔ shí jiǔ"},
		{10000, "yī wàn"},
		{10500, "yī wàn líng wǔ bǎi"},
		{123456, "yī èr sān sì wǔ liù"}, // beyond 万, digit by digit
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, NumberReading(tc.n), "NumberReading(%d)", tc.n)
	}
}

func TestExpandNumbers(t *testing.T) {
	assert.Equal(t, "第yī bǎi líng wǔ课", ExpandNumbers("第105课"))
	assert.Equal(t, "wǔ plus shí", ExpandNumbers("5 plus 10"))
	assert.Equal(t, "líng líng qī", ExpandNumbers("007")) // leading zeros digit by digit
	assert.Equal(t, "no digits", ExpandNumbers("no digits"))
}
