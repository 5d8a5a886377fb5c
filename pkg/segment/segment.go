// Package segment turns normalized Chinese text into an ordered sequence of
// dictionary-matched spans using longest-match-first scanning with a
// per-character fallback, and ranks pooled definitions for ambiguous words.
package segment

import (
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/weiyin/cidian/pkg/dictionary"
)

// MaxProbe caps the substring probe length, bounding the scan to O(n·6)
// dictionary lookups instead of O(n²). CEDICT headwords longer than six
// characters are rare enough to ignore.
const MaxProbe = 6

// NoDefinitionFound is the sentinel gloss carried by fallback segments for
// characters absent from the dictionary.
const NoDefinitionFound = "no definition found"

// Match is one segmented span: the matched headword and every dictionary
// sense filed under it. Unknown marks single-character fallback spans.
type Match struct {
	Word    string
	Senses  []dictionary.Entry
	Unknown bool
}

// Segmenter scans text against a headword index. Safe for concurrent use;
// the dictionary is immutable and the cache is internally synchronized.
type Segmenter struct {
	dict  *dictionary.Dict
	probe int
	cache *lru.Cache[string, []Match]
}

// New creates a Segmenter. cacheSize <= 0 disables result caching. The probe
// bound tightens to the dictionary's longest headword when that is shorter
// than MaxProbe.
func New(dict *dictionary.Dict, cacheSize int) *Segmenter {
	s := &Segmenter{dict: dict, probe: MaxProbe}
	if n := dict.MaxHeadwordLen(); n > 0 && n < s.probe {
		s.probe = n
	}
	if cacheSize > 0 {
		s.cache, _ = lru.New[string, []Match](cacheSize)
	}
	return s
}

// Segment returns contiguous, non-overlapping matches covering every Han
// character of the normalized input. Non-Chinese or empty input yields an
// empty result, never an error.
func (s *Segmenter) Segment(text string) []Match {
	normalized := Normalize(text)
	if normalized == "" {
		return nil
	}
	if s.cache != nil {
		if cached, ok := s.cache.Get(normalized); ok {
			return cached
		}
	}
	matches := s.scan(normalized)
	if s.cache != nil {
		s.cache.Add(normalized, matches)
	}
	return matches
}

func (s *Segmenter) scan(normalized string) []Match {
	// Whole-phrase priority: a full-string headword wins over any
	// decomposition, because the phrase meaning beats the compositional one.
	if senses := s.dict.Lookup(normalized); len(senses) > 0 {
		return []Match{{Word: normalized, Senses: senses}}
	}

	rs := []rune(normalized)
	var out []Match
	for i := 0; i < len(rs); {
		if !IsHan(rs[i]) {
			i++ // interior non-Han characters produce no segment
			continue
		}
		probe := s.probe
		if rest := len(rs) - i; rest < probe {
			probe = rest
		}
		matched := false
		for l := probe; l >= 1; l-- {
			word := string(rs[i : i+l])
			if senses := s.dict.Lookup(word); len(senses) > 0 {
				out = append(out, Match{Word: word, Senses: senses})
				i += l
				matched = true
				break
			}
		}
		if !matched {
			out = append(out, placeholder(string(rs[i])))
			i++
		}
	}
	return out
}

func placeholder(ch string) Match {
	return Match{
		Word: ch,
		Senses: []dictionary.Entry{{
			Word:        ch,
			Definitions: []string{NoDefinitionFound},
		}},
		Unknown: true,
	}
}
