package dictionary

import (
	"encoding/json"
	"fmt"
	"os"

	"go.uber.org/zap"
)

// Entry is one dictionary-source record. Many entries may share the same
// headword (homographs and separate senses keep their own Entry).
type Entry struct {
	Word        string   `json:"word"`
	Traditional string   `json:"traditional,omitempty"`
	PinyinRaw   string   `json:"pinyin"` // numeric-tone syllables, e.g. "ni3 hao3"
	Definitions []string `json:"definitions"`
	HSKLevel    int      `json:"hsk,omitempty"`
}

// Dict is an immutable headword index. Both the simplified and traditional
// forms of an entry are filed as keys, so lookups work on either script.
type Dict struct {
	entries map[string][]Entry
	maxLen  int // longest headword in runes
}

// NewDict builds an index from raw entries. Used directly by tests; production
// code goes through Load.
func NewDict(entries []Entry) *Dict {
	d := &Dict{entries: make(map[string][]Entry, len(entries))}
	for _, e := range entries {
		d.add(e.Word, e)
		if e.Traditional != "" && e.Traditional != e.Word {
			d.add(e.Traditional, e)
		}
	}
	return d
}

func (d *Dict) add(key string, e Entry) {
	if key == "" {
		return
	}
	d.entries[key] = append(d.entries[key], e)
	if n := len([]rune(key)); n > d.maxLen {
		d.maxLen = n
	}
}

// Lookup returns every sense filed under the given headword, in source order.
func (d *Dict) Lookup(word string) []Entry {
	return d.entries[word]
}

// Len returns the number of distinct headwords.
func (d *Dict) Len() int { return len(d.entries) }

// MaxHeadwordLen returns the longest headword length in runes.
func (d *Dict) MaxHeadwordLen() int { return d.maxLen }

// Load reads a word dictionary JSON file and builds the index.
// Accepts either an object wrapper { "words": [...] } or a bare array [...],
// since published CEDICT conversions use both shapes.
func Load(path string) (*Dict, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var wrapper struct {
		Words []Entry `json:"words"`
	}
	dec := json.NewDecoder(f)
	if err := dec.Decode(&wrapper); err == nil && len(wrapper.Words) > 0 {
		return NewDict(wrapper.Words), nil
	}

	if _, err := f.Seek(0, 0); err != nil {
		return nil, err
	}
	var entries []Entry
	dec = json.NewDecoder(f)
	if err := dec.Decode(&entries); err != nil {
		return nil, fmt.Errorf("parse dictionary as object or array: %w", err)
	}
	return NewDict(entries), nil
}

// LoadOrEmpty loads the dictionary and degrades to an empty index on failure.
// A missing or corrupt data file must never take lookups down with it; the
// pipeline still terminates with placeholder segments.
func LoadOrEmpty(path string, log *zap.Logger) *Dict {
	d, err := Load(path)
	if err != nil {
		log.Warn("word dictionary unavailable, continuing with empty index",
			zap.String("path", path), zap.Error(err))
		return NewDict(nil)
	}
	log.Info("word dictionary loaded",
		zap.String("path", path), zap.Int("headwords", d.Len()))
	return d
}
