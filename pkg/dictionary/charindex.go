package dictionary

import (
	"encoding/json"
	"fmt"
	"os"

	"go.uber.org/zap"
)

// CharEntry is the raw per-character record from the character data file.
type CharEntry struct {
	Character  string   `json:"character"`
	Radical    string   `json:"radical"`
	Strokes    int      `json:"strokes"`
	Components []string `json:"components,omitempty"`
}

// CharIndex maps single characters to radical/stroke/component data and
// radical codes to a human-readable gloss. Immutable after load.
type CharIndex struct {
	chars    map[string]CharEntry
	radicals map[string]string
}

// NewCharIndex builds an index from raw character entries and radical glosses.
func NewCharIndex(chars []CharEntry, radicals map[string]string) *CharIndex {
	idx := &CharIndex{
		chars:    make(map[string]CharEntry, len(chars)),
		radicals: radicals,
	}
	if idx.radicals == nil {
		idx.radicals = map[string]string{}
	}
	for _, c := range chars {
		if c.Character != "" {
			idx.chars[c.Character] = c
		}
	}
	return idx
}

// Char returns the record for a single character, if present.
func (x *CharIndex) Char(ch string) (CharEntry, bool) {
	e, ok := x.chars[ch]
	return e, ok
}

// RadicalMeaning returns the gloss for a radical, or "" when unknown.
func (x *CharIndex) RadicalMeaning(radical string) string {
	return x.radicals[radical]
}

// Len returns the number of indexed characters.
func (x *CharIndex) Len() int { return len(x.chars) }

// LoadCharIndex reads the character data JSON file:
//
//	{ "characters": [ {...}, ... ], "radicals": { "女": "woman", ... } }
//
// A bare array of character records is also accepted (no radical glosses).
func LoadCharIndex(path string) (*CharIndex, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var wrapper struct {
		Characters []CharEntry       `json:"characters"`
		Radicals   map[string]string `json:"radicals"`
	}
	dec := json.NewDecoder(f)
	if err := dec.Decode(&wrapper); err == nil && len(wrapper.Characters) > 0 {
		return NewCharIndex(wrapper.Characters, wrapper.Radicals), nil
	}

	if _, err := f.Seek(0, 0); err != nil {
		return nil, err
	}
	var chars []CharEntry
	dec = json.NewDecoder(f)
	if err := dec.Decode(&chars); err != nil {
		return nil, fmt.Errorf("parse character data as object or array: %w", err)
	}
	return NewCharIndex(chars, nil), nil
}

// LoadCharIndexOrEmpty loads the character index and degrades to an empty
// index on failure, mirroring LoadOrEmpty.
func LoadCharIndexOrEmpty(path string, log *zap.Logger) *CharIndex {
	idx, err := LoadCharIndex(path)
	if err != nil {
		log.Warn("character data unavailable, continuing with empty index",
			zap.String("path", path), zap.Error(err))
		return NewCharIndex(nil, nil)
	}
	log.Info("character data loaded",
		zap.String("path", path), zap.Int("characters", idx.Len()))
	return idx
}
