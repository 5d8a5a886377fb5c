// Package charinfo resolves per-character radical, stroke, and component
// metadata and tracks which characters have been seen containing each
// component.
package charinfo

import (
	"github.com/weiyin/cidian/pkg/dictionary"
	"github.com/weiyin/cidian/pkg/segment"
)

// CharacterInfo is the resolved metadata for a single Han character.
type CharacterInfo struct {
	Character      string   `json:"character"`
	Radical        string   `json:"radical"`
	RadicalMeaning string   `json:"radicalMeaning,omitempty"`
	StrokeCount    int      `json:"strokeCount"`
	Components     []string `json:"components,omitempty"`
}

// Resolver answers metadata queries against the character index.
type Resolver struct {
	idx *dictionary.CharIndex
}

// NewResolver wraps a loaded character index.
func NewResolver(idx *dictionary.CharIndex) *Resolver {
	return &Resolver{idx: idx}
}

// Resolve never fails: on an index miss it returns a degraded record whose
// radical is the character itself and whose stroke count is 0 (unknown).
func (r *Resolver) Resolve(ch string) CharacterInfo {
	entry, ok := r.idx.Char(ch)
	if !ok {
		return CharacterInfo{Character: ch, Radical: ch}
	}
	radical := entry.Radical
	if radical == "" {
		radical = ch
	}
	return CharacterInfo{
		Character:      ch,
		Radical:        radical,
		RadicalMeaning: r.idx.RadicalMeaning(radical),
		StrokeCount:    entry.Strokes,
		Components:     entry.Components,
	}
}

// ResolveWord resolves every Han character of a word in order.
func (r *Resolver) ResolveWord(word string) []CharacterInfo {
	var out []CharacterInfo
	for _, rn := range word {
		if segment.IsHan(rn) {
			out = append(out, r.Resolve(string(rn)))
		}
	}
	return out
}
