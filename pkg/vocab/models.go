package vocab

import (
	"errors"

	"github.com/weiyin/cidian/pkg/charinfo"
)

// MaxContexts caps the context sentences kept per entry. Once full, new
// contexts are dropped rather than evicting old ones.
const MaxContexts = 5

// Compact-record limits. The replica channel has a hard quota, so the
// projection is lossy by design.
const (
	MaxCompactDefinitions = 3
	MaxDefinitionLen      = 100
	MaxReplicaBytes       = 100_000
)

// ErrNotFound reports a missing vocabulary record.
var ErrNotFound = errors.New("vocab: entry not found")

// ErrQuotaExceeded reports that an outbound replica write would overflow the
// replication channel's byte budget. The local store stays authoritative;
// only the outward projection is withheld.
var ErrQuotaExceeded = errors.New("vocab: replica quota exceeded")

// Context is one sighting of a word: the sentence it appeared in and where.
type Context struct {
	Sentence  string `json:"sentence"`
	SourceURL string `json:"sourceUrl,omitempty"`
	Timestamp int64  `json:"timestamp"`
}

// Entry is the authoritative local record for one word, keyed by its
// NFC-normalized form. Created on first lookup, mutated in place afterwards,
// never replaced.
type Entry struct {
	ID          string
	Word        string
	Pinyin      string
	Definitions []string
	Characters  []charinfo.CharacterInfo
	LookupCount int64
	FirstSeenAt int64 // epoch millis
	LastSeenAt  int64
	Contexts    []Context
}

// CompactRecord is the quota-bounded projection of an Entry sent across the
// replication boundary. It drops contexts and character metadata; other
// devices only need enough to reconstruct a usable stub.
type CompactRecord struct {
	Word        string   `json:"w"`
	Pinyin      string   `json:"p,omitempty"`
	Definitions []string `json:"d,omitempty"`
	LookupCount int64    `json:"n"`
	FirstSeenAt int64    `json:"f"`
	LastSeenAt  int64    `json:"l"`
}

// Compact projects an entry into its replica form.
func Compact(e *Entry) CompactRecord {
	defs := e.Definitions
	if len(defs) > MaxCompactDefinitions {
		defs = defs[:MaxCompactDefinitions]
	}
	out := make([]string, len(defs))
	for i, d := range defs {
		if rs := []rune(d); len(rs) > MaxDefinitionLen {
			d = string(rs[:MaxDefinitionLen])
		}
		out[i] = d
	}
	return CompactRecord{
		Word:        e.Word,
		Pinyin:      e.Pinyin,
		Definitions: out,
		LookupCount: e.LookupCount,
		FirstSeenAt: e.FirstSeenAt,
		LastSeenAt:  e.LastSeenAt,
	}
}

// SortBy selects the ordering of List results.
type SortBy string

const (
	SortByLookupCount SortBy = "lookup-count"
	SortByLastSeen    SortBy = "last-seen"
	SortByPinyin      SortBy = "pinyin"
)
