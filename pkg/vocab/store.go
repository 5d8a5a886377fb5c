// Package vocab is the authoritative local vocabulary store plus its compact,
// quota-bounded replica projection and the deterministic merge between them.
package vocab

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"

	"github.com/weiyin/cidian/pkg/charinfo"
	"github.com/weiyin/cidian/pkg/segment"
)

// Store persists vocabulary entries in SQLite. Per-key save atomicity comes
// from single-statement upserts: the read-modify-write for a given normalized
// key never interleaves with another save of the same key.
type Store struct {
	db  *sql.DB
	log *zap.Logger
	now func() int64
}

// NewStore wraps an opened database connection. The caller owns the
// connection's lifecycle.
func NewStore(db *sql.DB, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{db: db, now: func() int64 { return time.Now().UnixMilli() }, log: log}
}

// Open opens (creating if needed) the SQLite database at path and applies
// migrations.
func Open(path string, log *zap.Logger) (*Store, *sql.DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, nil, fmt.Errorf("open database: %w", err)
	}
	if err := InitDB(db); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("migrate database: %w", err)
	}
	return NewStore(db, log), db, nil
}

// InitDB runs migrations on the given DB connection using the embedded SQL.
func InitDB(db *sql.DB) error {
	for _, s := range strings.Split(migrationsSQL, ";") {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if _, err := db.Exec(s); err != nil {
			return err
		}
	}
	return nil
}

// SaveInput carries one lookup's contribution to the store.
type SaveInput struct {
	Word        string
	Pinyin      string
	Definitions []string
	Characters  []charinfo.CharacterInfo
	Context     *Context // optional sighting
}

// SaveOrUpdate creates the entry on first sight or folds the new lookup into
// the existing record: lookup_count always advances by exactly one,
// definitions and characters are only replaced by non-empty values, and the
// context is kept only while the entry holds fewer than MaxContexts distinct
// sentences.
func (s *Store) SaveOrUpdate(ctx context.Context, in SaveInput) (*Entry, error) {
	id := segment.NormalizeKey(in.Word)
	if id == "" {
		return nil, fmt.Errorf("save: word must be non-empty")
	}
	now := s.now()

	defsJSON, err := marshalList(in.Definitions)
	if err != nil {
		return nil, fmt.Errorf("save %s: encode definitions: %w", id, err)
	}
	charsJSON, err := marshalList(in.Characters)
	if err != nil {
		return nil, fmt.Errorf("save %s: encode characters: %w", id, err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO words (id, word, pinyin, definitions, characters, lookup_count, first_seen_at, last_seen_at)
		VALUES (?, ?, ?, ?, ?, 1, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
		  lookup_count = words.lookup_count + 1,
		  last_seen_at = excluded.last_seen_at,
		  pinyin = CASE WHEN excluded.pinyin <> '' THEN excluded.pinyin ELSE words.pinyin END,
		  definitions = CASE WHEN excluded.definitions <> '[]' THEN excluded.definitions ELSE words.definitions END,
		  characters = CASE WHEN excluded.characters <> '[]' THEN excluded.characters ELSE words.characters END`,
		id, id, in.Pinyin, defsJSON, charsJSON, now, now)
	if err != nil {
		return nil, fmt.Errorf("upsert word %s: %w", id, err)
	}

	if in.Context != nil && strings.TrimSpace(in.Context.Sentence) != "" {
		ts := in.Context.Timestamp
		if ts == 0 {
			ts = now
		}
		// Drop-new at the cap; the UNIQUE(word_id, sentence) constraint
		// handles dedup by sentence text.
		_, err = s.db.ExecContext(ctx, `
			INSERT INTO contexts (word_id, sentence, source_url, created_at)
			SELECT ?, ?, ?, ?
			WHERE (SELECT COUNT(*) FROM contexts WHERE word_id = ?) < ?
			ON CONFLICT(word_id, sentence) DO NOTHING`,
			id, strings.TrimSpace(in.Context.Sentence), in.Context.SourceURL, ts, id, MaxContexts)
		if err != nil {
			return nil, fmt.Errorf("save context for %s: %w", id, err)
		}
	}

	return s.Get(ctx, id)
}

// Get fetches one entry by word; the argument is normalized before lookup.
// Returns ErrNotFound when absent.
func (s *Store) Get(ctx context.Context, word string) (*Entry, error) {
	id := segment.NormalizeKey(word)
	row := s.db.QueryRowContext(ctx, `
		SELECT id, word, pinyin, definitions, characters, lookup_count, first_seen_at, last_seen_at
		FROM words WHERE id = ?`, id)
	e, err := scanEntry(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get word %s: %w", id, err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT sentence, source_url, created_at FROM contexts
		WHERE word_id = ? ORDER BY id`, id)
	if err != nil {
		return nil, fmt.Errorf("get contexts for %s: %w", id, err)
	}
	defer rows.Close()
	for rows.Next() {
		var c Context
		if err := rows.Scan(&c.Sentence, &c.SourceURL, &c.Timestamp); err != nil {
			return nil, err
		}
		e.Contexts = append(e.Contexts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return e, nil
}

// List returns every entry in the requested order. Contexts are attached in
// a single follow-up query.
func (s *Store) List(ctx context.Context, sortBy SortBy) ([]Entry, error) {
	order := "last_seen_at DESC"
	switch sortBy {
	case SortByLookupCount:
		order = "lookup_count DESC, last_seen_at DESC"
	case SortByPinyin:
		order = "pinyin COLLATE NOCASE ASC, id ASC"
	case SortByLastSeen, "":
		order = "last_seen_at DESC"
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, word, pinyin, definitions, characters, lookup_count, first_seen_at, last_seen_at
		FROM words ORDER BY `+order)
	if err != nil {
		return nil, fmt.Errorf("list words: %w", err)
	}
	defer rows.Close()

	var out []Entry
	index := make(map[string]int)
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		index[e.ID] = len(out)
		out = append(out, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	crows, err := s.db.QueryContext(ctx, `
		SELECT word_id, sentence, source_url, created_at FROM contexts ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list contexts: %w", err)
	}
	defer crows.Close()
	for crows.Next() {
		var wordID string
		var c Context
		if err := crows.Scan(&wordID, &c.Sentence, &c.SourceURL, &c.Timestamp); err != nil {
			return nil, err
		}
		if i, ok := index[wordID]; ok {
			out[i].Contexts = append(out[i].Contexts, c)
		}
	}
	if err := crows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// CharactersWithComponent returns stored character metadata for characters
// whose radical or component list includes the given component.
func (s *Store) CharactersWithComponent(ctx context.Context, component string) ([]charinfo.CharacterInfo, error) {
	entries, err := s.List(ctx, SortByLastSeen)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]struct{})
	var out []charinfo.CharacterInfo
	for _, e := range entries {
		for _, ch := range e.Characters {
			if _, dup := seen[ch.Character]; dup {
				continue
			}
			if ch.Radical == component || contains(ch.Components, component) {
				seen[ch.Character] = struct{}{}
				out = append(out, ch)
			}
		}
	}
	return out, nil
}

// MergeRemote folds one replicated compact record into the store. Lookup
// counts sum additively: increments from two devices are disjoint real-world
// events and must both be counted. Timestamps merge per scalar (min first
// seen, max last seen). An absent local record becomes a stub with empty
// contexts and characters, to be backfilled by a future local lookup.
func (s *Store) MergeRemote(ctx context.Context, rec CompactRecord) error {
	id := segment.NormalizeKey(rec.Word)
	if id == "" {
		return fmt.Errorf("merge: word must be non-empty")
	}
	defsJSON, err := marshalList(rec.Definitions)
	if err != nil {
		return fmt.Errorf("merge %s: encode definitions: %w", id, err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO words (id, word, pinyin, definitions, characters, lookup_count, first_seen_at, last_seen_at)
		VALUES (?, ?, ?, ?, '[]', ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
		  lookup_count = words.lookup_count + excluded.lookup_count,
		  first_seen_at = MIN(words.first_seen_at, excluded.first_seen_at),
		  last_seen_at = MAX(words.last_seen_at, excluded.last_seen_at)`,
		id, id, rec.Pinyin, defsJSON, rec.LookupCount, rec.FirstSeenAt, rec.LastSeenAt)
	if err != nil {
		return fmt.Errorf("merge word %s: %w", id, err)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(row scanner) (*Entry, error) {
	var e Entry
	var defsJSON, charsJSON string
	if err := row.Scan(&e.ID, &e.Word, &e.Pinyin, &defsJSON, &charsJSON,
		&e.LookupCount, &e.FirstSeenAt, &e.LastSeenAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(defsJSON), &e.Definitions); err != nil {
		return nil, fmt.Errorf("decode definitions for %s: %w", e.ID, err)
	}
	if err := json.Unmarshal([]byte(charsJSON), &e.Characters); err != nil {
		return nil, fmt.Errorf("decode characters for %s: %w", e.ID, err)
	}
	return &e, nil
}

// marshalList encodes a slice as JSON, mapping nil/empty to "[]" so the
// store's "replace only with more information" CASE checks stay simple.
func marshalList(v any) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	s := string(b)
	if s == "null" {
		s = "[]"
	}
	return s, nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
