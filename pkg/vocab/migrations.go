package vocab

// migrationsSQL is applied statement by statement on startup. Statements are
// idempotent so reruns against an existing database are safe.
const migrationsSQL = `
CREATE TABLE IF NOT EXISTS words (
	id TEXT PRIMARY KEY,
	word TEXT NOT NULL,
	pinyin TEXT NOT NULL DEFAULT '',
	definitions TEXT NOT NULL DEFAULT '[]',
	characters TEXT NOT NULL DEFAULT '[]',
	lookup_count INTEGER NOT NULL DEFAULT 1,
	first_seen_at INTEGER NOT NULL,
	last_seen_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS contexts (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	word_id TEXT NOT NULL REFERENCES words(id) ON DELETE CASCADE,
	sentence TEXT NOT NULL,
	source_url TEXT NOT NULL DEFAULT '',
	created_at INTEGER NOT NULL,
	UNIQUE(word_id, sentence)
);

CREATE INDEX IF NOT EXISTS idx_contexts_word ON contexts(word_id);

CREATE INDEX IF NOT EXISTS idx_words_last_seen ON words(last_seen_at);

CREATE INDEX IF NOT EXISTS idx_words_lookup_count ON words(lookup_count)
`
