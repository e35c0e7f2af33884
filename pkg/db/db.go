package db

import (
	"database/sql"
	"strings"

	_ "github.com/mattn/go-sqlite3"
)

const migrationsSQL = `
CREATE TABLE IF NOT EXISTS sources (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	source_type TEXT NOT NULL,
	title TEXT NOT NULL DEFAULT '',
	url TEXT NOT NULL DEFAULT '',
	added_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
	UNIQUE(source_type, title, url)
);

CREATE TABLE IF NOT EXISTS words (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	word TEXT NOT NULL,
	reading TEXT NOT NULL DEFAULT '',
	glosses TEXT NOT NULL DEFAULT '',
	language TEXT NOT NULL DEFAULT 'ja',
	UNIQUE(word, language)
);

CREATE TABLE IF NOT EXISTS word_sources (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	word_id INTEGER NOT NULL REFERENCES words(id),
	source_id INTEGER NOT NULL REFERENCES sources(id),
	occurrence_count INTEGER NOT NULL DEFAULT 0,
	first_seen_at TIMESTAMP,
	UNIQUE(word_id, source_id)
);

CREATE INDEX IF NOT EXISTS idx_word_sources_source ON word_sources(source_id)
`

// InitDB runs migrations on the given DB connection using the embedded SQL.
func InitDB(db *sql.DB) error {
	stmts := strings.Split(migrationsSQL, ";")
	for _, s := range stmts {
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
