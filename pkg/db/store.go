package db

import (
	"database/sql"
	"fmt"
	"strings"
	"time"
)

// DBExecutor is an interface that allows methods to accept either *sql.DB or *sql.Tx
type DBExecutor interface {
	Exec(query string, args ...interface{}) (sql.Result, error)
	Query(query string, args ...interface{}) (*sql.Rows, error)
	QueryRow(query string, args ...interface{}) *sql.Row
}

// isUniqueConstraintErr returns true when the error indicates a unique/constraint violation
func isUniqueConstraintErr(err error) bool {
	if err == nil {
		return false
	}
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "unique") || strings.Contains(s, "constraint failed")
}

// UpsertWord inserts a word or updates its reading and glosses, returning the
// row id. An empty reading or gloss string never clobbers stored values.
func UpsertWord(db DBExecutor, word, reading, glosses, language string) (int64, error) {
	trimmed := strings.TrimSpace(word)
	if trimmed == "" {
		return 0, fmt.Errorf("word must be non-empty")
	}
	if language == "" {
		language = "ja"
	}

	var id int64
	query := `INSERT INTO words (word, reading, glosses, language)
			  VALUES (?, ?, ?, ?)
			  ON CONFLICT(word, language)
			  DO UPDATE SET
			    reading = COALESCE(NULLIF(excluded.reading, ''), words.reading),
				glosses = COALESCE(NULLIF(excluded.glosses, ''), words.glosses)
			  RETURNING id`

	err := db.QueryRow(query, trimmed, reading, glosses, language).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("upsert word: %w", err)
	}
	return id, nil
}

// CreateOrGetSource returns an existing source id or inserts a new source and returns its id.
func CreateOrGetSource(db DBExecutor, sourceType, title, url string) (int64, error) {
	trimmedType := strings.TrimSpace(sourceType)
	if trimmedType == "" {
		return 0, fmt.Errorf("sourceType must be non-empty")
	}

	const maxRetries = 3

	var id int64
	for attempt := 0; attempt < maxRetries; attempt++ {
		err := db.QueryRow(
			`SELECT id FROM sources WHERE source_type = ? AND title = ? AND url = ?`,
			trimmedType, title, url,
		).Scan(&id)
		if err == nil {
			return id, nil
		}
		if err != sql.ErrNoRows {
			return 0, err
		}

		res, err := db.Exec(
			`INSERT INTO sources (source_type, title, url) VALUES (?, ?, ?)`,
			trimmedType, title, url,
		)
		if err != nil {
			// A concurrent insert of the same source loses the race; retry the SELECT.
			if isUniqueConstraintErr(err) {
				continue
			}
			return 0, err
		}
		return res.LastInsertId()
	}

	return 0, fmt.Errorf("could not create or get source after %d retries", maxRetries)
}

// LinkWordToSource records that a word was seen in a source, bumping the
// occurrence count when the link already exists.
func LinkWordToSource(db DBExecutor, wordID, sourceID int64, count int) error {
	if wordID <= 0 {
		return fmt.Errorf("wordID must be positive")
	}
	if sourceID <= 0 {
		return fmt.Errorf("sourceID must be positive")
	}
	if count < 1 {
		return fmt.Errorf("count must be positive, got %d", count)
	}

	_, err := db.Exec(`INSERT INTO word_sources (word_id, source_id, occurrence_count, first_seen_at)
	VALUES (?, ?, ?, ?)
	ON CONFLICT(word_id, source_id) DO UPDATE SET
	  occurrence_count = word_sources.occurrence_count + excluded.occurrence_count`,
		wordID, sourceID, count, time.Now())
	return err
}

// GetWordsBySource returns words associated with a given source id.
func GetWordsBySource(db DBExecutor, sourceID int64) ([]Word, error) {
	rows, err := db.Query(`SELECT w.id, w.word, w.reading, w.glosses, w.language
		FROM words w JOIN word_sources ws ON ws.word_id = w.id
		WHERE ws.source_id = ?
		ORDER BY w.word`, sourceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Word
	for rows.Next() {
		var w Word
		if err := rows.Scan(&w.ID, &w.Word, &w.Reading, &w.Glosses, &w.Language); err != nil {
			return nil, err
		}
		out = append(out, w)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
