package db

import "time"

// Word is the canonical vocabulary entry: a surface form with its reading
// and the tab-joined gloss list looked up for it.
type Word struct {
	ID       int64
	Word     string
	Reading  string
	Glosses  string
	Language string
}

// Source is a provenance record for where a word was seen.
type Source struct {
	ID         int64
	SourceType string
	Title      string
	URL        string
	AddedAt    time.Time
}

// WordSource links a Word with a Source and counts occurrences.
type WordSource struct {
	ID              int64
	WordID          int64
	SourceID        int64
	OccurrenceCount int
	FirstSeenAt     time.Time
}
