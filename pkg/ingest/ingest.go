package ingest

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"

	"github.com/nephila-nacrea/yakusu/pkg/db"
	"github.com/nephila-nacrea/yakusu/pkg/dictionary"
	"github.com/nephila-nacrea/yakusu/pkg/gloss"
	"github.com/nephila-nacrea/yakusu/pkg/segment"
)

// Analyzer produces tokens with readings for a sentence.
// *segment.Segmenter satisfies it; tests inject fakes.
type Analyzer interface {
	Analyze(text string) []segment.Token
}

// Ingester resolves the words of a document and persists them with their
// glosses and occurrence counts.
type Ingester struct {
	DB     *sql.DB
	Engine *gloss.Engine
	Seg    Analyzer

	// BatchSize is the number of word rows written per transaction.
	BatchSize int
	Workers   int
	// Logger is used for informational messages. nil means no logging.
	Logger *log.Logger
	// OnProgress is called after each persisted sentence with the running
	// count and the total.
	OnProgress func(current, total int)
}

// NewIngester creates an Ingester with default batching and concurrency.
func NewIngester(conn *sql.DB, eng *gloss.Engine, seg Analyzer) *Ingester {
	return &Ingester{
		DB:        conn,
		Engine:    eng,
		Seg:       seg,
		BatchSize: 50,
		Workers:   4,
	}
}

// wordData holds prepared data for one distinct word within a sentence.
type wordData struct {
	Word    string
	Reading string
	Glosses string
	Count   int
}

// Ingest processes sentences and saves their words to the database, linking
// each to sourceID. Sentences are resolved concurrently; writes happen in
// batched transactions. Returns the number of word occurrences linked.
func (ig *Ingester) Ingest(ctx context.Context, sourceID int64, sentences []string) (int, error) {
	if len(sentences) == 0 {
		return 0, nil
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	pool := NewWorkerPool(ig.Workers, ig.Workers*2)
	pool.Start(ctx)

	results := make(chan []wordData, ig.Workers*2)

	go func() {
		defer close(results)
		for _, s := range sentences {
			sentence := s
			err := pool.SubmitCtx(ctx, func(ctx context.Context) error {
				words := ig.processSentence(sentence)
				select {
				case results <- words:
					return nil
				case <-ctx.Done():
					return ctx.Err()
				}
			})
			if err != nil {
				break
			}
		}
		pool.Close()
	}()

	linked := 0
	done := 0
	batch := make([]wordData, 0, ig.BatchSize)

	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		tx, err := ig.DB.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("begin batch tx: %w", err)
		}
		defer tx.Rollback()

		for _, w := range batch {
			wordID, err := db.UpsertWord(tx, w.Word, w.Reading, w.Glosses, "ja")
			if err != nil {
				return fmt.Errorf("persist word %s: %w", w.Word, err)
			}
			if err := db.LinkWordToSource(tx, wordID, sourceID, w.Count); err != nil {
				return fmt.Errorf("link word %s: %w", w.Word, err)
			}
			linked += w.Count
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit batch (%d words): %w", len(batch), err)
		}
		batch = batch[:0]
		return nil
	}

	for words := range results {
		batch = append(batch, words...)
		if len(batch) >= ig.BatchSize {
			if err := flush(); err != nil {
				cancel()
				// Drain so producers are not stuck on a full channel.
				for range results {
				}
				return linked, err
			}
		}
		done++
		if ig.OnProgress != nil {
			ig.OnProgress(done, len(sentences))
		}
	}
	if err := flush(); err != nil {
		return linked, err
	}

	if err := ctx.Err(); err != nil {
		return linked, err
	}
	if ig.Logger != nil {
		ig.Logger.Printf("ingested %d sentences, %d word occurrences", done, linked)
	}
	return linked, nil
}

// processSentence tokenizes one sentence and resolves each distinct word,
// counting repeat occurrences within the sentence.
func (ig *Ingester) processSentence(sentence string) []wordData {
	var words []wordData
	index := make(map[string]int)

	for _, tok := range ig.Seg.Analyze(sentence) {
		if i, ok := index[tok.Surface]; ok {
			words[i].Count++
			continue
		}
		reading := dictionary.ToHiragana(tok.Reading)
		glosses := strings.Join(gloss.Flatten(ig.Engine.Resolve(tok.Surface)), "\t")
		index[tok.Surface] = len(words)
		words = append(words, wordData{
			Word:    tok.Surface,
			Reading: reading,
			Glosses: glosses,
			Count:   1,
		})
	}
	return words
}
