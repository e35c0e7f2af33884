package gloss

import (
	"github.com/nephila-nacrea/yakusu/pkg/dictionary"
)

// Unknown is the sentinel returned by ResolveFirst for words that miss both
// indices. It is a value, not an error; missing vocabulary is expected.
const Unknown = "UNKNOWN"

// maxDepth bounds phrase decomposition. A well-behaved segmenter converges
// to irreducible tokens long before this; the guard protects against one
// that never does.
const maxDepth = 16

// Tokenizer segments text into an ordered sequence of non-empty word tokens.
// *segment.Segmenter satisfies this; tests substitute fakes.
type Tokenizer interface {
	Tokenize(text string) []string
}

// Engine resolves single words against a prebuilt dictionary index, falling
// back to recursive phrase decomposition through the injected tokenizer.
// The index must be fully built and read-only before the first call; the
// engine itself holds no mutable state and is safe for concurrent readers.
type Engine struct {
	dict *dictionary.Index
	tok  Tokenizer
}

// NewEngine creates an engine over a read-only index and a shared tokenizer.
func NewEngine(dict *dictionary.Index, tok Tokenizer) *Engine {
	return &Engine{dict: dict, tok: tok}
}

// Resolve looks a word up and returns its gloss collection. Kanji surface
// forms win over kana readings; words missing from both indices are handed
// back to the tokenizer and, if they split into two or more tokens, each
// piece is resolved recursively.
func (e *Engine) Resolve(word string) Collection {
	return e.resolve(word, 0)
}

func (e *Engine) resolve(word string, depth int) Collection {
	if e.dict.HasKanji(word) {
		readings := make(map[string][]string)
		for _, r := range e.dict.Readings(word) {
			glosses, _ := e.dict.FlattenReading(r)
			readings[r] = glosses
		}
		return KanjiWithReadings{Readings: readings}
	}

	if glosses, ok := e.dict.FlattenReading(word); ok {
		return KanaOnly{Glosses: glosses}
	}

	if depth >= maxDepth {
		return NotFound{}
	}
	parts := e.tok.Tokenize(word)
	if len(parts) < 2 {
		// No useful split; the word is irreducible.
		return NotFound{}
	}
	sub := make(map[string]Collection, len(parts))
	for _, p := range parts {
		sub[p] = e.resolve(p, depth+1)
	}
	return Decomposed{Sub: sub}
}

// ResolveFirst returns a single gloss for sentence rendering: the first
// gloss of the first entry under the lexicographically smallest reading.
// It never decomposes; unresolved words yield the Unknown sentinel.
func (e *Engine) ResolveFirst(word string) string {
	if e.dict.HasKanji(word) {
		readings := e.dict.Readings(word)
		if len(readings) > 0 {
			if g, ok := e.dict.FirstGloss(readings[0]); ok {
				return g
			}
		}
		return Unknown
	}
	if g, ok := e.dict.FirstGloss(word); ok {
		return g
	}
	return Unknown
}
