package gloss

import "strings"

// Aggregator drives the engine across whole texts and word lists.
type Aggregator struct {
	eng *Engine
	tok Tokenizer
}

// NewAggregator wires an aggregator to an engine and the tokenizer used for
// sentence segmentation. Passing the same tokenizer the engine decomposes
// with is the normal setup.
func NewAggregator(eng *Engine, tok Tokenizer) *Aggregator {
	return &Aggregator{eng: eng, tok: tok}
}

// TranslateSentence renders a best-effort translation: each token's first
// gloss, space-separated, with Unknown standing in for unresolved tokens.
// Every token contributes a trailing separator, including the last one.
func (a *Aggregator) TranslateSentence(text string) string {
	var b strings.Builder
	for _, w := range a.tok.Tokenize(text) {
		b.WriteString(a.eng.ResolveFirst(w))
		b.WriteByte(' ')
	}
	return b.String()
}

// BuildReport resolves each word fully and collects the results keyed by the
// original word. Unlike TranslateSentence this is non-lossy: every reading
// and every gloss survives, for auditing rather than fluent output.
func (a *Aggregator) BuildReport(words []string) ReportMap {
	m := make(ReportMap, len(words))
	for _, w := range words {
		m[w] = a.eng.Resolve(w)
	}
	return m
}
