package gloss

import "sort"

// Collection is the result of resolving one word against the dictionary.
// It is a closed set of variants; consumers branch with a type switch
// rather than inspecting shapes at runtime.
type Collection interface {
	collection()
}

// NotFound marks a word with no index hit that could not be usefully
// decomposed into smaller units.
type NotFound struct{}

// KanaOnly is a word matched directly by its kana reading. Glosses are the
// flattened union of every sense across every entry for that reading, in
// index order, duplicates preserved.
type KanaOnly struct {
	Glosses []string
}

// KanjiWithReadings is a word matched by its kanji surface form. Each kana
// reading maps to its own flattened gloss list, computed independently.
type KanjiWithReadings struct {
	Readings map[string][]string
}

// Decomposed is a word that missed both indices but re-segmented into two or
// more tokens, each resolved on its own. Sub-results may themselves be
// NotFound or further Decomposed.
type Decomposed struct {
	Sub map[string]Collection
}

func (NotFound) collection()          {}
func (KanaOnly) collection()          {}
func (KanjiWithReadings) collection() {}
func (Decomposed) collection()        {}

// ReportMap collects one Collection per processed word, keyed by the word
// itself. Processing the same word twice overwrites the earlier result.
type ReportMap map[string]Collection

// Flatten returns every gloss reachable in a collection as one flat list:
// readings and sub-tokens in ascending order, gloss order preserved within
// each, duplicates kept. NotFound flattens to nothing.
func Flatten(c Collection) []string {
	switch v := c.(type) {
	case KanaOnly:
		return v.Glosses
	case KanjiWithReadings:
		readings := make([]string, 0, len(v.Readings))
		for r := range v.Readings {
			readings = append(readings, r)
		}
		sort.Strings(readings)
		var out []string
		for _, r := range readings {
			out = append(out, v.Readings[r]...)
		}
		return out
	case Decomposed:
		subs := make([]string, 0, len(v.Sub))
		for s := range v.Sub {
			subs = append(subs, s)
		}
		sort.Strings(subs)
		var out []string
		for _, s := range subs {
			out = append(out, Flatten(v.Sub[s])...)
		}
		return out
	default:
		return nil
	}
}
