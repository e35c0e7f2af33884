package dictionary

import "sort"

// Sense is one meaning grouping within a dictionary entry: a part-of-speech
// tag and the glosses attached to it, in dictionary order.
type Sense struct {
	PartOfSpeech string
	Glosses      []string
}

// Entry is the ordered sense list of one dictionary entry under a reading.
type Entry []Sense

// KanaIndex maps a kana reading to its entries, keyed by entry id.
type KanaIndex map[string]map[string]Entry

// KanjiIndex maps a kanji surface form to its kana readings, each paired with
// the entry id it was taken from. Every reading listed here also resolves in
// the KanaIndex built from the same entry set.
type KanjiIndex map[string]map[string]string

// Index is the read-only two-level lookup structure built from a loaded
// dictionary. It must be fully built before lookups begin; nothing mutates it
// afterwards.
type Index struct {
	Kanji KanjiIndex
	Kana  KanaIndex
}

// BuildIndex constructs the kanji and kana indices from dictionary entries.
func BuildIndex(entries []JMdictEntry) *Index {
	ix := &Index{
		Kanji: make(KanjiIndex),
		Kana:  make(KanaIndex),
	}
	for _, e := range entries {
		senses := make(Entry, 0, len(e.Sense))
		for _, s := range e.Sense {
			pos := ""
			if len(s.PartOfSpeech) > 0 {
				pos = s.PartOfSpeech[0]
			}
			glosses := make([]string, 0, len(s.Gloss))
			for _, g := range s.Gloss {
				glosses = append(glosses, g.Text)
			}
			senses = append(senses, Sense{PartOfSpeech: pos, Glosses: glosses})
		}

		for _, kana := range e.Kana {
			byEntry, ok := ix.Kana[kana.Text]
			if !ok {
				byEntry = make(map[string]Entry)
				ix.Kana[kana.Text] = byEntry
			}
			byEntry[e.Id] = senses
		}
		for _, kanji := range e.Kanji {
			byReading, ok := ix.Kanji[kanji.Text]
			if !ok {
				byReading = make(map[string]string)
				ix.Kanji[kanji.Text] = byReading
			}
			for _, kana := range e.Kana {
				byReading[kana.Text] = e.Id
			}
		}
	}
	return ix
}

// HasKanji reports whether the surface form is present in the kanji index.
func (ix *Index) HasKanji(word string) bool {
	_, ok := ix.Kanji[word]
	return ok
}

// HasKana reports whether the reading is present in the kana index.
func (ix *Index) HasKana(word string) bool {
	_, ok := ix.Kana[word]
	return ok
}

// Readings returns the kana readings recorded for a kanji surface form, in
// ascending order. Returns nil if the form is unknown.
func (ix *Index) Readings(word string) []string {
	byReading, ok := ix.Kanji[word]
	if !ok {
		return nil
	}
	readings := make([]string, 0, len(byReading))
	for r := range byReading {
		readings = append(readings, r)
	}
	sort.Strings(readings)
	return readings
}

// FlattenReading returns the union of every sense's glosses across every
// entry recorded for a reading, entry ids in ascending order, sense order
// preserved within each entry. Duplicate glosses are kept as-is; consumers
// that want multiplicity see exactly what the dictionary holds.
func (ix *Index) FlattenReading(reading string) ([]string, bool) {
	byEntry, ok := ix.Kana[reading]
	if !ok {
		return nil, false
	}
	ids := make([]string, 0, len(byEntry))
	for id := range byEntry {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var glosses []string
	for _, id := range ids {
		for _, s := range byEntry[id] {
			glosses = append(glosses, s.Glosses...)
		}
	}
	return glosses, true
}

// FirstGloss returns the first gloss for a reading under the index's
// iteration order: lowest entry id, then sense order, then gloss order.
// ok is false when the reading is unknown or carries no glosses at all.
func (ix *Index) FirstGloss(reading string) (string, bool) {
	byEntry, ok := ix.Kana[reading]
	if !ok {
		return "", false
	}
	ids := make([]string, 0, len(byEntry))
	for id := range byEntry {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		for _, s := range byEntry[id] {
			if len(s.Glosses) > 0 {
				return s.Glosses[0], true
			}
		}
	}
	return "", false
}
