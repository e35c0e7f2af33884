// Package report renders gloss report maps as deterministic tab-separated
// records. Fields are written verbatim: a gloss containing a tab or newline
// will shift that row's columns. That is a known limitation of the format,
// not something this package detects or repairs.
package report

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/nephila-nacrea/yakusu/pkg/gloss"
)

// NoEntryFound is the marker emitted for words that resolved to nothing.
const NoEntryFound = "NO_ENTRY_FOUND"

// Serialize flattens a report map into records, one slice of fields per row.
// Keys are emitted in ascending codepoint order regardless of insertion
// order, so repeated calls on the same map produce identical output.
func Serialize(m gloss.ReportMap) [][]string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var records [][]string
	for _, k := range keys {
		records = append(records, serializeWord(k, m[k])...)
	}
	return records
}

func serializeWord(key string, c gloss.Collection) [][]string {
	switch v := c.(type) {
	case gloss.KanjiWithReadings:
		readings := make([]string, 0, len(v.Readings))
		for r := range v.Readings {
			readings = append(readings, r)
		}
		sort.Strings(readings)

		records := make([][]string, 0, len(readings))
		for _, r := range readings {
			records = append(records, []string{key, r, strings.Join(v.Readings[r], "\t")})
		}
		return records

	case gloss.KanaOnly:
		return [][]string{{key, strings.Join(v.Glosses, "\t")}}

	case gloss.Decomposed:
		// Decomposition dissolves into its sub-tokens' own rows; the parent
		// word never appears as a key.
		subs := make([]string, 0, len(v.Sub))
		for s := range v.Sub {
			subs = append(subs, s)
		}
		sort.Strings(subs)

		var records [][]string
		for _, s := range subs {
			records = append(records, serializeWord(s, v.Sub[s])...)
		}
		return records

	default:
		return [][]string{{key, NoEntryFound}}
	}
}

// Write emits the serialized records to w, fields joined by tabs and each
// record terminated by a single linefeed.
func Write(w io.Writer, m gloss.ReportMap) error {
	for _, rec := range Serialize(m) {
		if _, err := io.WriteString(w, strings.Join(rec, "\t")+"\n"); err != nil {
			return err
		}
	}
	return nil
}

// WriteFile writes the report to path. Failure to open or write the file is
// fatal to the run and comes back wrapped with the underlying I/O reason.
func WriteFile(path string, m gloss.ReportMap) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("open report file %s: %w", path, err)
	}
	if err := Write(f, m); err != nil {
		f.Close()
		return fmt.Errorf("write report file %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close report file %s: %w", path, err)
	}
	return nil
}
