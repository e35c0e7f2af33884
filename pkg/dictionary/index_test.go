package dictionary

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func sampleEntries() []JMdictEntry {
	return []JMdictEntry{
		{
			Id:    "1000001",
			Kanji: []JMdictElement{{Text: "猫", Common: true}},
			Kana:  []JMdictElement{{Text: "ねこ", Common: true}},
			Sense: []JMdictSense{
				{PartOfSpeech: []string{"n"}, Gloss: []JMdictGloss{{Text: "cat"}}},
			},
		},
		{
			Id:   "1000002",
			Kana: []JMdictElement{{Text: "ねこ"}},
			Sense: []JMdictSense{
				{PartOfSpeech: []string{"n"}, Gloss: []JMdictGloss{{Text: "kitty"}, {Text: "cat"}}},
			},
		},
		{
			Id:    "1000003",
			Kanji: []JMdictElement{{Text: "犬"}},
			Kana:  []JMdictElement{{Text: "いぬ"}, {Text: "イヌ"}},
			Sense: []JMdictSense{
				{PartOfSpeech: []string{"n"}, Gloss: []JMdictGloss{{Text: "dog"}}},
				{PartOfSpeech: []string{"n"}, Gloss: []JMdictGloss{{Text: "spy"}, {Text: "snitch"}}},
			},
		},
	}
}

func TestBuildIndexShapes(t *testing.T) {
	ix := BuildIndex(sampleEntries())

	if !ix.HasKanji("猫") || !ix.HasKanji("犬") {
		t.Fatalf("expected kanji entries for 猫 and 犬")
	}
	if ix.HasKanji("ねこ") {
		t.Errorf("kana reading should not land in the kanji index")
	}
	if !ix.HasKana("ねこ") || !ix.HasKana("いぬ") || !ix.HasKana("イヌ") {
		t.Fatalf("expected kana entries for ねこ, いぬ, イヌ")
	}

	// Every reading a kanji lists must be resolvable in the kana index.
	for kanji := range ix.Kanji {
		for _, r := range ix.Readings(kanji) {
			if !ix.HasKana(r) {
				t.Errorf("kanji %s lists reading %s missing from kana index", kanji, r)
			}
		}
	}

	readings := ix.Readings("犬")
	want := []string{"いぬ", "イヌ"}
	if !reflect.DeepEqual(readings, want) {
		t.Errorf("Readings(犬) = %v; want %v", readings, want)
	}
}

func TestFlattenReading(t *testing.T) {
	ix := BuildIndex(sampleEntries())

	// Two entries share the reading ねこ; glosses concatenate in entry id
	// order and the duplicate "cat" is preserved.
	glosses, ok := ix.FlattenReading("ねこ")
	if !ok {
		t.Fatalf("expected ねこ in kana index")
	}
	want := []string{"cat", "kitty", "cat"}
	if !reflect.DeepEqual(glosses, want) {
		t.Errorf("FlattenReading(ねこ) = %v; want %v", glosses, want)
	}

	// Multiple senses within one entry flatten in sense order.
	glosses, ok = ix.FlattenReading("いぬ")
	if !ok {
		t.Fatalf("expected いぬ in kana index")
	}
	want = []string{"dog", "spy", "snitch"}
	if !reflect.DeepEqual(glosses, want) {
		t.Errorf("FlattenReading(いぬ) = %v; want %v", glosses, want)
	}

	if _, ok := ix.FlattenReading("むぞん"); ok {
		t.Errorf("expected miss for unknown reading")
	}
}

func TestFirstGloss(t *testing.T) {
	ix := BuildIndex(sampleEntries())

	g, ok := ix.FirstGloss("ねこ")
	if !ok || g != "cat" {
		t.Errorf("FirstGloss(ねこ) = %q, %v; want \"cat\", true", g, ok)
	}
	if _, ok := ix.FirstGloss("むぞん"); ok {
		t.Errorf("expected miss for unknown reading")
	}
}

func TestLoadJMdictSimplified(t *testing.T) {
	dictContent := `
{
  "words": [
    {
      "id": "1",
      "kanji": [{"text": "犬", "common": true}],
      "kana": [{"text": "いぬ", "common": true}],
      "sense": [{"gloss": [{"text": "dog"}], "partOfSpeech": ["n"]}]
    },
    {
      "id": "2",
      "kanji": [],
      "kana": [{"text": "テスト", "common": true}],
      "sense": [{"gloss": [{"text": "test"}], "partOfSpeech": ["n", "vs"]}]
    }
  ]
}
`
	path := filepath.Join(t.TempDir(), "jmdict_test.json")
	if err := os.WriteFile(path, []byte(dictContent), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	entries, err := LoadJMdictSimplified(path)
	if err != nil {
		t.Fatalf("load dict: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}

	ix := BuildIndex(entries)
	g, ok := ix.FirstGloss("テスト")
	if !ok || g != "test" {
		t.Errorf("FirstGloss(テスト) = %q, %v; want \"test\", true", g, ok)
	}
}

func TestToHiragana(t *testing.T) {
	tests := []struct {
		in, out string
	}{
		{"ア", "あ"},
		{"カ", "か"},
		{"ガ", "が"},
		{"ン", "ん"},
		{"ー", "ー"},
		{"abc", "abc"},
		{"あいう", "あいう"},
	}
	for _, tt := range tests {
		if got := ToHiragana(tt.in); got != tt.out {
			t.Errorf("ToHiragana(%q) = %q; want %q", tt.in, got, tt.out)
		}
	}
}
