package segment

import (
	"regexp"
	"strings"

	"github.com/ikawaha/kagome-dict/ipa"
	"github.com/ikawaha/kagome/v2/tokenizer"
)

// Token is a single analyzed unit of text.
type Token struct {
	Surface string // the text as it appears (e.g. "行っ")
	Reading string // the pronunciation (katakana, e.g. "イッ")
	POS     string // primary part of speech (Kagome IPA label)
}

// Segmenter splits Japanese text into word tokens. It wraps a single
// long-lived kagome tokenizer; construct one and share it.
type Segmenter struct {
	t *tokenizer.Tokenizer
}

// NewSegmenter creates a segmenter backed by the IPA dictionary. BOS/EOS
// boundary markers are omitted so only genuine word tokens come back.
func NewSegmenter() (*Segmenter, error) {
	t, err := tokenizer.New(ipa.Dict(), tokenizer.OmitBosEos())
	if err != nil {
		return nil, err
	}
	return &Segmenter{t: t}, nil
}

// Tokenize returns the surface forms of the words in text, in order.
// Whitespace-only and dummy tokens are dropped; the result holds only
// non-empty strings.
func (s *Segmenter) Tokenize(text string) []string {
	var out []string
	for _, tok := range s.t.Tokenize(text) {
		if tok.Class == tokenizer.DUMMY {
			continue
		}
		if strings.TrimSpace(tok.Surface) == "" {
			continue
		}
		out = append(out, tok.Surface)
	}
	return out
}

// Analyze returns tokens with readings and part-of-speech labels attached,
// for callers that persist pronunciation alongside the surface form.
func (s *Segmenter) Analyze(text string) []Token {
	var out []Token
	for _, tok := range s.t.Tokenize(text) {
		if tok.Class == tokenizer.DUMMY {
			continue
		}
		if strings.TrimSpace(tok.Surface) == "" {
			continue
		}

		// Kagome IPA features: 0 is the part of speech, 7 the reading.
		features := tok.Features()
		reading := ""
		if len(features) > 7 && features[7] != "*" {
			reading = features[7]
		}
		pos := ""
		if len(features) > 0 {
			pos = features[0]
		}

		out = append(out, Token{
			Surface: tok.Surface,
			Reading: reading,
			POS:     pos,
		})
	}
	return out
}

// Sentences splits text on Japanese sentence delimiters and newlines,
// keeping the delimiter with the sentence it ends.
func Sentences(text string) []string {
	var sentences []string
	var current strings.Builder

	for _, r := range text {
		current.WriteRune(r)
		if r == '。' || r == '！' || r == '？' || r == '\n' {
			if s := strings.TrimSpace(current.String()); s != "" {
				sentences = append(sentences, s)
			}
			current.Reset()
		}
	}
	if s := strings.TrimSpace(current.String()); s != "" {
		sentences = append(sentences, s)
	}
	return sentences
}

var (
	reRT = regexp.MustCompile(`(?si)<rt\b[^>]*>.*?</rt>`)
	reRP = regexp.MustCompile(`(?si)<rp\b[^>]*>.*?</rp>`)
)

// SanitizeRuby removes ruby text (<rt>...</rt>) and ruby parentheses
// (<rp>...</rp>) from HTML content. Article extraction keeps all text
// including furigana, which otherwise duplicates every annotated word
// (e.g. "漢字" becomes "漢字かんじ").
func SanitizeRuby(content []byte) []byte {
	cleaned := reRT.ReplaceAll(content, []byte{})
	return reRP.ReplaceAll(cleaned, []byte{})
}
