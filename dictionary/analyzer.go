package dictionary

import (
	"strings"
	"unicode"

	"github.com/ikawaha/kagome-dict/ipa"
	"github.com/ikawaha/kagome/v2/tokenizer"
)

// Entry is the local lookup result for one word: its dictionary (base) form
// and katakana reading, as far as the IPA dictionary knows them.
type Entry struct {
	Text     string
	BaseForm string
	Reading  string
}

// Analyzer performs local Japanese morphological analysis. It replaces a
// networked dictionary proxy: no lookup leaves the process.
type Analyzer struct {
	t *tokenizer.Tokenizer
}

func NewAnalyzer() (*Analyzer, error) {
	t, err := tokenizer.New(ipa.Dict(), tokenizer.OmitBosEos())
	if err != nil {
		return nil, err
	}
	return &Analyzer{t: t}, nil
}

// Lookup analyzes a word and returns its base form and reading. Multi-token
// words get the concatenated readings of their tokens. For text the
// dictionary cannot read (e.g. Latin script), Reading is empty and BaseForm
// echoes the input.
func (a *Analyzer) Lookup(text string) Entry {
	entry := Entry{Text: text, BaseForm: text}

	trimmed := strings.TrimSpace(text)
	if trimmed == "" || !ContainsJapanese(trimmed) {
		return entry
	}

	tokens := a.t.Tokenize(trimmed)
	var readings []string
	var bases []string

	for _, token := range tokens {
		if token.Class == tokenizer.DUMMY || strings.TrimSpace(token.Surface) == "" {
			continue
		}

		// IPA features: 6 = base form, 7 = reading.
		features := token.Features()

		base := token.Surface
		if len(features) > 6 && features[6] != "*" {
			base = features[6]
		}
		bases = append(bases, base)

		if len(features) > 7 && features[7] != "*" {
			readings = append(readings, features[7])
		}
	}

	if len(bases) == 1 {
		entry.BaseForm = bases[0]
	}
	entry.Reading = strings.Join(readings, "")
	return entry
}

// ContainsJapanese reports whether the text has at least one kana or kanji
// rune.
func ContainsJapanese(text string) bool {
	for _, r := range text {
		if unicode.In(r, unicode.Hiragana, unicode.Katakana, unicode.Han) {
			return true
		}
	}
	return false
}
