package dictionary

import "testing"

func newTestAnalyzer(t *testing.T) *Analyzer {
	t.Helper()
	a, err := NewAnalyzer()
	if err != nil {
		t.Fatalf("new analyzer: %v", err)
	}
	return a
}

func TestLookupKanjiWord(t *testing.T) {
	a := newTestAnalyzer(t)

	entry := a.Lookup("犬")
	if entry.Reading != "イヌ" {
		t.Errorf("expected reading イヌ, got %q", entry.Reading)
	}
	if entry.BaseForm != "犬" {
		t.Errorf("expected base form 犬, got %q", entry.BaseForm)
	}
}

func TestLookupInflectedVerb(t *testing.T) {
	a := newTestAnalyzer(t)

	entry := a.Lookup("食べる")
	if entry.BaseForm != "食べる" {
		t.Errorf("expected base form 食べる, got %q", entry.BaseForm)
	}
	if entry.Reading == "" {
		t.Errorf("expected non-empty reading")
	}
}

func TestLookupNonJapaneseUntouched(t *testing.T) {
	a := newTestAnalyzer(t)

	entry := a.Lookup("cat")
	if entry.Reading != "" {
		t.Errorf("expected empty reading for latin text, got %q", entry.Reading)
	}
	if entry.BaseForm != "cat" {
		t.Errorf("expected base form echoed, got %q", entry.BaseForm)
	}
}

func TestContainsJapanese(t *testing.T) {
	tests := []struct {
		text string
		want bool
	}{
		{"猫", true},
		{"ねこ", true},
		{"ネコ", true},
		{"cat", false},
		{"", false},
		{"cat猫", true},
	}
	for _, tt := range tests {
		if got := ContainsJapanese(tt.text); got != tt.want {
			t.Errorf("ContainsJapanese(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
}
