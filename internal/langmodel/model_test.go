package langmodel

import (
	"math"
	"testing"
)

func TestLoad(t *testing.T) {
	store, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	for _, lang := range All {
		if _, ok := store.Get(lang); !ok {
			t.Errorf("Load() missing model for %s", lang)
		}
	}
}

func TestParseLanguage(t *testing.T) {
	tests := []struct {
		code   string
		want   Language
		wantOK bool
	}{
		{"en", English, true},
		{"english", English, true},
		{"ru", Russian, true},
		{"zh-pinyin", ChinesePinyin, true},
		{"auto", "", false},
		{"klingon", "", false},
	}
	for _, tt := range tests {
		got, ok := ParseLanguage(tt.code)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("ParseLanguage(%q) = (%q, %v), want (%q, %v)", tt.code, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestModelScript(t *testing.T) {
	store, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	russian, ok := store.Get(Russian)
	if !ok {
		t.Fatal("missing russian model")
	}
	if russian.Script != ScriptCyrillic {
		t.Errorf("russian model Script = %q, want %q", russian.Script, ScriptCyrillic)
	}
	english, ok := store.Get(English)
	if !ok {
		t.Fatal("missing english model")
	}
	if english.Script != ScriptLatin {
		t.Errorf("english model Script = %q, want %q", english.Script, ScriptLatin)
	}
}

func TestLogProbKnownNgram(t *testing.T) {
	store, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	english, _ := store.Get(English)

	got := english.LogProb("THE")
	want := math.Log(english.Trigrams["THE"] / 100.0)
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("LogProb(THE) = %v, want %v", got, want)
	}
}

func TestLogProbFloorsUnseenNgram(t *testing.T) {
	store, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	english, _ := store.Get(English)

	// ZZZ is not a trigram present in the table; LogProb must fall back
	// to the floor rather than treating it as zero probability.
	got := english.LogProb("ZZZ")
	if math.IsInf(got, -1) {
		t.Fatalf("LogProb(ZZZ) = -Inf, want finite floor value")
	}

	minObserved := math.Inf(1)
	for _, pct := range english.Trigrams {
		if pct > 0 && pct < minObserved {
			minObserved = pct
		}
	}
	want := math.Log((minObserved / 10.0) / 100.0)
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("LogProb(ZZZ) = %v, want %v (floor)", got, want)
	}
}

func TestScoreSumsOverlappingWindows(t *testing.T) {
	store, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	english, _ := store.Get(English)

	text := "THEQ"
	got := english.Score(text, 3)
	want := english.LogProb("THE") + english.LogProb("HEQ")
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("Score(%q, 3) = %v, want %v", text, got, want)
	}
}

func TestScoreShorterThanN(t *testing.T) {
	store, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	english, _ := store.Get(English)

	if got := english.Score("AB", 4); got != 0 {
		t.Errorf("Score on too-short text = %v, want 0", got)
	}
}

func TestSortedMonogramValuesDescending(t *testing.T) {
	store, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	english, _ := store.Get(English)

	values := english.SortedMonogramValues()
	if len(values) != len(english.Monograms) {
		t.Fatalf("len(SortedMonogramValues()) = %d, want %d", len(values), len(english.Monograms))
	}
	for i := 1; i < len(values); i++ {
		if values[i] > values[i-1] {
			t.Fatalf("SortedMonogramValues() not descending at index %d: %v > %v", i, values[i], values[i-1])
		}
	}
}

func TestStoreLanguagesCanonicalOrder(t *testing.T) {
	store, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	got := store.Languages()
	if len(got) != len(All) {
		t.Fatalf("Languages() len = %d, want %d", len(got), len(All))
	}
	for i, lang := range All {
		if got[i] != lang {
			t.Errorf("Languages()[%d] = %q, want %q", i, got[i], lang)
		}
	}
}
