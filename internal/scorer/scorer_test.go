package scorer

import (
	"testing"

	"github.com/tjanssen/cryptanalyst/internal/dictionary"
	"github.com/tjanssen/cryptanalyst/internal/langmodel"
)

func TestScoreDelegatesToModel(t *testing.T) {
	store, err := langmodel.Load()
	if err != nil {
		t.Fatalf("langmodel.Load() error: %v", err)
	}
	english, _ := store.Get(langmodel.English)

	text := "THEQUICKBROWNFOX"
	got := Score(english, text)
	want := english.Score(text, quadgramWidth)
	if got != want {
		t.Errorf("Score = %v, want %v", got, want)
	}
}

func TestCoverageNilDictIsZero(t *testing.T) {
	if got := Coverage(nil, "THE AND FOR"); got != 0 {
		t.Errorf("Coverage(nil, ...) = %v, want 0", got)
	}
}

func TestCoverageDelegatesToDictionary(t *testing.T) {
	store := dictionary.NewStore()
	d, ok := store.Get(langmodel.English)
	if !ok {
		t.Fatal("failed to load english dictionary")
	}
	text := "THE AND FOR ZZQX"
	got := Coverage(d, text)
	want := d.Coverage(text)
	if got != want {
		t.Errorf("Coverage = %v, want %v", got, want)
	}
}

func TestCombinedHighCoverageDominates(t *testing.T) {
	lowCoverageHighNgram := Combined(-2.0, 0.0)
	highCoverage := Combined(-10.0, 0.8)
	if highCoverage <= lowCoverageHighNgram {
		t.Errorf("high coverage (%v) did not dominate low-coverage high-ngram score (%v)", highCoverage, lowCoverageHighNgram)
	}
}
