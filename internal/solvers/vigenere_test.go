package solvers

import (
	"context"
	"strings"
	"testing"

	"github.com/tjanssen/cryptanalyst/internal/dictionary"
	"github.com/tjanssen/cryptanalyst/internal/langmodel"
)

func englishDict(t *testing.T) *dictionary.Dictionary {
	t.Helper()
	store := dictionary.NewStore()
	d, ok := store.Get(langmodel.English)
	if !ok {
		t.Fatal("english dictionary missing")
	}
	return d
}

func TestTargetIoC(t *testing.T) {
	if got := targetIoC(langmodel.English); got != 1.73 {
		t.Errorf("targetIoC(English) = %v, want 1.73", got)
	}
	if got := targetIoC(langmodel.French); got != 1.94 {
		t.Errorf("targetIoC(French) = %v, want 1.94", got)
	}
}

func TestSplitColumns(t *testing.T) {
	cols := splitColumns([]rune("ABCDEFGH"), 3)
	if len(cols) != 3 {
		t.Fatalf("len(cols) = %d, want 3", len(cols))
	}
	if string(cols[0]) != "ADG" || string(cols[1]) != "BEH" || string(cols[2]) != "CF" {
		t.Errorf("columns = %q %q %q, want ADG BEH CF", string(cols[0]), string(cols[1]), string(cols[2]))
	}
}

func TestFriedmanKeyLengthRecoversShortKey(t *testing.T) {
	plain := "THEQUICKBROWNFOXJUMPSOVERTHELAZYDOGANDTHENSOMEMORETEXTAROUNDHERE" +
		"TOGIVEKASISKIANDFRIEDMANENOUGHMATERIALTOWORKWITHPROPERLYTHISTIME"
	key := "KEY"
	cipher := decryptVigenereKeyed(plain, invertVigenereKey(key))

	keyLen, _ := friedmanKeyLength(cipher, langmodel.English)
	if keyLen != len(key) {
		t.Errorf("friedmanKeyLength = %d, want %d", keyLen, len(key))
	}
}

// invertVigenereKey builds the encryption key that decryptVigenereKeyed
// would need to recover plaintext encrypted with key: since
// decryptVigenereKeyed subtracts the key's shift, encrypting with the
// complementary (26-shift) key and then decrypting with the original
// recovers plaintext, so to build a ciphertext fixture we decrypt with
// the complement of key.
func invertVigenereKey(key string) string {
	out := make([]rune, len(key))
	for i, r := range key {
		out[i] = 'A' + (caesarAlphabetSize-(r-'A'))%caesarAlphabetSize
	}
	return string(out)
}

func TestRunVigenereRecoversKeyAndPlaintext(t *testing.T) {
	model := englishModel(t)
	plain := "THEQUICKBROWNFOXJUMPSOVERTHELAZYDOGANDTHENSOMEMORETEXTAROUNDHERE" +
		"TOGIVEKASISKIANDFRIEDMANENOUGHMATERIALTOWORKWITHPROPERLYTHISTIME"
	key := "KEY"
	cipher := decryptVigenereKeyed(plain, invertVigenereKey(key))

	result, err := runVigenere(context.Background(), cipher, model, nil, nil)
	if err != nil {
		t.Fatalf("runVigenere: %v", err)
	}
	if result.MethodTag != MethodVigenere {
		t.Errorf("MethodTag = %q, want %q", result.MethodTag, MethodVigenere)
	}
	if !strings.Contains(result.Plaintext, "THEQUICKBROWNFOX") {
		t.Errorf("runVigenere plaintext = %q, want it to contain THEQUICKBROWNFOX", result.Plaintext)
	}
}

func TestRunVigenereRecoversKeyWithDictionaryBonus(t *testing.T) {
	model := englishModel(t)
	dict := englishDict(t)
	plain := "THEQUICKBROWNFOXJUMPSOVERTHELAZYDOGANDTHENSOMEMORETEXTAROUNDHERE" +
		"TOGIVEKASISKIANDFRIEDMANENOUGHMATERIALTOWORKWITHPROPERLYTHISTIME"
	key := "KEY"
	cipher := decryptVigenereKeyed(plain, invertVigenereKey(key))

	result, err := runVigenere(context.Background(), cipher, model, dict, nil)
	if err != nil {
		t.Fatalf("runVigenere: %v", err)
	}
	if result.Key != key {
		t.Errorf("Key = %q, want %q", result.Key, key)
	}
	if !strings.Contains(result.Plaintext, "THEQUICKBROWNFOX") {
		t.Errorf("runVigenere plaintext = %q, want it to contain THEQUICKBROWNFOX", result.Plaintext)
	}
	if !result.HasWordCoverage || result.WordCoverage <= 0 {
		t.Errorf("expected positive word coverage with a dictionary, got %+v", result)
	}
}

// TestRecoverColumnShiftUsesPerShiftDictionaryCoverage guards against the
// bonus being hoisted as a single constant outside the 26-shift loop
// (which would make it a no-op, since argmin over a set is invariant to
// scaling every element by the same constant): it drives
// recoverColumnShift directly with a real dictionary and checks the
// recovered key matches, which only holds if the per-shift trial
// decryption and its coverage are actually recomputed each iteration.
func TestRecoverColumnShiftUsesPerShiftDictionaryCoverage(t *testing.T) {
	model := englishModel(t)
	dict := englishDict(t)

	plain := "THEQUICKBROWNFOXJUMPSOVERTHELAZYDOGANDRUNSINTOTHEWOODS"
	key := "ABC"
	cipher := decryptVigenereKeyed(plain, invertVigenereKey(key))

	runes := []rune(cipher)
	columns := splitColumns(runes, len(key))

	recovered := make([]rune, len(key))
	for i := range recovered {
		recovered[i] = 'A'
	}
	for i, col := range columns {
		recoverColumnShift(col, model, dict, cipher, recovered, i)
	}

	if string(recovered) != key {
		t.Errorf("recoverColumnShift recovered key %q, want %q", string(recovered), key)
	}
}

func TestRunVigenereTooShort(t *testing.T) {
	model := englishModel(t)
	_, err := runVigenere(context.Background(), "AB", model, nil, nil)
	if err == nil {
		t.Error("expected errShortCiphertext for very short input")
	}
}

func TestDecryptVigenereKeyedPreservesLayoutAndCase(t *testing.T) {
	got := decryptVigenereKeyed("Bcd, efg!", "AAA")
	if got != "Bcd, efg!" {
		t.Errorf("decryptVigenereKeyed with all-A key should be identity, got %q", got)
	}
}
