package solvers

import (
	"context"
	"testing"
)

func TestShiftCaesarRoundTrip(t *testing.T) {
	plain := "Hello, World!"
	cipher := shiftCaesar(plain, 7)
	back := shiftCaesar(cipher, caesarAlphabetSize-7)
	if back != plain {
		t.Errorf("shiftCaesar round trip = %q, want %q", back, plain)
	}
}

func TestShiftCaesarPreservesNonLetters(t *testing.T) {
	got := shiftCaesar("A1 B2!", 1)
	if got != "B1 C2!" {
		t.Errorf("shiftCaesar = %q, want %q", got, "B1 C2!")
	}
}

func TestShiftRot47RoundTrip(t *testing.T) {
	plain := "Hello, World! 123"
	cipher := shiftRot47(plain, 13)
	back := shiftRot47(cipher, rot47AlphabetSize-13)
	if back != plain {
		t.Errorf("shiftRot47 round trip = %q, want %q", back, plain)
	}
}

func TestRunCaesarFindsShift(t *testing.T) {
	model := englishModel(t)
	plain := "THE QUICK BROWN FOX JUMPS OVER THE LAZY DOG AGAIN AND AGAIN"
	shift := 5
	cipher := shiftCaesar(plain, shift)

	result, err := runCaesar(context.Background(), cipher, model, nil, nil)
	if err != nil {
		t.Fatalf("runCaesar: %v", err)
	}
	if result.Plaintext != plain {
		t.Errorf("runCaesar recovered %q, want %q", result.Plaintext, plain)
	}
	if result.MethodTag != MethodCaesarShift {
		t.Errorf("MethodTag = %q, want %q", result.MethodTag, MethodCaesarShift)
	}
}

func TestRunCaesarRespectsCancellation(t *testing.T) {
	model := englishModel(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := runCaesar(ctx, "SOME CIPHERTEXT HERE", model, nil, nil)
	if err == nil {
		t.Error("expected context cancellation error")
	}
}

func TestRunRot47SingleFindsShift(t *testing.T) {
	model := englishModel(t)
	plain := "THE QUICK BROWN FOX JUMPS OVER THE LAZY DOG AGAIN AND AGAIN"
	shift := 10
	cipher := shiftRot47(plain, shift)

	result, err := runRot47Single(context.Background(), cipher, model, nil, nil)
	if err != nil {
		t.Fatalf("runRot47Single: %v", err)
	}
	if result.Plaintext != plain {
		t.Errorf("runRot47Single recovered %q, want %q", result.Plaintext, plain)
	}
	if result.MethodTag != MethodRot47 {
		t.Errorf("MethodTag = %q, want %q", result.MethodTag, MethodRot47)
	}
}

func TestConfidenceFromCoverageBucketsWithDictionary(t *testing.T) {
	if c := confidenceFromCoverage(0.9, -2.0, true); c != 0.98 {
		t.Errorf("high coverage confidence = %v, want 0.98", c)
	}
	if c := confidenceFromCoverage(0.75, -2.0, true); c != 0.95 {
		t.Errorf("mid coverage confidence = %v, want 0.95", c)
	}
}

func TestConfidenceFromCoverageWithoutDictionaryIsBounded(t *testing.T) {
	c := confidenceFromCoverage(0, -50.0, false)
	if c < 0 || c > 0.9 {
		t.Errorf("confidenceFromCoverage without dict out of bounds: %v", c)
	}
}
