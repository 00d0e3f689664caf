package textnorm

import "testing"

func TestCleanLetters(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "Hello, World!", "HELLOWORLD"},
		{"already upper", "ABC", "ABC"},
		{"digits and punctuation stripped", "a1b2c3!", "ABC"},
		{"accents folded", "café élan", "CAFEELAN"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CleanLetters(tt.in); got != tt.want {
				t.Errorf("CleanLetters(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestOnlyPrintableASCII(t *testing.T) {
	in := "Hello\tWorld\n!@#"
	want := "Hello!@#"
	if got := OnlyPrintableASCII(in); got != want {
		t.Errorf("OnlyPrintableASCII(%q) = %q, want %q", in, got, want)
	}
}

func TestMatchLayout_RoundTrip(t *testing.T) {
	original := "The Quick, Brown Fox!"
	cleaned := CleanLetters(original)
	got, err := MatchLayout(original, cleaned)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != original {
		t.Errorf("MatchLayout round trip = %q, want %q", got, original)
	}
}

func TestMatchLayout_LengthMismatch(t *testing.T) {
	original := "HELLO WORLD"
	short := "HI"
	got, err := MatchLayout(original, short)
	if err == nil {
		t.Fatal("expected LengthMismatchErr, got nil")
	}
	if _, ok := err.(*LengthMismatchErr); !ok {
		t.Fatalf("expected *LengthMismatchErr, got %T", err)
	}
	want := "HI??? ?????"
	if got != want {
		t.Errorf("MatchLayout with short input = %q, want %q", got, want)
	}
}

func TestMatchLayout_CasePreservation(t *testing.T) {
	original := "AbC dEf"
	cleaned := "XYZUVW"
	got, err := MatchLayout(original, cleaned)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "XyZ uVw"
	if got != want {
		t.Errorf("MatchLayout case preservation = %q, want %q", got, want)
	}
}
