package errkind

import (
	"errors"
	"fmt"
	"testing"
)

func TestEngineErrorFormatsWithAndWithoutCause(t *testing.T) {
	bare := New("classify", InputTooShort)
	if bare.Error() != "classify: input-too-short" {
		t.Errorf("bare.Error() = %q", bare.Error())
	}

	wrapped := Wrap("langmodel.load", ResourceMissing, errors.New("file not found"))
	want := "langmodel.load: resource-missing: file not found"
	if wrapped.Error() != want {
		t.Errorf("wrapped.Error() = %q, want %q", wrapped.Error(), want)
	}
}

func TestUnwrapReturnsCause(t *testing.T) {
	cause := errors.New("boom")
	wrapped := Wrap("op", Timeout, cause)
	if errors.Unwrap(wrapped) != cause {
		t.Error("Unwrap did not return the wrapped cause")
	}
}

func TestIsMatchesKind(t *testing.T) {
	err := New("decrypt", Timeout)
	if !Is(err, Timeout) {
		t.Error("Is should match the exact kind")
	}
	if Is(err, InvalidKey) {
		t.Error("Is should not match a different kind")
	}
}

func TestIsMatchesThroughFmtWrapping(t *testing.T) {
	inner := New("solver.run", InvalidKey)
	outer := fmt.Errorf("orchestrator: %w", inner)
	if !Is(outer, InvalidKey) {
		t.Error("Is should see through fmt.Errorf %w wrapping via errors.As")
	}
}

func TestIsFalseForNonEngineError(t *testing.T) {
	if Is(errors.New("plain error"), EmptyInput) {
		t.Error("Is should return false for a non-EngineError")
	}
}
