// Package errkind defines the small set of tagged error kinds the
// engine surfaces across its public API, per spec §7. Kinds are tags,
// not distinct error types, so callers can branch on a stable value
// with errors.As rather than matching error strings or maintaining a
// type switch.
package errkind

import (
	"errors"
	"fmt"
)

// Kind tags the cause of an EngineError. Of the kinds below, only
// ResourceMissing is produced inside this module (engine.New wraps
// langmodel.Load failures with it); the classifier, the engine entry
// points and the solvers report the other conditions without an
// EngineError.
type Kind string

const (
	// InputTooShort tags ciphertext with fewer than the classifier's
	// minimum usable letter count.
	InputTooShort Kind = "input-too-short"
	// EmptyInput tags a ciphertext with no letters at all.
	EmptyInput Kind = "empty-input"
	// LengthMismatch tags a solver's recovered plaintext that has fewer
	// letters than match_layout needs to fully re-apply the original's
	// layout.
	LengthMismatch Kind = "length-mismatch"
	// ResourceMissing marks a language model or dictionary that could
	// not be loaded; callers degrade gracefully rather than fail.
	ResourceMissing Kind = "resource-missing"
	// Timeout marks a budget that was exceeded before the orchestrator
	// finished its full strategy portfolio.
	Timeout Kind = "timeout"
	// InvalidKey marks a solver-specific key validation failure (e.g.
	// a key that is not a valid permutation of the alphabet).
	InvalidKey Kind = "invalid-key"
)

// EngineError wraps a Kind with the operation that produced it and the
// underlying cause, if any. It implements error and Unwrap so callers
// can use errors.Is/errors.As against both the Kind and the wrapped
// cause.
type EngineError struct {
	Kind  Kind
	Op    string
	Cause error
}

func (e *EngineError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Kind)
}

func (e *EngineError) Unwrap() error {
	return e.Cause
}

// New builds an EngineError with no wrapped cause.
func New(op string, kind Kind) *EngineError {
	return &EngineError{Op: op, Kind: kind}
}

// Wrap builds an EngineError that wraps cause.
func Wrap(op string, kind Kind, cause error) *EngineError {
	return &EngineError{Op: op, Kind: kind, Cause: cause}
}

// Is reports whether err is an *EngineError with the given Kind,
// letting callers write `errkind.Is(err, errkind.Timeout)` instead of a
// type assertion.
func Is(err error, kind Kind) bool {
	var ee *EngineError
	if errors.As(err, &ee) {
		return ee.Kind == kind
	}
	return false
}
