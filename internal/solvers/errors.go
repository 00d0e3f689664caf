package solvers

import "errors"

// errShortCiphertext is returned by solvers that need a minimum amount
// of letter material to produce a meaningful result (e.g. Vigenère
// needs at least one full column). The Orchestrator treats this the
// same as any other strategy failure: caught, logged as
// strategy-failed, and never fatal to the portfolio (spec §7).
var errShortCiphertext = errors.New("solvers: ciphertext has too few letters for this strategy")
