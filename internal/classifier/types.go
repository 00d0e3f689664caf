package classifier

// FamilyKind tags one of the six cipher-family guesses the classifier
// can emit, per spec §3's CipherFamily variants.
type FamilyKind string

const (
	MonoalphabeticSubstitution FamilyKind = "monoalphabetic-substitution"
	CaesarShift                FamilyKind = "caesar-shift"
	VigenereLike               FamilyKind = "vigenere-like"
	Transposition              FamilyKind = "transposition"
	RandomOrUnknown            FamilyKind = "random-or-unknown"
	Unknown                    FamilyKind = "unknown"
)

// Family is one ranked candidate. SuggestedKeyLength is only meaningful
// for VigenereLike (0 means "no suggestion"); Reason is only meaningful
// for Unknown.
type Family struct {
	Kind               FamilyKind
	Confidence         float64
	SuggestedKeyLength int
	Reason             string
}

// KeyLengthCandidate mirrors kasiski.KeyLengthScore inside
// ClassifierStats so callers don't need to import internal/kasiski
// just to read a classification result.
type KeyLengthCandidate struct {
	KeyLength int
	Score     float64
}

// Stats is the record attached to every classification, per spec §3.
type Stats struct {
	Length              int
	IC                  float64
	Entropy             float64
	HasRepetitions      bool
	SuggestedKeyLengths []KeyLengthCandidate
}

// Result is the classifier's full output: a ranked family list plus the
// statistics that produced it.
type Result struct {
	Families []Family
	Stats    Stats
}
