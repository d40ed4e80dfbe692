// Package api defines the Tokenizer API.
// It's a separate leaf package to break cyclic dependencies, and allow users to
// import `tokenizers` and get the default implementations.
package api

import "github.com/pkg/errors"

// Tokenizer converts text to integer token IDs and back against a persistent
// vocabulary.
type Tokenizer interface {
	// Tokenize splits text into raw token strings without touching the
	// vocabulary. It never fails; empty input yields an empty slice.
	Tokenize(text string) []string

	// Encode maps text to token IDs, in token order. With expand set, tokens
	// missing from the vocabulary are inserted (and persisted); otherwise they
	// map to the unknown-marker ID. Fails if no vocabulary has been built.
	Encode(text string, expand bool) ([]int, error)

	// Decode reconstructs text from token IDs. IDs with no mapping are
	// substituted with the unknown-marker text rather than failing. Fails only
	// if no vocabulary has been built.
	Decode(ids []int) (string, error)

	// SpecialTokenID returns the ID for the given special token if registered,
	// or an error if not.
	SpecialTokenID(token SpecialToken) (int, error)
}

// SpecialToken is an enum of reserved tokens with a common semantic that may
// map to different IDs for different vocabularies.
type SpecialToken int

const (
	TokUnknown SpecialToken = iota
	TokSpecialTokensCount
)

// String implements fmt.Stringer.
func (t SpecialToken) String() string {
	switch t {
	case TokUnknown:
		return "unknown"
	default:
		return "invalid"
	}
}

// Stats is a point-in-time summary of a vocabulary.
type Stats struct {
	Size       int  `json:"size"`
	NextID     int  `json:"nextId"`
	HasUnknown bool `json:"hasUnknownToken"`
}

// ErrInvalidSpecialToken is returned by SpecialTokenID for tokens outside the
// enum range.
var ErrInvalidSpecialToken = errors.New("invalid special token")
