// Package segment splits raw text into word and symbol tokens.
//
// A token is either a maximal run of word characters (Unicode letters, digits
// and the underscore), lowercased, or a single non-word non-whitespace rune
// kept verbatim. Whitespace only separates tokens and never appears in one.
// The segmentation is equivalent to scanning the text with the pattern
// `[\p{L}\p{N}_]+|[^\p{L}\p{N}_\s]`, left to right.
package segment

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// Tokenize splits text into tokens in input order. It is a pure function: the
// empty string yields an empty slice and no input can make it fail. Input is
// NFC-normalized before scanning so composed and decomposed forms of the same
// character segment identically.
func Tokenize(text string) []string {
	tokens := make([]string, 0)
	if text == "" {
		return tokens
	}
	text = norm.NFC.String(text)

	var word strings.Builder
	flush := func() {
		if word.Len() > 0 {
			tokens = append(tokens, strings.ToLower(word.String()))
			word.Reset()
		}
	}
	for _, r := range text {
		switch {
		case isWordRune(r):
			word.WriteRune(r)
		case unicode.IsSpace(r):
			flush()
		default:
			flush()
			tokens = append(tokens, string(r))
		}
	}
	flush()
	return tokens
}

// IsSymbol reports whether tok is a single-rune symbol token, i.e. one rune
// that is neither a word character nor whitespace. Decode-side spacing hinges
// on this classification: symbol tokens attach to the preceding token without
// a separator.
func IsSymbol(tok string) bool {
	r, size := utf8.DecodeRuneInString(tok)
	if size == 0 || size != len(tok) {
		return false
	}
	return !isWordRune(r) && !unicode.IsSpace(r)
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}
