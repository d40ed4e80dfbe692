package vocab

import (
	"encoding/json"
	"strconv"
	"time"

	"github.com/pkg/errors"
)

// Export serializes v to its transportable JSON form: forward map, reverse
// map keyed by decimal ID strings, next token ID, plus a save timestamp and
// format version tag (both ignored on import).
func Export(v *Vocabulary) ([]byte, error) {
	f := vocabFile{
		Vocab:        make(map[string]int, len(v.tokens)),
		ReverseVocab: make(map[string]string, len(v.ids)),
		NextTokenID:  v.next,
		SavedAt:      time.Now().UTC().Format(time.RFC3339),
		Version:      formatVersion,
	}
	for tok, id := range v.tokens {
		f.Vocab[tok] = id
		f.ReverseVocab[strconv.Itoa(id)] = tok
	}
	data, err := json.MarshalIndent(&f, "", "  ")
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal vocabulary")
	}
	return data, nil
}

// Import parses the transportable form produced by Export (or any file in the
// durable format) into a new Vocabulary. The result fully replaces whatever
// the caller held before; import is never a merge. Missing fields default to
// empty maps and a zero counter; unparsable data is an error matching
// ErrCorrupt.
func Import(data []byte) (*Vocabulary, error) {
	return decode(data)
}
