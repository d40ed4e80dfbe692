// Package words implements a tokenizers.Tokenizer over whole words and single
// punctuation characters, backed by an incrementally-growable vocabulary that
// persists across runs.
package words

import (
	"strings"

	"github.com/pkg/errors"
	"k8s.io/klog/v2"

	"github.com/wordtok/wordtok/segment"
	"github.com/wordtok/wordtok/tokenizers/api"
	"github.com/wordtok/wordtok/vocab"
)

// Tokenizer encodes and decodes text against one vocabulary store. It owns
// its in-memory vocabulary: a single Tokenizer is the single logical writer
// of its store's file, and is not safe for concurrent use.
type Tokenizer struct {
	store *vocab.Store
	vocab *vocab.Vocabulary
}

// Compile time assert that words.Tokenizer implements the api.Tokenizer interface.
var _ api.Tokenizer = &Tokenizer{}

// New loads the vocabulary persisted in store and returns a Tokenizer bound
// to it. A missing vocabulary file is fine (the Tokenizer starts
// uninitialized and Encode/Decode fail until a vocabulary is built); a
// corrupt one is an error.
func New(store *vocab.Store) (*Tokenizer, error) {
	v, err := store.Load()
	if err != nil {
		return nil, err
	}
	return &Tokenizer{store: store, vocab: v}, nil
}

// NewWithVocabulary returns a Tokenizer bound to store that starts from v
// instead of loading from disk. The Tokenizer takes ownership of v.
func NewWithVocabulary(store *vocab.Store, v *vocab.Vocabulary) *Tokenizer {
	return &Tokenizer{store: store, vocab: v}
}

// Tokenize splits text into raw token strings. It never touches the
// vocabulary.
func (t *Tokenizer) Tokenize(text string) []string {
	return segment.Tokenize(text)
}

// Encode maps text to token IDs, one per token in input order.
//
// Known tokens map to their IDs. With expand set, unseen tokens are inserted
// into the vocabulary, which is persisted iff at least one insertion happened;
// without expand, unseen tokens map to the unknown-marker ID. Given the same
// text and vocabulary state the output is deterministic.
//
// Encode either fully succeeds or leaves the Tokenizer and its file unchanged:
// expansion happens on a copy that is only adopted after a successful save.
func (t *Tokenizer) Encode(text string, expand bool) ([]int, error) {
	if !t.vocab.Initialized() {
		return nil, errors.WithStack(vocab.ErrUninitialized)
	}

	work := t.vocab
	dirty := false
	toks := segment.Tokenize(text)
	ids := make([]int, 0, len(toks))
	for _, tok := range toks {
		if id, ok := work.Lookup(tok); ok {
			ids = append(ids, id)
			continue
		}
		if expand {
			if !dirty {
				work = t.vocab.Clone()
				dirty = true
			}
			ids = append(ids, work.Insert(tok))
			continue
		}
		unk, ok := work.UnknownID()
		if !ok {
			return nil, errors.Errorf("vocabulary has no %q marker to map unseen token %q to", vocab.Unknown, tok)
		}
		ids = append(ids, unk)
	}

	if dirty {
		if err := t.store.Save(work); err != nil {
			return nil, err
		}
		t.vocab = work
	}
	return ids, nil
}

// Decode reconstructs text from token IDs, best-effort: an ID with no mapping
// becomes the unknown-marker text instead of aborting the call.
//
// Reconstruction is heuristic. The first token is emitted bare; every later
// single-character symbol token attaches to the preceding output with no
// separator; every other later token is preceded by exactly one space.
// Original whitespace runs and leading/trailing whitespace are not recovered.
func (t *Tokenizer) Decode(ids []int) (string, error) {
	if !t.vocab.Initialized() {
		return "", errors.WithStack(vocab.ErrUninitialized)
	}

	var b strings.Builder
	for i, id := range ids {
		tok, ok := t.vocab.Token(id)
		if !ok {
			klog.V(2).Infof("decode: ID %d has no token, substituting %q", id, vocab.Unknown)
			tok = vocab.Unknown
		}
		if i > 0 && !segment.IsSymbol(tok) {
			b.WriteByte(' ')
		}
		b.WriteString(tok)
	}
	return b.String(), nil
}

// SpecialTokenID returns the ID for the given special token, or an error if
// it is not registered in the vocabulary.
func (t *Tokenizer) SpecialTokenID(token api.SpecialToken) (int, error) {
	switch token {
	case api.TokUnknown:
		id, ok := t.vocab.UnknownID()
		if !ok {
			return 0, errors.Errorf("vocabulary has no %q marker", vocab.Unknown)
		}
		return id, nil
	default:
		return 0, errors.Wrapf(api.ErrInvalidSpecialToken, "%s (%d)", token, int(token))
	}
}

// Vocabulary returns a copy of the current vocabulary. Mutations of the copy
// never reach the Tokenizer's internal state.
func (t *Tokenizer) Vocabulary() *vocab.Vocabulary {
	return t.vocab.Clone()
}

// Stats summarizes the current vocabulary.
func (t *Tokenizer) Stats() api.Stats {
	return api.Stats{
		Size:       t.vocab.Len(),
		NextID:     t.vocab.NextID(),
		HasUnknown: t.vocab.HasUnknown(),
	}
}

// Reset discards the vocabulary (in memory and on disk) and reinitializes it
// to contain only the unknown marker.
func (t *Tokenizer) Reset() error {
	v, err := t.store.Reset()
	if err != nil {
		return err
	}
	t.vocab = v
	return nil
}
