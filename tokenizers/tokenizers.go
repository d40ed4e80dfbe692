// Package tokenizers provides the default Tokenizer implementation and
// corpus-level convenience operations built on it.
//
// Most callers only need New to get a word-level tokenizer bound to a
// vocabulary store, and BuildVocabulary to train that store from a corpus.
package tokenizers

import (
	"k8s.io/klog/v2"

	"github.com/wordtok/wordtok/segment"
	"github.com/wordtok/wordtok/tokenizers/api"
	"github.com/wordtok/wordtok/tokenizers/words"
	"github.com/wordtok/wordtok/vocab"
)

// New returns the default word-level Tokenizer bound to store, loading
// whatever vocabulary the store currently persists.
func New(store *vocab.Store) (api.Tokenizer, error) {
	return words.New(store)
}

// BuildVocabulary discards any previous vocabulary and trains a fresh one
// from the corpus: the unknown marker is inserted first, then every text is
// tokenized in order and each token inserted on first sight. The result is
// persisted once, at the end.
func BuildVocabulary(store *vocab.Store, texts []string) (*vocab.Vocabulary, error) {
	v := vocab.Init()
	for _, text := range texts {
		for _, tok := range segment.Tokenize(text) {
			v.Insert(tok)
		}
	}
	if err := store.Save(v); err != nil {
		return nil, err
	}
	klog.V(1).Infof("built vocabulary from %d texts: %d tokens", len(texts), v.Len())
	return v, nil
}

// Stats summarizes a vocabulary: entry count, next free ID, and whether the
// unknown marker is present.
func Stats(v *vocab.Vocabulary) api.Stats {
	return api.Stats{
		Size:       v.Len(),
		NextID:     v.NextID(),
		HasUnknown: v.HasUnknown(),
	}
}

// VocabSize returns the number of entries in v.
func VocabSize(v *vocab.Vocabulary) int { return v.Len() }
