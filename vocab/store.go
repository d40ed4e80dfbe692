package vocab

import (
	"encoding/json"
	"math/rand"
	"os"
	"strconv"
	"time"

	"github.com/gofrs/flock"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"

	"github.com/wordtok/wordtok/internal/files"
)

// DefaultPath is the vocabulary file used when a Store is created with an
// empty path. It is a documented default, not hidden global state: every
// Store carries its own explicit path.
const DefaultPath = "vocab.json"

// formatVersion tags the durable representation. Written on save, ignored on
// load.
const formatVersion = "1"

// ErrUninitialized is returned when encoding or decoding is attempted before
// any vocabulary exists.
var ErrUninitialized = errors.New("vocabulary is not initialized: build a vocabulary first")

// ErrCorrupt is returned when a persisted vocabulary exists but cannot be
// parsed or violates the token<->ID inverse invariant. Once a vocabulary file
// exists it is authoritative, so this is fatal rather than treated as empty.
var ErrCorrupt = errors.New("corrupt vocabulary data")

// Store reads and writes one vocabulary file.
//
// A Store assumes a single logical writer. Saves are atomic (no reader ever
// observes a torn file) and serialized across processes with a sibling .lock
// file, but concurrent read-modify-write cycles against the same path can
// still lose each other's insertions: the last save wins. Callers that need
// more must coordinate above this layer.
type Store struct {
	path string
}

// vocabFile is the durable JSON representation.
type vocabFile struct {
	Vocab        map[string]int    `json:"vocab"`
	ReverseVocab map[string]string `json:"reverseVocab"`
	NextTokenID  int               `json:"nextTokenId"`
	SavedAt      string            `json:"savedAt,omitempty"`
	Version      string            `json:"version,omitempty"`
}

// NewStore returns a Store persisting to path. An empty path selects
// DefaultPath.
func NewStore(path string) *Store {
	if path == "" {
		path = DefaultPath
	}
	return &Store{path: path}
}

// Path returns the vocabulary file path this Store persists to.
func (s *Store) Path() string { return s.path }

// Load reads the persisted vocabulary. A missing file is a recoverable state
// and yields an empty, uninitialized vocabulary. A present but unparsable or
// inconsistent file is an error matching ErrCorrupt.
func (s *Store) Load() (*Vocabulary, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			klog.V(1).Infof("no vocabulary file at %q, starting empty", s.path)
			return New(), nil
		}
		return nil, errors.Wrapf(err, "failed to read vocabulary file %q", s.path)
	}
	v, err := decode(data)
	if err != nil {
		return nil, errors.WithMessagef(err, "loading vocabulary file %q", s.path)
	}
	klog.V(1).Infof("loaded vocabulary from %q: %d tokens, next ID %d", s.path, v.Len(), v.NextID())
	return v, nil
}

// Save writes v to the store's path. The write goes to a temporary file that
// is renamed into place, under a sibling .lock file, so readers and concurrent
// savers never observe a partial file. Save either fully succeeds or leaves
// the previous file contents intact.
func (s *Store) Save(v *Vocabulary) error {
	data, err := Export(v)
	if err != nil {
		return err
	}
	lockPath := s.path + ".lock"
	var writeErr error
	if err := withFileLock(lockPath, func() {
		writeErr = files.WriteFileAtomic(s.path, data)
	}); err != nil {
		return errors.WithMessagef(err, "while locking %q to save vocabulary", lockPath)
	}
	if writeErr != nil {
		return errors.WithMessagef(writeErr, "saving vocabulary to %q", s.path)
	}
	klog.V(1).Infof("saved vocabulary to %q: %d tokens, next ID %d", s.path, v.Len(), v.NextID())
	return nil
}

// Reset discards any persisted state and reinitializes: the result contains
// only the Unknown marker with ID 0, and is persisted immediately.
func (s *Store) Reset() (*Vocabulary, error) {
	v := Init()
	if err := s.Save(v); err != nil {
		return nil, err
	}
	klog.V(1).Infof("reset vocabulary at %q", s.path)
	return v, nil
}

// ImportAndSave replaces the persisted vocabulary wholesale with the imported
// form. This is a replacement, never a merge.
func (s *Store) ImportAndSave(data []byte) (*Vocabulary, error) {
	v, err := Import(data)
	if err != nil {
		return nil, err
	}
	if err := s.Save(v); err != nil {
		return nil, err
	}
	return v, nil
}

// decode parses the durable JSON form into a Vocabulary. Missing fields
// default to empty maps and zero. The forward and reverse maps are merged and
// cross-checked: any conflict between them is corruption.
func decode(data []byte) (*Vocabulary, error) {
	var f vocabFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, errors.Wrapf(ErrCorrupt, "parsing vocabulary JSON: %v", err)
	}

	v := New()
	maxID := -1
	for tok, id := range f.Vocab {
		if id < 0 {
			return nil, errors.Wrapf(ErrCorrupt, "token %q has negative ID %d", tok, id)
		}
		if prev, ok := v.ids[id]; ok && prev != tok {
			return nil, errors.Wrapf(ErrCorrupt, "ID %d maps to both %q and %q", id, prev, tok)
		}
		v.tokens[tok] = id
		v.ids[id] = tok
		if id > maxID {
			maxID = id
		}
	}
	for key, tok := range f.ReverseVocab {
		id, err := strconv.Atoi(key)
		if err != nil {
			return nil, errors.Wrapf(ErrCorrupt, "reverse map key %q is not an integer", key)
		}
		if id < 0 {
			return nil, errors.Wrapf(ErrCorrupt, "reverse map key %q is negative", key)
		}
		if prev, ok := v.ids[id]; ok {
			if prev != tok {
				return nil, errors.Wrapf(ErrCorrupt, "ID %d maps to both %q and %q", id, prev, tok)
			}
			continue
		}
		if prevID, ok := v.tokens[tok]; ok && prevID != id {
			return nil, errors.Wrapf(ErrCorrupt, "token %q maps to both %d and %d", tok, prevID, id)
		}
		v.tokens[tok] = id
		v.ids[id] = tok
		if id > maxID {
			maxID = id
		}
	}

	// nextTokenId must stay strictly above every assigned ID; repair rather
	// than hand out duplicates if the persisted counter lags.
	v.next = f.NextTokenID
	if v.next <= maxID {
		klog.Warningf("persisted next ID %d not above max assigned ID %d, bumping", f.NextTokenID, maxID)
		v.next = maxID + 1
	}
	return v, nil
}

// withFileLock runs fn while holding an exclusive flock on lockPath, polling
// until the lock is acquired. The lock file is left in place for future
// savers.
func withFileLock(lockPath string, fn func()) (err error) {
	fileLock := flock.New(lockPath)
	for {
		locked, err := fileLock.TryLock()
		if err != nil {
			return errors.Wrapf(err, "while trying to lock %q", lockPath)
		}
		if locked {
			break
		}
		time.Sleep(time.Millisecond * time.Duration(50+rand.Intn(100)))
	}
	defer func() {
		if unlockErr := fileLock.Unlock(); unlockErr != nil && err == nil {
			err = errors.Wrapf(unlockErr, "unlocking file %q", lockPath)
		}
	}()
	fn()
	return nil
}
