package vocab

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tempStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(filepath.Join(t.TempDir(), "vocab.json"))
}

func TestNewStoreDefaultsPath(t *testing.T) {
	assert.Equal(t, DefaultPath, NewStore("").Path())
	assert.Equal(t, "custom.json", NewStore("custom.json").Path())
}

func TestLoadMissingFileYieldsEmpty(t *testing.T) {
	s := tempStore(t)
	v, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, 0, v.Len())
	assert.False(t, v.Initialized())
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := tempStore(t)
	v := Init()
	v.Insert("hello")
	v.Insert(",")
	v.Insert("world")
	require.NoError(t, s.Save(v))

	loaded, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, v.Len(), loaded.Len())
	assert.Equal(t, v.NextID(), loaded.NextID())
	for _, e := range v.Entries() {
		id, ok := loaded.Lookup(e.Token)
		require.True(t, ok, "token %q missing after reload", e.Token)
		assert.Equal(t, e.ID, id)
		tok, ok := loaded.Token(e.ID)
		require.True(t, ok)
		assert.Equal(t, e.Token, tok)
	}
}

func TestSaveLeavesNoTempFile(t *testing.T) {
	s := tempStore(t)
	require.NoError(t, s.Save(Init()))
	_, err := os.Stat(s.Path() + ".tmp")
	assert.True(t, os.IsNotExist(err))
}

func TestSaveWritesWireFormat(t *testing.T) {
	s := tempStore(t)
	v := Init()
	v.Insert("hello")
	require.NoError(t, s.Save(v))

	raw, err := os.ReadFile(s.Path())
	require.NoError(t, err)
	var f map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &f))
	for _, key := range []string{"vocab", "reverseVocab", "nextTokenId", "savedAt", "version"} {
		assert.Contains(t, f, key)
	}

	var reverse map[string]string
	require.NoError(t, json.Unmarshal(f["reverseVocab"], &reverse))
	assert.Equal(t, Unknown, reverse["0"])
	assert.Equal(t, "hello", reverse["1"])
}

func TestLoadCorruptFileFails(t *testing.T) {
	s := tempStore(t)
	require.NoError(t, os.WriteFile(s.Path(), []byte("{not json"), 0644))

	_, err := s.Load()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrCorrupt))
}

func TestLoadInconsistentMapsFails(t *testing.T) {
	s := tempStore(t)
	file := `{"vocab":{"a":1},"reverseVocab":{"1":"b"},"nextTokenId":2}`
	require.NoError(t, os.WriteFile(s.Path(), []byte(file), 0644))

	_, err := s.Load()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrCorrupt))
}

func TestLoadDefaultsMissingFields(t *testing.T) {
	s := tempStore(t)
	require.NoError(t, os.WriteFile(s.Path(), []byte(`{}`), 0644))

	v, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, 0, v.Len())
	assert.Equal(t, 0, v.NextID())
}

func TestLoadRepairsLaggingNextID(t *testing.T) {
	s := tempStore(t)
	file := `{"vocab":{"[UNK]":0,"hello":1},"nextTokenId":0}`
	require.NoError(t, os.WriteFile(s.Path(), []byte(file), 0644))

	v, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, 2, v.NextID())
	assert.Equal(t, 2, v.Insert("fresh"))
}

func TestResetReinitializesAndPersists(t *testing.T) {
	s := tempStore(t)
	v := Init()
	v.Insert("hello")
	require.NoError(t, s.Save(v))

	v, err := s.Reset()
	require.NoError(t, err)
	assert.Equal(t, 1, v.Len())
	assert.True(t, v.HasUnknown())

	loaded, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, 1, loaded.Len())
	_, ok := loaded.Lookup("hello")
	assert.False(t, ok)
}

func TestExportImportFullReplacement(t *testing.T) {
	v := Init()
	v.Insert("alpha")
	v.Insert("beta")

	data, err := Export(v)
	require.NoError(t, err)

	imported, err := Import(data)
	require.NoError(t, err)
	assert.Equal(t, v.Len(), imported.Len())
	assert.Equal(t, v.NextID(), imported.NextID())
	id, ok := imported.Lookup("beta")
	require.True(t, ok)
	assert.Equal(t, 2, id)
}

func TestImportGarbageFails(t *testing.T) {
	_, err := Import([]byte("]["))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrCorrupt))
}

func TestImportAndSavePersistsReplacement(t *testing.T) {
	s := tempStore(t)
	old := Init()
	old.Insert("stale")
	require.NoError(t, s.Save(old))

	data, err := Export(Init())
	require.NoError(t, err)
	v, err := s.ImportAndSave(data)
	require.NoError(t, err)
	assert.Equal(t, 1, v.Len())

	loaded, err := s.Load()
	require.NoError(t, err)
	_, ok := loaded.Lookup("stale")
	assert.False(t, ok)
}
