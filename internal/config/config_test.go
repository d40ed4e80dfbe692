package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wordtok/wordtok/vocab"
)

type fakeCmd struct{ fs *pflag.FlagSet }

func (f fakeCmd) Flags() *pflag.FlagSet { return f.fs }

func newFlags(t *testing.T, args ...string) fakeCmd {
	t.Helper()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	RegisterFlags(fs, DefaultConfig())
	require.NoError(t, fs.Parse(args))
	return fakeCmd{fs: fs}
}

func TestDefaults(t *testing.T) {
	cfg, err := Load(LoadOptions{Cmd: newFlags(t), Defaults: DefaultConfig()})
	require.NoError(t, err)
	assert.Equal(t, vocab.DefaultPath, cfg.Vocab.Path)
	assert.Equal(t, ":8080", cfg.Server.ListenAddr)
	assert.Equal(t, int64(1<<20), cfg.Server.MaxBodyBytes)
}

func TestFlagOverridesDefault(t *testing.T) {
	cmd := newFlags(t, "--vocab-path", "other.json", "--server-listen-addr", ":9999")
	cfg, err := Load(LoadOptions{Cmd: cmd, Defaults: DefaultConfig()})
	require.NoError(t, err)
	assert.Equal(t, "other.json", cfg.Vocab.Path)
	assert.Equal(t, ":9999", cfg.Server.ListenAddr)
}

func TestEnvOverridesDefault(t *testing.T) {
	t.Setenv("WORDTOK_VOCAB_PATH", "env.json")
	cfg, err := Load(LoadOptions{Cmd: newFlags(t), Defaults: DefaultConfig()})
	require.NoError(t, err)
	assert.Equal(t, "env.json", cfg.Vocab.Path)
}

func TestConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wordtok.yaml")
	require.NoError(t, os.WriteFile(path, []byte("vocab:\n  path: file.json\n"), 0644))

	cfg, err := Load(LoadOptions{ConfigFile: path, Defaults: DefaultConfig()})
	require.NoError(t, err)
	assert.Equal(t, "file.json", cfg.Vocab.Path)
}

func TestMissingExplicitConfigFileFails(t *testing.T) {
	_, err := Load(LoadOptions{ConfigFile: filepath.Join(t.TempDir(), "nope.yaml"), Defaults: DefaultConfig()})
	require.Error(t, err)
}
