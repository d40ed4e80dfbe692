// Package config loads the process configuration from defaults, an optional
// config file (yaml/toml/json), environment variables with the WORDTOK prefix,
// and command-line flags, in increasing order of precedence.
package config

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/wordtok/wordtok/vocab"
)

type Config struct {
	Vocab  VocabConfig  `mapstructure:"vocab"`
	Server ServerConfig `mapstructure:"server"`
}

type VocabConfig struct {
	// Path is the vocabulary file this process reads and writes. There is no
	// hidden process-wide default beyond vocab.DefaultPath.
	Path string `mapstructure:"path"`
}

type ServerConfig struct {
	ListenAddr      string `mapstructure:"listen_addr"`
	MaxBodyBytes    int64  `mapstructure:"max_body_bytes"`
	ShutdownTimeout int    `mapstructure:"shutdown_timeout"`
}

type LoadOptions struct {
	Cmd        flagBinder
	ConfigFile string
	Defaults   Config
}

type flagBinder interface {
	Flags() *pflag.FlagSet
}

func DefaultConfig() Config {
	return Config{
		Vocab: VocabConfig{
			Path: vocab.DefaultPath,
		},
		Server: ServerConfig{
			ListenAddr:      ":8080",
			MaxBodyBytes:    1 << 20,
			ShutdownTimeout: 5,
		},
	}
}

func RegisterFlags(fs *pflag.FlagSet, defaults Config) {
	fs.String("vocab-path", defaults.Vocab.Path, "Vocabulary file to read and write")
	fs.String("server-listen-addr", defaults.Server.ListenAddr, "HTTP listen address")
	fs.Int64("server-max-body-bytes", defaults.Server.MaxBodyBytes, "Maximum HTTP request body size in bytes")
	fs.Int("server-shutdown-timeout", defaults.Server.ShutdownTimeout, "Graceful shutdown timeout in seconds")
}

func Load(opts LoadOptions) (Config, error) {
	v := viper.New()

	setDefaults(v, opts.Defaults)
	if opts.Cmd != nil {
		if err := v.BindPFlags(opts.Cmd.Flags()); err != nil {
			return Config{}, errors.Wrap(err, "bind flags")
		}
	}
	registerAliases(v)

	v.SetEnvPrefix("WORDTOK")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, errors.Wrap(err, "read config file")
		}
	} else {
		v.SetConfigName("wordtok")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return Config{}, errors.Wrap(err, "read config file")
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, errors.Wrap(err, "decode config")
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper, c Config) {
	v.SetDefault("vocab.path", c.Vocab.Path)
	v.SetDefault("server.listen_addr", c.Server.ListenAddr)
	v.SetDefault("server.max_body_bytes", c.Server.MaxBodyBytes)
	v.SetDefault("server.shutdown_timeout", c.Server.ShutdownTimeout)
}

func registerAliases(v *viper.Viper) {
	v.RegisterAlias("vocab.path", "vocab-path")
	v.RegisterAlias("server.listen_addr", "server-listen-addr")
	v.RegisterAlias("server.max_body_bytes", "server-max-body-bytes")
	v.RegisterAlias("server.shutdown_timeout", "server-shutdown-timeout")
}
