package main

import (
	goflag "flag"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"k8s.io/klog/v2"

	"github.com/wordtok/wordtok/internal/config"
	"github.com/wordtok/wordtok/tokenizers/words"
	"github.com/wordtok/wordtok/vocab"
)

var (
	cfgFile   string
	activeCfg config.Config
)

func NewRootCmd() *cobra.Command {
	defaults := config.DefaultConfig()

	cmd := &cobra.Command{
		Use:   "wordtok",
		Short: "Word-level tokenizer with a persistent vocabulary",
		Long: `wordtok splits text into word and punctuation tokens, maps them to integer
IDs against a vocabulary file that grows incrementally, and reconstructs text
from ID sequences.

The vocabulary file is the unit of persistence; point --vocab-path (or
WORDTOK_VOCAB_PATH) at it. Only one process should write a given vocabulary
file at a time: concurrent writers follow last-save-wins.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			loaded, err := config.Load(config.LoadOptions{
				Cmd:        cmd,
				ConfigFile: cfgFile,
				Defaults:   defaults,
			})
			if err != nil {
				return err
			}
			activeCfg = loaded
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Optional config file (yaml|toml|json)")
	config.RegisterFlags(cmd.PersistentFlags(), defaults)

	klogFlags := goflag.NewFlagSet("klog", goflag.ContinueOnError)
	klog.InitFlags(klogFlags)
	cmd.PersistentFlags().AddGoFlagSet(klogFlags)

	cmd.AddCommand(newTokenizeCmd())
	cmd.AddCommand(newEncodeCmd())
	cmd.AddCommand(newDecodeCmd())
	cmd.AddCommand(newTrainCmd())
	cmd.AddCommand(newVocabCmd())
	cmd.AddCommand(newServeCmd())

	return cmd
}

// activeStore returns the vocabulary store selected by the loaded config.
func activeStore() (*vocab.Store, error) {
	if activeCfg.Vocab.Path == "" {
		return nil, errors.New("configuration not loaded")
	}
	return vocab.NewStore(activeCfg.Vocab.Path), nil
}

// activeTokenizer loads the configured vocabulary into a tokenizer.
func activeTokenizer() (*words.Tokenizer, error) {
	store, err := activeStore()
	if err != nil {
		return nil, err
	}
	return words.New(store)
}
