package main

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/wordtok/wordtok/tokenizers"
)

func newTrainCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "train [file]...",
		Short: "Build a fresh vocabulary from a corpus",
		Long: `Build a fresh vocabulary from a corpus of texts, one per line, replacing
whatever the configured vocabulary file held before. With no file arguments
the corpus is read from stdin.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			texts, err := readCorpus(cmd.InOrStdin(), args)
			if err != nil {
				return err
			}

			store, err := activeStore()
			if err != nil {
				return err
			}
			v, err := tokenizers.BuildVocabulary(store, texts)
			if err != nil {
				return err
			}

			stats := tokenizers.Stats(v)
			fmt.Fprintf(cmd.OutOrStdout(), "trained on %d texts: %d tokens, next ID %d\n",
				len(texts), stats.Size, stats.NextID)
			return nil
		},
	}
}

// readCorpus collects non-empty lines from the given files, or from stdin
// when no files are named.
func readCorpus(stdin io.Reader, paths []string) ([]string, error) {
	var texts []string
	appendLines := func(r io.Reader) error {
		scanner := bufio.NewScanner(r)
		scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
		for scanner.Scan() {
			if line := scanner.Text(); line != "" {
				texts = append(texts, line)
			}
		}
		return scanner.Err()
	}

	if len(paths) == 0 {
		if err := appendLines(stdin); err != nil {
			return nil, errors.Wrap(err, "reading corpus from stdin")
		}
		return texts, nil
	}
	for _, path := range paths {
		f, err := os.Open(path)
		if err != nil {
			return nil, errors.Wrapf(err, "opening corpus file %q", path)
		}
		err = appendLines(f)
		_ = f.Close()
		if err != nil {
			return nil, errors.Wrapf(err, "reading corpus file %q", path)
		}
	}
	return texts, nil
}
