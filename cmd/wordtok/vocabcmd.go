package main

import (
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/wordtok/wordtok/vocab"
)

func newVocabCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vocab",
		Short: "Inspect and manage the persistent vocabulary",
	}
	cmd.AddCommand(newVocabStatsCmd())
	cmd.AddCommand(newVocabListCmd())
	cmd.AddCommand(newVocabResetCmd())
	cmd.AddCommand(newVocabExportCmd())
	cmd.AddCommand(newVocabImportCmd())
	return cmd
}

func newVocabStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show vocabulary size and counters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tok, err := activeTokenizer()
			if err != nil {
				return err
			}
			s := tok.Stats()
			fmt.Fprintf(cmd.OutOrStdout(), "size: %d\nnext ID: %d\nunknown marker: %v\n",
				s.Size, s.NextID, s.HasUnknown)
			return nil
		},
	}
}

func newVocabListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all vocabulary entries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tok, err := activeTokenizer()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderVocabTable(tok.Vocabulary().Entries()))
			return nil
		},
	}
}

func newVocabResetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Discard the vocabulary and reinitialize it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := activeStore()
			if err != nil {
				return err
			}
			v, err := store.Reset()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "reset %s: %d tokens\n", store.Path(), v.Len())
			return nil
		},
	}
}

func newVocabExportCmd() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the vocabulary as transportable JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tok, err := activeTokenizer()
			if err != nil {
				return err
			}
			data, err := vocab.Export(tok.Vocabulary())
			if err != nil {
				return err
			}
			if out == "" {
				_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
				return err
			}
			if err := os.WriteFile(out, data, 0644); err != nil {
				return errors.Wrapf(err, "writing export to %q", out)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&out, "out", "", "Write the export to a file instead of stdout")
	return cmd
}

func newVocabImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import [file]",
		Short: "Replace the vocabulary from exported JSON",
		Long: `Replace the vocabulary wholesale from a previous export (read from the
given file, or stdin). Import is a full replacement, never a merge.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var data []byte
			var err error
			if len(args) == 1 {
				data, err = os.ReadFile(args[0])
				if err != nil {
					return errors.Wrapf(err, "reading import file %q", args[0])
				}
			} else {
				data, err = io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return errors.Wrap(err, "reading import from stdin")
				}
			}

			store, err := activeStore()
			if err != nil {
				return err
			}
			v, err := store.ImportAndSave(data)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "imported %d tokens into %s\n", v.Len(), store.Path())
			return nil
		},
	}
}
