package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newEncodeCmd() *cobra.Command {
	var expand bool

	cmd := &cobra.Command{
		Use:   "encode <text>...",
		Short: "Encode text into token IDs",
		Long: `Encode text into token IDs against the configured vocabulary.

Without --expand, tokens missing from the vocabulary map to the unknown
marker. With --expand, they are inserted and the vocabulary file is updated.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tok, err := activeTokenizer()
			if err != nil {
				return err
			}
			ids, err := tok.Encode(strings.Join(args, " "), expand)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderIDs(ids))
			return nil
		},
	}

	cmd.Flags().BoolVar(&expand, "expand", false, "Insert unseen tokens into the vocabulary")
	return cmd
}
