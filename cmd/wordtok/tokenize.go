package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wordtok/wordtok/segment"
)

func newTokenizeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tokenize <text>...",
		Short: "Split text into word and punctuation tokens",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tokens := segment.Tokenize(strings.Join(args, " "))
			fmt.Fprintln(cmd.OutOrStdout(), renderTokens(tokens, segment.IsSymbol))
			fmt.Fprintln(cmd.OutOrStdout(), dimStyle.Render(fmt.Sprintf("%d tokens", len(tokens))))
			return nil
		},
	}
}
