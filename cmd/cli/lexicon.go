package main

import (
	"fmt"
	"io"
	"strings"

	"diarylens/internal/lexicon"

	"github.com/spf13/cobra"
)

func newLexiconCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lexicon [word...]",
		Short: "Show the built-in word lists, or which categories each word belongs to",
		RunE: func(cmd *cobra.Command, args []string) error {
			writeLexicon(cmd.OutOrStdout(), lexicon.Default(), args)
			return nil
		},
	}
}

func writeLexicon(w io.Writer, store *lexicon.Store, words []string) {
	if len(words) == 0 {
		for _, c := range store.Categories() {
			list := store.Words(c)
			fmt.Fprintf(w, "%-18s %3d  %s\n", c, len(list), strings.Join(list, " "))
		}
		return
	}

	for _, word := range words {
		cats := store.CategoriesOf(word)
		if len(cats) == 0 {
			fmt.Fprintf(w, "%s: (none)\n", word)
			continue
		}
		names := make([]string, len(cats))
		for i, c := range cats {
			names[i] = string(c)
		}
		fmt.Fprintf(w, "%s: %s\n", word, strings.Join(names, ", "))
	}
}
