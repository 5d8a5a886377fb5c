package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/weiyin/cidian/pkg/vocab"
)

func newVocabCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vocab",
		Short: "Inspect the personal vocabulary store",
	}
	cmd.AddCommand(newVocabListCmd(a), newVocabShowCmd(a))
	return cmd
}

func newVocabListCmd(a *app) *cobra.Command {
	var sortBy string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List every saved word",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := a.store.List(cmd.Context(), vocab.SortBy(sortBy))
			if err != nil {
				return err
			}
			for _, e := range entries {
				cmd.Printf("%-8s %-16s ×%-4d last seen %s\n",
					e.Word, e.Pinyin, e.LookupCount,
					time.UnixMilli(e.LastSeenAt).Format("2006-01-02"))
			}
			cmd.Printf("%d words\n", len(entries))
			return nil
		},
	}
	cmd.Flags().StringVar(&sortBy, "sort", string(vocab.SortByLastSeen),
		"sort order: lookup-count, last-seen, or pinyin")
	return cmd
}

func newVocabShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <word>",
		Short: "Show one word's full record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := a.store.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			cmd.Printf("%s  %s\n", e.Word, e.Pinyin)
			cmd.Printf("looked up %d times, first %s, last %s\n",
				e.LookupCount,
				time.UnixMilli(e.FirstSeenAt).Format(time.DateTime),
				time.UnixMilli(e.LastSeenAt).Format(time.DateTime))
			for i, def := range e.Definitions {
				cmd.Printf("  %d. %s\n", i+1, def)
			}
			for _, ch := range e.Characters {
				cmd.Printf("  %s  radical %s, %d strokes\n", ch.Character, ch.Radical, ch.StrokeCount)
			}
			for _, c := range e.Contexts {
				cmd.Printf("  ~ %s", c.Sentence)
				if c.SourceURL != "" {
					cmd.Printf("  (%s)", c.SourceURL)
				}
				cmd.Println()
			}
			return nil
		},
	}
}
