package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/weiyin/cidian/pkg/lookup"
)

func newLookupCmd(a *app) *cobra.Command {
	var (
		contextSentence string
		sourceURL       string
		skipSave        bool
	)
	cmd := &cobra.Command{
		Use:   "lookup <text>",
		Short: "Segment Chinese text and show pinyin, definitions, and character data",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := a.pipeline.Lookup(cmd.Context(), lookup.Request{
				Text:      strings.Join(args, " "),
				Context:   contextSentence,
				SourceURL: sourceURL,
				SkipSave:  skipSave,
			})
			if err != nil {
				return err
			}
			printResult(cmd, res)
			return nil
		},
	}
	cmd.Flags().StringVar(&contextSentence, "context", "", "sentence the text was seen in")
	cmd.Flags().StringVar(&sourceURL, "source-url", "", "where the text was seen")
	cmd.Flags().BoolVar(&skipSave, "skip-save", false, "run the pipeline without recording the lookup")
	return cmd
}

func printResult(cmd *cobra.Command, res *lookup.Result) {
	if len(res.Segments) == 0 {
		cmd.Println("no Chinese text found")
		return
	}
	cmd.Printf("%s  [%s]\n", res.OriginalText, res.FullPinyin)
	for _, seg := range res.Segments {
		known := ""
		if seg.IsAlreadyKnown {
			known = "  (known)"
		}
		cmd.Printf("\n%s  %s%s\n", seg.Word, seg.Pinyin, known)
		if seg.HSKLevel > 0 {
			cmd.Printf("  HSK %d\n", seg.HSKLevel)
		}
		for i, def := range seg.Definitions {
			cmd.Printf("  %d. %s\n", i+1, def)
		}
		for _, ch := range seg.Characters {
			line := fmt.Sprintf("  %s  radical %s", ch.Character, ch.Radical)
			if ch.RadicalMeaning != "" {
				line += " (" + ch.RadicalMeaning + ")"
			}
			if ch.StrokeCount > 0 {
				line += fmt.Sprintf(", %d strokes", ch.StrokeCount)
			}
			cmd.Println(line)
			if seen := res.ComponentOccurrences[ch.Radical]; len(seen) > 0 {
				cmd.Printf("     seen in: %s\n", strings.Join(seen, " "))
			}
		}
	}
}
