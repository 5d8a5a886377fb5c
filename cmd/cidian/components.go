package main

import (
	"github.com/spf13/cobra"
)

func newComponentsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "components <component>",
		Short: "Show saved characters containing a radical or component",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			chars, err := a.store.CharactersWithComponent(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if len(chars) == 0 {
				cmd.Println("no saved characters contain this component")
				return nil
			}
			for _, ch := range chars {
				if ch.StrokeCount > 0 {
					cmd.Printf("%s  (%d strokes)\n", ch.Character, ch.StrokeCount)
				} else {
					cmd.Println(ch.Character)
				}
			}
			return nil
		},
	}
}
