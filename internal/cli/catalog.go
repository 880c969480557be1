package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/okian/mindease/internal/domain/catalog"
	"github.com/okian/mindease/internal/domain/model"
)

func newCatalogCmd(g *globals) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "List relaxation videos and mindfulness games",
	}

	var category string
	videos := &cobra.Command{
		Use:   "videos",
		Short: "List relaxation videos",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			vs := catalog.VideosByCategory(category)
			return g.render(vs, func(w io.Writer) error {
				tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
				fmt.Fprintln(tw, "TITLE\tDURATION\tCATEGORY")
				for _, v := range vs {
					fmt.Fprintf(tw, "%s\t%s\t%s\n", v.Title, v.Duration, v.Category)
				}
				return tw.Flush()
			})
		},
	}
	videos.Flags().StringVar(&category, "category", "", "Only list this category")

	var difficulty string
	games := &cobra.Command{
		Use:   "games",
		Short: "List mindfulness games",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			if difficulty != "" && !knownDifficulty(difficulty) {
				return usageErr("unknown difficulty %q (want Easy, Medium or Hard)", difficulty)
			}
			gs := catalog.GamesByDifficulty(difficulty)
			return g.render(gs, func(w io.Writer) error {
				tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
				fmt.Fprintln(tw, "NAME\tDIFFICULTY\tDESCRIPTION")
				for _, gm := range gs {
					fmt.Fprintf(tw, "%s %s\t%s\t%s\n", gm.Icon, gm.Name, gm.Difficulty, gm.Description)
				}
				return tw.Flush()
			})
		},
	}
	games.Flags().StringVar(&difficulty, "difficulty", "", "Only list Easy, Medium or Hard games")

	cmd.AddCommand(videos, games)
	return cmd
}

func knownDifficulty(s string) bool {
	for _, d := range []model.Difficulty{model.DifficultyEasy, model.DifficultyMedium, model.DifficultyHard} {
		if strings.EqualFold(string(d), strings.TrimSpace(s)) {
			return true
		}
	}
	return false
}
