package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/okian/mindease/internal/domain/response"
	"github.com/okian/mindease/internal/domain/stress"
)

type replyResult struct {
	Text     string          `json:"text"`
	Analysis stress.Analysis `json:"analysis"`
	Reply    string          `json:"reply"`
}

func newReplyCmd(g *globals) *cobra.Command {
	var seed int64

	cmd := &cobra.Command{
		Use:   "reply [text...]",
		Short: "Score text and pick the assistant reply",
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := g.text(args)
			if err != nil {
				return err
			}
			s, err := g.scorer()
			if err != nil {
				return err
			}
			var opts []response.Option
			if cmd.Flags().Changed("seed") {
				opts = append(opts, response.WithRandSource(response.NewSeededSource(seed)))
			}
			sel, err := g.selector(opts...)
			if err != nil {
				return err
			}

			a := s.Analyze(text)
			res := replyResult{Text: text, Analysis: a, Reply: sel.Reply(text, a.Score)}
			return g.render(res, func(w io.Writer) error {
				if err := writeAnalysis(w, a); err != nil {
					return err
				}
				_, err := fmt.Fprintf(w, "reply: %s\n", res.Reply)
				return err
			})
		},
	}
	cmd.Flags().Int64Var(&seed, "seed", 0, "Seed the reply choice for reproducible output")
	return cmd
}
