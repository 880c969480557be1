package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/okian/mindease/internal/domain/stress"
)

func newScoreCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "score [text...]",
		Short: "Score text on the 1-10 stress scale",
		Long:  "Score text on the 1-10 stress scale. Without arguments the text is read from stdin.",
		RunE: func(_ *cobra.Command, args []string) error {
			text, err := g.text(args)
			if err != nil {
				return err
			}
			s, err := g.scorer()
			if err != nil {
				return err
			}
			a := s.Analyze(text)
			return g.render(a, func(w io.Writer) error {
				return writeAnalysis(w, a)
			})
		},
	}
}

// text joins args, falling back to stdin.
func (g *globals) text(args []string) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	b, err := io.ReadAll(g.in)
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	text := strings.TrimSpace(string(b))
	if text == "" {
		return "", usageErr("no text given")
	}
	return text, nil
}

func writeAnalysis(w io.Writer, a stress.Analysis) error {
	if _, err := fmt.Fprintf(w, "score: %d/10 (%s)\n", a.Score, a.Label); err != nil {
		return err
	}
	if len(a.Matches) == 0 {
		_, err := fmt.Fprintln(w, "matches: none")
		return err
	}
	parts := make([]string, len(a.Matches))
	for i, m := range a.Matches {
		parts[i] = fmt.Sprintf("%s(%+d)", m.Keyword, m.Weight)
	}
	_, err := fmt.Fprintf(w, "matches: %s\n", strings.Join(parts, ", "))
	return err
}
