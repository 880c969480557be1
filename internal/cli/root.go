// Package cli implements the mindease-cli commands: offline scoring and
// replies, catalog and profile views, and a probe against a running server.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/okian/mindease/internal/config"
	"github.com/okian/mindease/internal/domain/response"
	"github.com/okian/mindease/internal/domain/stress"
	"github.com/okian/mindease/pkg/logger"
)

// ExitError carries a process exit code out of a command.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string { return e.Err.Error() }
func (e *ExitError) Unwrap() error { return e.Err }

// Exit codes.
const (
	ExitFailure      = 1
	ExitProbeFailure = 2
)

// ErrUsage reports bad command input.
var ErrUsage = errors.New("usage")

// globals holds state shared by every command.
type globals struct {
	in      io.Reader
	out     io.Writer
	errOut  io.Writer
	output  string
	verbose bool
	cfg     *config.Config
}

// NewRootCommand builds the mindease-cli command tree. Output goes to out,
// logs to errOut.
func NewRootCommand(in io.Reader, out, errOut io.Writer, version string) *cobra.Command {
	g := &globals{in: in, out: out, errOut: errOut}

	root := &cobra.Command{
		Use:           "mindease-cli",
		Short:         "Score text, preview replies and probe a MindEase server",
		Version:       version,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return g.setup(cmd.Context())
		},
	}
	root.SetIn(in)
	root.SetOut(out)
	root.SetErr(errOut)

	flags := root.PersistentFlags()
	flags.StringVarP(&g.output, "output", "o", FormatText, "Output format: text, json or yaml")
	flags.BoolVar(&g.verbose, "verbose", false, "Log debug output to stderr")

	root.AddCommand(
		newScoreCmd(g),
		newReplyCmd(g),
		newCatalogCmd(g),
		newProfileCmd(g),
		newProbeCmd(g),
	)
	return root
}

// setup validates the output format, loads configuration the way the
// server does and initializes logging on errOut.
func (g *globals) setup(ctx context.Context) error {
	if err := validFormat(g.output); err != nil {
		return err
	}
	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}
	g.cfg = cfg
	if err := logger.Init(logger.WithOutput(g.errOut), logger.WithFormat(cfg.LogFormat)); err != nil {
		return err
	}
	level := "warn"
	if g.verbose {
		level = "debug"
	}
	return logger.SetLevelString(level)
}

// scorer builds a scorer with the configured lexicon override.
func (g *globals) scorer() (*stress.Scorer, error) {
	lx, ok, err := g.cfg.LexiconOverride()
	if err != nil {
		return nil, err
	}
	var opts []stress.Option
	if ok {
		opts = append(opts, stress.WithLexicon(lx))
	}
	return stress.NewScorer(opts...)
}

// selector builds a reply selector with the configured pools.
func (g *globals) selector(extra ...response.Option) (*response.Selector, error) {
	pools, err := g.cfg.ResponsePools()
	if err != nil {
		return nil, err
	}
	return response.New(append([]response.Option{response.WithPools(pools)}, extra...)...)
}

func usageErr(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrUsage, fmt.Sprintf(format, args...))
}
