package cli

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/okian/mindease/internal/probe"
)

func newProbeCmd(g *globals) *cobra.Command {
	var cfg probe.Config

	cmd := &cobra.Command{
		Use:   "probe",
		Short: "Play scripted conversations against a running server",
		Long: "Play scripted conversations against a running server and check that scores,\n" +
			"duplicate handling and replies agree with the local configuration.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			lx, ok, err := g.cfg.LexiconOverride()
			if err != nil {
				return err
			}
			if ok {
				cfg.Lexicon = &lx
			}
			if cfg.Pools, err = g.cfg.ResponsePools(); err != nil {
				return err
			}
			cfg.Verbose = g.verbose

			stats, runErr := probe.Run(cmd.Context(), cfg)
			if stats != nil {
				if err := g.render(stats, func(w io.Writer) error {
					return writeProbeStats(w, stats)
				}); err != nil {
					return err
				}
			}
			if runErr != nil {
				return &ExitError{Code: ExitProbeFailure, Err: runErr}
			}
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&cfg.BaseURL, "url", probe.DefaultBaseURL, "Base URL of the service")
	flags.IntVar(&cfg.Rounds, "rounds", probe.DefaultRounds, "Times each scenario is played")
	flags.IntVar(&cfg.Workers, "workers", probe.DefaultWorkers, "Concurrent conversations")
	flags.DurationVar(&cfg.Timeout, "timeout", probe.DefaultTimeout, "HTTP request timeout")
	flags.DurationVar(&cfg.ReplyTimeout, "reply-timeout", probe.DefaultReplyTimeout, "How long to wait for each reply")
	flags.DurationVar(&cfg.PollInterval, "poll", probe.DefaultPollInterval, "Session poll interval")
	return cmd
}

func writeProbeStats(w io.Writer, s *probe.Stats) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "SCENARIO\tSCORE\tBAND\tLATENCY\tRESULT")
	for _, r := range s.Results {
		if r.Scenario == "" {
			continue
		}
		result := "ok"
		if !r.OK() {
			result = r.Error
		}
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\t%s\n", r.Scenario, r.Score, r.Band, r.Latency.Round(time.Millisecond), result)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "%d passed, %d failed, %d duplicates detected in %s\n",
		s.Passed, s.Failed, s.Duplicates, s.Duration.Round(time.Millisecond))
	return err
}
