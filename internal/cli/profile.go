package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/okian/mindease/internal/domain/profile"
)

// exportFileMode is the permission of an exported profile.
const exportFileMode = 0o600

func newProfileCmd(g *globals) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Export or share the wellness profile",
	}

	var file string
	export := &cobra.Command{
		Use:   "export",
		Short: "Write the profile as JSON",
		Long:  "Write the profile as JSON to stdout, or to --file (use --file=" + profile.ExportFilename + " for the download name).",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			b, err := profile.Export(profile.Default())
			if err != nil {
				return err
			}
			if file == "" {
				_, err = g.out.Write(b)
				return err
			}
			if err := os.WriteFile(file, b, exportFileMode); err != nil {
				return fmt.Errorf("write %s: %w", file, err)
			}
			_, err = fmt.Fprintf(g.out, "profile written to %s\n", file)
			return err
		},
	}
	export.Flags().StringVarP(&file, "file", "f", "", "Write to this file instead of stdout")

	var target, url string
	share := &cobra.Command{
		Use:   "share",
		Short: "Print the progress summary to share",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			t, err := profile.ParseTarget(target)
			if err != nil {
				return usageErr("%v", err)
			}
			s := profile.ShareText(profile.Default(), url, t)
			return g.render(s, func(w io.Writer) error {
				if s.Title != "" {
					if _, err := fmt.Fprintln(w, s.Title); err != nil {
						return err
					}
				}
				if _, err := fmt.Fprintln(w, s.Text); err != nil {
					return err
				}
				if s.URL != "" {
					_, err := fmt.Fprintln(w, s.URL)
					return err
				}
				return nil
			})
		},
	}
	share.Flags().StringVar(&target, "target", string(profile.TargetNative), "Share target: native or clipboard")
	share.Flags().StringVar(&url, "url", "http://localhost:9080/", "Link included in the summary")

	cmd.AddCommand(export, share)
	return cmd
}
