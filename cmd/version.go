package cmd

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/minuteclass/minuteclass/internal/release"
)

// newChecker builds the release client. Tests point it at a local server.
var newChecker = func() *release.Checker {
	return release.NewChecker()
}

func newVersionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print the current version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "minuteclass", version)

			if check, _ := cmd.Flags().GetBool("check"); !check {
				return nil
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), 15*time.Second)
			defer cancel()

			res, err := newChecker().Check(ctx, version)
			switch {
			case errors.Is(err, release.ErrDevBuild):
				fmt.Fprintln(out, "Development build; no release to compare against.")
				return nil
			case err != nil:
				return fmt.Errorf("check for updates: %w", err)
			case res.UpdateAvailable:
				fmt.Fprintf(out, "A newer release is available: %s\n%s\nRun: minuteclass update\n", res.Latest, res.URL)
			default:
				fmt.Fprintln(out, "Up to date.")
			}
			return nil
		},
	}
	cmd.Flags().Bool("check", false, "Also check for a newer release")
	return cmd
}
