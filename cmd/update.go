package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/minuteclass/minuteclass/internal/release"
)

func newUpdateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "update",
		Short: "Update minuteclass to the latest release",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
			defer cancel()

			out := cmd.OutOrStdout()
			err := newChecker().Install(ctx, version, func(_ release.Stage, msg string) {
				fmt.Fprintln(out, msg)
			})
			switch {
			case err == nil:
				return nil
			case errors.Is(err, release.ErrDevBuild):
				fmt.Fprintln(out, "Cannot update a development build. Install a release build first.")
				return nil
			case errors.Is(err, release.ErrAlreadyLatest):
				fmt.Fprintln(out, "Already running the latest version.")
				return nil
			case errors.Is(err, os.ErrPermission):
				return fmt.Errorf("%w\n\nTry running: sudo minuteclass update", err)
			}
			return err
		},
	}
}
