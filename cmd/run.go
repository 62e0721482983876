package cmd

import (
	"github.com/spf13/cobra"

	"github.com/minuteclass/minuteclass/internal/app"
)

// runApp opens the environment and launches the TUI. Logs go to a file so
// they do not corrupt the screen.
func runApp(cmd *cobra.Command) error {
	env, err := openEnv(cmd, true)
	if err != nil {
		return err
	}
	defer env.Close()

	env.log.Info("starting tui", "version", version, "prefs", env.cfg.PrefsEngine)
	return app.Run(cmd.Context(), app.Options{
		Controller: env.ctrl,
		Log:        env.log,
	})
}
