package cmd

import (
	"github.com/spf13/cobra"
)

// version is set via -ldflags at build time.
var version = "(devel)"

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "minuteclass",
		Short:        "One-minute daily lessons in Kiswahili and English",
		Long:         "Minute Class: short, time-of-day micro-lessons on communication, business, leadership, finance and more.",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runApp(cmd)
		},
	}

	pf := root.PersistentFlags()
	pf.String("db", "", "Path to SQLite database file (overrides MINUTECLASS_DB)")
	pf.String("prefs", "", "Preference engine: sqlite, json, redis or memory (overrides MINUTECLASS_PREFS)")
	pf.String("prefs-path", "", "Preference file for the json engine (overrides MINUTECLASS_PREFS_PATH)")
	pf.String("redis-url", "", "Redis URL for the redis engine (overrides MINUTECLASS_REDIS_URL)")
	pf.String("log-file", "", "Write logs to this file (overrides MINUTECLASS_LOG_FILE)")
	pf.String("log-level", "", "Log level: debug, info, warn or error (overrides MINUTECLASS_LOG_LEVEL)")
	pf.Bool("ephemeral", false, "Keep preferences in memory for this run only")

	root.AddCommand(
		newTodayCmd(),
		newOpenCmd(),
		newTopicsCmd(),
		newBookmarksCmd(),
		newPremiumCmd(),
		newStreakCmd(),
		newLangCmd(),
		newLLMCmd(),
		newVersionCmd(),
		newUpdateCmd(),
	)
	return root
}

func Execute() error {
	return newRootCmd().Execute()
}
