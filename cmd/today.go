package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/minuteclass/minuteclass/internal/lessons"
)

func newTodayCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "today",
		Short: "Print the lesson for the current time slot",
		Long: "Print the lesson for the current time slot. Without --category the daily\n" +
			"lesson is served from the cache when one exists for this slot, date and language.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := openEnv(cmd, false)
			if err != nil {
				return err
			}
			defer env.Close()

			if name, _ := cmd.Flags().GetString("category"); name != "" {
				cat, ok := lessons.ParseCategory(name)
				if !ok {
					return fmt.Errorf("unknown category %q (see: minuteclass topics)", name)
				}
				env.ctrl.SelectCategory(cat)
			}

			lesson, err := env.ctrl.Refresh(cmd.Context())
			if err != nil {
				return fmt.Errorf("fetch lesson: %w", err)
			}
			if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
				return printJSON(cmd.OutOrStdout(), lesson)
			}
			printLesson(cmd.OutOrStdout(), lesson)
			return nil
		},
	}
	cmd.Flags().StringP("category", "c", "", "Request a lesson for this category instead of the daily rotation")
	cmd.Flags().Bool("json", false, "Print the lesson as JSON")
	return cmd
}

func newOpenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "open",
		Short: "Read the daily lesson and record it for the streak",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := openEnv(cmd, false)
			if err != nil {
				return err
			}
			defer env.Close()

			if _, err := env.ctrl.Refresh(cmd.Context()); err != nil {
				return fmt.Errorf("fetch lesson: %w", err)
			}
			lesson, s, err := env.ctrl.OpenCurrent(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			printLesson(out, lesson)
			fmt.Fprintln(out, streakLine(lesson.Language, s.Count))
			return nil
		},
	}
}
