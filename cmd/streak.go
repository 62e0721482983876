package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/minuteclass/minuteclass/internal/lessons"
	"github.com/minuteclass/minuteclass/internal/streak"
)

func newStreakCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "streak",
		Short: "Show the reading streak",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := openEnv(cmd, false)
			if err != nil {
				return err
			}
			defer env.Close()

			s := env.ctrl.Streak()
			count := s.Count
			if !streak.Active(s, env.ctrl.Now()) {
				count = 0
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, streakLine(env.ctrl.Language(), count))
			if s.LastDate != "" {
				fmt.Fprintf(out, "last read: %s\n", s.LastDate)
			}
			return nil
		},
	}
}

func streakLine(lang lessons.Language, count int) string {
	if lang == lessons.LanguageEnglish {
		if count == 1 {
			return "Streak: 1 day"
		}
		return fmt.Sprintf("Streak: %d days", count)
	}
	return fmt.Sprintf("Mfululizo: siku %d", count)
}
