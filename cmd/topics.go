package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/minuteclass/minuteclass/internal/lessons"
)

func newTopicsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "topics",
		Short: "List lesson categories and today's rotation",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := openEnv(cmd, false)
			if err != nil {
				return err
			}
			defer env.Close()

			lang := env.ctrl.Language()
			now := env.ctrl.Now()
			current := env.ctrl.Slot()

			today := make(map[lessons.Category][]lessons.TimeSlot)
			for _, slot := range []lessons.TimeSlot{lessons.SlotMorning, lessons.SlotAfternoon, lessons.SlotNight} {
				cat := lessons.RotateCategory(slot, now)
				today[cat] = append(today[cat], slot)
			}

			out := cmd.OutOrStdout()
			for _, cat := range lessons.AllCategories() {
				mark := " "
				var slots string
				for _, slot := range today[cat] {
					if slot == current {
						mark = "*"
					}
					slots += " " + slot.Label(lang)
				}
				fmt.Fprintf(out, "%s %-16s %-22s%s\n", mark, cat, cat.Label(lang), slots)
			}
			return nil
		},
	}
}
