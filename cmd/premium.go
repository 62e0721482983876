package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/minuteclass/minuteclass/internal/controller"
	"github.com/minuteclass/minuteclass/internal/lessons"
	"github.com/minuteclass/minuteclass/internal/premium"
)

func newPremiumCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "premium",
		Short: "Browse and unlock Premium Club content",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List premium items",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := openEnv(cmd, false)
			if err != nil {
				return err
			}
			defer env.Close()

			lang := env.ctrl.Language()
			out := cmd.OutOrStdout()
			for _, it := range premium.All() {
				fmt.Fprintf(out, "%-4s  %-12s  %-34s  %-11s  %-14s  %s\n",
					it.ID, it.Type.Label(), truncate(it.Title(lang), 34), it.Price, it.Duration,
					ownedLabel(lang, env.ctrl.IsUnlocked(it.ID)))
			}
			return nil
		},
	}

	show := &cobra.Command{
		Use:   "show <id>",
		Short: "Show a premium item; unlocked items include their content",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := openEnv(cmd, false)
			if err != nil {
				return err
			}
			defer env.Close()

			it, ok := premium.Lookup(args[0])
			if !ok {
				return fmt.Errorf("%w: %q", controller.ErrUnknownItem, args[0])
			}
			lang := env.ctrl.Language()
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s · %s · %s\n", it.Type.Label(), it.Price, it.Duration)
			fmt.Fprintln(out, rule)
			fmt.Fprintln(out, it.Title(lang))
			fmt.Fprintln(out)
			fmt.Fprintln(out, it.Description(lang))
			fmt.Fprintln(out, rule)
			if !env.ctrl.IsUnlocked(it.ID) {
				fmt.Fprintf(out, "Locked. Run: minuteclass premium unlock %s\n", it.ID)
				return nil
			}
			for _, p := range it.Paragraphs() {
				fmt.Fprintln(out, p)
			}
			return nil
		},
	}

	unlock := &cobra.Command{
		Use:   "unlock <id>",
		Short: "Unlock a premium item (simulated purchase)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := openEnv(cmd, false)
			if err != nil {
				return err
			}
			defer env.Close()

			if err := env.ctrl.Unlock(cmd.Context(), args[0]); err != nil {
				if errors.Is(err, controller.ErrUnknownItem) {
					return fmt.Errorf("%w (see: minuteclass premium list)", err)
				}
				return err
			}
			it, _ := premium.Lookup(args[0])
			fmt.Fprintf(cmd.OutOrStdout(), "Unlocked %q\n", it.Title(env.ctrl.Language()))
			return nil
		},
	}

	cmd.AddCommand(list, show, unlock)
	return cmd
}

func ownedLabel(lang lessons.Language, owned bool) string {
	switch {
	case owned && lang == lessons.LanguageEnglish:
		return "Owned"
	case owned:
		return "Umemiliki"
	case lang == lessons.LanguageEnglish:
		return "Unlock Now"
	default:
		return "Fungua Sasa"
	}
}
