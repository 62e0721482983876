package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/minuteclass/minuteclass/internal/lessons"
)

func newLangCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "lang [sw|en]",
		Short:     "Show or set the lesson language",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{string(lessons.LanguageSwahili), string(lessons.LanguageEnglish)},
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := openEnv(cmd, false)
			if err != nil {
				return err
			}
			defer env.Close()

			out := cmd.OutOrStdout()
			if len(args) == 0 {
				lang := env.ctrl.Language()
				fmt.Fprintf(out, "%s (%s)\n", lang, lang.Name())
				return nil
			}
			lang, ok := lessons.ParseLanguage(args[0])
			if !ok {
				return fmt.Errorf("unsupported language %q: want sw or en", args[0])
			}
			env.ctrl.SetLanguage(cmd.Context(), lang)
			fmt.Fprintf(out, "%s (%s)\n", lang, lang.Name())
			return nil
		},
	}
}
