package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newBookmarksCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "bookmarks",
		Aliases: []string{"library"},
		Short:   "Manage bookmarked lessons",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List bookmarked lessons",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := openEnv(cmd, false)
			if err != nil {
				return err
			}
			defer env.Close()

			out := cmd.OutOrStdout()
			bookmarks := env.ctrl.Bookmarks()
			if len(bookmarks) == 0 {
				fmt.Fprintln(out, "No bookmarks yet.")
				return nil
			}
			for _, b := range bookmarks {
				fmt.Fprintf(out, "%-52s  %-18s  %-18s  %s\n",
					b.ID, truncate(b.Category.Label(b.Language), 18), b.Date, b.Title)
			}
			return nil
		},
	}

	show := &cobra.Command{
		Use:   "show <id>",
		Short: "Print a bookmarked lesson",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := openEnv(cmd, false)
			if err != nil {
				return err
			}
			defer env.Close()

			l, ok := env.ctrl.Bookmark(args[0])
			if !ok {
				return fmt.Errorf("no bookmark with id %q", args[0])
			}
			printLesson(cmd.OutOrStdout(), &l)
			return nil
		},
	}

	toggle := &cobra.Command{
		Use:   "toggle <id>",
		Short: "Bookmark the current lesson, or remove a bookmark",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := openEnv(cmd, false)
			if err != nil {
				return err
			}
			defer env.Close()

			ctx := cmd.Context()
			id := args[0]
			l, ok := env.ctrl.Bookmark(id)
			if !ok {
				current, err := env.ctrl.Refresh(ctx)
				if err != nil {
					return fmt.Errorf("fetch lesson: %w", err)
				}
				if current.ID != id {
					return fmt.Errorf("lesson %q is neither bookmarked nor today's lesson", id)
				}
				l = *current
			}

			if env.ctrl.ToggleBookmark(ctx, l) {
				fmt.Fprintf(cmd.OutOrStdout(), "Bookmarked %q\n", l.Title)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "Removed bookmark %q\n", l.Title)
			}
			return nil
		},
	}

	cmd.AddCommand(list, show, toggle)
	return cmd
}
