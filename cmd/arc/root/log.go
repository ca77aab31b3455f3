package root

import (
	"fmt"

	"github.com/spf13/cobra"

	"arcane/internal/ui"
)

func newLogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "log",
		Short: "Show system messages, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			sess, err := activeSession(ctx, svc, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			msgs, err := svc.Messages(ctx, sess)
			if err != nil {
				return err
			}
			if len(msgs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("No system messages."))
				return nil
			}
			for _, m := range msgs {
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", ui.Muted.Render(m.Timestamp.Local().Format("Jan 02 15:04")), ui.MessageText(m.Type, m.Message))
			}
			return nil
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Clear the system message log",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			sess, err := svc.CurrentSession(ctx)
			if err != nil {
				return err
			}
			if err := svc.ClearMessages(ctx, sess); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("Log cleared."))
			return nil
		},
	})
	return cmd
}
