package root

import (
	"github.com/spf13/cobra"

	"arcane/internal/tui"
)

func newBoardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "board",
		Short: "Open the interactive board",
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
			if _, err := svc.StartSession(ctx, sess); err != nil {
				return err
			}
			return tui.RunBoard(ctx, svc, sess, cmd.OutOrStdout())
		},
	}

	return cmd
}
