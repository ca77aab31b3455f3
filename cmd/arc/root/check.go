package root

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"arcane/internal/engine"
	"arcane/internal/ui"
)

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Run the daily check: penalties, stabilization, today's summary",
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
			rep, err := svc.StartSession(ctx, sess)
			if err != nil {
				return err
			}
			printReport(cmd.OutOrStdout(), rep)
			return nil
		},
	}
}

func printReport(w io.Writer, rep *engine.SessionReport) {
	printPenalty(w, rep.Penalty)
	if rep.Stabilized {
		fmt.Fprintln(w, ui.Good.Render(ui.IconSparkle+" SYSTEM STABILIZED"))
	}
	if rep.NoQuestsToday {
		fmt.Fprintln(w, ui.Muted.Render("Nothing due today. DAILY QUEST INITIALIZED: add some with `arc add` or `arc plan`."))
		return
	}
	if !rep.Penalty.Transitioned && !rep.Stabilized {
		fmt.Fprintln(w, ui.Good.Render("All systems nominal."))
	}
}
