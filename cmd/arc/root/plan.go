package root

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"arcane/internal/engine"
	"arcane/internal/ui"
)

// readPlan reads the plan text from the named file, or stdin for "" and "-".
func readPlan(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		b, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(b), nil
	}
	b, err := os.ReadFile(args[0])
	if err != nil {
		return "", fmt.Errorf("read plan: %w", err)
	}
	return string(b), nil
}

func newPlanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "plan [file]",
		Short: "Turn a free-form plan (one quest per line) into quests",
		Long: `Each non-empty line becomes a quest. Leading bullets and numbering
("-", "*", "•", "1.", "2)") are stripped; lines shorter than three
characters are ignored. Reads stdin when no file is given.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readPlan(cmd, args)
			if err != nil {
				return err
			}

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
			created, err := svc.AddPlan(ctx, sess, text)
			if err != nil {
				return err
			}
			if len(created) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("No quests found in plan."))
				return nil
			}
			total := 0
			for _, q := range created {
				total += q.XP
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s %s\n", ui.Muted.Render(shortID(q.ID)), q.Title, ui.PriorityText(q.Priority), ui.Gold.Render(fmt.Sprintf("+%d", q.XP)))
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Good.Render(fmt.Sprintf("%s %d quests assigned, %d XP on the table", ui.IconScroll, len(created), total)))
			return nil
		},
	}
}

func newPreviewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "preview [file]",
		Short: "Show how a plan would be parsed without saving it",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readPlan(cmd, args)
			if err != nil {
				return err
			}
			loc, err := cfg.Location()
			if err != nil {
				return err
			}
			today := engine.Today(time.Now(), loc)
			n := 0
			for d := range engine.PlanDrafts(text, today) {
				n++
				fmt.Fprintf(cmd.OutOrStdout(), "%2d. %s %s %s\n", n, d.Title, ui.PriorityText(string(d.Priority)), ui.Gold.Render(fmt.Sprintf("+%d", d.XP)))
			}
			if n == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("No quests found in plan."))
			}
			return nil
		},
	}
}
