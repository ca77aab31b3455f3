package root

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"arcane/internal/ui"
)

func newDoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "do <id>",
		Short: "Complete a quest (id or unique prefix)",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("id is required")
			}
			return nil
		},
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
			id, err := resolveQuest(ctx, svc, sess, args[0])
			if err != nil {
				return err
			}
			q, err := svc.Quest(ctx, sess, id)
			if err != nil {
				return err
			}
			res, err := svc.CompleteQuest(ctx, sess, id)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			switch {
			case res.Blocked:
				fmt.Fprintf(out, "%s %s %s\n", ui.Warn.Render(ui.IconDone+" Completed"), q.Title, ui.BadgeLocked)
				fmt.Fprintln(out, ui.Bad.Render("XP GAIN BLOCKED"))
			case res.Reduced:
				fmt.Fprintf(out, "%s %s %s %s\n", ui.Good.Render(ui.IconDone+" Completed"), q.Title, ui.Gold.Render(fmt.Sprintf("+%d XP", res.XPAwarded)), ui.BadgeReduced)
			default:
				fmt.Fprintf(out, "%s %s %s\n", ui.Good.Render(ui.IconDone+" Completed"), q.Title, ui.Gold.Render(fmt.Sprintf("+%d XP", res.XPAwarded)))
			}
			if res.LevelUp {
				fmt.Fprintf(out, "%s %s\n", ui.BadgeLevelUp, ui.LabelValue("Level", fmt.Sprintf("%d → %d", res.LevelBefore, res.LevelAfter)))
			}
			if res.Streak > 0 && !res.Blocked {
				fmt.Fprintln(out, ui.Muted.Render(fmt.Sprintf("%s streak %d", ui.IconFlame, res.Streak)))
			}
			if res.NextQuestID != "" {
				fmt.Fprintf(out, "%s next instance %s\n", ui.IconLoop, ui.Muted.Render(shortID(res.NextQuestID)))
			}
			if res.Stabilized {
				fmt.Fprintln(out, ui.Good.Render(ui.IconSparkle+" SYSTEM STABILIZED"))
			}
			return nil
		},
	}

	return cmd
}
