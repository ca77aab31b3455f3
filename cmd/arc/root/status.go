package root

import (
	"fmt"

	"github.com/spf13/cobra"

	"arcane/internal/engine"
	"arcane/internal/ui"
)

func newStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show level, rank, XP progress and today's quests",
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
			st, err := svc.Status(ctx, sess)
			if err != nil {
				return err
			}
			printStatus(cmd, st)
			return nil
		},
	}

	return cmd
}

func printStatus(cmd *cobra.Command, st *engine.Status) {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, ui.Heading(ui.IconSparkle, st.User.Username))
	fmt.Fprintln(out, ui.LabelValue("Level", st.Level))
	fmt.Fprintln(out, ui.LabelValue("Rank", ui.RankText(st.Rank.Name, rankIndex(st.Rank.Name), len(engine.Ranks))))
	if st.HasNextRank {
		fmt.Fprintln(out, ui.LabelValue("XP", fmt.Sprintf("%d %s %s", st.User.XP,
			ui.ProgressBar(int(st.Progress.Percentage), 24),
			ui.Muted.Render(fmt.Sprintf("%d to %s", st.NextRank.MinXP-st.User.XP, st.NextRank.Name)))))
	} else {
		fmt.Fprintln(out, ui.LabelValue("XP", fmt.Sprintf("%d %s", st.User.XP, ui.ProgressBar(int(st.Progress.Percentage), 24))))
	}
	fmt.Fprintln(out, ui.LabelValue("Streak", fmt.Sprintf("%s %d", ui.IconFlame, st.User.Streak)))
	fmt.Fprintln(out, ui.LabelValue("Today", fmt.Sprintf("%d/%d completed", st.TodayCompleted, st.TodayTotal)))

	switch {
	case st.User.XPLocked && st.User.XPReduced:
		fmt.Fprintln(out, ui.LabelValue("System", ui.BadgeLocked+" "+ui.BadgeReduced))
	case st.User.XPLocked:
		fmt.Fprintln(out, ui.LabelValue("System", ui.BadgeLocked))
	case st.User.XPReduced:
		fmt.Fprintln(out, ui.LabelValue("System", ui.BadgeReduced))
	default:
		fmt.Fprintln(out, ui.LabelValue("System", ui.Good.Render("stable")))
	}
}

func rankIndex(name string) int {
	for i, r := range engine.Ranks {
		if r.Name == name {
			return i
		}
	}
	return 0
}

func newProfileCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "profile",
		Short: "Show the rank ladder, totals and milestones",
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
			p, err := svc.Profile(ctx, sess)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			printStatus(cmd, &p.Status)
			fmt.Fprintln(out, ui.LabelValue("Quests completed", p.CompletedQuests))
			fmt.Fprintln(out, ui.LabelValue("XP from quests", p.XPFromQuests))
			fmt.Fprintln(out)

			fmt.Fprintln(out, ui.H2.Render("Ladder"))
			for i, step := range p.Ladder {
				printRankStep(cmd, i, step)
			}
			fmt.Fprintln(out)

			fmt.Fprintln(out, ui.H2.Render(fmt.Sprintf("Milestones %d/%d", p.Earned, len(p.Milestones))))
			for _, m := range p.Milestones {
				mark := ui.Muted.Render("·")
				name := ui.Muted.Render(m.Name)
				if m.Earned {
					mark = m.Icon
					name = ui.Gold.Render(m.Name)
				}
				fmt.Fprintf(out, "%s %s %s\n", mark, name, ui.Muted.Render(m.Description))
			}
			return nil
		},
	}
}

func printRankStep(cmd *cobra.Command, i int, step engine.RankStep) {
	span := fmt.Sprintf("%d+", step.Tier.MinXP)
	if !step.Tier.IsOpenEnded() {
		span = fmt.Sprintf("%d-%d", step.Tier.MinXP, step.Tier.MaxXP)
	}
	marker := "  "
	switch {
	case step.Current:
		marker = "▶ "
	case step.Unlocked:
		marker = "✓ "
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s%s %s\n", marker, ui.RankText(step.Tier.Name, i, len(engine.Ranks)), ui.Muted.Render(span+" XP"))
}

func newRanksCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ranks",
		Short: "Show the rank table",
		RunE: func(cmd *cobra.Command, args []string) error {
			xp := 0
			ctx := cmd.Context()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			// The table is shown without a session too; with one, the ladder is marked.
			if sess, err := svc.CurrentSession(ctx); err == nil {
				if u, err := svc.User(ctx, sess); err == nil {
					xp = u.XP
				}
			}
			for i, step := range engine.RankLadder(xp) {
				printRankStep(cmd, i, step)
			}
			return nil
		},
	}
}
