package root

import (
	"fmt"
	"io"
	"sort"

	"cloud.google.com/go/civil"
	"github.com/spf13/cobra"

	"arcane/internal/engine"
	"arcane/internal/storage"
	"arcane/internal/ui"
)

func newListCmd() *cobra.Command {
	var all bool
	var today bool
	var priority string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List open quests (earliest due first)",
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
			quests, err := svc.Quests(ctx, sess)
			if err != nil {
				return err
			}

			var want engine.Priority
			if priority != "" {
				p, ok := engine.ParsePriority(priority)
				if !ok {
					return fmt.Errorf("invalid priority %q (want high, medium or low)", priority)
				}
				want = p
			}

			day := svc.Today()
			if today {
				quests = engine.QuestsDueOn(quests, day)
			}
			var shown []storage.Quest
			for _, q := range quests {
				if want != "" && q.Priority != string(want) {
					continue
				}
				if all || today || !q.Completed {
					shown = append(shown, q)
				}
			}
			sort.SliceStable(shown, func(i, j int) bool {
				return shown[i].DueDate.Before(shown[j].DueDate)
			})

			if len(shown) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("No quests. Add one with `arc add <title>`."))
				return nil
			}
			for _, q := range shown {
				printQuest(cmd.OutOrStdout(), q, day)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&all, "all", "a", false, "Include completed quests")
	cmd.Flags().BoolVarP(&today, "today", "t", false, "Only quests due today (completed included)")
	cmd.Flags().StringVarP(&priority, "priority", "p", "", "Only this priority (h|m|l)")
	return cmd
}

func printQuest(w io.Writer, q storage.Quest, today civil.Date) {
	title := q.Title
	if q.Completed {
		title = ui.Muted.Render(title)
	}
	fmt.Fprintf(w, "%s %s %s %s %s %s\n",
		ui.QuestIcon(q.Completed, q.Recurring),
		ui.Muted.Render(shortID(q.ID)),
		title,
		ui.PriorityText(q.Priority),
		ui.Gold.Render(fmt.Sprintf("+%d", q.XP)),
		dueText(q.DueDate, today))
	if q.Description != "" {
		fmt.Fprintf(w, "    %s\n", ui.Muted.Render(q.Description))
	}
}

func dueText(due, today civil.Date) string {
	switch d := engine.DaysBetween(today, due); {
	case d == 0:
		return ui.H2.Render("today")
	case d < 0:
		return ui.Bad.Render(fmt.Sprintf("overdue %dd", -d))
	case d == 1:
		return ui.Muted.Render("tomorrow")
	default:
		return ui.Muted.Render(due.String())
	}
}
