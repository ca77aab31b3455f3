package root

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"arcane/internal/engine"
	"arcane/internal/ui"
)

func newAddCmd() *cobra.Command {
	var desc string
	var due string
	var recurring bool
	var daily bool
	var days []int

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a quest; priority and XP are derived from its text",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("title is required")
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

			in := engine.NewQuest{
				Title:         args[0],
				Description:   desc,
				Recurring:     recurring || daily || len(days) > 0,
				RecurringDays: days,
				IsDaily:       daily,
			}
			if due != "" {
				d, err := parseDate(due)
				if err != nil {
					return err
				}
				in.DueDate = &d
			}

			q, err := svc.AddQuest(ctx, sess, in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s %s %s\n",
				ui.Good.Render(ui.IconPlus+" Assigned"),
				ui.Muted.Render(shortID(q.ID)),
				q.Title,
				ui.PriorityText(q.Priority),
				ui.Gold.Render(fmt.Sprintf("+%d XP", q.XP)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&desc, "desc", "d", "", "Description (also used for classification)")
	cmd.Flags().StringVar(&due, "due", "", "Due date YYYY-MM-DD (default today)")
	cmd.Flags().BoolVarP(&recurring, "recurring", "r", false, "Repeat daily after completion")
	cmd.Flags().BoolVar(&daily, "daily", false, "Daily quest (implies --recurring)")
	cmd.Flags().IntSliceVar(&days, "days", nil, "Repeat on these weekdays, 0=Sunday (implies --recurring)")
	return cmd
}
