package root

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"arcane/internal/engine"
	"arcane/internal/ui"
)

func newEditCmd() *cobra.Command {
	var title, desc, due string
	var recurring, daily bool
	var days []int

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit a quest; priority and XP stay as assigned",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("id is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			var patch engine.QuestPatch
			if flags.Changed("title") {
				patch.Title = &title
			}
			if flags.Changed("desc") {
				patch.Description = &desc
			}
			if flags.Changed("due") {
				d, err := parseDate(due)
				if err != nil {
					return err
				}
				patch.DueDate = &d
			}
			if flags.Changed("recurring") {
				patch.Recurring = &recurring
			}
			if flags.Changed("daily") {
				patch.IsDaily = &daily
			}
			if flags.Changed("days") {
				patch.RecurringDays = &days
			}
			if patch == (engine.QuestPatch{}) {
				return errors.New("nothing to change; pass at least one flag")
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
			id, err := resolveQuest(ctx, svc, sess, args[0])
			if err != nil {
				return err
			}
			q, err := svc.UpdateQuest(ctx, sess, id, patch)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", ui.Good.Render("Updated"), ui.Muted.Render(shortID(q.ID)))
			printQuest(cmd.OutOrStdout(), *q, svc.Today())
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "New title")
	cmd.Flags().StringVarP(&desc, "desc", "d", "", "New description")
	cmd.Flags().StringVar(&due, "due", "", "New due date YYYY-MM-DD")
	cmd.Flags().BoolVarP(&recurring, "recurring", "r", false, "Repeat after completion")
	cmd.Flags().BoolVar(&daily, "daily", false, "Daily quest")
	cmd.Flags().IntSliceVar(&days, "days", nil, "Repeat weekdays, 0=Sunday")
	return cmd
}

func newRmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a quest",
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
			if err := svc.DeleteQuest(ctx, sess, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", ui.Warn.Render("Deleted"), q.Title)
			return nil
		},
	}
}
