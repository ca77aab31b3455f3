package root

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"arcane/internal/engine"
	"arcane/internal/ui"
)

func newCalendarCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calendar [YYYY-MM]",
		Short: "Show a month of quest completion",
		Args:  cobra.MaximumNArgs(1),
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

			today := svc.Today()
			year, month := today.Year, today.Month
			if len(args) == 1 {
				t, err := time.Parse("2006-01", args[0])
				if err != nil {
					return errors.New("month must look like 2026-03")
				}
				year, month = t.Year(), t.Month()
			}
			days, err := svc.Calendar(ctx, sess, year, month)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading("", fmt.Sprintf("%s %d", month, year)))
			fmt.Fprintln(out, ui.Muted.Render("Su Mo Tu We Th Fr Sa"))

			var row strings.Builder
			lead := int(days[0].Date.In(time.UTC).Weekday())
			row.WriteString(strings.Repeat("   ", lead))
			col := lead
			xp := 0
			for _, d := range days {
				label := fmt.Sprintf("%2d", d.Date.Day)
				if d.Date == today {
					label = ui.Key.Render(label)
				} else {
					label = ui.DayText(string(d.Status), label)
				}
				row.WriteString(label + " ")
				xp += d.XP
				col++
				if col == 7 {
					fmt.Fprintln(out, strings.TrimRight(row.String(), " "))
					row.Reset()
					col = 0
				}
			}
			if row.Len() > 0 {
				fmt.Fprintln(out, strings.TrimRight(row.String(), " "))
			}
			fmt.Fprintln(out)
			fmt.Fprintf(out, "%s %s %s %s  %s\n",
				ui.DayText(string(engine.DayComplete), "complete"),
				ui.DayText(string(engine.DayPartial), "partial"),
				ui.DayText(string(engine.DayIncomplete), "missed"),
				ui.DayText(string(engine.DayNone), "none"),
				ui.Gold.Render(fmt.Sprintf("%d XP this month", xp)))
			return nil
		},
	}
	return cmd
}
