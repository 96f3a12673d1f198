package ui

import (
	"fmt"

	"github.com/spf13/cobra"

	"timebox/internal/task"
)

func (a *App) newMoveCmd() *cobra.Command {
	var (
		date string
		to   string
	)

	cmd := &cobra.Command{
		Use:   "move <id>",
		Short: "Move a task to a new start time",
		Example: `  timebox move 3f2a --to 14:00
  timebox move 3f2a --to 09:30 --date 2026-09-01`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.switchDate(date); err != nil {
				return err
			}

			t, err := a.resolveTask(args[0])
			if err != nil {
				return err
			}

			newStart, err := task.TimeToMinutes(to)
			if err != nil {
				return fmt.Errorf("invalid --to time %q: %w", to, err)
			}

			prev := t.StartLabel()
			rec, err := a.store.Move(cmd.Context(), t.ID, newStart)
			if err != nil {
				return err
			}
			if rec == nil {
				fmt.Fprintf(cmd.OutOrStdout(), "%s already starts at %s\n", t.DisplayTitle(), prev)
				return nil
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Moved %s  %s -> %s\n",
				t.DisplayTitle(), task.MinutesToTime(rec.PrevStartMin), task.MinutesToTime(newStart))
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "day the task is on (YYYY-MM-DD, default today)")
	cmd.Flags().StringVar(&to, "to", "", "new start time (HH:MM)")
	_ = cmd.MarkFlagRequired("to")

	return cmd
}
