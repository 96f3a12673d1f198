package ui

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (a *App) newDoneCmd() *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "done <id>",
		Short: "Toggle a task's completion",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.switchDate(date); err != nil {
				return err
			}

			t, err := a.resolveTask(args[0])
			if err != nil {
				return err
			}
			if err := a.store.ToggleCompletion(cmd.Context(), t.ID); err != nil {
				return err
			}

			state := "pending"
			if t.Completed {
				state = "done"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s  %s is now %s\n", shortID(t.ID), t.DisplayTitle(), state)
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "day the task is on (YYYY-MM-DD, default today)")
	return cmd
}
