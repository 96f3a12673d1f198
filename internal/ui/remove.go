package ui

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (a *App) newRemoveCmd() *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"remove"},
		Short:   "Remove a task",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.switchDate(date); err != nil {
				return err
			}

			t, err := a.resolveTask(args[0])
			if err != nil {
				return err
			}
			if err := a.store.Remove(cmd.Context(), t.ID); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Removed %s  %s\n", shortID(t.ID), t.DisplayTitle())
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "day the task is on (YYYY-MM-DD, default today)")
	return cmd
}
