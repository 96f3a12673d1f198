package ui

import (
	"fmt"

	"github.com/charmbracelet/x/ansi"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"timebox/internal/task"
)

func (a *App) newListCmd() *cobra.Command {
	var (
		date string
		all  bool
	)

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List tasks for a day",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.switchDate(date); err != nil {
				return err
			}

			if all {
				days := a.store.Days()
				if len(days) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No tasks scheduled.")
					return nil
				}
				for _, d := range sortedDates(days) {
					fmt.Fprintln(cmd.OutOrStdout(), color.New(color.Bold).Sprint(d))
					printTasks(cmd, days[d])
				}
				return nil
			}

			tasks := a.store.Tasks()
			if len(tasks) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "No tasks on %s.\n", a.store.ActiveDate())
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), color.New(color.Bold).Sprint(a.store.ActiveDate()))
			printTasks(cmd, tasks)
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "day to list (YYYY-MM-DD, default today)")
	cmd.Flags().BoolVarP(&all, "all", "a", false, "list every day with tasks")

	return cmd
}

func printTasks(cmd *cobra.Command, tasks []*task.Task) {
	w := cmd.OutOrStdout()
	width := terminalWidth()
	for _, t := range tasks {
		line := fmt.Sprintf("  %s  %s  %s-%s  %s",
			color.New(color.Faint).Sprint(shortID(t.ID)),
			completionMark(t),
			t.StartLabel(), t.EndLabel(),
			taskTitle(t),
		)
		fmt.Fprintln(w, ansi.Truncate(line, width, "…"))
	}
}

func completionMark(t *task.Task) string {
	if t.Completed {
		return color.GreenString("✓")
	}
	return color.New(color.Faint).Sprint("·")
}

func taskTitle(t *task.Task) string {
	title := t.DisplayTitle()
	if t.Completed {
		return color.New(color.Faint, color.CrossedOut).Sprint(title)
	}
	return paletteSprint(t.Color, title)
}

// paletteSprint colors terminal output to echo the TUI palette.
func paletteSprint(c task.Color, s string) string {
	switch c.Normalize() {
	case task.ColorMint:
		return color.GreenString(s)
	case task.ColorAmber:
		return color.YellowString(s)
	case task.ColorRose:
		return color.RedString(s)
	case task.ColorLilac:
		return color.MagentaString(s)
	case task.ColorSlate:
		return color.New(color.Faint).Sprint(s)
	default:
		return color.CyanString(s)
	}
}
