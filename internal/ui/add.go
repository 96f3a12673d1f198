package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"timebox/internal/task"
)

func (a *App) newAddCmd() *cobra.Command {
	var (
		date     string
		at       string
		duration int
		colorName string
		template string
	)

	cmd := &cobra.Command{
		Use:   "add [title]",
		Short: "Add a task to a day",
		Example: `  timebox add "Deep work" --at 09:00 --for 90
  timebox add "Standup" --at 10:30 --color mint --date 2026-09-01
  timebox add --at 14:00 --template workout`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.switchDate(date); err != nil {
				return err
			}

			title := ""
			if len(args) == 1 {
				title = args[0]
			}

			startMin, err := task.TimeToMinutes(at)
			if err != nil {
				return fmt.Errorf("invalid --at time %q: %w", at, err)
			}

			color := task.Color(colorName)
			if duration <= 0 {
				duration = a.cfg.Schedule.DefaultDuration
			}

			if template != "" {
				tpl, err := a.findTemplate(cmd.Context(), template)
				if err != nil {
					return err
				}
				if title == "" {
					title = tpl.Title
				}
				if !cmd.Flags().Changed("for") {
					duration = tpl.Duration
				}
				if !cmd.Flags().Changed("color") {
					color = tpl.Color
				}
			}

			t, err := task.New(title, startMin, duration, color)
			if err != nil {
				return err
			}
			if err := a.store.Create(cmd.Context(), t); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Added %s  %s-%s  %s\n",
				shortID(t.ID), t.StartLabel(), t.EndLabel(), t.DisplayTitle())
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "day to add to (YYYY-MM-DD, default today)")
	cmd.Flags().StringVar(&at, "at", "", "start time (HH:MM)")
	cmd.Flags().IntVar(&duration, "for", 0, "duration in minutes")
	cmd.Flags().StringVar(&colorName, "color", string(task.ColorSky), "task color ("+paletteNames()+")")
	cmd.Flags().StringVar(&template, "template", "", "template to apply")
	_ = cmd.MarkFlagRequired("at")

	return cmd
}

// findTemplate matches a stored template by title, case-insensitively.
func (a *App) findTemplate(ctx context.Context, name string) (*task.Template, error) {
	templates, err := a.kv.LoadTemplates(ctx)
	if err != nil {
		return nil, err
	}
	for _, tpl := range templates {
		if strings.EqualFold(tpl.Title, name) {
			return tpl, nil
		}
	}
	return nil, fmt.Errorf("template %q not found", name)
}

func paletteNames() string {
	names := make([]string, 0, len(task.Palette()))
	for _, c := range task.Palette() {
		names = append(names, string(c))
	}
	return strings.Join(names, ", ")
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
