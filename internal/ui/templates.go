package ui

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"timebox/internal/task"
)

func (a *App) newTemplatesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "templates",
		Aliases: []string{"tpl"},
		Short:   "Manage task templates",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.listTemplates(cmd)
		},
	}

	cmd.AddCommand(
		a.newTemplatesListCmd(),
		a.newTemplatesAddCmd(),
		a.newTemplatesRemoveCmd(),
	)
	return cmd
}

func (a *App) newTemplatesListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List templates",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.listTemplates(cmd)
		},
	}
}

func (a *App) listTemplates(cmd *cobra.Command) error {
	templates, err := a.kv.LoadTemplates(cmd.Context())
	if err != nil {
		return err
	}
	if len(templates) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No templates. Add one with: timebox templates add <title> --for <minutes>")
		return nil
	}
	for _, tpl := range templates {
		fmt.Fprintf(cmd.OutOrStdout(), "  %s  %s (%d min, %s)\n",
			color.New(color.Faint).Sprint(shortID(tpl.ID)),
			paletteSprint(tpl.Color, tpl.Title),
			tpl.Duration, tpl.Color.Normalize())
	}
	return nil
}

func (a *App) newTemplatesAddCmd() *cobra.Command {
	var (
		duration  int
		colorName string
	)

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a template",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tpl, err := task.NewTemplate(args[0], duration, task.Color(colorName))
			if err != nil {
				return err
			}

			templates, err := a.kv.LoadTemplates(cmd.Context())
			if err != nil {
				return err
			}
			for _, existing := range templates {
				if strings.EqualFold(existing.Title, tpl.Title) {
					return fmt.Errorf("template %q already exists", existing.Title)
				}
			}

			templates = append(templates, tpl)
			if err := a.kv.SaveTemplates(cmd.Context(), templates); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Added template %s (%d min, %s)\n",
				tpl.Title, tpl.Duration, tpl.Color)
			return nil
		},
	}

	cmd.Flags().IntVar(&duration, "for", 30, "duration in minutes")
	cmd.Flags().StringVar(&colorName, "color", string(task.ColorSky), "template color ("+paletteNames()+")")
	return cmd
}

func (a *App) newTemplatesRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "rm <title>",
		Aliases: []string{"remove"},
		Short:   "Remove a template",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			templates, err := a.kv.LoadTemplates(cmd.Context())
			if err != nil {
				return err
			}

			kept := templates[:0]
			removed := false
			for _, tpl := range templates {
				if !removed && strings.EqualFold(tpl.Title, args[0]) {
					removed = true
					continue
				}
				kept = append(kept, tpl)
			}
			if !removed {
				return fmt.Errorf("template %q not found", args[0])
			}

			if err := a.kv.SaveTemplates(cmd.Context(), kept); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed template %s\n", args[0])
			return nil
		},
	}
}
