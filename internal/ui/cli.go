// Package ui wires the cobra command tree for timebox: the TUI by default,
// plus scriptable subcommands for managing tasks from the shell.
package ui

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"timebox/internal/config"
	"timebox/internal/db"
	"timebox/internal/schedule"
	"timebox/internal/task"
	"timebox/internal/tui"
)

// Version is set at build time via -ldflags.
var Version = "dev"

// App holds the shared dependencies behind every command.
type App struct {
	cfg   *config.Config
	kv    *db.KV
	store *schedule.Store
	root  *cobra.Command
}

// NewApp builds the command tree around an open store.
func NewApp(cfg *config.Config, kv *db.KV, store *schedule.Store, settings task.Settings, templates []*task.Template) *App {
	app := &App{cfg: cfg, kv: kv, store: store}

	root := &cobra.Command{
		Use:   "timebox",
		Short: "A daily time-boxing planner for the terminal",
		Long: `Timebox plans your day on a quarter-hour grid.

Run with no arguments to open the interactive planner. Subcommands
manage tasks from the shell for scripting and quick capture.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return tui.Run(store, kv, cfg, settings, templates)
		},
	}

	root.AddCommand(
		app.newAddCmd(),
		app.newListCmd(),
		app.newDoneCmd(),
		app.newRemoveCmd(),
		app.newMoveCmd(),
		app.newTemplatesCmd(),
		app.newConfigCmd(),
		newVersionCmd(),
	)

	app.root = root
	return app
}

// Execute runs the command tree.
func (a *App) Execute() error {
	return a.root.Execute()
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the timebox version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "timebox %s\n", Version)
		},
	}
}

// switchDate points the store at the date named by the --date flag, leaving
// it on today when the flag is empty.
func (a *App) switchDate(date string) error {
	if date == "" {
		return nil
	}
	return a.store.SetActiveDate(date)
}

// resolveTask finds the unique task on the active day whose ID starts with
// prefix.
func (a *App) resolveTask(prefix string) (*task.Task, error) {
	if prefix == "" {
		return nil, fmt.Errorf("%w: empty id", task.ErrTaskNotFound)
	}

	var matches []*task.Task
	for _, t := range a.store.Tasks() {
		if strings.HasPrefix(t.ID, prefix) {
			matches = append(matches, t)
		}
	}

	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("%w: %s", task.ErrTaskNotFound, prefix)
	case 1:
		return matches[0], nil
	default:
		return nil, fmt.Errorf("id prefix %q matches %d tasks, use more characters", prefix, len(matches))
	}
}
