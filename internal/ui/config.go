package ui

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"

	"timebox/internal/config"
)

func (a *App) newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or initialize configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.showConfig(cmd)
		},
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "Print the effective configuration",
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.showConfig(cmd)
			},
		},
		&cobra.Command{
			Use:   "init",
			Short: "Write a default config file",
			RunE: func(cmd *cobra.Command, args []string) error {
				path := config.DefaultConfigPath()
				if _, err := os.Stat(path); err == nil {
					return fmt.Errorf("config file already exists at %s", path)
				}
				if err := config.Default().SaveTo(path); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
				return nil
			},
		},
	)
	return cmd
}

func (a *App) showConfig(cmd *cobra.Command) error {
	data, err := toml.Marshal(a.cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	fmt.Fprint(cmd.OutOrStdout(), string(data))
	return nil
}
