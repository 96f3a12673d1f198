package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"timebox/internal/config"
	"timebox/internal/db"
	"timebox/internal/schedule"
	"timebox/internal/task"
	"timebox/internal/ui"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(cfg.Storage.DBPath), 0o755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	kv, err := db.New(cfg.Storage.DBPath)
	if err != nil {
		return err
	}
	defer kv.Close()

	ctx := context.Background()

	days, err := kv.LoadSchedule(ctx)
	if err != nil {
		return err
	}

	seed := task.Settings{WakeHour: cfg.Schedule.WakeHour, BedHour: cfg.Schedule.BedHour}
	settings, err := kv.LoadSettings(ctx, seed)
	if err != nil {
		return err
	}

	templates, err := kv.LoadTemplates(ctx)
	if err != nil {
		return err
	}

	store := schedule.New(kv, schedule.WithDays(days))

	return ui.NewApp(cfg, kv, store, settings, templates).Execute()
}
