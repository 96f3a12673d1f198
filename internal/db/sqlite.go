// Package db provides the SQLite-backed key-value blob store that persists
// planner state: the schedule, settings, and templates, each serialized as a
// JSON blob under a fixed key.
package db

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite" // SQLite driver

	"timebox/internal/task"
)

// Blob keys.
const (
	keySchedule  = "schedule" // date-keyed mapping of task lists
	keyLegacy    = "tasks"    // legacy single-day list; read-once, write-never
	keySettings  = "settings"
	keyTemplates = "templates"
)

// KV is a single-table key-value store over SQLite.
type KV struct {
	db *sql.DB
}

// New opens (or creates) the store at path and runs migrations.
func New(path string) (*KV, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	s := &KV{db: db}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

func (s *KV) migrate() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS kv (
			key   TEXT PRIMARY KEY,
			value BLOB NOT NULL
		)
	`)
	return err
}

// get returns the blob stored under key, with ok=false when absent.
func (s *KV) get(ctx context.Context, key string) ([]byte, bool, error) {
	var value []byte
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("reading %q: %w", key, err)
	}
	return value, true, nil
}

// put upserts a blob under key.
func (s *KV) put(ctx context.Context, key string, value []byte) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO kv (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	if err != nil {
		return fmt.Errorf("writing %q: %w", key, err)
	}
	return nil
}

// LoadSchedule hydrates the date-keyed schedule. If no date-keyed blob exists
// yet but a legacy single-day list does, the legacy list is adopted wholesale
// as today's entry; the legacy key is never written back or deleted.
// Malformed blobs fall back to an empty schedule, never an error.
func (s *KV) LoadSchedule(ctx context.Context) (map[string][]*task.Task, error) {
	blob, ok, err := s.get(ctx, keySchedule)
	if err != nil {
		return nil, err
	}
	if ok {
		return decodeDays(blob), nil
	}
	return s.loadLegacy(ctx)
}

// SaveSchedule serializes the full date-keyed schedule under the schedule
// key. It implements schedule.Persister.
func (s *KV) SaveSchedule(ctx context.Context, days map[string][]*task.Task) error {
	blob, err := encodeDays(days)
	if err != nil {
		return fmt.Errorf("encoding schedule: %w", err)
	}
	return s.put(ctx, keySchedule, blob)
}

// LoadSettings returns the persisted settings, or fallback when absent or
// malformed. The fallback carries the config-seeded hours until the user
// saves their own.
func (s *KV) LoadSettings(ctx context.Context, fallback task.Settings) (task.Settings, error) {
	blob, ok, err := s.get(ctx, keySettings)
	if err != nil {
		return fallback, err
	}
	if !ok {
		return fallback, nil
	}
	return decodeSettings(blob, fallback), nil
}

// SaveSettings persists the settings blob.
func (s *KV) SaveSettings(ctx context.Context, settings task.Settings) error {
	blob, err := encodeSettings(settings)
	if err != nil {
		return fmt.Errorf("encoding settings: %w", err)
	}
	return s.put(ctx, keySettings, blob)
}

// LoadTemplates returns the persisted template presets, or none when absent
// or malformed.
func (s *KV) LoadTemplates(ctx context.Context) ([]*task.Template, error) {
	blob, ok, err := s.get(ctx, keyTemplates)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	return decodeTemplates(blob), nil
}

// SaveTemplates persists the template list.
func (s *KV) SaveTemplates(ctx context.Context, templates []*task.Template) error {
	blob, err := encodeTemplates(templates)
	if err != nil {
		return fmt.Errorf("encoding templates: %w", err)
	}
	return s.put(ctx, keyTemplates, blob)
}

// Close releases database resources.
func (s *KV) Close() error {
	return s.db.Close()
}
