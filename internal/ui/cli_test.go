package ui

import (
	"context"
	"errors"
	"testing"

	"timebox/internal/schedule"
	"timebox/internal/task"
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	store := schedule.New(nil, schedule.WithActiveDate("2026-03-15"))
	return &App{store: store}
}

func addTask(t *testing.T, a *App, id, title string, startMin int) *task.Task {
	t.Helper()
	tk := &task.Task{ID: id, Title: title, StartMin: startMin, Duration: 30, Color: task.ColorSky}
	if err := a.store.Create(context.Background(), tk); err != nil {
		t.Fatal(err)
	}
	return tk
}

func TestResolveTask(t *testing.T) {
	a := newTestApp(t)
	addTask(t, a, "abc12345-0000", "first", 540)
	addTask(t, a, "abd67890-0000", "second", 600)

	got, err := a.resolveTask("abc")
	if err != nil {
		t.Fatalf("resolveTask(abc) error: %v", err)
	}
	if got.Title != "first" {
		t.Errorf("resolveTask(abc) = %q, want first", got.Title)
	}

	// Full ID always resolves.
	got, err = a.resolveTask("abd67890-0000")
	if err != nil {
		t.Fatalf("resolveTask(full) error: %v", err)
	}
	if got.Title != "second" {
		t.Errorf("resolveTask(full) = %q, want second", got.Title)
	}
}

func TestResolveTaskAmbiguousPrefix(t *testing.T) {
	a := newTestApp(t)
	addTask(t, a, "abc12345-0000", "first", 540)
	addTask(t, a, "abd67890-0000", "second", 600)

	if _, err := a.resolveTask("ab"); err == nil {
		t.Error("ambiguous prefix did not error")
	}
}

func TestResolveTaskNotFound(t *testing.T) {
	a := newTestApp(t)
	addTask(t, a, "abc12345-0000", "first", 540)

	if _, err := a.resolveTask("zzz"); !errors.Is(err, task.ErrTaskNotFound) {
		t.Errorf("resolveTask(zzz) error = %v, want ErrTaskNotFound", err)
	}
	if _, err := a.resolveTask(""); !errors.Is(err, task.ErrTaskNotFound) {
		t.Errorf("resolveTask(\"\") error = %v, want ErrTaskNotFound", err)
	}
}

func TestResolveTaskScopedToActiveDay(t *testing.T) {
	a := newTestApp(t)
	addTask(t, a, "abc12345-0000", "monday", 540)

	if err := a.store.SetActiveDate("2026-03-16"); err != nil {
		t.Fatal(err)
	}
	if _, err := a.resolveTask("abc"); !errors.Is(err, task.ErrTaskNotFound) {
		t.Errorf("resolveTask on other day error = %v, want ErrTaskNotFound", err)
	}
}

func TestShortID(t *testing.T) {
	if got := shortID("abcdefgh-1234-5678"); got != "abcdefgh" {
		t.Errorf("shortID() = %q, want abcdefgh", got)
	}
	if got := shortID("abc"); got != "abc" {
		t.Errorf("shortID(short) = %q, want abc", got)
	}
}

func TestSortedDates(t *testing.T) {
	days := map[string][]*task.Task{
		"2026-03-16": nil,
		"2026-01-02": nil,
		"2026-03-15": nil,
	}
	got := sortedDates(days)
	want := []string{"2026-01-02", "2026-03-15", "2026-03-16"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("sortedDates() = %v, want %v", got, want)
		}
	}
}
