package tui

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"timebox/internal/config"
	"timebox/internal/schedule"
	"timebox/internal/task"
	"timebox/internal/tui/theme"
)

func keyRune(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func newUpdateModel(t *testing.T) (Model, *schedule.Store) {
	t.Helper()
	store := schedule.New(nil, schedule.WithActiveDate("2026-03-15"))
	m := New(store, nil, config.Default(), task.DefaultSettings(), nil)

	th, err := theme.Load("mocha")
	if err != nil {
		t.Fatal(err)
	}
	m.theme = th
	m.width = 80
	m.height = 30
	return *m, store
}

func step(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	got, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T, want Model", next)
	}
	return got
}

func TestMoveFlowCommits(t *testing.T) {
	m, store := newUpdateModel(t)

	tk, err := task.New("focus", 540, 30, task.ColorSky) // 09:00-09:30
	if err != nil {
		t.Fatal(err)
	}
	if err := store.Create(context.Background(), tk); err != nil {
		t.Fatal(err)
	}
	m.cursor = Position{Hour: 9, Quarter: 0}

	m = step(t, m, keyRune('m'))
	if m.mode != ModeMove || m.moving == nil {
		t.Fatal("m did not enter move mode on a task")
	}

	// Walk the pickup down to 14:00.
	m.cursor = Position{Hour: 14, Quarter: 0}
	m = step(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	if m.mode != ModeNormal {
		t.Error("mode not restored after drop")
	}
	if tk.StartMin != 840 {
		t.Errorf("StartMin after drop = %d, want 840", tk.StartMin)
	}
	if m.pendingUndo == nil || m.pendingUndo.PrevStartMin != 540 {
		t.Errorf("undo record not armed with prior start: %+v", m.pendingUndo)
	}
}

func TestMoveFlowCancel(t *testing.T) {
	m, store := newUpdateModel(t)

	tk, err := task.New("focus", 540, 30, task.ColorSky)
	if err != nil {
		t.Fatal(err)
	}
	if err := store.Create(context.Background(), tk); err != nil {
		t.Fatal(err)
	}
	m.cursor = Position{Hour: 9, Quarter: 0}

	m = step(t, m, keyRune('m'))
	m.cursor = Position{Hour: 14, Quarter: 0}
	m = step(t, m, tea.KeyMsg{Type: tea.KeyEsc})

	if m.mode != ModeNormal || m.moving != nil {
		t.Error("esc did not cancel move mode")
	}
	if tk.StartMin != 540 {
		t.Errorf("cancelled move changed StartMin to %d", tk.StartMin)
	}
	if store.PendingUndo() != nil {
		t.Error("cancelled move armed an undo record")
	}
}

func TestMoveOntoOccupiedSlotRejected(t *testing.T) {
	m, store := newUpdateModel(t)
	ctx := context.Background()

	a, err := task.New("a", 540, 30, task.ColorSky)
	if err != nil {
		t.Fatal(err)
	}
	b, err := task.New("b", 840, 60, task.ColorMint)
	if err != nil {
		t.Fatal(err)
	}
	if err := store.Create(ctx, a); err != nil {
		t.Fatal(err)
	}
	if err := store.Create(ctx, b); err != nil {
		t.Fatal(err)
	}

	m.cursor = Position{Hour: 9, Quarter: 0}
	m = step(t, m, keyRune('m'))
	m.cursor = Position{Hour: 14, Quarter: 0}
	m = step(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	if a.StartMin != 540 {
		t.Errorf("rejected drop moved the task to %d", a.StartMin)
	}
	if m.pendingUndo != nil {
		t.Error("rejected drop armed an undo record")
	}
	if m.statusMsg == "" {
		t.Error("rejected drop produced no status message")
	}
}

func TestUndoKeyRestoresMove(t *testing.T) {
	m, store := newUpdateModel(t)

	tk, err := task.New("focus", 540, 30, task.ColorSky)
	if err != nil {
		t.Fatal(err)
	}
	if err := store.Create(context.Background(), tk); err != nil {
		t.Fatal(err)
	}

	m.cursor = Position{Hour: 9, Quarter: 0}
	m = step(t, m, keyRune('m'))
	m.cursor = Position{Hour: 14, Quarter: 0}
	m = step(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	m = step(t, m, keyRune('u'))
	if tk.StartMin != 540 {
		t.Errorf("StartMin after undo = %d, want 540", tk.StartMin)
	}
	if m.pendingUndo != nil {
		t.Error("undo record survived consumption")
	}

	// A second press has nothing left to undo.
	m = step(t, m, keyRune('u'))
	if tk.StartMin != 540 {
		t.Errorf("second undo changed StartMin to %d", tk.StartMin)
	}
}

func TestTickExpiresUndoDisplay(t *testing.T) {
	clock := time.Date(2026, 3, 15, 9, 0, 0, 0, time.UTC)
	store := schedule.New(nil,
		schedule.WithActiveDate("2026-03-15"),
		schedule.WithClock(func() time.Time { return clock }),
	)
	mp := New(store, nil, config.Default(), task.DefaultSettings(), nil)
	m := *mp
	m.width, m.height = 80, 30

	tk, err := task.New("focus", 540, 30, task.ColorSky)
	if err != nil {
		t.Fatal(err)
	}
	if err := store.Create(context.Background(), tk); err != nil {
		t.Fatal(err)
	}

	if _, err := store.Move(context.Background(), tk.ID, 840); err != nil {
		t.Fatal(err)
	}
	m.pendingUndo = store.PendingUndo()
	if m.pendingUndo == nil {
		t.Fatal("move did not arm an undo record")
	}

	clock = clock.Add(schedule.UndoWindow + time.Second)
	m = step(t, m, tickMsg(clock))
	if m.pendingUndo != nil {
		t.Error("tick did not drop the expired undo record")
	}
}

func TestSpaceTogglesCompletion(t *testing.T) {
	m, store := newUpdateModel(t)

	tk, err := task.New("focus", 540, 30, task.ColorSky)
	if err != nil {
		t.Fatal(err)
	}
	if err := store.Create(context.Background(), tk); err != nil {
		t.Fatal(err)
	}
	m.cursor = Position{Hour: 9, Quarter: 0}

	m = step(t, m, keyRune(' '))
	if !tk.Completed {
		t.Error("space did not complete the task")
	}
	m = step(t, m, keyRune(' '))
	if tk.Completed {
		t.Error("space did not reopen the task")
	}
}

func TestDateKeysShiftActiveDay(t *testing.T) {
	m, store := newUpdateModel(t)

	m = step(t, m, keyRune(']'))
	if store.ActiveDate() != "2026-03-16" {
		t.Errorf("] moved to %s, want 2026-03-16", store.ActiveDate())
	}
	m = step(t, m, keyRune('['))
	m = step(t, m, keyRune('['))
	if store.ActiveDate() != "2026-03-14" {
		t.Errorf("[ moved to %s, want 2026-03-14", store.ActiveDate())
	}
}

func TestEnterOnTaskOpensDetail(t *testing.T) {
	m, store := newUpdateModel(t)

	tk, err := task.New("focus", 540, 30, task.ColorSky)
	if err != nil {
		t.Fatal(err)
	}
	if err := store.Create(context.Background(), tk); err != nil {
		t.Fatal(err)
	}
	m.cursor = Position{Hour: 9, Quarter: 0}

	m = step(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.mode != ModeModal || m.modalType != ModalTaskDetail {
		t.Errorf("enter on task opened mode=%v modal=%v", m.mode, m.modalType)
	}

	m = step(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.mode != ModeNormal || m.modalType != ModalNone {
		t.Error("esc did not close the detail modal")
	}
}

func TestEnterOnEmptySlotOpensForm(t *testing.T) {
	m, _ := newUpdateModel(t)
	m.cursor = Position{Hour: 9, Quarter: 0}

	m = step(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.mode != ModeModal || m.modalType != ModalTaskForm {
		t.Errorf("enter on empty slot opened mode=%v modal=%v", m.mode, m.modalType)
	}
	if m.modalTask != nil {
		t.Error("create form carries an existing task")
	}
}

func TestDeleteFlow(t *testing.T) {
	m, store := newUpdateModel(t)

	tk, err := task.New("focus", 540, 30, task.ColorSky)
	if err != nil {
		t.Fatal(err)
	}
	if err := store.Create(context.Background(), tk); err != nil {
		t.Fatal(err)
	}
	m.cursor = Position{Hour: 9, Quarter: 0}

	m = step(t, m, keyRune('x'))
	if m.modalType != ModalConfirmDelete {
		t.Fatal("x did not open the delete confirmation")
	}
	m = step(t, m, keyRune('n'))
	if len(store.Tasks()) != 1 {
		t.Fatal("n deleted the task")
	}

	m = step(t, m, keyRune('x'))
	m = step(t, m, keyRune('y'))
	if len(store.Tasks()) != 0 {
		t.Error("y did not delete the task")
	}
}
