package schedule

import (
	"context"
	"errors"
	"testing"

	"timebox/internal/task"
)

// recordingPersister counts saves and remembers the last snapshot.
type recordingPersister struct {
	saves int
	last  map[string][]*task.Task
	err   error
}

func (p *recordingPersister) SaveSchedule(ctx context.Context, days map[string][]*task.Task) error {
	if p.err != nil {
		return p.err
	}
	p.saves++
	p.last = days
	return nil
}

func mustTask(t *testing.T, title string, startMin, duration int) *task.Task {
	t.Helper()
	tk, err := task.New(title, startMin, duration, task.ColorSky)
	if err != nil {
		t.Fatal(err)
	}
	return tk
}

func newTestStore(t *testing.T) (*Store, *recordingPersister) {
	t.Helper()
	p := &recordingPersister{}
	return New(p, WithActiveDate("2026-03-15")), p
}

func TestTaskAt(t *testing.T) {
	s, _ := newTestStore(t)
	// 09:00-09:30
	tk := mustTask(t, "Standup", 540, 30)
	if err := s.Create(context.Background(), tk); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name          string
		hour, quarter int
		wantHit       bool
	}{
		{"first covered slot", 9, 0, true},
		{"second covered slot", 9, 1, true},
		{"slot after end", 9, 2, false},
		{"slot before start", 8, 3, false},
		{"out of range hour", 24, 0, false},
		{"out of range quarter", 9, 4, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := s.TaskAt(tt.hour, tt.quarter)
			if tt.wantHit && got == nil {
				t.Fatalf("TaskAt(%d, %d) = nil, want task", tt.hour, tt.quarter)
			}
			if !tt.wantHit && got != nil {
				t.Fatalf("TaskAt(%d, %d) = %v, want nil", tt.hour, tt.quarter, got)
			}
			if tt.wantHit && got.ID != tk.ID {
				t.Errorf("TaskAt(%d, %d) returned wrong task", tt.hour, tt.quarter)
			}
		})
	}
}

func TestTaskAtSpansHourBoundary(t *testing.T) {
	s, _ := newTestStore(t)
	// 09:45-10:15 crosses the hour
	if err := s.Create(context.Background(), mustTask(t, "x", 585, 30)); err != nil {
		t.Fatal(err)
	}

	if s.TaskAt(9, 3) == nil {
		t.Error("TaskAt(9, 3) = nil, want task")
	}
	if s.TaskAt(10, 0) == nil {
		t.Error("TaskAt(10, 0) = nil, want task")
	}
	if s.TaskAt(10, 1) != nil {
		t.Error("TaskAt(10, 1) != nil, want nil")
	}
}

func TestCreateKeepsStartOrder(t *testing.T) {
	s, p := newTestStore(t)
	ctx := context.Background()

	late := mustTask(t, "late", 900, 30)
	early := mustTask(t, "early", 60, 30)
	if err := s.Create(ctx, late); err != nil {
		t.Fatal(err)
	}
	if err := s.Create(ctx, early); err != nil {
		t.Fatal(err)
	}

	tasks := s.Tasks()
	if len(tasks) != 2 {
		t.Fatalf("len(Tasks()) = %d, want 2", len(tasks))
	}
	if tasks[0].ID != early.ID {
		t.Error("tasks not sorted by start time")
	}
	if p.saves != 2 {
		t.Errorf("persister saves = %d, want 2", p.saves)
	}
}

func TestUpdate(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	tk := mustTask(t, "before", 540, 30)
	if err := s.Create(ctx, tk); err != nil {
		t.Fatal(err)
	}

	edited := tk.Clone()
	edited.Title = "after"
	edited.Duration = 60
	if err := s.Update(ctx, edited); err != nil {
		t.Fatal(err)
	}

	got := s.Tasks()[0]
	if got.Title != "after" || got.Duration != 60 {
		t.Errorf("Update() not applied: %+v", got)
	}

	ghost := mustTask(t, "ghost", 0, 15)
	if err := s.Update(ctx, ghost); !errors.Is(err, task.ErrTaskNotFound) {
		t.Errorf("Update(unknown) error = %v, want ErrTaskNotFound", err)
	}
}

func TestMove(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	tk := mustTask(t, "focus", 540, 30) // 09:00-09:30
	if err := s.Create(ctx, tk); err != nil {
		t.Fatal(err)
	}

	rec, err := s.Move(ctx, tk.ID, 840) // to 14:00
	if err != nil {
		t.Fatalf("Move() unexpected error: %v", err)
	}
	if rec == nil {
		t.Fatal("Move() returned nil record")
	}
	if rec.PrevStartMin != 540 {
		t.Errorf("PrevStartMin = %d, want 540", rec.PrevStartMin)
	}
	if tk.StartMin != 840 {
		t.Errorf("StartMin after move = %d, want 840", tk.StartMin)
	}
	if s.TaskAt(9, 0) != nil {
		t.Error("old slot still occupied after move")
	}
	if s.TaskAt(14, 0) == nil {
		t.Error("new slot empty after move")
	}
}

func TestMoveToSameStartIsNoOp(t *testing.T) {
	s, p := newTestStore(t)
	ctx := context.Background()

	tk := mustTask(t, "x", 540, 30)
	if err := s.Create(ctx, tk); err != nil {
		t.Fatal(err)
	}
	savesBefore := p.saves

	rec, err := s.Move(ctx, tk.ID, 540)
	if err != nil {
		t.Fatalf("Move() unexpected error: %v", err)
	}
	if rec != nil {
		t.Error("same-start move must not arm an undo record")
	}
	if s.PendingUndo() != nil {
		t.Error("same-start move left a pending undo")
	}
	if p.saves != savesBefore {
		t.Error("same-start move triggered a save")
	}
}

func TestMoveRejectsOverlap(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	a := mustTask(t, "a", 540, 30) // 09:00-09:30
	b := mustTask(t, "b", 600, 60) // 10:00-11:00
	if err := s.Create(ctx, a); err != nil {
		t.Fatal(err)
	}
	if err := s.Create(ctx, b); err != nil {
		t.Fatal(err)
	}

	// Dropping a onto 09:45 would run into b at 10:00.
	if _, err := s.Move(ctx, a.ID, 585); !errors.Is(err, task.ErrTimeBlockOverlap) {
		t.Fatalf("Move() error = %v, want ErrTimeBlockOverlap", err)
	}
	if a.StartMin != 540 {
		t.Errorf("rejected move mutated StartMin to %d", a.StartMin)
	}
	if s.PendingUndo() != nil {
		t.Error("rejected move armed an undo record")
	}

	// Adjacent placement is fine: a at 09:30-10:00 touches b exactly.
	if _, err := s.Move(ctx, a.ID, 570); err != nil {
		t.Errorf("adjacent move rejected: %v", err)
	}
}

func TestMoveErrors(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	if _, err := s.Move(ctx, "nope", 540); !errors.Is(err, task.ErrTaskNotFound) {
		t.Errorf("Move(unknown) error = %v, want ErrTaskNotFound", err)
	}

	tk := mustTask(t, "x", 540, 30)
	if err := s.Create(ctx, tk); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Move(ctx, tk.ID, -15); !errors.Is(err, task.ErrInvalidStart) {
		t.Errorf("Move(negative) error = %v, want ErrInvalidStart", err)
	}
	if _, err := s.Move(ctx, tk.ID, 1440); !errors.Is(err, task.ErrInvalidStart) {
		t.Errorf("Move(1440) error = %v, want ErrInvalidStart", err)
	}
}

func TestRemove(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	tk := mustTask(t, "x", 540, 30)
	if err := s.Create(ctx, tk); err != nil {
		t.Fatal(err)
	}
	if err := s.Remove(ctx, tk.ID); err != nil {
		t.Fatal(err)
	}
	if len(s.Tasks()) != 0 {
		t.Error("task still present after Remove")
	}
	if err := s.Remove(ctx, tk.ID); !errors.Is(err, task.ErrTaskNotFound) {
		t.Errorf("Remove(removed) error = %v, want ErrTaskNotFound", err)
	}
}

func TestToggleCompletion(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	tk := mustTask(t, "x", 540, 30)
	if err := s.Create(ctx, tk); err != nil {
		t.Fatal(err)
	}

	if err := s.ToggleCompletion(ctx, tk.ID); err != nil {
		t.Fatal(err)
	}
	if !s.Tasks()[0].Completed {
		t.Error("task not completed after toggle")
	}
	if err := s.ToggleCompletion(ctx, tk.ID); err != nil {
		t.Fatal(err)
	}
	if s.Tasks()[0].Completed {
		t.Error("task still completed after second toggle")
	}
	if err := s.ToggleCompletion(ctx, "nope"); !errors.Is(err, task.ErrTaskNotFound) {
		t.Errorf("ToggleCompletion(unknown) error = %v, want ErrTaskNotFound", err)
	}
}

func TestDateSwitchingIsolatesDays(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	monday := mustTask(t, "monday", 540, 30)
	if err := s.Create(ctx, monday); err != nil {
		t.Fatal(err)
	}

	if err := s.SetActiveDate("2026-03-16"); err != nil {
		t.Fatal(err)
	}
	if len(s.Tasks()) != 0 {
		t.Fatal("next day sees previous day's tasks")
	}
	if s.TaskAt(9, 0) != nil {
		t.Error("TaskAt leaks across days")
	}

	tuesday := mustTask(t, "tuesday", 540, 30)
	if err := s.Create(ctx, tuesday); err != nil {
		t.Fatal(err)
	}

	// Same 09:00 slot on both days; each day resolves its own task.
	if got := s.TaskAt(9, 0); got == nil || got.ID != tuesday.ID {
		t.Error("active day resolves wrong task")
	}
	if err := s.SetActiveDate("2026-03-15"); err != nil {
		t.Fatal(err)
	}
	if got := s.TaskAt(9, 0); got == nil || got.ID != monday.ID {
		t.Error("switching back lost the original day")
	}
}

func TestSetActiveDateRejectsMalformed(t *testing.T) {
	s, _ := newTestStore(t)
	if err := s.SetActiveDate("03/15/2026"); err == nil {
		t.Error("SetActiveDate accepted malformed date")
	}
	if s.ActiveDate() != "2026-03-15" {
		t.Error("failed SetActiveDate changed the active date")
	}
}

func TestWithDaysHydratesSorted(t *testing.T) {
	late := mustTask(t, "late", 900, 30)
	early := mustTask(t, "early", 60, 30)
	s := New(nil,
		WithActiveDate("2026-03-15"),
		WithDays(map[string][]*task.Task{
			"2026-03-15": {late, early},
		}),
	)

	tasks := s.Tasks()
	if len(tasks) != 2 || tasks[0].ID != early.ID {
		t.Error("hydrated day not sorted by start time")
	}
}

func TestPersistFailurePropagates(t *testing.T) {
	p := &recordingPersister{err: errors.New("disk full")}
	s := New(p, WithActiveDate("2026-03-15"))

	err := s.Create(context.Background(), mustTask(t, "x", 540, 30))
	if err == nil {
		t.Fatal("Create() swallowed persister error")
	}
}
