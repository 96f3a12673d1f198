package schedule

import (
	"context"
	"errors"
	"fmt"
	"time"

	"timebox/internal/task"
)

// UndoWindow is how long a move stays undoable after arming.
const UndoWindow = 5 * time.Second

// ErrNothingToUndo reports an undo attempt with no live record: nothing
// pending, a stale or superseded record, or one past its window.
var ErrNothingToUndo = errors.New("nothing to undo")

// UndoRecord is the single compensating action retained after the most
// recent move. It is superseded by any newer move and consumed by Undo.
type UndoRecord struct {
	TaskID       string
	PrevStartMin int
	armedAt      time.Time
}

// Expired returns true if the record's validity window has passed.
func (r *UndoRecord) Expired(now time.Time) bool {
	return now.Sub(r.armedAt) > UndoWindow
}

// Remaining returns how much of the validity window is left, zero or less
// once expired.
func (r *UndoRecord) Remaining(now time.Time) time.Duration {
	return UndoWindow - now.Sub(r.armedAt)
}

// PendingUndo returns the live undo record, expiring it lazily.
// Returns nil when the undo slot is empty.
func (s *Store) PendingUndo() *UndoRecord {
	if s.pending != nil && s.pending.Expired(s.now()) {
		s.pending = nil
	}
	return s.pending
}

// ExpirePendingUndo clears the pending record if its window has passed.
// Reports whether a record was expired; driven by the UI timer tick.
func (s *Store) ExpirePendingUndo() bool {
	if s.pending != nil && s.pending.Expired(s.now()) {
		s.pending = nil
		return true
	}
	return false
}

// Undo restores the referenced task's start iff rec is still the current
// pending record and within its window, then clears the undo slot. Stale,
// superseded, consumed, or expired records leave all state unchanged.
func (s *Store) Undo(ctx context.Context, rec *UndoRecord) error {
	if rec == nil || s.PendingUndo() != rec {
		return ErrNothingToUndo
	}

	tasks := s.days[s.active]
	i := indexOf(tasks, rec.TaskID)
	if i < 0 {
		// Task removed since the move; the record is dead either way.
		s.pending = nil
		return fmt.Errorf("%w: %s", task.ErrTaskNotFound, rec.TaskID)
	}

	tasks[i].StartMin = rec.PrevStartMin
	s.days[s.active] = sortedByStart(tasks)
	s.pending = nil
	return s.save(ctx)
}
