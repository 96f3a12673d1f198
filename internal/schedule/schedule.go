// Package schedule implements the day-keyed task store behind the planner
// grid: slot-level occupancy queries, mutations, and the single-slot undo.
package schedule

import (
	"context"
	"fmt"
	"slices"
	"time"

	"timebox/internal/dateutil"
	"timebox/internal/task"
)

// Persister saves the full schedule after each mutation. The store calls it
// synchronously so writes observe the same order as the mutations that
// produced them.
type Persister interface {
	SaveSchedule(ctx context.Context, days map[string][]*task.Task) error
}

// Store owns the per-date task sets, the active date, and the pending undo
// record. It is not safe for concurrent use; all operations run on the UI
// event loop.
type Store struct {
	days    map[string][]*task.Task // keyed by YYYY-MM-DD, each sorted by StartMin
	active  string
	pending *UndoRecord
	now     func() time.Time
	persist Persister
}

// Option configures optional store behavior.
type Option func(*Store)

// WithClock injects the wall clock used for undo expiry.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithActiveDate sets the initially active day identifier.
func WithActiveDate(date string) Option {
	return func(s *Store) {
		if dateutil.Valid(date) {
			s.active = date
		}
	}
}

// WithDays hydrates the store from persisted state.
func WithDays(days map[string][]*task.Task) Option {
	return func(s *Store) {
		for date, tasks := range days {
			s.days[date] = sortedByStart(tasks)
		}
	}
}

// New creates a Store persisting through p. A nil Persister keeps the store
// purely in-memory.
func New(p Persister, opts ...Option) *Store {
	s := &Store{
		days:    make(map[string][]*task.Task),
		active:  dateutil.Today(),
		now:     time.Now,
		persist: p,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ActiveDate returns the currently selected day identifier.
func (s *Store) ActiveDate() string {
	return s.active
}

// SetActiveDate switches which day subsequent operations target.
// It mutates no task.
func (s *Store) SetActiveDate(date string) error {
	if !dateutil.Valid(date) {
		return dateutil.ErrInvalidDateFormat
	}
	s.active = date
	return nil
}

// TaskAt returns the task whose interval intersects the quarter-hour slot
// addressed by (hour, quarter), or nil. Tasks are non-overlapping by
// construction, so at most one matches; if that invariant were ever violated
// the first match in start order wins.
func (s *Store) TaskAt(hour, quarter int) *task.Task {
	if !task.ValidSlot(hour, quarter) {
		return nil
	}
	slotStart := task.SlotStart(hour, quarter)
	slotEnd := slotStart + task.SlotMinutes
	for _, t := range s.days[s.active] {
		if t.Intersects(slotStart, slotEnd) {
			return t
		}
	}
	return nil
}

// Tasks returns a copy of the active day's task list, sorted by start time.
func (s *Store) Tasks() []*task.Task {
	return slices.Clone(s.days[s.active])
}

// TasksForDate returns a copy of the task list for an arbitrary date.
func (s *Store) TasksForDate(date string) []*task.Task {
	return slices.Clone(s.days[date])
}

// Days returns a copy of the full date-keyed mapping.
func (s *Store) Days() map[string][]*task.Task {
	out := make(map[string][]*task.Task, len(s.days))
	for date, tasks := range s.days {
		out[date] = slices.Clone(tasks)
	}
	return out
}

// Create appends a fully-formed task to the active day. The caller validates
// fields and generates a fresh ID; no overlap check happens at this layer
// because the grid only offers empty slots for creation.
func (s *Store) Create(ctx context.Context, t *task.Task) error {
	s.days[s.active] = insertSorted(s.days[s.active], t)
	return s.save(ctx)
}

// Update replaces the entry matching t.ID field-for-field.
func (s *Store) Update(ctx context.Context, t *task.Task) error {
	tasks := s.days[s.active]
	i := indexOf(tasks, t.ID)
	if i < 0 {
		return fmt.Errorf("%w: %s", task.ErrTaskNotFound, t.ID)
	}
	tasks[i] = t
	s.days[s.active] = sortedByStart(tasks)
	return s.save(ctx)
}

// Move reschedules a task to newStartMin and arms the undo record with the
// prior start. Moving a task onto its current start is a no-op that arms
// nothing and returns a nil record. A move that would overlap another task on
// the active day is rejected with ErrTimeBlockOverlap.
func (s *Store) Move(ctx context.Context, id string, newStartMin int) (*UndoRecord, error) {
	if newStartMin < 0 || newStartMin >= task.MinutesPerDay {
		return nil, fmt.Errorf("%w: got %d minutes", task.ErrInvalidStart, newStartMin)
	}

	tasks := s.days[s.active]
	i := indexOf(tasks, id)
	if i < 0 {
		return nil, fmt.Errorf("%w: %s", task.ErrTaskNotFound, id)
	}
	t := tasks[i]
	if t.StartMin == newStartMin {
		return nil, nil
	}

	for _, other := range tasks {
		if other.ID == id {
			continue
		}
		if other.Intersects(newStartMin, newStartMin+t.Duration) {
			return nil, fmt.Errorf("%w: %q (%s-%s) conflicts with %q (%s-%s)",
				task.ErrTimeBlockOverlap,
				t.DisplayTitle(), task.MinutesToTime(newStartMin), task.MinutesToTime(newStartMin+t.Duration),
				other.DisplayTitle(), other.StartLabel(), other.EndLabel(),
			)
		}
	}

	prev := t.StartMin
	t.StartMin = newStartMin
	s.days[s.active] = sortedByStart(tasks)

	rec := &UndoRecord{TaskID: id, PrevStartMin: prev, armedAt: s.now()}
	s.pending = rec

	if err := s.save(ctx); err != nil {
		return nil, err
	}
	return rec, nil
}

// Remove deletes a task from the active day.
func (s *Store) Remove(ctx context.Context, id string) error {
	tasks := s.days[s.active]
	i := indexOf(tasks, id)
	if i < 0 {
		return fmt.Errorf("%w: %s", task.ErrTaskNotFound, id)
	}
	s.days[s.active] = append(tasks[:i], tasks[i+1:]...)
	return s.save(ctx)
}

// ToggleCompletion flips a task's completed flag.
func (s *Store) ToggleCompletion(ctx context.Context, id string) error {
	tasks := s.days[s.active]
	i := indexOf(tasks, id)
	if i < 0 {
		return fmt.Errorf("%w: %s", task.ErrTaskNotFound, id)
	}
	tasks[i].Completed = !tasks[i].Completed
	return s.save(ctx)
}

// save hands the current state to the persister. It is the single explicit
// write path, invoked after every mutation.
func (s *Store) save(ctx context.Context) error {
	if s.persist == nil {
		return nil
	}
	if err := s.persist.SaveSchedule(ctx, s.days); err != nil {
		return fmt.Errorf("persisting schedule: %w", err)
	}
	return nil
}

func indexOf(tasks []*task.Task, id string) int {
	for i, t := range tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

func sortedByStart(tasks []*task.Task) []*task.Task {
	out := slices.Clone(tasks)
	slices.SortStableFunc(out, func(a, b *task.Task) int {
		return a.StartMin - b.StartMin
	})
	return out
}

func insertSorted(tasks []*task.Task, t *task.Task) []*task.Task {
	return sortedByStart(append(tasks, t))
}
