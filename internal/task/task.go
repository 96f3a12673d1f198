// Package task defines the core domain types for timebox.
package task

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Validation errors.
var (
	ErrInvalidStart    = errors.New("start must fall within the day")
	ErrInvalidDuration = errors.New("duration must be greater than zero")
)

// Domain errors.
var (
	ErrTaskNotFound     = errors.New("task not found")
	ErrTimeBlockOverlap = errors.New("time block overlaps with existing task")
)

// DefaultTitle is shown for tasks created without a title.
const DefaultTitle = "Untitled"

// Color is a reference into the fixed task palette.
type Color string

const (
	ColorSky   Color = "sky"
	ColorMint  Color = "mint"
	ColorAmber Color = "amber"
	ColorRose  Color = "rose"
	ColorLilac Color = "lilac"
	ColorSlate Color = "slate"
)

// Palette returns the palette colors in display order.
func Palette() []Color {
	return []Color{ColorSky, ColorMint, ColorAmber, ColorRose, ColorLilac, ColorSlate}
}

// Valid returns true if the color is a palette entry.
func (c Color) Valid() bool {
	switch c {
	case ColorSky, ColorMint, ColorAmber, ColorRose, ColorLilac, ColorSlate:
		return true
	default:
		return false
	}
}

// Normalize returns the color itself, or the first palette entry for
// anything that is not a palette color.
func (c Color) Normalize() Color {
	if c.Valid() {
		return c
	}
	return ColorSky
}

// Task represents a scheduled time block on the daily grid.
type Task struct {
	ID        string
	Title     string // may be empty; UI substitutes DefaultTitle
	StartMin  int    // minutes since local midnight, [0, 1440)
	Duration  int    // minutes, > 0; conventionally a multiple of 15
	Color     Color
	Completed bool
	CreatedAt time.Time
}

// New creates a Task with a fresh ID and validated fields.
// An empty title is allowed.
func New(title string, startMin, duration int, color Color) (*Task, error) {
	if startMin < 0 || startMin >= MinutesPerDay {
		return nil, fmt.Errorf("%w: got %d minutes", ErrInvalidStart, startMin)
	}
	if duration <= 0 {
		return nil, fmt.Errorf("%w: got %d minutes", ErrInvalidDuration, duration)
	}

	return &Task{
		ID:        uuid.NewString(),
		Title:     title,
		StartMin:  startMin,
		Duration:  duration,
		Color:     color.Normalize(),
		CreatedAt: time.Now(),
	}, nil
}

// EndMin returns the exclusive end of the task interval in minutes.
func (t *Task) EndMin() int {
	return t.StartMin + t.Duration
}

// Intersects returns true if the task interval intersects [start, end).
func (t *Task) Intersects(start, end int) bool {
	return t.StartMin < end && t.EndMin() > start
}

// OverlapsWith returns true if this task's interval overlaps another's.
func (t *Task) OverlapsWith(other *Task) bool {
	if other == nil {
		return false
	}
	return t.Intersects(other.StartMin, other.EndMin())
}

// DisplayTitle returns the title, substituting the default for empty ones.
func (t *Task) DisplayTitle() string {
	if t.Title == "" {
		return DefaultTitle
	}
	return t.Title
}

// StartLabel returns the start time as "HH:MM".
func (t *Task) StartLabel() string {
	return MinutesToTime(t.StartMin)
}

// EndLabel returns the end time as "HH:MM".
func (t *Task) EndLabel() string {
	return MinutesToTime(t.EndMin())
}

// Clone returns a copy of the task.
func (t *Task) Clone() *Task {
	c := *t
	return &c
}

// Settings holds the wake/sleep hours used to shade non-working rows.
// They have no interaction with the scheduling invariants.
type Settings struct {
	WakeHour int // 0-23
	BedHour  int // 0-23
}

// DefaultSettings returns the settings used before the user configures any.
func DefaultSettings() Settings {
	return Settings{WakeHour: 7, BedHour: 23}
}

// Normalize clamps both hours into the 0-23 range.
func (s Settings) Normalize() Settings {
	clamp := func(h int) int {
		if h < 0 {
			return 0
		}
		if h > 23 {
			return 23
		}
		return h
	}
	return Settings{WakeHour: clamp(s.WakeHour), BedHour: clamp(s.BedHour)}
}

// Awake returns true if the given hour falls within waking hours.
func (s Settings) Awake(hour int) bool {
	if s.WakeHour <= s.BedHour {
		return hour >= s.WakeHour && hour < s.BedHour
	}
	// Wake span crosses midnight
	return hour >= s.WakeHour || hour < s.BedHour
}

// Template is a reusable preset for the create-task form.
type Template struct {
	ID       string
	Title    string
	Duration int
	Color    Color
}

// NewTemplate creates a Template with a fresh ID and validated duration.
func NewTemplate(title string, duration int, color Color) (*Template, error) {
	if duration <= 0 {
		return nil, fmt.Errorf("%w: got %d minutes", ErrInvalidDuration, duration)
	}
	return &Template{
		ID:       uuid.NewString(),
		Title:    title,
		Duration: duration,
		Color:    color.Normalize(),
	}, nil
}
