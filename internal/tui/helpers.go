package tui

import (
	"fmt"
	"strings"

	"timebox/internal/task"
)

// taskAtCursor returns the task under the cursor, if any.
func (m *Model) taskAtCursor() *task.Task {
	return m.store.TaskAt(m.cursor.Hour, m.cursor.Quarter)
}

// Cursor movement wraps quarters across hour boundaries so holding l walks
// the whole day in slot order.

func (m *Model) moveCursorLeft() {
	if m.cursor.Quarter > 0 {
		m.cursor.Quarter--
		return
	}
	if m.cursor.Hour > 0 {
		m.cursor.Hour--
		m.cursor.Quarter = task.QuartersPerHour - 1
		m.ensureCursorVisible()
	}
}

func (m *Model) moveCursorRight() {
	if m.cursor.Quarter < task.QuartersPerHour-1 {
		m.cursor.Quarter++
		return
	}
	if m.cursor.Hour < task.HoursPerDay-1 {
		m.cursor.Hour++
		m.cursor.Quarter = 0
		m.ensureCursorVisible()
	}
}

func (m *Model) moveCursorUp() {
	if m.cursor.Hour > 0 {
		m.cursor.Hour--
		m.ensureCursorVisible()
	}
}

func (m *Model) moveCursorDown() {
	if m.cursor.Hour < task.HoursPerDay-1 {
		m.cursor.Hour++
		m.ensureCursorVisible()
	}
}

// calculateCellWidth fits four quarter columns plus the time column into the
// terminal width.
func (m *Model) calculateCellWidth() int {
	if m.width == 0 {
		return defaultCellWidth
	}
	w := (m.width - timeColWidth) / task.QuartersPerHour
	if w < minCellWidth {
		return minCellWidth
	}
	if w > maxCellWidth {
		return maxCellWidth
	}
	return w
}

// visibleRows is how many hour rows fit below the header and above the
// footer.
func (m *Model) visibleRows() int {
	rows := m.height - 5 // header, column labels, status, help
	if rows < 1 {
		return 1
	}
	if rows > task.HoursPerDay {
		return task.HoursPerDay
	}
	return rows
}

// ensureCursorVisible scrolls the grid so the cursor row stays on screen.
func (m *Model) ensureCursorVisible() {
	rows := m.visibleRows()
	if m.cursor.Hour < m.scrollOffset {
		m.scrollOffset = m.cursor.Hour
	}
	if m.cursor.Hour >= m.scrollOffset+rows {
		m.scrollOffset = m.cursor.Hour - rows + 1
	}
	if m.scrollOffset < 0 {
		m.scrollOffset = 0
	}
	if max := task.HoursPerDay - rows; m.scrollOffset > max {
		m.scrollOffset = max
	}
}

// durationIndex maps a minute count to the nearest form option.
func durationIndex(minutes int) int {
	best := 0
	for i, d := range durationOptions {
		if abs(d-minutes) < abs(durationOptions[best]-minutes) {
			best = i
		}
	}
	return best
}

// paletteIndex maps a color to its position in the form's palette cycle.
func paletteIndex(c task.Color) int {
	for i, p := range task.Palette() {
		if p == c.Normalize() {
			return i
		}
	}
	return 0
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// DayPlanText renders a day's tasks as plain text for the clipboard.
func DayPlanText(date string, tasks []*task.Task) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Plan for %s\n", date)
	for _, t := range tasks {
		mark := " "
		if t.Completed {
			mark = "x"
		}
		fmt.Fprintf(&b, "[%s] %s-%s %s\n", mark, t.StartLabel(), t.EndLabel(), t.DisplayTitle())
	}
	return b.String()
}
