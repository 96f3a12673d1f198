package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"timebox/internal/dateutil"
	"timebox/internal/task"
)

var quarterLabels = [task.QuartersPerHour]string{":00", ":15", ":30", ":45"}

// View renders the full TUI.
func (m Model) View() string {
	if m.err != nil {
		return m.styles.WarningStyle.Render(fmt.Sprintf("Error: %v", m.err)) + "\n"
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderColumnLabels())
	b.WriteString("\n")
	b.WriteString(m.renderGrid())
	b.WriteString(m.renderFooter())

	if m.mode == ModeModal {
		return m.overlayModal(b.String())
	}
	return b.String()
}

// renderHeader renders the title bar with the active date and, while an undo
// is armed, its countdown.
func (m Model) renderHeader() string {
	title := m.styles.TitleStyle.Render("Timebox")

	date := m.store.ActiveDate()
	label := date
	if date == dateutil.Today() {
		label += " (today)"
	}
	dateStr := m.styles.DateStyle.Render(label)

	left := title + "  " + dateStr
	right := m.renderUndoHint()

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + right
}

// renderUndoHint shows the remaining undo window for the last move.
func (m Model) renderUndoHint() string {
	rec := m.store.PendingUndo()
	if rec == nil {
		return ""
	}
	remaining := rec.Remaining(m.now)
	if remaining <= 0 {
		return ""
	}
	secs := int(remaining.Round(time.Second) / time.Second)
	return m.styles.UndoStyle.Render(fmt.Sprintf("u: undo move (%ds)", secs))
}

func (m Model) renderColumnLabels() string {
	var b strings.Builder
	b.WriteString(strings.Repeat(" ", timeColWidth))
	for _, q := range quarterLabels {
		b.WriteString(m.styles.HelpStyle.Render(padCenter(q, m.cellWidth)))
	}
	return b.String()
}

// renderGrid renders the visible hour rows.
func (m Model) renderGrid() string {
	var b strings.Builder
	rows := m.visibleRows()
	today := m.store.ActiveDate() == dateutil.Today()

	for hour := m.scrollOffset; hour < m.scrollOffset+rows && hour < task.HoursPerDay; hour++ {
		b.WriteString(m.renderTimeLabel(hour, today))
		for quarter := 0; quarter < task.QuartersPerHour; quarter++ {
			b.WriteString(m.renderCell(hour, quarter))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderTimeLabel(hour int, today bool) string {
	label := fmt.Sprintf("%02d:00", hour)
	if today && m.now.Hour() == hour {
		return m.styles.TimeCurrentStyle.Render(label)
	}
	return m.styles.TimeColumnStyle.Render(label)
}

// renderCell renders one quarter-hour cell, layering task, cursor, move
// ghost, and sleep shading.
func (m Model) renderCell(hour, quarter int) string {
	atCursor := m.cursor.Hour == hour && m.cursor.Quarter == quarter
	slotStart := task.SlotStart(hour, quarter)

	// While moving, paint the slots the task would land on from the cursor.
	if m.mode == ModeMove && m.moving != nil {
		ghostStart := task.SlotStart(m.cursor.Hour, m.cursor.Quarter)
		if slotStart >= ghostStart && slotStart < ghostStart+m.moving.Duration {
			text := ""
			if slotStart == ghostStart {
				text = m.moving.DisplayTitle()
			}
			return m.styles.MoveGhostStyle.Render(padCell(text, m.cellWidth))
		}
	}

	t := m.store.TaskAt(hour, quarter)
	if t != nil {
		text := ""
		if t.StartMin >= slotStart && t.StartMin < slotStart+task.SlotMinutes {
			text = t.DisplayTitle()
			if t.Completed {
				text = "✓ " + text
			}
		}
		style := m.styles.TaskCellStyle(t.Color)
		if t.Completed {
			style = m.styles.TaskCompletedStyle
		}
		if atCursor {
			style = style.Reverse(true)
		}
		return style.Render(padCell(text, m.cellWidth))
	}

	if atCursor {
		return m.styles.CursorStyle.Render(padCell("", m.cellWidth))
	}
	if !m.settings.Awake(hour) {
		return m.styles.SleepCellStyle.Render(padCell("·", m.cellWidth))
	}
	return m.styles.EmptyCellStyle.Render(padCell("", m.cellWidth))
}

// renderFooter renders the status line and key help.
func (m Model) renderFooter() string {
	var b strings.Builder

	if m.statusMsg != "" {
		b.WriteString(m.styles.StatusStyle.Render(m.statusMsg))
	}
	b.WriteString("\n")

	help := "hjkl: move  enter: open/new  space: done  m: grab  x: delete  [/]: day  t: today  c: copy  s: settings  q: quit"
	if m.mode == ModeMove {
		help = "hjkl: position  enter: drop  esc: cancel"
	}
	b.WriteString(m.styles.HelpStyle.Render(ansi.Truncate(help, maxInt(m.width, 20), "…")))
	return b.String()
}

// overlayModal centers the active modal over the grid.
func (m Model) overlayModal(background string) string {
	var content string
	switch m.modalType {
	case ModalTaskForm:
		content = m.renderTaskForm()
	case ModalTaskDetail:
		content = m.renderTaskDetail()
	case ModalConfirmDelete:
		content = m.renderConfirmDelete()
	case ModalSettings:
		content = m.renderSettingsModal()
	default:
		return background
	}

	box := m.styles.ModalStyle.Render(content)
	if m.width == 0 || m.height == 0 {
		return box
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

func (m Model) renderTaskForm() string {
	var b strings.Builder

	heading := "New Task"
	if m.modalTask != nil {
		heading = "Edit Task"
	}
	b.WriteString(m.styles.ModalTitleStyle.Render(heading))
	b.WriteString("\n\n")

	b.WriteString(m.formLabel("Title", 0))
	b.WriteString(m.titleInput.View())
	b.WriteString("\n")

	b.WriteString(m.formLabel("Duration", 1))
	b.WriteString(m.styles.ModalValueStyle.Render(fmt.Sprintf("< %d min >", durationOptions[m.formDuration])))
	b.WriteString("\n")

	b.WriteString(m.formLabel("Color", 2))
	c := task.Palette()[m.formColor]
	swatch := m.styles.TaskCellStyle(c).Render("  " + string(c) + "  ")
	b.WriteString(fmt.Sprintf("< %s >", swatch))
	b.WriteString("\n")

	if m.modalTask == nil && len(m.templates) > 0 {
		b.WriteString(m.formLabel("Template", 3))
		name := "none"
		if m.formTemplate >= 0 && m.formTemplate < len(m.templates) {
			name = m.templates[m.formTemplate].Title
		}
		b.WriteString(m.styles.ModalValueStyle.Render(fmt.Sprintf("< %s >", name)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	start := task.SlotStart(m.cursor.Hour, m.cursor.Quarter)
	if m.modalTask != nil {
		start = m.modalTask.StartMin
	}
	b.WriteString(m.styles.ModalHintStyle.Render(
		fmt.Sprintf("starts %s · tab: next field · enter: save · esc: cancel", task.MinutesToTime(start))))
	return b.String()
}

func (m Model) formLabel(name string, field int) string {
	label := fmt.Sprintf("%-10s", name)
	if m.formFocus == field {
		return m.styles.ModalFocusedStyle.Render("> " + label)
	}
	return m.styles.ModalLabelStyle.Render("  " + label)
}

func (m Model) renderTaskDetail() string {
	t := m.modalTask
	if t == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.styles.ModalTitleStyle.Render(t.DisplayTitle()))
	b.WriteString("\n\n")

	status := "pending"
	if t.Completed {
		status = "done"
	}
	b.WriteString(m.styles.ModalLabelStyle.Render("Time      "))
	b.WriteString(m.styles.ModalValueStyle.Render(fmt.Sprintf("%s - %s (%d min)", t.StartLabel(), t.EndLabel(), t.Duration)))
	b.WriteString("\n")
	b.WriteString(m.styles.ModalLabelStyle.Render("Status    "))
	b.WriteString(m.styles.ModalValueStyle.Render(status))
	b.WriteString("\n")
	b.WriteString(m.styles.ModalLabelStyle.Render("Color     "))
	b.WriteString(m.styles.TaskCellStyle(t.Color).Render("  " + string(t.Color.Normalize()) + "  "))
	b.WriteString("\n\n")
	b.WriteString(m.styles.ModalHintStyle.Render("e: edit · space: toggle done · x: delete · esc: close"))
	return b.String()
}

func (m Model) renderConfirmDelete() string {
	title := ""
	if m.modalTask != nil {
		title = m.modalTask.DisplayTitle()
	}
	var b strings.Builder
	b.WriteString(m.styles.ModalTitleStyle.Render("Delete task?"))
	b.WriteString("\n\n")
	b.WriteString(m.styles.ModalValueStyle.Render(title))
	b.WriteString("\n\n")
	b.WriteString(m.styles.ModalHintStyle.Render("y/enter: delete · n/esc: keep"))
	return b.String()
}

func (m Model) renderSettingsModal() string {
	var b strings.Builder
	b.WriteString(m.styles.ModalTitleStyle.Render("Settings"))
	b.WriteString("\n\n")

	wake := fmt.Sprintf("%-10s< %02d:00 >", "Wake", m.draftWake)
	bed := fmt.Sprintf("%-10s< %02d:00 >", "Sleep", m.draftBed)
	if m.settingsFocus == 0 {
		b.WriteString(m.styles.ModalFocusedStyle.Render("> " + wake))
		b.WriteString("\n")
		b.WriteString(m.styles.ModalLabelStyle.Render("  " + bed))
	} else {
		b.WriteString(m.styles.ModalLabelStyle.Render("  " + wake))
		b.WriteString("\n")
		b.WriteString(m.styles.ModalFocusedStyle.Render("> " + bed))
	}
	b.WriteString("\n\n")
	b.WriteString(m.styles.ModalHintStyle.Render("h/l: adjust · tab: switch · enter: save · esc: cancel"))
	return b.String()
}

// padCell truncates or pads text to exactly width columns with a leading
// space.
func padCell(text string, width int) string {
	if width < 2 {
		width = 2
	}
	text = ansi.Truncate(" "+text, width, "…")
	if pad := width - lipgloss.Width(text); pad > 0 {
		text += strings.Repeat(" ", pad)
	}
	return text
}

func padCenter(text string, width int) string {
	pad := width - lipgloss.Width(text)
	if pad <= 0 {
		return text
	}
	left := pad / 2
	return strings.Repeat(" ", left) + text + strings.Repeat(" ", pad-left)
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
