package tui

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"timebox/internal/dateutil"
	"timebox/internal/schedule"
	"timebox/internal/task"
)

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.cellWidth = m.calculateCellWidth()
		m.ensureCursorVisible()
		return m, nil

	case tickMsg:
		m.now = time.Time(msg)
		if m.store.ExpirePendingUndo() {
			m.pendingUndo = nil
		}
		if m.statusMsg != "" && m.now.After(m.statusUntil) {
			m.statusMsg = ""
		}
		return m, tickCmd()
	}

	return m, nil
}

// handleKeyMsg handles keyboard input.
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	switch m.mode {
	case ModeMove:
		return m.handleMoveKeys(msg)
	case ModeModal:
		return m.handleModalKeys(msg)
	default:
		return m.handleNormalKeys(msg)
	}
}

// handleNormalKeys handles keys in normal mode.
func (m Model) handleNormalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit

	// Navigation
	case "h", "left":
		m.moveCursorLeft()
	case "l", "right":
		m.moveCursorRight()
	case "j", "down":
		m.moveCursorDown()
	case "k", "up":
		m.moveCursorUp()
	case "g":
		m.cursor = Position{Hour: 0, Quarter: 0}
		m.ensureCursorVisible()
	case "G":
		m.cursor = Position{Hour: task.HoursPerDay - 1, Quarter: 0}
		m.ensureCursorVisible()

	// Date navigation
	case "[", "H":
		return m.shiftDate(-1)
	case "]", "L":
		return m.shiftDate(1)
	case "t":
		if err := m.store.SetActiveDate(dateutil.Today()); err != nil {
			return m.withStatus(fmt.Sprintf("Error: %v", err)), nil
		}
		return m.withStatus("Jumped to today"), nil

	// Actions
	case "enter":
		return m.handleEnter()

	case " ":
		t := m.taskAtCursor()
		if t == nil {
			return m.withStatus("No task to complete"), nil
		}
		if err := m.store.ToggleCompletion(context.Background(), t.ID); err != nil {
			return m.withStatus(fmt.Sprintf("Error: %v", err)), nil
		}
		if t.Completed {
			return m.withStatus(fmt.Sprintf("Done: %s", t.DisplayTitle())), nil
		}
		return m.withStatus(fmt.Sprintf("Reopened: %s", t.DisplayTitle())), nil

	case "x":
		t := m.taskAtCursor()
		if t == nil {
			return m.withStatus("No task to delete"), nil
		}
		m.mode = ModeModal
		m.modalType = ModalConfirmDelete
		m.modalTask = t
		return m, nil

	case "m":
		t := m.taskAtCursor()
		if t == nil {
			return m.withStatus("No task to move"), nil
		}
		m.mode = ModeMove
		m.moving = t
		return m.withStatus(fmt.Sprintf("Moving: %s (Enter to drop, Esc to cancel)", t.DisplayTitle())), nil

	case "u":
		return m.handleUndo()

	case "c":
		return m.handleCopyDay()

	case "s":
		m.mode = ModeModal
		m.modalType = ModalSettings
		m.draftWake = m.settings.WakeHour
		m.draftBed = m.settings.BedHour
		m.settingsFocus = 0
		return m, nil
	}

	return m, nil
}

// handleMoveKeys handles keys while a task is picked up. Releasing outside
// the grid never happens in the TUI; Esc is the "no drop fired" path and
// leaves all state unchanged.
func (m Model) handleMoveKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = ModeNormal
		m.moving = nil
		return m.withStatus("Move cancelled"), nil

	case "h", "left":
		m.moveCursorLeft()
	case "l", "right":
		m.moveCursorRight()
	case "j", "down":
		m.moveCursorDown()
	case "k", "up":
		m.moveCursorUp()

	case "enter":
		return m.commitMove()
	}

	return m, nil
}

// commitMove drops the picked-up task at the cursor slot.
func (m Model) commitMove() (tea.Model, tea.Cmd) {
	if m.moving == nil {
		m.mode = ModeNormal
		return m, nil
	}

	t := m.moving
	m.mode = ModeNormal
	m.moving = nil

	newStart := task.SlotStart(m.cursor.Hour, m.cursor.Quarter)
	rec, err := m.store.Move(context.Background(), t.ID, newStart)
	if err != nil {
		if errors.Is(err, task.ErrTimeBlockOverlap) {
			return m.withStatus("Slot occupied: move rejected"), nil
		}
		return m.withStatus(fmt.Sprintf("Error: %v", err)), nil
	}
	if rec == nil {
		return m.withStatus("Task unchanged"), nil
	}

	m.pendingUndo = rec
	return m.withStatus(fmt.Sprintf("Moved: %s -> %s (u to undo)",
		t.DisplayTitle(), task.MinutesToTime(newStart))), nil
}

// handleUndo reverts the most recent move while its window is open.
func (m Model) handleUndo() (tea.Model, tea.Cmd) {
	rec := m.pendingUndo
	m.pendingUndo = nil
	err := m.store.Undo(context.Background(), rec)
	if errors.Is(err, schedule.ErrNothingToUndo) {
		return m.withStatus("Nothing to undo"), nil
	}
	if err != nil {
		return m.withStatus(fmt.Sprintf("Error: %v", err)), nil
	}
	return m.withStatus(fmt.Sprintf("Restored to %s", task.MinutesToTime(rec.PrevStartMin))), nil
}

// handleCopyDay copies the active day's plan as text.
func (m Model) handleCopyDay() (tea.Model, tea.Cmd) {
	tasks := m.store.Tasks()
	if len(tasks) == 0 {
		return m.withStatus("No tasks to copy"), nil
	}
	if err := clipboard.WriteAll(DayPlanText(m.store.ActiveDate(), tasks)); err != nil {
		return m.withStatus(fmt.Sprintf("Copy failed: %v", err)), nil
	}
	return m.withStatus("Copied day plan"), nil
}

// handleEnter opens the create form on an empty slot, the detail modal on a
// task.
func (m Model) handleEnter() (tea.Model, tea.Cmd) {
	t := m.taskAtCursor()
	if t == nil {
		m.mode = ModeModal
		m.modalType = ModalTaskForm
		m.modalTask = nil
		m.titleInput.SetValue("")
		m.titleInput.Focus()
		m.formDuration = durationIndex(m.cfg.Schedule.DefaultDuration)
		m.formColor = 0
		m.formTemplate = -1
		m.formFocus = 0
		return m, textinput.Blink
	}

	m.mode = ModeModal
	m.modalType = ModalTaskDetail
	m.modalTask = t
	return m, nil
}

// handleModalKeys handles keys in modal mode.
func (m Model) handleModalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.modalType {
	case ModalTaskForm:
		return m.handleTaskFormKeys(msg)
	case ModalTaskDetail:
		return m.handleTaskDetailKeys(msg)
	case ModalConfirmDelete:
		return m.handleConfirmDeleteKeys(msg)
	case ModalSettings:
		return m.handleSettingsKeys(msg)
	default:
		if msg.String() == "esc" {
			m.mode = ModeNormal
			m.modalType = ModalNone
		}
	}
	return m, nil
}

// Form focus order: title, duration, color, template (create only).
func (m Model) formFields() int {
	if m.modalTask == nil && len(m.templates) > 0 {
		return 4
	}
	return 3
}

// handleTaskFormKeys handles keys in the create/edit form.
func (m Model) handleTaskFormKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return m.closeModal(), nil

	case "tab", "down":
		m.formFocus = (m.formFocus + 1) % m.formFields()
		m.syncFormFocus()
		return m, nil

	case "shift+tab", "up":
		m.formFocus = (m.formFocus + m.formFields() - 1) % m.formFields()
		m.syncFormFocus()
		return m, nil

	case "enter":
		if m.formFocus == 0 {
			m.formFocus = 1
			m.syncFormFocus()
			return m, nil
		}
		return m.saveTaskFromForm()

	case "left", "h":
		switch m.formFocus {
		case 1:
			if m.formDuration > 0 {
				m.formDuration--
			}
			return m, nil
		case 2:
			if m.formColor > 0 {
				m.formColor--
			}
			return m, nil
		case 3:
			if m.formTemplate > -1 {
				m.formTemplate--
			}
			return m, nil
		}

	case "right", "l":
		switch m.formFocus {
		case 1:
			if m.formDuration < len(durationOptions)-1 {
				m.formDuration++
			}
			return m, nil
		case 2:
			if m.formColor < len(task.Palette())-1 {
				m.formColor++
			}
			return m, nil
		case 3:
			if m.formTemplate < len(m.templates)-1 {
				m.formTemplate++
			}
			return m, nil
		}
	}

	if m.formFocus == 0 {
		var cmd tea.Cmd
		m.titleInput, cmd = m.titleInput.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m *Model) syncFormFocus() {
	if m.formFocus == 0 {
		m.titleInput.Focus()
	} else {
		m.titleInput.Blur()
	}
}

// saveTaskFromForm creates or updates a task from the form state.
func (m Model) saveTaskFromForm() (tea.Model, tea.Cmd) {
	title := m.titleInput.Value()
	duration := durationOptions[m.formDuration]
	color := task.Palette()[m.formColor]

	// A chosen template overrides empty form fields.
	if m.modalTask == nil && m.formTemplate >= 0 && m.formTemplate < len(m.templates) {
		tpl := m.templates[m.formTemplate]
		if title == "" {
			title = tpl.Title
		}
		duration = tpl.Duration
		color = tpl.Color
	}

	ctx := context.Background()

	if m.modalTask != nil {
		updated := m.modalTask.Clone()
		updated.Title = title
		updated.Duration = duration
		updated.Color = color
		if err := m.store.Update(ctx, updated); err != nil {
			return m.closeModal().withStatus(fmt.Sprintf("Error: %v", err)), nil
		}
		return m.closeModal().withStatus(fmt.Sprintf("Updated: %s", updated.DisplayTitle())), nil
	}

	start := task.SlotStart(m.cursor.Hour, m.cursor.Quarter)
	t, err := task.New(title, start, duration, color)
	if err != nil {
		return m.closeModal().withStatus(fmt.Sprintf("Error: %v", err)), nil
	}
	if err := m.store.Create(ctx, t); err != nil {
		return m.closeModal().withStatus(fmt.Sprintf("Error: %v", err)), nil
	}
	return m.closeModal().withStatus(fmt.Sprintf("Created: %s", t.DisplayTitle())), nil
}

// handleTaskDetailKeys handles keys in the task detail modal.
func (m Model) handleTaskDetailKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "enter":
		return m.closeModal(), nil

	case "e":
		if m.modalTask == nil {
			return m, nil
		}
		m.modalType = ModalTaskForm
		m.titleInput.SetValue(m.modalTask.Title)
		m.titleInput.Focus()
		m.formDuration = durationIndex(m.modalTask.Duration)
		m.formColor = paletteIndex(m.modalTask.Color)
		m.formFocus = 0
		return m, textinput.Blink

	case " ":
		if m.modalTask == nil {
			return m, nil
		}
		if err := m.store.ToggleCompletion(context.Background(), m.modalTask.ID); err != nil {
			return m.closeModal().withStatus(fmt.Sprintf("Error: %v", err)), nil
		}
		return m.closeModal(), nil

	case "x":
		if m.modalTask != nil {
			m.modalType = ModalConfirmDelete
		}
		return m, nil
	}
	return m, nil
}

// handleConfirmDeleteKeys handles the delete confirmation.
func (m Model) handleConfirmDeleteKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "n":
		return m.closeModal(), nil

	case "enter", "y":
		if m.modalTask == nil {
			return m.closeModal(), nil
		}
		title := m.modalTask.DisplayTitle()
		if err := m.store.Remove(context.Background(), m.modalTask.ID); err != nil {
			return m.closeModal().withStatus(fmt.Sprintf("Error: %v", err)), nil
		}
		return m.closeModal().withStatus(fmt.Sprintf("Deleted: %s", title)), nil
	}
	return m, nil
}

// handleSettingsKeys edits wake/sleep hours.
func (m Model) handleSettingsKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return m.closeModal(), nil

	case "tab", "j", "down", "k", "up", "shift+tab":
		m.settingsFocus = (m.settingsFocus + 1) % 2
		return m, nil

	case "h", "left":
		if m.settingsFocus == 0 {
			m.draftWake = (m.draftWake + 23) % 24
		} else {
			m.draftBed = (m.draftBed + 23) % 24
		}
		return m, nil

	case "l", "right":
		if m.settingsFocus == 0 {
			m.draftWake = (m.draftWake + 1) % 24
		} else {
			m.draftBed = (m.draftBed + 1) % 24
		}
		return m, nil

	case "enter":
		settings := task.Settings{WakeHour: m.draftWake, BedHour: m.draftBed}.Normalize()
		if err := m.kv.SaveSettings(context.Background(), settings); err != nil {
			return m.closeModal().withStatus(fmt.Sprintf("Error: %v", err)), nil
		}
		m.settings = settings
		return m.closeModal().withStatus("Settings saved"), nil
	}
	return m, nil
}

// closeModal resets all modal state.
func (m Model) closeModal() Model {
	m.mode = ModeNormal
	m.modalType = ModalNone
	m.modalTask = nil
	m.titleInput.Blur()
	m.titleInput.SetValue("")
	m.formFocus = 0
	m.formTemplate = -1
	return m
}

// shiftDate moves the active date by n days.
func (m Model) shiftDate(n int) (tea.Model, tea.Cmd) {
	next, err := dateutil.AddDays(m.store.ActiveDate(), n)
	if err != nil {
		return m.withStatus(fmt.Sprintf("Error: %v", err)), nil
	}
	if err := m.store.SetActiveDate(next); err != nil {
		return m.withStatus(fmt.Sprintf("Error: %v", err)), nil
	}
	return m, nil
}

// withStatus sets a transient status message.
func (m Model) withStatus(msg string) Model {
	m.statusMsg = msg
	m.statusUntil = m.now.Add(4 * time.Second)
	return m
}
