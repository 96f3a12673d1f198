package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"timebox/internal/config"
	"timebox/internal/db"
	"timebox/internal/schedule"
	"timebox/internal/task"
	"timebox/internal/tui/theme"
)

// Mode represents the current interaction mode.
type Mode int

const (
	ModeNormal Mode = iota
	ModeMove        // A task is picked up; Enter drops it at the cursor
	ModeModal
)

// ModalType identifies the type of modal.
type ModalType int

const (
	ModalNone ModalType = iota
	ModalTaskForm
	ModalTaskDetail
	ModalConfirmDelete
	ModalSettings
)

// Duration options for the task form, in minutes.
var durationOptions = []int{15, 30, 45, 60, 90, 120}

// Position is a cursor position on the grid.
type Position struct {
	Hour    int // 0-23
	Quarter int // 0-3
}

// Model is the main TUI model.
type Model struct {
	// Dependencies
	store *schedule.Store
	kv    *db.KV
	cfg   *config.Config

	// Theme and styles
	theme  *theme.Theme
	styles *Styles

	// Planner state mirrors
	settings  task.Settings
	templates []*task.Template

	// Grid state
	cursor       Position
	scrollOffset int // first visible hour row
	mode         Mode

	// Move mode
	moving *task.Task

	// Pending undo (owned by the store; kept here for display and the u key)
	pendingUndo *schedule.UndoRecord

	// Modal state
	modalType    ModalType
	modalTask    *task.Task // task being viewed/edited (nil for new)
	titleInput   textinput.Model
	formDuration int // index into durationOptions
	formColor    int // index into task.Palette()
	formTemplate int // index into templates, -1 for none
	formFocus    int
	draftWake    int // settings modal draft
	draftBed     int
	settingsFocus int

	// Terminal dimensions and layout
	width     int
	height    int
	cellWidth int

	// Clock state driven by the one-second tick
	now time.Time

	// Messages
	statusMsg   string
	statusUntil time.Time

	err error
}

// tickMsg drives the current-time marker and undo expiry.
type tickMsg time.Time

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// New creates a new TUI model.
func New(store *schedule.Store, kv *db.KV, cfg *config.Config, settings task.Settings, templates []*task.Template) *Model {
	ti := textinput.New()
	ti.Placeholder = task.DefaultTitle
	ti.CharLimit = 256
	ti.Width = 32

	t, err := theme.Load(cfg.UI.Theme)
	if err != nil {
		t, _ = theme.Load("mocha")
	}

	now := time.Now()
	hour, quarter := task.SlotOf(now.Hour()*60 + now.Minute())

	return &Model{
		store:        store,
		kv:           kv,
		cfg:          cfg,
		theme:        t,
		styles:       NewStyles(t),
		settings:     settings.Normalize(),
		templates:    templates,
		cursor:       Position{Hour: hour, Quarter: quarter},
		titleInput:   ti,
		formTemplate: -1,
		cellWidth:    defaultCellWidth,
		now:          now,
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return tickCmd()
}

// Run starts the TUI.
func Run(store *schedule.Store, kv *db.KV, cfg *config.Config, settings task.Settings, templates []*task.Template) error {
	model := New(store, kv, cfg, settings, templates)
	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
