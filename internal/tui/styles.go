// Package tui provides the terminal user interface for timebox.
package tui

import (
	"github.com/charmbracelet/lipgloss"

	"timebox/internal/task"
	"timebox/internal/tui/theme"
)

// Column geometry defaults; cell width is recalculated from terminal size.
const (
	defaultCellWidth = 14
	minCellWidth     = 8
	maxCellWidth     = 22
	timeColWidth     = 6
)

// Styles holds all lipgloss styles for the TUI, derived from a theme.
type Styles struct {
	theme *theme.Theme

	TitleStyle  lipgloss.Style
	HeaderStyle lipgloss.Style
	DateStyle   lipgloss.Style

	TimeColumnStyle  lipgloss.Style
	TimeCurrentStyle lipgloss.Style

	EmptyCellStyle lipgloss.Style
	SleepCellStyle lipgloss.Style
	CursorStyle    lipgloss.Style
	MoveGhostStyle lipgloss.Style

	TaskTextStyle      lipgloss.Style
	TaskCompletedStyle lipgloss.Style

	StatusStyle  lipgloss.Style
	WarningStyle lipgloss.Style
	HelpStyle    lipgloss.Style
	UndoStyle    lipgloss.Style

	ModalStyle        lipgloss.Style
	ModalTitleStyle   lipgloss.Style
	ModalLabelStyle   lipgloss.Style
	ModalValueStyle   lipgloss.Style
	ModalFocusedStyle lipgloss.Style
	ModalHintStyle    lipgloss.Style
}

// NewStyles derives the style set from a theme.
func NewStyles(t *theme.Theme) *Styles {
	bg := theme.Color(t.Bg)
	bgHighlight := theme.Color(t.BgHighlight)
	bgSelection := theme.Color(t.BgSelection)
	bgSleep := theme.Color(t.BgSleep)
	fg := theme.Color(t.Fg)
	fgMuted := theme.Color(t.FgMuted)
	accent := theme.Color(t.Accent)
	current := theme.Color(t.Current)
	warning := theme.Color(t.Warning)

	return &Styles{
		theme: t,

		TitleStyle:  lipgloss.NewStyle().Foreground(accent).Bold(true),
		HeaderStyle: lipgloss.NewStyle().Foreground(fg).Bold(true),
		DateStyle:   lipgloss.NewStyle().Foreground(fg),

		TimeColumnStyle:  lipgloss.NewStyle().Foreground(fgMuted).Width(timeColWidth),
		TimeCurrentStyle: lipgloss.NewStyle().Foreground(current).Bold(true).Width(timeColWidth),

		EmptyCellStyle: lipgloss.NewStyle().Background(bg).Foreground(fgMuted),
		SleepCellStyle: lipgloss.NewStyle().Background(bgSleep).Foreground(fgMuted),
		CursorStyle:    lipgloss.NewStyle().Background(bgSelection).Foreground(fg).Bold(true),
		MoveGhostStyle: lipgloss.NewStyle().Background(warning).Foreground(bg).Bold(true),

		TaskTextStyle:      lipgloss.NewStyle().Foreground(bg).Bold(true),
		TaskCompletedStyle: lipgloss.NewStyle().Background(bgHighlight).Foreground(fgMuted).Strikethrough(true),

		StatusStyle:  lipgloss.NewStyle().Foreground(fg),
		WarningStyle: lipgloss.NewStyle().Foreground(warning).Bold(true),
		HelpStyle:    lipgloss.NewStyle().Foreground(fgMuted),
		UndoStyle:    lipgloss.NewStyle().Foreground(warning),

		ModalStyle: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(1, 2),
		ModalTitleStyle:   lipgloss.NewStyle().Foreground(accent).Bold(true),
		ModalLabelStyle:   lipgloss.NewStyle().Foreground(fgMuted),
		ModalValueStyle:   lipgloss.NewStyle().Foreground(fg),
		ModalFocusedStyle: lipgloss.NewStyle().Foreground(accent).Bold(true),
		ModalHintStyle:    lipgloss.NewStyle().Foreground(fgMuted).Italic(true),
	}
}

// TaskCellStyle returns the style for a task block of the given color.
func (s *Styles) TaskCellStyle(c task.Color) lipgloss.Style {
	return s.TaskTextStyle.Background(s.theme.TaskColor(c))
}
