// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package tui

import "github.com/charmbracelet/lipgloss"

// Theme is the colour palette of the terminal UI.
type Theme struct {
	Accent     lipgloss.Color
	Background lipgloss.Color
	Surface    lipgloss.Color
	Foreground lipgloss.Color
	Muted      lipgloss.Color
	Warning    lipgloss.Color
	Danger     lipgloss.Color
	Border     lipgloss.Color
}

// DarkTheme returns the default dark palette.
func DarkTheme() *Theme {
	return &Theme{
		Accent:     lipgloss.Color("#0A84FF"),
		Background: lipgloss.Color("#121212"),
		Surface:    lipgloss.Color("#1E1E1E"),
		Foreground: lipgloss.Color("#FFFFFF"),
		Muted:      lipgloss.Color("#AAAAAA"),
		Warning:    lipgloss.Color("#FF9500"),
		Danger:     lipgloss.Color("#FF453A"),
		Border:     lipgloss.Color("#333333"),
	}
}

// Styles holds the lipgloss styles used by the model.
type Styles struct {
	Title      lipgloss.Style
	Section    lipgloss.Style
	Normal     lipgloss.Style
	Muted      lipgloss.Style
	Label      lipgloss.Style
	Value      lipgloss.Style
	Selected   lipgloss.Style
	Chip       lipgloss.Style
	ChipActive lipgloss.Style
	Warning    lipgloss.Style
	Error      lipgloss.Style
	Panel      lipgloss.Style
	Status     lipgloss.Style
}

// NewStyles builds Styles from theme; nil means DarkTheme.
func NewStyles(theme *Theme) *Styles {
	if theme == nil {
		theme = DarkTheme()
	}
	chip := lipgloss.NewStyle().
		Padding(0, 1).
		Foreground(theme.Muted).
		Background(theme.Surface)

	return &Styles{
		Title:      lipgloss.NewStyle().Bold(true).Foreground(theme.Accent),
		Section:    lipgloss.NewStyle().Bold(true).Foreground(theme.Foreground).MarginTop(1),
		Normal:     lipgloss.NewStyle().Foreground(theme.Foreground),
		Muted:      lipgloss.NewStyle().Foreground(theme.Muted),
		Label:      lipgloss.NewStyle().Foreground(theme.Muted).Width(22),
		Value:      lipgloss.NewStyle().Bold(true).Foreground(theme.Foreground),
		Selected:   lipgloss.NewStyle().Bold(true).Foreground(theme.Foreground).Background(theme.Accent),
		Chip:       chip,
		ChipActive: chip.Foreground(theme.Foreground).Background(theme.Accent),
		Warning:    lipgloss.NewStyle().Foreground(theme.Warning),
		Error:      lipgloss.NewStyle().Foreground(theme.Danger),
		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Padding(0, 1),
		Status: lipgloss.NewStyle().Foreground(theme.Muted),
	}
}
