// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package tui is the interactive terminal front-end: a search box with
// autocomplete, the current compound's details, and controls for the 3D
// viewer.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/pdiddy/moluxis/internal/aggregate"
	"github.com/pdiddy/moluxis/internal/report"
	"github.com/pdiddy/moluxis/internal/suggest"
	"github.com/pdiddy/moluxis/internal/viewer"
	"github.com/pdiddy/moluxis/pkg/types"
)

// Searcher runs searches and exposes the orchestrator state.
type Searcher interface {
	Search(ctx context.Context, query string) (*types.CompoundRecord, error)
	Snapshot() aggregate.Snapshot
}

// Suggester maintains the autocomplete list.
type Suggester interface {
	TextChanged(ctx context.Context, text string) error
	Select(ctx context.Context, item string) (*types.CompoundRecord, error)
	Dismiss()
	Reveal()
	Snapshot() suggest.State
}

// Viewer holds the 3D display settings.
type Viewer interface {
	SetStyle(s viewer.Style) error
	ToggleLabels() (bool, error)
	Settings() (viewer.Style, bool)
}

// Options configures a Model.
type Options struct {
	// ViewerPath is shown in the status line when set.
	ViewerPath string
	Styles     *Styles
}

// Model is the bubbletea model of the terminal UI.
type Model struct {
	ctx     context.Context
	search  Searcher
	suggest Suggester
	viewer  Viewer
	styles  *Styles

	input      textinput.Model
	focusInput bool
	cursor     int
	showInfo   bool
	message    string
	viewerPath string

	width  int
	height int
}

// New returns a Model with the search box focused.
func New(ctx context.Context, s Searcher, sg Suggester, v Viewer, opts Options) *Model {
	st := opts.Styles
	if st == nil {
		st = NewStyles(nil)
	}

	ti := textinput.New()
	ti.Placeholder = "Search (e.g., Caffeine, Aspirin)"
	ti.CharLimit = 128
	ti.Width = 50
	ti.Focus()

	return &Model{
		ctx:        ctx,
		search:     s,
		suggest:    sg,
		viewer:     v,
		styles:     st,
		input:      ti,
		focusInput: true,
		cursor:     -1,
		showInfo:   true,
		viewerPath: opts.ViewerPath,
		width:      80,
		height:     24,
	}
}

// Init starts the cursor blink.
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.input.Width = max(msg.Width-12, 20)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case suggestionsUpdated:
		if msg.Err == nil {
			m.cursor = -1
		}
		return m, nil

	case searchCompleted:
		m.handleSearchCompleted(msg)
		return m, nil

	case SnapshotChanged:
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}
	if m.focusInput {
		return m.handleInputKey(msg)
	}

	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "/", "s":
		m.focusInput = true
		m.suggest.Reveal()
		return m, m.input.Focus()
	case "i":
		m.showInfo = !m.showInfo
	case "l":
		on, err := m.viewer.ToggleLabels()
		if err != nil {
			m.message = "Viewer: " + err.Error()
		} else if on {
			m.message = "Labels shown"
		} else {
			m.message = "Labels hidden"
		}
	case "1", "2", "3", "4":
		style := viewer.Styles()[msg.String()[0]-'1']
		if err := m.viewer.SetStyle(style); err != nil {
			m.message = "Viewer: " + err.Error()
		} else {
			m.message = "Style: " + style.Label()
		}
	}
	return m, nil
}

func (m *Model) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	state := m.suggest.Snapshot()

	//nolint:exhaustive // only navigation keys are handled here
	switch msg.Type {
	case tea.KeyEnter:
		if state.Showing() && m.cursor >= 0 && m.cursor < len(state.Suggestions) {
			item := state.Suggestions[m.cursor]
			m.input.SetValue(item)
			m.leaveInput()
			return m, m.selectCmd(item)
		}
		query := strings.TrimSpace(m.input.Value())
		if query == "" {
			return m, nil
		}
		m.suggest.Dismiss()
		m.leaveInput()
		return m, m.searchCmd(query)

	case tea.KeyEsc:
		if state.Showing() {
			m.suggest.Dismiss()
			m.cursor = -1
			return m, nil
		}
		m.leaveInput()
		return m, nil

	case tea.KeyUp:
		if m.cursor >= 0 {
			m.cursor--
		}
		return m, nil

	case tea.KeyDown:
		if state.Showing() && m.cursor < len(state.Suggestions)-1 {
			m.cursor++
		}
		return m, nil
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if after := m.input.Value(); after != before {
		m.cursor = -1
		return m, tea.Batch(cmd, m.textChangedCmd(after))
	}
	return m, cmd
}

func (m *Model) leaveInput() {
	m.focusInput = false
	m.cursor = -1
	m.input.Blur()
}

func (m *Model) textChangedCmd(text string) tea.Cmd {
	return func() tea.Msg {
		return suggestionsUpdated{Text: text, Err: m.suggest.TextChanged(m.ctx, text)}
	}
}

func (m *Model) searchCmd(query string) tea.Cmd {
	m.message = ""
	return func() tea.Msg {
		rec, err := m.search.Search(m.ctx, query)
		return searchCompleted{Query: query, Record: rec, Err: err}
	}
}

func (m *Model) selectCmd(item string) tea.Cmd {
	m.message = ""
	return func() tea.Msg {
		rec, err := m.suggest.Select(m.ctx, item)
		return searchCompleted{Query: item, Record: rec, Err: err}
	}
}

func (m *Model) handleSearchCompleted(msg searchCompleted) {
	switch {
	case errors.Is(msg.Err, aggregate.ErrSuperseded), errors.Is(msg.Err, aggregate.ErrEmptyQuery):
	case msg.Err != nil:
		// The orchestrator snapshot carries the notice.
	case m.viewerPath != "":
		m.message = "Structure written to " + m.viewerPath
	}
}

// View renders the UI.
func (m *Model) View() string {
	sections := []string{
		m.styles.Title.Render("Moluxis") + m.styles.Muted.Render("  compound explorer"),
		"",
		m.styles.Title.Render("Search: ") + m.input.View(),
	}

	if panel := m.renderSuggestions(); panel != "" {
		sections = append(sections, panel)
	}
	sections = append(sections, "", m.renderControls(), "")

	snap := m.search.Snapshot()
	switch snap.State {
	case aggregate.StateIdle:
		sections = append(sections, m.styles.Muted.Render("Search for a compound to view 3D structure"))
	case aggregate.StateSearching:
		sections = append(sections, m.styles.Muted.Render(fmt.Sprintf("Searching for %q...", snap.Query)))
	case aggregate.StateNotFound, aggregate.StateFailed:
		sections = append(sections, m.styles.Error.Render(snap.Notice))
	case aggregate.StateSuccess:
		sections = append(sections, m.renderRecord(snap.Record))
	}

	sections = append(sections, "", m.renderStatus())
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m *Model) renderSuggestions() string {
	if !m.focusInput {
		return ""
	}
	state := m.suggest.Snapshot()
	if !state.Showing() {
		return ""
	}
	lines := make([]string, len(state.Suggestions))
	for i, s := range state.Suggestions {
		if i == m.cursor {
			lines[i] = m.styles.Selected.Render("> " + s)
		} else {
			lines[i] = m.styles.Normal.Render("  " + s)
		}
	}
	return m.styles.Panel.Render(strings.Join(lines, "\n"))
}

func (m *Model) renderControls() string {
	style, labels := m.viewer.Settings()
	chips := make([]string, 0, 5)
	for i, s := range viewer.Styles() {
		text := fmt.Sprintf("%d %s", i+1, s.Label())
		if s == style {
			chips = append(chips, m.styles.ChipActive.Render(text))
		} else {
			chips = append(chips, m.styles.Chip.Render(text))
		}
	}
	label := "l Show Labels"
	chip := m.styles.Chip
	if labels {
		label = "l Hide Labels"
		chip = m.styles.ChipActive
	}
	chips = append(chips, chip.Render(label))
	return lipgloss.JoinHorizontal(lipgloss.Top, interleave(chips, " ")...)
}

func interleave(items []string, sep string) []string {
	out := make([]string, 0, 2*len(items))
	for i, it := range items {
		if i > 0 {
			out = append(out, sep)
		}
		out = append(out, it)
	}
	return out
}

func (m *Model) renderRecord(rec *types.CompoundRecord) string {
	if rec == nil {
		return ""
	}
	header := m.styles.Value.Render(rec.Name) + m.styles.Muted.Render(fmt.Sprintf("  CID %d", rec.CID))
	if !m.showInfo {
		return header
	}

	formula := "N/A"
	if rec.Formula != "" {
		formula = report.SubscriptFormula(rec.Formula)
	}
	lines := []string{
		header,
		m.row("Formula", formula),
		m.row("Molecular Weight", orNA(rec.MolecularWeight)),
		m.row("IUPAC Name", orNA(rec.Properties.IUPACName)),
		m.row("Common Name", orNA(rec.Properties.CommonName)),
		m.styles.Section.Render("Chemical Properties"),
	}
	for _, r := range report.PropertyRows(rec.Properties) {
		lines = append(lines, m.row(r.Label, r.Value))
	}
	if report.NoExtraProperties(rec.Properties) {
		lines = append(lines, m.styles.Muted.Render("No additional properties available"))
	}

	if !rec.Safety.IsEmpty() {
		lines = append(lines, m.styles.Section.Render("Safety & Hazards"))
		for _, s := range rec.Safety.Signal {
			lines = append(lines, m.styles.Warning.Render("⚠ "+s))
		}
		for _, s := range rec.Safety.HazardStatements {
			lines = append(lines, m.styles.Error.Render("• "+s))
		}
	}

	lines = append(lines,
		m.styles.Section.Render("Description"),
		m.styles.Normal.Width(max(m.width-4, 20)).Render(rec.Description),
	)
	if len(rec.Synonyms) > 0 {
		lines = append(lines,
			m.styles.Section.Render("Synonyms"),
			m.styles.Muted.Render(strings.Join(rec.Synonyms, ", ")),
		)
	}
	lines = append(lines, m.styles.Muted.Render(report.CompoundURL(rec.CID)))
	return strings.Join(lines, "\n")
}

func (m *Model) row(label, value string) string {
	return m.styles.Label.Render(label) + m.styles.Value.Render(value)
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

func (m *Model) renderStatus() string {
	help := "enter search · ↑/↓ suggestions · esc leave"
	if !m.focusInput {
		help = "/ search · 1-4 style · l labels · i info · q quit"
	}
	parts := []string{help}
	if m.message != "" {
		parts = append(parts, m.message)
	} else if m.viewerPath != "" {
		parts = append(parts, "viewer: "+m.viewerPath)
	}
	return m.styles.Status.Render(strings.Join(parts, "  |  "))
}
