package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/ascii-engine/internal/storage"
)

// History layout constants
const (
	minWidthForSidebar = 80  // Minimum width to show the sketch sidebar
	sidebarWidth       = 22  // Width of sketch sidebar
	maxRuns            = 100 // Max runs to load
)

// HistoryKeyMap defines the key bindings for the run history.
type HistoryKeyMap struct {
	Up         key.Binding
	Down       key.Binding
	NextSketch key.Binding
	PrevSketch key.Binding
	Back       key.Binding
	Quit       key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k HistoryKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextSketch, k.PrevSketch, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k HistoryKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextSketch, k.PrevSketch},
		{k.Back, k.Quit},
	}
}

// DefaultHistoryKeyMap returns default key bindings.
func DefaultHistoryKeyMap() HistoryKeyMap {
	return HistoryKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		NextSketch: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next sketch"),
		),
		PrevSketch: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab", "prev sketch"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// HistoryModel is the Bubble Tea model for the run history screen.
type HistoryModel struct {
	sketches    []string // Sketches with at least one recorded run
	cursor      int
	store       *storage.Store
	runs        []storage.RunRecord
	stats       map[string]*storage.SketchStats
	table       table.Model
	help        help.Model
	keys        HistoryKeyMap
	theme       Theme
	width       int
	height      int
	quitting    bool
	goingBack   bool
	showSidebar bool
}

// NewHistoryModel creates a new run history model.
func NewHistoryModel(store *storage.Store, theme Theme, width, height int) HistoryModel {
	h := help.New()
	h.ShowAll = false

	m := HistoryModel{
		store:       store,
		keys:        DefaultHistoryKeyMap(),
		help:        h,
		theme:       theme,
		width:       width,
		height:      height,
		showSidebar: width >= minWidthForSidebar,
	}

	if store != nil {
		if stats, err := store.GetAllSketchStats(); err == nil {
			m.stats = stats
			for _, item := range MenuItems(store) {
				if _, ok := stats[item.ID]; ok {
					m.sketches = append(m.sketches, item.ID)
				}
			}
			// Runs of sketches that were since deleted or renamed.
			for name := range stats {
				if !contains(m.sketches, name) {
					m.sketches = append(m.sketches, name)
				}
			}
		}
	}

	m.table = m.createTable()
	if len(m.sketches) > 0 {
		m.loadRuns(m.sketches[0])
	}
	return m
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// createTable creates a new table with appropriate columns.
func (m *HistoryModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Run", Width: 6},
		{Title: "Frames", Width: 8},
		{Title: "FPS", Width: 5},
		{Title: "Time", Width: 9},
		{Title: "Date", Width: 14},
		{Title: "Result", Width: 20},
	}

	tableWidth := m.width - 4
	if m.showSidebar {
		tableWidth -= sidebarWidth + 3
	}
	if rest := tableWidth - 6 - 8 - 5 - 9 - 14 - 12; rest > 20 {
		columns[5].Width = min(rest, 50)
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-8, 3)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(m.theme.TableHeaderBorder).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(m.theme.TableSelectedFg).
		Background(m.theme.TableSelectedBg).
		Bold(false)
	t.SetStyles(s)

	return t
}

// loadRuns loads the run history of a sketch.
func (m *HistoryModel) loadRuns(name string) {
	if m.store == nil {
		m.runs = nil
		m.updateTableRows()
		return
	}

	runs, err := m.store.RunHistory(name, maxRuns)
	if err != nil {
		m.runs = nil
	} else {
		m.runs = runs
	}
	m.updateTableRows()
}

// updateTableRows updates the table with the loaded runs.
func (m *HistoryModel) updateTableRows() {
	rows := make([]table.Row, len(m.runs))
	for i, r := range m.runs {
		result := "ok"
		if r.Error != "" {
			result = r.Error
		}
		rows[i] = table.Row{
			fmt.Sprintf("#%d", r.ID),
			fmt.Sprintf("%d", r.Frames),
			fmt.Sprintf("%d", r.FPS),
			(time.Duration(r.DurationMs) * time.Millisecond).Round(100 * time.Millisecond).String(),
			r.CreatedAt.Format("Jan 02 15:04"),
			result,
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// Init initializes the history model.
func (m HistoryModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the run history.
func (m HistoryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.NextSketch):
			if len(m.sketches) > 0 {
				m.cursor = (m.cursor + 1) % len(m.sketches)
				m.loadRuns(m.sketches[m.cursor])
			}
			return m, nil

		case key.Matches(msg, m.keys.PrevSketch):
			if len(m.sketches) > 0 {
				m.cursor--
				if m.cursor < 0 {
					m.cursor = len(m.sketches) - 1
				}
				m.loadRuns(m.sketches[m.cursor])
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.showSidebar = m.width >= minWidthForSidebar
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the run history.
func (m HistoryModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder

	title := "RUN HISTORY"
	if len(m.sketches) > 0 {
		name := m.sketches[m.cursor]
		title = fmt.Sprintf("RUN HISTORY - %s", name)
		if st, ok := m.stats[name]; ok {
			title += fmt.Sprintf("  (%d runs, %d failed, %d frames)", st.Runs, st.Failed, st.TotalFrames)
		}
	}
	b.WriteString(m.theme.MenuTitle.Render(centerText(title, m.width)))
	b.WriteString("\n")

	if m.showSidebar {
		b.WriteString(m.renderWideLayout())
	} else {
		b.WriteString(m.renderNarrowLayout())
	}

	b.WriteString("\n")
	b.WriteString(m.theme.Help.Render(m.help.View(m.keys)))

	return b.String()
}

// renderWideLayout renders the history with a sidebar for sketch selection.
func (m HistoryModel) renderWideLayout() string {
	sidebarStyle := m.theme.Border.Width(sidebarWidth)

	var sidebar strings.Builder
	sidebar.WriteString("Sketches\n")
	sidebar.WriteString(strings.Repeat("-", sidebarWidth-4))
	sidebar.WriteString("\n")

	for i, name := range m.sketches {
		cursor := "  "
		style := lipgloss.NewStyle()
		if i == m.cursor {
			cursor = "> "
			style = m.theme.StatusTitle
		}

		maxLen := sidebarWidth - 6
		if len(name) > maxLen {
			name = name[:maxLen-1] + "."
		}
		sidebar.WriteString(style.Render(cursor + name))
		sidebar.WriteString("\n")
	}

	return lipgloss.JoinHorizontal(lipgloss.Top,
		sidebarStyle.Render(sidebar.String()), "  ", m.theme.Border.Render(m.renderTableContent()))
}

// renderNarrowLayout renders the history with the sketch name above the table.
func (m HistoryModel) renderNarrowLayout() string {
	var b strings.Builder

	if len(m.sketches) > 0 {
		b.WriteString(centerText(fmt.Sprintf("< %s >", m.sketches[m.cursor]), m.width))
		b.WriteString("\n\n")
	}
	b.WriteString(m.theme.Border.Render(m.renderTableContent()))

	return b.String()
}

// renderTableContent renders the table or empty message.
func (m HistoryModel) renderTableContent() string {
	if len(m.runs) == 0 {
		return m.theme.Empty.Render("No runs recorded yet.\nRun a sketch to see it here!")
	}
	return m.table.View()
}

// IsGoingBack returns true if user wants to go back to menu.
func (m HistoryModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m HistoryModel) IsQuitting() bool {
	return m.quitting
}

// RunHistory runs the history screen.
// Returns true if user wants to go back to menu, false if quitting.
func RunHistory(store *storage.Store, width, height int) (goBack bool, err error) {
	model := NewHistoryModel(store, DefaultTheme(), width, height)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(HistoryModel)
	if !ok {
		return false, nil
	}

	return m.IsGoingBack(), nil
}
