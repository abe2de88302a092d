package tui

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/ascii-engine/internal/registry"
	"github.com/vovakirdan/ascii-engine/internal/storage"
)

// Sketch origins shown in the menu.
const (
	OriginBuiltin = "builtin"
	OriginLibrary = "library"
)

// MenuItem represents a selectable sketch in the menu.
type MenuItem struct {
	ID          string
	Title       string
	Description string
	Origin      string
	Runs        int
}

// MenuItems lists the built-in sketches followed by the saved library.
// A library sketch with the same name as a built-in one is skipped.
func MenuItems(store *storage.Store) []MenuItem {
	builtins := registry.List()
	items := make([]MenuItem, 0, len(builtins))
	seen := make(map[string]bool, len(builtins))

	for _, s := range builtins {
		seen[s.ID] = true
		items = append(items, MenuItem{
			ID:          s.ID,
			Title:       s.Title,
			Description: s.Description,
			Origin:      OriginBuiltin,
		})
	}

	if store == nil {
		return items
	}

	if saved, err := store.ListSketches(); err == nil {
		library := make([]MenuItem, 0, len(saved))
		for _, s := range saved {
			if seen[s.Name] {
				continue
			}
			library = append(library, MenuItem{
				ID:          s.Name,
				Title:       s.Name,
				Description: s.Description,
				Origin:      OriginLibrary,
			})
		}
		sort.Slice(library, func(i, j int) bool { return library[i].ID < library[j].ID })
		items = append(items, library...)
	}

	if stats, err := store.GetAllSketchStats(); err == nil {
		for i := range items {
			if st, ok := stats[items[i].ID]; ok {
				items[i].Runs = st.Runs
			}
		}
	}
	return items
}

// LoadSketch resolves a sketch by name: built-in sketches first, then the
// saved library.
func LoadSketch(store *storage.Store, name string) (registry.Sketch, error) {
	s, err := registry.Get(name)
	if err == nil {
		return s, nil
	}
	if store == nil || !errors.Is(err, registry.ErrUnknownSketch) {
		return registry.Sketch{}, err
	}

	entry, serr := store.Sketch(name)
	if serr != nil {
		return registry.Sketch{}, serr
	}
	if entry == nil {
		return registry.Sketch{}, err
	}
	return registry.Sketch{
		ID:          entry.Name,
		Title:       entry.Name,
		Description: entry.Description,
		Source:      entry.Source,
	}, nil
}

// MenuModel is the Bubble Tea model for the sketch picker.
type MenuModel struct {
	items       []MenuItem
	table       table.Model
	help        help.Model
	keys        KeyMap
	theme       Theme
	width       int
	height      int
	store       *storage.Store
	quitting    bool
	selected    *MenuItem // Set when user selects a sketch
	openHistory bool      // True if user asked for the run history
}

// NewMenuModel creates a new menu model.
func NewMenuModel(store *storage.Store, theme Theme, width, height int) MenuModel {
	m := MenuModel{
		items:  MenuItems(store),
		help:   help.New(),
		keys:   DefaultKeyMap(),
		theme:  theme,
		width:  width,
		height: height,
		store:  store,
	}
	m.help.Width = width
	m.table = m.createTable()
	m.updateTableRows()
	return m
}

// createTable creates the sketch table sized to the window.
func (m *MenuModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Sketch", Width: 18},
		{Title: "Origin", Width: 8},
		{Title: "Runs", Width: 5},
		{Title: "Description", Width: 40},
	}

	if avail := m.width - 4 - 18 - 8 - 5 - 8; avail > 20 {
		columns[3].Width = min(avail, 60)
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

// updateTableRows fills the table from the menu items.
func (m *MenuModel) updateTableRows() {
	rows := make([]table.Row, len(m.items))
	for i, it := range m.items {
		rows[i] = table.Row{it.ID, it.Origin, fmt.Sprintf("%d", it.Runs), it.Description}
	}
	m.table.SetRows(rows)
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Confirm):
			if len(m.items) > 0 {
				selected := m.items[m.table.Cursor()]
				m.selected = &selected
				return m, tea.Quit
			}
			return m, nil

		case key.Matches(msg, m.keys.History):
			m.openHistory = true
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		cursor := m.table.Cursor()
		m.table = m.createTable()
		m.updateTableRows()
		m.table.SetCursor(cursor)
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(m.theme.MenuTitle.Render(centerText("A S C I I   E N G I N E", m.width)))
	b.WriteString("\n")

	if len(m.items) == 0 {
		b.WriteString(m.theme.Empty.Render("No sketches available.\nSave one with `ascii save`."))
	} else {
		b.WriteString(m.theme.Border.Render(m.table.View()))
		if it := m.items[m.table.Cursor()]; it.Title != it.ID {
			b.WriteString("\n")
			b.WriteString(m.theme.MenuDescription.Render("  " + it.Title))
		}
	}

	b.WriteString("\n")
	b.WriteString(m.theme.Help.Render(m.help.View(menuHelp{keys: m.keys})))
	return b.String()
}

// Selected returns the selected menu item, or nil if none selected.
func (m MenuModel) Selected() *MenuItem {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsHistory returns true if user requested the run history.
func (m MenuModel) WantsHistory() bool {
	return m.openHistory
}

// Size returns the last known window size.
func (m MenuModel) Size() (width, height int) {
	return m.width, m.height
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	padding := (width - w) / 2
	return strings.Repeat(" ", padding) + text
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	SketchID     string
	Width        int
	Height       int
	WantsHistory bool
	Quit         bool
}

// RunMenu runs the menu and returns the selection result.
func RunMenu(store *storage.Store, width, height int) (MenuResult, error) {
	model := NewMenuModel(store, DefaultTheme(), width, height)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return MenuResult{Width: width, Height: height}, err
	}

	m, ok := finalModel.(MenuModel)
	if !ok {
		return MenuResult{Width: width, Height: height, Quit: true}, nil
	}

	result := MenuResult{}
	result.Width, result.Height = m.Size()

	switch {
	case m.WantsHistory():
		result.WantsHistory = true
	case m.IsQuitting():
		result.Quit = true
	case m.Selected() != nil:
		result.SketchID = m.Selected().ID
	default:
		result.Quit = true
	}
	return result, nil
}
