package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/maztic-arcade/internal/maze"
	"github.com/vovakirdan/maztic-arcade/internal/storage"
)

// Scoreboard layout constants
const (
	maxScores = 100 // Max scores to load
	maxLevels = 100 // Max saved levels to load
)

// scoreboardTab selects which table the scoreboard shows.
type scoreboardTab int

const (
	tabScores scoreboardTab = iota
	tabLevels
)

func (t scoreboardTab) String() string {
	if t == tabLevels {
		return "Saved levels"
	}
	return "High scores"
}

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	NextTab key.Binding
	Back    key.Binding
	Quit    key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextTab, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextTab},
		{k.Back, k.Quit},
	}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		NextTab: key.NewBinding(
			key.WithKeys("tab", "left", "right", "h", "l"),
			key.WithHelp("tab", "switch table"),
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

// ScoreboardModel is the Bubble Tea model for the scoreboard screen.
type ScoreboardModel struct {
	gameID     string
	store      *storage.Store
	tab        scoreboardTab
	stats      *storage.GameStats
	scores     []storage.ScoreEntry
	levels     []storage.LevelRecord
	loadErr    error
	table      table.Model
	help       help.Model
	keys       ScoreboardKeyMap
	width      int
	height     int
	standalone bool // Back quits the program instead of returning to a menu
	quitting   bool
	goingBack  bool
}

// NewScoreboardModel creates a new scoreboard model.
func NewScoreboardModel(store *storage.Store, gameID string, width, height int) ScoreboardModel {
	h := help.New()
	h.ShowAll = false

	m := ScoreboardModel{
		gameID: gameID,
		store:  store,
		keys:   DefaultScoreboardKeyMap(),
		help:   h,
		width:  width,
		height: height,
	}
	m.load()
	m.table = m.createTable()
	m.updateTableRows()
	return m
}

// load reads stats, scores and saved levels from the store.
func (m *ScoreboardModel) load() {
	if m.store == nil {
		return
	}
	var err error
	if m.stats, err = m.store.GetGameStats(m.gameID); err != nil {
		m.loadErr = err
	}
	if m.scores, err = m.store.TopScores(m.gameID, maxScores); err != nil {
		m.loadErr = err
	}
	if m.levels, err = m.store.ListLevels(maxLevels); err != nil {
		m.loadErr = err
	}
}

// columns returns the columns of the current tab.
func (m *ScoreboardModel) columns() []table.Column {
	dateWidth := max(12, min(20, m.width-48))
	if m.tab == tabLevels {
		return []table.Column{
			{Title: "Level", Width: 22},
			{Title: "Size", Width: 7},
			{Title: "Balls", Width: 6},
			{Title: "Cycles", Width: 7},
			{Title: "Saved", Width: dateWidth},
		}
	}
	return []table.Column{
		{Title: "Rank", Width: 6},
		{Title: "Score", Width: 10},
		{Title: "Levels", Width: 8},
		{Title: "Date", Width: dateWidth},
	}
}

// createTable creates a new table with appropriate columns.
func (m *ScoreboardModel) createTable() table.Model {
	t := table.New(
		table.WithColumns(m.columns()),
		table.WithFocused(true),
		table.WithHeight(max(3, m.height-10)), // Leave room for header, stats and help
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// updateTableRows fills the table from the current tab's data.
func (m *ScoreboardModel) updateTableRows() {
	var rows []table.Row
	if m.tab == tabLevels {
		rows = make([]table.Row, len(m.levels))
		for i, l := range m.levels {
			rows[i] = table.Row{
				l.ID,
				fmt.Sprintf("%dx%d", l.Width, l.Height),
				fmt.Sprintf("%d", l.Agents),
				fmt.Sprintf("%d", l.ConvergenceTicks/maze.TicksPerCell),
				l.CreatedAt.Format("Jan 02 15:04"),
			}
		}
	} else {
		rows = make([]table.Row, len(m.scores))
		for i, s := range m.scores {
			rows[i] = table.Row{
				fmt.Sprintf("#%d", i+1),
				fmt.Sprintf("%d", s.Score),
				fmt.Sprintf("%d", s.Levels),
				s.CreatedAt.Format("Jan 02 15:04"),
			}
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			if m.standalone {
				return m, tea.Quit
			}
			return m, nil

		case key.Matches(msg, m.keys.NextTab):
			m.tab = (m.tab + 1) % 2
			m.table = m.createTable()
			m.updateTableRows()
			return m, nil

		case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
			m.table, cmd = m.table.Update(msg)
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229"))
	b.WriteString(centerText(titleStyle.Render(strings.ToUpper(m.tab.String())), m.width))
	b.WriteString("\n\n")

	if line := m.statsLine(); line != "" {
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n\n")
	}

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	b.WriteString(tableStyle.Render(m.renderTableContent()))

	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// statsLine summarizes all recorded runs.
func (m ScoreboardModel) statsLine() string {
	if m.loadErr != nil {
		return m.loadErr.Error()
	}
	if m.stats == nil || m.stats.GamesCount == 0 {
		return ""
	}
	return fmt.Sprintf("%d runs  |  best %d  |  avg %.0f  |  most levels %d  |  last %s",
		m.stats.GamesCount, m.stats.HighScore, m.stats.AvgScore, m.stats.MostLevels,
		m.stats.LastPlayed.Format("Jan 02 15:04"))
}

// renderTableContent renders the table or empty message.
func (m ScoreboardModel) renderTableContent() string {
	empty := len(m.scores) == 0
	msg := "No scores recorded yet.\nPlay a run to set a high score!"
	if m.tab == tabLevels {
		empty = len(m.levels) == 0
		msg = "No saved levels.\nUse `maztic generate --save` to store one."
	}
	if empty {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4)
		return emptyStyle.Render(msg)
	}
	return m.table.View()
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard runs the scoreboard screen on its own.
func RunScoreboard(store *storage.Store, gameID string, width, height int) error {
	model := NewScoreboardModel(store, gameID, width, height)
	model.standalone = true

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
