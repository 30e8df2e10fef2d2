package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/maztic-arcade/internal/config"
	"github.com/vovakirdan/maztic-arcade/internal/core"
	"github.com/vovakirdan/maztic-arcade/internal/maze"
	"github.com/vovakirdan/maztic-arcade/internal/storage"
)

// MenuChoice is what the player picked in the main menu.
type MenuChoice int

const (
	ChoiceNone MenuChoice = iota
	ChoiceContinue
	ChoiceNewRun
	ChoiceLevel
	ChoiceScores
	ChoiceQuit
)

// MenuItem represents a selectable entry in the menu.
type MenuItem struct {
	Choice MenuChoice
	Title  string
}

var presets = []config.DifficultyPreset{
	config.DifficultyEasy,
	config.DifficultyNormal,
	config.DifficultyHard,
	config.DifficultyFixed,
}

const maxListedLevels = 15

var (
	menuTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	menuCursor     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))
	menuDimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// MenuModel is the Bubble Tea model for the main menu.
type MenuModel struct {
	items     []MenuItem
	cursor    int
	width     int
	height    int
	store     *storage.Store
	config    core.RuntimeConfig
	player    string
	preset    int // Index into presets
	keyMapper *KeyMapper
	quitting  bool

	// Saved level picker
	inLevels    bool
	levels      []storage.LevelRecord
	levelCursor int
	status      string

	result *MenuResult
}

// NewMenuModel creates a new menu model.
func NewMenuModel(store *storage.Store, cfg core.RuntimeConfig, player string) MenuModel {
	m := MenuModel{
		width:     cfg.ScreenW,
		height:    cfg.ScreenH,
		store:     store,
		config:    cfg,
		player:    player,
		preset:    1,
		keyMapper: NewKeyMapper(),
	}

	if store != nil && player != "" {
		if p, found, err := store.LoadProgress(player); err == nil && found && p.LevelIndex > 0 {
			m.items = append(m.items, MenuItem{
				Choice: ChoiceContinue,
				Title:  fmt.Sprintf("Continue (level %d, score %d)", p.LevelIndex+1, p.Score),
			})
		}
	}
	m.items = append(m.items, MenuItem{Choice: ChoiceNewRun, Title: "New run"})
	if store != nil {
		m.items = append(m.items,
			MenuItem{Choice: ChoiceLevel, Title: "Saved levels"},
			MenuItem{Choice: ChoiceScores, Title: "High scores"},
		)
	}
	m.items = append(m.items, MenuItem{Choice: ChoiceQuit, Title: "Quit"})
	return m
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.inLevels {
			return m.handleLevelKey(msg)
		}
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
	}
	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case MenuActionLeft:
		m.preset = (m.preset + len(presets) - 1) % len(presets)

	case MenuActionRight:
		m.preset = (m.preset + 1) % len(presets)

	case MenuActionScoreboard:
		if m.store != nil {
			return m.finish(MenuResult{Choice: ChoiceScores})
		}

	case MenuActionSelect:
		return m.selectItem()
	}
	return m, nil
}

func (m MenuModel) selectItem() (tea.Model, tea.Cmd) {
	if len(m.items) == 0 {
		return m, nil
	}
	switch choice := m.items[m.cursor].Choice; choice {
	case ChoiceQuit:
		m.quitting = true
		return m, tea.Quit
	case ChoiceLevel:
		records, err := m.store.ListLevels(maxListedLevels)
		if err != nil {
			m.status = err.Error()
			return m, nil
		}
		m.levels = records
		m.levelCursor = 0
		m.inLevels = true
		return m, nil
	default:
		return m.finish(MenuResult{Choice: choice, Resume: choice == ChoiceContinue})
	}
}

// handleLevelKey navigates the saved level list.
func (m MenuModel) handleLevelKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionBack:
		m.inLevels = false
		m.status = ""
	case MenuActionUp:
		if m.levelCursor > 0 {
			m.levelCursor--
		}
	case MenuActionDown:
		if m.levelCursor < len(m.levels)-1 {
			m.levelCursor++
		}
	case MenuActionSelect:
		if len(m.levels) == 0 {
			return m, nil
		}
		level, err := m.store.LoadLevel(m.levels[m.levelCursor].ID)
		if err != nil {
			m.status = err.Error()
			return m, nil
		}
		return m.finish(MenuResult{Choice: ChoiceLevel, Level: level})
	}
	return m, nil
}

// finish records the result. The session model polls Result, so the menu
// does not quit the program.
func (m MenuModel) finish(r MenuResult) (tea.Model, tea.Cmd) {
	r.Difficulty = presets[m.preset]
	r.Config = m.config
	m.result = &r
	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(menuTitleStyle.Render("M A Z T I C"), m.width))
	b.WriteString("\n")
	if m.player != "" {
		b.WriteString(centerText(menuDimStyle.Render("playing as "+m.player), m.width))
	}
	b.WriteString("\n\n")

	if m.inLevels {
		m.renderLevels(&b)
	} else {
		m.renderItems(&b)
	}

	if m.status != "" {
		b.WriteString("\n")
		b.WriteString(centerText(m.status, m.width))
		b.WriteString("\n")
	}
	return b.String()
}

func (m MenuModel) renderItems(b *strings.Builder) {
	for i, item := range m.items {
		line := "  " + item.Title
		if i == m.cursor {
			line = menuCursor.Render("> " + item.Title)
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(fmt.Sprintf("Difficulty: < %s >", presets[m.preset]), m.width))
	b.WriteString("\n\n")
	controls := "Up/Down: Navigate  |  Left/Right: Difficulty  |  Enter: Select  |  Tab: Scores  |  Q: Quit"
	b.WriteString(centerText(menuDimStyle.Render(controls), m.width))
	b.WriteString("\n")
}

func (m MenuModel) renderLevels(b *strings.Builder) {
	if len(m.levels) == 0 {
		b.WriteString(centerText(menuDimStyle.Render("No saved levels. Use `maztic generate --save`."), m.width))
		b.WriteString("\n")
	}
	for i, r := range m.levels {
		line := fmt.Sprintf("%-24s %2dx%-2d  %d balls  %3d cycles", r.ID, r.Width, r.Height, r.Agents, r.ConvergenceTicks/maze.TicksPerCell)
		if i == m.levelCursor {
			line = menuCursor.Render("> " + line)
		} else {
			line = "  " + line
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(centerText(menuDimStyle.Render("Enter: Play  |  Esc: Back"), m.width))
	b.WriteString("\n")
}

// Result returns the player's selection, or nil while the menu is open.
func (m MenuModel) Result() *MenuResult {
	return m.result
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}

// MenuResult holds the result of the menu.
type MenuResult struct {
	Choice     MenuChoice
	Difficulty config.DifficultyPreset
	Resume     bool
	Level      *maze.Level
	Config     core.RuntimeConfig
}
