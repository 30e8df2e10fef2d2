package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/maztic-arcade/internal/core"
	"github.com/vovakirdan/maztic-arcade/internal/registry"
	"github.com/vovakirdan/maztic-arcade/internal/storage"
)

// SessionOptions identifies what a session plays and for whom.
type SessionOptions struct {
	GameID     string
	ConfigPath string
	Player     string
}

// SessionModel manages the full session flow: menu -> game or scores -> menu.
// It is the top-level model for local play and for SSH sessions.
type SessionModel struct {
	store      *storage.Store
	config     core.RuntimeConfig
	opts       SessionOptions
	menu       MenuModel
	gameModel  *GameModel
	scoreboard *ScoreboardModel
	status     string
	quitting   bool
}

// NewSessionModel creates a new session model.
func NewSessionModel(store *storage.Store, cfg core.RuntimeConfig, opts SessionOptions) SessionModel {
	return SessionModel{
		store:  store,
		config: cfg,
		opts:   opts,
		menu:   NewMenuModel(store, cfg, opts.Player),
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	switch {
	case m.gameModel != nil:
		return m.updateGame(msg)
	case m.scoreboard != nil:
		return m.updateScoreboard(msg)
	default:
		return m.updateMenu(msg)
	}
}

// updateMenu handles updates when in menu mode.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	if m.menu.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	result := m.menu.Result()
	if result == nil {
		return m, cmd
	}
	m.config = result.Config

	if result.Choice == ChoiceScores {
		sb := NewScoreboardModel(m.store, m.opts.GameID, m.config.ScreenW, m.config.ScreenH)
		m.scoreboard = &sb
		return m, sb.Init()
	}

	game, err := registry.Create(m.opts.GameID, registry.Options{
		ConfigPath: m.opts.ConfigPath,
		Difficulty: string(result.Difficulty),
	})
	if err != nil {
		m.status = fmt.Sprintf("cannot start game: %v", err)
		return m.backToMenu()
	}

	gm := NewGameModel(game, m.store, m.config, ModelOptions{
		Player: m.opts.Player,
		Resume: result.Resume,
		Level:  result.Level,
	})
	m.gameModel = &gm
	return m, m.gameModel.Init()
}

// updateGame handles updates when in game mode.
func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.gameModel.Update(msg)
	if gameModel, ok := newModel.(GameModel); ok {
		m.gameModel = &gameModel
	}

	if m.gameModel.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.gameModel.BackToMenu() {
		if err := m.gameModel.Err(); err != nil {
			m.status = err.Error()
		}
		return m.backToMenu()
	}
	return m, cmd
}

// updateScoreboard handles updates when showing scores.
func (m SessionModel) updateScoreboard(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.scoreboard.Update(msg)
	if sb, ok := newModel.(ScoreboardModel); ok {
		m.scoreboard = &sb
	}

	if m.scoreboard.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.scoreboard.IsGoingBack() {
		return m.backToMenu()
	}
	return m, cmd
}

// backToMenu drops the active screen and rebuilds the menu so it reflects
// newly saved progress.
func (m SessionModel) backToMenu() (tea.Model, tea.Cmd) {
	m.gameModel = nil
	m.scoreboard = nil
	m.menu = NewMenuModel(m.store, m.config, m.opts.Player)
	m.menu.status = m.status
	m.status = ""
	return m, m.menu.Init()
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}
	switch {
	case m.gameModel != nil:
		return m.gameModel.View()
	case m.scoreboard != nil:
		return m.scoreboard.View()
	default:
		return m.menu.View()
	}
}

// RunSession runs the menu-driven session in the local terminal.
func RunSession(store *storage.Store, cfg core.RuntimeConfig, opts SessionOptions) error {
	p := tea.NewProgram(
		NewSessionModel(store, cfg, opts),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
