package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/maztic-arcade/internal/core"
	"github.com/vovakirdan/maztic-arcade/internal/maze"
	"github.com/vovakirdan/maztic-arcade/internal/registry"
	"github.com/vovakirdan/maztic-arcade/internal/storage"
)

// levelPlayer is implemented by games that can play a stored level.
type levelPlayer interface {
	PlayLevel(l *maze.Level) error
	Level() *maze.Level
}

// resizer is implemented by games that keep their state across resizes.
type resizer interface {
	Resize(w, h int)
}

// ModelOptions controls how a game session starts.
type ModelOptions struct {
	Player string      // Progress is saved under this name; empty disables it
	Resume bool        // Continue from the player's saved progress
	Level  *maze.Level // Play this level first instead of a generated one
}

// GameModel is the Bubble Tea model for running a game.
type GameModel struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	config     core.RuntimeConfig
	opts       ModelOptions
	inputFrame core.InputFrame
	gameState  core.GameState
	keyMapper  *KeyMapper
	standalone bool // Back quits the program instead of returning to a menu
	quitting   bool
	backToMenu bool
	scoreSaved bool // Whether score has been saved for current game over
	lastErr    error
}

// NewGameModel creates a new game model.
func NewGameModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, opts ModelOptions) GameModel {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = defaultTickRate
	}

	return GameModel{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:      store,
		config:     cfg,
		opts:       opts,
		inputFrame: core.NewInputFrame(),
		keyMapper:  NewKeyMapper(),
	}
}

// Init starts the game and the tick loop.
func (m GameModel) Init() tea.Cmd {
	m.game.Reset(m.config)
	m.restore()
	return tickCmd(m.config.TickRate)
}

// restore applies saved progress and the requested starting level.
func (m GameModel) restore() {
	if r, ok := m.game.(registry.Resumable); ok && m.opts.Resume && m.store != nil && m.opts.Player != "" {
		if p, found, err := m.store.LoadProgress(m.opts.Player); err == nil && found {
			r.Resume(p.LevelIndex, p.Score)
		}
	}
	if lp, ok := m.game.(levelPlayer); ok && m.opts.Level != nil {
		//nolint:errcheck // Stored levels were validated when loaded
		lp.PlayLevel(m.opts.Level)
	}
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	if m.keyMapper.MapKeyToFrame(msg, &m.inputFrame) {
		m.saveProgress()
		m.quitting = true
		return m, tea.Quit
	}

	action, _ := m.keyMapper.MapKey(msg)
	if action == core.ActionBack {
		m.saveProgress()
		if m.standalone {
			m.quitting = true
			return m, tea.Quit
		}
		m.backToMenu = true
	}
	return m, nil
}

// handleResize processes window resize events.
func (m GameModel) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)

	if r, ok := m.game.(resizer); ok {
		r.Resize(msg.Width, msg.Height)
	} else if !m.gameState.GameOver {
		m.game.Reset(m.config)
	}
	return m, nil
}

// handleTick processes simulation ticks.
func (m GameModel) handleTick() (tea.Model, tea.Cmd) {
	if m.inputFrame.Has(core.ActionRestart) && m.gameState.GameOver {
		m.scoreSaved = false
	}

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State

	if result.Has(core.EventLevelCleared) {
		m.saveProgress()
	}

	// Save score on game over (once)
	if m.gameState.GameOver && !m.scoreSaved {
		if m.store != nil && m.gameState.Score > 0 {
			_, m.lastErr = m.store.SaveScore(m.game.ID(), m.gameState.Score, m.gameState.Level)
		}
		if m.store != nil && m.opts.Player != "" {
			//nolint:errcheck // Best-effort, a stale entry only offers a stale resume
			m.store.ResetProgress(m.opts.Player)
		}
		m.scoreSaved = true
	}

	m.inputFrame.Clear()
	return m, tickCmd(m.config.TickRate)
}

// saveProgress stores the run so it can be resumed later.
func (m *GameModel) saveProgress() {
	r, ok := m.game.(registry.Resumable)
	if !ok || m.store == nil || m.opts.Player == "" || m.gameState.GameOver {
		return
	}
	cleared, score := r.Progress()
	p := storage.Progress{Player: m.opts.Player, LevelIndex: cleared, Score: score}
	if lp, ok := m.game.(levelPlayer); ok && lp.Level() != nil {
		p.LevelID = lp.Level().ID
	}
	m.lastErr = m.store.SaveProgress(p)
}

// saveScreenshot saves the current screen to a file.
func (m *GameModel) saveScreenshot() {
	m.game.Render(m.screen)

	dir := filepath.Join(os.Getenv("HOME"), ".arcade", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp)

	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(filepath.Join(dir, filename), []byte(m.screen.String()), 0o600)
}

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}
	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// Err returns the last storage error, if any.
func (m GameModel) Err() error {
	return m.lastErr
}

// Run plays a single game without the menu.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, opts ModelOptions) error {
	model := NewGameModel(game, store, cfg, opts)
	model.standalone = true

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
