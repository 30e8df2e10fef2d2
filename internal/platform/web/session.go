package web

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/maztic-arcade/internal/core"
	"github.com/vovakirdan/maztic-arcade/internal/maze"
	"github.com/vovakirdan/maztic-arcade/internal/registry"
	"github.com/vovakirdan/maztic-arcade/internal/storage"
)

// clientMessage is a message sent by the browser.
type clientMessage struct {
	Type   string `json:"type"`   // "action" or "level"
	Action string `json:"action"` // Action name, e.g. "Toggle"
	Level  string `json:"level"`  // Saved level ID for "level"
}

// frameMessage is a rendered frame sent to the browser.
type frameMessage struct {
	Type   string     `json:"type"`
	Tick   uint64     `json:"tick"`
	State  frameState `json:"state"`
	Events []string   `json:"events,omitempty"`
	Screen []string   `json:"screen"`
	Detail any        `json:"detail,omitempty"`
}

type frameState struct {
	Score    int  `json:"score"`
	Level    int  `json:"level"`
	GameOver bool `json:"game_over"`
	Paused   bool `json:"paused"`
}

// errorMessage reports a rejected client request.
type errorMessage struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// detailer is implemented by games that expose structured state.
type detailer interface {
	Detail() any
}

// levelPlayer is implemented by games that can play a stored level.
type levelPlayer interface {
	PlayLevel(l *maze.Level) error
	Level() *maze.Level
}

type sessionConfig struct {
	player     string
	resume     bool
	tickRate   int
	frameEvery int
	runtime    core.RuntimeConfig
}

// session steps one game for one connection.
type session struct {
	game   registry.Game
	conn   *Connection
	store  *storage.Store
	cfg    sessionConfig
	logger *log.Logger
	screen *core.Screen

	mu      sync.Mutex
	pending core.InputFrame
	current core.GameState
	tick    uint64
	saved   bool // Score recorded for the current game over

	finished chan struct{}
}

func newSession(game registry.Game, conn *Connection, store *storage.Store, cfg sessionConfig, logger *log.Logger) *session {
	return &session{
		game:     game,
		conn:     conn,
		store:    store,
		cfg:      cfg,
		logger:   logger.With("player", cfg.player),
		screen:   core.NewScreen(cfg.runtime.ScreenW, cfg.runtime.ScreenH),
		pending:  core.NewInputFrame(),
		finished: make(chan struct{}),
	}
}

// handleMessage queues client input for the next tick.
func (s *session) handleMessage(data []byte) {
	var msg clientMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		s.logger.Debug("discarding malformed message", "error", err)
		return
	}

	switch msg.Type {
	case "action":
		action := core.ParseAction(msg.Action)
		if action == core.ActionNone {
			s.reject("unknown action " + msg.Action)
			return
		}
		s.mu.Lock()
		s.pending.Set(action)
		s.mu.Unlock()

	case "level":
		s.playLevel(msg.Level)

	default:
		s.reject("unknown message type " + msg.Type)
	}
}

// playLevel switches the game to a saved level.
func (s *session) playLevel(id string) {
	lp, ok := s.game.(levelPlayer)
	if !ok || s.store == nil {
		s.reject("saved levels are not available")
		return
	}
	level, err := s.store.LoadLevel(id)
	if err != nil {
		s.reject(err.Error())
		return
	}

	s.mu.Lock()
	err = lp.PlayLevel(level)
	s.mu.Unlock()
	if err != nil {
		s.reject(err.Error())
	}
}

func (s *session) reject(message string) {
	//nolint:errcheck // The client may already be gone
	s.conn.Send(errorMessage{Type: "error", Message: message})
}

// run steps the game at the tick rate until the connection closes.
func (s *session) run() {
	defer close(s.finished)

	s.mu.Lock()
	s.game.Reset(s.cfg.runtime)
	s.restore()
	s.current = s.game.State()
	frame := s.frame(nil)
	s.mu.Unlock()

	if err := s.conn.Send(frame); err != nil {
		return
	}

	interval := time.Second / time.Duration(s.cfg.tickRate)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.conn.Done():
			s.saveProgress()
			return
		case <-ticker.C:
			frame, send := s.step()
			if !send {
				continue
			}
			if err := s.conn.Send(frame); err != nil {
				s.logger.Debug("dropping session", "error", err)
				s.saveProgress()
				return
			}
		}
	}
}

// restore resumes saved progress. Caller holds mu.
func (s *session) restore() {
	r, ok := s.game.(registry.Resumable)
	if !ok || !s.cfg.resume || s.store == nil || s.cfg.player == "" {
		return
	}
	p, found, err := s.store.LoadProgress(s.cfg.player)
	if err != nil {
		s.logger.Warn("cannot load progress", "error", err)
		return
	}
	if found {
		r.Resume(p.LevelIndex, p.Score)
	}
}

// step advances one tick and reports whether a frame is due.
func (s *session) step() (frameMessage, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.pending.Has(core.ActionRestart) && s.current.GameOver {
		s.saved = false
	}
	result := s.game.Step(s.pending)
	s.pending.Clear()
	s.current = result.State
	s.tick++

	if result.Has(core.EventLevelCleared) {
		s.saveProgressLocked()
	}
	if s.current.GameOver && !s.saved {
		s.saveScoreLocked()
		s.saved = true
	}

	due := len(result.Events) > 0 || s.tick%uint64(s.cfg.frameEvery) == 0
	if !due {
		return frameMessage{}, false
	}
	return s.frame(result.Events), true
}

// frame renders the current game state. Caller holds mu.
func (s *session) frame(events []core.Event) frameMessage {
	s.game.Render(s.screen)
	rows := make([]string, s.screen.Height())
	for y := range rows {
		rows[y] = s.screen.Row(y)
	}

	msg := frameMessage{
		Type: "frame",
		Tick: s.tick,
		State: frameState{
			Score:    s.current.Score,
			Level:    s.current.Level,
			GameOver: s.current.GameOver,
			Paused:   s.current.Paused,
		},
		Screen: rows,
	}
	for _, e := range events {
		msg.Events = append(msg.Events, e.String())
	}
	if d, ok := s.game.(detailer); ok {
		msg.Detail = d.Detail()
	}
	return msg
}

func (s *session) saveScoreLocked() {
	if s.store == nil {
		return
	}
	if s.current.Score > 0 {
		if _, err := s.store.SaveScore(s.game.ID(), s.current.Score, s.current.Level); err != nil {
			s.logger.Error("cannot save score", "error", err)
		}
	}
	if s.cfg.player != "" {
		if err := s.store.ResetProgress(s.cfg.player); err != nil {
			s.logger.Warn("cannot reset progress", "error", err)
		}
	}
}

func (s *session) saveProgress() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saveProgressLocked()
}

func (s *session) saveProgressLocked() {
	r, ok := s.game.(registry.Resumable)
	if !ok || s.store == nil || s.cfg.player == "" || s.current.GameOver {
		return
	}
	cleared, score := r.Progress()
	p := storage.Progress{Player: s.cfg.player, LevelIndex: cleared, Score: score}
	if lp, ok := s.game.(levelPlayer); ok && lp.Level() != nil {
		p.LevelID = lp.Level().ID
	}
	if err := s.store.SaveProgress(p); err != nil {
		s.logger.Warn("cannot save progress", "error", err)
	}
}

// state returns the last game state.
func (s *session) state() core.GameState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}
