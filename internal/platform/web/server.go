// Package web streams game sessions to browsers over websockets.
// Each connection gets its own game instance stepped by a server-side
// ticker; clients send action names and receive rendered frames.
package web

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/maztic-arcade/internal/core"
	"github.com/vovakirdan/maztic-arcade/internal/registry"
	"github.com/vovakirdan/maztic-arcade/internal/storage"
)

var (
	errClosed     = errors.New("web: connection closed")
	errSlowClient = errors.New("web: client too slow")
)

// ServerConfig holds configuration for the web server.
type ServerConfig struct {
	Address    string
	GameID     string
	ConfigPath string
	TickRate   int // Simulation ticks per second
	FrameEvery int // Ticks between frames sent to the client
	ScreenW    int // Virtual screen the game lays itself out on
	ScreenH    int
	Logger     *log.Logger
}

// DefaultServerConfig returns a config with sensible defaults.
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Address:    ":8080",
		GameID:     "maztic",
		TickRate:   60,
		FrameEvery: 3,
		ScreenW:    80,
		ScreenH:    24,
	}
}

// Server serves game sessions and score queries over HTTP.
type Server struct {
	config   ServerConfig
	store    *storage.Store
	logger   *log.Logger
	upgrader websocket.Upgrader
	mux      *http.ServeMux
}

// NewServer creates a server. store may be nil, which disables
// persistence.
func NewServer(cfg ServerConfig, store *storage.Store) *Server {
	defaults := DefaultServerConfig()
	if cfg.TickRate <= 0 {
		cfg.TickRate = defaults.TickRate
	}
	if cfg.FrameEvery <= 0 {
		cfg.FrameEvery = defaults.FrameEvery
	}
	if cfg.ScreenW <= 0 || cfg.ScreenH <= 0 {
		cfg.ScreenW, cfg.ScreenH = defaults.ScreenW, defaults.ScreenH
	}
	if cfg.GameID == "" {
		cfg.GameID = defaults.GameID
	}

	logger := cfg.Logger
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "maztic-web",
		})
	}

	s := &Server{
		config: cfg,
		store:  store,
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		mux: http.NewServeMux(),
	}
	s.mux.HandleFunc("/ws", s.handleSession)
	s.mux.HandleFunc("/api/scores", s.handleScores)
	s.mux.HandleFunc("/api/levels", s.handleLevels)
	return s
}

// ServeHTTP dispatches to the server's routes.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// ListenAndServe serves until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.config.Address,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting web server", "address", s.config.Address)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		s.logger.Info("shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// handleSession upgrades the request and runs one game until the client
// disconnects.
func (s *Server) handleSession(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	game, err := registry.Create(s.config.GameID, registry.Options{
		ConfigPath: s.config.ConfigPath,
		Difficulty: q.Get("difficulty"),
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	seed, _ := strconv.ParseInt(q.Get("seed"), 10, 64)
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	ws, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("upgrade failed", "remote", r.RemoteAddr, "error", err)
		return
	}

	conn := NewConnection(ws)
	sess := newSession(game, conn, s.store, sessionConfig{
		player:     q.Get("player"),
		resume:     q.Get("resume") == "1",
		tickRate:   s.config.TickRate,
		frameEvery: s.config.FrameEvery,
		runtime: core.RuntimeConfig{
			ScreenW:  s.config.ScreenW,
			ScreenH:  s.config.ScreenH,
			TickRate: s.config.TickRate,
			Seed:     seed,
		},
	}, s.logger)

	s.logger.Info("session started", "player", sess.cfg.player, "remote", r.RemoteAddr)
	go conn.WritePump()
	go sess.run()
	if err := conn.ReadPump(sess.handleMessage); err != nil {
		s.logger.Warn("read failed", "player", sess.cfg.player, "error", err)
	}
	<-sess.finished
	s.logger.Info("session ended", "player", sess.cfg.player, "score", sess.state().Score)
}

type scoreJSON struct {
	Score     int       `json:"score"`
	Levels    int       `json:"levels"`
	CreatedAt time.Time `json:"created_at"`
}

// handleScores returns the top scores as JSON.
func (s *Server) handleScores(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		http.Error(w, "no score storage", http.StatusServiceUnavailable)
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit <= 0 {
		limit = 10
	}

	entries, err := s.store.TopScores(s.config.GameID, limit)
	if err != nil {
		s.logger.Error("cannot load scores", "error", err)
		http.Error(w, "cannot load scores", http.StatusInternalServerError)
		return
	}
	out := make([]scoreJSON, len(entries))
	for i, e := range entries {
		out[i] = scoreJSON{Score: e.Score, Levels: e.Levels, CreatedAt: e.CreatedAt}
	}
	s.writeJSON(w, out)
}

type levelJSON struct {
	ID     string `json:"id"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Balls  int    `json:"balls"`
	Ticks  int    `json:"convergence_ticks"`
	Score  int    `json:"score"`
}

// handleLevels lists saved levels as JSON.
func (s *Server) handleLevels(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		http.Error(w, "no level storage", http.StatusServiceUnavailable)
		return
	}
	records, err := s.store.ListLevels(50)
	if err != nil {
		s.logger.Error("cannot list levels", "error", err)
		http.Error(w, "cannot list levels", http.StatusInternalServerError)
		return
	}
	out := make([]levelJSON, len(records))
	for i, rec := range records {
		out[i] = levelJSON{
			ID:     rec.ID,
			Width:  rec.Width,
			Height: rec.Height,
			Balls:  rec.Agents,
			Ticks:  rec.ConvergenceTicks,
			Score:  rec.Score,
		}
	}
	s.writeJSON(w, out)
}

func (s *Server) writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Warn("cannot write response", "error", err)
	}
}
