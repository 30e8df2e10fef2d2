package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/maztic-arcade/internal/platform/web"
)

var (
	flagWebAddr       string
	flagWebFrameEvery int
)

var webCmd = &cobra.Command{
	Use:   "web",
	Short: "Start the Maztic websocket server",
	Long: `Start an HTTP server that streams games to browsers.

Endpoints:
  /ws           - Websocket game session. Query: player, difficulty, seed, resume=1
  /api/scores   - Top scores as JSON. Query: limit
  /api/levels   - Saved levels as JSON

Clients send {"type":"action","action":"Toggle"} or
{"type":"level","level":"<id>"} and receive rendered frames.

Examples:
  maztic web
  maztic web --addr :9000 --frame-every 2`,
	Args: cobra.NoArgs,
	Run:  runWeb,
}

func init() {
	webCmd.Flags().StringVar(&flagWebAddr, "addr", ":8080", "HTTP listen address")
	webCmd.Flags().IntVar(&flagWebFrameEvery, "frame-every", 3, "Ticks between frames sent to clients")
}

func runWeb(_ *cobra.Command, _ []string) {
	logger := newLogger("maztic-web")
	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	cfg := web.DefaultServerConfig()
	cfg.Address = flagWebAddr
	cfg.GameID = gameID
	cfg.ConfigPath = flagConfig
	cfg.TickRate = flagFPS
	cfg.FrameEvery = flagWebFrameEvery
	cfg.Logger = logger

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := web.NewServer(cfg, store).ListenAndServe(ctx); err != nil {
		stop()
		if store != nil {
			store.Close()
		}
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}
