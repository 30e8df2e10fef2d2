package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/maztic-arcade/internal/core"
	"github.com/vovakirdan/maztic-arcade/internal/platform/tui"
	"github.com/vovakirdan/maztic-arcade/internal/registry"
	"github.com/vovakirdan/maztic-arcade/internal/storage"
)

var (
	flagLevel  string
	flagPlayer string
	flagResume bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play Maztic",
	Long: `Start Maztic in the terminal.

Without flags the menu is shown. With --level a single level is played
directly, and with --difficulty a generated run starts without the menu.

Controls:
  Space/Enter/F  - Flip all switchable tiles
  H/?            - Show when the generator flipped
  P              - Pause
  R              - Restart level (new run after game over)
  Esc/B          - Back to menu
  Q/Ctrl+C       - Quit

Examples:
  maztic play
  maztic play --difficulty easy
  maztic play --level ./levels/7-17x11-b3-c20-17.yaml
  maztic play --level 7-17x11-b3-c20-17
  maztic play --player ann --resume`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagLevel, "level", "", "Level file or saved level ID to play")
	playCmd.Flags().StringVar(&flagPlayer, "player", os.Getenv("USER"), "Name progress is saved under")
	playCmd.Flags().BoolVar(&flagResume, "resume", false, "Continue the saved run (with --difficulty)")
}

func runPlay(cmd *cobra.Command, _ []string) {
	logger := newLogger("maztic")

	// Get terminal size
	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}

	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     seed(),
	}

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	direct := flagLevel != "" || cmd.Flags().Changed("difficulty")
	var err error
	if direct {
		err = playDirect(cfg, store)
	} else {
		err = tui.RunSession(store, cfg, tui.SessionOptions{
			GameID:     gameID,
			ConfigPath: flagConfig,
			Player:     flagPlayer,
		})
	}
	if err != nil {
		if store != nil {
			store.Close()
		}
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		os.Exit(1)
	}
}

// playDirect runs one game without the menu.
func playDirect(cfg core.RuntimeConfig, store *storage.Store) error {
	game, err := registry.Create(gameID, registry.Options{
		ConfigPath: flagConfig,
		Difficulty: flagDifficulty,
	})
	if err != nil {
		return err
	}

	opts := tui.ModelOptions{Player: flagPlayer, Resume: flagResume}
	if flagLevel != "" {
		level, err := loadLevel(flagLevel, store)
		if err != nil {
			return err
		}
		opts.Level = level
		opts.Resume = false
	}
	return tui.Run(game, store, cfg, opts)
}
