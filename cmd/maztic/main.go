// maztic is a terminal puzzle game about steering balls through a
// generated maze of mirrors and gates until they all rest on goals.
//
// Usage:
//
//	maztic play              - Play with the interactive menu
//	maztic generate          - Generate a level and print it
//	maztic replay <file>     - Replay a saved level and check its solution
//	maztic levels            - List saved levels
//	maztic scores            - Show high scores
//	maztic serve             - Start SSH server for remote play
//	maztic web               - Start websocket server for browser play
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible levels
//	--db <path>           - Set database path (default: ~/.arcade/maztic.db)
//	--config <path>       - Use a custom game config YAML
//	--difficulty <name>   - Difficulty preset: easy, normal, hard, fixed
//	--log-level <level>   - debug, info, warn or error
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	// Import games to register them
	_ "github.com/vovakirdan/maztic-arcade/internal/games/maztic"
	"github.com/vovakirdan/maztic-arcade/internal/storage"
)

const gameID = "maztic"

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLogLevel   string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "maztic",
	Short: "Maztic - steer balls through a generated maze",
	Long: `Maztic is a terminal puzzle game. Balls roll through a maze of
mirrors, gates and rotators. Flip every switchable tile at the right
moment so that all balls come to rest on goal tiles before time runs out.

Available commands:
  play      - Play with the interactive menu
  generate  - Generate a level and print it
  replay    - Replay a saved level
  levels    - List saved levels
  scores    - View high scores
  serve     - Start SSH server for remote play
  web       - Start websocket server for browser play

Examples:
  maztic play
  maztic play --difficulty hard
  maztic generate --seed 42 --out ./levels
  maztic replay ./levels/7-17x11-b3-c20-17.yaml
  maztic serve --ssh :2222
  maztic web --addr :8080`,
	SilenceUsage: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.arcade/maztic.db", "Path to scores and levels database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(webCmd)
}

// newLogger builds the stderr logger shared by all commands.
func newLogger(prefix string) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
		Prefix:          prefix,
	})
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		logger.Warn("unknown log level, using info", "level", flagLogLevel)
		level = log.InfoLevel
	}
	logger.SetLevel(level)
	return logger
}

// seed returns the --seed flag, or a time-based seed when it is unset.
func seed() int64 {
	if flagSeed != 0 {
		return flagSeed
	}
	return time.Now().UnixNano()
}

// openStore opens the database. Failures are logged and play continues
// without persistence.
func openStore(logger *log.Logger) *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open database, scores will not be saved", "path", flagDBPath, "error", err)
		return nil
	}
	return store
}
