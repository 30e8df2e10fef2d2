package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/maztic-arcade/internal/maze"
	"github.com/vovakirdan/maztic-arcade/internal/maze/levels"
	"github.com/vovakirdan/maztic-arcade/internal/storage"
)

var (
	flagReplayNoSolution bool
	flagReplayStepwise   bool
	flagReplayVerify     bool
)

var replayCmd = &cobra.Command{
	Use:   "replay <level>",
	Short: "Replay a level and report where the balls end up",
	Long: `Replay a level from its start positions for its full convergence time.

The level is a YAML level file or the ID of a level saved in the database.
By default the recorded solution flips are applied; --no-solution replays
without any flips. --verify runs both the fast-forward and the live-cadence
replay and exits non-zero unless every ball ends on a goal in both.

Examples:
  maztic replay ./levels/7-17x11-b3-c20-17.yaml
  maztic replay 7-17x11-b3-c20-17 --no-solution
  maztic replay ./levels/7-17x11-b3-c20-17.yaml --verify`,
	Args: cobra.ExactArgs(1),
	Run:  runReplay,
}

func init() {
	replayCmd.Flags().BoolVar(&flagReplayNoSolution, "no-solution", false, "Replay without the recorded flips")
	replayCmd.Flags().BoolVar(&flagReplayStepwise, "stepwise", false, "Replay one tick at a time, flipping like a player")
	replayCmd.Flags().BoolVar(&flagReplayVerify, "verify", false, "Check the solution and exit non-zero on failure")
}

func runReplay(_ *cobra.Command, args []string) {
	logger := newLogger("replay")

	var store *storage.Store
	if !isLevelFile(args[0]) {
		store = openStore(logger)
		if store != nil {
			defer store.Close()
		}
	}

	level, err := loadLevel(args[0], store)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if flagReplayVerify {
		if !maze.Verify(level) {
			logger.Error("solution does not reach the goals", "id", level.ID)
			os.Exit(1)
		}
		logger.Info("solution verified", "id", level.ID, "flips", len(level.Solution))
		return
	}

	var sim *maze.Simulator
	switch {
	case flagReplayStepwise && !flagReplayNoSolution:
		sim = maze.ReplayStepwise(level)
	default:
		sim = maze.Replay(level, !flagReplayNoSolution)
	}

	fmt.Printf("Level %s after %d ticks (%d flips)\n", level.ID, sim.Tick, sim.Toggles())
	for i, pos := range sim.Positions() {
		on := ""
		if level.Grid.At(pos) == maze.Goal {
			on = " on goal"
		}
		fmt.Printf("  ball %d at (%d,%d)%s\n", i+1, pos.X, pos.Y, on)
	}
	if sim.IsGoalReached() {
		fmt.Println("All balls reached the goal.")
	} else {
		fmt.Println("Goal not reached.")
	}
}

// isLevelFile reports whether arg names a level file rather than a saved ID.
func isLevelFile(arg string) bool {
	lower := strings.ToLower(arg)
	if strings.HasSuffix(lower, ".yaml") || strings.HasSuffix(lower, ".yml") {
		return true
	}
	_, err := os.Stat(arg)
	return err == nil
}

// loadLevel reads a level file, or a saved level by ID from store.
func loadLevel(arg string, store *storage.Store) (*maze.Level, error) {
	if isLevelFile(arg) {
		lvl, err := levels.NewLoader(".").LoadFile(arg)
		if err != nil {
			return nil, err
		}
		return lvl.Level, nil
	}
	if store == nil {
		return nil, errors.New("no database to load saved levels from")
	}
	return store.LoadLevel(arg)
}
