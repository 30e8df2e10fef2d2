package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/maztic-arcade/internal/config"
	"github.com/vovakirdan/maztic-arcade/internal/games/maztic"
	"github.com/vovakirdan/maztic-arcade/internal/maze"
	"github.com/vovakirdan/maztic-arcade/internal/maze/levels"
)

var (
	flagGenWidth      int
	flagGenHeight     int
	flagGenAgents     int
	flagGenCycles     int
	flagGenCandidates int
	flagGenOut        string
	flagGenSave       bool
	flagGenReport     bool
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a level and print it",
	Long: `Generate one level the way the game does: a batch of candidates is
built from the seed and the best-scoring one is kept.

Settings come from the game config; flags override them. The same seed
and settings always produce the same level.

Examples:
  maztic generate --seed 42
  maztic generate --seed 42 --width 21 --height 13 --agents 4
  maztic generate --seed 7 --out ./levels
  maztic generate --seed 7 --save --report`,
	Args: cobra.NoArgs,
	Run:  runGenerate,
}

func init() {
	generateCmd.Flags().IntVar(&flagGenWidth, "width", 0, "Level width including the border (0 = config)")
	generateCmd.Flags().IntVar(&flagGenHeight, "height", 0, "Level height including the border (0 = config)")
	generateCmd.Flags().IntVar(&flagGenAgents, "agents", 0, "Balls per level (0 = config)")
	generateCmd.Flags().IntVar(&flagGenCycles, "cycles", 0, "Convergence budget in movement cycles (0 = config)")
	generateCmd.Flags().IntVar(&flagGenCandidates, "candidates", 0, "Candidates per batch (0 = config)")
	generateCmd.Flags().StringVar(&flagGenOut, "out", "", "Directory to write the level file to")
	generateCmd.Flags().BoolVar(&flagGenSave, "save", false, "Save the level to the database")
	generateCmd.Flags().BoolVar(&flagGenReport, "report", false, "Print per-candidate statistics")
}

func runGenerate(_ *cobra.Command, _ []string) {
	logger := newLogger("generate")

	params, err := generatorParams()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	gen, err := maze.NewGenerator(params)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	level, report := gen.Generate()
	verified := maze.Verify(level)
	logger.Info("generated level",
		"id", level.ID,
		"size", fmt.Sprintf("%dx%d", level.Width(), level.Height()),
		"balls", len(level.Balls),
		"cycles", level.Cycles(),
		"score", level.Score,
		"verified", verified,
	)

	printLevel(level)
	if flagGenReport {
		printReport(report)
	}

	if flagGenOut != "" {
		path, err := levels.NewLoader(flagGenOut).Save(levels.Level{
			Level: level,
			Metadata: map[string]string{
				"difficulty": flagDifficulty,
			},
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		logger.Info("wrote level file", "path", path)
	}

	if flagGenSave {
		store := openStore(logger)
		if store == nil {
			os.Exit(1)
		}
		err := store.SaveLevel(level)
		store.Close()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		logger.Info("saved level", "id", level.ID, "db", flagDBPath)
	}
}

// generatorParams loads the game config and applies the flag overrides.
func generatorParams() (maze.GenParams, error) {
	cfg, err := config.LoadMaztic(flagConfig)
	if err != nil {
		return maze.GenParams{}, err
	}
	if flagDifficulty != "" {
		preset, err := config.ParsePreset(flagDifficulty)
		if err != nil {
			return maze.GenParams{}, err
		}
		config.ApplyMazticPreset(&cfg, preset)
	}

	p := maztic.GeneratorParams(cfg, uint64(seed()))
	if flagGenWidth > 0 {
		p.Width = flagGenWidth
	}
	if flagGenHeight > 0 {
		p.Height = flagGenHeight
	}
	if flagGenAgents > 0 {
		p.Agents = flagGenAgents
	}
	if flagGenCycles > 0 {
		p.TargetTicks = flagGenCycles * maze.TicksPerCell
	}
	if flagGenCandidates > 0 {
		p.Candidates = flagGenCandidates
	}
	return p, nil
}

var (
	gridStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	titleStyle = lipgloss.NewStyle().Bold(true)
)

// printLevel prints the grid with ball starts marked by their heading.
func printLevel(l *maze.Level) {
	rows := l.Grid.Rows()
	for _, b := range l.Balls {
		row := []rune(rows[b.Pos.Y])
		row[b.Pos.X] = headingRune(b.Dir)
		rows[b.Pos.Y] = string(row)
	}

	fmt.Println(titleStyle.Render(fmt.Sprintf("Level %s  (%d cycles, score %d)", l.ID, l.Cycles(), l.Score)))
	fmt.Println(gridStyle.Render(strings.Join(rows, "\n")))
	if len(l.Solution) > 0 {
		fmt.Printf("Solution: flip at ticks %v\n", l.Solution)
	}
}

func headingRune(d maze.Dir) rune {
	switch d {
	case maze.DirEast:
		return '>'
	case maze.DirSouth:
		return 'v'
	case maze.DirWest:
		return '<'
	default:
		return '^'
	}
}

func printReport(r maze.Report) {
	fmt.Println()
	fmt.Printf("  %-4s  %-6s  %-8s  %-6s  %-9s  %-8s  %s\n", "#", "Score", "Coverage", "Balls", "Converged", "Verified", "Ticks")
	fmt.Printf("  %-4s  %-6s  %-8s  %-6s  %-9s  %-8s  %s\n", "--", "-----", "--------", "-----", "---------", "--------", "-----")
	for _, c := range r.Candidates {
		marker := " "
		if c.Index == r.Best {
			marker = "*"
		}
		fmt.Printf("%s %-4d  %-6d  %-8d  %-6d  %-9t  %-8t  %d\n",
			marker, c.Index, c.Score, c.Coverage, c.Agents, c.Converged, c.Verified, c.ConvergenceTicks)
	}
}
