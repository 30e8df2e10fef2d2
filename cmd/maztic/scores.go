package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/maztic-arcade/internal/platform/tui"
)

var flagScoresPlain bool

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show high scores",
	Long: `Display the high score table and saved levels.

Examples:
  maztic scores
  maztic scores --plain`,
	Args: cobra.NoArgs,
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagScoresPlain, "plain", false, "Print the top 10 instead of opening the scoreboard")
}

func runScores(_ *cobra.Command, _ []string) {
	logger := newLogger("scores")
	store := openStore(logger)
	if store == nil {
		os.Exit(1)
	}
	defer store.Close()

	if !flagScoresPlain {
		width, height := 80, 24
		if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
			width = w
			height = h
		}
		if err := tui.RunScoreboard(store, gameID, width, height); err != nil {
			store.Close()
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	scores, err := store.TopScores(gameID, 10)
	if err != nil {
		store.Close()
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("High Scores - Maztic")
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Println("Play 'maztic play' to set the first high score!")
		return
	}

	fmt.Printf("  %-4s  %-10s  %-6s  %s\n", "Rank", "Score", "Levels", "Date")
	fmt.Printf("  %-4s  %-10s  %-6s  %s\n", "----", "-----", "------", "----")
	for i, entry := range scores {
		dateStr := entry.CreatedAt.Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-10d  %-6d  %s\n", i+1, entry.Score, entry.Levels, dateStr)
	}

	fmt.Println()
	if stats, err := store.GetGameStats(gameID); err == nil {
		fmt.Printf("Best: %d over %d runs\n", stats.HighScore, stats.GamesCount)
	}
}
