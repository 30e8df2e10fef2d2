package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/maztic-arcade/internal/maze"
	"github.com/vovakirdan/maztic-arcade/internal/maze/levels"
)

var (
	flagLevelsDir   string
	flagLevelsLimit int
	flagLevelsRm    string
)

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "List saved levels",
	Long: `List levels saved in the database, or level files in a directory.

Examples:
  maztic levels
  maztic levels --dir ./levels
  maztic levels --delete 7-17x11-b3-c20-17`,
	Args: cobra.NoArgs,
	Run:  runLevels,
}

func init() {
	levelsCmd.Flags().StringVar(&flagLevelsDir, "dir", "", "List level files in this directory instead")
	levelsCmd.Flags().IntVar(&flagLevelsLimit, "limit", 20, "Maximum number of saved levels to list")
	levelsCmd.Flags().StringVar(&flagLevelsRm, "delete", "", "Delete the saved level with this ID")
}

func runLevels(_ *cobra.Command, _ []string) {
	if flagLevelsDir != "" {
		listLevelFiles(flagLevelsDir)
		return
	}

	logger := newLogger("levels")
	store := openStore(logger)
	if store == nil {
		os.Exit(1)
	}
	defer store.Close()

	if flagLevelsRm != "" {
		if err := store.DeleteLevel(flagLevelsRm); err != nil {
			store.Close()
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		logger.Info("deleted level", "id", flagLevelsRm)
		return
	}

	records, err := store.ListLevels(flagLevelsLimit)
	if err != nil {
		store.Close()
		fmt.Fprintf(os.Stderr, "Error listing levels: %v\n", err)
		os.Exit(1)
	}
	if len(records) == 0 {
		fmt.Println("No saved levels.")
		fmt.Println()
		fmt.Println("Run 'maztic generate --save' to save one.")
		return
	}

	fmt.Printf("  %-20s  %-7s  %-5s  %-6s  %-5s  %s\n", "ID", "Size", "Balls", "Cycles", "Score", "Saved")
	fmt.Printf("  %-20s  %-7s  %-5s  %-6s  %-5s  %s\n", "--", "----", "-----", "------", "-----", "-----")
	for _, r := range records {
		size := fmt.Sprintf("%dx%d", r.Width, r.Height)
		fmt.Printf("  %-20s  %-7s  %-5d  %-6d  %-5d  %s\n",
			r.ID, size, r.Agents, r.ConvergenceTicks/maze.TicksPerCell, r.Score, r.CreatedAt.Format("2006-01-02 15:04"))
	}
}

func listLevelFiles(dir string) {
	all, err := levels.NewLoader(dir).LoadAll()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if len(all) == 0 {
		fmt.Printf("No level files in %s.\n", dir)
		return
	}
	for _, l := range all {
		name := l.Name
		if name == "" {
			name = "-"
		}
		fmt.Printf("  %-20s  %-20s  %dx%d  %s\n", l.ID, name, l.Width(), l.Height(), l.FilePath)
	}
}
