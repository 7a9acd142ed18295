package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/cuboid/internal/games/cuboid"
	"github.com/vovakirdan/cuboid/internal/registry"
	"github.com/vovakirdan/cuboid/internal/storage"
)

var flagClear bool

var scoresCmd = &cobra.Command{
	Use:   "scores [game]",
	Short: "Show high scores",
	Long: `Display the top 10 campaign scores, with play statistics.

Examples:
  cuboid scores
  cuboid scores --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "List campaign levels and their best clears",
	Long: `List the levels a new campaign would load, in order, with the best
recorded clear of each.

Examples:
  cuboid levels
  cuboid levels --levels ./my-levels`,
	Args: cobra.NoArgs,
	Run:  runLevels,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete all scores of the game")
}

func runScores(_ *cobra.Command, args []string) {
	gameID := "cuboid"
	if len(args) == 1 {
		gameID = args[0]
	}

	// Check if game exists
	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
		os.Exit(1)
	}

	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}
	title := game.Title()

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagClear {
		if err := store.ClearScores(gameID); err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing scores: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Cleared scores for %s\n", title)
		return
	}

	scores, err := store.TopScores(gameID, 10)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("High Scores - %s\n", title)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Println("Clear the campaign with 'cuboid play' to set the first high score!")
		return
	}

	// Print header
	fmt.Printf("  %-4s  %-10s  %s\n", "Rank", "Score", "Date")
	fmt.Printf("  %-4s  %-10s  %s\n", "----", "-----", "----")

	for i, entry := range scores {
		dateStr := entry.CreatedAt.Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-10d  %s\n", i+1, entry.Score, dateStr)
	}

	fmt.Println()
	if stats, err := store.GetGameStats(gameID); err == nil {
		fmt.Printf("Best: %d  Average: %.0f  Completions: %d\n", stats.HighScore, stats.AvgScore, stats.GamesCount)
	}
}

func runLevels(_ *cobra.Command, _ []string) {
	lvls, err := cuboid.LoadLevels()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Records are optional; the list still prints without a database
	store := openStore()
	if store != nil {
		defer store.Close()
	}

	fmt.Println("Campaign levels:")
	fmt.Println()
	fmt.Printf("  %-3s  %-8s  %-20s  %s\n", "#", "ID", "Name", "Best")
	fmt.Printf("  %-3s  %-8s  %-20s  %s\n", "-", "--", "----", "----")

	for i, l := range lvls {
		best := "-"
		if store != nil {
			rec, err := store.BestLevelRecord(l.ID)
			switch {
			case err == nil:
				best = fmt.Sprintf("%d pts (%d moves, %ds)", rec.Score, rec.Moves, rec.Seconds)
			case !errors.Is(err, storage.ErrNotFound):
				logger.Warn("could not read level record", "level", l.ID, "error", err)
			}
		}
		fmt.Printf("  %-3d  %-8s  %-20s  %s\n", i+1, l.ID, l.Name, best)
	}

	fmt.Println()
	fmt.Println("Run 'cuboid play --level <#>' to start from a level.")
}
