package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/megagame/internal/registry"
	"github.com/vovakirdan/megagame/internal/storage"
)

var (
	flagScoresLimit int
	flagScoresClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [game]",
	Short: "Show high scores",
	Long: `Display the top high scores for the specified game, or a summary of
every game when none is given.

Examples:
  megagame scores
  megagame scores breakout
  megagame scores breakout --limit 25
  megagame scores breakout --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of scores to show")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete all scores for the game")
}

func runScores(_ *cobra.Command, args []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if len(args) == 0 {
		if err := printSummary(store); err != nil {
			fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
			os.Exit(1)
		}
		return
	}

	gameID := args[0]
	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'megagame list' to see available games.")
		os.Exit(1)
	}

	if flagScoresClear {
		if err := store.ClearScores(gameID); err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing scores: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Cleared scores for %s.\n", gameID)
		return
	}

	if err := printTopScores(store, gameID); err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		os.Exit(1)
	}
}

func printTopScores(store *storage.Store, gameID string) error {
	game, err := registry.Create(gameID)
	if err != nil {
		return err
	}

	scores, err := store.TopScores(gameID, flagScoresLimit)
	if err != nil {
		return err
	}

	fmt.Printf("High Scores - %s\n", game.Title())
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'megagame play %s' to set the first high score!\n", gameID)
		return nil
	}

	fmt.Printf("  %-4s  %-10s  %-5s  %s\n", "Rank", "Score", "Level", "Date")
	fmt.Printf("  %-4s  %-10s  %-5s  %s\n", "----", "-----", "-----", "----")

	for i, entry := range scores {
		dateStr := entry.CreatedAt.Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-10d  %-5d  %s\n", i+1, entry.Score, entry.Level, dateStr)
	}

	stats, err := store.GameStats(gameID)
	if err != nil {
		return err
	}
	fmt.Println()
	fmt.Printf("Best: %d   Games: %d   Average: %.0f   Best level: %d\n",
		stats.HighScore, stats.GamesCount, stats.AvgScore, stats.BestLevel)
	return nil
}

func printSummary(store *storage.Store) error {
	all, err := store.AllGamesStats()
	if err != nil {
		return err
	}

	if len(all) == 0 {
		fmt.Println("No scores recorded yet.")
		return nil
	}

	ids := make([]string, 0, len(all))
	for id := range all {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	fmt.Printf("  %-12s  %-6s  %-10s  %-5s  %s\n", "Game", "Games", "Best", "Level", "Last played")
	fmt.Printf("  %-12s  %-6s  %-10s  %-5s  %s\n", "----", "-----", "----", "-----", "-----------")
	for _, id := range ids {
		s := all[id]
		fmt.Printf("  %-12s  %-6d  %-10d  %-5d  %s\n",
			id, s.GamesCount, s.HighScore, s.BestLevel, s.LastPlayed.Format("2006-01-02 15:04"))
	}
	return nil
}
