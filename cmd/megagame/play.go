package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/megagame/internal/platform/tui"
	"github.com/vovakirdan/megagame/internal/registry"
)

var playCmd = &cobra.Command{
	Use:   "play <game>",
	Short: "Play a game",
	Long: `Start playing the specified game.

Controls:
  Left/Right, A/D  - Move paddle (the mouse works too)
  Space            - Launch ball
  Enter            - Start / next level / new game
  P                - Pause
  R                - Restart
  Esc/B            - Back (when paused or over)
  Q/Ctrl+C         - Quit
  Ctrl+S           - Screenshot

Difficulty options:
  easy   - 5 lives, wide paddle, slow launch
  normal - 3 lives, speed grows each level
  hard   - 2 lives, narrow paddle, fast launch
  fixed  - No progression, stays at config's initial level

Without --difficulty a picker is shown first.

Examples:
  megagame play breakout
  megagame play breakout --difficulty hard
  megagame play breakout --config ./my-breakout.yaml --seed 7`,
	Args: cobra.ExactArgs(1),
	Run:  runPlay,
}

func runPlay(_ *cobra.Command, args []string) {
	gameID := args[0]

	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'megagame list' to see available games.")
		os.Exit(1)
	}

	logger, closeLog, err := newLogger(true)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}
	configureGames(logger, store)

	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	cfg := runtimeConfig()
	ok, err := chooseDifficulty(game, game.Title(), cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if !ok {
		return
	}

	logger.Info("game started", "game", gameID, "seed", cfg.Seed)
	if err := tui.Run(game, tui.SaverFor(store), cfg, logger); err != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		os.Exit(1)
	}
}
