package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/vovakirdan/megagame/internal/config"
	"github.com/vovakirdan/megagame/internal/core"
	"github.com/vovakirdan/megagame/internal/games/breakout"
	"github.com/vovakirdan/megagame/internal/platform/tui"
	"github.com/vovakirdan/megagame/internal/storage"
)

// validateGlobalFlags rejects flag values no command can use.
func validateGlobalFlags() error {
	var errs []error
	if flagFPS <= 0 || flagFPS > 240 {
		errs = append(errs, fmt.Errorf("--fps must be in 1..240, got %d", flagFPS))
	}
	if flagDifficulty != "" && config.ParsePreset(flagDifficulty) == "" {
		errs = append(errs, fmt.Errorf("--difficulty must be easy, normal, hard or fixed, got %q", flagDifficulty))
	}
	if _, err := log.ParseLevel(flagLogLevel); err != nil {
		errs = append(errs, fmt.Errorf("--log-level: %w", err))
	}
	return errors.Join(errs...)
}

// newLogger builds the process logger. Full-screen commands pass
// interactive so that, without --log-file, nothing is written over the
// alt screen.
func newLogger(interactive bool) (*log.Logger, func(), error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, nil, err
	}

	var (
		w       io.Writer = os.Stderr
		closeFn           = func() {}
	)
	switch {
	case flagLogFile != "":
		f, openErr := os.OpenFile(flagLogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if openErr != nil {
			return nil, nil, fmt.Errorf("cannot open log file: %w", openErr)
		}
		w = f
		closeFn = func() { f.Close() }
	case interactive:
		w = io.Discard
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "megagame",
		Level:           level,
	})
	return logger, closeFn, nil
}

// openStore opens the scores database. Failures are logged and yield nil:
// every game still works without persistence.
func openStore(logger *log.Logger) *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database", "path", flagDBPath, "err", err)
		return nil
	}
	return store
}

// configureGames hands CLI settings to the game packages before games are
// created.
func configureGames(logger *log.Logger, store *storage.Store) {
	breakout.SetConfigPath(flagConfig)
	breakout.SetDifficultyPreset(flagDifficulty)
	breakout.SetLogger(logger)
	if store != nil {
		breakout.SetHighScoreStore(store)
	}
}

// runtimeConfig sizes the game to the current terminal.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed
	return cfg
}

// difficultySetter is implemented by games with difficulty presets.
type difficultySetter interface {
	SetDifficulty(preset string)
}

// chooseDifficulty asks for a preset when the game has them and none was
// given on the command line. ok is false when the player backed out.
func chooseDifficulty(game any, title string, cfg core.RuntimeConfig) (ok bool, err error) {
	setter, has := game.(difficultySetter)
	if !has || flagDifficulty != "" {
		return true, nil
	}

	preset, chosen, err := tui.RunDifficultySelector(title, cfg)
	if err != nil || !chosen {
		return false, err
	}
	setter.SetDifficulty(string(preset))
	return true, nil
}
