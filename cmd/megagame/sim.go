package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/jonboulle/clockwork"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/megagame/internal/games/breakout"
	"github.com/vovakirdan/megagame/internal/loop"
	"github.com/vovakirdan/megagame/internal/storage"
)

var (
	flagSimFrames    int
	flagSimMaxTravel float64
	flagSimSave      bool
	flagSimOut       string
)

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Run a headless autopilot game",
	Long: `Play breakout without a terminal: an autopilot steers the paddle
while the game loop runs on a simulated clock, as fast as the CPU allows.
Prints a summary when the game ends or the frame budget runs out.

The same --seed, --config and --difficulty always produce the same game.

Examples:
  megagame sim --seed 42
  megagame sim --difficulty hard --max-travel 6
  megagame sim --seed 7 --out final.msgpack
  megagame sim --save`,
	Run: runSim,
}

func init() {
	simCmd.Flags().IntVar(&flagSimFrames, "frames", 60*60*10, "Maximum frames to simulate")
	simCmd.Flags().Float64Var(&flagSimMaxTravel, "max-travel", 0, "Autopilot paddle travel per frame (0 = perfect)")
	simCmd.Flags().BoolVar(&flagSimSave, "save", false, "Record the final score in the scores database")
	simCmd.Flags().StringVar(&flagSimOut, "out", "", "Write the final world snapshot (msgpack) to this file")
}

// simResult summarizes a finished simulation.
type simResult struct {
	seed   int64
	frames int
	events map[breakout.EventKind]int
	world  breakout.World
}

func runSim(_ *cobra.Command, _ []string) {
	logger, closeLog, err := newLogger(false)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	var (
		scores breakout.HighScoreStore = storage.NewMemoryKV()
		store  *storage.Store
	)
	if flagSimSave {
		store = openStore(logger)
		if store == nil {
			os.Exit(1)
		}
		defer store.Close()
		scores = store
	}
	configureGames(logger, store)

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	res := simulate(breakout.NewEngine(breakout.LoadConfig(),
		breakout.WithSeed(seed),
		breakout.WithLogger(logger),
		breakout.WithStore(scores),
	), seed, logger)

	printSimResult(res)

	if flagSimOut != "" {
		data, err := breakout.EncodeSnapshot(&res.world)
		if err == nil {
			err = os.WriteFile(flagSimOut, data, 0o644)
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error writing snapshot: %v\n", err)
			os.Exit(1)
		}
	}

	if store != nil && res.world.Score > 0 {
		if _, err := store.SaveScore("breakout", res.world.Score, res.world.Level); err != nil {
			fmt.Fprintf(os.Stderr, "Error saving score: %v\n", err)
			os.Exit(1)
		}
	}
}

// simulate drives the engine with the autopilot on a fake clock until the
// game ends or the frame budget is spent.
func simulate(engine *breakout.Engine, seed int64, logger *log.Logger) simResult {
	res := simResult{seed: seed, events: make(map[breakout.EventKind]int)}
	pilot := breakout.Autopilot{MaxTravel: flagSimMaxTravel}
	clock := clockwork.NewFakeClock()

	count := func(events []breakout.Event) {
		for _, ev := range events {
			res.events[ev.Kind]++
			if ev.Kind == breakout.EventLevelComplete {
				logger.Info("level complete", "event", ev, "frame", res.frames)
			}
		}
	}

	driver := loop.New(flagFPS, func(dt time.Duration) {
		w := engine.Snapshot()
		for _, cmd := range pilot.Plan(&w) {
			count(engine.Apply(cmd))
		}
		count(engine.Apply(breakout.UpdatePhysics{DT: dt}))
	}, loop.WithClock(clock))

	for res.frames < flagSimFrames && engine.Phase() != breakout.PhaseGameOver {
		clock.Advance(driver.Interval())
		driver.Tick()
		res.frames++
	}

	res.world = engine.Snapshot()
	return res
}

func printSimResult(res simResult) {
	w := res.world
	fmt.Println("Simulation summary")
	fmt.Println()
	fmt.Printf("  %-18s %d\n", "Seed", res.seed)
	fmt.Printf("  %-18s %d\n", "Frames", res.frames)
	fmt.Printf("  %-18s %s\n", "Game time", w.Clock.Round(time.Millisecond))
	fmt.Printf("  %-18s %s\n", "Phase", w.Phase)
	fmt.Printf("  %-18s %d\n", "Score", w.Score)
	fmt.Printf("  %-18s %d\n", "High score", w.HighScore)
	fmt.Printf("  %-18s %d\n", "Level", w.Level)
	fmt.Printf("  %-18s %d\n", "Lives", w.Lives)
	fmt.Printf("  %-18s %d/%d (%d%%)\n", "Bricks", w.BricksDestroyed, w.TotalBricks, w.Accuracy())
	fmt.Printf("  %-18s %d\n", "Max combo", w.MaxCombo)
	fmt.Printf("  %-18s %d\n", "Power-ups", w.PowerUpsCollected)
	fmt.Printf("  %-18s %d\n", "Balls lost", res.events[breakout.EventBallLost])
	fmt.Printf("  %-18s %016x\n", "State hash", w.Hash())
}
