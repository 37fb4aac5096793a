package breakout

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/megagame/internal/config"
)

func TestNewEngineInitialState(t *testing.T) {
	e := newTestEngine()
	w := e.Snapshot()

	assert.Equal(t, PhaseNotStarted, w.Phase)
	assert.Equal(t, 3, w.Lives)
	assert.Equal(t, 1, w.Level)
	assert.Equal(t, 50, w.TotalBricks)
	assert.Len(t, w.Bricks, 50)
	assert.Equal(t, 350.0, w.Paddle.X)
	assert.Equal(t, 100.0, w.Paddle.Width)

	require.Len(t, w.Balls, 1)
	assert.True(t, w.Balls[0].Docked())
	assert.Equal(t, 400.0, w.Balls[0].X)
	assert.Equal(t, 542.0, w.Balls[0].Y)
}

func TestPhaseTransitions(t *testing.T) {
	e := newTestEngine()

	e.Apply(ResumeGame{})
	assert.Equal(t, PhaseNotStarted, e.Phase(), "resume needs a paused game")
	e.Apply(PauseGame{})
	assert.Equal(t, PhaseNotStarted, e.Phase(), "pause needs an active game")

	e.Apply(StartGame{})
	assert.Equal(t, PhaseActive, e.Phase())
	e.Apply(StartGame{})
	assert.Equal(t, PhaseActive, e.Phase())

	e.Apply(PauseGame{})
	assert.Equal(t, PhasePaused, e.Phase())
	e.Apply(StartGame{})
	assert.Equal(t, PhasePaused, e.Phase(), "start only leaves not-started")
	e.Apply(ResumeGame{})
	assert.Equal(t, PhaseActive, e.Phase())

	e.Apply(NextLevel{})
	assert.Equal(t, 1, e.Snapshot().Level, "next level needs a completed level")

	e.Apply(ResetGame{})
	assert.Equal(t, PhaseNotStarted, e.Phase())
}

func TestCommandsIgnoredBeforeStart(t *testing.T) {
	e := newTestEngine()
	before := e.Snapshot()

	assert.Empty(t, e.Apply(LaunchBall{}))
	assert.Empty(t, e.Apply(MovePaddle{X: 100}))
	assert.Empty(t, e.Apply(UpdatePhysics{DT: time.Second}))
	assert.Empty(t, e.Apply(RemoveBall{ID: 0}))

	after := e.Snapshot()
	assert.Equal(t, before, after)
}

func TestLaunchBall(t *testing.T) {
	e := startedEngine()

	e.Apply(LaunchBall{})
	w := e.Snapshot()
	b := w.Balls[0]
	assert.False(t, b.Docked())
	assert.Equal(t, 0.0, b.VX, "zero spread with a centered random source")
	assert.Equal(t, -8.0, b.VY)

	// A second launch while the ball is moving is ignored.
	e.world.Balls[0].VX = 1
	e.Apply(LaunchBall{})
	assert.Equal(t, 1.0, e.world.Balls[0].VX)
}

func TestLaunchSpeedGrowsWithLevel(t *testing.T) {
	e := startedEngine()
	e.world.Level = 11
	e.Apply(LaunchBall{})
	assert.InDelta(t, -12.0, e.world.Balls[0].VY, 1e-9)
}

func TestMovePaddle(t *testing.T) {
	e := startedEngine()

	e.Apply(MovePaddle{X: 200})
	assert.Equal(t, 150.0, e.world.Paddle.X)
	assert.Equal(t, 200.0, e.world.Balls[0].X, "docked ball follows the paddle")

	e.Apply(MovePaddle{X: -50})
	assert.Equal(t, 0.0, e.world.Paddle.X)

	e.Apply(MovePaddle{X: 10000})
	assert.Equal(t, 700.0, e.world.Paddle.X)

	e.Apply(PauseGame{})
	e.Apply(MovePaddle{X: 400})
	assert.Equal(t, 700.0, e.world.Paddle.X, "paused paddle does not move")
}

func TestNegativeDTIsClamped(t *testing.T) {
	e := startedEngine()
	e.world.Balls[0] = Ball{ID: 0, X: 400, Y: 300, VX: 3, VY: -4, Radius: 8}

	e.Apply(UpdatePhysics{DT: -time.Second})

	assert.Equal(t, time.Duration(0), e.world.Clock)
	assert.Equal(t, 400.0, e.world.Balls[0].X)
	assert.Equal(t, 300.0, e.world.Balls[0].Y)
}

func TestPaddleCenterHitScenario(t *testing.T) {
	e := startedEngine()
	e.world.Combo = 3
	e.world.Balls[0] = Ball{ID: 0, X: 400, Y: 545, VX: 0, VY: 5, Radius: 8}

	e.Apply(UpdatePhysics{DT: frame})

	b := e.world.Balls[0]
	assert.Zero(t, b.VX)
	assert.Less(t, b.VY, 0.0)
	assert.Zero(t, e.world.Combo, "a paddle bounce ends the combo")
}

func TestBrickScenarioDestroysBottomRow(t *testing.T) {
	e := startedEngine()
	id := brickAt(4, 5)
	e.world.Balls[0] = Ball{ID: 0, X: 435, Y: 190, VX: 0, VY: -8, Radius: 8}

	events := e.Apply(UpdatePhysics{DT: frame})

	br := e.world.Bricks[id]
	assert.Equal(t, 0, br.Health)
	assert.True(t, br.Destroyed)
	assert.Equal(t, 10, e.world.Score, "points * (combo + 1)")
	assert.Equal(t, 1, e.world.Combo)
	assert.Equal(t, 1, e.world.BricksDestroyed)
	assert.Len(t, e.world.Particles, 10)
	assert.True(t, hasEvent(events, EventBrickDestroyed))
	assert.Greater(t, e.world.Balls[0].VY, 0.0, "ball bounces back down")
	assert.Nil(t, e.world.Balls[0].LastHitBrickID, "guard clears once nothing overlaps")
}

func TestBrickScenarioSurvivingBrick(t *testing.T) {
	e := startedEngine()
	e.world.Bricks[brickAt(4, 5)].Destroyed = true
	e.world.Bricks[brickAt(4, 5)].Health = 0
	e.world.Combo = 2
	id := brickAt(3, 5)
	e.world.Balls[0] = Ball{ID: 0, X: 435, Y: 165, VX: 0, VY: -8, Radius: 8}

	events := e.Apply(UpdatePhysics{DT: frame})

	br := e.world.Bricks[id]
	assert.Equal(t, 1, br.Health)
	assert.False(t, br.Destroyed)
	assert.Equal(t, 10, e.world.Score, "half points, no combo multiplier")
	assert.Equal(t, 2, e.world.Combo, "surviving brick leaves the combo alone")
	assert.Empty(t, e.world.Particles)
	assert.True(t, hasEvent(events, EventBrickHit))
}

func TestComboMultipliesDestroyingHits(t *testing.T) {
	e := startedEngine()
	e.world.Combo = 2
	e.world.Balls[0] = Ball{ID: 0, X: 435, Y: 190, VX: 0, VY: -8, Radius: 8}

	e.Apply(UpdatePhysics{DT: frame})

	assert.Equal(t, 30, e.world.Score)
	assert.Equal(t, 3, e.world.Combo)
	assert.Equal(t, 3, e.world.MaxCombo)
}

func TestLastHitGuardSuppressesRepeatHits(t *testing.T) {
	e := startedEngine()
	id := brickAt(3, 5)
	e.world.Balls[0] = Ball{ID: 0, X: 435, Y: 150, VX: 0, VY: -3, Radius: 8}

	e.Apply(UpdatePhysics{DT: frame})
	require.Equal(t, 1, e.world.Bricks[id].Health)
	require.NotNil(t, e.world.Balls[0].LastHitBrickID)
	assert.Equal(t, id, *e.world.Balls[0].LastHitBrickID)

	// Still overlapping the same brick: no second hit.
	e.Apply(UpdatePhysics{DT: frame})
	assert.Equal(t, 1, e.world.Bricks[id].Health)
	require.NotNil(t, e.world.Balls[0].LastHitBrickID)

	// Clear of every brick: the guard resets.
	e.world.Balls[0].Y = 300
	e.Apply(UpdatePhysics{DT: frame})
	assert.Nil(t, e.world.Balls[0].LastHitBrickID)
}

// One brick per ball per frame is a deliberate simplification: a ball
// overlapping two bricks bounces off the first in creation order only,
// and the second is resolved on a later frame.
func TestSingleBrickPerBallPerFrame(t *testing.T) {
	e := startedEngine()
	left, right := brickAt(4, 4), brickAt(4, 5)
	e.world.Balls[0] = Ball{ID: 0, X: 397.5, Y: 185, VX: 0, VY: -8, Radius: 8}

	e.Apply(UpdatePhysics{DT: frame})
	assert.True(t, e.world.Bricks[left].Destroyed)
	assert.Equal(t, 1, e.world.Bricks[right].Health, "second overlap waits")

	e.Apply(UpdatePhysics{DT: frame})
	assert.True(t, e.world.Bricks[right].Destroyed)
}

func TestLevelCompleteAndNextLevel(t *testing.T) {
	e := startedEngine()
	last := brickAt(4, 5)
	for i := range e.world.Bricks {
		if i != last {
			e.world.Bricks[i].Destroyed = true
			e.world.Bricks[i].Health = 0
		}
	}
	e.world.Score = 500
	e.world.Lives = 2
	e.world.HighScore = 9000
	e.world.Balls[0] = Ball{ID: 0, X: 435, Y: 190, VX: 0, VY: -8, Radius: 8}

	events := e.Apply(UpdatePhysics{DT: frame})

	require.Equal(t, PhaseLevelComplete, e.Phase())
	assert.True(t, hasEvent(events, EventLevelComplete))
	assert.Equal(t, 510, e.world.LevelHighScore)
	assert.Empty(t, e.Apply(UpdatePhysics{DT: frame}), "physics halts after the level")

	e.Apply(NextLevel{})
	w := e.Snapshot()
	assert.Equal(t, PhaseNotStarted, w.Phase)
	assert.Equal(t, 2, w.Level)
	assert.Equal(t, 510, w.Score)
	assert.Equal(t, 2, w.Lives)
	assert.Equal(t, 9000, w.HighScore)
	assert.Equal(t, 50, w.RemainingBricks())
	assert.Zero(t, w.Combo)
	require.Len(t, w.Balls, 1)
	assert.True(t, w.Balls[0].Docked())
}

func TestLosingLastBallCostsALife(t *testing.T) {
	e := startedEngine()
	e.world.Combo = 4
	e.world.Balls[0] = Ball{ID: 0, X: 100, Y: 600, VX: 0, VY: 10, Radius: 8}

	events := e.Apply(UpdatePhysics{DT: frame})

	assert.True(t, hasEvent(events, EventBallLost))
	assert.True(t, hasEvent(events, EventLifeLost))
	assert.Equal(t, PhaseActive, e.Phase())
	assert.Equal(t, 2, e.world.Lives)
	assert.Zero(t, e.world.Combo)
	require.Len(t, e.world.Balls, 1)
	b := e.world.Balls[0]
	assert.True(t, b.Docked())
	assert.Equal(t, 400.0, b.X)
	assert.Equal(t, 542.0, b.Y)
}

func TestLosingOneOfSeveralBalls(t *testing.T) {
	e := startedEngine()
	e.world.Balls = []Ball{
		{ID: 0, X: 100, Y: 600, VX: 0, VY: 10, Radius: 8},
		{ID: 7, X: 300, Y: 300, VX: 0, VY: -5, Radius: 8},
	}

	e.Apply(UpdatePhysics{DT: frame})

	assert.Equal(t, 3, e.world.Lives)
	require.Len(t, e.world.Balls, 1)
	assert.Equal(t, 7, e.world.Balls[0].ID)
}

func TestGameOverRecordsHighScore(t *testing.T) {
	store := newMemStore()
	store.values[DefaultHighScoreKey] = 100
	e := startedEngine(WithStore(store))
	require.Equal(t, 100, e.world.HighScore)

	e.world.Lives = 1
	e.world.Score = 120
	e.world.Balls[0] = Ball{ID: 0, X: 100, Y: 600, VX: 0, VY: 10, Radius: 8}

	events := e.Apply(UpdatePhysics{DT: frame})

	assert.Equal(t, PhaseGameOver, e.Phase())
	assert.Equal(t, 0, e.world.Lives)
	assert.Equal(t, 120, e.world.HighScore)
	assert.Equal(t, 120, store.values[DefaultHighScoreKey])
	assert.True(t, hasEvent(events, EventGameOver))
	assert.True(t, hasEvent(events, EventHighScore))
}

func TestGameOverKeepsBetterHighScore(t *testing.T) {
	store := newMemStore()
	store.values[DefaultHighScoreKey] = 500
	e := startedEngine(WithStore(store))
	e.world.Lives = 1
	e.world.Score = 120
	e.world.Balls[0] = Ball{ID: 0, X: 100, Y: 600, VX: 0, VY: 10, Radius: 8}

	events := e.Apply(UpdatePhysics{DT: frame})

	assert.Equal(t, PhaseGameOver, e.Phase())
	assert.Equal(t, 500, e.world.HighScore)
	assert.Zero(t, store.sets)
	assert.False(t, hasEvent(events, EventHighScore))
}

func TestStoreFailuresAreLogged(t *testing.T) {
	var buf bytes.Buffer
	store := newMemStore()
	store.err = errors.New("disk on fire")

	e := startedEngine(WithStore(store), WithLogger(log.New(&buf)))
	assert.Zero(t, e.world.HighScore)
	assert.Contains(t, buf.String(), "high score read failed")

	e.world.Lives = 1
	e.world.Score = 50
	e.world.Balls[0] = Ball{ID: 0, X: 100, Y: 600, VX: 0, VY: 10, Radius: 8}
	e.Apply(UpdatePhysics{DT: frame})

	assert.Equal(t, PhaseGameOver, e.Phase(), "store errors never stop the game")
	assert.Equal(t, 50, e.world.HighScore)
	assert.Contains(t, buf.String(), "high score write failed")
}

func TestRemoveBallIsIdempotent(t *testing.T) {
	e := startedEngine()
	e.world.Balls = []Ball{
		{ID: 0, X: 100, Y: 300, VX: 0, VY: -5, Radius: 8},
		{ID: 1, X: 300, Y: 300, VX: 0, VY: -5, Radius: 8},
	}

	assert.NotEmpty(t, e.Apply(RemoveBall{ID: 1}))
	assert.Empty(t, e.Apply(RemoveBall{ID: 1}))
	assert.Equal(t, 3, e.world.Lives)

	events := e.Apply(RemoveBall{ID: 0})
	assert.True(t, hasEvent(events, EventLifeLost))
	assert.Equal(t, 2, e.world.Lives)
}

func TestResetKeepsHighScoreAndRebuildsLayout(t *testing.T) {
	e := startedEngine()
	e.world.Balls[0] = Ball{ID: 0, X: 435, Y: 190, VX: 0, VY: -8, Radius: 8}
	e.Apply(UpdatePhysics{DT: frame})
	e.world.HighScore = 777
	require.Positive(t, e.world.Score)

	e.Apply(ResetGame{})
	w := e.Snapshot()

	cfg := config.DefaultBreakoutConfig()
	assert.Equal(t, BuildLevel(1, cfg.Layout, cfg.Field.Width), w.Bricks)
	assert.Equal(t, PhaseNotStarted, w.Phase)
	assert.Zero(t, w.Score)
	assert.Equal(t, 3, w.Lives)
	assert.Equal(t, 777, w.HighScore)
	assert.Empty(t, w.Particles)
}

func TestSnapshotIsDeepCopy(t *testing.T) {
	e := startedEngine()
	e.Apply(LaunchBall{})
	e.Apply(UpdatePhysics{DT: frame})
	id := 3
	e.world.Balls[0].LastHitBrickID = &id

	snap := e.Snapshot()
	snap.Bricks[0].Health = 99
	snap.Balls[0].Trail[0].X = -1
	*snap.Balls[0].LastHitBrickID = 42
	snap.Balls = append(snap.Balls, Ball{ID: 99})

	assert.Equal(t, 5, e.world.Bricks[0].Health)
	assert.NotEqual(t, -1.0, e.world.Balls[0].Trail[0].X)
	assert.Equal(t, 3, *e.world.Balls[0].LastHitBrickID)
	assert.Len(t, e.world.Balls, 1)
}

func TestDeterministicWithSeed(t *testing.T) {
	run := func() uint64 {
		e := NewEngine(config.DefaultBreakoutConfig(), WithSeed(42))
		e.Apply(StartGame{})
		for range 1200 {
			w := &e.world
			if w.Phase != PhaseActive {
				break
			}
			if len(w.Balls) > 0 {
				e.Apply(MovePaddle{X: w.Balls[0].X})
			}
			e.Apply(LaunchBall{})
			e.Apply(UpdatePhysics{DT: frame})
		}
		return e.world.Hash()
	}
	assert.Equal(t, run(), run())
}

// Runs a seeded game with a paddle that tracks the first ball and checks
// the invariants after every frame.
func TestInvariantsHoldDuringPlay(t *testing.T) {
	cfg := config.DefaultBreakoutConfig()
	cfg.PowerUps.DropChance = 0.5
	e := NewEngine(cfg, WithSeed(7))
	e.Apply(StartGame{})

	prevHealth := make([]int, len(e.world.Bricks))
	for i, b := range e.world.Bricks {
		prevHealth[i] = b.Health
	}
	prevScore := 0
	level := 1

	for range 6000 {
		w := &e.world
		if w.Phase == PhaseGameOver {
			break
		}
		if w.Phase == PhaseLevelComplete {
			require.Zero(t, w.RemainingBricks())
			e.Apply(NextLevel{})
			e.Apply(StartGame{})
			level++
			for i, b := range e.world.Bricks {
				prevHealth[i] = b.Health
			}
		}

		if len(w.Balls) > 0 {
			e.Apply(MovePaddle{X: w.Balls[0].X})
		}
		e.Apply(LaunchBall{})
		e.Apply(UpdatePhysics{DT: frame})

		require.Equal(t, level, w.Level)
		for i, b := range w.Bricks {
			require.LessOrEqual(t, b.Health, prevHealth[i], "health never increases")
			require.GreaterOrEqual(t, b.Health, 0)
			require.Equal(t, b.Health <= 0, b.Destroyed)
			prevHealth[i] = b.Health
		}
		require.GreaterOrEqual(t, w.Score, prevScore, "score never decreases")
		prevScore = w.Score

		for _, b := range w.Balls {
			if b.Docked() {
				continue
			}
			s := Speed(&b)
			require.GreaterOrEqual(t, s, cfg.Ball.MinSpeed-1e-9)
			require.LessOrEqual(t, s, cfg.Ball.MaxSpeed+1e-9)
		}
		require.Equal(t, w.Phase == PhaseLevelComplete, w.RemainingBricks() == 0)
	}
}

func TestSnapshotPaddleGeometry(t *testing.T) {
	e := startedEngine()
	e.Apply(MovePaddle{X: 300})

	assert.Equal(t, 300.0, e.Snapshot().Paddle.CenterX())
	r := e.Snapshot().Paddle.Rect()
	assert.Equal(t, 300.0, r.X+r.W/2)
}
