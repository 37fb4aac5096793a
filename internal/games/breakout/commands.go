package breakout

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/megagame/internal/config"
)

// Command is an input to the simulation. The set is closed: only the
// types in this file implement it.
type Command interface {
	command()
}

// StartGame moves a fresh game from not-started to active.
type StartGame struct{}

// PauseGame suspends an active game. Timers freeze while paused.
type PauseGame struct{}

// ResumeGame continues a paused game.
type ResumeGame struct{}

// ResetGame rebuilds level 1 from scratch, keeping only the high score.
type ResetGame struct{}

// NextLevel advances from a completed level, carrying score and lives.
type NextLevel struct{}

// MovePaddle centers the paddle on X, clamped to the field.
type MovePaddle struct {
	X float64
}

// LaunchBall releases the primary ball when it is docked.
type LaunchBall struct{}

// UpdatePhysics advances the world by DT.
type UpdatePhysics struct {
	DT time.Duration
}

// CollectPowerUp collects a falling pickup by id.
type CollectPowerUp struct {
	ID int
}

// RemoveBall takes a ball out of play by id.
type RemoveBall struct {
	ID int
}

func (StartGame) command()      {}
func (PauseGame) command()      {}
func (ResumeGame) command()     {}
func (ResetGame) command()      {}
func (NextLevel) command()      {}
func (MovePaddle) command()     {}
func (LaunchBall) command()     {}
func (UpdatePhysics) command()  {}
func (CollectPowerUp) command() {}
func (RemoveBall) command()     {}

// Engine owns a World and is the only thing that mutates it.
// It is not safe for concurrent use; callers serialize Apply and Snapshot.
type Engine struct {
	cfg        config.BreakoutConfig
	world      World
	rng        Random
	store      HighScoreStore
	logger     *log.Logger
	difficulty *config.DifficultyManager
	nextID     int
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger. Events are logged at debug level.
func WithLogger(l *log.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithRandom sets the random source.
func WithRandom(r Random) Option {
	return func(e *Engine) {
		if r != nil {
			e.rng = r
		}
	}
}

// WithSeed seeds the default random source.
func WithSeed(seed int64) Option {
	return func(e *Engine) {
		e.rng = NewSimpleRNG(seed)
	}
}

// WithStore sets where the high score is read from and written to.
func WithStore(s HighScoreStore) Option {
	return func(e *Engine) {
		e.store = s
	}
}

// NewEngine builds an engine at level 1, not started.
func NewEngine(cfg config.BreakoutConfig, opts ...Option) *Engine {
	e := &Engine{
		cfg:        cfg,
		logger:     log.New(io.Discard),
		difficulty: config.NewDifficultyManager(cfg.Difficulty),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.rng == nil {
		e.rng = NewSimpleRNG(time.Now().UnixNano())
	}

	e.world = e.newWorld(1)
	e.world.HighScore = e.loadHighScore()
	return e
}

// Config returns the configuration the engine was built with.
func (e *Engine) Config() config.BreakoutConfig {
	return e.cfg
}

// Phase returns the current phase without copying the world.
func (e *Engine) Phase() Phase {
	return e.world.Phase
}

// Snapshot returns a deep copy of the world for rendering.
func (e *Engine) Snapshot() World {
	return e.world.Clone()
}

// Apply runs one command and returns what happened. Commands that are not
// valid in the current phase are ignored and return no events.
func (e *Engine) Apply(cmd Command) []Event {
	w := &e.world
	var events []Event

	switch c := cmd.(type) {
	case StartGame:
		if w.Phase == PhaseNotStarted {
			w.Phase = PhaseActive
		}

	case PauseGame:
		if w.Phase == PhaseActive {
			w.Phase = PhasePaused
		}

	case ResumeGame:
		if w.Phase == PhasePaused {
			w.Phase = PhaseActive
		}

	case ResetGame:
		high := w.HighScore
		e.world = e.newWorld(1)
		e.world.HighScore = high

	case NextLevel:
		if w.Phase != PhaseLevelComplete {
			break
		}
		prev := *w
		e.world = e.newWorld(prev.Level + 1)
		e.world.Score = prev.Score
		e.world.Lives = prev.Lives
		e.world.HighScore = prev.HighScore

	case MovePaddle:
		if w.Phase == PhaseActive {
			e.movePaddle(c.X)
		}

	case LaunchBall:
		if w.Phase == PhaseActive {
			e.launch()
		}

	case UpdatePhysics:
		events = e.step(c.DT)

	case CollectPowerUp:
		if w.Phase == PhaseActive {
			events = e.collect(c.ID)
			e.applyPaddleWidth()
		}

	case RemoveBall:
		if w.Phase == PhaseActive {
			events = e.removeBall(c.ID)
		}
	}

	for _, ev := range events {
		e.logger.Debug("breakout event", "event", ev.Kind.String(), "id", ev.ID, "value", ev.Value)
	}
	return events
}

// newWorld builds the starting state of a level: full brick grid, centered
// paddle and one ball docked on it.
func (e *Engine) newWorld(level int) World {
	e.nextID = 0
	cfg := e.cfg

	w := World{
		Width:  cfg.Field.Width,
		Height: cfg.Field.Height,
		Lives:  cfg.Gameplay.Lives,
		Level:  level,
		Phase:  PhaseNotStarted,
		Paddle: Paddle{
			X:         (cfg.Field.Width - cfg.Paddle.Width) / 2,
			Y:         cfg.Paddle.Y,
			Width:     cfg.Paddle.Width,
			BaseWidth: cfg.Paddle.Width,
			Height:    cfg.Paddle.Height,
		},
		Bricks: BuildLevel(level, cfg.Layout, cfg.Field.Width),
	}
	w.TotalBricks = len(w.Bricks)
	w.Balls = []Ball{e.dockedBall(&w.Paddle)}
	return w
}

func (e *Engine) newID() int {
	id := e.nextID
	e.nextID++
	return id
}

// dockedBall creates a motionless ball resting on the paddle center.
func (e *Engine) dockedBall(p *Paddle) Ball {
	b := Ball{ID: e.newID(), Radius: e.cfg.Ball.Radius}
	dock(&b, p)
	return b
}

func dock(b *Ball, p *Paddle) {
	b.X = p.CenterX()
	b.Y = p.Y - b.Radius
}

// movePaddle centers the paddle on x. Docked balls ride along.
func (e *Engine) movePaddle(x float64) {
	w := &e.world
	p := &w.Paddle
	p.X = clampPaddleX(x-p.Width/2, p.Width, w.Width)
	for i := range w.Balls {
		if w.Balls[i].Docked() {
			dock(&w.Balls[i], p)
		}
	}
}

func clampPaddleX(x, width, fieldWidth float64) float64 {
	if x > fieldWidth-width {
		x = fieldWidth - width
	}
	if x < 0 {
		x = 0
	}
	return x
}

// launch sends the primary ball upward with a random horizontal component.
// Launch speed grows with the level.
func (e *Engine) launch() {
	w := &e.world
	if len(w.Balls) == 0 || !w.Balls[0].Docked() {
		return
	}
	b := &w.Balls[0]
	b.VX = centered(e.rng, e.cfg.Ball.LaunchSpread)
	b.VY = -e.launchSpeed()
	ClampSpeed(b, e.cfg.Ball.MinSpeed, e.cfg.Ball.MaxSpeed)
}

func (e *Engine) launchSpeed() float64 {
	return e.difficulty.Speed(e.cfg.Ball.LaunchSpeed, e.world.Level, e.world.Score)
}

// removeBall drops a ball by id. Losing the last ball costs a life.
func (e *Engine) removeBall(id int) []Event {
	w := &e.world
	for i := range w.Balls {
		if w.Balls[i].ID != id {
			continue
		}
		w.Balls = append(w.Balls[:i], w.Balls[i+1:]...)
		events := []Event{{Kind: EventBallLost, ID: id}}
		if len(w.Balls) == 0 {
			events = append(events, e.loseLife()...)
		}
		return events
	}
	return nil
}

// loseLife handles an empty ball set: one life gone, then either game
// over or a fresh ball docked on the paddle.
func (e *Engine) loseLife() []Event {
	w := &e.world
	w.Lives--
	w.Combo = 0
	events := []Event{{Kind: EventLifeLost, Value: w.Lives}}

	if w.Lives <= 0 {
		w.Lives = 0
		return append(events, e.gameOver()...)
	}

	w.Balls = append(w.Balls[:0], e.dockedBall(&w.Paddle))
	return events
}

func (e *Engine) gameOver() []Event {
	w := &e.world
	w.Phase = PhaseGameOver
	events := []Event{{Kind: EventGameOver, Value: w.Score}}

	if w.Score > w.HighScore {
		w.HighScore = w.Score
		e.saveHighScore(w.HighScore)
		events = append(events, Event{Kind: EventHighScore, Value: w.HighScore})
	}
	e.logger.Info("game over", "score", w.Score, "level", w.Level, "high", w.HighScore)
	return events
}
