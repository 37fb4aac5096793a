package breakout

import (
	"time"

	"github.com/vovakirdan/megagame/internal/core"
)

// ReferenceRate is the frame rate velocities are expressed against.
// A ball with VY = -8 moves 8 units per 1/60 s.
const ReferenceRate = 60

// Phase is the top-level state of a game.
type Phase int

const (
	PhaseNotStarted Phase = iota
	PhaseActive
	PhasePaused
	PhaseGameOver
	PhaseLevelComplete
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseNotStarted:
		return "not-started"
	case PhaseActive:
		return "active"
	case PhasePaused:
		return "paused"
	case PhaseGameOver:
		return "game-over"
	case PhaseLevelComplete:
		return "level-complete"
	default:
		return "unknown"
	}
}

// Ball is a moving circle. Velocity is in units per reference frame.
type Ball struct {
	ID     int        `msgpack:"id"`
	X      float64    `msgpack:"x"`
	Y      float64    `msgpack:"y"`
	VX     float64    `msgpack:"vx"`
	VY     float64    `msgpack:"vy"`
	Radius float64    `msgpack:"r"`
	Trail  []core.Vec `msgpack:"trail"`

	// LastHitBrickID suppresses repeated hits while the ball is still
	// inside the brick it just bounced off.
	LastHitBrickID *int `msgpack:"last_hit,omitempty"`
}

// Docked reports whether the ball rests on the paddle awaiting launch.
func (b *Ball) Docked() bool {
	return b.VX == 0 && b.VY == 0
}

// Circle returns the ball's collision shape.
func (b *Ball) Circle() core.Circle {
	return core.Circle{X: b.X, Y: b.Y, R: b.Radius}
}

func (b Ball) clone() Ball {
	if b.Trail != nil {
		b.Trail = append([]core.Vec(nil), b.Trail...)
	}
	if b.LastHitBrickID != nil {
		id := *b.LastHitBrickID
		b.LastHitBrickID = &id
	}
	return b
}

// Brick is a destructible block. Health only goes down.
type Brick struct {
	ID        int     `msgpack:"id"`
	X         float64 `msgpack:"x"`
	Y         float64 `msgpack:"y"`
	Width     float64 `msgpack:"w"`
	Height    float64 `msgpack:"h"`
	Health    int     `msgpack:"hp"`
	MaxHealth int     `msgpack:"max_hp"`
	Points    int     `msgpack:"pts"`
	Color     string  `msgpack:"color"`
	Destroyed bool    `msgpack:"destroyed"`
}

// Rect returns the brick's bounding box.
func (b *Brick) Rect() core.Rect {
	return core.NewRect(b.X, b.Y, b.Width, b.Height)
}

// Paddle is the player's bat. Width is derived from BaseWidth and the
// active power-ups; see Engine.applyPaddleWidth.
type Paddle struct {
	X         float64 `msgpack:"x"`
	Y         float64 `msgpack:"y"`
	Width     float64 `msgpack:"w"`
	BaseWidth float64 `msgpack:"base_w"`
	Height    float64 `msgpack:"h"`
}

// Rect returns the paddle's bounding box.
func (p Paddle) Rect() core.Rect {
	return core.NewRect(p.X, p.Y, p.Width, p.Height)
}

// CenterX returns the horizontal center of the paddle.
func (p Paddle) CenterX() float64 {
	return p.X + p.Width/2
}

// PowerUpType enumerates the pickups a brick can drop.
type PowerUpType int

const (
	PowerUpMultiBall PowerUpType = iota
	PowerUpWidePaddle
	PowerUpLaser
	PowerUpSlowBall
	PowerUpExtraLife
	powerUpTypeCount
)

// AllPowerUpTypes lists every type in declaration order.
func AllPowerUpTypes() []PowerUpType {
	types := make([]PowerUpType, 0, powerUpTypeCount)
	for t := PowerUpType(0); t < powerUpTypeCount; t++ {
		types = append(types, t)
	}
	return types
}

// Instant reports whether the effect is applied once on collection.
func (t PowerUpType) Instant() bool {
	return t == PowerUpMultiBall || t == PowerUpExtraLife
}

// Key returns the configuration key of the type.
func (t PowerUpType) Key() string {
	switch t {
	case PowerUpMultiBall:
		return "multi_ball"
	case PowerUpWidePaddle:
		return "wide_paddle"
	case PowerUpLaser:
		return "laser"
	case PowerUpSlowBall:
		return "slow_ball"
	case PowerUpExtraLife:
		return "extra_life"
	default:
		return "unknown"
	}
}

// String returns a short display name.
func (t PowerUpType) String() string {
	switch t {
	case PowerUpMultiBall:
		return "Multi"
	case PowerUpWidePaddle:
		return "Wide"
	case PowerUpLaser:
		return "Laser"
	case PowerUpSlowBall:
		return "Slow"
	case PowerUpExtraLife:
		return "Life"
	default:
		return "?"
	}
}

// Glyph returns the terminal character for a falling pickup.
func (t PowerUpType) Glyph() rune {
	switch t {
	case PowerUpMultiBall:
		return 'M'
	case PowerUpWidePaddle:
		return 'W'
	case PowerUpLaser:
		return 'L'
	case PowerUpSlowBall:
		return 'S'
	case PowerUpExtraLife:
		return '♥'
	default:
		return '?'
	}
}

// PowerUp is a falling pickup. X and Y are the center of its box.
type PowerUp struct {
	ID       int           `msgpack:"id"`
	Type     PowerUpType   `msgpack:"type"`
	X        float64       `msgpack:"x"`
	Y        float64       `msgpack:"y"`
	VY       float64       `msgpack:"vy"`
	Width    float64       `msgpack:"w"`
	Height   float64       `msgpack:"h"`
	Color    string        `msgpack:"color"`
	Icon     string        `msgpack:"icon"`
	Duration time.Duration `msgpack:"duration"`
}

// Rect returns the pickup's bounding box.
func (p *PowerUp) Rect() core.Rect {
	return core.NewRect(p.X-p.Width/2, p.Y-p.Height/2, p.Width, p.Height)
}

// ActivePowerUp is a timed effect in force until the game clock reaches Expiry.
type ActivePowerUp struct {
	Type   PowerUpType   `msgpack:"type"`
	Expiry time.Duration `msgpack:"expiry"`
}

// Particle is a short-lived debris fragment. Life goes from 1 to 0.
type Particle struct {
	ID    int     `msgpack:"id"`
	X     float64 `msgpack:"x"`
	Y     float64 `msgpack:"y"`
	VX    float64 `msgpack:"vx"`
	VY    float64 `msgpack:"vy"`
	Life  float64 `msgpack:"life"`
	Color string  `msgpack:"color"`
	Size  float64 `msgpack:"size"`
}

// World is the complete state of one game.
type World struct {
	Width  float64 `msgpack:"width"`
	Height float64 `msgpack:"height"`

	Score             int `msgpack:"score"`
	Lives             int `msgpack:"lives"`
	Level             int `msgpack:"level"`
	Combo             int `msgpack:"combo"`
	MaxCombo          int `msgpack:"max_combo"`
	BricksDestroyed   int `msgpack:"bricks_destroyed"`
	TotalBricks       int `msgpack:"total_bricks"`
	PowerUpsCollected int `msgpack:"powerups_collected"`
	HighScore         int `msgpack:"high_score"`
	LevelHighScore    int `msgpack:"level_high_score"`

	// Clock is game time: the sum of every dt simulated while active.
	Clock time.Duration `msgpack:"clock"`
	Phase Phase         `msgpack:"phase"`

	Balls     []Ball          `msgpack:"balls"`
	Paddle    Paddle          `msgpack:"paddle"`
	Bricks    []Brick         `msgpack:"bricks"`
	PowerUps  []PowerUp       `msgpack:"powerups"`
	Particles []Particle      `msgpack:"particles"`
	Active    []ActivePowerUp `msgpack:"active"`
}

// Clone returns a deep copy that shares no memory with w.
func (w *World) Clone() World {
	c := *w
	c.Balls = make([]Ball, len(w.Balls))
	for i, b := range w.Balls {
		c.Balls[i] = b.clone()
	}
	c.Bricks = append([]Brick(nil), w.Bricks...)
	c.PowerUps = append([]PowerUp(nil), w.PowerUps...)
	c.Particles = append([]Particle(nil), w.Particles...)
	c.Active = append([]ActivePowerUp(nil), w.Active...)
	return c
}

// RemainingBricks counts bricks not yet destroyed.
func (w *World) RemainingBricks() int {
	n := 0
	for i := range w.Bricks {
		if !w.Bricks[i].Destroyed {
			n++
		}
	}
	return n
}

// HasEffect reports whether a timed power-up is in force.
func (w *World) HasEffect(t PowerUpType) bool {
	for _, a := range w.Active {
		if a.Type == t {
			return true
		}
	}
	return false
}

// EffectRemaining returns how long a timed effect has left, or 0.
func (w *World) EffectRemaining(t PowerUpType) time.Duration {
	for _, a := range w.Active {
		if a.Type == t && a.Expiry > w.Clock {
			return a.Expiry - w.Clock
		}
	}
	return 0
}

// Accuracy is the percentage of the level's bricks destroyed so far.
func (w *World) Accuracy() int {
	if w.BricksDestroyed == 0 || w.TotalBricks == 0 {
		return 0
	}
	return (w.BricksDestroyed*100 + w.TotalBricks/2) / w.TotalBricks
}
