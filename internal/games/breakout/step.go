package breakout

import (
	"time"

	"github.com/vovakirdan/megagame/internal/core"
)

// step advances an active world by dt. Outside the active phase it does
// nothing, which also freezes every timer while paused.
//
// Order within a frame: balls (integrate, walls, paddle, bricks), level
// clear, lost balls, falling power-ups, particles, effect expiry.
func (e *Engine) step(dt time.Duration) []Event {
	w := &e.world
	if w.Phase != PhaseActive {
		return nil
	}
	if dt < 0 {
		dt = 0
	}
	w.Clock += dt

	frames := dt.Seconds() * ReferenceRate
	ballFrames := frames
	if w.HasEffect(PowerUpSlowBall) {
		ballFrames *= e.cfg.PowerUps.SlowBallFactor
	}

	var events []Event
	var lost []int

	for i := range w.Balls {
		b := &w.Balls[i]
		if b.Docked() {
			dock(b, &w.Paddle)
			continue
		}

		MoveBall(b, ballFrames, e.cfg.Ball.TrailLength)
		if CheckWallCollision(b, w.Width, w.Height) {
			lost = append(lost, b.ID)
			continue
		}
		if ResolvePaddleHit(b, &w.Paddle, e.cfg.Ball) {
			w.Combo = 0
		}
		events = append(events, e.collideBricks(b)...)
	}

	if w.RemainingBricks() == 0 {
		w.Phase = PhaseLevelComplete
		w.LevelHighScore = max(w.LevelHighScore, w.Score)
		e.logger.Info("level complete", "level", w.Level, "score", w.Score)
		return append(events, Event{Kind: EventLevelComplete, Value: w.Level})
	}

	for _, id := range lost {
		events = append(events, e.removeBall(id)...)
	}
	if w.Phase != PhaseActive {
		return events
	}

	events = append(events, e.updatePowerUps(frames)...)
	e.updateParticles(dt, frames)
	events = append(events, e.expireEffects()...)
	e.applyPaddleWidth()

	return events
}

// collideBricks resolves at most one brick per ball per frame: the first
// live brick, in creation order, that the ball overlaps and did not just
// hit. A ball grazing two bricks at once only bounces off the first.
func (e *Engine) collideBricks(b *Ball) []Event {
	w := &e.world
	circle := b.Circle()
	var events []Event

	for i := range w.Bricks {
		br := &w.Bricks[i]
		if br.Destroyed || !core.CircleRectOverlap(circle, br.Rect()) {
			continue
		}
		if b.LastHitBrickID != nil && *b.LastHitBrickID == br.ID {
			continue
		}

		ReflectOffBrick(b, br, e.rng, e.cfg.Ball)
		events = e.hitBrick(br)
		id := br.ID
		b.LastHitBrickID = &id
		break
	}

	if b.LastHitBrickID != nil && !e.touchingAnyBrick(b) {
		b.LastHitBrickID = nil
	}
	return events
}

func (e *Engine) touchingAnyBrick(b *Ball) bool {
	circle := b.Circle()
	for i := range e.world.Bricks {
		br := &e.world.Bricks[i]
		if !br.Destroyed && core.CircleRectOverlap(circle, br.Rect()) {
			return true
		}
	}
	return false
}

// hitBrick takes one point of health. A destroyed brick scores with the
// combo multiplier and bursts; a surviving one scores half its points.
func (e *Engine) hitBrick(br *Brick) []Event {
	w := &e.world
	br.Health--

	if br.Health > 0 {
		pts := br.Points / 2
		w.Score += pts
		return []Event{{Kind: EventBrickHit, ID: br.ID, Value: pts}}
	}

	br.Health = 0
	br.Destroyed = true
	pts := br.Points * (w.Combo + 1)
	w.Score += pts
	w.Combo++
	w.MaxCombo = max(w.MaxCombo, w.Combo)
	w.BricksDestroyed++

	c := br.Rect().Center()
	e.burst(c, br.Color)

	events := []Event{{Kind: EventBrickDestroyed, ID: br.ID, Value: pts}}
	if pu, ok := e.rollDrop(c); ok {
		w.PowerUps = append(w.PowerUps, pu)
		events = append(events, Event{Kind: EventPowerUpSpawned, ID: pu.ID, PowerUp: pu.Type})
	}
	return events
}
