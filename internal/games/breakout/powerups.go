package breakout

import (
	"math"
	"time"

	"github.com/vovakirdan/megagame/internal/config"
	"github.com/vovakirdan/megagame/internal/core"
)

// rollDrop decides whether a destroyed brick drops a pickup.
// The type is picked uniformly; the per-type chance in the config is
// display data only.
func (e *Engine) rollDrop(at core.Vec) (PowerUp, bool) {
	cfg := e.cfg.PowerUps
	if e.rng.Float64() >= cfg.DropChance {
		return PowerUp{}, false
	}

	t := PowerUpType(e.rng.Intn(int(powerUpTypeCount)))
	spec := e.typeSpec(t)
	return PowerUp{
		ID:       e.newID(),
		Type:     t,
		X:        at.X,
		Y:        at.Y,
		VY:       cfg.FallSpeed,
		Width:    cfg.Size,
		Height:   cfg.Size,
		Color:    spec.Color,
		Icon:     spec.Icon,
		Duration: spec.Duration,
	}, true
}

func (e *Engine) typeSpec(t PowerUpType) config.PowerUpTypeSpec {
	return e.cfg.PowerUps.Types[t.Key()]
}

// updatePowerUps lets pickups fall, collects the ones touching the paddle
// and silently drops the ones that left the field.
func (e *Engine) updatePowerUps(frames float64) []Event {
	w := &e.world
	paddle := w.Paddle.Rect()

	var collected []int
	kept := w.PowerUps[:0]
	for _, p := range w.PowerUps {
		p.Y += p.VY * frames
		switch {
		case p.Rect().Intersects(paddle):
			collected = append(collected, p.ID)
			kept = append(kept, p)
		case p.Y-p.Height/2 > w.Height:
		default:
			kept = append(kept, p)
		}
	}
	w.PowerUps = kept

	var events []Event
	for _, id := range collected {
		events = append(events, e.collect(id)...)
	}
	return events
}

// collect removes a pickup and applies its effect. Unknown ids are ignored.
func (e *Engine) collect(id int) []Event {
	w := &e.world
	idx := -1
	for i := range w.PowerUps {
		if w.PowerUps[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil
	}

	p := w.PowerUps[idx]
	w.PowerUps = append(w.PowerUps[:idx], w.PowerUps[idx+1:]...)
	w.PowerUpsCollected++
	w.Score += e.cfg.PowerUps.CollectBonus

	switch p.Type {
	case PowerUpMultiBall:
		e.splitBalls()
	case PowerUpExtraLife:
		w.Lives++
	default:
		e.activate(p.Type, p.Duration)
	}
	return []Event{{Kind: EventPowerUpCollected, ID: p.ID, PowerUp: p.Type}}
}

// activate starts a timed effect or pushes back the expiry of a running one.
func (e *Engine) activate(t PowerUpType, d time.Duration) {
	w := &e.world
	expiry := w.Clock + d
	for i := range w.Active {
		if w.Active[i].Type == t {
			w.Active[i].Expiry = max(w.Active[i].Expiry, expiry)
			return
		}
	}
	w.Active = append(w.Active, ActivePowerUp{Type: t, Expiry: expiry})
}

// splitBalls gives every ball in play MultiBallCopies siblings heading
// upward at random angles. Uncapped, the ball count triples per pickup
// (1, 3, 9, 27...); MaxBalls stops the split once the set is full.
func (e *Engine) splitBalls() {
	w := &e.world
	cfg := e.cfg
	n := len(w.Balls)
	for i := 0; i < n; i++ {
		src := w.Balls[i]
		for range cfg.PowerUps.MultiBallCopies {
			if cfg.PowerUps.MaxBalls > 0 && len(w.Balls) >= cfg.PowerUps.MaxBalls {
				return
			}
			nb := src.clone()
			nb.ID = e.newID()
			nb.VX = centered(e.rng, cfg.PowerUps.MultiBallSpread)
			nb.VY = -math.Abs(src.VY)
			if nb.VY == 0 {
				nb.VY = -e.launchSpeed()
			}
			ClampSpeed(&nb, cfg.Ball.MinSpeed, cfg.Ball.MaxSpeed)
			w.Balls = append(w.Balls, nb)
		}
	}
}

// expireEffects drops timed effects whose expiry has been reached.
func (e *Engine) expireEffects() []Event {
	w := &e.world
	var events []Event
	kept := w.Active[:0]
	for _, a := range w.Active {
		if a.Expiry <= w.Clock {
			events = append(events, Event{Kind: EventPowerUpExpired, PowerUp: a.Type})
			continue
		}
		kept = append(kept, a)
	}
	w.Active = kept
	return events
}

// applyPaddleWidth derives the paddle width from BaseWidth and the active
// effects, keeping the paddle centered where it was.
func (e *Engine) applyPaddleWidth() {
	w := &e.world
	p := &w.Paddle

	width := p.BaseWidth
	if w.HasEffect(PowerUpWidePaddle) {
		width = p.BaseWidth * e.cfg.PowerUps.WidePaddleMultiplier
	}
	if width == p.Width {
		return
	}

	center := p.CenterX()
	p.Width = width
	p.X = clampPaddleX(center-width/2, width, w.Width)
}
