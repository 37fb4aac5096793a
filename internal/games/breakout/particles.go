package breakout

import (
	"time"

	"github.com/vovakirdan/megagame/internal/core"
)

// burst spawns the debris of a destroyed brick at its center.
func (e *Engine) burst(at core.Vec, color string) {
	cfg := e.cfg.Particles
	w := &e.world
	for range cfg.Count {
		w.Particles = append(w.Particles, Particle{
			ID:    e.newID(),
			X:     at.X,
			Y:     at.Y,
			VX:    centered(e.rng, cfg.Speed),
			VY:    centered(e.rng, cfg.Speed),
			Life:  1,
			Color: color,
			Size:  cfg.MinSize + e.rng.Float64()*(cfg.MaxSize-cfg.MinSize),
		})
	}
}

// updateParticles moves particles under gravity and fades them linearly
// over the configured lifetime, pruning the dead ones.
func (e *Engine) updateParticles(dt time.Duration, frames float64) {
	cfg := e.cfg.Particles
	w := &e.world

	decay := 1.0
	if cfg.Lifetime > 0 {
		decay = float64(dt) / float64(cfg.Lifetime)
	}

	alive := w.Particles[:0]
	for _, p := range w.Particles {
		p.VY += cfg.Gravity * frames
		p.X += p.VX * frames
		p.Y += p.VY * frames
		p.Life -= decay
		if p.Life > 0 {
			alive = append(alive, p)
		}
	}
	w.Particles = alive
}
