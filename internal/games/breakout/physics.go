package breakout

import (
	"math"

	"github.com/vovakirdan/megagame/internal/config"
	"github.com/vovakirdan/megagame/internal/core"
)

// MoveBall advances the ball by frames reference frames and records the
// new position in its trail, evicting the oldest entry past trailLen.
func MoveBall(b *Ball, frames float64, trailLen int) {
	b.X += b.VX * frames
	b.Y += b.VY * frames

	if trailLen <= 0 {
		return
	}
	b.Trail = append(b.Trail, core.Vec{X: b.X, Y: b.Y})
	if over := len(b.Trail) - trailLen; over > 0 {
		b.Trail = append(b.Trail[:0], b.Trail[over:]...)
	}
}

// CheckWallCollision reflects the ball off the left, right and top walls
// and reports whether it has fully passed the bottom edge.
//
// Reflection sets the sign of the velocity component rather than negating
// it, so a ball pushed past a wall cannot oscillate there.
func CheckWallCollision(b *Ball, width, height float64) (lost bool) {
	switch {
	case b.X-b.Radius <= 0:
		b.VX = math.Abs(b.VX)
		b.X = b.Radius
	case b.X+b.Radius >= width:
		b.VX = -math.Abs(b.VX)
		b.X = width - b.Radius
	}

	if b.Y-b.Radius <= 0 {
		b.VY = math.Abs(b.VY)
		b.Y = b.Radius
	}

	return b.Y-b.Radius >= height
}

// ResolvePaddleHit bounces a descending ball off the paddle. The outgoing
// angle depends on where the ball struck: center sends it straight up,
// the edges send it out at MaxHorizontalFactor.
func ResolvePaddleHit(b *Ball, p *Paddle, cfg config.BallConfig) bool {
	if b.VY <= 0 || !core.CircleRectOverlap(b.Circle(), p.Rect()) {
		return false
	}

	hit := 0.0
	if p.Width > 0 {
		hit = core.ClampF((b.X-p.CenterX())/(p.Width/2), -1, 1)
	}

	b.VY = -math.Abs(b.VY)
	b.VX = hit * cfg.MaxHorizontalFactor
	ClampSpeed(b, cfg.MinSpeed, cfg.MaxSpeed)

	// Rest on the paddle top so the next frame does not hit again.
	b.Y = p.Y - b.Radius
	return true
}

// ReflectOffBrick bounces the ball off a brick. The struck face is
// approximated by comparing the center offsets on each axis, then both
// velocity components get a small random nudge.
func ReflectOffBrick(b *Ball, brick *Brick, rng Random, cfg config.BallConfig) {
	c := brick.Rect().Center()
	dx := b.X - c.X
	dy := b.Y - c.Y

	if math.Abs(dx) > math.Abs(dy) {
		b.VX = -b.VX
	} else {
		b.VY = -b.VY
	}

	b.VX += centered(rng, cfg.Jitter)
	b.VY += centered(rng, cfg.Jitter)
	ClampSpeed(b, cfg.MinSpeed, cfg.MaxSpeed)
}

// ClampSpeed rescales the velocity so its magnitude lies in [min, max].
// A zero velocity becomes straight up at min.
func ClampSpeed(b *Ball, min, max float64) {
	speed := math.Hypot(b.VX, b.VY)
	switch {
	case speed == 0:
		b.VX, b.VY = 0, -min
	case speed < min:
		k := min / speed
		b.VX *= k
		b.VY *= k
	case speed > max:
		k := max / speed
		b.VX *= k
		b.VY *= k
	}
}

// Speed returns the magnitude of the ball's velocity.
func Speed(b *Ball) float64 {
	return math.Hypot(b.VX, b.VY)
}
