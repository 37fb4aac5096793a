package breakout

import "math"

// Autopilot plays the game from snapshots: it starts levels, launches
// docked balls and steers the paddle under the most urgent ball. The
// headless simulator and soak tests drive engines with it.
type Autopilot struct {
	// MaxTravel limits how far the paddle center moves per plan, in
	// playfield units. Zero follows the ball exactly.
	MaxTravel float64
}

// Plan returns the commands to apply before the next physics step.
func (a Autopilot) Plan(w *World) []Command {
	switch w.Phase {
	case PhaseNotStarted:
		return []Command{StartGame{}}
	case PhaseLevelComplete:
		return []Command{NextLevel{}, StartGame{}}
	case PhaseActive:
	default:
		return nil
	}

	ball := urgentBall(w)
	if ball == nil {
		return nil
	}

	x := ball.X
	if a.MaxTravel > 0 {
		diff := x - w.Paddle.CenterX()
		if math.Abs(diff) > a.MaxTravel {
			x = w.Paddle.CenterX() + math.Copysign(a.MaxTravel, diff)
		}
	}

	cmds := []Command{MovePaddle{X: x}}
	if ball.Docked() {
		cmds = append(cmds, LaunchBall{})
	}
	return cmds
}

// urgentBall picks the falling ball closest to the paddle, or the lowest
// ball when none is falling.
func urgentBall(w *World) *Ball {
	var best *Ball
	bestFalling := false
	for i := range w.Balls {
		b := &w.Balls[i]
		falling := b.VY > 0
		switch {
		case best == nil:
		case falling && !bestFalling:
		case falling == bestFalling && b.Y > best.Y:
		default:
			continue
		}
		best, bestFalling = b, falling
	}
	return best
}
