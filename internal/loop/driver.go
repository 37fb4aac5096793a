// Package loop drives a simulation at a fixed tick rate on an injected
// clock. Each tick reports the wall time elapsed since the previous one,
// so the simulation stays correct when ticks arrive late.
package loop

import (
	"context"
	"time"

	"github.com/jonboulle/clockwork"
)

// DefaultMaxStep caps the elapsed time of a single tick. A process that was
// suspended for seconds resumes with one ordinary step instead of a jump
// that would carry balls through bricks.
const DefaultMaxStep = 100 * time.Millisecond

// StepFunc advances the simulation by dt.
type StepFunc func(dt time.Duration)

// Driver calls a StepFunc at a fixed rate.
// Tick and Run must not be called concurrently.
type Driver struct {
	clock    clockwork.Clock
	interval time.Duration
	maxStep  time.Duration
	step     StepFunc

	last    time.Time
	started bool
}

// Option configures a Driver.
type Option func(*Driver)

// WithClock sets the clock. Tests pass a clockwork.FakeClock.
func WithClock(c clockwork.Clock) Option {
	return func(d *Driver) {
		if c != nil {
			d.clock = c
		}
	}
}

// WithMaxStep overrides DefaultMaxStep. Zero or less disables the cap.
func WithMaxStep(m time.Duration) Option {
	return func(d *Driver) {
		d.maxStep = m
	}
}

// New creates a driver ticking rate times per second.
func New(rate int, step StepFunc, opts ...Option) *Driver {
	if rate <= 0 {
		rate = 60
	}
	d := &Driver{
		clock:    clockwork.NewRealClock(),
		interval: time.Second / time.Duration(rate),
		maxStep:  DefaultMaxStep,
		step:     step,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Interval returns the time between ticks.
func (d *Driver) Interval() time.Duration {
	return d.interval
}

// Tick runs one step covering the time since the previous tick and returns
// that duration. The first tick covers one interval.
func (d *Driver) Tick() time.Duration {
	now := d.clock.Now()
	dt := d.interval
	if d.started {
		dt = now.Sub(d.last)
	}
	d.last = now
	d.started = true

	if dt < 0 {
		dt = 0
	}
	if d.maxStep > 0 && dt > d.maxStep {
		dt = d.maxStep
	}
	d.step(dt)
	return dt
}

// Run ticks until ctx is cancelled and returns ctx.Err().
func (d *Driver) Run(ctx context.Context) error {
	ticker := d.clock.NewTicker(d.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.Chan():
			d.Tick()
		}
	}
}
