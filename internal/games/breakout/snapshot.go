package breakout

import (
	"fmt"
	"math"

	"github.com/vmihailenco/msgpack/v5"
)

// EncodeSnapshot serializes a world for remote renderers.
func EncodeSnapshot(w *World) ([]byte, error) {
	data, err := msgpack.Marshal(w)
	if err != nil {
		return nil, fmt.Errorf("breakout: encode snapshot: %w", err)
	}
	return data, nil
}

// DecodeSnapshot is the inverse of EncodeSnapshot.
func DecodeSnapshot(data []byte) (World, error) {
	var w World
	if err := msgpack.Unmarshal(data, &w); err != nil {
		return World{}, fmt.Errorf("breakout: decode snapshot: %w", err)
	}
	return w, nil
}

// Hash returns a simple hash of the world for determinism testing.
// Trails and particles are cosmetic and left out.
func (w *World) Hash() uint64 {
	h := uint64(w.Clock) //#nosec G115 -- hash computation
	mix := func(v uint64) { h = h*31 + v }
	mixInt := func(v int) { mix(uint64(v)) } //#nosec G115 -- hash computation
	mixF := func(v float64) { mix(math.Float64bits(v)) }

	mixInt(w.Score)
	mixInt(w.Lives)
	mixInt(w.Level)
	mixInt(w.Combo)
	mixInt(int(w.Phase))
	mixF(w.Paddle.X)
	mixF(w.Paddle.Width)

	for _, b := range w.Balls {
		mixInt(b.ID)
		mixF(b.X)
		mixF(b.Y)
		mixF(b.VX)
		mixF(b.VY)
	}
	for _, br := range w.Bricks {
		mixInt(br.Health)
	}
	for _, p := range w.PowerUps {
		mixInt(int(p.Type))
		mixF(p.Y)
	}
	for _, a := range w.Active {
		mixInt(int(a.Type))
		mix(uint64(a.Expiry)) //#nosec G115 -- hash computation
	}
	return h
}
