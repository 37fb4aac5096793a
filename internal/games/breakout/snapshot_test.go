package breakout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/megagame/internal/config"
)

func TestSnapshotEncodeDecode(t *testing.T) {
	e := NewEngine(config.DefaultBreakoutConfig(), WithSeed(3))
	e.Apply(StartGame{})
	e.Apply(LaunchBall{})
	for range 120 {
		e.Apply(UpdatePhysics{DT: frame})
	}
	w := e.Snapshot()

	data, err := EncodeSnapshot(&w)
	require.NoError(t, err)

	got, err := DecodeSnapshot(data)
	require.NoError(t, err)
	assert.Equal(t, w.Hash(), got.Hash())
	assert.Equal(t, w.Bricks, got.Bricks)
	assert.Equal(t, w.Paddle, got.Paddle)
	assert.Equal(t, w.Phase, got.Phase)
	assert.Equal(t, w.Clock, got.Clock)
}

func TestDecodeSnapshotRejectsGarbage(t *testing.T) {
	_, err := DecodeSnapshot([]byte{0xc1})
	assert.Error(t, err)
}

func TestHashIgnoresCosmetics(t *testing.T) {
	e := startedEngine()
	w := e.Snapshot()
	before := w.Hash()

	w.Particles = append(w.Particles, Particle{X: 1})
	w.Balls[0].Trail = nil
	assert.Equal(t, before, w.Hash())

	w.Score++
	assert.NotEqual(t, before, w.Hash())
}
