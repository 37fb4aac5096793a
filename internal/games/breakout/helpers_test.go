package breakout

import (
	"time"

	"github.com/vovakirdan/megagame/internal/config"
)

// frame is one reference frame of wall time.
const frame = time.Second / ReferenceRate

// constRNG returns the same values forever. With f = 0.5 every centered
// perturbation is zero and no power-up drops at the default 20% chance.
type constRNG struct {
	f float64
	n int
}

func (r constRNG) Float64() float64 { return r.f }
func (r constRNG) Intn(int) int     { return r.n }

// memStore is an in-memory HighScoreStore with optional failures.
type memStore struct {
	values map[string]int
	sets   int
	err    error
}

func newMemStore() *memStore {
	return &memStore{values: make(map[string]int)}
}

func (s *memStore) Get(key string) (int, bool, error) {
	if s.err != nil {
		return 0, false, s.err
	}
	v, ok := s.values[key]
	return v, ok, nil
}

func (s *memStore) Set(key string, v int) error {
	if s.err != nil {
		return s.err
	}
	s.sets++
	s.values[key] = v
	return nil
}

// newTestEngine builds an engine on the default config with a quiet,
// zero-jitter random source.
func newTestEngine(opts ...Option) *Engine {
	opts = append([]Option{WithRandom(constRNG{f: 0.5})}, opts...)
	return NewEngine(config.DefaultBreakoutConfig(), opts...)
}

// startedEngine returns an engine already in the active phase.
func startedEngine(opts ...Option) *Engine {
	e := newTestEngine(opts...)
	e.Apply(StartGame{})
	return e
}

// brickAt returns the id of the brick in the default grid.
func brickAt(row, col int) int {
	return row*10 + col
}

func hasEvent(events []Event, kind EventKind) bool {
	for _, ev := range events {
		if ev.Kind == kind {
			return true
		}
	}
	return false
}
