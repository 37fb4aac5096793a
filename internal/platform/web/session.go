package web

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/jonboulle/clockwork"

	"github.com/vovakirdan/megagame/internal/games/breakout"
	"github.com/vovakirdan/megagame/internal/loop"
)

const cmdBufSize = 64

// ScoreRecorder stores a finished game. storage.Store satisfies it.
type ScoreRecorder interface {
	SaveScore(gameID string, score, level int) (int64, error)
}

// session is one player's game. The engine is only touched from the
// driver goroutine; the connection feeds it through cmds.
type session struct {
	engine   *breakout.Engine
	cmds     chan breakout.Command
	send     chan []byte
	scores   ScoreRecorder
	logger   *log.Logger
	driver   *loop.Driver
	every    int
	ticks    int
	recorded bool
}

func newSession(engine *breakout.Engine, send chan []byte, scores ScoreRecorder,
	logger *log.Logger, clock clockwork.Clock, tickRate, snapshotRate int,
) *session {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	s := &session{
		engine: engine,
		cmds:   make(chan breakout.Command, cmdBufSize),
		send:   send,
		scores: scores,
		logger: logger,
		every:  max(1, tickRate/max(1, snapshotRate)),
	}
	s.driver = loop.New(tickRate, s.step, loop.WithClock(clock))
	return s
}

// enqueue hands a command to the driver goroutine. It reports false when
// the queue is full and the command was dropped.
func (s *session) enqueue(c breakout.Command) bool {
	select {
	case s.cmds <- c:
		return true
	default:
		return false
	}
}

func (s *session) run(ctx context.Context) error {
	s.push()
	return s.driver.Run(ctx)
}

// step applies queued commands in arrival order, then advances physics.
func (s *session) step(dt time.Duration) {
drain:
	for {
		select {
		case c := <-s.cmds:
			s.apply(c)
		default:
			break drain
		}
	}
	s.apply(breakout.UpdatePhysics{DT: dt})

	s.ticks++
	if s.ticks%s.every == 0 {
		s.push()
	}
}

func (s *session) apply(c breakout.Command) {
	s.engine.Apply(c)

	switch s.engine.Phase() {
	case breakout.PhaseGameOver:
		s.record()
	case breakout.PhaseNotStarted:
		s.recorded = false
	}
}

// record saves the final score once per game.
func (s *session) record() {
	if s.recorded {
		return
	}
	s.recorded = true

	w := s.engine.Snapshot()
	if s.scores == nil || w.Score <= 0 {
		return
	}
	if _, err := s.scores.SaveScore("breakout", w.Score, w.Level); err != nil {
		s.logger.Warn("score save failed", "err", err)
	}
}

// push sends a snapshot, dropping it if the client is behind.
func (s *session) push() {
	w := s.engine.Snapshot()
	data, err := breakout.EncodeSnapshot(&w)
	if err != nil {
		s.logger.Error("snapshot encode failed", "err", err)
		return
	}
	select {
	case s.send <- data:
	default:
	}
}
