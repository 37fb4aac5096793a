package web

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
	"github.com/jonboulle/clockwork"

	"github.com/vovakirdan/megagame/internal/config"
	"github.com/vovakirdan/megagame/internal/games/breakout"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 1024
	sendBufSize    = 16
)

// Server hands every WebSocket connection its own breakout engine.
type Server struct {
	cfg          config.BreakoutConfig
	store        breakout.HighScoreStore
	scores       ScoreRecorder
	logger       *log.Logger
	clock        clockwork.Clock
	tickRate     int
	snapshotRate int
	upgrader     websocket.Upgrader
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the logger.
func WithLogger(l *log.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithHighScoreStore sets where engines keep the high score.
func WithHighScoreStore(hs breakout.HighScoreStore) Option {
	return func(s *Server) { s.store = hs }
}

// WithScoreRecorder records finished games.
func WithScoreRecorder(r ScoreRecorder) Option {
	return func(s *Server) { s.scores = r }
}

// WithClock sets the clock the per-connection loops tick on.
func WithClock(c clockwork.Clock) Option {
	return func(s *Server) {
		if c != nil {
			s.clock = c
		}
	}
}

// WithRates sets the simulation tick rate and the snapshot rate in Hz.
func WithRates(tick, snapshot int) Option {
	return func(s *Server) {
		if tick > 0 {
			s.tickRate = tick
		}
		if snapshot > 0 {
			s.snapshotRate = snapshot
		}
	}
}

// NewServer creates a server for the given configuration.
func NewServer(cfg config.BreakoutConfig, opts ...Option) *Server {
	s := &Server{
		cfg:          cfg,
		logger:       log.New(io.Discard),
		clock:        clockwork.NewRealClock(),
		tickRate:     breakout.ReferenceRate,
		snapshotRate: 30,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler returns the HTTP routes: /ws for play and /healthz.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.ServeWS)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		io.WriteString(w, "ok")
	})
	return mux
}

// ListenAndServe serves on addr until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Starting web server", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("Stopping web server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// ServeWS upgrades the connection and plays one game on it until the
// client goes away.
func (s *Server) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", "err", err)
		return
	}

	logger := s.logger.With("remote", r.RemoteAddr)
	engine := breakout.NewEngine(s.cfg,
		breakout.WithLogger(logger),
		breakout.WithStore(s.store),
	)

	c := &client{
		conn:   conn,
		send:   make(chan []byte, sendBufSize),
		text:   make(chan []byte, sendBufSize),
		logger: logger,
	}
	sess := newSession(engine, c.send, s.scores, logger, s.clock, s.tickRate, s.snapshotRate)
	c.sess = sess

	// The hello goes out before the pumps start so it is always first.
	conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := conn.WriteJSON(Envelope{T: MsgHello, Data: HelloMsg{
		Width:       s.cfg.Field.Width,
		Height:      s.cfg.Field.Height,
		SnapshotHz:  s.snapshotRate,
		Format:      "msgpack",
		Description: "breakout world snapshots",
	}}); err != nil {
		logger.Warn("hello failed", "err", err)
		conn.Close()
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	go c.writePump(ctx)
	go func() {
		if err := sess.run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("session stopped", "err", err)
		}
	}()

	logger.Info("player connected")
	c.readPump()
	cancel()
	logger.Info("player disconnected")
}

// client is the connection side of a session.
type client struct {
	conn   *websocket.Conn
	send   chan []byte // binary snapshots
	text   chan []byte // JSON envelopes
	sess   *session
	logger *log.Logger
}

// readPump decodes commands until the connection fails.
func (c *client) readPump() {
	defer c.conn.Close()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Warn("websocket read failed", "err", err)
			}
			return
		}

		cmd, err := decodeCommand(message)
		if err != nil {
			c.sendJSON(Envelope{T: MsgError, Data: ErrorMsg{Msg: err.Error()}})
			continue
		}
		if !c.sess.enqueue(cmd) {
			c.logger.Debug("command dropped, queue full")
		}
	}
}

// writePump owns all writes to the connection.
func (c *client) writePump(ctx context.Context) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case <-ctx.Done():
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			c.conn.WriteMessage(websocket.CloseMessage, []byte{})
			return

		case message := <-c.text:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case message := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.BinaryMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// sendJSON queues a text message, dropping it if the client is behind.
func (c *client) sendJSON(msg Envelope) {
	data, err := json.Marshal(msg)
	if err != nil {
		c.logger.Error("marshal failed", "err", err)
		return
	}
	select {
	case c.text <- data:
	default:
	}
}
