package breakout

// DefaultHighScoreKey is the key the best score is stored under.
const DefaultHighScoreKey = "breakoutHighScore"

// HighScoreStore persists a single integer per key.
// Get reports ok=false when the key has never been written.
type HighScoreStore interface {
	Get(key string) (value int, ok bool, err error)
	Set(key string, value int) error
}

// loadHighScore reads the stored best score. Failures are logged and
// treated as "no score yet".
func (e *Engine) loadHighScore() int {
	if e.store == nil {
		return 0
	}
	v, ok, err := e.store.Get(e.highScoreKey())
	if err != nil {
		e.logger.Warn("high score read failed", "key", e.highScoreKey(), "err", err)
		return 0
	}
	if !ok {
		return 0
	}
	return v
}

// saveHighScore writes the best score. Failures are logged only.
func (e *Engine) saveHighScore(v int) {
	if e.store == nil {
		return
	}
	if err := e.store.Set(e.highScoreKey(), v); err != nil {
		e.logger.Warn("high score write failed", "key", e.highScoreKey(), "err", err)
	}
}

func (e *Engine) highScoreKey() string {
	if e.cfg.Gameplay.HighScoreKey != "" {
		return e.cfg.Gameplay.HighScoreKey
	}
	return DefaultHighScoreKey
}
