package breakout

import "fmt"

// EventKind identifies something notable that happened during a command.
type EventKind int

const (
	EventBrickHit EventKind = iota
	EventBrickDestroyed
	EventPowerUpSpawned
	EventPowerUpCollected
	EventPowerUpExpired
	EventBallLost
	EventLifeLost
	EventLevelComplete
	EventGameOver
	EventHighScore
)

// String returns the event name.
func (k EventKind) String() string {
	switch k {
	case EventBrickHit:
		return "brick-hit"
	case EventBrickDestroyed:
		return "brick-destroyed"
	case EventPowerUpSpawned:
		return "powerup-spawned"
	case EventPowerUpCollected:
		return "powerup-collected"
	case EventPowerUpExpired:
		return "powerup-expired"
	case EventBallLost:
		return "ball-lost"
	case EventLifeLost:
		return "life-lost"
	case EventLevelComplete:
		return "level-complete"
	case EventGameOver:
		return "game-over"
	case EventHighScore:
		return "high-score"
	default:
		return "unknown"
	}
}

// Event is emitted by Engine.Apply. Which fields are set depends on Kind:
// ID names the brick, ball or pickup; Value carries points, lives or score.
type Event struct {
	Kind    EventKind
	ID      int
	Value   int
	PowerUp PowerUpType
}

// String formats the event for logs and the platform event list.
func (e Event) String() string {
	switch e.Kind {
	case EventBrickHit, EventBrickDestroyed:
		return fmt.Sprintf("%s #%d +%d", e.Kind, e.ID, e.Value)
	case EventPowerUpSpawned, EventPowerUpCollected, EventPowerUpExpired:
		return fmt.Sprintf("%s %s", e.Kind, e.PowerUp)
	case EventBallLost:
		return fmt.Sprintf("%s #%d", e.Kind, e.ID)
	default:
		return fmt.Sprintf("%s %d", e.Kind, e.Value)
	}
}
