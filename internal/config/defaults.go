package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/breakout.yaml
var defaultBreakoutYAML []byte

// Power-up type keys used in the types table.
const (
	PowerUpMultiBall  = "multi_ball"
	PowerUpWidePaddle = "wide_paddle"
	PowerUpLaser      = "laser"
	PowerUpSlowBall   = "slow_ball"
	PowerUpExtraLife  = "extra_life"
)

// DefaultBrickColors is the row palette of the brick grid.
var DefaultBrickColors = []string{
	"#FF6B6B", "#4ECDC4", "#45B7D1", "#96CEB4", "#FFEAA7", "#DDA0DD", "#98D8C8", "#F7DC6F",
}

// DefaultBreakoutConfig returns the default brick-breaker configuration.
func DefaultBreakoutConfig() BreakoutConfig {
	return BreakoutConfig{
		Field: FieldConfig{Width: 800, Height: 600},
		Layout: LayoutConfig{
			Rows:            5,
			Cols:            10,
			BrickWidth:      70,
			BrickHeight:     20,
			Gap:             5,
			OffsetY:         60,
			PointsPerHealth: 10,
			Colors:          append([]string(nil), DefaultBrickColors...),
		},
		Paddle: PaddleConfig{
			Width:  100,
			Height: 15,
			Y:      550,
			Speed:  8,
			Color:  "#2196F3",
		},
		Ball: BallConfig{
			Radius:              8,
			MinSpeed:            3,
			MaxSpeed:            15,
			MaxHorizontalFactor: 5,
			Jitter:              0.5,
			LaunchSpeed:         8,
			LaunchSpread:        4,
			TrailLength:         10,
		},
		Gameplay: GameplayConfig{
			Lives:        3,
			HighScoreKey: "breakoutHighScore",
		},
		PowerUps: PowerUpsConfig{
			DropChance:           0.2,
			FallSpeed:            2,
			Size:                 30,
			CollectBonus:         50,
			MultiBallCopies:      2,
			MultiBallSpread:      8,
			WidePaddleMultiplier: 1.5,
			SlowBallFactor:       0.6,
			Types: map[string]PowerUpTypeSpec{
				PowerUpMultiBall:  {Color: "#FF6B6B", Icon: "M", Description: "Splits ball into 3", Chance: 0.15},
				PowerUpWidePaddle: {Color: "#4ECDC4", Icon: "W", Duration: 10 * time.Second, Description: "Wider paddle for 10s", Chance: 0.2},
				PowerUpLaser:      {Color: "#FF6B35", Icon: "L", Duration: 8 * time.Second, Description: "Shoot lasers for 8s", Chance: 0.1},
				PowerUpSlowBall:   {Color: "#95E77E", Icon: "S", Duration: 7 * time.Second, Description: "Slows ball for 7s", Chance: 0.25},
				PowerUpExtraLife:  {Color: "#FF1744", Icon: "♥", Description: "Extra life", Chance: 0.05},
			},
		},
		Particles: ParticlesConfig{
			Count:    10,
			Speed:    8,
			MinSize:  2,
			MaxSize:  6,
			Gravity:  0.2,
			Lifetime: time.Second,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "level",
				MaxAt: 10,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier: 0.5,
			},
		},
	}
}

// GetDefaultYAML returns the embedded default YAML for a game.
func GetDefaultYAML(gameID string) []byte {
	switch gameID {
	case "breakout":
		return defaultBreakoutYAML
	default:
		return nil
	}
}
