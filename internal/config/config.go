// Package config provides YAML-based game configuration loading and
// difficulty management for the arcade platform.
package config

import "time"

// BreakoutConfig contains all configuration for the brick-breaker game.
// Distances are playfield units; speeds are units per reference frame (1/60 s).
type BreakoutConfig struct {
	Field      FieldConfig      `yaml:"field"`
	Layout     LayoutConfig     `yaml:"layout"`
	Paddle     PaddleConfig     `yaml:"paddle"`
	Ball       BallConfig       `yaml:"ball"`
	Gameplay   GameplayConfig   `yaml:"gameplay"`
	PowerUps   PowerUpsConfig   `yaml:"powerups"`
	Particles  ParticlesConfig  `yaml:"particles"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// FieldConfig defines the logical playfield.
type FieldConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// LayoutConfig defines the brick grid generated for every level.
type LayoutConfig struct {
	Rows            int      `yaml:"rows"`
	Cols            int      `yaml:"cols"`
	BrickWidth      float64  `yaml:"brick_width"`
	BrickHeight     float64  `yaml:"brick_height"`
	Gap             float64  `yaml:"gap"`
	OffsetY         float64  `yaml:"offset_y"`
	PointsPerHealth int      `yaml:"points_per_health"`
	Colors          []string `yaml:"colors"`
}

// PaddleConfig defines the player's paddle.
type PaddleConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	Y      float64 `yaml:"y"`
	Speed  float64 `yaml:"speed"` // keyboard movement per reference frame
	Color  string  `yaml:"color"`
}

// BallConfig defines ball dimensions and the speed envelope.
type BallConfig struct {
	Radius              float64 `yaml:"radius"`
	MinSpeed            float64 `yaml:"min_speed"`
	MaxSpeed            float64 `yaml:"max_speed"`
	MaxHorizontalFactor float64 `yaml:"max_horizontal_factor"`
	Jitter              float64 `yaml:"jitter"`        // total width of the per-axis perturbation
	LaunchSpeed         float64 `yaml:"launch_speed"`  // upward speed on launch
	LaunchSpread        float64 `yaml:"launch_spread"` // total width of the horizontal launch range
	TrailLength         int     `yaml:"trail_length"`
}

// GameplayConfig defines lives and scoring.
type GameplayConfig struct {
	Lives        int    `yaml:"lives"`
	HighScoreKey string `yaml:"high_score_key"`
}

// PowerUpsConfig defines drop, fall and effect parameters.
type PowerUpsConfig struct {
	DropChance           float64                    `yaml:"drop_chance"`
	FallSpeed            float64                    `yaml:"fall_speed"`
	Size                 float64                    `yaml:"size"`
	CollectBonus         int                        `yaml:"collect_bonus"`
	MultiBallCopies      int                        `yaml:"multi_ball_copies"`
	MultiBallSpread      float64                    `yaml:"multi_ball_spread"`
	MaxBalls             int                        `yaml:"max_balls"` // 0 means no limit
	WidePaddleMultiplier float64                    `yaml:"wide_paddle_multiplier"`
	SlowBallFactor       float64                    `yaml:"slow_ball_factor"`
	Types                map[string]PowerUpTypeSpec `yaml:"types"`
}

// PowerUpTypeSpec holds per-type presentation and timing.
// Chance is informational: drops pick a type uniformly.
type PowerUpTypeSpec struct {
	Color       string        `yaml:"color"`
	Icon        string        `yaml:"icon"`
	Duration    time.Duration `yaml:"duration"`
	Description string        `yaml:"description"`
	Chance      float64       `yaml:"chance"`
}

// ParticlesConfig defines the burst spawned by a destroyed brick.
type ParticlesConfig struct {
	Count    int           `yaml:"count"`
	Speed    float64       `yaml:"speed"` // total width of the per-axis velocity range
	MinSize  float64       `yaml:"min_size"`
	MaxSize  float64       `yaml:"max_size"`
	Gravity  float64       `yaml:"gravity"`
	Lifetime time.Duration `yaml:"lifetime"`
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "level", "score", or "none"
	MaxAt int    `yaml:"max_at"` // Level/score at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier float64 `yaml:"speed_multiplier"` // Multiplier added to launch speed at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset maps a CLI string to a preset. Unknown names yield "".
func ParsePreset(s string) DifficultyPreset {
	switch p := DifficultyPreset(s); p {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p
	default:
		return ""
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}
