package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadBreakout loads brick-breaker configuration.
// Search order: customPath -> ~/.megagame/configs/breakout.yaml -> ./configs/breakout.yaml -> embedded default
//
// Files are decoded over the hardcoded defaults, so a partial file only
// overrides the keys it names.
func LoadBreakout(customPath string) (BreakoutConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return BreakoutConfig{}, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := ParseBreakout(data)
		if err != nil {
			return BreakoutConfig{}, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("breakout.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := ParseBreakout(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", "breakout.yaml")); err == nil {
		if cfg, err := ParseBreakout(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := ParseBreakout(defaultBreakoutYAML)
	if err != nil {
		return DefaultBreakoutConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// ParseBreakout decodes YAML over the defaults and validates the result.
func ParseBreakout(data []byte) (BreakoutConfig, error) {
	cfg := DefaultBreakoutConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate reports every invalid field at once.
func (c BreakoutConfig) Validate() error {
	var errs []error
	if c.Field.Width <= 0 || c.Field.Height <= 0 {
		errs = append(errs, fmt.Errorf("field: dimensions must be positive, got %vx%v", c.Field.Width, c.Field.Height))
	}
	if c.Layout.Rows <= 0 || c.Layout.Cols <= 0 {
		errs = append(errs, fmt.Errorf("layout: rows and cols must be positive, got %dx%d", c.Layout.Rows, c.Layout.Cols))
	}
	if c.Layout.BrickWidth <= 0 || c.Layout.BrickHeight <= 0 {
		errs = append(errs, errors.New("layout: brick dimensions must be positive"))
	}
	if len(c.Layout.Colors) == 0 {
		errs = append(errs, errors.New("layout: at least one color is required"))
	}
	if c.Paddle.Width <= 0 || c.Paddle.Width > c.Field.Width {
		errs = append(errs, fmt.Errorf("paddle: width %v out of range", c.Paddle.Width))
	}
	if c.Ball.Radius <= 0 {
		errs = append(errs, errors.New("ball: radius must be positive"))
	}
	if c.Ball.MinSpeed <= 0 || c.Ball.MaxSpeed < c.Ball.MinSpeed {
		errs = append(errs, fmt.Errorf("ball: speed bounds [%v, %v] invalid", c.Ball.MinSpeed, c.Ball.MaxSpeed))
	}
	if c.Gameplay.Lives <= 0 {
		errs = append(errs, errors.New("gameplay: lives must be positive"))
	}
	if c.PowerUps.DropChance < 0 || c.PowerUps.DropChance > 1 {
		errs = append(errs, fmt.Errorf("powerups: drop_chance %v not in [0, 1]", c.PowerUps.DropChance))
	}
	if c.PowerUps.MaxBalls < 0 {
		errs = append(errs, errors.New("powerups: max_balls must not be negative"))
	}
	if c.Particles.Lifetime <= 0 {
		errs = append(errs, errors.New("particles: lifetime must be positive"))
	}
	return errors.Join(errs...)
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".megagame", "configs", filename)
}

// ApplyBreakoutPreset modifies the config based on a difficulty preset.
func ApplyBreakoutPreset(cfg *BreakoutConfig, preset DifficultyPreset) {
	if preset == "" {
		return
	}
	if IsFixedPreset(preset) {
		cfg.Difficulty.Enabled = false
	} else {
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
	}

	// Adjust gameplay based on difficulty
	switch preset {
	case DifficultyEasy:
		cfg.Gameplay.Lives = 5
		cfg.Paddle.Width = 130
		cfg.Ball.LaunchSpeed = 6
	case DifficultyHard:
		cfg.Gameplay.Lives = 2
		cfg.Paddle.Width = 80
		cfg.Ball.LaunchSpeed = 10
	}
}
