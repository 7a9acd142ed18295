// Package config provides YAML-based configuration loading and speed
// presets for the cuboid puzzle.
package config

import (
	"errors"
	"fmt"
)

// ErrInvalid wraps every configuration validation failure.
var ErrInvalid = errors.New("config: invalid")

// CuboidConfig contains all configuration for the cuboid game.
type CuboidConfig struct {
	Physics CuboidPhysics `yaml:"physics"`
	Session CuboidSession `yaml:"session"`
	Levels  CuboidLevels  `yaml:"levels"`
	Audio   CuboidAudio   `yaml:"audio"`
}

// CuboidPhysics defines tip and fall parameters.
type CuboidPhysics struct {
	SpeedDeg  float64 `yaml:"speed_deg"`  // tip rate in degrees per tick
	FallStep  float64 `yaml:"fall_step"`  // height lost per tick while falling
	FallFloor float64 `yaml:"fall_floor"` // height at which a fall ends
}

// CuboidSession defines where a campaign starts.
type CuboidSession struct {
	StartLevel int `yaml:"start_level"` // 1-indexed
}

// CuboidLevels points at a directory of level files. Empty means the
// built-in campaign.
type CuboidLevels struct {
	Dir string `yaml:"dir"`
}

// CuboidAudio configures the sound cues.
type CuboidAudio struct {
	Enabled bool    `yaml:"enabled"`
	Volume  float64 `yaml:"volume"` // 0.0 to 1.0
}

// Validate checks the values a game cannot run with.
func (c CuboidConfig) Validate() error {
	if c.Physics.SpeedDeg <= 0 || c.Physics.SpeedDeg > 90 {
		return fmt.Errorf("%w: physics.speed_deg %v must be in (0, 90]", ErrInvalid, c.Physics.SpeedDeg)
	}
	if c.Physics.FallStep <= 0 {
		return fmt.Errorf("%w: physics.fall_step %v must be positive", ErrInvalid, c.Physics.FallStep)
	}
	if c.Physics.FallFloor >= 0 {
		return fmt.Errorf("%w: physics.fall_floor %v must be below the floor", ErrInvalid, c.Physics.FallFloor)
	}
	if c.Session.StartLevel < 1 {
		return fmt.Errorf("%w: session.start_level %d must be at least 1", ErrInvalid, c.Session.StartLevel)
	}
	if c.Audio.Volume < 0 || c.Audio.Volume > 1 {
		return fmt.Errorf("%w: audio.volume %v must be in [0, 1]", ErrInvalid, c.Audio.Volume)
	}
	return nil
}

// SpeedPreset represents a named tip speed.
type SpeedPreset string

const (
	SpeedSlow    SpeedPreset = "slow"
	SpeedNormal  SpeedPreset = "normal"
	SpeedFast    SpeedPreset = "fast"
	SpeedInstant SpeedPreset = "instant"
)

// SpeedPresets lists the presets in increasing speed.
var SpeedPresets = []SpeedPreset{SpeedSlow, SpeedNormal, SpeedFast, SpeedInstant}

// SpeedForPreset returns the tip rate in degrees per tick for a preset.
// Every rate divides 90 so a tip ends exactly on its limit.
func SpeedForPreset(preset SpeedPreset) float64 {
	switch preset {
	case SpeedSlow:
		return 5
	case SpeedFast:
		return 15
	case SpeedInstant:
		return 90
	default:
		return 10
	}
}

// ParseSpeedPreset converts a flag value to a preset.
func ParseSpeedPreset(s string) (SpeedPreset, error) {
	for _, p := range SpeedPresets {
		if string(p) == s {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: unknown speed %q (slow, normal, fast, instant)", ErrInvalid, s)
}

// ApplySpeedPreset modifies the config based on a speed preset.
func ApplySpeedPreset(cfg *CuboidConfig, preset SpeedPreset) {
	if preset == "" {
		return
	}
	cfg.Physics.SpeedDeg = SpeedForPreset(preset)
}
