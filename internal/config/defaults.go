package config

import (
	_ "embed"
)

//go:embed defaults/cuboid.yaml
var defaultCuboidYAML []byte

// DefaultCuboidConfig returns the default cuboid configuration.
func DefaultCuboidConfig() CuboidConfig {
	return CuboidConfig{
		Physics: CuboidPhysics{
			SpeedDeg:  10,
			FallStep:  0.1,
			FallFloor: -10,
		},
		Session: CuboidSession{
			StartLevel: 1,
		},
		Audio: CuboidAudio{
			Enabled: true,
			Volume:  0.5,
		},
	}
}
