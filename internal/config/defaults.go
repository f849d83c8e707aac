package config

import (
	_ "embed"
)

//go:embed defaults/sling.yaml
var defaultSlingYAML []byte

// DefaultSlingConfig returns the default simulation configuration.
func DefaultSlingConfig() SlingConfig {
	return SlingConfig{
		Physics: PhysicsConfig{
			Gravity:      0.5,
			WorldWidth:   800,
			WorldHeight:  480,
			GroundHeight: 20,
			WallWidth:    10,
		},
		Sling: SlingshotConfig{
			AnchorX:          120,
			AnchorY:          380,
			MaxPull:          150,
			ForwardPull:      40,
			ReleaseThreshold: 12,
			GrabRadiusFactor: 3,
			PowerDivisor:     60,
			PowerCap:         2.5,
			PowerScale:       12,
		},
		Turns: TurnConfig{
			LevelClearDelay: 60,  // 1 second at 60fps
			GameOverGrace:   180, // 3 seconds
			BirdIdleTimeout: 720, // 12 seconds
			ParticleLife:    30,
		},
		Damage: DamageConfig{
			BlockBase:      1.2,
			MinImpactSpeed: 2,
			MinBlockDamage: 1,
			PigSpeedGate:   2,
			BlockSpeedGate: 1,
			BlockWakeSpeed: 1.5,
			BlockBlockLoss: 0.4,
			CrackThreshold: 0.5,
			FallSpeedGate:  6,
			FallDamage:     2,
			HealthScale:    1,
		},
	}
}

// GetDefaultYAML returns the embedded default YAML.
func GetDefaultYAML() []byte {
	return defaultSlingYAML
}
