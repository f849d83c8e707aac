// Package config provides YAML-based tuning for the sling simulation:
// physics constants, slingshot geometry, turn timing, damage tuning and
// difficulty presets.
package config

// SlingConfig contains all tunable parameters of the simulation.
type SlingConfig struct {
	Physics PhysicsConfig   `yaml:"physics"`
	Sling   SlingshotConfig `yaml:"sling"`
	Turns   TurnConfig      `yaml:"turns"`
	Damage  DamageConfig    `yaml:"damage"`
}

// PhysicsConfig defines world integration parameters. Units are world
// units and ticks (60 ticks per simulated second by default).
type PhysicsConfig struct {
	Gravity      float64 `yaml:"gravity"`       // Downward acceleration per tick²
	WorldWidth   float64 `yaml:"world_width"`   // Playable area width
	WorldHeight  float64 `yaml:"world_height"`  // Playable area height
	GroundHeight float64 `yaml:"ground_height"` // Thickness of the ground slab
	WallWidth    float64 `yaml:"wall_width"`    // Thickness of the side walls
}

// SlingshotConfig defines the launch controller geometry and power
// curve. The launch velocity convention is anchor-minus-position (the
// sling effect): the bird flies back toward and past the anchor.
type SlingshotConfig struct {
	AnchorX          float64 `yaml:"anchor_x"` // Sling anchor, world coordinates
	AnchorY          float64 `yaml:"anchor_y"`
	MaxPull          float64 `yaml:"max_pull"`           // Maximum drag displacement from anchor
	ForwardPull      float64 `yaml:"forward_pull"`       // Tighter clamp ahead of the anchor
	ReleaseThreshold float64 `yaml:"release_threshold"`  // Below this displacement, release snaps back
	GrabRadiusFactor float64 `yaml:"grab_radius_factor"` // Drag capture radius in bird radii
	PowerDivisor     float64 `yaml:"power_divisor"`      // displacement/divisor = power
	PowerCap         float64 `yaml:"power_cap"`          // Upper bound on power
	PowerScale       float64 `yaml:"power_scale"`        // velocity = direction × power × scale
}

// TurnConfig defines the level/turn state machine timing, expressed in
// ticks so all timeout semantics are frame-count comparisons.
type TurnConfig struct {
	LevelClearDelay int `yaml:"level_clear_delay"` // Debounce before confirming a level clear
	GameOverGrace   int `yaml:"game_over_grace"`   // Grace after the last launch before game over
	BirdIdleTimeout int `yaml:"bird_idle_timeout"` // Launched birds older than this are collected
	ParticleLife    int `yaml:"particle_life"`     // Cosmetic particle lifetime
}

// DamageConfig defines the collision resolver tuning.
type DamageConfig struct {
	BlockBase      float64 `yaml:"block_base"`       // Base multiplier for bird→block damage
	MinImpactSpeed float64 `yaml:"min_impact_speed"` // Floor on the speed term of block damage
	MinBlockDamage float64 `yaml:"min_block_damage"` // Floor on bird→block damage
	PigSpeedGate   float64 `yaml:"pig_speed_gate"`   // Minimum impact speed to hurt a pig
	BlockSpeedGate float64 `yaml:"block_speed_gate"` // Minimum impact speed for block↔block damage
	BlockWakeSpeed float64 `yaml:"block_wake_speed"` // Impact speed that wakes a static block
	BlockBlockLoss float64 `yaml:"block_block_loss"` // Health lost per speed unit in block↔block hits
	CrackThreshold float64 `yaml:"crack_threshold"`  // Damage above this records a crack decal
	FallSpeedGate  float64 `yaml:"fall_speed_gate"`  // Pig fall speed that counts as a hard landing
	FallDamage     float64 `yaml:"fall_damage"`      // Damage per speed unit on a hard landing
	HealthScale    float64 `yaml:"health_scale"`     // Difficulty multiplier on max health at build
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy    DifficultyPreset = "easy"
	DifficultyNormal  DifficultyPreset = "normal"
	DifficultyHard    DifficultyPreset = "hard"
	DifficultyClassic DifficultyPreset = "classic"
)

// HealthScaleForPreset returns the structure/pig health multiplier for
// a preset. Classic plays the layouts exactly as authored.
func HealthScaleForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.75
	case DifficultyHard:
		return 1.5
	default:
		return 1.0
	}
}

// ApplyPreset modifies the config based on a difficulty preset.
func ApplyPreset(cfg *SlingConfig, preset DifficultyPreset) {
	cfg.Damage.HealthScale = HealthScaleForPreset(preset)
}
