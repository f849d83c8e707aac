package registry

import (
	"github.com/slingarcade/sling/internal/core"
	"github.com/slingarcade/sling/internal/physics"
)

// EntityKind tags every physics body with its gameplay meaning. The
// collision resolver matches on kinds exhaustively instead of comparing
// label strings.
type EntityKind uint8

const (
	KindNone EntityKind = iota
	KindBird
	KindBlock
	KindPig
	KindGround
	KindWall
	KindPlatform
	KindParticle
)

// String returns a human-readable name for the kind.
func (k EntityKind) String() string {
	switch k {
	case KindBird:
		return "bird"
	case KindBlock:
		return "block"
	case KindPig:
		return "pig"
	case KindGround:
		return "ground"
	case KindWall:
		return "wall"
	case KindPlatform:
		return "platform"
	case KindParticle:
		return "particle"
	default:
		return "none"
	}
}

// Inert reports whether collisions against this kind are ignored by
// the damage resolver. Ground, walls and platforms only bound the
// playable area.
func (k EntityKind) Inert() bool {
	return k == KindGround || k == KindWall || k == KindPlatform
}

// KindOf reads the entity kind stored on a physics body.
func KindOf(b *physics.Body) EntityKind {
	return EntityKind(b.Category)
}

// BirdType determines a projectile's damage modifiers and size.
type BirdType int

const (
	BirdHeavy BirdType = iota
	BirdMedium
	BirdLight
)

// String returns a human-readable name for the bird type.
func (t BirdType) String() string {
	switch t {
	case BirdHeavy:
		return "heavy"
	case BirdMedium:
		return "medium"
	case BirdLight:
		return "light"
	default:
		return "unknown"
	}
}

// BlockModifier is the damage multiplier applied when this bird type
// strikes a block.
func (t BirdType) BlockModifier() float64 {
	switch t {
	case BirdHeavy:
		return 3.0
	case BirdMedium:
		return 1.5
	default:
		return 0.8
	}
}

// PigModifier is the damage multiplier applied when this bird type
// strikes a pig. Deliberately a smaller spread than BlockModifier:
// heavy birds are wrecking balls, not pig hunters.
func (t BirdType) PigModifier() float64 {
	switch t {
	case BirdHeavy:
		return 2.0
	case BirdMedium:
		return 1.5
	default:
		return 1.0
	}
}

// Radius is the bird's physics radius in world units.
func (t BirdType) Radius() float64 {
	switch t {
	case BirdHeavy:
		return 14
	case BirdMedium:
		return 11
	default:
		return 9
	}
}

// Material determines how much impact damage a block absorbs.
type Material int

const (
	MaterialWood Material = iota
	MaterialStone
	MaterialGlass
	MaterialCardboard
	MaterialBamboo
	MaterialThatch
	MaterialClay
)

// String returns the material's yaml/config name.
func (m Material) String() string {
	switch m {
	case MaterialWood:
		return "wood"
	case MaterialStone:
		return "stone"
	case MaterialGlass:
		return "glass"
	case MaterialCardboard:
		return "cardboard"
	case MaterialBamboo:
		return "bamboo"
	case MaterialThatch:
		return "thatch"
	case MaterialClay:
		return "clay"
	default:
		return "unknown"
	}
}

// ParseMaterial converts a layout/config name into a Material.
func ParseMaterial(name string) (Material, bool) {
	switch name {
	case "wood":
		return MaterialWood, true
	case "stone":
		return MaterialStone, true
	case "glass":
		return MaterialGlass, true
	case "cardboard":
		return MaterialCardboard, true
	case "bamboo":
		return MaterialBamboo, true
	case "thatch":
		return MaterialThatch, true
	case "clay":
		return MaterialClay, true
	default:
		return MaterialWood, false
	}
}

// Resistance is the divisor applied to incoming impact damage. Lower
// resistance means the material shatters more easily.
func (m Material) Resistance() float64 {
	switch m {
	case MaterialGlass:
		return 0.1
	case MaterialCardboard:
		return 0.2
	case MaterialThatch:
		return 0.4
	case MaterialBamboo:
		return 0.7
	case MaterialWood:
		return 1.0
	case MaterialClay:
		return 1.5
	case MaterialStone:
		return 2.0
	default:
		return 1.0
	}
}

// DamageState classifies a block's remaining health for presentation
// and scoring. It is a pure function of the health ratio.
type DamageState int

const (
	StateIntact DamageState = iota
	StateCracked
	StateBroken
	StateDestroyed
)

// String returns a human-readable name for the damage state.
func (s DamageState) String() string {
	switch s {
	case StateIntact:
		return "intact"
	case StateCracked:
		return "cracked"
	case StateBroken:
		return "broken"
	default:
		return "destroyed"
	}
}

// DamageStateFor derives the damage state from a health ratio.
func DamageStateFor(health, maxHealth float64) DamageState {
	ratio := health / maxHealth
	switch {
	case ratio > 0.7:
		return StateIntact
	case ratio > 0.4:
		return StateCracked
	case ratio > 0.1:
		return StateBroken
	default:
		return StateDestroyed
	}
}

// Bird is a launchable projectile. One bird at a time rests in the
// sling; launched birds persist until idle collection or rebuild.
type Bird struct {
	Body       *physics.Body
	Type       BirdType
	Launched   bool
	LaunchTick uint64
}

// Block is a destructible structural piece. A block starts static and
// may transition to dynamic exactly once.
type Block struct {
	Body      *physics.Body
	Material  Material
	Health    float64
	MaxHealth float64
	State     DamageState

	// Cracks are cosmetic decal offsets relative to the block center,
	// recorded on heavy hits. They never affect the simulation.
	Cracks []core.Vec2

	wentDynamic bool
}

// IsStatic reports whether the block is still anchored.
func (b *Block) IsStatic() bool {
	return b.Body.Static()
}

// Pig is a defender that must be eliminated to clear a level.
type Pig struct {
	Body      *physics.Body
	Health    float64
	MaxHealth float64
	Boss      bool

	// LastY is the previous-tick vertical position, used by the turn
	// state machine for fall-damage detection.
	LastY float64

	// FallSpeed tracks the peak downward speed of the current drop.
	FallSpeed float64
}

// Particle is a cosmetic debris puff. Particles have no physics body;
// the session integrates and expires them.
type Particle struct {
	Pos   core.Vec2
	Vel   core.Vec2
	Glyph rune
	Color core.Color
	Life  int // Remaining ticks before expiry
}
