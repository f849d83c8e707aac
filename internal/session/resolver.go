package session

import (
	"math/rand"

	"github.com/slingarcade/sling/internal/config"
	"github.com/slingarcade/sling/internal/core"
	"github.com/slingarcade/sling/internal/physics"
	"github.com/slingarcade/sling/internal/registry"
)

// Fixed divisors of the two pig damage formulas: a dynamic block
// crushes with impactSpeed × blockMass / crushMassDivisor, a bird
// pecks with impactSpeed / pigBirdDivisor × pig modifier.
const (
	crushMassDivisor = 8.0
	pigBirdDivisor   = 2.0
)

// Resolver turns newly-began contact pairs into damage, destruction,
// score and cosmetic side effects. Pairs are processed independently:
// an entity destroyed by an earlier pair in the same batch simply
// fails its registry lookup in later pairs and the pair is skipped.
type Resolver struct {
	cfg          config.DamageConfig
	reg          *registry.Registry
	rng          *rand.Rand
	particleLife int
}

// NewResolver creates a resolver. The rng only feeds cosmetic jitter
// and the wake perturbation, never damage amounts.
func NewResolver(cfg config.DamageConfig, reg *registry.Registry, particleLife int, rng *rand.Rand) *Resolver {
	return &Resolver{cfg: cfg, reg: reg, rng: rng, particleLife: particleLife}
}

// Resolve processes one physics step's began-contacts.
func (r *Resolver) Resolve(contacts []physics.Contact) {
	for _, c := range contacts {
		r.resolvePair(c)
	}
}

func (r *Resolver) resolvePair(c physics.Contact) {
	ka, kb := registry.KindOf(c.A), registry.KindOf(c.B)
	if ka.Inert() || kb.Inert() || ka == registry.KindNone || kb == registry.KindNone {
		return
	}

	switch {
	case ka == registry.KindBird && kb == registry.KindBlock:
		r.birdBlock(c.A, c.B, c.ImpactSpeed)
	case ka == registry.KindBlock && kb == registry.KindBird:
		r.birdBlock(c.B, c.A, c.ImpactSpeed)
	case ka == registry.KindPig && kb == registry.KindBlock:
		r.pigBlock(c.A, c.B, c.ImpactSpeed)
	case ka == registry.KindBlock && kb == registry.KindPig:
		r.pigBlock(c.B, c.A, c.ImpactSpeed)
	case ka == registry.KindPig && kb == registry.KindBird:
		r.pigBird(c.A, c.B, c.ImpactSpeed)
	case ka == registry.KindBird && kb == registry.KindPig:
		r.pigBird(c.B, c.A, c.ImpactSpeed)
	case ka == registry.KindBlock && kb == registry.KindBlock:
		r.blockBlock(c.A, c.B, c.ImpactSpeed)
	}
}

// birdBlock applies projectile impact damage to a block and wakes a
// static block on first hit.
func (r *Resolver) birdBlock(birdBody, blockBody *physics.Body, speed float64) {
	bird, ok := r.reg.BirdForBody(birdBody.ID())
	if !ok {
		return
	}
	block, ok := r.reg.BlockForBody(blockBody.ID())
	if !ok {
		return
	}

	if block.IsStatic() {
		r.wakeBlock(block)
	}

	effective := speed
	if effective < r.cfg.MinImpactSpeed {
		effective = r.cfg.MinImpactSpeed
	}
	damage := effective * r.cfg.BlockBase * bird.Type.BlockModifier() / block.Material.Resistance()
	if damage < r.cfg.MinBlockDamage {
		damage = r.cfg.MinBlockDamage
	}
	r.DamageBlock(block, damage)
}

// pigBlock applies crush damage from a dynamic block landing on a pig.
func (r *Resolver) pigBlock(pigBody, blockBody *physics.Body, speed float64) {
	pig, ok := r.reg.PigForBody(pigBody.ID())
	if !ok {
		return
	}
	block, ok := r.reg.BlockForBody(blockBody.ID())
	if !ok {
		return
	}
	if block.IsStatic() || speed <= r.cfg.PigSpeedGate {
		return
	}
	r.DamagePig(pig, speed*block.Body.Mass()/crushMassDivisor)
}

// pigBird applies direct projectile damage to a pig.
func (r *Resolver) pigBird(pigBody, birdBody *physics.Body, speed float64) {
	pig, ok := r.reg.PigForBody(pigBody.ID())
	if !ok {
		return
	}
	bird, ok := r.reg.BirdForBody(birdBody.ID())
	if !ok {
		return
	}
	if speed <= r.cfg.PigSpeedGate {
		return
	}
	r.DamagePig(pig, speed/pigBirdDivisor*bird.Type.PigModifier())
}

// blockBlock handles structure collapse: colliding blocks grind each
// other down and hard hits shake static blocks loose.
func (r *Resolver) blockBlock(bodyA, bodyB *physics.Body, speed float64) {
	a, okA := r.reg.BlockForBody(bodyA.ID())
	b, okB := r.reg.BlockForBody(bodyB.ID())
	if !okA || !okB {
		return
	}

	if speed > r.cfg.BlockWakeSpeed {
		if a.IsStatic() {
			r.wakeBlock(a)
		}
		if b.IsStatic() {
			r.wakeBlock(b)
		}
	}
	if speed <= r.cfg.BlockSpeedGate {
		return
	}
	loss := speed * r.cfg.BlockBlockLoss
	if !a.IsStatic() {
		r.DamageBlock(a, loss)
	}
	// The first block may have been destroyed above; DamageBlock's
	// lookup tolerance does not apply here, so check b is still live.
	if _, ok := r.reg.BlockForBody(bodyB.ID()); ok && !b.IsStatic() {
		r.DamageBlock(b, loss)
	}
}

// DamageBlock subtracts damage, recomputes the damage state, records
// crack decals on hard hits and destroys the block at zero health.
func (r *Resolver) DamageBlock(block *registry.Block, damage float64) {
	block.Health -= damage
	block.State = registry.DamageStateFor(block.Health, block.MaxHealth)

	if damage > r.cfg.CrackThreshold {
		block.Cracks = append(block.Cracks, core.V(
			(r.rng.Float64()-0.5)*block.Body.HalfW*1.6,
			(r.rng.Float64()-0.5)*block.Body.HalfH*1.6,
		))
	}

	if block.Health <= 0 {
		r.spawnBurst(block.Body.Pos, debrisGlyph(block.Material), debrisColor(block.Material))
		r.reg.RemoveBlock(block)
		r.reg.AwardScore(registry.ScoreBlock)
	}
}

// DamagePig subtracts damage and destroys the pig at zero health.
// Also used by the session's fall damage check.
func (r *Resolver) DamagePig(pig *registry.Pig, damage float64) {
	pig.Health -= damage
	if pig.Health > 0 {
		return
	}
	r.spawnBurst(pig.Body.Pos, '*', core.ColorGreen)
	boss := pig.Boss
	r.reg.RemovePig(pig)
	if boss {
		r.reg.AwardScore(registry.ScoreBoss)
	} else {
		r.reg.AwardScore(registry.ScorePig)
	}
}

// wakeBlock converts a static block to dynamic with a small random
// velocity perturbation so identical stacks do not collapse in
// lockstep. The perturbation is cosmetic-scale and never adds energy
// comparable to an impact.
func (r *Resolver) wakeBlock(block *registry.Block) {
	if !r.reg.MakeBlockDynamic(block) {
		return
	}
	block.Body.Vel = block.Body.Vel.Add(core.V(
		(r.rng.Float64()-0.5)*0.4,
		-r.rng.Float64()*0.2,
	))
}

// spawnBurst emits a small ring of debris particles.
func (r *Resolver) spawnBurst(pos core.Vec2, glyph rune, color core.Color) {
	for i := 0; i < 6; i++ {
		angle := float64(i) / 6.0
		r.reg.AddParticle(&registry.Particle{
			Pos:   pos,
			Vel:   core.V((r.rng.Float64()-0.5)*3, -1-r.rng.Float64()*2).Add(core.V(angle-0.5, 0)),
			Glyph: glyph,
			Color: color,
			Life:  r.particleLife,
		})
	}
}

func debrisGlyph(m registry.Material) rune {
	switch m {
	case registry.MaterialGlass:
		return '°'
	case registry.MaterialStone, registry.MaterialClay:
		return '▪'
	default:
		return '·'
	}
}

func debrisColor(m registry.Material) core.Color {
	switch m {
	case registry.MaterialGlass:
		return core.ColorCyan
	case registry.MaterialStone:
		return core.ColorWhite
	case registry.MaterialClay:
		return core.ColorRed
	default:
		return core.ColorBrown
	}
}
