package session

import (
	"math"
	"math/rand"
	"testing"

	"github.com/slingarcade/sling/internal/config"
	"github.com/slingarcade/sling/internal/core"
	"github.com/slingarcade/sling/internal/physics"
	"github.com/slingarcade/sling/internal/registry"
)

func newTestResolver() (*Resolver, *registry.Registry, *physics.World) {
	cfg := config.DefaultSlingConfig()
	w := physics.NewWorld(core.V(0, cfg.Physics.Gravity))
	reg := registry.New(w, nil)
	r := NewResolver(cfg.Damage, reg, cfg.Turns.ParticleLife, rand.New(rand.NewSource(1)))
	return r, reg, w
}

func contact(a, b *physics.Body, speed float64) physics.Contact {
	return physics.Contact{A: a, B: b, Normal: core.V(1, 0), ImpactSpeed: speed}
}

func TestHeavyBirdShattersGlass(t *testing.T) {
	r, reg, w := newTestResolver()
	bird := reg.AddBird(w.AddCircle(core.V(0, 0), 14, 1, false), registry.BirdHeavy)
	block := reg.AddBlock(w.AddBox(core.V(20, 0), 16, 60, 1, true), registry.MaterialGlass, 50)

	// damage = 10 × 1.2 × 3.0 / 0.1 = 360, far past any block health.
	r.Resolve([]physics.Contact{contact(bird.Body, block.Body, 10)})

	if len(reg.Blocks()) != 0 {
		t.Fatal("glass block should be destroyed")
	}
	if _, ok := w.Body(block.Body.ID()); ok {
		t.Error("destroyed block's body should leave the world")
	}
	if reg.Score() != registry.ScoreBlock {
		t.Errorf("score = %d, expected %d", reg.Score(), registry.ScoreBlock)
	}
	if len(reg.Particles()) == 0 {
		t.Error("destruction should spawn debris")
	}
}

func TestBlockDamageFloor(t *testing.T) {
	r, reg, w := newTestResolver()
	bird := reg.AddBird(w.AddCircle(core.V(0, 0), 9, 1, false), registry.BirdLight)
	block := reg.AddBlock(w.AddBox(core.V(20, 0), 20, 20, 1, true), registry.MaterialStone, 300)

	// max(0.5, 2) × 1.2 × 0.8 / 2.0 = 0.96, floored to 1.0.
	r.Resolve([]physics.Contact{contact(bird.Body, block.Body, 0.5)})

	if got := 300 - block.Health; math.Abs(got-1.0) > 1e-9 {
		t.Errorf("damage = %f, expected floor of 1.0", got)
	}
}

func TestBirdHitWakesStaticBlock(t *testing.T) {
	r, reg, w := newTestResolver()
	bird := reg.AddBird(w.AddCircle(core.V(0, 0), 14, 1, false), registry.BirdMedium)
	block := reg.AddBlock(w.AddBox(core.V(20, 0), 16, 60, 1, true), registry.MaterialStone, 300)

	r.Resolve([]physics.Contact{contact(bird.Body, block.Body, 3)})

	if block.IsStatic() {
		t.Error("hit block should turn dynamic")
	}
	if block.Body.Vel == (core.Vec2{}) {
		t.Error("woken block should carry the wake perturbation")
	}
}

func TestDamageStateTracksHealth(t *testing.T) {
	r, reg, w := newTestResolver()
	block := reg.AddBlock(w.AddBox(core.V(0, 0), 20, 20, 1, false), registry.MaterialWood, 100)

	r.DamageBlock(block, 35)
	if block.State != registry.StateCracked {
		t.Errorf("state = %v after 35 damage, expected cracked", block.State)
	}
	r.DamageBlock(block, 30)
	if block.State != registry.StateBroken {
		t.Errorf("state = %v after 65 damage, expected broken", block.State)
	}
	if len(block.Cracks) != 2 {
		t.Errorf("heavy hits should record cracks, got %d", len(block.Cracks))
	}
}

func TestLightBirdPecksPig(t *testing.T) {
	r, reg, w := newTestResolver()
	bird := reg.AddBird(w.AddCircle(core.V(0, 0), 9, 1, false), registry.BirdLight)
	pig := reg.AddPig(w.AddCircle(core.V(20, 0), 12, 1, false), 7, false)

	// 4 / 2 × 1.0 = 2.0 per hit.
	hit := contact(pig.Body, bird.Body, 4)
	r.Resolve([]physics.Contact{hit})
	if got := 7 - pig.Health; math.Abs(got-2.0) > 1e-9 {
		t.Fatalf("damage = %f, expected 2.0", got)
	}

	// Cumulative hits destroy the pig and award its score.
	r.Resolve([]physics.Contact{hit})
	r.Resolve([]physics.Contact{hit})
	r.Resolve([]physics.Contact{hit})
	if len(reg.Pigs()) != 0 {
		t.Fatal("pig should be destroyed after 8 cumulative damage")
	}
	if reg.Score() != registry.ScorePig {
		t.Errorf("score = %d, expected %d", reg.Score(), registry.ScorePig)
	}
}

func TestBossPigAwardsMore(t *testing.T) {
	r, reg, w := newTestResolver()
	pig := reg.AddPig(w.AddCircle(core.V(0, 0), 16, 1, false), 10, true)

	r.DamagePig(pig, 10)

	if reg.Score() != registry.ScoreBoss {
		t.Errorf("score = %d, expected %d", reg.Score(), registry.ScoreBoss)
	}
}

func TestSlowBirdCannotHurtPig(t *testing.T) {
	r, reg, w := newTestResolver()
	bird := reg.AddBird(w.AddCircle(core.V(0, 0), 14, 1, false), registry.BirdHeavy)
	pig := reg.AddPig(w.AddCircle(core.V(20, 0), 12, 1, false), 100, false)

	r.Resolve([]physics.Contact{contact(pig.Body, bird.Body, 1.5)})

	if pig.Health != 100 {
		t.Error("impacts at or below the speed gate must not damage pigs")
	}
}

func TestBlockCrushesPig(t *testing.T) {
	r, reg, w := newTestResolver()
	block := reg.AddBlock(w.AddBox(core.V(0, 0), 20, 20, 1, false), registry.MaterialStone, 300)
	pig := reg.AddPig(w.AddCircle(core.V(0, 25), 12, 1, false), 1000, false)

	r.Resolve([]physics.Contact{contact(pig.Body, block.Body, 4)})

	want := 4 * block.Body.Mass() / 8
	if got := 1000 - pig.Health; math.Abs(got-want) > 1e-9 {
		t.Errorf("crush damage = %f, expected %f", got, want)
	}
}

func TestStaticBlockCannotCrush(t *testing.T) {
	r, reg, w := newTestResolver()
	block := reg.AddBlock(w.AddBox(core.V(0, 0), 20, 20, 1, true), registry.MaterialStone, 300)
	pig := reg.AddPig(w.AddCircle(core.V(0, 25), 12, 1, false), 100, false)

	r.Resolve([]physics.Contact{contact(pig.Body, block.Body, 5)})

	if pig.Health != 100 {
		t.Error("a still-anchored block must not crush")
	}
}

func TestBlockBlockGrind(t *testing.T) {
	r, reg, w := newTestResolver()
	a := reg.AddBlock(w.AddBox(core.V(0, 0), 20, 20, 1, false), registry.MaterialWood, 100)
	b := reg.AddBlock(w.AddBox(core.V(25, 0), 20, 20, 1, false), registry.MaterialWood, 100)

	// Both dynamic: each loses 5 × 0.4 = 2.
	r.Resolve([]physics.Contact{contact(a.Body, b.Body, 5)})

	if a.Health != 98 || b.Health != 98 {
		t.Errorf("healths = %f/%f, expected 98/98", a.Health, b.Health)
	}
}

func TestBlockBlockWakesStatic(t *testing.T) {
	r, reg, w := newTestResolver()
	a := reg.AddBlock(w.AddBox(core.V(0, 0), 20, 20, 1, false), registry.MaterialWood, 100)
	b := reg.AddBlock(w.AddBox(core.V(25, 0), 20, 20, 1, true), registry.MaterialWood, 100)

	// Below the wake speed the static block holds.
	r.Resolve([]physics.Contact{contact(a.Body, b.Body, 1.2)})
	if !b.IsStatic() {
		t.Fatal("gentle contact should not wake the block")
	}

	r.Resolve([]physics.Contact{contact(a.Body, b.Body, 2)})
	if b.IsStatic() {
		t.Error("hard contact should wake the block")
	}
}

func TestPairsProcessedIndependently(t *testing.T) {
	r, reg, w := newTestResolver()
	bird := reg.AddBird(w.AddCircle(core.V(0, 0), 14, 1, false), registry.BirdHeavy)
	block := reg.AddBlock(w.AddBox(core.V(20, 0), 16, 16, 1, true), registry.MaterialGlass, 10)
	pig := reg.AddPig(w.AddCircle(core.V(40, 0), 12, 1, false), 100, false)

	// The first pair destroys the block; the second pair references the
	// destroyed block and must be skipped without stopping the third.
	r.Resolve([]physics.Contact{
		contact(bird.Body, block.Body, 10),
		contact(pig.Body, block.Body, 10),
		contact(pig.Body, bird.Body, 4),
	})

	if len(reg.Blocks()) != 0 {
		t.Error("block should be destroyed by the first pair")
	}
	if pig.Health != 100-4.0/2*2.0 {
		t.Errorf("third pair should still process, pig health = %f", pig.Health)
	}
}

func TestInertBodiesSkipped(t *testing.T) {
	r, reg, w := newTestResolver()
	bird := reg.AddBird(w.AddCircle(core.V(0, 0), 14, 1, false), registry.BirdHeavy)
	ground := w.AddBox(core.V(0, 30), 100, 20, 1, true)
	ground.Category = uint8(registry.KindGround)

	r.Resolve([]physics.Contact{contact(bird.Body, ground, 20)})

	if reg.Score() != 0 || len(reg.Particles()) != 0 {
		t.Error("ground contacts must produce no gameplay effects")
	}
}
