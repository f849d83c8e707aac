// Package registry owns the authoritative collections of game entities
// and maps physics bodies back to their gameplay records. Bird, Block
// and Pig lifetimes are owned here; physics bodies are jointly owned
// with the world, and every removal mirrors both sides so callers never
// observe a dangling reference.
package registry

import (
	"fmt"

	"github.com/slingarcade/sling/internal/physics"
)

// Score values awarded on destruction.
const (
	ScoreBlock = 50
	ScorePig   = 150
	ScoreBoss  = 300
)

// EventSink receives discrete game events. Implementations must not
// block; the core emits and moves on.
type EventSink interface {
	ScoreAwarded(amount int)
	BirdLaunched()
	LevelCompleted()
	GameOver()
}

// NopSink discards all events.
type NopSink struct{}

func (NopSink) ScoreAwarded(int) {}
func (NopSink) BirdLaunched()    {}
func (NopSink) LevelCompleted()  {}
func (NopSink) GameOver()        {}

// Registry is the entity bookkeeper for one game session.
type Registry struct {
	world *physics.World

	birds     []*Bird
	blocks    []*Block
	pigs      []*Pig
	particles []*Particle

	birdByBody  map[physics.BodyID]*Bird
	blockByBody map[physics.BodyID]*Block
	pigByBody   map[physics.BodyID]*Pig

	score       int
	globalScore int

	events EventSink
}

// New creates a registry bound to a physics world. A nil sink is
// replaced with NopSink.
func New(world *physics.World, sink EventSink) *Registry {
	if sink == nil {
		sink = NopSink{}
	}
	return &Registry{
		world:       world,
		birdByBody:  make(map[physics.BodyID]*Bird),
		blockByBody: make(map[physics.BodyID]*Block),
		pigByBody:   make(map[physics.BodyID]*Pig),
		events:      sink,
	}
}

// World returns the physics world this registry mirrors.
func (r *Registry) World() *physics.World {
	return r.world
}

// Events returns the registered event sink.
func (r *Registry) Events() EventSink {
	return r.events
}

// AddBird registers a bird for the given body.
func (r *Registry) AddBird(body *physics.Body, t BirdType) *Bird {
	body.Category = uint8(KindBird)
	bird := &Bird{Body: body, Type: t}
	r.birds = append(r.birds, bird)
	r.birdByBody[body.ID()] = bird
	return bird
}

// AddBlock registers a block for the given body. A non-positive max
// health is a programming error in the level data and fails loudly.
func (r *Registry) AddBlock(body *physics.Body, m Material, maxHealth float64) *Block {
	if maxHealth <= 0 {
		panic(fmt.Sprintf("registry: block max health must be positive, got %f", maxHealth))
	}
	body.Category = uint8(KindBlock)
	block := &Block{
		Body:      body,
		Material:  m,
		Health:    maxHealth,
		MaxHealth: maxHealth,
		State:     StateIntact,
	}
	r.blocks = append(r.blocks, block)
	r.blockByBody[body.ID()] = block
	return block
}

// AddPig registers a pig for the given body. A non-positive max health
// is a programming error in the level data and fails loudly.
func (r *Registry) AddPig(body *physics.Body, maxHealth float64, boss bool) *Pig {
	if maxHealth <= 0 {
		panic(fmt.Sprintf("registry: pig max health must be positive, got %f", maxHealth))
	}
	body.Category = uint8(KindPig)
	pig := &Pig{
		Body:      body,
		Health:    maxHealth,
		MaxHealth: maxHealth,
		Boss:      boss,
		LastY:     body.Pos.Y,
	}
	r.pigs = append(r.pigs, pig)
	r.pigByBody[body.ID()] = pig
	return pig
}

// AddParticle registers a cosmetic particle.
func (r *Registry) AddParticle(p *Particle) {
	r.particles = append(r.particles, p)
}

// Birds returns the live birds in roster order.
func (r *Registry) Birds() []*Bird { return r.birds }

// Blocks returns the live blocks.
func (r *Registry) Blocks() []*Block { return r.blocks }

// Pigs returns the live pigs.
func (r *Registry) Pigs() []*Pig { return r.pigs }

// Particles returns the live particles.
func (r *Registry) Particles() []*Particle { return r.particles }

// BirdForBody resolves a physics body to its bird record.
func (r *Registry) BirdForBody(id physics.BodyID) (*Bird, bool) {
	b, ok := r.birdByBody[id]
	return b, ok
}

// BlockForBody resolves a physics body to its block record.
func (r *Registry) BlockForBody(id physics.BodyID) (*Block, bool) {
	b, ok := r.blockByBody[id]
	return b, ok
}

// PigForBody resolves a physics body to its pig record.
func (r *Registry) PigForBody(id physics.BodyID) (*Pig, bool) {
	p, ok := r.pigByBody[id]
	return p, ok
}

// MakeBlockDynamic converts a static block to dynamic. The transition
// happens at most once per block; repeated calls are no-ops. Returns
// true if the block transitioned on this call.
func (r *Registry) MakeBlockDynamic(b *Block) bool {
	if b.wentDynamic {
		return false
	}
	b.wentDynamic = true
	b.Body.SetStatic(false)
	return true
}

// RemoveBird removes a bird from the registry and its body from the
// world. Removing an unknown bird is a no-op.
func (r *Registry) RemoveBird(b *Bird) {
	if b == nil {
		return
	}
	if _, ok := r.birdByBody[b.Body.ID()]; !ok {
		return
	}
	delete(r.birdByBody, b.Body.ID())
	r.birds = removeFrom(r.birds, b)
	r.world.RemoveBody(b.Body)
}

// RemoveBlock removes a block from the registry and its body from the
// world. Removing an unknown block is a no-op.
func (r *Registry) RemoveBlock(b *Block) {
	if b == nil {
		return
	}
	if _, ok := r.blockByBody[b.Body.ID()]; !ok {
		return
	}
	delete(r.blockByBody, b.Body.ID())
	r.blocks = removeFrom(r.blocks, b)
	r.world.RemoveBody(b.Body)
}

// RemovePig removes a pig from the registry and its body from the
// world. Removing an unknown pig is a no-op.
func (r *Registry) RemovePig(p *Pig) {
	if p == nil {
		return
	}
	if _, ok := r.pigByBody[p.Body.ID()]; !ok {
		return
	}
	delete(r.pigByBody, p.Body.ID())
	r.pigs = removeFrom(r.pigs, p)
	r.world.RemoveBody(p.Body)
}

// RemoveParticle drops a particle. Unknown particles are ignored.
func (r *Registry) RemoveParticle(p *Particle) {
	r.particles = removeFrom(r.particles, p)
}

func removeFrom[T comparable](s []T, v T) []T {
	for i, other := range s {
		if other == v {
			return append(s[:i], s[i+1:]...)
		}
	}
	return s
}

// AwardScore adds points to both the per-level and cumulative scores
// and emits a score event.
func (r *Registry) AwardScore(amount int) {
	r.score += amount
	r.globalScore += amount
	r.events.ScoreAwarded(amount)
}

// Score returns the per-level score.
func (r *Registry) Score() int { return r.score }

// GlobalScore returns the cumulative score.
func (r *Registry) GlobalScore() int { return r.globalScore }

// ResetLevelScore clears the per-level score on level entry or retry.
// The cumulative score is untouched.
func (r *Registry) ResetLevelScore() {
	r.score = 0
}

// ResetAllScores clears both counters. Only the explicit return to the
// menu or a full restart does this.
func (r *Registry) ResetAllScores() {
	r.score = 0
	r.globalScore = 0
}

// ClearEntities drops every entity record. The caller is responsible
// for clearing the physics world; the structure builder does both.
func (r *Registry) ClearEntities() {
	r.birds = r.birds[:0]
	r.blocks = r.blocks[:0]
	r.pigs = r.pigs[:0]
	r.particles = r.particles[:0]
	r.birdByBody = make(map[physics.BodyID]*Bird)
	r.blockByBody = make(map[physics.BodyID]*Block)
	r.pigByBody = make(map[physics.BodyID]*Pig)
}
