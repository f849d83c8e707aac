package session

import (
	"github.com/slingarcade/sling/internal/core"
	"github.com/slingarcade/sling/internal/registry"
)

// Trajectory preview sampling: one dot every few ticks of simulated
// flight, enough to sketch the arc without cluttering the screen.
const (
	previewSteps    = 48
	previewInterval = 4
)

// BirdView is one bird as the renderer sees it.
type BirdView struct {
	Pos      core.Vec2
	Radius   float64
	Type     registry.BirdType
	Launched bool
	Current  bool
}

// BlockView is one block as the renderer sees it.
type BlockView struct {
	Pos         core.Vec2
	W, H        float64
	Material    registry.Material
	State       registry.DamageState
	HealthRatio float64
	Cracks      []core.Vec2
}

// PigView is one pig as the renderer sees it.
type PigView struct {
	Pos         core.Vec2
	Radius      float64
	Boss        bool
	HealthRatio float64
}

// ParticleView is one debris particle.
type ParticleView struct {
	Pos   core.Vec2
	Glyph rune
	Color core.Color
}

// Snapshot is a read-only view of the session for one frame of
// drawing. The renderer never touches live entities.
type Snapshot struct {
	Tick        uint64
	Phase       string
	Paused      bool
	Level       int
	LevelName   string
	Score       int
	GlobalScore int
	BirdsLeft   int
	PigsLeft    int

	WorldW, WorldH float64
	GroundTop      float64

	SlingAnchor core.Vec2
	SlingLoaded bool
	SlingPos    core.Vec2 // Current bird position while loaded
	Trajectory  []core.Vec2

	Birds     []BirdView
	Blocks    []BlockView
	Pigs      []PigView
	Particles []ParticleView
}

// Snapshot captures the current frame.
func (s *Session) Snapshot() *Snapshot {
	snap := &Snapshot{
		Tick:        s.tick,
		Phase:       s.phase,
		Paused:      s.paused,
		Level:       s.levelNum,
		LevelName:   s.levelName,
		Score:       s.reg.Score(),
		GlobalScore: s.reg.GlobalScore(),
		PigsLeft:    len(s.reg.Pigs()),
		WorldW:      s.cfg.Physics.WorldWidth,
		WorldH:      s.cfg.Physics.WorldHeight,
		GroundTop:   s.cfg.Physics.WorldHeight - s.cfg.Physics.GroundHeight,
		SlingAnchor: s.launcher.Anchor(),
	}

	current := s.launcher.Current()
	for _, bird := range s.reg.Birds() {
		if !bird.Launched {
			snap.BirdsLeft++
		}
		snap.Birds = append(snap.Birds, BirdView{
			Pos:      bird.Body.Pos,
			Radius:   bird.Type.Radius(),
			Type:     bird.Type,
			Launched: bird.Launched,
			Current:  bird == current,
		})
	}
	if current != nil {
		snap.SlingLoaded = true
		snap.SlingPos = current.Body.Pos
	}

	for _, block := range s.reg.Blocks() {
		snap.Blocks = append(snap.Blocks, BlockView{
			Pos:         block.Body.Pos,
			W:           block.Body.HalfW * 2,
			H:           block.Body.HalfH * 2,
			Material:    block.Material,
			State:       block.State,
			HealthRatio: block.Health / block.MaxHealth,
			Cracks:      block.Cracks,
		})
	}

	for _, pig := range s.reg.Pigs() {
		snap.Pigs = append(snap.Pigs, PigView{
			Pos:         pig.Body.Pos,
			Radius:      pig.Body.Radius,
			Boss:        pig.Boss,
			HealthRatio: pig.Health / pig.MaxHealth,
		})
	}

	for _, p := range s.reg.Particles() {
		snap.Particles = append(snap.Particles, ParticleView{Pos: p.Pos, Glyph: p.Glyph, Color: p.Color})
	}

	if vel, ok := s.launcher.LaunchVelocity(); ok {
		snap.Trajectory = s.previewArc(s.launcher.Current().Body.Pos, vel)
	}

	return snap
}

// previewArc integrates a ballistic arc from the release point for
// the preview dots.
func (s *Session) previewArc(pos, vel core.Vec2) []core.Vec2 {
	points := make([]core.Vec2, 0, previewSteps/previewInterval)
	groundTop := s.cfg.Physics.WorldHeight - s.cfg.Physics.GroundHeight
	for i := 1; i <= previewSteps; i++ {
		vel.Y += s.cfg.Physics.Gravity
		pos = pos.Add(vel)
		if pos.Y >= groundTop {
			break
		}
		if i%previewInterval == 0 {
			points = append(points, pos)
		}
	}
	return points
}

// Hash folds the snapshot into a single value for determinism checks:
// two sessions stepped with the same seed and inputs must hash
// identically on every tick.
func (snap *Snapshot) Hash() uint64 {
	h := snap.Tick
	h = h*31 + uint64(len(snap.Phase))
	h = h*31 + uint64(snap.Level)    //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Score)    //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.PigsLeft) //#nosec G115 -- hash computation

	mix := func(v core.Vec2) {
		h = h*31 + uint64(int64(v.X*16)) //#nosec G115 -- hash computation
		h = h*31 + uint64(int64(v.Y*16)) //#nosec G115 -- hash computation
	}
	for _, b := range snap.Birds {
		mix(b.Pos)
	}
	for _, b := range snap.Blocks {
		mix(b.Pos)
		h = h*31 + uint64(b.State) //#nosec G115 -- hash computation
	}
	for _, p := range snap.Pigs {
		mix(p.Pos)
	}
	return h
}
