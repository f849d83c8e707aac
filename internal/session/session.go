// Package session owns one run of the game: the physics world, the
// entity registry, the launch controller, the damage resolver and the
// level/turn state machine, advanced one tick at a time by the
// platform layer. Everything is single-threaded; all mutation happens
// inside Step.
package session

import (
	"math/rand"
	"time"

	"github.com/slingarcade/sling/internal/config"
	"github.com/slingarcade/sling/internal/core"
	"github.com/slingarcade/sling/internal/level"
	"github.com/slingarcade/sling/internal/physics"
	"github.com/slingarcade/sling/internal/registry"
)

// Session phases.
const (
	PhaseMenu          = "menu"
	PhasePlaying       = "playing"
	PhaseLevelComplete = "levelcomplete"
	PhaseGameOver      = "gameover"
	PhaseCompleted     = "completed"
)

// Session is the aggregate game state for one run.
type Session struct {
	cfg      config.SlingConfig
	world    *physics.World
	reg      *registry.Registry
	launcher *Launcher
	resolver *Resolver
	tasks    taskScheduler
	rng      *rand.Rand

	phase      string
	levelNum   int
	levelName  string
	tick       uint64
	generation uint64
	paused     bool

	// allLaunchedAt is the tick on which the last roster bird left the
	// sling; zero while any bird is still waiting.
	allLaunchedAt uint64
	clearPending  bool
}

// New creates a session in the menu phase. A zero seed falls back to
// the wall clock; the seed only drives cosmetic jitter and the block
// wake perturbation, so replays with the same seed and inputs are
// bit-identical.
func New(cfg config.SlingConfig, seed int64, sink registry.EventSink) *Session {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	world := physics.NewWorld(core.V(0, cfg.Physics.Gravity))
	reg := registry.New(world, sink)
	rng := rand.New(rand.NewSource(seed))

	return &Session{
		cfg:      cfg,
		world:    world,
		reg:      reg,
		launcher: NewLauncher(cfg.Sling, reg),
		resolver: NewResolver(cfg.Damage, reg, cfg.Turns.ParticleLife, rng),
		rng:      rng,
		phase:    PhaseMenu,
		levelNum: 1,
	}
}

// Registry exposes the entity registry, mainly for tests and scores.
func (s *Session) Registry() *registry.Registry { return s.reg }

// Launcher exposes the launch controller.
func (s *Session) Launcher() *Launcher { return s.launcher }

// Phase returns the current phase string.
func (s *Session) Phase() string { return s.phase }

// Level returns the current 1-based level number.
func (s *Session) Level() int { return s.levelNum }

// LevelName returns the name of the built layout.
func (s *Session) LevelName() string { return s.levelName }

// Tick returns the session tick counter.
func (s *Session) Tick() uint64 { return s.tick }

// SelectLevel picks the level the next start will build. Only
// meaningful in the menu; out-of-range numbers are ignored.
func (s *Session) SelectLevel(number int) {
	if s.phase == PhaseMenu && number >= 1 && number <= level.Count() {
		s.levelNum = number
	}
}

// StartLevel builds the given level and enters Playing. Unknown level
// numbers fail loudly in the builder.
func (s *Session) StartLevel(number int) {
	s.generation++
	s.tasks.clear()
	s.launcher.Unload()

	s.levelNum = number
	layout := level.Build(s.reg, s.cfg, number)
	s.levelName = layout.Name
	s.reg.ResetLevelScore()

	s.phase = PhasePlaying
	s.paused = false
	s.allLaunchedAt = 0
	s.clearPending = false
	s.loadNextBird()
}

// ToMenu resets the run: level back to 1, both scores cleared, world
// emptied.
func (s *Session) ToMenu() {
	s.generation++
	s.tasks.clear()
	s.launcher.Unload()
	s.world.Clear()
	s.reg.ClearEntities()
	s.reg.ResetAllScores()
	s.levelNum = 1
	s.levelName = ""
	s.phase = PhaseMenu
	s.paused = false
	s.clearPending = false
}

// Step advances the session by one tick.
func (s *Session) Step(input core.InputFrame) core.StepResult {
	s.tick++
	s.handleActions(input)

	if s.phase == PhasePlaying && !s.paused {
		s.handlePointer(input)
		s.world.Step(1)
		s.resolver.Resolve(s.world.Contacts())
		s.launcher.Update()
		s.trackFalls()
		s.autoAdvance()
		s.collectIdleBirds()
		s.updateParticles()
		s.checkLevelClear()
		s.checkGameOver()
	}
	// Deferred tasks obey the pause too: a pending level-clear must
	// not flip the phase while the simulation is frozen.
	if !s.paused {
		s.tasks.run(s.tick, s.generation)
	}

	return core.StepResult{State: s.state()}
}

func (s *Session) state() core.GameState {
	return core.GameState{
		Score:       s.reg.Score(),
		GlobalScore: s.reg.GlobalScore(),
		Level:       s.levelNum,
		Phase:       s.phase,
		GameOver:    s.phase == PhaseGameOver || s.phase == PhaseCompleted,
		Paused:      s.paused,
	}
}

func (s *Session) handleActions(input core.InputFrame) {
	switch {
	case input.Has(core.ActionConfirm):
		switch s.phase {
		case PhaseMenu:
			s.StartLevel(s.levelNum)
		case PhaseLevelComplete:
			s.advanceLevel()
		case PhaseGameOver:
			// Retry keeps the cumulative score; only the menu resets it.
			s.StartLevel(s.levelNum)
		case PhaseCompleted:
			s.ToMenu()
		}
	case input.Has(core.ActionRestart):
		if s.phase == PhasePlaying || s.phase == PhaseGameOver {
			s.StartLevel(s.levelNum)
		}
	case input.Has(core.ActionBack):
		if s.phase != PhaseMenu {
			s.ToMenu()
		}
	case input.Has(core.ActionPause):
		if s.phase == PhasePlaying {
			s.paused = !s.paused
		}
	}
}

func (s *Session) handlePointer(input core.InputFrame) {
	for _, ev := range input.Pointer {
		switch ev.Phase {
		case core.PointerDown:
			s.launcher.PointerDown(ev.Pos)
		case core.PointerMove:
			s.launcher.PointerMove(ev.Pos)
		case core.PointerUp:
			s.launcher.PointerUp(ev.Pos, s.tick)
		}
	}
}

// advanceLevel moves on after a clear; past the final level the run
// reaches the terminal completed state.
func (s *Session) advanceLevel() {
	if s.levelNum >= level.Count() {
		s.phase = PhaseCompleted
		return
	}
	s.StartLevel(s.levelNum + 1)
}

// loadNextBird attaches the first unlaunched roster bird to the sling.
func (s *Session) loadNextBird() {
	for _, bird := range s.reg.Birds() {
		if !bird.Launched {
			s.launcher.Load(bird)
			return
		}
	}
}

// autoAdvance reloads the sling after a launch and notices when the
// roster is exhausted.
func (s *Session) autoAdvance() {
	if cur := s.launcher.Current(); cur != nil && cur.Launched {
		// The bird left the sling (or was force-launched); free the slot.
		s.launcher.Unload()
	}
	if s.launcher.Current() == nil {
		s.loadNextBird()
	}
	if s.launcher.Current() == nil {
		if s.allLaunchedAt == 0 {
			s.allLaunchedAt = s.tick
		}
	} else {
		s.allLaunchedAt = 0
	}
}

// collectIdleBirds garbage-collects launched birds that have sat in
// the world past the idle timeout.
func (s *Session) collectIdleBirds() {
	timeout := uint64(s.cfg.Turns.BirdIdleTimeout)
	birds := append([]*registry.Bird(nil), s.reg.Birds()...)
	for _, bird := range birds {
		if bird.Launched && s.tick-bird.LaunchTick > timeout {
			s.launcher.DropIf(bird)
			s.reg.RemoveBird(bird)
		}
	}
}

// trackFalls applies fall damage: a pig that dropped faster than the
// gate and then stopped within one tick took a hard landing. Speeds
// are derived from the previous-tick position, not the solver
// velocity, so damage matches what is visible on screen.
func (s *Session) trackFalls() {
	pigs := append([]*registry.Pig(nil), s.reg.Pigs()...)
	for _, pig := range pigs {
		dy := pig.Body.Pos.Y - pig.LastY
		pig.LastY = pig.Body.Pos.Y
		if dy > pig.FallSpeed {
			pig.FallSpeed = dy
		}
		if pig.FallSpeed > s.cfg.Damage.FallSpeedGate && dy < 1 {
			peak := pig.FallSpeed
			pig.FallSpeed = 0
			s.resolver.DamagePig(pig, peak*s.cfg.Damage.FallDamage)
		}
	}
}

// updateParticles integrates and expires cosmetic debris.
func (s *Session) updateParticles() {
	particles := append([]*registry.Particle(nil), s.reg.Particles()...)
	for _, p := range particles {
		p.Pos = p.Pos.Add(p.Vel)
		p.Vel.Y += s.cfg.Physics.Gravity * 0.3
		p.Life--
		if p.Life <= 0 {
			s.reg.RemoveParticle(p)
		}
	}
}

// checkLevelClear debounces the win condition: when the pigs run out,
// re-confirm after the clear delay before transitioning, so a pair
// still in flight this step cannot cause a premature clear.
func (s *Session) checkLevelClear() {
	if s.clearPending || len(s.reg.Pigs()) > 0 {
		return
	}
	s.clearPending = true
	s.tasks.schedule(s.tick, s.cfg.Turns.LevelClearDelay, s.generation, func() {
		s.clearPending = false
		if s.phase != PhasePlaying || len(s.reg.Pigs()) > 0 {
			return
		}
		s.phase = PhaseLevelComplete
		s.reg.Events().LevelCompleted()
	})
}

// checkGameOver ends the run once the roster is spent, the grace
// period has elapsed and pigs still stand.
func (s *Session) checkGameOver() {
	if s.allLaunchedAt == 0 || s.clearPending || len(s.reg.Pigs()) == 0 {
		return
	}
	if s.tick-s.allLaunchedAt > uint64(s.cfg.Turns.GameOverGrace) {
		s.phase = PhaseGameOver
		s.reg.Events().GameOver()
	}
}
