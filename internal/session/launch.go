package session

import (
	"github.com/slingarcade/sling/internal/config"
	"github.com/slingarcade/sling/internal/core"
	"github.com/slingarcade/sling/internal/physics"
	"github.com/slingarcade/sling/internal/registry"
)

// LaunchState is the per-current-bird state of the slingshot.
type LaunchState int

const (
	LaunchEmpty    LaunchState = iota // No bird in the sling
	LaunchResting                     // Bird pinned to the anchor
	LaunchDragging                    // Pointer is pulling the bird
	LaunchFired                       // Bird released, awaiting reload
)

// Sling constraint tuning. Stiff enough to pin the resting bird to the
// anchor within a few ticks, damped enough not to oscillate visibly.
const (
	slingStiffness = 0.4
	slingDamping   = 0.5
)

// Launcher drives the slingshot: it pins the current bird to the
// anchor with a spring, tracks pointer drags, clamps the pull, and
// converts a release into a launch velocity.
//
// Launch velocity convention: velocity points from the bird back
// toward and past the anchor (anchor minus position, normalized), with
// magnitude min(displacement/PowerDivisor, PowerCap) × PowerScale.
type Launcher struct {
	cfg    config.SlingshotConfig
	world  *physics.World
	reg    *registry.Registry
	anchor core.Vec2

	current *registry.Bird
	state   LaunchState
	spring  *physics.Spring
	dragPos core.Vec2
}

// NewLauncher creates a launcher bound to a world and registry.
func NewLauncher(cfg config.SlingshotConfig, reg *registry.Registry) *Launcher {
	return &Launcher{
		cfg:    cfg,
		world:  reg.World(),
		reg:    reg,
		anchor: core.V(cfg.AnchorX, cfg.AnchorY),
	}
}

// Anchor returns the sling anchor point.
func (l *Launcher) Anchor() core.Vec2 { return l.anchor }

// State returns the current launch state.
func (l *Launcher) State() LaunchState { return l.state }

// Current returns the bird in the sling, or nil.
func (l *Launcher) Current() *registry.Bird { return l.current }

// Load places a bird into the sling: the body turns dynamic, snaps to
// the anchor and is pinned there by the spring constraint.
func (l *Launcher) Load(bird *registry.Bird) {
	l.detach()
	l.current = bird
	bird.Body.SetStatic(false)
	bird.Body.Pos = l.anchor
	bird.Body.Vel = core.Vec2{}
	// Constraint strength scales with body mass so every bird type
	// hangs the same fraction of a unit below the anchor.
	m := bird.Body.Mass()
	l.spring = &physics.Spring{
		Body:      bird.Body,
		Anchor:    l.anchor,
		Stiffness: slingStiffness * m,
		Damping:   slingDamping * m,
	}
	l.world.AddSpring(l.spring)
	l.state = LaunchResting
}

// Unload clears the sling without launching. The bird keeps its body.
func (l *Launcher) Unload() {
	l.detach()
	l.current = nil
	l.state = LaunchEmpty
}

// DropIf clears the sling if bird is the current one. The session
// calls this before garbage-collecting launched birds.
func (l *Launcher) DropIf(bird *registry.Bird) {
	if l.current == bird {
		l.Unload()
	}
}

// PointerDown begins a drag when the press lands within the grab
// radius of the resting bird. Presses elsewhere are ignored.
func (l *Launcher) PointerDown(pos core.Vec2) {
	if l.state != LaunchResting || l.current == nil {
		return
	}
	grab := l.cfg.GrabRadiusFactor * l.current.Type.Radius()
	if pos.Dist(l.current.Body.Pos) > grab {
		return
	}
	l.detach()
	l.state = LaunchDragging
	l.dragPos = l.clampPull(pos)
	l.pinDrag()
}

// PointerMove updates the drag position, clamped to the pull limits.
func (l *Launcher) PointerMove(pos core.Vec2) {
	if l.state != LaunchDragging {
		return
	}
	l.dragPos = l.clampPull(pos)
	l.pinDrag()
}

// PointerUp releases the drag. Below the release threshold the bird
// snaps back to resting; otherwise it launches toward the anchor.
func (l *Launcher) PointerUp(pos core.Vec2, now uint64) {
	if l.state != LaunchDragging || l.current == nil {
		return
	}
	l.dragPos = l.clampPull(pos)

	disp := l.dragPos.Sub(l.anchor)
	if disp.Length() < l.cfg.ReleaseThreshold {
		// Non-launch: re-attach the sling.
		l.Load(l.current)
		return
	}

	dir := l.anchor.Sub(l.dragPos).Normalize()
	power := disp.Length() / l.cfg.PowerDivisor
	if power > l.cfg.PowerCap {
		power = l.cfg.PowerCap
	}
	bird := l.current
	bird.Body.Pos = l.dragPos
	bird.Body.Vel = dir.Scale(power * l.cfg.PowerScale)
	bird.Launched = true
	bird.LaunchTick = now

	l.current = nil
	l.state = LaunchEmpty
	l.reg.Events().BirdLaunched()
}

// Update holds the dragged bird against gravity between pointer
// events. The resting bird is held by the spring instead.
func (l *Launcher) Update() {
	if l.state == LaunchDragging {
		l.pinDrag()
	}
}

// clampPull limits the drag displacement: radially to MaxPull, and
// ahead of the anchor to the tighter ForwardPull so the bird cannot
// be pushed into an inverted launch.
func (l *Launcher) clampPull(pos core.Vec2) core.Vec2 {
	d := pos.Sub(l.anchor)
	if length := d.Length(); length > l.cfg.MaxPull {
		d = d.Scale(l.cfg.MaxPull / length)
	}
	if d.X > l.cfg.ForwardPull {
		d.X = l.cfg.ForwardPull
	}
	return l.anchor.Add(d)
}

func (l *Launcher) pinDrag() {
	if l.current == nil {
		return
	}
	l.current.Body.Pos = l.dragPos
	l.current.Body.Vel = core.Vec2{}
}

func (l *Launcher) detach() {
	if l.spring != nil {
		l.world.RemoveSpring(l.spring)
		l.spring = nil
	}
}

// LaunchVelocity previews the velocity a release at the current drag
// position would produce. Only meaningful while dragging; returns
// false otherwise or when the pull is under the release threshold.
func (l *Launcher) LaunchVelocity() (core.Vec2, bool) {
	if l.state != LaunchDragging {
		return core.Vec2{}, false
	}
	disp := l.dragPos.Sub(l.anchor)
	if disp.Length() < l.cfg.ReleaseThreshold {
		return core.Vec2{}, false
	}
	dir := l.anchor.Sub(l.dragPos).Normalize()
	power := disp.Length() / l.cfg.PowerDivisor
	if power > l.cfg.PowerCap {
		power = l.cfg.PowerCap
	}
	return dir.Scale(power * l.cfg.PowerScale), true
}
