package physics

import "github.com/slingarcade/sling/internal/core"

// Contact records a contact pair that began during the last Step.
// ImpactSpeed is the magnitude of the relative velocity of the two
// bodies at the moment of first overlap, before impulse resolution.
type Contact struct {
	A, B        *Body
	Normal      core.Vec2 // From A toward B
	ImpactSpeed float64
}

// Spring is a world-space constraint pulling a body toward an anchor
// point, with linear stiffness and velocity damping.
type Spring struct {
	Body       *Body
	Anchor     core.Vec2
	RestLength float64
	Stiffness  float64
	Damping    float64
}

// pairKey identifies an unordered body pair for contact bookkeeping.
type pairKey struct {
	lo, hi BodyID
}

func makePairKey(a, b BodyID) pairKey {
	if a > b {
		a, b = b, a
	}
	return pairKey{lo: a, hi: b}
}

// Solver tuning. Iterations trade stacking stability for CPU; the
// correction slop keeps resting contacts from jittering.
const (
	solverIterations   = 4
	correctionPercent  = 0.4
	correctionSlop     = 0.05
	linearDampingPerDt = 0.002
)

// World owns all bodies and constraints and advances them in lockstep.
// It is not safe for concurrent use; the game loop is single threaded.
type World struct {
	Gravity core.Vec2

	bodies  []*Body
	index   map[BodyID]*Body
	springs []*Spring
	nextID  BodyID

	prevPairs map[pairKey]struct{}
	contacts  []Contact
}

// NewWorld creates an empty world with the given gravity, expressed in
// world units per tick squared.
func NewWorld(gravity core.Vec2) *World {
	return &World{
		Gravity:   gravity,
		index:     make(map[BodyID]*Body),
		prevPairs: make(map[pairKey]struct{}),
		nextID:    1,
	}
}

// AddCircle creates and inserts a circle body centered at pos.
func (w *World) AddCircle(pos core.Vec2, radius, density float64, static bool) *Body {
	b := &Body{
		shape:       ShapeCircle,
		Radius:      radius,
		Pos:         pos,
		Restitution: 0.3,
		Friction:    0.4,
		mass:        circleMass(radius, density),
	}
	w.insert(b, static)
	return b
}

// AddBox creates and inserts a box body centered at pos.
func (w *World) AddBox(pos core.Vec2, width, height, density float64, static bool) *Body {
	b := &Body{
		shape:       ShapeBox,
		HalfW:       width / 2,
		HalfH:       height / 2,
		Pos:         pos,
		Restitution: 0.1,
		Friction:    0.5,
		mass:        boxMass(width, height, density),
	}
	w.insert(b, static)
	return b
}

func (w *World) insert(b *Body, static bool) {
	b.id = w.nextID
	w.nextID++
	if b.mass <= 0 {
		b.mass = 1
	}
	b.SetStatic(static)
	w.bodies = append(w.bodies, b)
	w.index[b.id] = b
}

// Body looks up a body by ID.
func (w *World) Body(id BodyID) (*Body, bool) {
	b, ok := w.index[id]
	return b, ok
}

// Bodies returns the live bodies in insertion order. The slice is
// owned by the world; callers must not mutate it.
func (w *World) Bodies() []*Body {
	return w.bodies
}

// RemoveBody removes a body and any spring attached to it. Removing a
// body that is not in the world is a no-op: destruction handlers may
// race within a single resolution batch.
func (w *World) RemoveBody(b *Body) {
	if b == nil {
		return
	}
	if _, ok := w.index[b.id]; !ok {
		return
	}
	delete(w.index, b.id)
	for i, other := range w.bodies {
		if other == b {
			w.bodies = append(w.bodies[:i], w.bodies[i+1:]...)
			break
		}
	}
	for i := 0; i < len(w.springs); {
		if w.springs[i].Body == b {
			w.springs = append(w.springs[:i], w.springs[i+1:]...)
		} else {
			i++
		}
	}
}

// AddSpring attaches a spring constraint to the world.
func (w *World) AddSpring(s *Spring) {
	w.springs = append(w.springs, s)
}

// RemoveSpring detaches a spring constraint. Unknown springs are
// ignored.
func (w *World) RemoveSpring(s *Spring) {
	for i, other := range w.springs {
		if other == s {
			w.springs = append(w.springs[:i], w.springs[i+1:]...)
			return
		}
	}
}

// Clear removes every body, spring and pending contact. Used by the
// structure builder when rebuilding a level.
func (w *World) Clear() {
	w.bodies = w.bodies[:0]
	w.springs = w.springs[:0]
	w.index = make(map[BodyID]*Body)
	w.prevPairs = make(map[pairKey]struct{})
	w.contacts = w.contacts[:0]
}

// Contacts returns the contact pairs that began during the last Step.
// The slice is reused between steps; callers must not retain it.
func (w *World) Contacts() []Contact {
	return w.contacts
}

// Step advances the simulation by dt ticks: springs, gravity
// integration, then iterative contact resolution. Contact-began events
// are collected on the first detection pass.
func (w *World) Step(dt float64) {
	w.applySprings(dt)
	w.integrate(dt)
	w.resolveContacts()
}

func (w *World) applySprings(dt float64) {
	for _, s := range w.springs {
		b := s.Body
		if b.static || b.invMass == 0 {
			continue
		}
		delta := s.Anchor.Sub(b.Pos)
		dist := delta.Length()
		if dist == 0 {
			continue
		}
		dir := delta.Scale(1 / dist)
		force := dir.Scale((dist - s.RestLength) * s.Stiffness)
		force = force.Sub(b.Vel.Scale(s.Damping))
		b.Vel = b.Vel.Add(force.Scale(b.invMass * dt))
	}
}

func (w *World) integrate(dt float64) {
	damping := 1 - linearDampingPerDt*dt
	for _, b := range w.bodies {
		if b.static {
			continue
		}
		b.Vel = b.Vel.Add(w.Gravity.Scale(dt)).Scale(damping)
		b.Pos = b.Pos.Add(b.Vel.Scale(dt))
		b.Angle += b.AngVel * dt
	}
}

func (w *World) resolveContacts() {
	w.contacts = w.contacts[:0]
	current := make(map[pairKey]struct{})

	for iter := 0; iter < solverIterations; iter++ {
		recording := iter == 0
		for i := 0; i < len(w.bodies); i++ {
			for j := i + 1; j < len(w.bodies); j++ {
				a, b := w.bodies[i], w.bodies[j]
				if a.static && b.static {
					continue
				}
				if a.Group != 0 && a.Group == b.Group {
					continue
				}

				normal, penetration, hit := collide(a, b)
				if !hit {
					continue
				}

				if recording {
					key := makePairKey(a.id, b.id)
					if _, seen := current[key]; !seen {
						current[key] = struct{}{}
						if _, old := w.prevPairs[key]; !old {
							w.contacts = append(w.contacts, Contact{
								A:           a,
								B:           b,
								Normal:      normal,
								ImpactSpeed: b.Vel.Sub(a.Vel).Length(),
							})
						}
					}
				}

				resolvePair(a, b, normal, penetration)
			}
		}
	}

	w.prevPairs = current
}
