// Package physics implements the 2D rigid body world backing the
// simulation: static and dynamic circle and box bodies, gravity
// integration, impulse-based contact resolution, contact-began events,
// and world-anchored spring constraints. Gameplay packages treat it as
// an opaque capability; it knows nothing about birds, blocks or pigs.
package physics

import (
	"math"

	"github.com/slingarcade/sling/internal/core"
)

// BodyID uniquely identifies a body within a world. IDs are never
// reused for the lifetime of the world.
type BodyID uint64

// ShapeType selects the collision shape of a body.
type ShapeType int

const (
	ShapeCircle ShapeType = iota
	ShapeBox
)

// Body is a rigid body. Position and velocity are in world units;
// velocity is expressed per simulation tick (the world steps with dt=1).
type Body struct {
	id    BodyID
	shape ShapeType

	// Shape extents: Radius for circles, HalfW/HalfH for boxes.
	Radius       float64
	HalfW, HalfH float64

	Pos core.Vec2
	Vel core.Vec2

	// Angle and angular velocity are integrated but do not participate
	// in collision: shapes stay axis-aligned. Presentation uses them for
	// spin on circles.
	Angle  float64
	AngVel float64

	Restitution float64
	Friction    float64

	// Category is an opaque label set by gameplay code and echoed back
	// on contacts. Bodies sharing a nonzero Group never collide with
	// each other.
	Category uint8
	Group    int

	// UserData is an opaque gameplay back-pointer.
	UserData any

	mass    float64
	invMass float64
	static  bool
}

// ID returns the body's unique identifier.
func (b *Body) ID() BodyID {
	return b.id
}

// Shape returns the body's shape type.
func (b *Body) Shape() ShapeType {
	return b.shape
}

// Mass returns the body's mass. Static bodies report their nominal
// mass even though they never accelerate.
func (b *Body) Mass() float64 {
	return b.mass
}

// Static reports whether the body is immovable.
func (b *Body) Static() bool {
	return b.static
}

// SetStatic switches the body between static and dynamic. Turning a
// body dynamic restores its inverse mass so impulses apply again.
func (b *Body) SetStatic(static bool) {
	b.static = static
	if static {
		b.invMass = 0
		b.Vel = core.Vec2{}
		b.AngVel = 0
	} else if b.mass > 0 {
		b.invMass = 1 / b.mass
	}
}

// bounds returns the body's axis-aligned bounding box.
func (b *Body) bounds() core.Rect {
	if b.shape == ShapeCircle {
		return core.NewRect(b.Pos.X-b.Radius, b.Pos.Y-b.Radius, 2*b.Radius, 2*b.Radius)
	}
	return core.NewRect(b.Pos.X-b.HalfW, b.Pos.Y-b.HalfH, 2*b.HalfW, 2*b.HalfH)
}

func circleMass(radius, density float64) float64 {
	return density * math.Pi * radius * radius
}

func boxMass(w, h, density float64) float64 {
	return density * w * h
}
