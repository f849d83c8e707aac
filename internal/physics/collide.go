package physics

import (
	"math"

	"github.com/slingarcade/sling/internal/core"
)

// collide tests two bodies for overlap. On hit it returns the contact
// normal pointing from a toward b and the penetration depth.
func collide(a, b *Body) (normal core.Vec2, penetration float64, hit bool) {
	switch {
	case a.shape == ShapeCircle && b.shape == ShapeCircle:
		return collideCircles(a, b)
	case a.shape == ShapeCircle && b.shape == ShapeBox:
		n, p, h := collideCircleBox(a, b)
		return n, p, h
	case a.shape == ShapeBox && b.shape == ShapeCircle:
		n, p, h := collideCircleBox(b, a)
		return n.Scale(-1), p, h
	default:
		return collideBoxes(a, b)
	}
}

func collideCircles(a, b *Body) (core.Vec2, float64, bool) {
	delta := b.Pos.Sub(a.Pos)
	distSq := delta.LengthSq()
	radii := a.Radius + b.Radius
	if distSq >= radii*radii {
		return core.Vec2{}, 0, false
	}

	dist := math.Sqrt(distSq)
	if dist == 0 {
		// Concentric circles: pick an arbitrary separation axis.
		return core.V(0, -1), radii, true
	}
	return delta.Scale(1 / dist), radii - dist, true
}

// collideCircleBox tests circle a against box b; the returned normal
// points from the circle toward the box.
func collideCircleBox(circle, box *Body) (core.Vec2, float64, bool) {
	// Closest point on the box to the circle center.
	closest := core.V(
		core.ClampF(circle.Pos.X, box.Pos.X-box.HalfW, box.Pos.X+box.HalfW),
		core.ClampF(circle.Pos.Y, box.Pos.Y-box.HalfH, box.Pos.Y+box.HalfH),
	)

	delta := closest.Sub(circle.Pos)
	distSq := delta.LengthSq()

	if distSq > circle.Radius*circle.Radius {
		return core.Vec2{}, 0, false
	}

	if distSq > 0 {
		dist := math.Sqrt(distSq)
		return delta.Scale(1 / dist), circle.Radius - dist, true
	}

	// Center is inside the box: push out along the axis of least
	// penetration.
	dx := box.HalfW - math.Abs(circle.Pos.X-box.Pos.X)
	dy := box.HalfH - math.Abs(circle.Pos.Y-box.Pos.Y)
	if dx < dy {
		if circle.Pos.X < box.Pos.X {
			return core.V(1, 0), dx + circle.Radius, true
		}
		return core.V(-1, 0), dx + circle.Radius, true
	}
	if circle.Pos.Y < box.Pos.Y {
		return core.V(0, 1), dy + circle.Radius, true
	}
	return core.V(0, -1), dy + circle.Radius, true
}

func collideBoxes(a, b *Body) (core.Vec2, float64, bool) {
	dx := b.Pos.X - a.Pos.X
	overlapX := a.HalfW + b.HalfW - math.Abs(dx)
	if overlapX <= 0 {
		return core.Vec2{}, 0, false
	}

	dy := b.Pos.Y - a.Pos.Y
	overlapY := a.HalfH + b.HalfH - math.Abs(dy)
	if overlapY <= 0 {
		return core.Vec2{}, 0, false
	}

	// Separate along the axis of least penetration.
	if overlapX < overlapY {
		if dx < 0 {
			return core.V(-1, 0), overlapX, true
		}
		return core.V(1, 0), overlapX, true
	}
	if dy < 0 {
		return core.V(0, -1), overlapY, true
	}
	return core.V(0, 1), overlapY, true
}

// resolvePair applies an impulse along the contact normal, a Coulomb
// friction impulse along the tangent, and positional correction so
// stacked bodies do not sink into each other.
func resolvePair(a, b *Body, normal core.Vec2, penetration float64) {
	invMassSum := a.invMass + b.invMass
	if invMassSum == 0 {
		return
	}

	relVel := b.Vel.Sub(a.Vel)
	velAlongNormal := relVel.Dot(normal)

	if velAlongNormal <= 0 {
		// Restitution of the less bouncy body, like two materials
		// meeting in the real world.
		e := math.Min(a.Restitution, b.Restitution)
		j := -(1 + e) * velAlongNormal / invMassSum
		impulse := normal.Scale(j)
		a.Vel = a.Vel.Sub(impulse.Scale(a.invMass))
		b.Vel = b.Vel.Add(impulse.Scale(b.invMass))

		// Friction along the tangent, clamped by the normal impulse.
		relVel = b.Vel.Sub(a.Vel)
		tangent := relVel.Sub(normal.Scale(relVel.Dot(normal)))
		if tl := tangent.Length(); tl > 1e-9 {
			tangent = tangent.Scale(1 / tl)
			jt := -relVel.Dot(tangent) / invMassSum
			mu := math.Sqrt(a.Friction * b.Friction)
			jt = core.ClampF(jt, -j*mu, j*mu)
			frictionImpulse := tangent.Scale(jt)
			a.Vel = a.Vel.Sub(frictionImpulse.Scale(a.invMass))
			b.Vel = b.Vel.Add(frictionImpulse.Scale(b.invMass))
		}
	}

	// Positional correction.
	depth := penetration - correctionSlop
	if depth > 0 {
		correction := normal.Scale(depth / invMassSum * correctionPercent)
		a.Pos = a.Pos.Sub(correction.Scale(a.invMass))
		b.Pos = b.Pos.Add(correction.Scale(b.invMass))
	}
}
