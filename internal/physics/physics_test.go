package physics

import (
	"math"
	"testing"

	"github.com/slingarcade/sling/internal/core"
)

func TestGravityIntegration(t *testing.T) {
	w := NewWorld(core.V(0, 0.5))
	b := w.AddCircle(core.V(100, 100), 10, 1, false)

	w.Step(1)

	if b.Vel.Y <= 0 {
		t.Errorf("dynamic body should fall, Vel.Y = %f", b.Vel.Y)
	}
	if b.Pos.Y <= 100 {
		t.Errorf("dynamic body should move down, Pos.Y = %f", b.Pos.Y)
	}
}

func TestStaticBodyNeverMoves(t *testing.T) {
	w := NewWorld(core.V(0, 0.5))
	ground := w.AddBox(core.V(400, 470), 800, 20, 1, true)

	for i := 0; i < 100; i++ {
		w.Step(1)
	}

	if ground.Pos != core.V(400, 470) {
		t.Errorf("static body moved to %v", ground.Pos)
	}
	if ground.Vel != (core.Vec2{}) {
		t.Errorf("static body gained velocity %v", ground.Vel)
	}
}

func TestCircleRestsOnGround(t *testing.T) {
	w := NewWorld(core.V(0, 0.5))
	w.AddBox(core.V(400, 470), 800, 20, 1, true)
	ball := w.AddCircle(core.V(400, 440), 10, 1, false)

	for i := 0; i < 300; i++ {
		w.Step(1)
	}

	// Ball should settle on top of the ground: center at roughly
	// ground top (460) minus radius (10).
	if ball.Pos.Y > 452 || ball.Pos.Y < 440 {
		t.Errorf("ball should rest near y=450, got %f", ball.Pos.Y)
	}
	if math.Abs(ball.Vel.Y) > 1 {
		t.Errorf("resting ball should be nearly still, Vel.Y = %f", ball.Vel.Y)
	}
}

func TestContactBeganOnlyOnce(t *testing.T) {
	w := NewWorld(core.Vec2{})
	a := w.AddCircle(core.V(0, 0), 10, 1, false)
	b := w.AddCircle(core.V(15, 0), 10, 1, false)

	w.Step(1)
	if len(w.Contacts()) != 1 {
		t.Fatalf("first step should report 1 new contact, got %d", len(w.Contacts()))
	}

	// Keep them overlapping: no new contact while the pair persists.
	a.Vel, b.Vel = core.Vec2{}, core.Vec2{}
	a.Pos, b.Pos = core.V(0, 0), core.V(15, 0)
	w.Step(1)
	if len(w.Contacts()) != 0 {
		t.Errorf("persisting contact should not be re-reported, got %d", len(w.Contacts()))
	}

	// Separate, then touch again: a fresh contact is reported.
	b.Pos = core.V(100, 0)
	w.Step(1)
	b.Pos = core.V(15, 0)
	a.Pos = core.V(0, 0)
	a.Vel, b.Vel = core.Vec2{}, core.Vec2{}
	w.Step(1)
	if len(w.Contacts()) != 1 {
		t.Errorf("re-contact should be reported as new, got %d", len(w.Contacts()))
	}
}

func TestContactImpactSpeed(t *testing.T) {
	w := NewWorld(core.Vec2{})
	a := w.AddCircle(core.V(0, 0), 10, 1, false)
	w.AddCircle(core.V(30, 0), 10, 1, false)
	a.Vel = core.V(12, 0)

	// First step moves a to x=12, overlapping b (gap was 10).
	w.Step(1)

	contacts := w.Contacts()
	if len(contacts) != 1 {
		t.Fatalf("expected 1 contact, got %d", len(contacts))
	}
	// Slightly under 12 because of the per-tick linear damping.
	if math.Abs(contacts[0].ImpactSpeed-12) > 0.1 {
		t.Errorf("ImpactSpeed = %f, expected ~12", contacts[0].ImpactSpeed)
	}
}

func TestGroupFiltering(t *testing.T) {
	w := NewWorld(core.Vec2{})
	a := w.AddCircle(core.V(0, 0), 10, 1, false)
	b := w.AddCircle(core.V(5, 0), 10, 1, false)
	a.Group = 7
	b.Group = 7

	w.Step(1)

	if len(w.Contacts()) != 0 {
		t.Error("bodies sharing a nonzero group must not collide")
	}
}

func TestRemoveBodyTolerant(t *testing.T) {
	w := NewWorld(core.Vec2{})
	b := w.AddCircle(core.V(0, 0), 10, 1, false)
	s := &Spring{Body: b, Anchor: core.V(0, 0), Stiffness: 0.2, Damping: 0.1}
	w.AddSpring(s)

	w.RemoveBody(b)
	if _, ok := w.Body(b.ID()); ok {
		t.Error("removed body should not be found")
	}
	if len(w.Bodies()) != 0 {
		t.Errorf("Bodies() = %d entries, expected 0", len(w.Bodies()))
	}

	// Double remove is a silent no-op.
	w.RemoveBody(b)
	w.RemoveBody(nil)
}

func TestSetStaticTransition(t *testing.T) {
	w := NewWorld(core.V(0, 0.5))
	b := w.AddBox(core.V(100, 100), 20, 20, 1, true)

	w.Step(1)
	if b.Pos.Y != 100 {
		t.Fatal("static box should not fall")
	}

	b.SetStatic(false)
	w.Step(1)
	if b.Pos.Y <= 100 {
		t.Error("box turned dynamic should start falling")
	}
	if b.Mass() <= 0 {
		t.Error("dynamic box should keep its mass")
	}
}

func TestSpringPullsTowardAnchor(t *testing.T) {
	w := NewWorld(core.Vec2{})
	b := w.AddCircle(core.V(100, 0), 10, 0.01, false)
	w.AddSpring(&Spring{Body: b, Anchor: core.V(0, 0), Stiffness: 0.5, Damping: 0.2})

	for i := 0; i < 400; i++ {
		w.Step(1)
	}

	if b.Pos.Dist(core.V(0, 0)) > 5 {
		t.Errorf("spring should settle the body near the anchor, got %v", b.Pos)
	}
}

func TestCollideCircleBoxSides(t *testing.T) {
	w := NewWorld(core.Vec2{})
	box := w.AddBox(core.V(0, 0), 40, 40, 1, true)

	tests := []struct {
		name       string
		circlePos  core.Vec2
		wantNormal core.Vec2 // From circle toward box
	}{
		{"from left", core.V(-25, 0), core.V(1, 0)},
		{"from right", core.V(25, 0), core.V(-1, 0)},
		{"from above", core.V(0, -25), core.V(0, 1)},
		{"from below", core.V(0, 25), core.V(0, -1)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			circle := &Body{shape: ShapeCircle, Radius: 8, Pos: tc.circlePos}
			normal, pen, hit := collideCircleBox(circle, box)
			if !hit {
				t.Fatal("expected a hit")
			}
			if pen <= 0 {
				t.Errorf("penetration = %f, expected > 0", pen)
			}
			if math.Abs(normal.X-tc.wantNormal.X) > 1e-6 || math.Abs(normal.Y-tc.wantNormal.Y) > 1e-6 {
				t.Errorf("normal = %v, expected %v", normal, tc.wantNormal)
			}
		})
	}

	t.Run("miss", func(t *testing.T) {
		circle := &Body{shape: ShapeCircle, Radius: 8, Pos: core.V(-40, 0)}
		if _, _, hit := collideCircleBox(circle, box); hit {
			t.Error("circle far from box should not hit")
		}
	})
}

func TestClearResetsWorld(t *testing.T) {
	w := NewWorld(core.V(0, 0.5))
	w.AddCircle(core.V(0, 0), 10, 1, false)
	w.AddBox(core.V(0, 30), 40, 10, 1, true)
	w.AddSpring(&Spring{Body: w.Bodies()[0], Anchor: core.V(0, 0), Stiffness: 1})
	w.Step(1)

	w.Clear()

	if len(w.Bodies()) != 0 || len(w.Contacts()) != 0 {
		t.Error("Clear should drop all bodies and contacts")
	}

	// IDs keep increasing after a clear so stale references can never
	// alias new bodies.
	b := w.AddCircle(core.V(0, 0), 5, 1, false)
	if b.ID() < 3 {
		t.Errorf("ID after clear = %d, expected monotonic IDs", b.ID())
	}
}
