package level

import (
	"testing"

	"github.com/slingarcade/sling/internal/config"
	"github.com/slingarcade/sling/internal/core"
	"github.com/slingarcade/sling/internal/physics"
	"github.com/slingarcade/sling/internal/registry"
)

func buildLevel(t *testing.T, number int, cfg config.SlingConfig) *registry.Registry {
	t.Helper()
	w := physics.NewWorld(core.V(0, cfg.Physics.Gravity))
	reg := registry.New(w, nil)
	Build(reg, cfg, number)
	return reg
}

func TestBuildCountsMatchLayouts(t *testing.T) {
	cfg := config.DefaultSlingConfig()

	for _, layout := range All() {
		reg := buildLevel(t, layout.Number, cfg)

		if len(reg.Blocks()) != len(layout.Blocks) {
			t.Errorf("level %d: %d blocks, expected %d", layout.Number, len(reg.Blocks()), len(layout.Blocks))
		}
		if len(reg.Pigs()) != len(layout.Pigs) {
			t.Errorf("level %d: %d pigs, expected %d", layout.Number, len(reg.Pigs()), len(layout.Pigs))
		}
		if len(reg.Birds()) != len(layout.Birds) {
			t.Errorf("level %d: %d birds, expected %d", layout.Number, len(reg.Birds()), len(layout.Birds))
		}
	}
}

func TestBuildDeterministic(t *testing.T) {
	cfg := config.DefaultSlingConfig()
	a := buildLevel(t, 2, cfg)
	b := buildLevel(t, 2, cfg)

	for i, block := range a.Blocks() {
		other := b.Blocks()[i]
		if block.Body.Pos != other.Body.Pos || block.Material != other.Material || block.MaxHealth != other.MaxHealth {
			t.Errorf("block %d differs between identical builds", i)
		}
	}
	for i, pig := range a.Pigs() {
		other := b.Pigs()[i]
		if pig.Body.Pos != other.Body.Pos || pig.MaxHealth != other.MaxHealth || pig.Boss != other.Boss {
			t.Errorf("pig %d differs between identical builds", i)
		}
	}
	for i, bird := range a.Birds() {
		if bird.Type != b.Birds()[i].Type {
			t.Errorf("bird roster order differs at slot %d", i)
		}
	}
}

func TestBuildClearsPriorLevel(t *testing.T) {
	cfg := config.DefaultSlingConfig()
	w := physics.NewWorld(core.V(0, cfg.Physics.Gravity))
	reg := registry.New(w, nil)

	Build(reg, cfg, 4)
	Build(reg, cfg, 1)

	layout := Get(1)
	if len(reg.Blocks()) != len(layout.Blocks) || len(reg.Pigs()) != len(layout.Pigs) {
		t.Error("rebuild should replace the previous level wholesale")
	}
	// Bounds (3) + platforms + blocks + pigs + birds, nothing left over.
	want := 3 + len(layout.Platforms) + len(layout.Blocks) + len(layout.Pigs) + len(layout.Birds)
	if len(w.Bodies()) != want {
		t.Errorf("world holds %d bodies, expected %d", len(w.Bodies()), want)
	}
}

func TestBuildInitialBodyStates(t *testing.T) {
	cfg := config.DefaultSlingConfig()
	reg := buildLevel(t, 1, cfg)

	for i, block := range reg.Blocks() {
		if !block.IsStatic() {
			t.Errorf("block %d should start static", i)
		}
		if block.Health != block.MaxHealth || block.State != registry.StateIntact {
			t.Errorf("block %d should start at full health", i)
		}
	}
	for i, pig := range reg.Pigs() {
		if pig.Body.Static() {
			t.Errorf("pig %d should be dynamic", i)
		}
	}
	for i, bird := range reg.Birds() {
		if !bird.Body.Static() {
			t.Errorf("waiting bird %d should be parked static", i)
		}
		if bird.Launched {
			t.Errorf("bird %d should not start launched", i)
		}
	}
}

func TestBuildAppliesHealthScale(t *testing.T) {
	cfg := config.DefaultSlingConfig()
	config.ApplyPreset(&cfg, config.DifficultyHard)

	reg := buildLevel(t, 1, cfg)
	layout := Get(1)

	if got, want := reg.Blocks()[0].MaxHealth, layout.Blocks[0].Health*1.5; got != want {
		t.Errorf("scaled block health = %f, expected %f", got, want)
	}
	if got, want := reg.Pigs()[0].MaxHealth, layout.Pigs[0].Health*1.5; got != want {
		t.Errorf("scaled pig health = %f, expected %f", got, want)
	}
}

func TestBoundaryKindsAreInert(t *testing.T) {
	cfg := config.DefaultSlingConfig()
	reg := buildLevel(t, 1, cfg)

	inert := 0
	for _, body := range reg.World().Bodies() {
		if registry.KindOf(body).Inert() {
			inert++
		}
	}
	// Ground, two walls and one platform.
	if inert != 3+len(Get(1).Platforms) {
		t.Errorf("inert body count = %d", inert)
	}
}

func TestGetUnknownLevelPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("unknown level number should panic")
		}
	}()
	Get(99)
}

func TestRosterRejectsUnknownBird(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("unknown bird name should panic")
		}
	}()
	l := &Layout{Name: "bad", Birds: []string{"ostrich"}}
	l.Roster()
}
