package level

import (
	"fmt"

	"github.com/slingarcade/sling/internal/config"
	"github.com/slingarcade/sling/internal/core"
	"github.com/slingarcade/sling/internal/physics"
	"github.com/slingarcade/sling/internal/registry"
)

// Pig physics radii in world units.
const (
	pigRadius  = 12
	bossRadius = 16
)

// Spacing of the waiting bird queue beside the sling anchor.
const (
	queueOffset  = 40
	queueSpacing = 30
)

// Build clears the world and registry and instantiates the layout for
// a 1-based level number: ground, side walls, platforms, blocks, pigs
// and the full bird roster. Blocks start static; pigs are dynamic.
// Waiting birds are parked static in a queue left of the sling until
// the launch controller loads them. Block and pig max health is scaled
// by the difficulty health scale. Returns the layout it built.
func Build(reg *registry.Registry, cfg config.SlingConfig, number int) *Layout {
	layout := Get(number)
	w := reg.World()

	w.Clear()
	reg.ClearEntities()

	buildBounds(w, cfg.Physics)
	for _, p := range layout.Platforms {
		platform := w.AddBox(core.V(p.X, p.Y), p.W, p.H, 1, true)
		platform.Category = uint8(registry.KindPlatform)
	}

	scale := cfg.Damage.HealthScale
	if scale <= 0 {
		scale = 1
	}

	for _, bp := range layout.Blocks {
		material, ok := registry.ParseMaterial(bp.Material)
		if !ok {
			panic(fmt.Sprintf("level: unknown material %q in layout %s", bp.Material, layout.Name))
		}
		body := w.AddBox(core.V(bp.X, bp.Y), bp.W, bp.H, materialDensity(material), true)
		reg.AddBlock(body, material, bp.Health*scale)
	}

	for _, pp := range layout.Pigs {
		radius := float64(pigRadius)
		if pp.Boss {
			radius = bossRadius
		}
		body := w.AddCircle(core.V(pp.X, pp.Y), radius, 0.8, false)
		body.Restitution = 0.2
		reg.AddPig(body, pp.Health*scale, pp.Boss)
	}

	groundTop := cfg.Physics.WorldHeight - cfg.Physics.GroundHeight
	for i, t := range layout.Roster() {
		radius := t.Radius()
		x := cfg.Sling.AnchorX - queueOffset - float64(i)*queueSpacing
		body := w.AddCircle(core.V(x, groundTop-radius), radius, 1, true)
		reg.AddBird(body, t)
	}

	return layout
}

// buildBounds creates the static ground slab and the two side walls.
func buildBounds(w *physics.World, phys config.PhysicsConfig) {
	ground := w.AddBox(
		core.V(phys.WorldWidth/2, phys.WorldHeight-phys.GroundHeight/2),
		phys.WorldWidth, phys.GroundHeight, 1, true)
	ground.Category = uint8(registry.KindGround)
	ground.Friction = 0.6

	left := w.AddBox(core.V(phys.WallWidth/2, phys.WorldHeight/2),
		phys.WallWidth, phys.WorldHeight, 1, true)
	left.Category = uint8(registry.KindWall)

	right := w.AddBox(core.V(phys.WorldWidth-phys.WallWidth/2, phys.WorldHeight/2),
		phys.WallWidth, phys.WorldHeight, 1, true)
	right.Category = uint8(registry.KindWall)
}

// materialDensity gives heavier materials heavier bodies, which feeds
// the pig crush damage formula through block mass.
func materialDensity(m registry.Material) float64 {
	switch m {
	case registry.MaterialStone:
		return 2.5
	case registry.MaterialClay:
		return 1.8
	case registry.MaterialWood:
		return 1.0
	case registry.MaterialBamboo:
		return 0.7
	case registry.MaterialThatch:
		return 0.4
	case registry.MaterialCardboard:
		return 0.3
	case registry.MaterialGlass:
		return 0.8
	default:
		return 1.0
	}
}
