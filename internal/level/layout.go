// Package level defines the declarative per-level layouts and the
// structure builder that instantiates them into a physics world and
// entity registry.
package level

import (
	"fmt"

	"github.com/slingarcade/sling/internal/registry"
)

// PlatformPlacement is a static, non-damageable anchor slab that a
// structure stands on.
type PlatformPlacement struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	W float64 `yaml:"w"`
	H float64 `yaml:"h"`
}

// BlockPlacement describes one destructible block. Position is the
// block center in world coordinates; health is the authored maximum
// before any difficulty scaling.
type BlockPlacement struct {
	X        float64 `yaml:"x"`
	Y        float64 `yaml:"y"`
	W        float64 `yaml:"w"`
	H        float64 `yaml:"h"`
	Material string  `yaml:"material"`
	Health   float64 `yaml:"health"`
}

// PigPlacement describes one pig. Boss pigs are bigger and worth more.
type PigPlacement struct {
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Health float64 `yaml:"health"`
	Boss   bool    `yaml:"boss"`
}

// Layout is one playable level: fixed placements plus an ordered bird
// roster. Layouts are immutable; the builder reads them, never writes.
type Layout struct {
	Number    int                 `yaml:"number"`
	Name      string              `yaml:"name"`
	Platforms []PlatformPlacement `yaml:"platforms"`
	Blocks    []BlockPlacement    `yaml:"blocks"`
	Pigs      []PigPlacement      `yaml:"pigs"`
	Birds     []string            `yaml:"birds"`
}

// Roster resolves the layout's bird names into types. Unknown names
// are a layout authoring error and fail loudly.
func (l *Layout) Roster() []registry.BirdType {
	roster := make([]registry.BirdType, 0, len(l.Birds))
	for _, name := range l.Birds {
		t, ok := parseBirdType(name)
		if !ok {
			panic("level: unknown bird type " + name + " in layout " + l.Name)
		}
		roster = append(roster, t)
	}
	return roster
}

// validate checks a layout for authoring errors. Built-in layouts are
// trusted; external files go through here before replacing them.
func (l *Layout) validate() error {
	if l.Name == "" {
		return fmt.Errorf("layout %d has no name", l.Number)
	}
	if len(l.Pigs) == 0 {
		return fmt.Errorf("layout %q has no pigs", l.Name)
	}
	if len(l.Birds) == 0 {
		return fmt.Errorf("layout %q has no birds", l.Name)
	}
	for _, name := range l.Birds {
		if _, ok := parseBirdType(name); !ok {
			return fmt.Errorf("layout %q: unknown bird type %q", l.Name, name)
		}
	}
	for _, bp := range l.Blocks {
		if _, ok := registry.ParseMaterial(bp.Material); !ok {
			return fmt.Errorf("layout %q: unknown material %q", l.Name, bp.Material)
		}
		if bp.Health <= 0 {
			return fmt.Errorf("layout %q: block health must be positive, got %f", l.Name, bp.Health)
		}
	}
	for _, pp := range l.Pigs {
		if pp.Health <= 0 {
			return fmt.Errorf("layout %q: pig health must be positive, got %f", l.Name, pp.Health)
		}
	}
	return nil
}

func parseBirdType(name string) (registry.BirdType, bool) {
	switch name {
	case "heavy":
		return registry.BirdHeavy, true
	case "medium":
		return registry.BirdMedium, true
	case "light":
		return registry.BirdLight, true
	default:
		return registry.BirdHeavy, false
	}
}
