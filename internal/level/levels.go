package level

import "fmt"

// Built-in layouts. Coordinates are world units for the default
// 800×480 world with the ground top at y=460; platform tops carry the
// structures, so block Y values are authored against the platform top.
// Placements are fixed: given the same level number the builder always
// produces the same bodies.
var builtins = []*Layout{
	{
		Number: 1,
		Name:   "Glass House",
		Platforms: []PlatformPlacement{
			{X: 600, Y: 445, W: 220, H: 30},
		},
		Blocks: []BlockPlacement{
			{X: 540, Y: 400, W: 16, H: 60, Material: "wood", Health: 100},
			{X: 660, Y: 400, W: 16, H: 60, Material: "wood", Health: 100},
			{X: 600, Y: 362, W: 150, H: 16, Material: "glass", Health: 50},
		},
		Pigs: []PigPlacement{
			{X: 600, Y: 418, Health: 50},
		},
		Birds: []string{"heavy", "medium", "light"},
	},
	{
		Number: 2,
		Name:   "Cardboard Keep",
		Platforms: []PlatformPlacement{
			{X: 620, Y: 445, W: 320, H: 30},
		},
		Blocks: []BlockPlacement{
			{X: 500, Y: 422, W: 40, H: 16, Material: "stone", Health: 300},
			{X: 740, Y: 422, W: 40, H: 16, Material: "stone", Health: 300},
			{X: 500, Y: 384, W: 14, H: 60, Material: "cardboard", Health: 60},
			{X: 740, Y: 384, W: 14, H: 60, Material: "cardboard", Health: 60},
			{X: 620, Y: 346, W: 260, H: 16, Material: "wood", Health: 120},
			{X: 620, Y: 318, W: 60, H: 40, Material: "glass", Health: 50},
		},
		Pigs: []PigPlacement{
			{X: 620, Y: 418, Health: 60},
			{X: 560, Y: 326, Health: 60},
		},
		Birds: []string{"heavy", "heavy", "medium", "light"},
	},
	{
		Number: 3,
		Name:   "Bamboo Grove",
		Platforms: []PlatformPlacement{
			{X: 600, Y: 445, W: 340, H: 30},
		},
		Blocks: []BlockPlacement{
			{X: 600, Y: 420, W: 200, H: 20, Material: "clay", Health: 200},
			{X: 520, Y: 380, W: 14, H: 60, Material: "bamboo", Health: 120},
			{X: 600, Y: 380, W: 14, H: 60, Material: "bamboo", Health: 120},
			{X: 680, Y: 380, W: 14, H: 60, Material: "bamboo", Health: 120},
			{X: 600, Y: 342, W: 220, H: 16, Material: "thatch", Health: 80},
			{X: 600, Y: 322, W: 80, H: 24, Material: "glass", Health: 50},
		},
		Pigs: []PigPlacement{
			{X: 560, Y: 398, Health: 70},
			{X: 640, Y: 398, Health: 70},
			{X: 520, Y: 322, Health: 70},
		},
		Birds: []string{"heavy", "medium", "medium", "light", "light"},
	},
	{
		Number: 4,
		Name:   "Stone Keep",
		Platforms: []PlatformPlacement{
			{X: 620, Y: 445, W: 320, H: 30},
		},
		Blocks: []BlockPlacement{
			{X: 500, Y: 390, W: 20, H: 80, Material: "stone", Health: 350},
			{X: 740, Y: 390, W: 20, H: 80, Material: "stone", Health: 350},
			{X: 560, Y: 402, W: 16, H: 56, Material: "wood", Health: 150},
			{X: 680, Y: 402, W: 16, H: 56, Material: "wood", Health: 150},
			{X: 620, Y: 342, W: 280, H: 16, Material: "stone", Health: 350},
			{X: 620, Y: 310, W: 60, H: 48, Material: "clay", Health: 250},
			{X: 620, Y: 274, W: 40, H: 24, Material: "glass", Health: 50},
		},
		Pigs: []PigPlacement{
			{X: 620, Y: 418, Health: 80},
			{X: 540, Y: 322, Health: 80},
			{X: 700, Y: 318, Health: 250, Boss: true},
		},
		Birds: []string{"heavy", "heavy", "medium", "medium", "light"},
	},
}

// active is the level set the campaign plays: the builtins unless a
// custom file replaced them via SetCustom.
var active = builtins

// Count returns the number of levels in the active campaign.
func Count() int {
	return len(active)
}

// Get returns the layout for a 1-based level number. An unknown level
// number is a programming error and fails loudly.
func Get(number int) *Layout {
	if number < 1 || number > len(active) {
		panic(fmt.Sprintf("level: no layout for level %d", number))
	}
	return active[number-1]
}

// All returns every layout of the active campaign in order.
func All() []*Layout {
	return active
}
