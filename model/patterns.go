package model

import (
	"maps"
	"slices"

	"github.com/sheikhrachel/go-gol3d/rules"
)

// Pattern is a named starting grid together with the rule it is meant for.
type Pattern struct {
	Name  string
	Rule  string // rules preset identifier
	Build func() *Grid
}

// plus is a 3D cross: a centre cell and its six face neighbours.
var plus = [][3]int{
	{0, 0, 0},
	{-1, 0, 0}, {1, 0, 0},
	{0, -1, 0}, {0, 1, 0},
	{0, 0, -1}, {0, 0, 1},
}

// Patterns maps a pattern name to its definition.
var Patterns = map[string]Pattern{
	"Blinker B3/S23": {
		Name: "Blinker B3/S23",
		Rule: rules.Standard,
		Build: func() *Grid {
			g := newGrid(3, 3, 1)
			g.AddOscillator(0, 1, 0)
			return g
		},
	},
	"Blinker B45/S5": {
		Name: "Blinker B45/S5",
		Rule: rules.B45S5,
		Build: func() *Grid {
			g := newGrid(7, 7, 7)
			g.AddPattern(3, 3, 3, plus)
			return g
		},
	},
	"Accordion Replicator B45/S5": {
		Name: "Accordion Replicator B45/S5",
		Rule: rules.B45S5,
		Build: func() *Grid {
			g := newGrid(9, 3, 3)
			g.AddPattern(4, 1, 1, [][3]int{
				{0, -1, 0},
				{0, 0, -1}, {0, 0, 0}, {0, 0, 1},
				{0, 1, 0},
			})
			return g
		},
	},
	"Carter Bays Glider B6/S567": {
		Name: "Carter Bays Glider B6/S567",
		Rule: rules.CarterBay,
		Build: func() *Grid {
			g := newGrid(30, 30, 2)
			g.AddGlider(0, 27, 0)
			return g
		},
	},
}

// LookupPattern returns the pattern registered under name.
func LookupPattern(name string) (Pattern, bool) {
	p, ok := Patterns[name]
	return p, ok
}

// PatternNames returns the sorted pattern names.
func PatternNames() []string {
	return slices.Sorted(maps.Keys(Patterns))
}

// AddGlider adds a Carter Bays B6/S567 glider with its corner at (x, y, z).
// It is two z layers thick.
func (g *Grid) AddGlider(x, y, z int) {
	layer := [][3]int{
		{0, 0, 0},
		{1, 0, 0}, {1, 2, 0},
		{2, 0, 0}, {2, 1, 0},
	}
	g.AddPattern(x, y, z, layer)
	g.AddPattern(x, y, z+1, layer)
}

// AddOscillator adds a three cell line along x, a blinker under B3/S23
func (g *Grid) AddOscillator(x, y, z int) {
	g.AddPattern(x, y, z, [][3]int{{0, 0, 0}, {1, 0, 0}, {2, 0, 0}})
}
