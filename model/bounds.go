package model

import "github.com/sheikhrachel/go-gol3d/rules"

// Bounds is an inclusive box of cell coordinates.
type Bounds struct {
	MinX, MaxX int
	MinY, MaxY int
	MinZ, MaxZ int
}

// Volume returns the number of cells inside the box.
func (b Bounds) Volume() int {
	return (b.MaxX - b.MinX + 1) * (b.MaxY - b.MinY + 1) * (b.MaxZ - b.MinZ + 1)
}

func (g *Grid) fullBounds() Bounds {
	return Bounds{MaxX: g.xSize - 1, MaxY: g.ySize - 1, MaxZ: g.zSize - 1}
}

// ActiveBounds returns the bounding box of living cells. ok is false when the
// grid has no living cells.
func (g *Grid) ActiveBounds() (b Bounds, ok bool) {
	for x := range g.xSize {
		for y := range g.ySize {
			base := g.index(x, y, 0)
			for z := range g.zSize {
				if g.cells[base+z] != Alive {
					continue
				}
				if !ok {
					b = Bounds{MinX: x, MaxX: x, MinY: y, MaxY: y, MinZ: z, MaxZ: z}
					ok = true
					continue
				}
				b.MinX, b.MaxX = min(b.MinX, x), max(b.MaxX, x)
				b.MinY, b.MaxY = min(b.MinY, y), max(b.MaxY, y)
				b.MinZ, b.MaxZ = min(b.MinZ, z), max(b.MaxZ, z)
			}
		}
	}
	return b, ok
}

// GetBoundingBoxSize returns the number of cells in the active region
func (g *Grid) GetBoundingBoxSize() int {
	b, ok := g.ActiveBounds()
	if !ok {
		return 0
	}
	return b.Volume()
}

// grow extends b by one cell on every side, clamped to the grid.
func (b Bounds) grow(g *Grid) Bounds {
	return Bounds{
		MinX: max(0, b.MinX-1), MaxX: min(g.xSize-1, b.MaxX+1),
		MinY: max(0, b.MinY-1), MaxY: min(g.ySize-1, b.MaxY+1),
		MinZ: max(0, b.MinZ-1), MaxZ: min(g.zSize-1, b.MaxZ+1),
	}
}

// StepBounded computes the same result as Step but only evaluates cells in
// the active region plus a one cell margin. Every cell further out has no
// living neighbours, so it stays dead unless the rule births from 0; such
// rules fall back to a full Step.
func StepBounded(g *Grid, r rules.Rule) StepResult {
	return stepBounded(g, r, nil)
}

func stepBounded(g *Grid, r rules.Rule, pool *GridPool) StepResult {
	if r.Birthable(0) {
		Logger().Warn("bounded step disabled for rule that births from 0", "rule", r.String())
		return step(g, r, pool)
	}

	next := allocNext(g, pool)

	active, ok := g.ActiveBounds()
	if !ok {
		return StepResult{Next: next}
	}

	region := active.grow(g)
	Logger().Debug("bounded step", "region", region.Volume(), "cells", g.Len())

	changed, alive := stepRegion(g, next, r, region)
	return StepResult{Next: next, Changed: changed, AliveCount: alive}
}
