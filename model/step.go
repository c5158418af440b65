package model

import "github.com/sheikhrachel/go-gol3d/rules"

// StepResult is the outcome of one generation.
type StepResult struct {
	Next       *Grid
	Changed    bool // at least one cell differs from the input grid
	AliveCount int  // living cells in Next
}

// Step computes the next generation of g under r. The input grid is not
// modified; Next is always a new grid of the same dimensions.
//
// Neighbours outside the grid count as dead. Step holds no state and is safe
// to call concurrently on distinct or shared grids.
func Step(g *Grid, r rules.Rule) StepResult {
	return step(g, r, nil)
}

func step(g *Grid, r rules.Rule, pool *GridPool) StepResult {
	next := allocNext(g, pool)
	changed, alive := stepRegion(g, next, r, g.fullBounds())
	return StepResult{Next: next, Changed: changed, AliveCount: alive}
}

// stepRegion applies r to every cell of g inside b, writing into next, which
// must start as a copy of g. It returns whether any cell flipped and how many
// cells inside b are alive afterwards.
func stepRegion(g, next *Grid, r rules.Rule, b Bounds) (changed bool, alive int) {
	limit := r.Max()

	for x := b.MinX; x <= b.MaxX; x++ {
		for y := b.MinY; y <= b.MaxY; y++ {
			for z := b.MinZ; z <= b.MaxZ; z++ {
				i := g.index(x, y, z)
				// counts above limit are inexact but never a birth or survive member
				n := g.countNeighbors(x, y, z, limit)

				was := g.cells[i] == Alive
				now := rules.Apply(r, n, was)
				if now != was {
					next.cells[i] = cellState(now)
					changed = true
				}
				if now {
					alive++
				}
			}
		}
	}

	return changed, alive
}

func cellState(alive bool) uint8 {
	if alive {
		return Alive
	}
	return Dead
}
