package model

import "sync"

// GridToPool returns a grid to the pool for reuse
func GridToPool(grid *Grid, pool *GridPool) {
	if pool == nil || grid == nil {
		return
	}

	pool.Put(grid)
}

// GridPool recycles step output grids between generations.
type GridPool struct {
	pool sync.Pool
}

// NewGridPool creates an empty pool.
func NewGridPool() *GridPool {
	return &GridPool{
		pool: sync.Pool{
			New: func() interface{} {
				return &Grid{}
			},
		},
	}
}

// Get retrieves an all-dead grid of the given dimensions from the pool
func (p *GridPool) Get(d Dims) *Grid {
	g := p.pool.Get().(*Grid)
	g.reset(d.X, d.Y, d.Z)
	return g
}

// Put returns a grid to the pool. The caller must not use it afterwards.
func (p *GridPool) Put(g *Grid) {
	p.pool.Put(g)
}

// allocNext returns a copy of g, drawn from pool when one is given.
func allocNext(g *Grid, pool *GridPool) *Grid {
	if pool == nil {
		return g.Clone()
	}
	next := pool.Get(g.Dims())
	copy(next.cells, g.cells)
	return next
}
