package model

import (
	"bytes"
	"crypto/md5"
	"fmt"
	"math/rand"

	"github.com/sheikhrachel/go-gol3d/rules"
)

// Cell states.
const (
	Dead  uint8 = 0
	Alive uint8 = 1
)

// Dims holds the size of a grid along each axis.
type Dims struct {
	X, Y, Z int
}

// Volume returns the number of cells.
func (d Dims) Volume() int {
	return d.X * d.Y * d.Z
}

func (d Dims) String() string {
	return fmt.Sprintf("%dx%dx%d", d.X, d.Y, d.Z)
}

// Grid is a cuboid of cells addressed by (x, y, z). Cells are stored flat,
// x-major then y then z, which matches the nested [x][y][z] exchange format.
type Grid struct {
	xSize int
	ySize int
	zSize int
	cells []uint8
}

// NewGrid creates an all-dead grid with the specified dimensions.
func NewGrid(xSize, ySize, zSize int) (*Grid, error) {
	if xSize <= 0 || ySize <= 0 || zSize <= 0 {
		return nil, invalidGrid("dimensions must be positive, got %dx%dx%d", xSize, ySize, zSize)
	}
	return newGrid(xSize, ySize, zSize), nil
}

func newGrid(xSize, ySize, zSize int) *Grid {
	return &Grid{
		xSize: xSize,
		ySize: ySize,
		zSize: zSize,
		cells: make([]uint8, xSize*ySize*zSize),
	}
}

// Dims returns the dimensions of the grid.
func (g *Grid) Dims() Dims {
	return Dims{X: g.xSize, Y: g.ySize, Z: g.zSize}
}

// Len returns the number of cells.
func (g *Grid) Len() int {
	return len(g.cells)
}

func (g *Grid) index(x, y, z int) int {
	return (x*g.ySize+y)*g.zSize + z
}

func (g *Grid) inBounds(x, y, z int) bool {
	return x >= 0 && x < g.xSize && y >= 0 && y < g.ySize && z >= 0 && z < g.zSize
}

// Set sets a cell to alive (true) or dead (false). Out of range coordinates
// are ignored.
func (g *Grid) Set(x, y, z int, alive bool) {
	if !g.inBounds(x, y, z) {
		return
	}
	if alive {
		g.cells[g.index(x, y, z)] = Alive
	} else {
		g.cells[g.index(x, y, z)] = Dead
	}
}

// Get returns the state of a cell. Cells outside the grid are dead.
func (g *Grid) Get(x, y, z int) bool {
	if !g.inBounds(x, y, z) {
		return false
	}
	return g.cells[g.index(x, y, z)] == Alive
}

// CheckDims returns a *DimensionMismatchError if the grid is not of size d.
func (g *Grid) CheckDims(d Dims) error {
	if g.Dims() == d {
		return nil
	}
	return &DimensionMismatchError{Declared: d, Actual: g.Dims(), Cells: g.Len()}
}

// Clone returns a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	c := newGrid(g.xSize, g.ySize, g.zSize)
	copy(c.cells, g.cells)
	return c
}

// Equal reports whether both grids have the same dimensions and cells.
func (g *Grid) Equal(o *Grid) bool {
	return g.Dims() == o.Dims() && bytes.Equal(g.cells, o.cells)
}

// Clear kills all cells
func (g *Grid) Clear() {
	clear(g.cells)
}

// reset resizes the grid in place, reusing the backing array when it is
// large enough. All cells end up dead.
func (g *Grid) reset(xSize, ySize, zSize int) {
	g.xSize, g.ySize, g.zSize = xSize, ySize, zSize
	n := xSize * ySize * zSize
	if cap(g.cells) < n {
		g.cells = make([]uint8, n)
		return
	}
	g.cells = g.cells[:n]
	clear(g.cells)
}

// CountLivingCells returns the total number of living cells
func (g *Grid) CountLivingCells() (count int) {
	for _, c := range g.cells {
		if c == Alive {
			count++
		}
	}
	return
}

// LayerCounts returns the number of living cells in each z layer.
func (g *Grid) LayerCounts() []int {
	counts := make([]int, g.zSize)
	for i, c := range g.cells {
		if c == Alive {
			counts[i%g.zSize]++
		}
	}
	return counts
}

// CountNeighbors counts the living cells among the 26 neighbours of (x, y, z).
// Neighbours outside the grid are dead.
func (g *Grid) CountNeighbors(x, y, z int) int {
	return g.countNeighbors(x, y, z, rules.MaxNeighbors)
}

// countNeighbors counts living neighbours but returns as soon as the count
// exceeds limit, so the result is exact only when it is <= limit.
func (g *Grid) countNeighbors(x, y, z, limit int) int {
	count := 0

	minX, maxX := max(0, x-1), min(g.xSize-1, x+1)
	minY, maxY := max(0, y-1), min(g.ySize-1, y+1)
	minZ, maxZ := max(0, z-1), min(g.zSize-1, z+1)

	for nx := minX; nx <= maxX; nx++ {
		for ny := minY; ny <= maxY; ny++ {
			row := (nx*g.ySize + ny) * g.zSize
			for nz := minZ; nz <= maxZ; nz++ {
				if nx == x && ny == y && nz == z {
					continue
				}
				if g.cells[row+nz] == Alive {
					count++
					if count > limit {
						return count
					}
				}
			}
		}
	}

	return count
}

// Hash returns an MD5 hash of the dimensions and cell states.
func (g *Grid) Hash() string {
	h := md5.New()
	fmt.Fprintf(h, "%d:%d:%d:", g.xSize, g.ySize, g.zSize)
	h.Write(g.cells)
	return fmt.Sprintf("%x", h.Sum(nil))
}

// Randomize sets every cell alive with probability density.
func (g *Grid) Randomize(rng *rand.Rand, density float64) {
	for i := range g.cells {
		if rng.Float64() < density {
			g.cells[i] = Alive
		} else {
			g.cells[i] = Dead
		}
	}
}

// AddPattern sets the cells at the given offsets from (x, y, z) alive.
// Offsets that fall outside the grid are skipped.
func (g *Grid) AddPattern(x, y, z int, offsets [][3]int) {
	for _, o := range offsets {
		g.Set(x+o[0], y+o[1], z+o[2], true)
	}
}
