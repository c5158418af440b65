package model

import (
	"encoding/json"
	"io"

	"github.com/pkg/errors"
)

// FromNested builds a grid from nested [x][y][z] states. Every row must have
// the same length as the first one at its level and every state must be 0 or 1.
func FromNested(nested [][][]int) (*Grid, error) {
	if len(nested) == 0 || len(nested[0]) == 0 || len(nested[0][0]) == 0 {
		return nil, invalidGrid("grid must have at least one cell on each axis")
	}

	g := newGrid(len(nested), len(nested[0]), len(nested[0][0]))
	for x, plane := range nested {
		if len(plane) != g.ySize {
			return nil, invalidGrid("x=%d has %d rows, want %d", x, len(plane), g.ySize)
		}
		for y, row := range plane {
			if len(row) != g.zSize {
				return nil, invalidGrid("x=%d y=%d has %d cells, want %d", x, y, len(row), g.zSize)
			}
			for z, state := range row {
				if state != int(Dead) && state != int(Alive) {
					return nil, invalidGrid("cell (%d,%d,%d) is %d, want 0 or 1", x, y, z, state)
				}
				g.cells[g.index(x, y, z)] = uint8(state)
			}
		}
	}
	return g, nil
}

// FromFlat builds a grid from cells laid out x-major then y then z, with
// explicit dimensions.
func FromFlat(cells []uint8, d Dims) (*Grid, error) {
	if d.X <= 0 || d.Y <= 0 || d.Z <= 0 {
		return nil, invalidGrid("dimensions must be positive, got %s", d)
	}
	if len(cells) != d.Volume() {
		return nil, errors.WithStack(&DimensionMismatchError{Declared: d, Cells: len(cells)})
	}
	for i, c := range cells {
		if c != Dead && c != Alive {
			return nil, invalidGrid("cell %d is %d, want 0 or 1", i, c)
		}
	}
	g := newGrid(d.X, d.Y, d.Z)
	copy(g.cells, cells)
	return g, nil
}

// Cells returns a copy of the flat cell states.
func (g *Grid) Cells() []uint8 {
	out := make([]uint8, len(g.cells))
	copy(out, g.cells)
	return out
}

// ToNested returns the states as nested [x][y][z] slices.
func (g *Grid) ToNested() [][][]int {
	nested := make([][][]int, g.xSize)
	for x := range g.xSize {
		nested[x] = make([][]int, g.ySize)
		for y := range g.ySize {
			row := make([]int, g.zSize)
			base := g.index(x, y, 0)
			for z := range g.zSize {
				row[z] = int(g.cells[base+z])
			}
			nested[x][y] = row
		}
	}
	return nested
}

// MarshalJSON encodes the grid as a nested array of 0/1 integers.
func (g *Grid) MarshalJSON() ([]byte, error) {
	return json.Marshal(g.ToNested())
}

// UnmarshalJSON decodes a nested array of 0/1 integers, replacing the grid.
func (g *Grid) UnmarshalJSON(data []byte) error {
	var nested [][][]int
	if err := json.Unmarshal(data, &nested); err != nil {
		return errors.Wrap(&InvalidGridError{Reason: err.Error()}, "[UnmarshalJSON] failed to decode grid")
	}
	parsed, err := FromNested(nested)
	if err != nil {
		return err
	}
	*g = *parsed
	return nil
}

// ReadGridJSON decodes one grid from r.
func ReadGridJSON(r io.Reader) (*Grid, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "[ReadGridJSON] failed to read grid")
	}
	g := new(Grid)
	if err = g.UnmarshalJSON(data); err != nil {
		return nil, err
	}
	return g, nil
}

// WriteGridJSON encodes g to w followed by a newline.
func WriteGridJSON(w io.Writer, g *Grid) error {
	data, err := g.MarshalJSON()
	if err != nil {
		return errors.Wrap(err, "[WriteGridJSON] failed to encode grid")
	}
	if _, err = w.Write(append(data, '\n')); err != nil {
		return errors.Wrap(err, "[WriteGridJSON] failed to write grid")
	}
	return nil
}
