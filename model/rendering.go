package model

import (
	"fmt"
	"io"
	"strings"
)

const (
	layerBarBlock = "█"
	layerBarWidth = 40
)

// LayerRenderer writes a per z layer population summary of a grid.
type LayerRenderer struct {
	Out io.Writer
}

// Display writes one line per z layer with its living cell count and a bar
// scaled to the layer size.
func (r *LayerRenderer) Display(g *Grid) {
	perLayer := g.xSize * g.ySize
	for z, count := range g.LayerCounts() {
		width := count * layerBarWidth / perLayer
		if count > 0 && width == 0 {
			width = 1
		}
		fmt.Fprintf(r.Out, "z=%-3d %6d %s\n", z, count, strings.Repeat(layerBarBlock, width))
	}
}
