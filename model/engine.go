package model

import (
	"context"

	"github.com/sheikhrachel/go-gol3d/rules"
)

// Engine selects how a generation is computed. The zero value runs a plain
// serial Step. All strategies produce identical results.
type Engine struct {
	Parallel bool // split the grid across Workers goroutines
	Workers  int  // <= 0 means one per CPU
	Bounded  bool // only evaluate the active region; takes precedence over Parallel
	Pool     *GridPool
}

// NextGeneration computes the next generation of g under r using the
// configured strategy. Only a parallel step can fail, and only when ctx is
// cancelled.
func (e Engine) NextGeneration(ctx context.Context, g *Grid, r rules.Rule) (StepResult, error) {
	switch {
	case e.Bounded && !r.Birthable(0):
		return stepBounded(g, r, e.Pool), nil
	case e.Parallel:
		return stepParallel(ctx, g, r, e.Workers, e.Pool)
	default:
		if err := ctx.Err(); err != nil {
			return StepResult{}, err
		}
		return step(g, r, e.Pool), nil
	}
}
