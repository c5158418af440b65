package model

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/sheikhrachel/go-gol3d/rules"
)

// StepParallel computes the same result as Step, splitting the grid into x
// slabs processed concurrently. workers <= 0 uses one worker per CPU.
//
// The context is checked between x layers; on cancellation the partial grid
// is discarded and the context error is returned.
func StepParallel(ctx context.Context, g *Grid, r rules.Rule, workers int) (StepResult, error) {
	return stepParallel(ctx, g, r, workers, nil)
}

func stepParallel(ctx context.Context, g *Grid, r rules.Rule, workers int, pool *GridPool) (StepResult, error) {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	workers = min(workers, g.xSize)

	var (
		next          = allocNext(g, pool)
		eg, egCtx     = errgroup.WithContext(ctx)
		layersPerSlab = (g.xSize + workers - 1) / workers // Ceiling division
		changed       = make([]bool, workers)
		alive         = make([]int, workers)
	)

	Logger().Debug("parallel step", "workers", workers, "layers_per_slab", layersPerSlab)

	for i := range workers {
		var (
			startX = i * layersPerSlab
			endX   = min(startX+layersPerSlab, g.xSize)
		)
		if startX >= g.xSize {
			break
		}

		eg.Go(func() error {
			slab := g.fullBounds()
			for x := startX; x < endX; x++ {
				if err := egCtx.Err(); err != nil {
					return err
				}
				slab.MinX, slab.MaxX = x, x
				c, a := stepRegion(g, next, r, slab)
				changed[i] = changed[i] || c
				alive[i] += a
			}
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		GridToPool(next, pool)
		return StepResult{}, err
	}

	res := StepResult{Next: next}
	for i := range workers {
		res.Changed = res.Changed || changed[i]
		res.AliveCount += alive[i]
	}
	return res, nil
}
