package worker

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/sheikhrachel/go-gol3d/model"
)

// StepAll computes one generation for every request, running at most limit
// steps at once (limit <= 0 means no limit). Responses are in request order.
// The first failure cancels the remaining steps.
func StepAll(ctx context.Context, engine model.Engine, reqs []Request, limit int) ([]Response, error) {
	out := make([]Response, len(reqs))

	eg, egCtx := errgroup.WithContext(ctx)
	if limit > 0 {
		eg.SetLimit(limit)
	}

	for i, req := range reqs {
		eg.Go(func() error {
			if err := validate(req); err != nil {
				return err
			}
			res, err := engine.NextGeneration(egCtx, req.Grid, req.Rule)
			if err != nil {
				return err
			}
			out[i] = Response{Next: res.Next, Changed: res.Changed, AliveCount: res.AliveCount}
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}
	model.Logger().Debug("batch step", "grids", len(reqs), "limit", limit)
	return out, nil
}
