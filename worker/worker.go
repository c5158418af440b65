// Package worker runs generation steps off the caller's goroutine.
//
// A caller that must stay responsive (a render loop, a UI) hands a grid and a
// rule to a Worker and receives the next generation back over a channel,
// instead of computing the step inline.
package worker

import (
	"context"
	"sync"

	"github.com/pkg/errors"

	"github.com/sheikhrachel/go-gol3d/model"
	"github.com/sheikhrachel/go-gol3d/rules"
)

// ErrClosed is returned by Submit after Close.
var ErrClosed = errors.New("worker: closed")

// Request asks for the generation after Grid under Rule.
type Request struct {
	Grid *model.Grid
	Rule rules.Rule
	// Dims, when non-zero, is the size the caller believes Grid has. A
	// mismatch is reported before the step runs.
	Dims model.Dims
}

// Response is the outcome of one Request.
type Response struct {
	Next       *model.Grid
	Changed    bool
	AliveCount int
}

type result struct {
	res model.StepResult
	err error
}

type task struct {
	ctx   context.Context
	req   Request
	reply chan result
}

// Worker serves step requests one at a time, in submission order, on its own
// goroutine.
type Worker struct {
	engine model.Engine
	tasks  chan task
	done   chan struct{}
	once   sync.Once
	wg     sync.WaitGroup
}

// New starts a worker that computes generations with engine.
func New(engine model.Engine) *Worker {
	w := &Worker{
		engine: engine,
		tasks:  make(chan task),
		done:   make(chan struct{}),
	}
	w.wg.Add(1)
	go w.loop()
	return w
}

func (w *Worker) loop() {
	defer w.wg.Done()
	for {
		select {
		case t := <-w.tasks:
			res, err := w.engine.NextGeneration(t.ctx, t.req.Grid, t.req.Rule)
			t.reply <- result{res: res, err: err}
		case <-w.done:
			return
		}
	}
}

func validate(req Request) error {
	if req.Grid == nil {
		return errors.New("[worker] request without grid")
	}
	if req.Dims != (model.Dims{}) {
		if err := req.Grid.CheckDims(req.Dims); err != nil {
			return errors.Wrap(err, "[worker] declared dimensions")
		}
	}
	return nil
}

// Submit hands req to the worker and waits for the result. It returns
// ctx.Err() if the context ends first and ErrClosed once the worker is closed.
func (w *Worker) Submit(ctx context.Context, req Request) (Response, error) {
	if err := validate(req); err != nil {
		return Response{}, err
	}

	t := task{ctx: ctx, req: req, reply: make(chan result, 1)}
	select {
	case w.tasks <- t:
	case <-ctx.Done():
		return Response{}, ctx.Err()
	case <-w.done:
		return Response{}, ErrClosed
	}

	select {
	case r := <-t.reply:
		if r.err != nil {
			return Response{}, r.err
		}
		return Response{Next: r.res.Next, Changed: r.res.Changed, AliveCount: r.res.AliveCount}, nil
	case <-ctx.Done():
		return Response{}, ctx.Err()
	}
}

// Close stops the worker and waits for an in-flight step to finish. It is
// safe to call more than once.
func (w *Worker) Close() {
	w.once.Do(func() { close(w.done) })
	w.wg.Wait()
}
