package sim

import (
	"context"
	"sync"

	"github.com/san-kum/sandsim/internal/dynamo"
)

// Scene populates a freshly created world.
type Scene func(w *World) error

// Ensemble runs the same scene in several independent worlds, one
// goroutine each, with consecutive jitter seeds.
type Ensemble struct {
	opts      Options
	scene     Scene
	metrics   func() []Metric
	numRuns   int
	seedStart int64
}

// NewEnsemble prepares numRuns copies of scene. metrics may be nil; it is
// called once per run so no metric instance is shared between goroutines.
func NewEnsemble(opts Options, scene Scene, metrics func() []Metric, numRuns int, seedStart int64) *Ensemble {
	return &Ensemble{opts: opts, scene: scene, metrics: metrics, numRuns: numRuns, seedStart: seedStart}
}

func (e *Ensemble) Run(ctx context.Context, cfg RunConfig) ([]*Result, error) {
	results := make([]*Result, e.numRuns)
	errs := make([]error, e.numRuns)

	var wg sync.WaitGroup
	for i := 0; i < e.numRuns; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			results[idx], errs[idx] = e.runOne(ctx, idx, cfg)
		}(i)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return results, nil
}

func (e *Ensemble) runOne(ctx context.Context, idx int, cfg RunConfig) (*Result, error) {
	opts := e.opts
	opts.Seed = e.seedStart + int64(idx)
	if e.opts.Tunables != nil {
		tn := *e.opts.Tunables
		opts.Tunables = &tn
	} else {
		tn := dynamo.DefaultTunables()
		opts.Tunables = &tn
	}

	w, err := New(opts)
	if err != nil {
		return nil, err
	}
	if e.scene != nil {
		if err := e.scene(w); err != nil {
			return nil, err
		}
	}
	if e.metrics != nil {
		for _, m := range e.metrics() {
			w.AddMetric(m)
		}
	}
	return w.Run(ctx, cfg)
}
