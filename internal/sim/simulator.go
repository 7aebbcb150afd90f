package sim

import (
	"context"
	"fmt"

	"github.com/san-kum/sandsim/internal/dynamo"
)

func (w *World) AddMetric(m Metric)     { w.metrics = append(w.metrics, m) }
func (w *World) AddObserver(o Observer) { w.observers = append(w.observers, o) }

// Run ticks the world cfg.Frames times without drag input, feeding every
// frame to the registered metrics and observers.
func (w *World) Run(ctx context.Context, cfg RunConfig) (*Result, error) {
	if err := validateRunConfig(cfg); err != nil {
		return nil, err
	}

	result := &Result{
		Metrics: make(map[string]float64),
		Series:  make(map[string][]float64),
		Errors:  make([]error, 0),
	}

	for _, m := range w.metrics {
		m.Reset()
	}

	w.logger.Info("run started", "frames", cfg.Frames, "dt", cfg.Dt, "bodies", len(w.bodies))

	for i := 0; i < cfg.Frames; i++ {
		select {
		case <-ctx.Done():
			w.collect(result)
			return result, ctx.Err()
		default:
		}

		w.Tick(cfg.Dt, nil)
		f := w.Frame()

		for _, m := range w.metrics {
			m.Observe(f)
			if s, ok := m.(Sampler); ok {
				result.Series[m.Name()] = append(result.Series[m.Name()], s.Sample())
			}
		}
		for _, obs := range w.observers {
			obs.OnTick(f)
		}

		if cfg.ValidateState {
			if err := w.Validate(); err != nil {
				w.logger.Error("invalid state", "step", w.step, "err", err)
				result.Errors = append(result.Errors, err)
				break
			}
		}
		result.Frames++
	}

	w.collect(result)
	w.logger.Info("run finished", "frames", result.Frames, "time", w.time)
	return result, nil
}

func (w *World) collect(result *Result) {
	result.Time = w.time
	result.Bodies = len(w.bodies)
	for _, m := range w.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
}

func validateRunConfig(cfg RunConfig) error {
	if cfg.Dt <= 0 {
		return fmt.Errorf("%w: dt must be positive, got %f", dynamo.ErrInvalidConfig, cfg.Dt)
	}
	if cfg.Frames <= 0 {
		return fmt.Errorf("%w: frames must be positive, got %d", dynamo.ErrInvalidConfig, cfg.Frames)
	}
	return nil
}
