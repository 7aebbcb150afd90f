package sim

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/san-kum/sandsim/internal/dynamo"
)

type testMetric struct {
	count int
	last  float64
}

func (t *testMetric) Name() string { return "test" }
func (t *testMetric) Observe(f *dynamo.Frame) {
	t.count++
	t.last = float64(len(f.Bodies))
}
func (t *testMetric) Value() float64  { return float64(t.count) }
func (t *testMetric) Sample() float64 { return t.last }
func (t *testMetric) Reset()          { t.count, t.last = 0, 0 }

type testObserver struct{ steps []int }

func (o *testObserver) OnTick(f *dynamo.Frame) { o.steps = append(o.steps, f.Step) }

func newTestWorld(t *testing.T) *World {
	t.Helper()
	w, err := New(DefaultOptions())
	if err != nil {
		t.Fatalf("new world: %v", err)
	}
	return w
}

func TestRun(t *testing.T) {
	w := newTestWorld(t)
	w.Spawn(5, 0, dynamo.V(400, 100))

	result, err := w.Run(context.Background(), RunConfig{Dt: DefaultDt, Frames: 30})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if result.Frames != 30 {
		t.Errorf("expected 30 frames, got %d", result.Frames)
	}
	if result.Bodies != 1 {
		t.Errorf("expected 1 body, got %d", result.Bodies)
	}
	want := 30 * DefaultDt * w.Tunables().TimeScale
	if math.Abs(result.Time-want) > 1e-9 {
		t.Errorf("expected time %.4f, got %.4f", want, result.Time)
	}
}

func TestRunInvalidConfig(t *testing.T) {
	w := newTestWorld(t)

	tests := []struct {
		name string
		cfg  RunConfig
	}{
		{"zero dt", RunConfig{Dt: 0, Frames: 10}},
		{"negative dt", RunConfig{Dt: -0.1, Frames: 10}},
		{"zero frames", RunConfig{Dt: 0.1, Frames: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := w.Run(context.Background(), tt.cfg)
			if !errors.Is(err, dynamo.ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestRunMetricsAndObservers(t *testing.T) {
	w := newTestWorld(t)
	w.Spawn(5, 0, dynamo.V(100, 100))
	w.Spawn(5, 0, dynamo.V(200, 100))

	metric := &testMetric{}
	obs := &testObserver{}
	w.AddMetric(metric)
	w.AddObserver(obs)

	result, err := w.Run(context.Background(), RunConfig{Dt: DefaultDt, Frames: 10})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if result.Metrics["test"] != 10 {
		t.Errorf("expected 10 observations, got %v", result.Metrics["test"])
	}
	if len(result.Series["test"]) != 10 || result.Series["test"][9] != 2 {
		t.Errorf("unexpected series %v", result.Series["test"])
	}
	if len(obs.steps) != 10 || obs.steps[0] != 1 || obs.steps[9] != 10 {
		t.Errorf("unexpected observer steps %v", obs.steps)
	}
}

func TestRunCanceled(t *testing.T) {
	w := newTestWorld(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := w.Run(ctx, RunConfig{Dt: DefaultDt, Frames: 100})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if result.Frames != 0 {
		t.Errorf("expected no frames, got %d", result.Frames)
	}
}

func TestRunStopsOnInvalidState(t *testing.T) {
	w := newTestWorld(t)
	id := w.Spawn(5, 0, dynamo.V(100, 100))
	w.bodies[id].Vel = dynamo.V(math.NaN(), 0)

	result, err := w.Run(context.Background(), RunConfig{Dt: DefaultDt, Frames: 10, ValidateState: true})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if len(result.Errors) != 1 || !errors.Is(result.Errors[0], dynamo.ErrInvalidState) {
		t.Errorf("expected one ErrInvalidState, got %v", result.Errors)
	}
	if result.Frames != 0 {
		t.Errorf("expected run to stop on first frame, got %d", result.Frames)
	}
}

func TestEnsemble(t *testing.T) {
	scene := func(w *World) error {
		for i := 0; i < 5; i++ {
			w.Spawn(5, 0, dynamo.V(300, 300))
		}
		return w.CreateRope(dynamo.V(500, 50), 100, 5)
	}
	metrics := func() []Metric { return []Metric{&testMetric{}} }

	e := NewEnsemble(DefaultOptions(), scene, metrics, 4, 10)
	results, err := e.Run(context.Background(), RunConfig{Dt: DefaultDt, Frames: 20})
	if err != nil {
		t.Fatalf("ensemble failed: %v", err)
	}

	if len(results) != 4 {
		t.Fatalf("expected 4 results, got %d", len(results))
	}
	for i, r := range results {
		if r.Frames != 20 || r.Bodies != 12 {
			t.Errorf("run %d: frames %d bodies %d", i, r.Frames, r.Bodies)
		}
		if r.Metrics["test"] != 20 {
			t.Errorf("run %d: metric %v", i, r.Metrics["test"])
		}
	}
}

func TestEnsembleSceneError(t *testing.T) {
	scene := func(w *World) error { return w.CreateRope(dynamo.V(0, 0), 10, 0) }

	_, err := NewEnsemble(DefaultOptions(), scene, nil, 2, 1).Run(context.Background(), DefaultRunConfig())
	if !errors.Is(err, dynamo.ErrInvalidComposite) {
		t.Errorf("expected ErrInvalidComposite, got %v", err)
	}
}
