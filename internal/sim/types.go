package sim

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/san-kum/sandsim/internal/dynamo"
)

const (
	DefaultWidth    = 800.0
	DefaultHeight   = 600.0
	DefaultCellSize = 20.0
	DefaultDt       = 1.0 / 60.0
)

// Options configure a new World.
type Options struct {
	Width, Height float64
	CellSize      float64
	Seed          int64
	// Tunables is copied; nil means defaults.
	Tunables *dynamo.Tunables
	// Logger receives debug events; nil discards them.
	Logger *log.Logger
}

func DefaultOptions() Options {
	return Options{
		Width:    DefaultWidth,
		Height:   DefaultHeight,
		CellSize: DefaultCellSize,
		Seed:     1,
	}
}

func (o Options) validate() error {
	if o.Width <= 0 || o.Height <= 0 {
		return fmt.Errorf("%w: bounds must be positive, got %vx%v", dynamo.ErrInvalidConfig, o.Width, o.Height)
	}
	if o.CellSize <= 0 {
		return fmt.Errorf("%w: cell size must be positive, got %v", dynamo.ErrInvalidConfig, o.CellSize)
	}
	return nil
}

// Metric aggregates an observable over a run.
type Metric interface {
	Name() string
	Observe(f *dynamo.Frame)
	Value() float64
	Reset()
}

// Sampler is implemented by metrics that also expose the value of the last
// observed frame; Run records those into Result.Series.
type Sampler interface {
	Sample() float64
}

type Observer interface {
	OnTick(f *dynamo.Frame)
}

// RunConfig drives a headless run.
type RunConfig struct {
	Dt            float64
	Frames        int
	ValidateState bool
}

func DefaultRunConfig() RunConfig {
	return RunConfig{
		Dt:            DefaultDt,
		Frames:        600,
		ValidateState: true,
	}
}

type Result struct {
	Frames  int
	Time    float64
	Bodies  int
	Metrics map[string]float64
	Series  map[string][]float64
	Errors  []error
}
