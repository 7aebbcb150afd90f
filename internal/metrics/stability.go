package metrics

import (
	"github.com/san-kum/sandsim/internal/dynamo"
)

// DefaultSpeedLimit is a speed no body reaches in a well behaved scene.
const DefaultSpeedLimit = 5000.0

// Metric mirrors sim.Metric so this package does not import sim.
type Metric interface {
	Name() string
	Observe(f *dynamo.Frame)
	Value() float64
	Reset()
}

// Stability is the fraction of frames in which every body is finite and
// slower than the threshold.
type Stability struct {
	name       string
	threshold  float64
	violations int
	samples    int
}

func NewStability(threshold float64) *Stability {
	return &Stability{
		name:      "stability",
		threshold: threshold,
	}
}

func (s *Stability) Name() string {
	return s.name
}

func (s *Stability) Observe(f *dynamo.Frame) {
	s.samples++
	for i := range f.Bodies {
		b := &f.Bodies[i]
		if !b.IsValid() || b.Speed() > s.threshold {
			s.violations++
			break
		}
	}
}

func (s *Stability) Value() float64 {
	if s.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(s.violations)/float64(s.samples)
}

func (s *Stability) Reset() {
	s.violations = 0
	s.samples = 0
}
