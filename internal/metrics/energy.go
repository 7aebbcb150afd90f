package metrics

import (
	"math"

	"github.com/san-kum/sandsim/internal/constraints"
	"github.com/san-kum/sandsim/internal/dynamo"
)

// KineticEnergy averages the total kinetic energy of all bodies over a run.
// Bodies have unit mass.
type KineticEnergy struct {
	name    string
	total   float64
	last    float64
	samples int
}

func NewKineticEnergy() *KineticEnergy {
	return &KineticEnergy{name: "kinetic_energy"}
}

func (k *KineticEnergy) Name() string { return k.name }

func (k *KineticEnergy) Observe(f *dynamo.Frame) {
	k.last = Kinetic(f.Bodies)
	k.total += k.last
	k.samples++
}

func (k *KineticEnergy) Value() float64 {
	if k.samples == 0 {
		return 0
	}
	return k.total / float64(k.samples)
}

func (k *KineticEnergy) Sample() float64 { return k.last }

func (k *KineticEnergy) Reset() {
	k.total, k.last = 0, 0
	k.samples = 0
}

// Kinetic sums ½|v|² over bodies.
func Kinetic(bodies []dynamo.Body) float64 {
	var e float64
	for i := range bodies {
		v := bodies[i].Vel
		e += 0.5 * v.Dot(v)
	}
	return e
}

type MaxSpeed struct {
	name string
	max  float64
	last float64
}

func NewMaxSpeed() *MaxSpeed {
	return &MaxSpeed{name: "max_speed"}
}

func (m *MaxSpeed) Name() string { return m.name }

func (m *MaxSpeed) Observe(f *dynamo.Frame) {
	m.last = 0
	for i := range f.Bodies {
		m.last = math.Max(m.last, f.Bodies[i].Speed())
	}
	m.max = math.Max(m.max, m.last)
}

func (m *MaxSpeed) Value() float64  { return m.max }
func (m *MaxSpeed) Sample() float64 { return m.last }

func (m *MaxSpeed) Reset() {
	m.max, m.last = 0, 0
}

// LinkStrain tracks the worst relative length error of any spring or static
// link seen during a run. Sample is the mean absolute strain of the last
// frame.
type LinkStrain struct {
	name  string
	worst float64
	last  float64
}

func NewLinkStrain() *LinkStrain {
	return &LinkStrain{name: "link_strain"}
}

func (s *LinkStrain) Name() string { return s.name }

func (s *LinkStrain) Observe(f *dynamo.Frame) {
	var sum float64
	n := 0
	measure := func(a, b int, rest float64) {
		if a < 0 || b < 0 || a >= len(f.Bodies) || b >= len(f.Bodies) {
			return
		}
		e := math.Abs(constraints.Strain(&f.Bodies[a], &f.Bodies[b], rest))
		s.worst = math.Max(s.worst, e)
		sum += e
		n++
	}
	for _, l := range f.Links {
		measure(l.A, l.B, l.RestLength)
	}
	for _, l := range f.StaticLinks {
		measure(l.A, l.B, l.RestLength)
	}
	s.last = 0
	if n > 0 {
		s.last = sum / float64(n)
	}
}

func (s *LinkStrain) Value() float64  { return s.worst }
func (s *LinkStrain) Sample() float64 { return s.last }

func (s *LinkStrain) Reset() {
	s.worst, s.last = 0, 0
}

// Contacts averages the number of touching body pairs per frame. The broad
// phase reports each contact in both directions, so pairs are halved.
type Contacts struct {
	name    string
	total   float64
	last    float64
	samples int
}

func NewContacts() *Contacts {
	return &Contacts{name: "contacts"}
}

func (c *Contacts) Name() string { return c.name }

func (c *Contacts) Observe(f *dynamo.Frame) {
	c.last = float64(f.Pairs) / 2
	c.total += c.last
	c.samples++
}

func (c *Contacts) Value() float64 {
	if c.samples == 0 {
		return 0
	}
	return c.total / float64(c.samples)
}

func (c *Contacts) Sample() float64 { return c.last }

func (c *Contacts) Reset() {
	c.total, c.last = 0, 0
	c.samples = 0
}

// Default is the metric set used by the CLI.
func Default() []Metric {
	return []Metric{
		NewKineticEnergy(),
		NewMaxSpeed(),
		NewLinkStrain(),
		NewContacts(),
		NewStability(DefaultSpeedLimit),
	}
}
