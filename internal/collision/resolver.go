// Package collision resolves overlapping body pairs reported by the broad
// phase.
package collision

import (
	"math"
	"math/rand"

	"github.com/san-kum/sandsim/internal/dynamo"
)

// MinDistance is the centre distance below which the contact normal is
// considered unstable and the pair is jittered apart instead.
const MinDistance = 1.0

// Resolver performs circle-circle narrow phase and response. The rng drives
// the jitter fallback; seed it for reproducible runs.
type Resolver struct {
	rng *rand.Rand
}

func NewResolver(rng *rand.Rand) *Resolver {
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	return &Resolver{rng: rng}
}

// Resolve corrects every pair in order and returns how many were jittered.
// Geometry is recomputed per pair, so a pair reported twice is corrected
// against the positions left by the first visit.
func (r *Resolver) Resolve(pairs []dynamo.Pair, bodies []dynamo.Body) int {
	jittered := 0
	for _, p := range pairs {
		if p.A == p.B || p.A < 0 || p.B < 0 || p.A >= len(bodies) || p.B >= len(bodies) {
			continue
		}
		if r.resolvePair(&bodies[p.A], &bodies[p.B]) {
			jittered++
		}
	}
	return jittered
}

func (r *Resolver) resolvePair(a, b *dynamo.Body) bool {
	d := a.Pos.Sub(b.Pos)
	dist := d.Length()

	if dist < MinDistance {
		r.jitter(a)
		r.jitter(b)
		return true
	}

	overlap := a.Radius + b.Radius - dist
	ratio := overlap / dist
	a.Pos = a.Pos.Add(d.Scale(ratio / 2))
	b.Pos = b.Pos.Sub(d.Scale(ratio / 2))

	// only the normal component of velocity survives the contact
	n := d.Scale(1 / dist)
	a.Acc = dynamo.Vec2{}
	b.Acc = dynamo.Vec2{}
	a.Vel = n.Scale(a.Vel.Dot(n))
	b.Vel = n.Scale(b.Vel.Dot(n))
	return false
}

func (r *Resolver) jitter(b *dynamo.Body) {
	b.Pos.X += r.rng.Float64()*2 - 1
	b.Pos.Y += r.rng.Float64()*2 - 1
}

// Penetration reports how deep two bodies overlap; zero when apart.
func Penetration(a, b *dynamo.Body) float64 {
	return math.Max(0, a.Radius+b.Radius-a.Pos.Distance(b.Pos))
}
