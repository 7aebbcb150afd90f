package constraints

import "github.com/san-kum/sandsim/internal/dynamo"

// degenerateDistance is the separation below which a spring has no usable
// direction.
const degenerateDistance = 1e-9

// dampScale converts the damping tunable into the force coefficient.
const dampScale = 0.1

// SpringForce returns the force applied to body A (body B receives the
// negation). Coincident bodies get damping only.
func SpringForce(l dynamo.Link, a, b *dynamo.Body, tn *dynamo.Tunables) dynamo.Vec2 {
	delta := b.Pos.Sub(a.Pos)
	dist := delta.Length()

	f := b.Vel.Sub(a.Vel).Scale(tn.DampConst * dampScale)
	if dist > degenerateDistance {
		dir := delta.Scale(1 / dist)
		f = f.Add(dir.Scale((dist - l.RestLength) * tn.SpringConst))
	}
	return f
}

// ApplySpring accumulates the spring-damper force of l into both bodies.
func ApplySpring(l dynamo.Link, bodies []dynamo.Body, tn *dynamo.Tunables) {
	if !valid(l.A, l.B, len(bodies)) {
		return
	}
	a, b := &bodies[l.A], &bodies[l.B]
	f := SpringForce(l, a, b, tn)
	a.Force = a.Force.Add(f)
	b.Force = b.Force.Sub(f)
}

// ApplyStaticLink moves both bodies half the length error along each axis
// independently. This is not a projection onto the separating direction.
func ApplyStaticLink(l dynamo.StaticLink, bodies []dynamo.Body) {
	if !valid(l.A, l.B, len(bodies)) {
		return
	}
	a, b := &bodies[l.A], &bodies[l.B]
	half := (a.Pos.Distance(b.Pos) - l.RestLength) / 2

	sx := dynamo.Sign(b.Pos.X - a.Pos.X)
	sy := dynamo.Sign(b.Pos.Y - a.Pos.Y)
	a.Pos.X += sx * half
	b.Pos.X -= sx * half
	a.Pos.Y += sy * half
	b.Pos.Y -= sy * half
}

// Strain is the relative length error of a constraint.
func Strain(a, b *dynamo.Body, rest float64) float64 {
	if rest <= 0 {
		return 0
	}
	return (a.Pos.Distance(b.Pos) - rest) / rest
}

func valid(a, b, n int) bool {
	return a != b && a >= 0 && b >= 0 && a < n && b < n
}
