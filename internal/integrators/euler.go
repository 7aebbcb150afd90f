package integrators

import (
	"math"

	"github.com/san-kum/sandsim/internal/dynamo"
)

// wallMargin is how close (in world units) an edge must get to a wall to
// count as touching it.
const wallMargin = 1.0

// Euler advances bodies with a semi-implicit Euler step inside a
// [0,Width) x [0,Height) box.
type Euler struct {
	Width, Height float64
}

func NewEuler(width, height float64) *Euler {
	return &Euler{Width: width, Height: height}
}

// Step integrates one body in place. dt is the already time-scaled step.
// When target is non-nil and the body is dragged it is moved straight onto
// the target and all force integration is skipped.
func (e *Euler) Step(b *dynamo.Body, dt float64, tn *dynamo.Tunables, target *dynamo.Vec2) {
	if dt <= 0 {
		return
	}

	if target != nil && b.Dragged {
		b.Vel = target.Sub(b.Pos).Scale(1 / dt)
		b.Pos = b.Pos.Add(b.Vel.Scale(dt))
		b.Force = dynamo.Vec2{}
		e.Clamp(b)
		return
	}

	loss := tn.CollideLoss

	if e.touchingRight(b) && b.Vel.X >= 0 || e.touchingLeft(b) && b.Vel.X <= 0 {
		b.Vel.X = Reflect(b.Vel.X, loss)
		b.Acc.X = Reflect(b.Acc.X, loss)
	}

	if tn.Gravity == 0 && e.touchingFloor(b) && b.Vel.Y >= 0 {
		b.Vel.Y = Reflect(b.Vel.Y, loss)
		b.Acc.Y = Reflect(b.Acc.Y, loss)
	}

	// ceiling applies whatever the sign of gravity
	if e.touchingCeiling(b) && b.Vel.Y <= 0 {
		b.Vel.Y = Reflect(b.Vel.Y, loss)
		b.Acc.Y = Reflect(b.Acc.Y, loss)
	}

	// Negative gravity leaves Acc.Y to whatever other terms put there.
	if tn.Gravity > 0 {
		b.Acc.Y = tn.Gravity
		if e.touchingFloor(b) && b.Vel.Y > 0 {
			b.Vel.Y = Reflect(b.Vel.Y, loss)
		}
	}

	// Drag grows with v² and is signed against the acceleration, not the
	// velocity.
	air := tn.AirResistance
	b.Acc.X -= dynamo.Sign(b.Acc.X) * air * b.Vel.X * b.Vel.X * dt
	b.Acc.Y -= dynamo.Sign(b.Acc.Y) * air * b.Vel.Y * b.Vel.Y * dt

	b.Vel = b.Vel.Add(b.Acc.Add(b.Force).Scale(dt))
	b.Vel.X *= 1 - air*dt
	b.Force = dynamo.Vec2{}

	b.Pos = b.Pos.Add(b.Vel.Scale(dt))
	e.Clamp(b)
}

// Clamp keeps the body inside [r, bound-1-r] on both axes.
func (e *Euler) Clamp(b *dynamo.Body) {
	b.Pos.X = clamp(b.Pos.X, b.Radius, e.Width-1-b.Radius)
	b.Pos.Y = clamp(b.Pos.Y, b.Radius, e.Height-1-b.Radius)
}

// Reflect flips v and scales its magnitude by (1+loss). Negative loss
// removes energy.
func Reflect(v, loss float64) float64 {
	return -v + dynamo.Sign(-v)*loss*math.Abs(v)
}

func (e *Euler) touchingRight(b *dynamo.Body) bool {
	return b.Pos.X+b.Radius >= e.Width-wallMargin
}

func (e *Euler) touchingLeft(b *dynamo.Body) bool {
	return b.Pos.X-b.Radius <= wallMargin
}

func (e *Euler) touchingFloor(b *dynamo.Body) bool {
	return b.Pos.Y+b.Radius >= e.Height-wallMargin
}

func (e *Euler) touchingCeiling(b *dynamo.Body) bool {
	return b.Pos.Y-b.Radius <= wallMargin
}

func clamp(v, lo, hi float64) float64 {
	if v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	return v
}
