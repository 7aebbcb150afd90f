package dynamo

import (
	"fmt"
	"math"
)

// Vec2 is a 2D vector. Screen convention: +Y points down.
type Vec2 struct {
	X, Y float64
}

func V(x, y float64) Vec2 { return Vec2{X: x, Y: y} }

func (v Vec2) Add(o Vec2) Vec2         { return Vec2{v.X + o.X, v.Y + o.Y} }
func (v Vec2) Sub(o Vec2) Vec2         { return Vec2{v.X - o.X, v.Y - o.Y} }
func (v Vec2) Scale(s float64) Vec2    { return Vec2{v.X * s, v.Y * s} }
func (v Vec2) Dot(o Vec2) float64      { return v.X*o.X + v.Y*o.Y }
func (v Vec2) Length() float64         { return math.Hypot(v.X, v.Y) }
func (v Vec2) Distance(o Vec2) float64 { return v.Sub(o).Length() }

func (v Vec2) IsValid() bool {
	return !math.IsNaN(v.X) && !math.IsNaN(v.Y) && !math.IsInf(v.X, 0) && !math.IsInf(v.Y, 0)
}

func (v Vec2) String() string {
	return fmt.Sprintf("(%.3f, %.3f)", v.X, v.Y)
}

// Color is an opaque RGBA value carried for the renderer; the core never reads it.
type Color uint32

func RGB(r, g, b uint8) Color {
	return Color(uint32(r)<<24 | uint32(g)<<16 | uint32(b)<<8 | 0xff)
}

func (c Color) RGBA() (r, g, b, a uint8) {
	return uint8(c >> 24), uint8(c >> 16), uint8(c >> 8), uint8(c)
}

func (c Color) Hex() string {
	r, g, b, _ := c.RGBA()
	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}

// Body is a circular point mass.
type Body struct {
	Radius float64
	Pos    Vec2
	Vel    Vec2
	Acc    Vec2
	// Force accumulates spring contributions for the next integration pass
	// and is cleared by it.
	Force   Vec2
	Dragged bool
	Color   Color
}

func NewBody(radius float64, pos Vec2, c Color) Body {
	return Body{Radius: radius, Pos: pos, Color: c}
}

func (b *Body) Speed() float64 { return b.Vel.Length() }

func (b *Body) IsValid() bool {
	return b.Pos.IsValid() && b.Vel.IsValid() && b.Acc.IsValid()
}

// Link is a spring between two bodies.
type Link struct {
	A, B       int
	RestLength float64
}

// StaticLink is a rigid distance constraint between two bodies.
type StaticLink struct {
	A, B       int
	RestLength float64
}

// Pair is a directed collision candidate produced by the broad phase.
type Pair struct {
	A, B int
}

// Frame is a read-only view of the world after a tick.
type Frame struct {
	Step        int
	Time        float64
	Bodies      []Body
	Links       []Link
	StaticLinks []StaticLink
	Pairs       int
}

// Sign returns -1, 0 or 1.
func Sign(x float64) float64 {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return 0
}
