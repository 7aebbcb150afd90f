// Package command parses and applies the sandbox console language.
//
// One command per line, space separated:
//
//	circle X Y [R]
//	rope X Y [LENGTH] [SEGMENTS]
//	softbody X Y COUNT RADIUS [SUBRADIUS]
//	springbody X Y COUNT RADIUS [SUBRADIUS]
//	set PARAM VALUE
//	get [PARAM]
//	reset
//
// A rope LENGTH of "-" keeps the default length while naming SEGMENTS.
package command

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/san-kum/sandsim/internal/dynamo"
)

// DefaultRopeSegments is used when a rope command names no segment count.
const DefaultRopeSegments = 10

// defaultArg stands in for an omitted positional argument.
const defaultArg = "-"

// World is the part of a simulation the console drives.
type World interface {
	Spawn(radius float64, c dynamo.Color, pos dynamo.Vec2) int
	CreateRope(anchor dynamo.Vec2, length float64, segments int) error
	CreateSoftBody(center dynamo.Vec2, count int, radius, subRadius float64) error
	CreateSpringBody(center dynamo.Vec2, count int, radius, subRadius float64) error
	Tunables() *dynamo.Tunables
	NextColor() dynamo.Color
	Reset()
}

// Command is one parsed console line. Apply returns a short status message.
type Command interface {
	Apply(w World) (string, error)
	String() string
}

// Circle spawns one body. A zero Radius means the default radius.
type Circle struct {
	Pos    dynamo.Vec2
	Radius float64
}

func (c Circle) Apply(w World) (string, error) {
	id := w.Spawn(c.Radius, w.NextColor(), c.Pos)
	return fmt.Sprintf("circle #%d", id), nil
}

func (c Circle) String() string {
	s := "circle " + num(c.Pos.X) + " " + num(c.Pos.Y)
	if c.Radius != 0 {
		s += " " + num(c.Radius)
	}
	return s
}

// Rope hangs a rope from Anchor. A nil Length means Segments times the
// default link length; a nil Segments means DefaultRopeSegments. Explicit
// values are passed through unchecked so the builder can reject them.
type Rope struct {
	Anchor   dynamo.Vec2
	Length   *float64
	Segments *int
}

func (r Rope) Apply(w World) (string, error) {
	segments := DefaultRopeSegments
	if r.Segments != nil {
		segments = *r.Segments
	}
	length := float64(segments) * w.Tunables().DefaultLinkLength
	if r.Length != nil {
		length = *r.Length
	}
	if err := w.CreateRope(r.Anchor, length, segments); err != nil {
		return "", err
	}
	return fmt.Sprintf("rope of %d segments", segments), nil
}

func (r Rope) String() string {
	s := "rope " + num(r.Anchor.X) + " " + num(r.Anchor.Y)
	switch {
	case r.Length != nil:
		s += " " + num(*r.Length)
	case r.Segments != nil:
		s += " " + defaultArg
	}
	if r.Segments != nil {
		s += " " + strconv.Itoa(*r.Segments)
	}
	return s
}

// Ring builds a soft body, or a spring body when Springs is set. A zero
// SubRadius means the default radius.
type Ring struct {
	Center    dynamo.Vec2
	Count     int
	Radius    float64
	SubRadius float64
	Springs   bool
}

func (r Ring) Apply(w World) (string, error) {
	sub := r.SubRadius
	if sub == 0 {
		sub = w.Tunables().DefaultRadius
	}
	create := w.CreateSoftBody
	if r.Springs {
		create = w.CreateSpringBody
	}
	if err := create(r.Center, r.Count, r.Radius, sub); err != nil {
		return "", err
	}
	return fmt.Sprintf("%s of %d bodies", r.verb(), r.Count), nil
}

func (r Ring) verb() string {
	if r.Springs {
		return "springbody"
	}
	return "softbody"
}

func (r Ring) String() string {
	s := r.verb() + " " + num(r.Center.X) + " " + num(r.Center.Y) + " " +
		strconv.Itoa(r.Count) + " " + num(r.Radius)
	if r.SubRadius != 0 {
		s += " " + num(r.SubRadius)
	}
	return s
}

// Set assigns a tunable.
type Set struct {
	Param string
	Value float64
}

func (s Set) Apply(w World) (string, error) {
	if err := w.Tunables().Set(s.Param, s.Value); err != nil {
		return "", err
	}
	return s.Param + " = " + num(s.Value), nil
}

func (s Set) String() string { return "set " + s.Param + " " + num(s.Value) }

// Get reads one tunable, or lists all of them when Param is empty.
type Get struct {
	Param string
}

func (g Get) Apply(w World) (string, error) {
	tn := w.Tunables()
	if g.Param != "" {
		v, err := tn.Get(g.Param)
		if err != nil {
			return "", err
		}
		return g.Param + " = " + num(v), nil
	}

	parts := make([]string, 0, len(tn.Names()))
	for _, name := range tn.Names() {
		v, _ := tn.Get(name)
		parts = append(parts, name+"="+num(v))
	}
	return strings.Join(parts, " "), nil
}

func (g Get) String() string {
	if g.Param == "" {
		return "get"
	}
	return "get " + g.Param
}

// Reset clears the world.
type Reset struct{}

func (Reset) Apply(w World) (string, error) {
	w.Reset()
	return "reset", nil
}

func (Reset) String() string { return "reset" }

func num(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
