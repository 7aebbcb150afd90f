package control

import (
	"math"

	"github.com/san-kum/sandsim/internal/dynamo"
)

// DefaultPickSlack widens every body's hit area so small bodies can be
// grabbed.
const DefaultPickSlack = 5.0

// Draggable is the part of a world a Drag needs.
type Draggable interface {
	Bodies() []dynamo.Body
	SetDrag(id int, dragged bool)
}

// Drag is a pointer latch. It holds at most one body.
type Drag struct {
	PickSlack float64

	id     int
	held   bool
	target dynamo.Vec2
}

func NewDrag() *Drag {
	return &Drag{PickSlack: DefaultPickSlack, id: -1}
}

// Press latches the body nearest to pos whose edge lies within PickSlack of
// it. It reports the latched id, or false when nothing is in reach. A press
// while already holding a body releases that body first.
func (d *Drag) Press(w Draggable, pos dynamo.Vec2) (int, bool) {
	d.Release(w)

	id := Nearest(w.Bodies(), pos, d.PickSlack)
	if id < 0 {
		return -1, false
	}

	w.SetDrag(id, true)
	d.id, d.held, d.target = id, true, pos
	return id, true
}

// Move updates the target. It is ignored when nothing is held.
func (d *Drag) Move(pos dynamo.Vec2) {
	if d.held {
		d.target = pos
	}
}

// Release clears the latch on the held body, if any.
func (d *Drag) Release(w Draggable) {
	if !d.held {
		return
	}
	w.SetDrag(d.id, false)
	d.id, d.held = -1, false
}

// Target is the drag target for the next tick, or nil when nothing is held.
func (d *Drag) Target() *dynamo.Vec2 {
	if !d.held {
		return nil
	}
	t := d.target
	return &t
}

// Held returns the latched body id.
func (d *Drag) Held() (int, bool) { return d.id, d.held }

// Nearest returns the id of the body closest to pos among those whose edge
// is within slack of it, or -1.
func Nearest(bodies []dynamo.Body, pos dynamo.Vec2, slack float64) int {
	best, bestDist := -1, math.Inf(1)
	for i := range bodies {
		d := bodies[i].Pos.Distance(pos)
		if d > bodies[i].Radius+slack {
			continue
		}
		if d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}
