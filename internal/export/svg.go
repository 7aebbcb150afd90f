package export

import (
	"fmt"
	"strings"

	"github.com/san-kum/sandsim/internal/dynamo"
)

const (
	background = "#0a0a0a"
	springInk  = "#feca57"
	rigidInk   = "#fff5f5"
)

// FrameToSVG draws a frame in world units: walls, links, bodies and, when
// given, one trail polyline per body.
func FrameToSVG(f *dynamo.Frame, width, height float64, trails [][]dynamo.Vec2) string {
	if f == nil {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
`, width, height, width, height, background))

	for i, trail := range trails {
		if len(trail) < 2 {
			continue
		}
		ink := "#444466"
		if i < len(f.Bodies) {
			ink = f.Bodies[i].Color.Hex()
		}
		sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="%s" stroke-opacity="0.4" stroke-width="1" d="M`, ink))
		for j, p := range trail {
			if j == 0 {
				sb.WriteString(fmt.Sprintf("%.1f,%.1f", p.X, p.Y))
			} else {
				sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", p.X, p.Y))
			}
		}
		sb.WriteString("\"/>\n")
	}

	line := func(a, b int, ink string) {
		if a < 0 || b < 0 || a >= len(f.Bodies) || b >= len(f.Bodies) {
			return
		}
		pa, pb := f.Bodies[a].Pos, f.Bodies[b].Pos
		sb.WriteString(fmt.Sprintf(`<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s"/>
`, pa.X, pa.Y, pb.X, pb.Y, ink))
	}
	for _, l := range f.Links {
		line(l.A, l.B, springInk)
	}
	for _, l := range f.StaticLinks {
		line(l.A, l.B, rigidInk)
	}

	for i := range f.Bodies {
		b := &f.Bodies[i]
		sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s"/>
`, b.Pos.X, b.Pos.Y, b.Radius, b.Color.Hex()))
	}

	sb.WriteString("</svg>\n")
	return sb.String()
}

// Tracer records body positions every Every ticks, keeping at most Max
// points per body. It implements sim.Observer.
type Tracer struct {
	Every  int
	Max    int
	trails [][]dynamo.Vec2
}

func NewTracer(every, limit int) *Tracer {
	if every < 1 {
		every = 1
	}
	return &Tracer{Every: every, Max: limit}
}

func (t *Tracer) OnTick(f *dynamo.Frame) {
	if f.Step%t.Every != 0 {
		return
	}
	for len(t.trails) < len(f.Bodies) {
		t.trails = append(t.trails, nil)
	}
	for i := range f.Bodies {
		tr := append(t.trails[i], f.Bodies[i].Pos)
		if t.Max > 0 && len(tr) > t.Max {
			tr = tr[len(tr)-t.Max:]
		}
		t.trails[i] = tr
	}
}

// Trails returns the recorded polylines indexed by body id.
func (t *Tracer) Trails() [][]dynamo.Vec2 { return t.trails }
