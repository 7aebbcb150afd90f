package sim

import (
	"fmt"
	"io"
	"math"
	"math/rand"

	"github.com/charmbracelet/log"
	"github.com/san-kum/sandsim/internal/collision"
	"github.com/san-kum/sandsim/internal/constraints"
	"github.com/san-kum/sandsim/internal/dynamo"
	"github.com/san-kum/sandsim/internal/grid"
	"github.com/san-kum/sandsim/internal/integrators"
)

// World owns every body and link of one sandbox and advances them one
// frame at a time. It is not safe for concurrent use.
type World struct {
	width, height float64

	bodies []dynamo.Body
	links  []dynamo.Link
	static []dynamo.StaticLink

	tunables   dynamo.Tunables
	cellSize   float64
	grid       *grid.SpatialGrid
	integrator *integrators.Euler
	resolver   *collision.Resolver
	pairs      []dynamo.Pair

	step      int
	time      float64
	jittered  int
	paletteAt int
	logger    *log.Logger

	metrics   []Metric
	observers []Observer
}

// New builds an empty world.
func New(opts Options) (*World, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	tn := dynamo.DefaultTunables()
	if opts.Tunables != nil {
		tn = *opts.Tunables
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	w := &World{
		width:      opts.Width,
		height:     opts.Height,
		tunables:   tn,
		cellSize:   opts.CellSize,
		grid:       grid.New(opts.Width, opts.Height, opts.CellSize),
		integrator: integrators.NewEuler(opts.Width, opts.Height),
		resolver:   collision.NewResolver(rand.New(rand.NewSource(opts.Seed))),
		logger:     logger,
	}
	logger.Debug("world created", "width", opts.Width, "height", opts.Height,
		"cell", opts.CellSize, "cols", w.grid.Cols(), "rows", w.grid.Rows(), "seed", opts.Seed)
	return w, nil
}

// Spawn adds a single body and returns its id. A non-positive radius falls
// back to the default radius.
func (w *World) Spawn(radius float64, c dynamo.Color, pos dynamo.Vec2) int {
	if radius <= 0 || math.IsNaN(radius) {
		radius = w.tunables.DefaultRadius
	}
	w.bodies = append(w.bodies, dynamo.NewBody(radius, pos, c))
	w.fitGrid(radius)
	return len(w.bodies) - 1
}

// CreateRope hangs a rope of static links from anchor.
func (w *World) CreateRope(anchor dynamo.Vec2, length float64, segments int) error {
	comp, err := constraints.Rope(anchor, length, segments, w.tunables.DefaultRadius, len(w.bodies), w.nextColor())
	if err != nil {
		w.logger.Debug("rope rejected", "err", err)
		return fmt.Errorf("create rope: %w", err)
	}
	w.add(comp)
	w.logger.Debug("rope created", "anchor", anchor, "bodies", len(comp.Bodies))
	return nil
}

// CreateSoftBody builds a ring of count bodies joined by static links.
func (w *World) CreateSoftBody(center dynamo.Vec2, count int, radius, subRadius float64) error {
	comp, err := constraints.SoftBody(center, count, radius, subRadius, len(w.bodies), w.nextColor())
	if err != nil {
		w.logger.Debug("softbody rejected", "err", err)
		return fmt.Errorf("create softbody: %w", err)
	}
	w.add(comp)
	w.logger.Debug("softbody created", "center", center, "bodies", len(comp.Bodies))
	return nil
}

// CreateSpringBody builds a ring of count bodies joined by springs.
func (w *World) CreateSpringBody(center dynamo.Vec2, count int, radius, subRadius float64) error {
	comp, err := constraints.SpringBody(center, count, radius, subRadius, len(w.bodies), w.nextColor())
	if err != nil {
		w.logger.Debug("springbody rejected", "err", err)
		return fmt.Errorf("create springbody: %w", err)
	}
	w.add(comp)
	w.logger.Debug("springbody created", "center", center, "bodies", len(comp.Bodies))
	return nil
}

func (w *World) add(comp *constraints.Composite) {
	w.bodies = append(w.bodies, comp.Bodies...)
	w.links = append(w.links, comp.Links...)
	w.static = append(w.static, comp.StaticLinks...)
	for i := range comp.Bodies {
		w.fitGrid(comp.Bodies[i].Radius)
	}
}

// fitGrid widens the grid cells so that a body of the given radius can only
// overlap bodies binned in its 3x3 neighbourhood.
func (w *World) fitGrid(radius float64) {
	if 2*radius <= w.grid.CellSize() {
		return
	}
	w.grid = grid.New(w.width, w.height, 2*radius)
	w.logger.Debug("grid widened", "cell", 2*radius, "cols", w.grid.Cols(), "rows", w.grid.Rows())
}

// SetDrag latches the dragged flag of a body. Unknown ids are ignored.
func (w *World) SetDrag(id int, dragged bool) {
	if id < 0 || id >= len(w.bodies) {
		return
	}
	w.bodies[id].Dragged = dragged
}

// ReleaseAll clears every drag latch.
func (w *World) ReleaseAll() {
	for i := range w.bodies {
		w.bodies[i].Dragged = false
	}
}

// Tick advances the world by dt (scaled by the time-scale tunable). Dragged
// bodies are pulled onto target when it is non-nil.
//
// Order: integrate and bin every body, collect candidate pairs, resolve
// them, then apply springs and static links.
func (w *World) Tick(dt float64, target *dynamo.Vec2) {
	dt *= w.tunables.TimeScale
	if dt <= 0 || math.IsNaN(dt) || math.IsInf(dt, 0) {
		return
	}

	w.grid.Reset()
	for i := range w.bodies {
		w.integrator.Step(&w.bodies[i], dt, &w.tunables, target)
		w.grid.Insert(w.bodies[i].Pos, i)
	}

	w.pairs = w.grid.CandidatePairs(w.bodies, w.pairs[:0])
	if n := w.resolver.Resolve(w.pairs, w.bodies); n > 0 {
		w.jittered += n
		w.logger.Debug("coincident bodies jittered", "pairs", n, "step", w.step)
	}

	for _, l := range w.links {
		constraints.ApplySpring(l, w.bodies, &w.tunables)
	}
	for _, l := range w.static {
		constraints.ApplyStaticLink(l, w.bodies)
	}

	w.step++
	w.time += dt
}

// Reset removes every body and link and rewinds the clock. Tunables are kept.
func (w *World) Reset() {
	w.bodies = w.bodies[:0]
	w.links = w.links[:0]
	w.static = w.static[:0]
	w.pairs = w.pairs[:0]
	w.step, w.time, w.jittered = 0, 0, 0
	if w.grid.CellSize() != w.cellSize {
		w.grid = grid.New(w.width, w.height, w.cellSize)
	}
	w.grid.Reset()
	w.logger.Debug("world reset")
}

// Validate reports the first body holding a NaN or Inf.
func (w *World) Validate() error {
	for i := range w.bodies {
		if !w.bodies[i].IsValid() {
			return &dynamo.SimulationError{Step: w.step, Time: w.time, Body: i, Wrapped: dynamo.ErrInvalidState}
		}
	}
	return nil
}

// Bodies exposes the body slice for rendering. Callers must not retain it
// across Spawn or builder calls, and must not modify it.
func (w *World) Bodies() []dynamo.Body { return w.bodies }

func (w *World) Body(id int) (dynamo.Body, bool) {
	if id < 0 || id >= len(w.bodies) {
		return dynamo.Body{}, false
	}
	return w.bodies[id], true
}

func (w *World) Links() []dynamo.Link             { return w.links }
func (w *World) StaticLinks() []dynamo.StaticLink { return w.static }
func (w *World) Len() int                         { return len(w.bodies) }
func (w *World) Tunables() *dynamo.Tunables       { return &w.tunables }
func (w *World) Bounds() (float64, float64)       { return w.width, w.height }
func (w *World) Step() int                        { return w.step }
func (w *World) Time() float64                    { return w.time }

// CellSize is the current broad-phase cell size. It starts at the configured
// size and grows to the largest body diameter.
func (w *World) CellSize() float64 { return w.grid.CellSize() }

// Pairs is the number of directed candidate pairs found on the last tick.
func (w *World) Pairs() int { return len(w.pairs) }

// Jittered is the running count of pairs resolved by the jitter fallback.
func (w *World) Jittered() int { return w.jittered }

// Frame returns a view of the current state. Slices alias world storage.
func (w *World) Frame() *dynamo.Frame {
	return &dynamo.Frame{
		Step:        w.step,
		Time:        w.time,
		Bodies:      w.bodies,
		Links:       w.links,
		StaticLinks: w.static,
		Pairs:       len(w.pairs),
	}
}

var palette = []dynamo.Color{
	dynamo.RGB(0xff, 0x6b, 0x6b),
	dynamo.RGB(0xfe, 0xca, 0x57),
	dynamo.RGB(0x00, 0xa8, 0xcc),
	dynamo.RGB(0x5f, 0xd0, 0x68),
	dynamo.RGB(0xff, 0x9f, 0xf3),
}

// NextColor cycles through a small palette, for callers that do not care.
func (w *World) NextColor() dynamo.Color { return w.nextColor() }

func (w *World) nextColor() dynamo.Color {
	c := palette[w.paletteAt%len(palette)]
	w.paletteAt++
	return c
}
