package sim_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/sandsim/internal/dynamo"
	"github.com/san-kum/sandsim/internal/sim"
)

const dt = sim.DefaultDt

func newWorld(seed int64, tweak func(*dynamo.Tunables)) *sim.World {
	tn := dynamo.DefaultTunables()
	if tweak != nil {
		tweak(&tn)
	}
	opts := sim.DefaultOptions()
	opts.Seed = seed
	opts.Tunables = &tn
	w, err := sim.New(opts)
	Expect(err).NotTo(HaveOccurred())
	return w
}

func weightless(tn *dynamo.Tunables) {
	tn.Gravity = 0
	tn.AirResistance = 0
}

var _ = Describe("World", func() {
	var w *sim.World

	BeforeEach(func() {
		w = newWorld(1, nil)
	})

	Describe("construction", func() {
		It("rejects non-positive bounds", func() {
			opts := sim.DefaultOptions()
			opts.Width = 0
			_, err := sim.New(opts)
			Expect(err).To(MatchError(dynamo.ErrInvalidConfig))
		})

		It("rejects a non-positive cell size", func() {
			opts := sim.DefaultOptions()
			opts.CellSize = -1
			_, err := sim.New(opts)
			Expect(err).To(MatchError(dynamo.ErrInvalidConfig))
		})

		It("copies the supplied tunables", func() {
			tn := dynamo.DefaultTunables()
			opts := sim.DefaultOptions()
			opts.Tunables = &tn
			w, err := sim.New(opts)
			Expect(err).NotTo(HaveOccurred())

			tn.Gravity = 123
			Expect(w.Tunables().Gravity).To(Equal(dynamo.DefaultGravity))
		})
	})

	Describe("Spawn", func() {
		It("issues sequential ids", func() {
			Expect(w.Spawn(5, 0, dynamo.V(100, 100))).To(Equal(0))
			Expect(w.Spawn(5, 0, dynamo.V(200, 100))).To(Equal(1))
			Expect(w.Len()).To(Equal(2))
		})

		It("falls back to the default radius", func() {
			id := w.Spawn(0, 0, dynamo.V(100, 100))
			b, ok := w.Body(id)
			Expect(ok).To(BeTrue())
			Expect(b.Radius).To(Equal(w.Tunables().DefaultRadius))
		})

		It("passes colour through untouched", func() {
			c := dynamo.RGB(1, 2, 3)
			id := w.Spawn(5, c, dynamo.V(100, 100))
			b, _ := w.Body(id)
			Expect(b.Color).To(Equal(c))
		})

		It("reports unknown ids", func() {
			_, ok := w.Body(42)
			Expect(ok).To(BeFalse())
		})
	})

	Describe("Tick", func() {
		It("leaves resting bodies alone without gravity", func() {
			w = newWorld(1, weightless)
			w.Spawn(5, 0, dynamo.V(100, 100))
			w.Spawn(5, 0, dynamo.V(300, 400))

			for i := 0; i < 50; i++ {
				w.Tick(dt, nil)
			}

			Expect(w.Bodies()[0].Pos).To(Equal(dynamo.V(100, 100)))
			Expect(w.Bodies()[1].Pos).To(Equal(dynamo.V(300, 400)))
			Expect(w.Step()).To(Equal(50))
		})

		It("pushes overlapping bodies to contact distance", func() {
			w = newWorld(1, weightless)
			w.Spawn(5, 0, dynamo.V(200, 200))
			w.Spawn(5, 0, dynamo.V(204, 203))

			w.Tick(dt, nil)

			b := w.Bodies()
			Expect(b[0].Pos.Distance(b[1].Pos)).To(BeNumerically("~", 10, 1e-9))
			Expect(w.Pairs()).To(Equal(2))
		})

		It("finds overlaps between large and small bodies two cells apart", func() {
			w = newWorld(1, weightless)
			w.Spawn(20, 0, dynamo.V(400, 300))
			w.Spawn(6, 0, dynamo.V(379, 300))
			Expect(w.CellSize()).To(BeNumerically(">=", 40.0))

			w.Tick(dt, nil)

			b := w.Bodies()
			Expect(w.Pairs()).To(Equal(2))
			Expect(b[0].Pos.Distance(b[1].Pos)).To(BeNumerically("~", 26, 1e-9))
		})

		It("widens the grid for large ring members", func() {
			Expect(w.CreateSoftBody(dynamo.V(400, 300), 4, 100, 30)).To(Succeed())
			Expect(w.CellSize()).To(Equal(60.0))
		})

		It("is reproducible for a fixed seed", func() {
			run := func() []dynamo.Body {
				w := newWorld(99, weightless)
				for i := 0; i < 4; i++ {
					w.Spawn(5, 0, dynamo.V(300, 300))
				}
				for i := 0; i < 20; i++ {
					w.Tick(dt, nil)
				}
				return append([]dynamo.Body(nil), w.Bodies()...)
			}

			a, b := run(), run()
			Expect(a).To(Equal(b))
			Expect(a[0].Pos).NotTo(Equal(dynamo.V(300, 300)))
		})

		It("does nothing when time is frozen", func() {
			w.Tunables().TimeScale = 0
			w.Spawn(5, 0, dynamo.V(100, 100))
			w.Tick(dt, nil)
			Expect(w.Step()).To(Equal(0))
			Expect(w.Bodies()[0].Pos).To(Equal(dynamo.V(100, 100)))
		})

		It("lets bodies fall under gravity and stay in bounds", func() {
			id := w.Spawn(5, 0, dynamo.V(400, 100))
			for i := 0; i < 600; i++ {
				w.Tick(dt, nil)
			}
			b, _ := w.Body(id)
			width, height := w.Bounds()
			Expect(b.Pos.Y).To(BeNumerically(">", 100))
			Expect(b.Pos.Y).To(BeNumerically("<=", height-1-b.Radius))
			Expect(b.Pos.X).To(BeNumerically("<=", width-1-b.Radius))
			Expect(w.Validate()).To(Succeed())
		})

		It("reads tunables changed between ticks", func() {
			w = newWorld(1, weightless)
			id := w.Spawn(5, 0, dynamo.V(400, 100))
			w.Tick(dt, nil)
			b, _ := w.Body(id)
			Expect(b.Pos.Y).To(Equal(100.0))

			Expect(w.Tunables().Set("gravity", 50)).To(Succeed())
			w.Tick(dt, nil)
			b, _ = w.Body(id)
			Expect(b.Pos.Y).To(BeNumerically(">", 100))
		})
	})

	Describe("dragging", func() {
		It("moves a dragged body onto the target", func() {
			id := w.Spawn(5, 0, dynamo.V(100, 100))
			w.SetDrag(id, true)
			target := dynamo.V(250, 175)

			w.Tick(dt, &target)

			b, _ := w.Body(id)
			Expect(b.Pos.X).To(BeNumerically("~", 250, 1e-9))
			Expect(b.Pos.Y).To(BeNumerically("~", 175, 1e-9))
		})

		It("ignores the target for bodies that are not dragged", func() {
			w = newWorld(1, weightless)
			id := w.Spawn(5, 0, dynamo.V(100, 100))
			target := dynamo.V(250, 175)
			w.Tick(dt, &target)

			b, _ := w.Body(id)
			Expect(b.Pos).To(Equal(dynamo.V(100, 100)))
		})

		It("ignores unknown ids", func() {
			Expect(func() { w.SetDrag(7, true) }).NotTo(Panic())
		})

		It("releases every latch", func() {
			w.SetDrag(w.Spawn(5, 0, dynamo.V(100, 100)), true)
			w.ReleaseAll()
			Expect(w.Bodies()[0].Dragged).To(BeFalse())
		})
	})

	Describe("composites", func() {
		It("builds a rope of segments+2 bodies", func() {
			Expect(w.CreateRope(dynamo.V(400, 300), 100, 10)).To(Succeed())
			Expect(w.Len()).To(Equal(12))
			Expect(w.StaticLinks()).To(HaveLen(11))
			for _, l := range w.StaticLinks() {
				Expect(l.RestLength).To(Equal(10.0))
			}
		})

		It("offsets link ids past existing bodies", func() {
			w.Spawn(5, 0, dynamo.V(10, 10))
			Expect(w.CreateSoftBody(dynamo.V(300, 300), 6, 40, 4)).To(Succeed())
			Expect(w.StaticLinks()[0].A).To(Equal(1))
			Expect(w.StaticLinks()[5].B).To(Equal(1))
		})

		It("builds spring rings", func() {
			Expect(w.CreateSpringBody(dynamo.V(300, 300), 8, 40, 4)).To(Succeed())
			Expect(w.Links()).To(HaveLen(8))
			Expect(w.StaticLinks()).To(BeEmpty())
		})

		It("rejects degenerate builders without side effects", func() {
			Expect(w.CreateRope(dynamo.V(400, 300), 100, 0)).To(MatchError(dynamo.ErrInvalidComposite))
			Expect(w.CreateSoftBody(dynamo.V(400, 300), 0, 40, 4)).To(MatchError(dynamo.ErrInvalidComposite))
			Expect(w.CreateSpringBody(dynamo.V(400, 300), 0, 40, 4)).To(MatchError(dynamo.ErrInvalidComposite))
			Expect(w.Len()).To(BeZero())
			Expect(w.Links()).To(BeEmpty())
			Expect(w.StaticLinks()).To(BeEmpty())
		})

		It("keeps a hanging rope finite and near its rest length", func() {
			Expect(w.CreateRope(dynamo.V(400, 50), 100, 10)).To(Succeed())
			for i := 0; i < 300; i++ {
				w.Tick(dt, nil)
			}
			Expect(w.Validate()).To(Succeed())

			b := w.Bodies()
			for _, l := range w.StaticLinks() {
				Expect(b[l.A].Pos.Distance(b[l.B].Pos)).To(BeNumerically("<", 3*l.RestLength))
			}
		})

		It("keeps a spring ring finite", func() {
			Expect(w.CreateSpringBody(dynamo.V(400, 300), 10, 50, 4)).To(Succeed())
			for i := 0; i < 300; i++ {
				w.Tick(dt, nil)
			}
			Expect(w.Validate()).To(Succeed())
		})
	})

	Describe("Reset", func() {
		It("clears bodies and links but keeps tunables", func() {
			w.Tunables().Gravity = 3
			Expect(w.CreateRope(dynamo.V(400, 300), 100, 10)).To(Succeed())
			w.Tick(dt, nil)

			w.Reset()

			Expect(w.Len()).To(BeZero())
			Expect(w.StaticLinks()).To(BeEmpty())
			Expect(w.Step()).To(BeZero())
			Expect(w.Tunables().Gravity).To(Equal(3.0))
			Expect(w.Spawn(5, 0, dynamo.V(1, 1))).To(Equal(0))
		})

		It("restores the configured cell size", func() {
			w.Spawn(25, 0, dynamo.V(400, 300))
			Expect(w.CellSize()).To(Equal(50.0))

			w.Reset()

			Expect(w.CellSize()).To(Equal(sim.DefaultCellSize))
		})
	})

	Describe("Frame", func() {
		It("mirrors world state", func() {
			Expect(w.CreateSpringBody(dynamo.V(300, 300), 4, 30, 3)).To(Succeed())
			w.Tick(dt, nil)
			f := w.Frame()
			Expect(f.Step).To(Equal(1))
			Expect(f.Bodies).To(HaveLen(4))
			Expect(f.Links).To(HaveLen(4))
			Expect(f.Time).To(BeNumerically(">", 0))
		})
	})
})
