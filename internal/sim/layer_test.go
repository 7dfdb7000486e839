package sim_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/driftfield/internal/field"
	"github.com/san-kum/driftfield/internal/sim"
)

type countingSurface struct {
	clears  int
	discs   int
	w, h    int
	resized int
}

func (s *countingSurface) Clear()                                     { s.clears++ }
func (s *countingSurface) FillCircle(field.Vec2, float64, field.RGBA) { s.discs++ }
func (s *countingSurface) Resize(w, h int) {
	s.w, s.h = w, h
	s.resized++
}

func singleParticleField(pos field.Vec2, density float64) *field.Field {
	params := field.DefaultParams()
	params.Count = 1
	f, err := field.FromParticles(params, []field.Particle{{
		Pos:     pos,
		Base:    pos,
		Radius:  1,
		Color:   field.RGBA{R: 13, G: 43, B: 38, A: 0.2},
		Density: density,
	}})
	Expect(err).NotTo(HaveOccurred())
	return f
}

var _ = Describe("Layer", func() {
	var (
		surface *countingSurface
		layer   *sim.Layer
		bounds  field.Bounds
	)

	BeforeEach(func() {
		surface = &countingSurface{}
		bounds = field.Bounds{W: 800, H: 600}
		layer = sim.NewLayer(singleParticleField(field.Vec2{X: 400, Y: 300}, 10), bounds, surface)
	})

	It("sizes the surface to the viewport on construction", func() {
		Expect(surface.w).To(Equal(800))
		Expect(surface.h).To(Equal(600))
	})

	It("starts with the pointer offscreen", func() {
		Expect(layer.Pointer()).To(Equal(field.Offscreen))
		Expect(layer.Frame()).To(Succeed())
		Expect(layer.Field().Particles()[0].Pos).To(Equal(field.Vec2{X: 400, Y: 300}))
	})

	It("clears and draws every particle each frame", func() {
		Expect(layer.Frame()).To(Succeed())
		Expect(layer.Frame()).To(Succeed())
		Expect(surface.clears).To(Equal(2))
		Expect(surface.discs).To(Equal(2))
	})

	It("uses the most recent pointer move for the next tick", func() {
		layer.MovePointer(10, 10)
		layer.MovePointer(450, 300)
		Expect(layer.Frame()).To(Succeed())

		p := layer.Field().Particles()[0]
		Expect(p.Pos.X).To(BeNumerically("~", 395, 1e-9))
		Expect(p.Pos.Y).To(BeNumerically("~", 300, 1e-9))
	})

	It("resizes the surface without moving particles", func() {
		layer.Resize(1024, 768)
		Expect(surface.w).To(Equal(1024))
		Expect(surface.h).To(Equal(768))
		Expect(layer.Bounds()).To(Equal(field.Bounds{W: 1024, H: 768}))
		Expect(layer.Field().Particles()[0].Pos).To(Equal(field.Vec2{X: 400, Y: 300}))
	})

	It("wraps stranded particles after the viewport shrinks", func() {
		layer.Resize(200, 200)
		Expect(layer.Frame()).To(Succeed())
		p := layer.Field().Particles()[0]
		Expect(field.Bounds{W: 200, H: 200}.Contains(p.Pos)).To(BeTrue())
	})

	It("notifies observers with the frame's stats", func() {
		var seen []field.Stats
		layer.AddObserver(sim.ObserverFunc(func(st field.Stats) { seen = append(seen, st) }))
		layer.MovePointer(420, 300)

		Expect(layer.Frame()).To(Succeed())
		Expect(seen).To(HaveLen(1))
		Expect(seen[0].Tick).To(Equal(uint64(1)))
		Expect(seen[0].Particles).To(Equal(1))
	})

	It("stops notifying a detached observer", func() {
		var a, b int
		detachA := layer.AddObserver(sim.ObserverFunc(func(field.Stats) { a++ }))
		layer.AddObserver(sim.ObserverFunc(func(field.Stats) { b++ }))

		Expect(layer.Frame()).To(Succeed())
		detachA()
		detachA()
		Expect(layer.Frame()).To(Succeed())

		Expect(a).To(Equal(1))
		Expect(b).To(Equal(2))
	})

	It("keeps the particle count across resets", func() {
		Expect(layer.Reset(99)).To(Succeed())
		Expect(layer.Field().Len()).To(Equal(1))
		Expect(layer.Field().Seed()).To(Equal(int64(99)))
	})

	It("simulates without drawing when no surface is attached", func() {
		inert := sim.NewLayer(singleParticleField(field.Vec2{X: 1, Y: 1}, 1), bounds, nil)
		Expect(inert.Frame()).To(Succeed())
		Expect(inert.Field().Ticks()).To(Equal(uint64(1)))
	})

	Context("after Close", func() {
		BeforeEach(func() {
			layer.Close()
		})

		It("refuses further frames", func() {
			Expect(layer.Closed()).To(BeTrue())
			Expect(layer.Frame()).To(MatchError(sim.ErrClosed))
			Expect(layer.Reset(1)).To(MatchError(sim.ErrClosed))
			Expect(layer.Redraw()).To(MatchError(sim.ErrClosed))
			Expect(surface.clears).To(Equal(0))
		})
	})
})
