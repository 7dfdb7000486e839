package sim_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/driftfield/internal/field"
	"github.com/san-kum/driftfield/internal/sim"
)

var _ = Describe("PointerPath", func() {
	b := field.Bounds{W: 800, H: 600}

	It("never moves on an idle path", func() {
		_, ok := sim.Idle{}.At(12, b)
		Expect(ok).To(BeFalse())
	})

	It("orbits the centre at a fixed radius", func() {
		o := sim.Orbit{Radius: 100, Period: 8}
		for tick := uint64(0); tick < 16; tick++ {
			p, ok := o.At(tick, b)
			Expect(ok).To(BeTrue())
			Expect(p.Sub(field.Vec2{X: 400, Y: 300}).Len()).To(BeNumerically("~", 100, 1e-9))
		}
	})

	It("sweeps edge to edge along the midline", func() {
		s := sim.Sweep{Period: 100}
		start, _ := s.At(0, b)
		mid, _ := s.At(50, b)
		Expect(start.X).To(BeNumerically("~", 0, 1e-9))
		Expect(mid.X).To(BeNumerically("~", 800, 1e-9))
		Expect(mid.Y).To(Equal(300.0))
	})

	It("parses known names", func() {
		for _, name := range sim.ListPaths() {
			p, err := sim.ParsePath(name)
			Expect(err).NotTo(HaveOccurred())
			Expect(p).NotTo(BeNil())
		}
		_, err := sim.ParsePath("zigzag")
		Expect(err).To(MatchError(sim.ErrUnknownPath))
	})
})
