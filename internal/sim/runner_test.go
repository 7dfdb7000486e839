package sim_test

import (
	"context"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/driftfield/internal/field"
	"github.com/san-kum/driftfield/internal/sim"
)

func newLayer(count int) *sim.Layer {
	params := field.DefaultParams()
	params.Count = count
	b := field.Bounds{W: 640, H: 480}
	f, err := field.New(params, b, 17)
	Expect(err).NotTo(HaveOccurred())
	return sim.NewLayer(f, b, nil)
}

var _ = Describe("Runner", func() {
	It("runs exactly MaxTicks frames", func() {
		r := sim.NewRunner(newLayer(50), sim.Options{MaxTicks: 120, Path: sim.Orbit{}, SampleEvery: 10})
		for _, m := range sim.DefaultMetrics() {
			r.AddMetric(m)
		}

		res, err := r.Run(context.Background())
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Ticks).To(Equal(120))
		Expect(res.Samples).To(HaveLen(12))
		Expect(res.Metrics).To(HaveKey("mean_offset"))
		Expect(res.Metrics).To(HaveKey("peak_offset"))
		Expect(res.Metrics).To(HaveKey("disturbed"))
	})

	It("leaves the field untouched by the pointer on an idle path", func() {
		r := sim.NewRunner(newLayer(30), sim.Options{MaxTicks: 60})
		r.AddMetric(sim.NewDisturbed())
		r.AddMetric(sim.NewPeakOffset())

		res, err := r.Run(context.Background())
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Metrics["disturbed"]).To(BeZero())
	})

	It("disturbs particles when the pointer sweeps across", func() {
		r := sim.NewRunner(newLayer(400), sim.Options{MaxTicks: 300, Path: sim.Sweep{Period: 300}})
		r.AddMetric(sim.NewDisturbed())

		res, err := r.Run(context.Background())
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Metrics["disturbed"]).To(BeNumerically(">", 0))
	})

	It("stops between ticks when the context is cancelled", func() {
		ctx, cancel := context.WithCancel(context.Background())
		l := newLayer(10)
		r := sim.NewRunner(l, sim.Options{TPS: 1000})

		go func() {
			time.Sleep(30 * time.Millisecond)
			cancel()
		}()

		res, err := r.Run(ctx)
		Expect(err).To(MatchError(context.Canceled))
		Expect(res).NotTo(BeNil())
		Expect(uint64(res.Ticks)).To(Equal(l.Field().Ticks()))
	})

	It("rejects a closed layer", func() {
		l := newLayer(5)
		l.Close()
		_, err := sim.NewRunner(l, sim.Options{MaxTicks: 1}).Run(context.Background())
		Expect(err).To(MatchError(sim.ErrClosed))
	})

	It("rejects negative options", func() {
		_, err := sim.NewRunner(newLayer(5), sim.Options{TPS: -1}).Run(context.Background())
		Expect(err).To(HaveOccurred())
	})

	It("resets metrics and samples between runs", func() {
		r := sim.NewRunner(newLayer(20), sim.Options{MaxTicks: 20, SampleEvery: 5})
		_, err := r.Run(context.Background())
		Expect(err).NotTo(HaveOccurred())

		res, err := r.Run(context.Background())
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Samples).To(HaveLen(4))
	})

	It("only observes frames during its own run when sharing a layer", func() {
		l := newLayer(20)
		first, second := &frameCount{}, &frameCount{}
		a := sim.NewRunner(l, sim.Options{MaxTicks: 10, SampleEvery: 1})
		a.AddMetric(first)
		b := sim.NewRunner(l, sim.Options{MaxTicks: 15, SampleEvery: 1})
		b.AddMetric(second)

		resA, err := a.Run(context.Background())
		Expect(err).NotTo(HaveOccurred())
		Expect(resA.Samples).To(HaveLen(10))

		resB, err := b.Run(context.Background())
		Expect(err).NotTo(HaveOccurred())
		Expect(resB.Samples).To(HaveLen(15))
		Expect(resB.Metrics["frames"]).To(Equal(15.0))

		Expect(first.n).To(Equal(10))
		Expect(l.Frame()).To(Succeed())
		Expect(first.n).To(Equal(10))
		Expect(second.n).To(Equal(15))
	})
})

type frameCount struct{ n int }

func (c *frameCount) Name() string        { return "frames" }
func (c *frameCount) Observe(field.Stats) { c.n++ }
func (c *frameCount) Value() float64      { return float64(c.n) }
func (c *frameCount) Reset()              { c.n = 0 }

var _ = Describe("Metrics", func() {
	It("averages mean offsets", func() {
		m := sim.NewMeanOffset()
		m.Observe(field.Stats{MeanOffset: 2})
		m.Observe(field.Stats{MeanOffset: 4})
		Expect(m.Value()).To(BeNumerically("~", 3, 1e-12))

		m.Reset()
		Expect(m.Value()).To(BeZero())
	})

	It("tracks the peak offset", func() {
		m := sim.NewPeakOffset()
		m.Observe(field.Stats{MaxOffset: 7})
		m.Observe(field.Stats{MaxOffset: 3})
		Expect(m.Value()).To(Equal(7.0))
	})

	It("samples every Nth frame", func() {
		rec := sim.NewRecorder(3)
		for tick := uint64(1); tick <= 10; tick++ {
			rec.OnFrame(field.Stats{Tick: tick})
		}
		Expect(rec.Samples()).To(HaveLen(3))
		Expect(rec.Samples()[0].Tick).To(Equal(uint64(3)))
	})
})
