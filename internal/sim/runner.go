package sim

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/san-kum/driftfield/internal/field"
)

type Options struct {
	// TPS is the target frame rate. Zero runs frames back to back.
	TPS int
	// MaxTicks stops the run after that many frames. Zero runs until the
	// context is cancelled.
	MaxTicks    int
	Path        PointerPath
	SampleEvery int
}

func DefaultOptions() Options {
	return Options{TPS: 60, MaxTicks: 600, Path: Orbit{}, SampleEvery: 10}
}

type Result struct {
	Ticks   int
	Elapsed time.Duration
	Metrics map[string]float64
	Samples []field.Stats
}

// Runner schedules frames for a layer when no window or terminal is driving
// it. Each frame runs to completion before the next is armed.
type Runner struct {
	layer   *Layer
	opts    Options
	metrics []Metric
	rec     *Recorder
}

func NewRunner(l *Layer, opts Options) *Runner {
	if opts.Path == nil {
		opts.Path = Idle{}
	}
	return &Runner{layer: l, opts: opts, rec: NewRecorder(opts.SampleEvery)}
}

func (r *Runner) observe(st field.Stats) {
	r.rec.OnFrame(st)
	for _, m := range r.metrics {
		m.Observe(st)
	}
}

func (r *Runner) AddMetric(m Metric) { r.metrics = append(r.metrics, m) }

func (r *Runner) validate() error {
	if r.opts.TPS < 0 {
		return fmt.Errorf("tps must be non-negative, got %d", r.opts.TPS)
	}
	if r.opts.MaxTicks < 0 {
		return fmt.Errorf("max ticks must be non-negative, got %d", r.opts.MaxTicks)
	}
	if r.layer.Closed() {
		return ErrClosed
	}
	return nil
}

// Run drives frames until MaxTicks or ctx is done. On cancellation it returns
// the partial result together with ctx.Err().
func (r *Runner) Run(ctx context.Context) (*Result, error) {
	if err := r.validate(); err != nil {
		return nil, err
	}

	for _, m := range r.metrics {
		m.Reset()
	}
	r.rec.Reset()
	detach := r.layer.AddObserver(ObserverFunc(r.observe))
	defer detach()

	var frames <-chan time.Time
	if r.opts.TPS > 0 {
		ticker := time.NewTicker(time.Second / time.Duration(r.opts.TPS))
		defer ticker.Stop()
		frames = ticker.C
	}

	result := &Result{Metrics: make(map[string]float64)}
	start := time.Now()
	finish := func() *Result {
		result.Elapsed = time.Since(start)
		result.Samples = r.rec.Samples()
		for _, m := range r.metrics {
			result.Metrics[m.Name()] = m.Value()
		}
		return result
	}

	tick := r.layer.Field().Ticks()
	for r.opts.MaxTicks == 0 || result.Ticks < r.opts.MaxTicks {
		if frames != nil {
			select {
			case <-ctx.Done():
				return finish(), ctx.Err()
			case <-frames:
			}
		} else {
			select {
			case <-ctx.Done():
				return finish(), ctx.Err()
			default:
			}
		}

		if p, ok := r.opts.Path.At(tick, r.layer.Bounds()); ok {
			r.layer.MovePointer(p.X, p.Y)
		}
		if err := r.layer.Frame(); err != nil {
			if errors.Is(err, ErrClosed) {
				slog.Debug("layer closed mid-run", "ticks", result.Ticks)
				break
			}
			return finish(), err
		}
		tick++
		result.Ticks++
	}

	return finish(), nil
}
