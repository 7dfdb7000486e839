package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"slices"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/driftfield/internal/config"
	"github.com/san-kum/driftfield/internal/export"
	"github.com/san-kum/driftfield/internal/field"
	"github.com/san-kum/driftfield/internal/gui"
	"github.com/san-kum/driftfield/internal/raster"
	"github.com/san-kum/driftfield/internal/sim"
	"github.com/san-kum/driftfield/internal/storage"
	"github.com/san-kum/driftfield/internal/viz"
	"github.com/spf13/cobra"
)

func newField(cfg *config.Config, b field.Bounds) (*field.Field, error) {
	params, err := cfg.FieldParams()
	if err != nil {
		return nil, err
	}
	return field.New(params, b, cfg.Run.Seed)
}

func runGUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	bg, err := cfg.BackgroundColor()
	if err != nil {
		return err
	}
	f, err := newField(cfg, cfg.Bounds())
	if err != nil {
		return err
	}

	return gui.Run(f, gui.Options{
		Width:       cfg.Viewport.Width,
		Height:      cfg.Viewport.Height,
		TPS:         cfg.Display.TPS,
		Background:  bg,
		ShowHUD:     cfg.Display.ShowHUD,
		Cursor:      cfg.Display.Cursor,
		Seed:        cfg.Run.Seed,
		SnapshotDir: ".",
	})
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	// resized to the terminal on the first WindowSizeMsg
	canvas := viz.NewCanvas(80, 24)
	w, h := canvas.SubPixels()
	b := field.NewBounds(w, h)

	f, err := newField(cfg, b)
	if err != nil {
		return err
	}
	layer := sim.NewLayer(f, b, canvas)
	defer layer.Close()

	return viz.Run(layer, canvas, viz.Options{
		TPS:   cfg.Display.TPS,
		Theme: cfg.Display.Theme,
		Seed:  cfg.Run.Seed,
	})
}

func newRunner(cfg *config.Config, layer *sim.Layer, paced bool) (*sim.Runner, error) {
	path, err := sim.ParsePath(cfg.Run.Pointer)
	if err != nil {
		return nil, err
	}
	opts := sim.Options{
		MaxTicks:    cfg.Run.Ticks,
		Path:        path,
		SampleEvery: cfg.Run.SampleEvery,
	}
	if paced {
		opts.TPS = cfg.Display.TPS
	}
	r := sim.NewRunner(layer, opts)
	for _, m := range sim.DefaultMetrics() {
		r.AddMetric(m)
	}
	return r, nil
}

func runHeadless(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if cfg.Run.Ticks == 0 {
		return fmt.Errorf("headless runs need a tick limit")
	}

	b := cfg.Bounds()
	f, err := newField(cfg, b)
	if err != nil {
		return err
	}
	layer := sim.NewLayer(f, b, nil)
	defer layer.Close()

	runner, err := newRunner(cfg, layer, realtime)
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	slog.Info("run started", "preset", presetName(), "seed", cfg.Run.Seed, "ticks", cfg.Run.Ticks, "path", cfg.Run.Pointer)
	result, err := runner.Run(ctx)
	if err != nil && !errors.Is(err, ctx.Err()) {
		return err
	}
	if err != nil {
		slog.Warn("run interrupted", "ticks", result.Ticks)
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	runID, err := st.Save(storage.RunMetadata{
		Preset:          presetName(),
		Seed:            cfg.Run.Seed,
		Width:           cfg.Viewport.Width,
		Height:          cfg.Viewport.Height,
		Particles:       cfg.Field.Count,
		InfluenceRadius: cfg.Field.InfluenceRadius,
		ReturnDamping:   cfg.Field.ReturnDamping,
		Pointer:         cfg.Run.Pointer,
		TPS:             runnerTPS(cfg),
		Ticks:           result.Ticks,
		ElapsedMs:       result.Elapsed.Milliseconds(),
		Metrics:         result.Metrics,
	}, storage.SamplesFromStats(result.Samples))
	if err != nil {
		return err
	}
	slog.Info("run saved", "run_id", runID, "samples", len(result.Samples))

	fmt.Printf("run: %s\n", runID)
	fmt.Printf("ticks: %d in %v\n\n", result.Ticks, result.Elapsed.Round(time.Millisecond))

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "METRIC\tVALUE")
	for _, m := range sim.DefaultMetrics() {
		fmt.Fprintf(w, "%s\t%.4f\n", m.Name(), result.Metrics[m.Name()])
	}
	return w.Flush()
}

func runnerTPS(cfg *config.Config) int {
	if realtime {
		return cfg.Display.TPS
	}
	return 0
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tPRESET\tTIME\tSEED\tPARTICLES\tTICKS\tPOINTER\tMEAN OFFSET")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%d\t%s\t%.3f\n",
			run.ID,
			run.Preset,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Seed,
			run.Particles,
			run.Ticks,
			run.Pointer,
			run.Metrics["mean_offset"],
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	samples, err := st.LoadSamples(runID)
	if err != nil {
		return err
	}
	if len(samples) == 0 {
		return fmt.Errorf("no samples to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("preset: %s  pointer: %s\n", meta.Preset, meta.Pointer)
	fmt.Printf("samples: %d\n\n", len(samples))

	series := []struct {
		caption string
		value   func(storage.Sample) float64
	}{
		{"mean offset", func(s storage.Sample) float64 { return s.MeanOffset }},
		{"max offset", func(s storage.Sample) float64 { return s.MaxOffset }},
		{"disturbed particles", func(s storage.Sample) float64 { return float64(s.Disturbed) }},
	}
	for _, sr := range series {
		data := make([]float64, len(samples))
		for i, s := range samples {
			data[i] = sr.value(s)
		}
		graph := asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(sr.caption),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	return storage.New(dataDir).ExportJSON(os.Stdout, args[0])
}

var snapshotFormats = []string{"png", "svg", "gif"}

func snapshotFormat(name string) (string, error) {
	name = strings.ToLower(name)
	if !slices.Contains(snapshotFormats, name) {
		return "", fmt.Errorf("unknown format %q (%s)", name, strings.Join(snapshotFormats, ", "))
	}
	return name, nil
}

func snapshot(cmd *cobra.Command, args []string) error {
	kind, err := snapshotFormat(format)
	if err != nil {
		return err
	}
	if kind == "gif" && (gifFrames < 1 || gifEvery < 1) {
		return fmt.Errorf("frames and every must be positive")
	}
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if outPath == "" {
		outPath = "driftfield." + kind
	}

	bg, err := cfg.BackgroundColor()
	if err != nil {
		return err
	}
	b := cfg.Bounds()
	f, err := newField(cfg, b)
	if err != nil {
		return err
	}
	// the field is stepped undrawn and rendered only for the frames kept
	surface := raster.New(cfg.Viewport.Width, cfg.Viewport.Height, bg)
	layer := sim.NewLayer(f, b, nil)
	defer layer.Close()

	var rec *export.GIFRecorder
	if kind == "gif" {
		rec = export.NewGIFRecorder(max(1, 100*gifEvery/max(cfg.Display.TPS, 1)))
		cfg.Run.Ticks = gifFrames * gifEvery
		layer.AddObserver(sim.ObserverFunc(func(st field.Stats) {
			if st.Tick%uint64(gifEvery) == 0 {
				f.Draw(surface)
				rec.Capture(surface.Image())
			}
		}))
	}

	runner, err := newRunner(cfg, layer, false)
	if err != nil {
		return err
	}
	ctx, cancel := signalContext()
	defer cancel()
	if _, err := runner.Run(ctx); err != nil {
		return err
	}

	switch kind {
	case "png":
		f.Draw(surface)
		err = export.WritePNG(outPath, surface)
	case "svg":
		err = os.WriteFile(outPath, []byte(export.ParticlesToSVG(f.Particles(), cfg.Viewport.Width, cfg.Viewport.Height, bg)), 0644)
	case "gif":
		err = writeGIF(outPath, rec)
	}
	if err != nil {
		return err
	}

	slog.Info("snapshot written", "path", outPath, "ticks", f.Ticks())
	fmt.Println(outPath)
	return nil
}

func writeGIF(path string, rec *export.GIFRecorder) error {
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := rec.Encode(out); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PRESET\tPARTICLES\tINFLUENCE\tDAMPING\tVELOCITY\tDENSITY")
	for _, name := range config.ListPresets() {
		cfg, err := config.GetPreset(name)
		if err != nil {
			return err
		}
		fc := cfg.Field
		fmt.Fprintf(w, "%s\t%d\t%.0f\t%.0f\t±%.2f\t%.0f-%.0f\n",
			name, fc.Count, fc.InfluenceRadius, fc.ReturnDamping, fc.Velocity.Max, fc.Density.Min, fc.Density.Max)
	}
	return w.Flush()
}

func bench(cmd *cobra.Command, args []string) error {
	base, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if ticks < 1 {
		return fmt.Errorf("ticks must be positive")
	}

	counts := []int{100, 1000, 10000, 100000}

	fmt.Printf("benchmarking %d ticks on %dx%d\n\n", ticks, base.Viewport.Width, base.Viewport.Height)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PARTICLES\tTICKS\tTIME\tTICKS/SEC\tNS/PARTICLE")

	for _, n := range counts {
		cfg := base.Clone()
		cfg.Field.Count = n
		cfg.Run.Ticks = ticks
		cfg.Run.Pointer = "orbit"
		cfg.Run.SampleEvery = ticks

		b := cfg.Bounds()
		f, err := newField(cfg, b)
		if err != nil {
			return err
		}
		layer := sim.NewLayer(f, b, nil)
		runner, err := newRunner(cfg, layer, false)
		if err != nil {
			return err
		}

		ctx, cancel := signalContext()
		start := time.Now()
		result, err := runner.Run(ctx)
		elapsed := time.Since(start)
		cancel()
		layer.Close()
		if err != nil {
			return err
		}

		perSec := float64(result.Ticks) / elapsed.Seconds()
		perParticle := float64(elapsed.Nanoseconds()) / float64(result.Ticks*n)
		fmt.Fprintf(w, "%d\t%d\t%v\t%.0f\t%.1f\n", n, result.Ticks, elapsed.Round(time.Microsecond), perSec, perParticle)
	}

	return w.Flush()
}
