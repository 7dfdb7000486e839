package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/san-kum/driftfield/internal/config"
	"github.com/spf13/cobra"
)

var (
	dataDir    string
	configFile string
	preset     string
	seed       int64
	logLevel   string

	width, height int
	count         int
	tps           int
	ticks         int
	pointer       string
	sampleEvery   int
	realtime      bool
	theme         string
	showHUD       bool

	format    string
	outPath   string
	gifFrames int
	gifEvery  int
)

// main wires the driftfield commands and exits 1 if any of them fails.
func main() {
	rootCmd := &cobra.Command{
		Use:               "driftfield",
		Short:             "pointer-reactive particle field",
		SilenceUsage:      true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return setupLogger(logLevel) },
		RunE:              runGUI,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&dataDir, "data", ".driftfield", "data directory")
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "preset applied over the config")
	pf.Int64Var(&seed, "seed", 0, "random seed (0 picks one from the clock)")
	pf.StringVar(&logLevel, "log-level", "info", "debug, info, warn or error")

	guiCmd := &cobra.Command{
		Use:   "gui",
		Short: "open the field in a window",
		Args:  cobra.NoArgs,
		RunE:  runGUI,
	}
	addViewportFlags(guiCmd)
	addViewportFlags(rootCmd)
	guiCmd.Flags().BoolVar(&showHUD, "hud", true, "show the HUD")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run the field in the terminal",
		Args:  cobra.NoArgs,
		RunE:  runLive,
	}
	liveCmd.Flags().IntVar(&count, "count", 0, "particle count")
	liveCmd.Flags().IntVar(&tps, "tps", 0, "ticks per second")
	liveCmd.Flags().StringVar(&theme, "theme", "", "color theme")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run headless with a scripted pointer and store the result",
		Args:  cobra.NoArgs,
		RunE:  runHeadless,
	}
	addViewportFlags(runCmd)
	addScriptFlags(runCmd)
	runCmd.Flags().IntVar(&sampleEvery, "sample-every", 0, "record stats every n ticks")
	runCmd.Flags().BoolVar(&realtime, "realtime", false, "pace ticks at the configured tps")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot run samples",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata and samples as json",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	snapshotCmd := &cobra.Command{
		Use:   "snapshot",
		Short: "render the field after some ticks to png, svg or gif",
		Args:  cobra.NoArgs,
		RunE:  snapshot,
	}
	addViewportFlags(snapshotCmd)
	addScriptFlags(snapshotCmd)
	snapshotCmd.Flags().StringVar(&format, "format", "png", "png, svg or gif")
	snapshotCmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (default driftfield.<format>)")
	snapshotCmd.Flags().IntVar(&gifFrames, "frames", 60, "gif frame count")
	snapshotCmd.Flags().IntVar(&gifEvery, "every", 2, "ticks between gif frames")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list presets",
		Args:  cobra.NoArgs,
		RunE:  listPresets,
	}

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "measure tick throughput across particle counts",
		Args:  cobra.NoArgs,
		RunE:  bench,
	}
	benchCmd.Flags().IntVar(&ticks, "ticks", 600, "ticks per count")

	rootCmd.AddCommand(guiCmd, liveCmd, runCmd, listCmd, plotCmd, exportCmd, snapshotCmd, presetsCmd, benchCmd)

	if err := rootCmd.Execute(); err != nil {
		slog.Error("command failed", "err", err)
		os.Exit(1)
	}
}

func addViewportFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&width, "width", 0, "viewport width")
	cmd.Flags().IntVar(&height, "height", 0, "viewport height")
	cmd.Flags().IntVar(&count, "count", 0, "particle count")
	cmd.Flags().IntVar(&tps, "tps", 0, "ticks per second")
}

func addScriptFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&ticks, "ticks", 0, "ticks to run")
	cmd.Flags().StringVar(&pointer, "pointer", "", "scripted pointer path (idle, orbit, sweep)")
}

func setupLogger(level string) error {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})))
	return nil
}

// loadConfig resolves defaults, the config file, the preset and then any
// flag the user set explicitly, in that order.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
		cfg = loaded
	}
	if preset != "" {
		if err := cfg.ApplyPreset(preset); err != nil {
			return nil, err
		}
	}

	flags := cmd.Flags()
	if flags.Changed("seed") {
		cfg.Run.Seed = seed
	}
	if flags.Changed("width") {
		cfg.Viewport.Width = width
	}
	if flags.Changed("height") {
		cfg.Viewport.Height = height
	}
	if flags.Changed("count") {
		cfg.Field.Count = count
	}
	if flags.Changed("tps") {
		cfg.Display.TPS = tps
	}
	if flags.Changed("ticks") {
		cfg.Run.Ticks = ticks
	}
	if flags.Changed("pointer") {
		cfg.Run.Pointer = pointer
	}
	if flags.Changed("sample-every") {
		cfg.Run.SampleEvery = sampleEvery
	}
	if flags.Changed("hud") {
		cfg.Display.ShowHUD = showHUD
	}
	if flags.Changed("theme") {
		cfg.Display.Theme = theme
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.Run.Seed == 0 {
		cfg.Run.Seed = time.Now().UnixNano()
	}
	slog.Debug("config resolved", "preset", presetName(), "seed", cfg.Run.Seed, "particles", cfg.Field.Count)
	return cfg, nil
}

func presetName() string {
	if preset == "" {
		return "default"
	}
	return preset
}

// signalContext is cancelled on the first interrupt.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}
