package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
)

func testCommand(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	configFile, preset = "", ""
	cmd := &cobra.Command{Use: "test"}
	addViewportFlags(cmd)
	addScriptFlags(cmd)
	cmd.Flags().Int64Var(&seed, "seed", 0, "")
	if err := cmd.ParseFlags(args); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	return cmd
}

func TestLoadConfigFlagOverrides(t *testing.T) {
	cmd := testCommand(t, "--count", "7", "--ticks", "30", "--seed", "99", "--pointer", "sweep")

	cfg, err := loadConfig(cmd)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Field.Count != 7 {
		t.Errorf("expected count 7, got %d", cfg.Field.Count)
	}
	if cfg.Run.Ticks != 30 {
		t.Errorf("expected 30 ticks, got %d", cfg.Run.Ticks)
	}
	if cfg.Run.Seed != 99 {
		t.Errorf("expected seed 99, got %d", cfg.Run.Seed)
	}
	if cfg.Run.Pointer != "sweep" {
		t.Errorf("expected sweep, got %s", cfg.Run.Pointer)
	}
	if cfg.Viewport.Width != 1280 {
		t.Errorf("unset flag overrode width: %d", cfg.Viewport.Width)
	}
}

func TestLoadConfigFileThenPreset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.yaml")
	if err := os.WriteFile(path, []byte("viewport:\n  width: 320\n  height: 200\n"), 0644); err != nil {
		t.Fatal(err)
	}
	cmd := testCommand(t)
	configFile, preset = path, "dense"
	defer func() { configFile, preset = "", "" }()

	cfg, err := loadConfig(cmd)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Viewport.Width != 320 {
		t.Errorf("expected width from file, got %d", cfg.Viewport.Width)
	}
	if cfg.Field.Count != 400 {
		t.Errorf("expected dense count 400, got %d", cfg.Field.Count)
	}
	if cfg.Run.Seed == 0 {
		t.Error("zero seed should be replaced")
	}
}

func TestLoadConfigRejectsInvalid(t *testing.T) {
	cmd := testCommand(t, "--count", "-1")
	if _, err := loadConfig(cmd); err == nil {
		t.Error("expected error for negative count")
	}
}

func TestSetupLogger(t *testing.T) {
	for _, lvl := range []string{"debug", "info", "warn", "error"} {
		if err := setupLogger(lvl); err != nil {
			t.Errorf("level %s: %v", lvl, err)
		}
	}
	if err := setupLogger("loud"); err == nil {
		t.Error("expected error for unknown level")
	}
}

func TestSnapshotFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"png", "png", false},
		{"SVG", "svg", false},
		{"gif", "gif", false},
		{"jpg", "", true},
	}
	for _, tt := range tests {
		got, err := snapshotFormat(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("%s: err = %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("%s: got %q, want %q", tt.in, got, tt.want)
		}
	}
}

func withSnapshotFlags(t *testing.T, kind, out string) {
	t.Helper()
	prevFormat, prevOut := format, outPath
	prevFrames, prevEvery := gifFrames, gifEvery
	format, outPath, gifFrames, gifEvery = kind, out, 3, 2
	t.Cleanup(func() {
		format, outPath = prevFormat, prevOut
		gifFrames, gifEvery = prevFrames, prevEvery
	})
}

func TestSnapshotRejectsUnknownFormatBeforeRunning(t *testing.T) {
	out := filepath.Join(t.TempDir(), "snap.jpg")
	withSnapshotFlags(t, "jpg", out)
	// an invalid config would fail too; the format must be caught first
	cmd := testCommand(t, "--count", "-1")

	err := snapshot(cmd, nil)
	if err == nil || !strings.Contains(err.Error(), "unknown format") {
		t.Fatalf("expected unknown format error, got %v", err)
	}
	if _, statErr := os.Stat(out); !os.IsNotExist(statErr) {
		t.Error("output written for a rejected format")
	}
}

func TestSnapshotWritesEachFormat(t *testing.T) {
	for _, kind := range snapshotFormats {
		t.Run(kind, func(t *testing.T) {
			out := filepath.Join(t.TempDir(), "snap."+kind)
			withSnapshotFlags(t, kind, out)
			cmd := testCommand(t, "--width", "48", "--height", "32", "--count", "12", "--ticks", "5", "--seed", "3")

			if err := snapshot(cmd, nil); err != nil {
				t.Fatalf("snapshot failed: %v", err)
			}
			info, err := os.Stat(out)
			if err != nil {
				t.Fatalf("output missing: %v", err)
			}
			if info.Size() == 0 {
				t.Error("empty output")
			}
		})
	}
}
