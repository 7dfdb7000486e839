package storage

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/driftfield/internal/field"
)

func testMeta() RunMetadata {
	return RunMetadata{
		Preset:    "pollen",
		Seed:      42,
		Width:     800,
		Height:    600,
		Particles: 100,
		Pointer:   "orbit",
		Ticks:     30,
		Metrics:   map[string]float64{"mean_offset": 1.5},
	}
}

func TestStoreSaveLoad(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	samples := SamplesFromStats([]field.Stats{
		{Tick: 10, MeanOffset: 0.5, MaxOffset: 2, Disturbed: 3},
		{Tick: 20, MeanOffset: 0.25, MaxOffset: 1, Disturbed: 0},
	})

	runID, err := st.Save(testMeta(), samples)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if runID == "" {
		t.Error("expected non-empty run id")
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if meta.Preset != "pollen" {
		t.Errorf("expected preset 'pollen', got '%s'", meta.Preset)
	}
	if meta.Seed != 42 {
		t.Errorf("expected seed 42, got %d", meta.Seed)
	}
	if meta.Metrics["mean_offset"] != 1.5 {
		t.Errorf("expected mean offset 1.5, got %f", meta.Metrics["mean_offset"])
	}

	loaded, err := st.LoadSamples(runID)
	if err != nil {
		t.Fatalf("load samples failed: %v", err)
	}
	if len(loaded) != 2 {
		t.Fatalf("expected 2 samples, got %d", len(loaded))
	}
	if loaded[0] != samples[0] || loaded[1] != samples[1] {
		t.Errorf("samples changed on disk: %+v", loaded)
	}
}

func TestStoreList(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected 0 runs, got %d", len(runs))
	}

	if _, err := st.Save(testMeta(), nil); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if _, err := st.Save(testMeta(), nil); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	// stray directory without metadata
	if err := os.MkdirAll(filepath.Join(tmpDir, "junk"), 0755); err != nil {
		t.Fatal(err)
	}

	runs, err = st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 2 {
		t.Errorf("expected 2 runs, got %d", len(runs))
	}
}

func TestStoreFileStructure(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)

	runID, err := st.Save(testMeta(), nil)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	for _, name := range []string{"metadata.json", "samples.csv"} {
		if _, err := os.Stat(filepath.Join(tmpDir, runID, name)); os.IsNotExist(err) {
			t.Errorf("%s not created", name)
		}
	}
}

func TestStoreMissingRun(t *testing.T) {
	st := New(t.TempDir())

	if _, err := st.Load("nope"); !errors.Is(err, ErrRunNotFound) {
		t.Errorf("expected ErrRunNotFound, got %v", err)
	}
	if _, err := st.LoadSamples("nope"); !errors.Is(err, ErrRunNotFound) {
		t.Errorf("expected ErrRunNotFound, got %v", err)
	}
}

func TestExportJSON(t *testing.T) {
	st := New(t.TempDir())
	samples := []Sample{{Tick: 5, MeanOffset: 1, MaxOffset: 2, Disturbed: 1}}
	runID, err := st.Save(testMeta(), samples)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	var buf bytes.Buffer
	if err := st.ExportJSON(&buf, runID); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	var data ExportData
	if err := json.Unmarshal(buf.Bytes(), &data); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if data.Run.ID != runID {
		t.Errorf("expected id %s, got %s", runID, data.Run.ID)
	}
	if len(data.Samples) != 1 || data.Samples[0].Disturbed != 1 {
		t.Errorf("unexpected samples %+v", data.Samples)
	}
}
