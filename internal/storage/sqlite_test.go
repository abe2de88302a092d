package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "nested", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreSaveAndRetrieveSketch(t *testing.T) {
	store := openTestStore(t)

	id, err := store.SaveSketch("spiral", "rotating spiral", "function draw() end")
	if err != nil {
		t.Fatalf("SaveSketch() failed: %v", err)
	}
	if id <= 0 {
		t.Errorf("Expected a positive ID, got %d", id)
	}

	entry, err := store.Sketch("spiral")
	if err != nil {
		t.Fatalf("Sketch() failed: %v", err)
	}
	if entry == nil {
		t.Fatal("Sketch() returned nil for a saved sketch")
	}
	if entry.Source != "function draw() end" {
		t.Errorf("Source = %q", entry.Source)
	}
	if entry.Description != "rotating spiral" {
		t.Errorf("Description = %q", entry.Description)
	}
	if entry.CreatedAt.IsZero() {
		t.Error("CreatedAt should be set")
	}
}

func TestStoreSaveSketchReplaces(t *testing.T) {
	store := openTestStore(t)

	id1, err := store.SaveSketch("wave", "", "v1")
	if err != nil {
		t.Fatalf("SaveSketch() failed: %v", err)
	}
	id2, err := store.SaveSketch("wave", "second", "v2")
	if err != nil {
		t.Fatalf("SaveSketch() failed: %v", err)
	}
	if id1 != id2 {
		t.Errorf("Saving the same name should keep the ID: %d != %d", id1, id2)
	}

	entry, err := store.Sketch("wave")
	if err != nil {
		t.Fatalf("Sketch() failed: %v", err)
	}
	if entry.Source != "v2" || entry.Description != "second" {
		t.Errorf("Expected the second version, got %+v", entry)
	}

	list, err := store.ListSketches()
	if err != nil {
		t.Fatalf("ListSketches() failed: %v", err)
	}
	if len(list) != 1 {
		t.Errorf("Expected 1 sketch, got %d", len(list))
	}
}

func TestStoreSaveSketchEmptyName(t *testing.T) {
	store := openTestStore(t)
	if _, err := store.SaveSketch("  ", "", "x"); !errors.Is(err, ErrEmptyName) {
		t.Errorf("SaveSketch() error = %v, expected ErrEmptyName", err)
	}
}

func TestStoreSketchMissing(t *testing.T) {
	store := openTestStore(t)
	entry, err := store.Sketch("nope")
	if err != nil {
		t.Fatalf("Sketch() failed: %v", err)
	}
	if entry != nil {
		t.Errorf("Expected nil for a missing sketch, got %+v", entry)
	}
}

func TestStoreListSketchesOrdered(t *testing.T) {
	store := openTestStore(t)
	for _, name := range []string{"snake", "bouncing_ball", "mandelbrot"} {
		if _, err := store.SaveSketch(name, "", "-- "+name); err != nil {
			t.Fatalf("SaveSketch(%s) failed: %v", name, err)
		}
	}

	list, err := store.ListSketches()
	if err != nil {
		t.Fatalf("ListSketches() failed: %v", err)
	}
	want := []string{"bouncing_ball", "mandelbrot", "snake"}
	if len(list) != len(want) {
		t.Fatalf("Expected %d sketches, got %d", len(want), len(list))
	}
	for i, name := range want {
		if list[i].Name != name {
			t.Errorf("list[%d] = %q, expected %q", i, list[i].Name, name)
		}
		if list[i].Source != "" {
			t.Errorf("ListSketches should not load sources")
		}
	}
}

func TestStoreDeleteSketch(t *testing.T) {
	store := openTestStore(t)
	if _, err := store.SaveSketch("tmp", "", "x"); err != nil {
		t.Fatalf("SaveSketch() failed: %v", err)
	}
	if _, err := store.SaveRun(RunRecord{SketchName: "tmp", Frames: 3}); err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}

	deleted, err := store.DeleteSketch("tmp")
	if err != nil {
		t.Fatalf("DeleteSketch() failed: %v", err)
	}
	if !deleted {
		t.Error("DeleteSketch should report the deletion")
	}

	runs, err := store.RunHistory("tmp", 10)
	if err != nil {
		t.Fatalf("RunHistory() failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("Expected runs to be cleared, got %d", len(runs))
	}

	deleted, err = store.DeleteSketch("tmp")
	if err != nil {
		t.Fatalf("DeleteSketch() failed: %v", err)
	}
	if deleted {
		t.Error("Deleting a missing sketch should report false")
	}
}

func TestStoreRunHistory(t *testing.T) {
	store := openTestStore(t)

	for i := 1; i <= 5; i++ {
		_, err := store.SaveRun(RunRecord{SketchName: "spiral", Frames: i * 10, FPS: 5, DurationMs: int64(i) * 2000})
		if err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}
	if _, err := store.SaveRun(RunRecord{SketchName: "spiral", Frames: 1, Error: "attempt to call a nil value"}); err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	if _, err := store.SaveRun(RunRecord{SketchName: "other", Frames: 99}); err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}

	runs, err := store.RunHistory("spiral", 3)
	if err != nil {
		t.Fatalf("RunHistory() failed: %v", err)
	}
	if len(runs) != 3 {
		t.Fatalf("Expected 3 runs (limit), got %d", len(runs))
	}

	// Newest first
	if runs[0].Error == "" || runs[0].Frames != 1 {
		t.Errorf("Expected the failed run first, got %+v", runs[0])
	}
	if runs[1].Frames != 50 || runs[1].Error != "" {
		t.Errorf("Expected the 50-frame run second, got %+v", runs[1])
	}
}

func TestStoreSketchStats(t *testing.T) {
	store := openTestStore(t)

	stats, err := store.GetSketchStats("empty")
	if err != nil {
		t.Fatalf("GetSketchStats() failed: %v", err)
	}
	if stats.Runs != 0 || stats.TotalFrames != 0 {
		t.Errorf("Expected zero stats, got %+v", stats)
	}

	store.SaveRun(RunRecord{SketchName: "snake", Frames: 100})
	store.SaveRun(RunRecord{SketchName: "snake", Frames: 50, Error: "timeout"})
	store.SaveRun(RunRecord{SketchName: "stripes", Frames: 7})

	stats, err = store.GetSketchStats("snake")
	if err != nil {
		t.Fatalf("GetSketchStats() failed: %v", err)
	}
	if stats.Runs != 2 {
		t.Errorf("Runs = %d, expected 2", stats.Runs)
	}
	if stats.Failed != 1 {
		t.Errorf("Failed = %d, expected 1", stats.Failed)
	}
	if stats.TotalFrames != 150 {
		t.Errorf("TotalFrames = %d, expected 150", stats.TotalFrames)
	}

	all, err := store.GetAllSketchStats()
	if err != nil {
		t.Fatalf("GetAllSketchStats() failed: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("Expected stats for 2 sketches, got %d", len(all))
	}
	if all["stripes"] == nil || all["stripes"].TotalFrames != 7 {
		t.Errorf("Unexpected stripes stats: %+v", all["stripes"])
	}
}

func TestStoreExpandHomePath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	store, err := Open("~/.ascii-engine-test/test.db")
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(filepath.Join(home, ".ascii-engine-test", "test.db")); err != nil {
		t.Errorf("Expected database under HOME: %v", err)
	}
}
