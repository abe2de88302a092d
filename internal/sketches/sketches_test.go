package sketches

import (
	"context"
	"testing"

	"github.com/vovakirdan/ascii-engine/internal/canvas"
	"github.com/vovakirdan/ascii-engine/internal/host"
	"github.com/vovakirdan/ascii-engine/internal/registry"
)

func TestParseHeader(t *testing.T) {
	s := Parse("demo", "-- title: Demo Sketch\n-- description: Draws things\n\nfunction draw() end\n")
	if s.Title != "Demo Sketch" {
		t.Errorf("Title = %q, expected %q", s.Title, "Demo Sketch")
	}
	if s.Description != "Draws things" {
		t.Errorf("Description = %q, expected %q", s.Description, "Draws things")
	}
}

func TestParseStopsAtCode(t *testing.T) {
	s := Parse("demo", "function draw() end\n-- title: Late\n")
	if s.Title != "demo" {
		t.Errorf("Title = %q, expected the ID as fallback", s.Title)
	}
}

func TestBuiltinsRegistered(t *testing.T) {
	for _, id := range []string{"bouncing_ball", "sine_wave", "spiral", "mandelbrot", "snake", "gallery"} {
		if !registry.Exists(id) {
			t.Errorf("sketch %q not registered", id)
		}
	}
	for _, info := range registry.List() {
		if info.Description == "" {
			t.Errorf("sketch %q has no description", info.ID)
		}
	}
}

func TestBuiltinsRun(t *testing.T) {
	all, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if len(all) == 0 {
		t.Fatal("no embedded sketches")
	}

	for _, s := range all {
		t.Run(s.ID, func(t *testing.T) {
			c, err := canvas.New(24, 80)
			if err != nil {
				t.Fatalf("canvas.New failed: %v", err)
			}
			r := host.New(s.ID, s.Source, c,
				host.WithMaxFrames(3), host.WithoutPacing(), host.WithSeed(1))
			if err := r.Produce(context.Background()); err != nil {
				t.Fatalf("Produce() failed: %v", err)
			}
			if r.Frames() != 3 {
				t.Errorf("Frames() = %d, expected 3", r.Frames())
			}
			if c.Snapshot().Count() == 0 {
				t.Error("last frame is blank")
			}
		})
	}
}
