package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/muesli/termenv"
	"golang.org/x/term"

	"github.com/vovakirdan/ascii-engine/internal/config"
	"github.com/vovakirdan/ascii-engine/internal/core"
	"github.com/vovakirdan/ascii-engine/internal/host"
	"github.com/vovakirdan/ascii-engine/internal/platform/tui"
	"github.com/vovakirdan/ascii-engine/internal/registry"
	"github.com/vovakirdan/ascii-engine/internal/render"
	"github.com/vovakirdan/ascii-engine/internal/sketches"
	"github.com/vovakirdan/ascii-engine/internal/storage"
)

// terminalSize returns the size of stdout, or 80x24 when it is not a terminal.
func terminalSize() (width, height int) {
	width, height = 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return width, height
}

// openStore opens the sketch library. When required is false a failure
// is reported as a warning and a nil store is returned.
func openStore(required bool) (*storage.Store, error) {
	store, err := storage.Open(engineCfg.Storage.DBPath)
	if err != nil {
		if required {
			return nil, fmt.Errorf("cannot open sketch library: %w", err)
		}
		fmt.Fprintf(os.Stderr, "Warning: could not open sketch library: %v\n", err)
		return nil, nil
	}
	return store, nil
}

// isFile reports whether arg names a Lua file rather than a sketch.
func isFile(arg string) bool {
	if strings.HasSuffix(arg, ".lua") || strings.ContainsRune(arg, os.PathSeparator) {
		_, err := os.Stat(arg)
		return err == nil
	}
	return false
}

// resolveSketch loads a sketch from a file path, the built-in set or the
// library, in that order.
func resolveSketch(store *storage.Store, arg string) (registry.Sketch, error) {
	if isFile(arg) {
		data, err := os.ReadFile(arg)
		if err != nil {
			return registry.Sketch{}, fmt.Errorf("cannot read sketch: %w", err)
		}
		id := strings.TrimSuffix(filepath.Base(arg), filepath.Ext(arg))
		return sketches.Parse(id, string(data)), nil
	}
	s, err := tui.LoadSketch(store, arg)
	if err != nil {
		return registry.Sketch{}, fmt.Errorf("%w\nRun 'ascii list' to see available sketches", err)
	}
	return s, nil
}

// seed returns the RNG seed of a run.
func seed() int64 {
	if flagSeed != 0 {
		return flagSeed
	}
	return time.Now().UnixNano()
}

// palette returns the glyph defaults from the config.
func palette() core.Palette {
	def := core.DefaultPalette()
	return core.Palette{
		Blank:  config.Glyph(engineCfg.Canvas.Blank, def.Blank),
		Stroke: config.Glyph(engineCfg.Canvas.Stroke, def.Stroke),
		Fill:   config.Glyph(engineCfg.Canvas.Fill, def.Fill),
	}
}

// runnerOptions builds the runner options from the config and flags.
func runnerOptions(maxFrames int, paced bool) []host.Option {
	a := engineCfg.Animation
	opts := []host.Option{
		host.WithLogger(logger),
		host.WithFPS(a.FPS),
		host.WithRenderFPS(a.RenderFPS),
		host.WithFrameTimeout(time.Duration(a.FrameTimeoutMs) * time.Millisecond),
		host.WithMaxFrames(maxFrames),
		host.WithSeed(seed()),
	}
	if !paced {
		opts = append(opts, host.WithoutPacing())
	}
	return opts
}

// profile resolves a --profile flag, falling back to the config.
func profile(name string) (termenv.Profile, error) {
	if name == "" {
		name = engineCfg.Render.Profile
	}
	return render.ParseProfile(name)
}

// signalContext is cancelled on Ctrl+C or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}
