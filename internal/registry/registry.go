// Package registry provides a global registry of built-in sketches.
// Sketch packages register themselves in init() functions, allowing the
// launcher to discover them without hardcoded dependencies.
package registry

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

// ErrUnknownSketch is returned when no sketch is registered under an ID.
var ErrUnknownSketch = errors.New("unknown sketch")

// Sketch is a named Lua program defining setup() and draw().
type Sketch struct {
	// ID is a unique identifier (e.g., "spiral"). Used for CLI commands
	// and run history.
	ID string

	// Title is a human-readable name for display (e.g., "Animated Spiral").
	Title string

	// Description is a one-line summary shown in listings.
	Description string

	// Source is the Lua program.
	Source string
}

// SketchInfo contains metadata about a registered sketch.
type SketchInfo struct {
	ID          string
	Title       string
	Description string
}

var (
	sketches = make(map[string]Sketch)
	mu       sync.RWMutex
)

// Register adds a sketch to the registry.
// Typically called from an init() function.
// Panics if a sketch with the same ID is already registered.
func Register(s Sketch) {
	mu.Lock()
	defer mu.Unlock()

	if s.ID == "" {
		panic("registry: sketch without ID")
	}
	if _, exists := sketches[s.ID]; exists {
		panic(fmt.Sprintf("registry: sketch %q already registered", s.ID))
	}
	if s.Title == "" {
		s.Title = s.ID
	}
	sketches[s.ID] = s
}

// List returns information about all registered sketches, sorted by ID.
func List() []SketchInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]SketchInfo, 0, len(sketches))
	for _, s := range sketches {
		result = append(result, SketchInfo{
			ID:          s.ID,
			Title:       s.Title,
			Description: s.Description,
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Get returns the sketch registered under id.
func Get(id string) (Sketch, error) {
	mu.RLock()
	defer mu.RUnlock()

	s, ok := sketches[id]
	if !ok {
		return Sketch{}, fmt.Errorf("registry: %w %q", ErrUnknownSketch, id)
	}
	return s, nil
}

// Exists checks if a sketch with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := sketches[id]
	return ok
}

// unregister removes a sketch. Used by tests.
func unregister(id string) {
	mu.Lock()
	defer mu.Unlock()
	delete(sketches, id)
}
