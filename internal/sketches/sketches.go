// Package sketches embeds the built-in Lua sketches and registers them
// with the sketch registry.
//
// Each file under lua/ becomes one sketch whose ID is the file name
// without extension. Leading "-- title:" and "-- description:" comment
// lines supply the display metadata.
package sketches

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"github.com/vovakirdan/ascii-engine/internal/registry"
)

//go:embed lua/*.lua
var files embed.FS

func init() {
	all, err := Load()
	if err != nil {
		panic(err)
	}
	for _, s := range all {
		registry.Register(s)
	}
}

// Load reads every embedded sketch.
func Load() ([]registry.Sketch, error) {
	entries, err := fs.ReadDir(files, "lua")
	if err != nil {
		return nil, fmt.Errorf("sketches: read dir: %w", err)
	}

	out := make([]registry.Sketch, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || path.Ext(e.Name()) != ".lua" {
			continue
		}
		data, err := files.ReadFile(path.Join("lua", e.Name()))
		if err != nil {
			return nil, fmt.Errorf("sketches: read %s: %w", e.Name(), err)
		}
		s := Parse(strings.TrimSuffix(e.Name(), ".lua"), string(data))
		out = append(out, s)
	}
	return out, nil
}

// Parse builds a sketch from Lua source, reading the title and
// description from the leading comment block.
func Parse(id, source string) registry.Sketch {
	s := registry.Sketch{ID: id, Source: source}
	for _, line := range strings.Split(source, "\n") {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, "--") {
			break
		}
		key, value, ok := strings.Cut(strings.TrimSpace(strings.TrimPrefix(line, "--")), ":")
		if !ok {
			continue
		}
		switch strings.ToLower(strings.TrimSpace(key)) {
		case "title":
			s.Title = strings.TrimSpace(value)
		case "description":
			s.Description = strings.TrimSpace(value)
		}
	}
	if s.Title == "" {
		s.Title = id
	}
	return s
}
