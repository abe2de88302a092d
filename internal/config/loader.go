package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/ascii-engine/internal/core"
)

// Supported render backends.
const (
	BackendBubbletea = "bubbletea"
	BackendTcell     = "tcell"
)

// Load loads the engine configuration.
// Search order: customPath -> ~/.ascii-engine/config.yaml -> ./configs/engine.yaml -> embedded default
//
// Files are decoded over the defaults, so a file only needs the keys it changes.
func Load(customPath string) (EngineConfig, error) {
	cfg := DefaultEngineConfig()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, cfg.Validate()
	}

	// Try user config directory
	if userCfgPath := userConfigPath("config.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if err := yaml.Unmarshal(data, &cfg); err == nil {
				return cfg, cfg.Validate()
			}
			cfg = DefaultEngineConfig()
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile("configs/engine.yaml"); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err == nil {
			return cfg, cfg.Validate()
		}
		cfg = DefaultEngineConfig()
	}

	// Use embedded default YAML
	if err := yaml.Unmarshal(defaultEngineYAML, &cfg); err != nil {
		return DefaultEngineConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, cfg.Validate()
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".ascii-engine", filename)
}

// ExpandHome replaces a leading "~" with the user's home directory.
func ExpandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

// Validate clamps numeric fields into usable ranges and rejects values
// that cannot be repaired.
func (c *EngineConfig) Validate() error {
	c.Canvas.Rows = max(c.Canvas.Rows, 0)
	c.Canvas.Cols = max(c.Canvas.Cols, 0)

	if c.Animation.Pace != "" {
		if err := ApplyPace(c, PacePreset(c.Animation.Pace)); err != nil {
			return err
		}
	}
	c.Animation.FPS = core.Clamp(c.Animation.FPS, MinFPS, MaxFPS)
	if c.Animation.RenderFPS != 0 {
		c.Animation.RenderFPS = core.Clamp(c.Animation.RenderFPS, MinFPS, MaxFPS)
	}
	if c.Animation.FrameTimeoutMs <= 0 {
		c.Animation.FrameTimeoutMs = DefaultEngineConfig().Animation.FrameTimeoutMs
	}
	c.Animation.MaxFrames = max(c.Animation.MaxFrames, 0)

	switch c.Render.Backend {
	case "":
		c.Render.Backend = BackendBubbletea
	case BackendBubbletea, BackendTcell:
	default:
		return fmt.Errorf("invalid render backend %q", c.Render.Backend)
	}

	if c.Server.IdleTimeoutMin < 0 {
		c.Server.IdleTimeoutMin = 0
	}
	return nil
}
