// Package config provides YAML-based engine configuration loading
// and frame-rate presets.
package config

// EngineConfig contains all configuration for the engine and its tools.
type EngineConfig struct {
	Canvas    CanvasConfig    `yaml:"canvas"`
	Animation AnimationConfig `yaml:"animation"`
	Render    RenderConfig    `yaml:"render"`
	Storage   StorageConfig   `yaml:"storage"`
	Log       LogConfig       `yaml:"log"`
	Server    ServerConfig    `yaml:"server"`
}

// CanvasConfig defines the grid size and default glyphs.
// Rows or Cols of 0 mean "fit the terminal".
type CanvasConfig struct {
	Rows   int    `yaml:"rows"`
	Cols   int    `yaml:"cols"`
	Blank  string `yaml:"blank"`
	Stroke string `yaml:"stroke"`
	Fill   string `yaml:"fill"`
}

// AnimationConfig defines the sketch loop timing.
type AnimationConfig struct {
	FPS            int    `yaml:"fps"`              // Frames drawn per second
	RenderFPS      int    `yaml:"render_fps"`       // Display refresh rate, 0 = same as fps
	FrameTimeoutMs int    `yaml:"frame_timeout_ms"` // Budget for one draw() call
	MaxFrames      int    `yaml:"max_frames"`       // 0 = run until stopped
	Pace           string `yaml:"pace"`             // Named preset overriding fps
}

// RenderConfig defines how frames reach the terminal.
type RenderConfig struct {
	Profile    string `yaml:"profile"`     // auto, ascii, ansi, ansi256, truecolor
	Backend    string `yaml:"backend"`     // "bubbletea" or "tcell"
	HomeCursor bool   `yaml:"home_cursor"` // Redraw in place for plain output
}

// StorageConfig defines where the sketch library lives.
type StorageConfig struct {
	DBPath string `yaml:"db_path"`
}

// LogConfig defines logger settings.
type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"` // Empty = stderr, except in the preview
}

// ServerConfig defines the SSH preview server.
type ServerConfig struct {
	Address        string `yaml:"address"`
	HostKey        string `yaml:"host_key"`
	IdleTimeoutMin int    `yaml:"idle_timeout_min"`
}

// Glyph returns the first rune of s, or fallback when s is empty.
func Glyph(s string, fallback rune) rune {
	for _, r := range s {
		return r
	}
	return fallback
}
