package config

import (
	_ "embed"
)

//go:embed defaults/engine.yaml
var defaultEngineYAML []byte

// DefaultEngineConfig returns the default engine configuration.
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		Canvas: CanvasConfig{
			Rows:   0,
			Cols:   0,
			Blank:  " ",
			Stroke: "*",
			Fill:   "#",
		},
		Animation: AnimationConfig{
			FPS:            5,
			RenderFPS:      30,
			FrameTimeoutMs: 1000,
			MaxFrames:      0,
		},
		Render: RenderConfig{
			Profile:    "auto",
			Backend:    BackendBubbletea,
			HomeCursor: true,
		},
		Storage: StorageConfig{
			DBPath: "~/.ascii-engine/sketches.db",
		},
		Log: LogConfig{
			Level: "info",
		},
		Server: ServerConfig{
			Address:        ":2323",
			HostKey:        ".ssh/ascii_ed25519",
			IdleTimeoutMin: 10,
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultEngineYAML
}
