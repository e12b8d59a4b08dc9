// Package config handles viewer configuration loading and management.
package config

// Config holds all viewer settings.
type Config struct {
	Graphics GraphicsConfig `yaml:"graphics"`
	Scene    SceneConfig    `yaml:"scene"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// GraphicsConfig holds display and rendering settings.
type GraphicsConfig struct {
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
	VSync      bool `yaml:"vsync"`
	Fullscreen bool `yaml:"fullscreen"`
}

// SceneConfig holds scene loading settings.
type SceneConfig struct {
	// Model is the path to the GLB file to display.
	Model string `yaml:"model"`
	// ClearColor is the background color as RGBA in [0, 1].
	ClearColor [4]float64 `yaml:"clear_color"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:      1280,
			Height:     720,
			VSync:      true,
			Fullscreen: false,
		},
		Scene: SceneConfig{
			Model:      "scene.glb",
			ClearColor: [4]float64{0.1, 0.1, 0.1, 1.0},
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
