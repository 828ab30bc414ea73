// Package config handles renderer configuration loading and management.
package config

// Config holds all renderer settings.
type Config struct {
	Graphics GraphicsConfig `yaml:"graphics"`
	Renderer RendererConfig `yaml:"renderer"`
	Output   OutputConfig   `yaml:"output"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// GraphicsConfig holds framebuffer settings.
type GraphicsConfig struct {
	Width      int        `yaml:"width"`
	Height     int        `yaml:"height"`
	Background [3]float32 `yaml:"background"` // RGB in [0, 1]
}

// RendererConfig holds pipeline settings.
type RendererConfig struct {
	NearClip  bool    `yaml:"near_clip"`
	AntiAlias bool    `yaml:"anti_alias"`
	Gamma     float32 `yaml:"gamma"` // 0 disables correction
	Bilinear  bool    `yaml:"bilinear"`
	Overlay   bool    `yaml:"overlay"` // draw debug grid and bounding boxes
}

// OutputConfig holds frame export settings.
type OutputConfig struct {
	Format string `yaml:"format"` // "png" or "ppm"
	Path   string `yaml:"path"`
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
			Width:      800,
			Height:     600,
			Background: [3]float32{0, 0, 0},
		},
		Renderer: RendererConfig{
			NearClip:  true,
			AntiAlias: false,
			Gamma:     0,
			Bilinear:  false,
			Overlay:   false,
		},
		Output: OutputConfig{
			Format: "png",
			Path:   "frame.png",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
