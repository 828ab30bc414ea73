package config

import "flag"

var (
	flagConfig     = flag.String("config", "", "Path to config file")
	flagDebug      = flag.Bool("debug", false, "Enable debug logging")
	flagWidth      = flag.Int("width", 0, "Framebuffer width")
	flagHeight     = flag.Int("height", 0, "Framebuffer height")
	flagOut        = flag.String("out", "", "Output image path")
	flagFormat     = flag.String("format", "", "Output image format (png or ppm)")
	flagAA         = flag.Bool("aa", false, "Enable anti-aliasing")
	flagBilinear   = flag.Bool("bilinear", false, "Enable bilinear texture filtering")
	flagGamma      = flag.Float64("gamma", 0, "Display gamma (0 disables correction)")
	flagNoNearClip = flag.Bool("no-near-clip", false, "Disable near-plane clipping")
	flagOverlay    = flag.Bool("overlay", false, "Draw debug grid and bounding boxes")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagWidth > 0 {
		cfg.Graphics.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Graphics.Height = *flagHeight
	}
	if *flagOut != "" {
		cfg.Output.Path = *flagOut
	}
	if *flagFormat != "" {
		cfg.Output.Format = *flagFormat
	}
	if *flagAA {
		cfg.Renderer.AntiAlias = true
	}
	if *flagBilinear {
		cfg.Renderer.Bilinear = true
	}
	if *flagGamma > 0 {
		cfg.Renderer.Gamma = float32(*flagGamma)
	}
	if *flagNoNearClip {
		cfg.Renderer.NearClip = false
	}
	if *flagOverlay {
		cfg.Renderer.Overlay = true
	}
}
