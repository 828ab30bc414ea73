package renderer

import "go.uber.org/zap"

// Config holds the per-render toggles. A Config is passed explicitly into
// Render, so renders with different settings can run concurrently against
// immutable scenes.
type Config struct {
	// NearClip enables clipping against the near plane. Disabling it is a
	// debug aid; geometry reaching z >= 0 is dropped rather than projected.
	NearClip bool

	// AntiAlias enables 4-tap supersampled edge coverage for triangles and
	// intensity-weighted line stepping.
	AntiAlias bool

	// Gamma is the display gamma applied to the whole viewport once
	// rasterization finishes, so alpha compositing blends linear values.
	// Values of 0 or 1 disable correction.
	Gamma float32

	// Bilinear selects bilinear texture filtering; otherwise nearest texel.
	Bilinear bool

	// Logger receives per-stage debug counters. Nil disables logging.
	Logger *zap.Logger
}

// DefaultConfig returns the standard settings: near clipping on, no
// anti-aliasing, no gamma correction, nearest-texel sampling.
func DefaultConfig() Config {
	return Config{NearClip: true}
}

func (c Config) logger() *zap.Logger {
	if c.Logger == nil {
		return zap.NewNop()
	}
	return c.Logger
}

func (c Config) gammaEnabled() bool {
	return c.Gamma > 0 && c.Gamma != 1
}
