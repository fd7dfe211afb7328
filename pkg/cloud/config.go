package cloud

import (
	"math"

	"github.com/matzehuels/tagcloud/pkg/errors"
)

// Default layout configuration values.
const (
	DefaultContainerWidth = 500.0
	DefaultMinFontSize    = 10.0
	DefaultMaxFontSize    = 40.0
)

// Config is the per-pass layout configuration.
type Config struct {
	ContainerWidth float64 `json:"container_width" toml:"width" msgpack:"container_width"`
	MinFontSize    float64 `json:"min_font_size" toml:"min_font_size" msgpack:"min_font_size"`
	MaxFontSize    float64 `json:"max_font_size" toml:"max_font_size" msgpack:"max_font_size"`

	// FallbackFontSize is used for every tag when all weights are equal.
	// Zero means MaxFontSize.
	FallbackFontSize float64 `json:"fallback_font_size,omitempty" toml:"fallback_font_size,omitempty" msgpack:"fallback_font_size,omitempty"`
}

// DefaultConfig returns a 500px wide cloud with 10–40px fonts.
func DefaultConfig() Config {
	return Config{
		ContainerWidth: DefaultContainerWidth,
		MinFontSize:    DefaultMinFontSize,
		MaxFontSize:    DefaultMaxFontSize,
	}
}

// Fallback returns the font size used for a degenerate weight range.
func (c Config) Fallback() float64 {
	if c.FallbackFontSize > 0 {
		return c.FallbackFontSize
	}
	return c.MaxFontSize
}

// Validate reports an INVALID_CONFIG error for unusable values.
func (c Config) Validate() error {
	for _, f := range []struct {
		name string
		v    float64
	}{
		{"container width", c.ContainerWidth},
		{"min font size", c.MinFontSize},
		{"max font size", c.MaxFontSize},
		{"fallback font size", c.FallbackFontSize},
	} {
		if math.IsNaN(f.v) || math.IsInf(f.v, 0) {
			return errors.New(errors.ErrCodeInvalidConfig, "%s must be finite", f.name)
		}
	}
	if c.ContainerWidth <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "container width must be positive, got %v", c.ContainerWidth)
	}
	if c.MinFontSize <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "min font size must be positive, got %v", c.MinFontSize)
	}
	if c.MaxFontSize < c.MinFontSize {
		return errors.New(errors.ErrCodeInvalidConfig, "max font size %v is below min font size %v", c.MaxFontSize, c.MinFontSize)
	}
	if c.FallbackFontSize < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "fallback font size cannot be negative")
	}
	return nil
}
