package layout

import (
	"math"

	"github.com/matzehuels/tagcloud/pkg/cloud"
)

// Scaler maps weights in a fixed range onto font sizes.
type Scaler struct {
	a, b       float64
	lo, hi     float64
	fallback   float64
	degenerate bool
}

// NewScaler builds the linear map from [minW, maxW] to the config's font
// range. When minW == maxW every weight maps to cfg.Fallback().
func NewScaler(minW, maxW float64, cfg cloud.Config) Scaler {
	s := Scaler{lo: cfg.MinFontSize, hi: cfg.MaxFontSize, fallback: cfg.Fallback()}
	if maxW == minW {
		s.degenerate = true
		return s
	}
	s.a = (cfg.MaxFontSize - cfg.MinFontSize) / (maxW - minW)
	s.b = cfg.MinFontSize - minW*s.a
	return s
}

// Degenerate reports whether the weight range is empty.
func (s Scaler) Degenerate() bool { return s.degenerate }

// Size returns the font size for w, truncated to one decimal place.
func (s Scaler) Size(w float64) float64 {
	if s.degenerate {
		return s.fallback
	}
	v := math.Trunc((s.a*w+s.b)*10) / 10
	return max(s.lo, min(s.hi, v))
}

// Scale is the one-shot form of [NewScaler] followed by [Scaler.Size].
func Scale(weight, minW, maxW, minFont, maxFont float64) float64 {
	cfg := cloud.Config{MinFontSize: minFont, MaxFontSize: maxFont}
	return NewScaler(minW, maxW, cfg).Size(weight)
}
