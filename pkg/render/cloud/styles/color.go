package styles

import (
	"regexp"
	"strconv"
)

const luminanceThreshold = 127

// Text shadow colors for light and dark backgrounds.
const (
	ShadowLight = "#dddddd"
	ShadowDark  = "#222222"
)

var (
	shortHex = regexp.MustCompile(`^#([0-9a-fA-F])([0-9a-fA-F])([0-9a-fA-F])$`)
	longHex  = regexp.MustCompile(`^#([0-9a-fA-F]{2})([0-9a-fA-F]{2})([0-9a-fA-F]{2})(?:[0-9a-fA-F]{2})?$`)
)

// ExpandHex turns "#abc" into "#aabbcc". Other values are returned as is.
func ExpandHex(c string) string {
	return shortHex.ReplaceAllString(c, "#$1$1$2$2$3$3")
}

// Luminance returns the average of the red, green and blue channels of a
// hex color, on a 0–255 scale. An alpha channel is ignored. ok is false for
// anything that is not a hex color.
func Luminance(c string) (lum float64, ok bool) {
	m := longHex.FindStringSubmatch(ExpandHex(c))
	if m == nil {
		return 0, false
	}
	var sum float64
	for _, ch := range m[1:4] {
		v, _ := strconv.ParseUint(ch, 16, 8)
		sum += float64(v)
	}
	return sum / 3, true
}

// IsLight reports whether bg is a hex color brighter than the midpoint.
func IsLight(bg string) (light, ok bool) {
	lum, ok := Luminance(bg)
	return lum > luminanceThreshold, ok
}

// ContrastTextColor returns "black" for light backgrounds and "white" for
// dark ones. It returns "" when bg is not a hex color.
func ContrastTextColor(bg string) string {
	light, ok := IsLight(bg)
	switch {
	case !ok:
		return ""
	case light:
		return "black"
	default:
		return "white"
	}
}

// ShadowColor returns the text shadow color for bg, or "" when bg is not a
// hex color.
func ShadowColor(bg string) string {
	light, ok := IsLight(bg)
	switch {
	case !ok:
		return ""
	case light:
		return ShadowLight
	default:
		return ShadowDark
	}
}
