package measure

import "unicode/utf8"

const (
	charWidthRatio  = 0.55
	lineHeightRatio = 1.2
)

// Estimate approximates text size from the character count. It needs no
// font data and is stable across platforms, which makes it the measurer of
// choice for cached or server-side layouts where exact glyph metrics do not
// matter.
type Estimate struct{}

// Measure implements Measurer.
func (Estimate) Measure(l Label) (Size, error) {
	n := utf8.RuneCountInString(l.Text)
	w := float64(n) * l.FontSize * charWidthRatio
	h := l.FontSize * lineHeightRatio
	return l.Box.Outer(w, h), nil
}
