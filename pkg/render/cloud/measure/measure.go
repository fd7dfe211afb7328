// Package measure computes the rendered size of a styled tag label.
//
// The layout core never measures text itself. It builds a [Label] once a
// tag's font size and style are final and asks a [Measurer] for the
// occupied box. Implementations:
//
//   - [OpenType]: glyph advances from a real font (Go Regular by default)
//   - [Estimate]: a synthetic average-character-width estimate
//   - [Cells]: terminal cell widths, for the terminal preview
//   - [Fixed] and [Func]: constant sizes and adapters, mostly for tests
//
// Measurers must be deterministic for a given label. None of them are
// required to be safe for concurrent use; create one per layout pass.
package measure

import "fmt"

// Box describes the padding and border around the label text, in pixels
// (or cells for [Cells]).
type Box struct {
	PaddingX float64 `json:"padding_x" toml:"padding_x"`
	PaddingY float64 `json:"padding_y" toml:"padding_y"`
	Border   float64 `json:"border" toml:"border"`
}

// DefaultBox is the box used when a style does not specify one.
var DefaultBox = Box{PaddingX: 5, PaddingY: 2}

// Outer adds the box to a content size.
func (b Box) Outer(w, h float64) Size {
	return Size{
		Width:  w + 2*b.PaddingX + 2*b.Border,
		Height: h + 2*b.PaddingY + 2*b.Border,
	}
}

// Label is a fully styled tag ready to be measured.
type Label struct {
	Text       string
	FontSize   float64
	FontFamily string
	Box        Box

	// Markup is the rendered tag markup, for measurers backed by a real
	// layout engine. The built-in measurers only read Text.
	Markup string
}

// Size is an outer box size.
type Size struct {
	Width  float64
	Height float64
}

func (s Size) String() string { return fmt.Sprintf("%.1fx%.1f", s.Width, s.Height) }

// Measurer returns the occupied size of a label.
type Measurer interface {
	Measure(Label) (Size, error)
}

// Func adapts a function to the Measurer interface.
type Func func(Label) (Size, error)

// Measure calls f.
func (f Func) Measure(l Label) (Size, error) { return f(l) }

// Fixed measures every label as the same size.
type Fixed Size

// Measure returns the fixed size.
func (f Fixed) Measure(Label) (Size, error) { return Size(f), nil }
