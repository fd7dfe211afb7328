package layout

import (
	"slices"

	"github.com/matzehuels/tagcloud/pkg/cloud"
)

// Packing defaults. The base padding is two 5px paddings plus a 5px border
// allowance; the tag margin is two 10px margins plus 5px.
const (
	DefaultPadding = 2*5 + 5
	DefaultMargin  = 2*10 + 5
	DefaultGrowth  = 1.5
)

// PackOptions tunes the row packer. Zero fields take the defaults.
type PackOptions struct {
	// Padding is the initial container padding subtracted from the usable
	// row width.
	Padding float64 `json:"padding" toml:"padding" msgpack:"padding"`
	// Margin is added to every tag's width when accumulating a row.
	Margin float64 `json:"margin" toml:"margin" msgpack:"margin"`
	// Growth is the multiple of Padding added to the container padding each
	// time a row closes.
	Growth float64 `json:"growth" toml:"growth" msgpack:"growth"`
}

// DefaultPackOptions returns the classic packing constants.
func DefaultPackOptions() PackOptions {
	return PackOptions{Padding: DefaultPadding, Margin: DefaultMargin, Growth: DefaultGrowth}
}

// WithDefaults fills zero fields from [DefaultPackOptions].
func (o PackOptions) WithDefaults() PackOptions {
	d := DefaultPackOptions()
	if o.Padding == 0 {
		o.Padding = d.Padding
	}
	if o.Margin == 0 {
		o.Margin = d.Margin
	}
	if o.Growth == 0 {
		o.Growth = d.Growth
	}
	return o
}

// Pack groups tags into rows for a container of the given width. Tags must
// already be in descending weight order. The returned rows are in
// top-to-bottom render order; every input tag appears in exactly one row.
func Pack(tags []cloud.Tag, containerWidth float64, opts PackOptions) []cloud.Row {
	if len(tags) == 0 {
		return nil
	}
	p := newPacker(containerWidth, opts.WithDefaults())
	for _, t := range tags {
		p.add(t)
	}
	return p.finish()
}

// packer holds the state of a single packing pass. Row and cell order is
// kept as two slices per axis: items prepended to the front are collected
// in reverse and flipped once when the row (or the pass) completes.
type packer struct {
	width float64
	opts  PackOptions

	padding  float64
	rowWidth float64

	placed int // tags placed so far, drives left/right alternation
	closed int // rows closed so far, drives above/below alternation

	left, right []cloud.Tag
	above       []cloud.Row
	below       []cloud.Row
}

func newPacker(width float64, opts PackOptions) *packer {
	return &packer{width: width, opts: opts, padding: opts.Padding}
}

func (p *packer) rowLen() int { return len(p.left) + len(p.right) }

func (p *packer) add(t cloud.Tag) {
	if p.rowLen() > 0 && p.rowWidth+t.Width+p.opts.Margin >= p.width-p.padding {
		p.closeRow()
		p.padding += p.opts.Growth * p.opts.Padding
	}
	if p.placed%2 == 0 {
		p.right = append(p.right, t)
	} else {
		p.left = append(p.left, t)
	}
	p.placed++
	p.rowWidth += t.Width + p.opts.Margin
}

func (p *packer) closeRow() {
	cells := make([]cloud.Tag, 0, p.rowLen())
	for i := len(p.left) - 1; i >= 0; i-- {
		cells = append(cells, p.left[i])
	}
	cells = append(cells, p.right...)

	row := cloud.Row{Seq: p.closed, VAlign: rowAlign(p.closed), Tags: cells}
	if p.closed%2 == 0 {
		p.below = append(p.below, row)
	} else {
		p.above = append(p.above, row)
	}

	p.closed++
	p.left, p.right = nil, nil
	p.rowWidth = 0
}

func (p *packer) finish() []cloud.Row {
	if p.rowLen() > 0 {
		p.closeRow()
	}
	rows := make([]cloud.Row, 0, len(p.above)+len(p.below))
	rows = append(rows, p.above...)
	slices.Reverse(rows)
	return append(rows, p.below...)
}

// rowAlign returns the vertical alignment of the k-th produced row. Rows
// above the center hug it from below and rows beneath it hug it from above.
func rowAlign(k int) cloud.VAlign {
	switch {
	case k == 0:
		return cloud.AlignMiddle
	case k%2 == 1:
		return cloud.AlignBottom
	default:
		return cloud.AlignTop
	}
}
