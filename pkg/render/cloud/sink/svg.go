package sink

import (
	"bytes"
	"fmt"

	"github.com/matzehuels/tagcloud/pkg/cloud"
	"github.com/matzehuels/tagcloud/pkg/render/cloud/layout"
	"github.com/matzehuels/tagcloud/pkg/render/cloud/styles"
)

const (
	svgPadding = 10.0
	svgRowGap  = 10.0
	svgRadius  = 3.0
)

// SVGOption configures [RenderSVG].
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	theme      styles.Theme
	background bool
}

func WithSVGTheme(th styles.Theme) SVGOption { return func(r *svgRenderer) { r.theme = th } }

// WithTransparent omits the container background.
func WithTransparent() SVGOption { return func(r *svgRenderer) { r.background = false } }

// Placed is a tag with its position in the rendered frame.
type Placed struct {
	Tag  cloud.Tag
	X, Y float64
}

// Frame is the geometry of a rendered cloud.
type Frame struct {
	Width, Height float64
	Tags          []Placed
}

// Geometry positions every tag. Rows stack top to bottom and are centered
// horizontally; inside a row, tags are aligned by the row's VAlign and
// separated by the layout's tag margin.
func Geometry(l *layout.Layout) Frame {
	gap := l.Pack.WithDefaults().Margin

	width := l.Config.ContainerWidth
	for _, row := range l.Rows {
		width = max(width, rowSpan(row, gap)+2*svgPadding)
	}

	f := Frame{Width: width}
	y := svgPadding
	for _, row := range l.Rows {
		h := row.Height()
		x := (width - rowSpan(row, gap)) / 2
		for _, t := range row.Tags {
			ty := y
			switch row.VAlign {
			case cloud.AlignMiddle:
				ty += (h - t.Height) / 2
			case cloud.AlignBottom:
				ty += h - t.Height
			}
			f.Tags = append(f.Tags, Placed{Tag: t, X: x, Y: ty})
			x += t.Width + gap
		}
		y += h + svgRowGap
	}
	if len(l.Rows) > 0 {
		y -= svgRowGap
	}
	f.Height = y + svgPadding
	return f
}

func rowSpan(r cloud.Row, gap float64) float64 {
	if len(r.Tags) == 0 {
		return 0
	}
	return r.Width() + gap*float64(len(r.Tags)-1)
}

// RenderSVG renders the layout as a standalone SVG image.
func RenderSVG(l *layout.Layout, opts ...SVGOption) []byte {
	r := svgRenderer{theme: styles.DefaultTheme(), background: true}
	for _, opt := range opts {
		opt(&r)
	}
	th := r.theme
	f := Geometry(l)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		f.Width, f.Height, f.Width, f.Height)
	if r.background && th.Container.Background != "" {
		fmt.Fprintf(&buf, `  <rect width="100%%" height="100%%" fill="%s"/>`+"\n", styles.Escape(th.Container.Background))
	}
	if th.Container.FontFamily != "" {
		fmt.Fprintf(&buf, `  <g font-family="%s">`+"\n", styles.Escape(th.Container.FontFamily))
	} else {
		buf.WriteString("  <g>\n")
	}
	for _, p := range f.Tags {
		renderSVGTag(&buf, th, p)
	}
	buf.WriteString("  </g>\n</svg>\n")
	return buf.Bytes()
}

func renderSVGTag(buf *bytes.Buffer, th styles.Theme, p Placed) {
	t := p.Tag
	bg := th.Background(t)
	fg := th.TextColor(t, bg)
	if fg == "" {
		fg = th.Container.Color
	}

	indent := "    "
	if t.Link != "" {
		fmt.Fprintf(buf, `    <a href="%s" target="_blank">`+"\n", styles.Escape(t.Link))
		indent = "      "
	}
	fmt.Fprintf(buf, `%s<g class="tag" id="%s" data-weight="%g">`+"\n", indent, styles.Escape(t.ID), t.Weight)
	if t.Tooltip != "" {
		fmt.Fprintf(buf, "%s  <title>%s</title>\n", indent, styles.Escape(t.Tooltip))
	}
	fmt.Fprintf(buf, `%s  <rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" rx="%.0f" fill="%s"/>`+"\n",
		indent, p.X, p.Y, t.Width, t.Height, svgRadius, styles.Escape(bg))
	fmt.Fprintf(buf, `%s  <text x="%.2f" y="%.2f" font-size="%g" fill="%s" text-anchor="middle" dominant-baseline="central">%s</text>`+"\n",
		indent, p.X+t.Width/2, p.Y+t.Height/2, t.FontSize, styles.Escape(fg), styles.Escape(t.Label))
	fmt.Fprintf(buf, "%s</g>\n", indent)
	if t.Link != "" {
		buf.WriteString("    </a>\n")
	}
}
