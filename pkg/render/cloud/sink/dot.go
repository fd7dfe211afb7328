package sink

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/tagcloud/pkg/cloud"
	"github.com/matzehuels/tagcloud/pkg/errors"
	"github.com/matzehuels/tagcloud/pkg/render/cloud/layout"
	"github.com/matzehuels/tagcloud/pkg/render/cloud/styles"
)

// ToDOT converts a layout to a Graphviz graph with a single HTML-table node.
// Each cloud row becomes a nested table so rows keep their own width and
// are centered like the HTML rendering.
func ToDOT(l *layout.Layout, th styles.Theme) string {
	var buf bytes.Buffer
	buf.WriteString("digraph cloud {\n")
	fmt.Fprintf(&buf, "  graph [bgcolor=%q, pad=\"0.2\"];\n", dotColor(th.Container.Background, "transparent"))
	buf.WriteString("  node [shape=plaintext, margin=0, fontname=\"Helvetica\"];\n\n")

	buf.WriteString("  cloud [label=<\n")
	buf.WriteString(`    <TABLE BORDER="0" CELLBORDER="0" CELLSPACING="0" CELLPADDING="0">` + "\n")
	for _, row := range l.Rows {
		buf.WriteString("      <TR><TD>")
		writeDOTRow(&buf, th, row)
		buf.WriteString("</TD></TR>\n")
	}
	if len(l.Rows) == 0 {
		buf.WriteString("      <TR><TD> </TD></TR>\n")
	}
	buf.WriteString("    </TABLE>\n  >];\n}\n")
	return buf.String()
}

func writeDOTRow(buf *bytes.Buffer, th styles.Theme, row cloud.Row) {
	valign := strings.ToUpper(row.VAlign.String())
	buf.WriteString(`<TABLE BORDER="0" CELLBORDER="0" CELLSPACING="6" CELLPADDING="4"><TR>`)
	for _, t := range row.Tags {
		bg := th.Background(t)
		fg := th.TextColor(t, bg)
		fmt.Fprintf(buf, `<TD VALIGN="%s" BGCOLOR="%s"`, valign, dotColor(bg, styles.DefaultTagBackground))
		if t.Link != "" {
			fmt.Fprintf(buf, ` HREF="%s" TARGET="_blank"`, styles.Escape(t.Link))
		}
		if t.Tooltip != "" {
			fmt.Fprintf(buf, ` TOOLTIP="%s"`, styles.Escape(t.Tooltip))
		}
		fmt.Fprintf(buf, `><FONT POINT-SIZE="%g" COLOR="%s">%s</FONT></TD>`,
			t.FontSize, dotColor(fg, "black"), styles.Escape(t.Label))
	}
	buf.WriteString("</TR></TABLE>")
}

// dotColor returns a color Graphviz accepts: hex colors are expanded and
// plain color names pass through. Anything else falls back to def.
func dotColor(c, def string) string {
	if _, ok := styles.Luminance(c); ok {
		return styles.ExpandHex(c)
	}
	if c != "" && strings.IndexFunc(c, func(r rune) bool {
		return (r < 'a' || r > 'z') && (r < 'A' || r > 'Z')
	}) < 0 {
		return strings.ToLower(c)
	}
	return def
}

// RenderDOTSVG renders the Graphviz rendition of a layout to SVG.
func RenderDOTSVG(ctx context.Context, l *layout.Layout, th styles.Theme) ([]byte, error) {
	return renderDOT(ctx, ToDOT(l, th), graphviz.SVG)
}

// RenderPNG renders the Graphviz rendition of a layout to PNG. No external
// tools are needed.
func RenderPNG(ctx context.Context, l *layout.Layout, th styles.Theme) ([]byte, error) {
	return renderDOT(ctx, ToDOT(l, th), graphviz.PNG)
}

func renderDOT(ctx context.Context, dot string, format graphviz.Format) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "init graphviz")
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "parse DOT")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "render %s", format)
	}
	return buf.Bytes(), nil
}
