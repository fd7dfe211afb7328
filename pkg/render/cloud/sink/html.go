package sink

import (
	"bytes"
	"fmt"

	"github.com/matzehuels/tagcloud/pkg/render/cloud/layout"
	"github.com/matzehuels/tagcloud/pkg/render/cloud/styles"
)

const standaloneCSS = `
    body { margin: 2em; }
    .jqTcContainer { margin: 0 auto; box-sizing: content-box; }
    .jqTcTable { border-collapse: collapse; margin: 0 auto; }
    .jqTcTable td { text-align: center; padding: 0; }
    .jqTcTag { display: inline-block; margin: 10px; border-radius: 3px; line-height: 1.2; white-space: nowrap; }
    .jqTcTag a { color: inherit; text-decoration: none; }`

// HTMLOption configures [RenderHTML].
type HTMLOption func(*htmlRenderer)

type htmlRenderer struct {
	theme      styles.Theme
	standalone bool
	title      string
}

// WithHTMLTheme sets the theme. The default is [styles.DefaultTheme].
func WithHTMLTheme(th styles.Theme) HTMLOption { return func(r *htmlRenderer) { r.theme = th } }

// WithStandalone wraps the cloud in a complete HTML document with the given
// page title.
func WithStandalone(title string) HTMLOption {
	return func(r *htmlRenderer) { r.standalone = true; r.title = title }
}

// RenderHTML renders the layout as a container div holding one table row
// per cloud row.
func RenderHTML(l *layout.Layout, opts ...HTMLOption) []byte {
	r := htmlRenderer{theme: styles.DefaultTheme(), title: "Tag cloud"}
	for _, opt := range opts {
		opt(&r)
	}

	var buf bytes.Buffer
	if r.standalone {
		buf.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n")
		fmt.Fprintf(&buf, "<title>%s</title>\n", styles.Escape(r.title))
		fmt.Fprintf(&buf, "<style>%s\n</style>\n</head>\n<body>\n", standaloneCSS)
	}

	fmt.Fprintf(&buf, `<div class="jqTcContainer" style="%s">`, styles.Escape(r.theme.ContainerCSS(l.Config.ContainerWidth)))
	buf.WriteString(`<table class="jqTcTable">`)
	for _, row := range l.Rows {
		fmt.Fprintf(&buf, `<tr><td style="vertical-align: %s;">`, row.VAlign)
		for _, t := range row.Tags {
			buf.WriteString(r.theme.TagHTML(t))
		}
		buf.WriteString("</td></tr>")
	}
	buf.WriteString("</table></div>\n")

	if r.standalone {
		buf.WriteString("</body>\n</html>\n")
	}
	return buf.Bytes()
}
