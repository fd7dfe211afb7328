package sink

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/tagcloud/pkg/cloud"
	"github.com/matzehuels/tagcloud/pkg/render/cloud/layout"
	"github.com/matzehuels/tagcloud/pkg/render/cloud/styles"
)

// TerminalOption configures [RenderTerminal].
type TerminalOption func(*terminalRenderer)

type terminalRenderer struct {
	theme styles.Theme
	width int
	gap   int
}

func WithTerminalTheme(th styles.Theme) TerminalOption {
	return func(r *terminalRenderer) { r.theme = th }
}

// WithTerminalWidth sets the width rows are centered in. The default is the
// layout's container width, read as cells.
func WithTerminalWidth(n int) TerminalOption { return func(r *terminalRenderer) { r.width = n } }

// RenderTerminal renders the layout as colored text, one line per row.
// Lay the cloud out with [measure.Cells] so widths are in cells. Tags in
// the upper half of the font range are bold.
//
// [measure.Cells]: github.com/matzehuels/tagcloud/pkg/render/cloud/measure.Cells
func RenderTerminal(l *layout.Layout, opts ...TerminalOption) string {
	r := terminalRenderer{
		theme: styles.DefaultTheme(),
		width: int(l.Config.ContainerWidth),
		gap:   max(1, int(l.Pack.Margin)),
	}
	for _, opt := range opts {
		opt(&r)
	}

	mid := (l.Config.MinFontSize + l.Config.MaxFontSize) / 2
	sep := strings.Repeat(" ", r.gap)

	lines := make([]string, 0, len(l.Rows))
	for _, row := range l.Rows {
		cells := make([]string, 0, len(row.Tags))
		for _, t := range row.Tags {
			cells = append(cells, r.tagStyle(t, t.FontSize >= mid).Render(t.Label))
		}
		line := strings.Join(cells, sep)
		lines = append(lines, lipgloss.PlaceHorizontal(r.width, lipgloss.Center, line))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (r terminalRenderer) tagStyle(t cloud.Tag, bold bool) lipgloss.Style {
	s := lipgloss.NewStyle().Padding(0, int(r.theme.Tag.Box.PaddingX)).Bold(bold)
	bg := r.theme.Background(t)
	if c, ok := termColor(bg); ok {
		s = s.Background(c)
	}
	if c, ok := termColor(r.theme.TextColor(t, bg)); ok {
		s = s.Foreground(c)
	}
	return s
}

// termColor maps a CSS color to a terminal color. Only hex colors and the
// black and white picked by automatic contrast are supported.
func termColor(c string) (lipgloss.Color, bool) {
	switch c {
	case "black":
		return lipgloss.Color("#000000"), true
	case "white":
		return lipgloss.Color("#ffffff"), true
	}
	if _, ok := styles.Luminance(c); ok {
		return lipgloss.Color(styles.ExpandHex(c)[:7]), true
	}
	return "", false
}
