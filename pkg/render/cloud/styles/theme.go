package styles

import (
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/matzehuels/tagcloud/pkg/cloud"
	"github.com/matzehuels/tagcloud/pkg/errors"
	"github.com/matzehuels/tagcloud/pkg/render/cloud/measure"
)

// Container styles the block that holds the cloud.
type Container struct {
	Background string `json:"background_color" toml:"background_color"`
	Color      string `json:"color" toml:"color"`
	Padding    string `json:"padding" toml:"padding"`
	FontFamily string `json:"font_family" toml:"font_family"`
}

// TagStyle styles every tag span.
type TagStyle struct {
	// Color is the text color, or AutoColor. Empty means AutoColor.
	Color string `json:"color" toml:"color"`
	// Background overrides the palette for every tag without its own color.
	Background string `json:"background_color" toml:"background_color"`
	TextShadow bool   `json:"text_shadow" toml:"text_shadow"`

	Box measure.Box `json:"box" toml:"box"`

	// CSS holds extra declarations added to every tag, keyed by property.
	CSS map[string]string `json:"css,omitempty" toml:"css"`
}

// Theme is the full presentation of a cloud.
type Theme struct {
	Container Container `json:"container" toml:"container"`
	Tag       TagStyle  `json:"tag" toml:"tag"`
	Palette   []string  `json:"background_colors" toml:"background_colors"`
}

// DefaultTheme returns the classic light-gray container with palette
// backgrounds and automatic text color.
func DefaultTheme() Theme {
	return Theme{
		Container: Container{
			Background: "#f0f0f0",
			Color:      "#666666",
			Padding:    "10px 5px",
			FontFamily: `"Helvetica Neue",Helvetica,Arial,sans-serif`,
		},
		Tag: TagStyle{
			Color: AutoColor,
			Box:   measure.DefaultBox,
		},
		Palette: slices.Clone(DefaultPalette),
	}
}

// Validate checks every color in the theme.
func (th Theme) Validate() error {
	check := func(what, c string) error {
		if c == "" {
			return nil
		}
		if err := errors.ValidateColor(c); err != nil {
			return fmt.Errorf("%s: %w", what, err)
		}
		return nil
	}
	for _, f := range [][2]string{
		{"container background", th.Container.Background},
		{"container color", th.Container.Color},
		{"tag color", th.Tag.Color},
		{"tag background", th.Tag.Background},
	} {
		if err := check(f[0], f[1]); err != nil {
			return err
		}
	}
	for i, c := range th.Palette {
		if err := check(fmt.Sprintf("palette entry %d", i), c); err != nil {
			return err
		}
	}
	return nil
}

// Background resolves the background color of t.
func (th Theme) Background(t cloud.Tag) string {
	if usable(t.BgColor) {
		return t.BgColor
	}
	if th.Tag.Background != "" {
		return th.Tag.Background
	}
	if t.Rank >= 0 && t.Rank < len(th.Palette) {
		return th.Palette[t.Rank]
	}
	return DefaultTagBackground
}

// TextColor resolves the text color of t against background bg. It returns
// "" when the color is automatic and bg is not a hex color, in which case
// the container color applies.
func (th Theme) TextColor(t cloud.Tag, bg string) string {
	c := AutoColor
	switch {
	case usable(t.Color):
		c = t.Color
	case th.Tag.Color != "":
		c = th.Tag.Color
	}
	if c == AutoColor {
		return ContrastTextColor(bg)
	}
	return c
}

// Style implements layout.Styler. It writes the resolved colors into t and
// returns the label as it will be rendered.
func (th Theme) Style(t *cloud.Tag) measure.Label {
	bg := th.Background(*t)
	t.Color = th.TextColor(*t, bg)
	t.BgColor = bg
	return measure.Label{
		Text:       t.Label,
		FontSize:   t.FontSize,
		FontFamily: th.Container.FontFamily,
		Box:        th.Tag.Box,
		Markup:     th.TagHTML(*t),
	}
}

// TagCSS returns the inline style declarations of t.
func (th Theme) TagCSS(t cloud.Tag) string {
	var b strings.Builder
	fmt.Fprintf(&b, "font-size: %spx;", num(t.FontSize))

	bg := th.Background(t)
	fmt.Fprintf(&b, " background-color: %s;", bg)
	if c := th.TextColor(t, bg); c != "" {
		fmt.Fprintf(&b, " color: %s;", c)
	}
	if th.Tag.TextShadow {
		if s := ShadowColor(bg); s != "" {
			fmt.Fprintf(&b, " text-shadow: 0px 0px 2px %s;", s)
		}
	}

	box := th.Tag.Box
	if box.PaddingX > 0 || box.PaddingY > 0 {
		fmt.Fprintf(&b, " padding: %spx %spx;", num(box.PaddingY), num(box.PaddingX))
	}
	if box.Border > 0 {
		fmt.Fprintf(&b, " border-width: %spx; border-style: solid;", num(box.Border))
	}

	for _, k := range slices.Sorted(maps.Keys(th.Tag.CSS)) {
		fmt.Fprintf(&b, " %s: %s;", k, th.Tag.CSS[k])
	}
	return b.String()
}

// TagHTML returns the span for one tag. Every attribute value and the text
// are entity-encoded.
func (th Theme) TagHTML(t cloud.Tag) string {
	var b strings.Builder
	fmt.Fprintf(&b, `<span class="jqTcTag" data-tag="%s" data-link="%s" data-weight="%s" data-size="%s" style="%s"`,
		Escape(t.Label), Escape(t.Link), num(t.Weight), num(t.FontSize), Escape(th.TagCSS(t)))
	if t.Tooltip != "" {
		fmt.Fprintf(&b, ` title="%s"`, Escape(t.Tooltip))
	}
	b.WriteString(">")
	if t.Link != "" {
		fmt.Fprintf(&b, `<a href="%s" target="_blank">%s</a>`, Escape(t.Link), Escape(t.Label))
	} else {
		b.WriteString(Escape(t.Label))
	}
	b.WriteString("</span>")
	return b.String()
}

// ContainerCSS returns the inline style of the container block.
func (th Theme) ContainerCSS(width float64) string {
	c := th.Container
	parts := []string{fmt.Sprintf("width: %spx;", num(width))}
	if c.Background != "" {
		parts = append(parts, "background-color: "+c.Background+";")
	}
	if c.Color != "" {
		parts = append(parts, "color: "+c.Color+";")
	}
	if c.Padding != "" {
		parts = append(parts, "padding: "+c.Padding+";")
	}
	if c.FontFamily != "" {
		parts = append(parts, "font-family: "+c.FontFamily+";")
	}
	return strings.Join(parts, " ")
}

// usable reports whether a record-level color may be emitted.
func usable(c string) bool {
	return c != "" && errors.ValidateColor(c) == nil
}

// num formats a number the shortest way that round-trips.
func num(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }
