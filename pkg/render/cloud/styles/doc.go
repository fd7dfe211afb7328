// Package styles resolves tag presentation: background and text colors,
// inline CSS and the markup of a single tag.
//
// A [Theme] is a [layout.Styler]: the layout pass calls [Theme.Style] once
// per tag after the font size is fixed, so the measured label already
// reflects the final colors and box. Sinks reuse the same theme to emit
// markup, which keeps measurement and output in agreement.
//
// Background colors resolve in this order: the record's own color, the
// theme's tag background, the palette entry at the tag's rank, and finally
// [DefaultTagBackground]. A text color of [AutoColor] becomes black or
// white depending on the background (see [ContrastTextColor]).
//
// [layout.Styler]: github.com/matzehuels/tagcloud/pkg/render/cloud/layout.Styler
package styles
