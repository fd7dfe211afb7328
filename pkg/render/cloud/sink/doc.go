// Package sink renders a finished [layout.Layout] to output formats.
//
// # Formats
//
//   - [RenderHTML]: the table-based markup of the classic jQuery plugin,
//     optionally wrapped in a standalone document
//   - [RenderSVG]: a self-contained vector image
//   - [RenderJSON] and [ParseJSON]: the layout itself, for caching and
//     round-trip rendering
//   - [ToDOT], [RenderDOTSVG] and [RenderPNG]: a Graphviz HTML-table
//     rendition; PNG is produced by Graphviz without external tools
//   - [RenderPDF]: SVG converted with rsvg-convert
//   - [RenderTerminal]: colored rows for a terminal preview
//
// Sinks never change the layout. Every sink takes the [styles.Theme] the
// layout was built with; rendering with a different theme still works but
// the measured boxes may no longer match the text.
//
// [layout.Layout]: github.com/matzehuels/tagcloud/pkg/render/cloud/layout.Layout
// [styles.Theme]: github.com/matzehuels/tagcloud/pkg/render/cloud/styles.Theme
package sink
