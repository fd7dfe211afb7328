// Package render holds the tag cloud renderers.
//
// # Format Conversion
//
// [ToPDF] converts any SVG to PDF using the external rsvg-convert tool
// (from librsvg).
//
//	svg := sink.RenderSVG(lay)
//	pdf, err := render.ToPDF(ctx, svg)
//
// # Tag Clouds
//
// The [cloud] subpackages do the actual work:
//   - [cloud/measure]: label measurement (font metrics, estimates, cells)
//   - [cloud/layout]: weight scaling and center-weighted row packing
//   - [cloud/styles]: colors, inline CSS and tag markup
//   - [cloud/sink]: output formats (HTML, SVG, JSON, DOT, PNG, PDF, terminal)
//
// [cloud]: github.com/matzehuels/tagcloud/pkg/render/cloud
// [cloud/measure]: github.com/matzehuels/tagcloud/pkg/render/cloud/measure
// [cloud/layout]: github.com/matzehuels/tagcloud/pkg/render/cloud/layout
// [cloud/styles]: github.com/matzehuels/tagcloud/pkg/render/cloud/styles
// [cloud/sink]: github.com/matzehuels/tagcloud/pkg/render/cloud/sink
package render
