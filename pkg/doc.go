// Package pkg holds the libraries behind the tagcloud command.
//
// # Overview
//
// A tag cloud is built in three steps:
//
//	records ([io] reads JSON, YAML or an HTML list)
//	    ↓
//	[render/cloud/layout] scales weights to font sizes, measures each
//	label and packs the tags into center-weighted rows
//	    ↓
//	[render/cloud/sink] writes HTML, SVG, JSON, DOT, PNG, PDF or text
//
// [pipeline] runs those steps with caching ([cache]) and is shared by the
// CLI and the HTTP API ([server]), so both produce identical output for the
// same input.
//
// # Quick Start
//
//	recs, _ := io.Import("tags.yaml")
//	lay, _ := layout.Build(recs, cloud.DefaultConfig(), measure.Estimate{})
//	html := sink.RenderHTML(lay, sink.WithStandalone("Tags"))
//
// # Packages
//
// [cloud] - Records, tags, rows and the sizing configuration.
//
// [errors] - Coded errors shared by every package.
//
// [config] - TOML settings files.
//
// [observability] - Hooks for layout and render events.
//
// [buildinfo] - Version information stamped in at build time.
//
// [cloud]: https://pkg.go.dev/github.com/matzehuels/tagcloud/pkg/cloud
// [errors]: https://pkg.go.dev/github.com/matzehuels/tagcloud/pkg/errors
// [config]: https://pkg.go.dev/github.com/matzehuels/tagcloud/pkg/config
// [cache]: https://pkg.go.dev/github.com/matzehuels/tagcloud/pkg/cache
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/tagcloud/pkg/pipeline
// [server]: https://pkg.go.dev/github.com/matzehuels/tagcloud/pkg/server
// [observability]: https://pkg.go.dev/github.com/matzehuels/tagcloud/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/tagcloud/pkg/buildinfo
//
// [io]: https://pkg.go.dev/github.com/matzehuels/tagcloud/pkg/io
// [render/cloud/layout]: https://pkg.go.dev/github.com/matzehuels/tagcloud/pkg/render/cloud/layout
// [render/cloud/sink]: https://pkg.go.dev/github.com/matzehuels/tagcloud/pkg/render/cloud/sink
package pkg
