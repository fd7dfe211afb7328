package pipeline

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/tagcloud/pkg/errors"
	"github.com/matzehuels/tagcloud/pkg/render/cloud/layout"
	"github.com/matzehuels/tagcloud/pkg/render/cloud/sink"
)

// maxRenderJobs bounds concurrent renderers. PNG and PDF each start an
// external renderer.
const maxRenderJobs = 4

// Render produces every requested format from l, concurrently. Options
// must have been validated.
func Render(ctx context.Context, l *layout.Layout, opts Options) (map[string][]byte, error) {
	var mu sync.Mutex
	artifacts := make(map[string][]byte, len(opts.Formats))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(maxRenderJobs, max(1, len(opts.Formats))))
	for _, format := range opts.Formats {
		g.Go(func() error {
			data, err := RenderFormat(gctx, l, format, opts)
			if err != nil {
				return fmt.Errorf("render %s: %w", format, err)
			}
			mu.Lock()
			artifacts[format] = data
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return artifacts, nil
}

// RenderFormat produces a single format.
func RenderFormat(ctx context.Context, l *layout.Layout, format string, opts Options) ([]byte, error) {
	th := opts.theme()
	svgOpts := []sink.SVGOption{sink.WithSVGTheme(th)}
	if opts.Transparent {
		svgOpts = append(svgOpts, sink.WithTransparent())
	}

	switch format {
	case FormatHTML:
		htmlOpts := []sink.HTMLOption{sink.WithHTMLTheme(th)}
		if opts.Standalone {
			htmlOpts = append(htmlOpts, sink.WithStandalone(opts.Title))
		}
		return sink.RenderHTML(l, htmlOpts...), nil
	case FormatSVG:
		return sink.RenderSVG(l, svgOpts...), nil
	case FormatJSON:
		return sink.RenderJSON(l)
	case FormatDOT:
		return []byte(sink.ToDOT(l, th)), nil
	case FormatPNG:
		return sink.RenderPNG(ctx, l, th)
	case FormatPDF:
		return sink.RenderPDF(ctx, l, svgOpts...)
	case FormatText:
		termOpts := []sink.TerminalOption{sink.WithTerminalTheme(th)}
		if opts.TermWidth > 0 {
			termOpts = append(termOpts, sink.WithTerminalWidth(opts.TermWidth))
		}
		return []byte(sink.RenderTerminal(l, termOpts...) + "\n"), nil
	}
	return nil, errors.New(errors.ErrCodeUnsupported, "unsupported format: %s", format)
}
