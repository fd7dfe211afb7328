package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/matzehuels/tagcloud/pkg/errors"
	"github.com/matzehuels/tagcloud/pkg/pipeline"
)

// renderFlags holds the output flags of render and visualize.
type renderFlags struct {
	output      string
	formats     string
	standalone  bool
	title       string
	transparent bool
	termWidth   int
}

func (f *renderFlags) register(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.StringVarP(&f.output, "output", "o", "", "output file (single format), base path (multiple) or - for stdout")
	fl.StringVarP(&f.formats, "format", "f", "", "output format(s): "+joinComma(pipeline.Formats)+" (default html, comma-separated)")
	fl.BoolVar(&f.standalone, "standalone", false, "wrap HTML output in a complete document")
	fl.StringVar(&f.title, "title", "", "document title for --standalone (default \"Tag cloud\")")
	fl.BoolVar(&f.transparent, "transparent", false, "omit the container background in SVG and PDF output")
	fl.IntVar(&f.termWidth, "term-width", 0, "line width of txt output (default: container width)")
}

// apply copies the render flags into opts and validates the formats.
func (f *renderFlags) apply(opts *pipeline.Options) error {
	opts.Formats = parseFormats(f.formats)
	if err := pipeline.ValidateFormats(opts.Formats); err != nil {
		return err
	}
	opts.Standalone = f.standalone
	opts.Title = f.title
	opts.Transparent = f.transparent
	opts.TermWidth = f.termWidth
	return nil
}

// renderCommand creates the render command: records in, artifacts out.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		lf layoutFlags
		rf renderFlags
	)

	cmd := &cobra.Command{
		Use:   "render [records]",
		Short: "Lay out tag records and render the cloud",
		Long: `Lay out tag records and render the cloud.

Records are read from a JSON or YAML file, or from the first <ul> of an HTML
file. Use - to read JSON from stdin. Every record needs a tag and a numeric
weight; by default a single bad record fails the run and every bad record is
listed. Pass --skip-invalid to drop them instead.

Settings come from --config (a TOML file) with flags taking precedence.
Layouts and artifacts are cached locally for faster subsequent runs.`,
		Example: `  tagcloud render tags.json
  tagcloud render tags.yaml -f html,svg,png -o out/cloud
  tagcloud render page.html --base styles.json --standalone -o cloud.html`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := lf.options(cmd)
			if err != nil {
				return err
			}
			if err := rf.apply(&opts); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), args[0], &lf, opts, rf.output)
		},
	}

	lf.register(cmd)
	rf.register(cmd)
	return cmd
}

func (c *CLI) runRender(ctx context.Context, input string, lf *layoutFlags, opts pipeline.Options, output string) error {
	if output == stdoutPath && len(opts.Formats) != 1 {
		return errors.New(errors.ErrCodeInvalidInput, "writing to stdout needs exactly one format")
	}
	records, err := lf.input.records(input)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(lf.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spinner := newSpinner(ctx, os.Stderr, fmt.Sprintf("Rendering %s...", plural(len(records), "tag")))
	spinner.Start()

	result, err := runner.Execute(ctx, records, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return err
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	return writeArtifacts(artifactWriteParams{
		artifacts: result.Artifacts,
		formats:   opts.Formats,
		input:     input,
		output:    output,
		tags:      result.Stats.Tags,
		rows:      result.Stats.Rows,
		cached:    result.CacheInfo.LayoutHit && result.CacheInfo.RenderHit,
		onWritten: func() { printRejected(result.Layout) },
	})
}

// stdoutPath as an output path writes to standard output.
const stdoutPath = "-"

type artifactWriteParams struct {
	artifacts  map[string][]byte
	formats    []string
	input      string
	output     string
	tags, rows int
	cached     bool
	onWritten  func()
}

// writeArtifacts writes one file per format and prints a summary. A single
// format goes to output verbatim; several formats share output as a base
// path.
func writeArtifacts(p artifactWriteParams) error {
	if p.output == stdoutPath {
		_, err := stdout.Write(p.artifacts[p.formats[0]])
		return err
	}

	paths := make([]string, 0, len(p.formats))
	for _, format := range p.formats {
		path := artifactPath(p.output, p.input, format, len(p.formats))
		if filepath.Clean(path) == filepath.Clean(p.input) {
			return errors.New(errors.ErrCodeInvalidPath, "refusing to overwrite the input %s; pass -o", p.input)
		}
		if err := writeFile(path, p.artifacts[format]); err != nil {
			return err
		}
		paths = append(paths, path)
	}

	if p.onWritten != nil {
		p.onWritten()
	}
	printSuccess("Rendered %s", plural(len(paths), "file"))
	for _, path := range paths {
		printFile(path)
	}
	printStats(p.tags, p.rows, p.cached)
	return nil
}

func artifactPath(output, input, format string, n int) string {
	if n == 1 && output != "" {
		return output
	}
	return outputBase(output, input) + "." + format
}

func writeFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
