package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/tagcloud/pkg/config"
	"github.com/matzehuels/tagcloud/pkg/errors"
	"github.com/matzehuels/tagcloud/pkg/pipeline"
	"github.com/matzehuels/tagcloud/pkg/render/cloud/sink"
)

// visualizeCommand creates the visualize command for rendering a saved layout.
func (c *CLI) visualizeCommand() *cobra.Command {
	var (
		rf         renderFlags
		configPath string
		noCache    bool
		refresh    bool
	)

	cmd := &cobra.Command{
		Use:   "visualize [layout.json]",
		Short: "Render a cloud from a saved layout",
		Long: `Render a cloud from a saved layout.

The visualize command takes a layout file produced by 'layout' and renders
it. The layout already holds every size and row, so this step only applies
presentation: the theme from --config and the output flags.

Use 'render' to go directly from records to output.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var opts pipeline.Options
			if configPath != "" {
				file, err := config.Load(configPath)
				if err != nil {
					return err
				}
				opts = pipeline.FromConfig(file)
			}
			if err := rf.apply(&opts); err != nil {
				return err
			}
			opts.Refresh = refresh
			return c.runVisualize(cmd.Context(), args[0], opts, rf.output, noCache)
		},
	}

	rf.register(cmd)
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "TOML settings file for the theme")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "re-render even when cached")
	return cmd
}

func (c *CLI) runVisualize(ctx context.Context, input string, opts pipeline.Options, output string, noCache bool) error {
	if output == stdoutPath && len(opts.Formats) != 1 {
		return errors.New(errors.ErrCodeInvalidInput, "writing to stdout needs exactly one format")
	}
	if err := errors.ValidatePath(input); err != nil {
		return err
	}
	data, err := os.ReadFile(input)
	if err != nil {
		if os.IsNotExist(err) {
			return errors.Wrap(errors.ErrCodeFileNotFound, err, "load layout %s", input)
		}
		return fmt.Errorf("load layout %s: %w", input, err)
	}
	lay, err := sink.ParseJSON(data)
	if err != nil {
		return fmt.Errorf("load layout %s: %w", input, err)
	}

	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	prog := newProgress(c.Logger)
	spinner := newSpinner(ctx, os.Stderr, "Rendering...")
	spinner.Start()

	artifacts, cacheHit, err := runner.RenderWithCacheInfo(ctx, lay, opts)
	if err != nil {
		spinner.StopWithError("Visualization failed")
		return fmt.Errorf("visualize: %w", err)
	}
	spinner.Stop()
	prog.done(fmt.Sprintf("Rendered %s", plural(len(artifacts), "format")))

	return writeArtifacts(artifactWriteParams{
		artifacts: artifacts,
		formats:   opts.Formats,
		input:     input,
		output:    output,
		tags:      lay.Count,
		rows:      len(lay.Rows),
		cached:    cacheHit,
	})
}
