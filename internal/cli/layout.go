package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/tagcloud/pkg/pipeline"
	"github.com/matzehuels/tagcloud/pkg/render/cloud/layout"
	"github.com/matzehuels/tagcloud/pkg/render/cloud/sink"
)

// layoutCommand creates the layout command for computing a cloud layout.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		lf     layoutFlags
		output string
	)

	cmd := &cobra.Command{
		Use:   "layout [records]",
		Short: "Compute a cloud layout and save it as JSON",
		Long: `Compute a cloud layout and save it as JSON.

The layout holds every tag with its font size, measured box and row. It can
be rendered later with 'visualize', so styling experiments do not need a new
layout pass.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := lf.options(cmd)
			if err != nil {
				return err
			}
			return c.runLayout(cmd.Context(), args[0], &lf, opts, output)
		},
	}

	lf.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.layout.json, - for stdout)")
	return cmd
}

func (c *CLI) runLayout(ctx context.Context, input string, lf *layoutFlags, opts pipeline.Options, output string) error {
	records, err := lf.input.records(input)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(lf.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spinner := newSpinner(ctx, os.Stderr, "Computing layout...")
	spinner.Start()

	lay, cacheHit, err := runner.GenerateLayoutWithCacheInfo(ctx, records, opts)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return fmt.Errorf("compute layout: %w", err)
	}
	spinner.Stop()

	data, err := sink.RenderJSON(lay)
	if err != nil {
		return err
	}
	if output == stdoutPath {
		_, err := stdout.Write(data)
		return err
	}

	outputPath := output
	if outputPath == "" {
		outputPath = outputBase("", input) + ".layout.json"
	}
	if err := writeFile(outputPath, data); err != nil {
		return err
	}

	printRejected(lay)
	printSuccess("Layout complete")
	printFile(outputPath)
	printStats(lay.Count, len(lay.Rows), cacheHit)
	printNewline()
	printLayoutSummary(lay)
	printNewline()
	printNextStep("Render", appName+" visualize "+outputPath)
	return nil
}

// printLayoutSummary lists the weight range, the font sizes and every row in
// render order.
func printLayoutSummary(l *layout.Layout) {
	if l.Count == 0 {
		printInfo("No tags")
		return
	}
	fmt.Fprintln(stdout, StyleTitle.Render("Layout "+l.ID))
	printKeyValue("weights", fmt.Sprintf("%g..%g", l.MinWeight, l.MaxWeight))
	if l.Degenerate {
		printKeyValue("font size", fmt.Sprintf("%g (all weights equal)", l.Config.Fallback()))
	} else {
		printKeyValue("font sizes", fmt.Sprintf("%g..%g", l.Config.MinFontSize, l.Config.MaxFontSize))
	}
	for i, row := range l.Rows {
		labels := make([]string, len(row.Tags))
		for j, t := range row.Tags {
			labels[j] = t.Label
		}
		printKeyValue(fmt.Sprintf("row %d", i+1), fmt.Sprintf("%-6s %s", row.VAlign, strings.Join(labels, " ")))
	}
}
