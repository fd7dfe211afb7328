package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/charmbracelet/x/term"
	"github.com/spf13/cobra"

	"github.com/matzehuels/tagcloud/pkg/config"
	"github.com/matzehuels/tagcloud/pkg/pipeline"
	"github.com/matzehuels/tagcloud/pkg/render/cloud/layout"
	"github.com/matzehuels/tagcloud/pkg/render/cloud/measure"
	"github.com/matzehuels/tagcloud/pkg/render/cloud/styles"
)

// Packing constants for a cloud measured in terminal cells.
var previewPack = layout.PackOptions{Padding: 2, Margin: 1, Growth: 1.2}

// previewCommand creates the preview command for printing a cloud in the terminal.
func (c *CLI) previewCommand() *cobra.Command {
	var (
		lf        layoutFlags
		termWidth int
	)

	cmd := &cobra.Command{
		Use:   "preview [records]",
		Short: "Print the cloud in the terminal",
		Long: `Print the cloud in the terminal.

Tags are measured in terminal cells and laid out at the terminal width, so
the preview shows the same row structure a browser would get at that width.
Heavier tags are printed in bold.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := lf.options(cmd)
			if err != nil {
				return err
			}
			if termWidth <= 0 {
				termWidth = terminalWidth()
			}
			previewOptions(&opts, termWidth)
			return c.runPreview(cmd.Context(), args[0], &lf, opts)
		},
	}

	lf.register(cmd)
	cmd.Flags().IntVar(&termWidth, "term-width", 0, "preview width in cells (default: terminal width)")
	return cmd
}

// previewOptions switches opts to cell measurement at the given width.
// Settings that were given explicitly are kept.
func previewOptions(opts *pipeline.Options, width int) {
	opts.Measurer = config.MeasurerCells
	opts.FontData = nil
	if opts.Width == 0 {
		opts.Width = float64(width)
	}
	if opts.Padding == 0 {
		opts.Padding = previewPack.Padding
	}
	if opts.Margin == 0 {
		opts.Margin = previewPack.Margin
	}
	if opts.Growth == 0 {
		opts.Growth = previewPack.Growth
	}

	th := styles.DefaultTheme()
	if opts.Theme != nil {
		th = *opts.Theme
	}
	th.Tag.Box = measure.Box{PaddingX: 1}
	opts.Theme = &th

	opts.Formats = []string{pipeline.FormatText}
	opts.TermWidth = width
}

func (c *CLI) runPreview(ctx context.Context, input string, lf *layoutFlags, opts pipeline.Options) error {
	records, err := lf.input.records(input)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(lf.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	result, err := runner.Execute(ctx, records, opts)
	if err != nil {
		return err
	}
	printRejected(result.Layout)
	_, err = stdout.Write(result.Artifacts[pipeline.FormatText])
	return err
}

// terminalWidth returns the width of stdout, then $COLUMNS, then 80.
func terminalWidth() int {
	if w, _, err := term.GetSize(os.Stdout.Fd()); err == nil && w > 0 {
		return w
	}
	if n, err := strconv.Atoi(os.Getenv("COLUMNS")); err == nil && n > 0 {
		return n
	}
	return defaultTermWidth
}
