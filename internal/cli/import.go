package cli

import (
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/tagcloud/pkg/errors"
	tcio "github.com/matzehuels/tagcloud/pkg/io"
	"github.com/matzehuels/tagcloud/pkg/render/cloud/layout"
)

// importCommand creates the import command for converting records to JSON.
func (c *CLI) importCommand() *cobra.Command {
	var (
		in     inputFlags
		output string
	)

	cmd := &cobra.Command{
		Use:   "import [file]",
		Short: "Convert a YAML file or HTML list to JSON records",
		Long: `Convert a YAML file or HTML list to JSON records.

HTML input is read from the first <ul>: each <li> becomes a record, with the
weight taken from a data-weight attribute on the <li> or its first child and
the link from the first <a>. Use --base to merge styling records by position.

Weights are written as numbers. Records whose weight does not parse are
kept as they are and reported.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runImport(args[0], &in, output)
		},
	}

	in.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.json, - for stdout)")
	return cmd
}

func (c *CLI) runImport(input string, in *inputFlags, output string) error {
	recs, err := in.records(input)
	if err != nil {
		return err
	}

	if output == stdoutPath {
		return tcio.WriteJSON(recs, stdout)
	}
	if output == "" {
		if input == stdinPath {
			output = appName + ".json"
		} else {
			output = strings.TrimSuffix(input, filepath.Ext(input)) + ".json"
		}
	}
	if filepath.Clean(output) == filepath.Clean(input) {
		return errors.New(errors.ErrCodeInvalidPath, "refusing to overwrite the input %s; pass -o", input)
	}
	if err := tcio.ExportJSON(recs, output); err != nil {
		return err
	}

	printSuccess("Imported %s", plural(len(recs), "record"))
	printFile(output)
	if _, err := layout.ScanWeights(recs); err != nil {
		printWarning("%d records have an invalid weight", errors.Count(err, errors.ErrCodeInvalidWeight))
	}
	printNewline()
	printNextStep("Render", appName+" render "+output)
	return nil
}
