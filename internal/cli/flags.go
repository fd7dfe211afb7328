package cli

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/matzehuels/tagcloud/pkg/cloud"
	"github.com/matzehuels/tagcloud/pkg/config"
	"github.com/matzehuels/tagcloud/pkg/errors"
	tcio "github.com/matzehuels/tagcloud/pkg/io"
	"github.com/matzehuels/tagcloud/pkg/pipeline"
	"github.com/matzehuels/tagcloud/pkg/render/cloud/layout"
)

// stdinPath reads records from standard input.
const stdinPath = "-"

// inputFlags selects how a records file is read.
type inputFlags struct {
	format string // explicit input format; empty means by extension
	base   string // records merged by position with an HTML list
}

func (f *inputFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.format, "input-format", "", "input format: json, yaml, html (default: by file extension, json for stdin)")
	cmd.Flags().StringVar(&f.base, "base", "", "JSON or YAML records merged by position with an HTML list")
}

// records reads the input file, or stdin when path is "-".
func (f *inputFlags) records(path string) ([]cloud.Record, error) {
	format, err := f.inputFormat(path)
	if err != nil {
		return nil, err
	}

	var recs []cloud.Record
	if path == stdinPath {
		recs, err = tcio.Read(os.Stdin, format)
	} else {
		recs, err = tcio.ImportFormat(path, format)
	}
	if err != nil {
		return nil, err
	}

	if f.base == "" {
		return recs, nil
	}
	if format != tcio.FormatHTML {
		return nil, errors.New(errors.ErrCodeInvalidInput, "--base only applies to HTML input")
	}
	base, err := tcio.Import(f.base)
	if err != nil {
		return nil, err
	}
	return tcio.MergeRecords(base, recs), nil
}

func (f *inputFlags) inputFormat(path string) (tcio.Format, error) {
	switch {
	case f.format != "":
		return tcio.ParseFormat(f.format)
	case path == stdinPath:
		return tcio.FormatJSON, nil
	}
	return tcio.DetectFormat(path)
}

// layoutFlags holds the flags shared by every command that lays out records.
// Flags override settings from --config; unset flags keep them.
type layoutFlags struct {
	input      inputFlags
	configPath string
	fontPath   string
	noCache    bool
	opts       pipeline.Options
}

func (f *layoutFlags) register(cmd *cobra.Command) {
	f.input.register(cmd)

	fl := cmd.Flags()
	fl.StringVarP(&f.configPath, "config", "c", "", "TOML settings file (see 'tagcloud config init')")
	fl.BoolVar(&f.noCache, "no-cache", false, "disable caching")
	fl.BoolVar(&f.opts.Refresh, "refresh", false, "recompute even when cached")

	fl.Float64Var(&f.opts.Width, "width", 0, "container width (default 500)")
	fl.Float64Var(&f.opts.MinFontSize, "min-font", 0, "font size of the lightest tag (default 10)")
	fl.Float64Var(&f.opts.MaxFontSize, "max-font", 0, "font size of the heaviest tag (default 40)")
	fl.Float64Var(&f.opts.FallbackFontSize, "fallback-font", 0, "font size when all weights are equal (default: max font)")
	fl.Float64Var(&f.opts.Padding, "padding", 0, "padding added to each row's width budget (default 15)")
	fl.Float64Var(&f.opts.Margin, "margin", 0, "space reserved per tag in a row (default 25)")
	fl.Float64Var(&f.opts.Growth, "growth", 0, "how much wider the middle row may grow (default 1.5)")
	fl.StringVar(&f.opts.Measurer, "measurer", "", "text measurer: "+joinComma(config.Measurers)+" (default estimate)")
	fl.StringVar(&f.fontPath, "font", "", "TrueType or OpenType font for the opentype measurer")
	fl.BoolVar(&f.opts.SkipInvalid, "skip-invalid", false, "drop invalid records instead of failing")
}

// options builds pipeline options from the config file and the flags that
// were set on cmd.
func (f *layoutFlags) options(cmd *cobra.Command) (pipeline.Options, error) {
	var opts pipeline.Options
	fontPath := f.fontPath

	if f.configPath != "" {
		file, err := config.Load(f.configPath)
		if err != nil {
			return opts, err
		}
		opts = pipeline.FromConfig(file)
		if fontPath == "" && file.Layout.Font != "" {
			fontPath = file.Layout.Font
			if !filepath.IsAbs(fontPath) {
				fontPath = filepath.Join(filepath.Dir(f.configPath), fontPath)
			}
		}
	}

	changed := cmd.Flags().Changed
	for name, pair := range map[string][2]*float64{
		"width":         {&opts.Width, &f.opts.Width},
		"min-font":      {&opts.MinFontSize, &f.opts.MinFontSize},
		"max-font":      {&opts.MaxFontSize, &f.opts.MaxFontSize},
		"fallback-font": {&opts.FallbackFontSize, &f.opts.FallbackFontSize},
		"padding":       {&opts.Padding, &f.opts.Padding},
		"margin":        {&opts.Margin, &f.opts.Margin},
		"growth":        {&opts.Growth, &f.opts.Growth},
	} {
		if changed(name) {
			*pair[0] = *pair[1]
		}
	}
	if changed("measurer") {
		opts.Measurer = f.opts.Measurer
	}
	opts.SkipInvalid = f.opts.SkipInvalid
	opts.Refresh = f.opts.Refresh

	if fontPath != "" {
		data, err := readFont(fontPath)
		if err != nil {
			return opts, err
		}
		opts.FontData = data
		if opts.Measurer == "" || (changed("font") && !changed("measurer")) {
			opts.Measurer = config.MeasurerOpenType
		}
	}
	return opts, nil
}

func readFont(path string) ([]byte, error) {
	if err := errors.ValidatePath(path); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "font %s", path)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeMeasure, err, "read font %s", path)
	}
	return data, nil
}

// printRejected warns about every record left out by --skip-invalid.
func printRejected(l *layout.Layout) {
	for _, r := range l.Rejected {
		printWarning("skipped record %d (%q): %s", r.Index, r.Tag, r.Reason)
	}
}
