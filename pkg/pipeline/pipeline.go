// Package pipeline runs the records → layout → render flow shared by the CLI
// and the HTTP server.
//
// # Stages
//
//  1. Layout: validate and scale the records, measure every tag and pack
//     the tags into rows ([layout.Build])
//  2. Render: turn the layout into one or more output formats
//
// Both stages are cached through a [cache.Cache]. The layout is keyed by a
// hash of the records plus every option that changes geometry; artifacts
// are keyed by a hash of the layout plus the render options.
//
// # Usage
//
//	runner := pipeline.NewRunner(c, nil, logger)
//	result, err := runner.Execute(ctx, records, pipeline.Options{
//	    Width:   600,
//	    Formats: []string{pipeline.FormatHTML, pipeline.FormatSVG},
//	})
//	if err != nil {
//	    return err
//	}
//	html := result.Artifacts[pipeline.FormatHTML]
//
// [layout.Build]: github.com/matzehuels/tagcloud/pkg/render/cloud/layout.Build
package pipeline

import (
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/tagcloud/pkg/cache"
	"github.com/matzehuels/tagcloud/pkg/cloud"
	"github.com/matzehuels/tagcloud/pkg/config"
	"github.com/matzehuels/tagcloud/pkg/errors"
	"github.com/matzehuels/tagcloud/pkg/render/cloud/layout"
	"github.com/matzehuels/tagcloud/pkg/render/cloud/styles"
)

// DefaultMeasurer is used when Options.Measurer is empty.
const DefaultMeasurer = config.MeasurerEstimate

// Output formats.
const (
	FormatHTML = "html"
	FormatSVG  = "svg"
	FormatJSON = "json"
	FormatDOT  = "dot"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatText = "txt"
)

// Formats lists every output format in a stable order.
var Formats = []string{FormatHTML, FormatSVG, FormatJSON, FormatDOT, FormatPNG, FormatPDF, FormatText}

var contentTypes = map[string]string{
	FormatHTML: "text/html; charset=utf-8",
	FormatSVG:  "image/svg+xml",
	FormatJSON: "application/json",
	FormatDOT:  "text/vnd.graphviz; charset=utf-8",
	FormatPNG:  "image/png",
	FormatPDF:  "application/pdf",
	FormatText: "text/plain; charset=utf-8",
}

// ContentType returns the MIME type of a format.
func ContentType(format string) string {
	if ct, ok := contentTypes[format]; ok {
		return ct
	}
	return "application/octet-stream"
}

// Options configures a pipeline run. It is the body of API requests, so
// every field that a client may set has a JSON name.
type Options struct {
	// Layout options. Zero values take the defaults of cloud.DefaultConfig
	// and layout.DefaultPackOptions.
	Width            float64 `json:"width,omitempty"`
	MinFontSize      float64 `json:"min_font_size,omitempty"`
	MaxFontSize      float64 `json:"max_font_size,omitempty"`
	FallbackFontSize float64 `json:"fallback_font_size,omitempty"`
	Padding          float64 `json:"padding,omitempty"`
	Margin           float64 `json:"margin,omitempty"`
	Growth           float64 `json:"growth,omitempty"`
	Measurer         string  `json:"measurer,omitempty"`
	SkipInvalid      bool    `json:"skip_invalid,omitempty"`

	// Render options.
	Formats     []string      `json:"formats,omitempty"`
	Theme       *styles.Theme `json:"theme,omitempty"`
	Standalone  bool          `json:"standalone,omitempty"`
	Title       string        `json:"title,omitempty"`
	Transparent bool          `json:"transparent,omitempty"`
	TermWidth   int           `json:"term_width,omitempty"`

	// Refresh bypasses cached results.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options.
	Logger *log.Logger `json:"-"`
	// FontData is a TrueType or OpenType font for the opentype measurer.
	FontData []byte `json:"-"`

	validated bool
}

// Result is the output of [Runner.Execute].
type Result struct {
	// RecordsHash identifies the input records.
	RecordsHash string
	Layout      *layout.Layout
	// Artifacts holds rendered outputs keyed by format.
	Artifacts map[string][]byte
	Stats     Stats
	CacheInfo CacheInfo
}

// Stats describes a pipeline run.
type Stats struct {
	Records    int
	Tags       int
	Rows       int
	Rejected   int
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo reports which stages were served from the cache.
type CacheInfo struct {
	LayoutHit bool
	RenderHit bool
}

// FromConfig returns options carrying every setting of a config file.
func FromConfig(f config.File) Options {
	th := f.Theme()
	return Options{
		Width:            f.Container.Width,
		MinFontSize:      f.Tag.MinFontSize,
		MaxFontSize:      f.Tag.MaxFontSize,
		FallbackFontSize: f.Tag.FallbackFontSize,
		Padding:          f.Layout.Padding,
		Margin:           f.Layout.Margin,
		Growth:           f.Layout.Growth,
		Measurer:         f.Layout.Measurer,
		Theme:            &th,
	}
}

// ValidateFormat checks that a format is known.
func ValidateFormat(format string) error {
	if !slices.Contains(Formats, format) {
		return errors.New(errors.ErrCodeUnsupported, "invalid format: %q (must be one of: %s)", format, strings.Join(Formats, ", "))
	}
	return nil
}

// ValidateFormats checks every format.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateAndSetDefaults validates the options and applies every default.
// Calling it again has no further effect.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// SetLayoutDefaults fills zero layout fields.
func (o *Options) SetLayoutDefaults() {
	def := cloud.DefaultConfig()
	if o.Width == 0 {
		o.Width = def.ContainerWidth
	}
	if o.MinFontSize == 0 {
		o.MinFontSize = def.MinFontSize
	}
	if o.MaxFontSize == 0 {
		o.MaxFontSize = max(def.MaxFontSize, o.MinFontSize)
	}
	pack := o.PackOptions()
	o.Padding, o.Margin, o.Growth = pack.Padding, pack.Margin, pack.Growth
	if o.Measurer == "" {
		o.Measurer = DefaultMeasurer
	}
	if o.Theme == nil {
		th := styles.DefaultTheme()
		o.Theme = &th
	}
	if o.Logger == nil {
		o.Logger = log.New(io.Discard)
	}
}

// ValidateForLayout sets layout defaults and validates them.
func (o *Options) ValidateForLayout() error {
	o.SetLayoutDefaults()
	if err := o.CloudConfig().Validate(); err != nil {
		return err
	}
	if o.Padding < 0 || o.Margin < 0 || o.Growth < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "padding, margin and growth cannot be negative")
	}
	if !slices.Contains(config.Measurers, o.Measurer) {
		return errors.New(errors.ErrCodeInvalidConfig, "unknown measurer %q (want one of %s)",
			o.Measurer, strings.Join(config.Measurers, ", "))
	}
	if err := o.Theme.Validate(); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "theme")
	}
	return nil
}

// SetRenderDefaults fills zero render fields.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatHTML}
	}
	if o.Theme == nil {
		th := styles.DefaultTheme()
		o.Theme = &th
	}
	if o.Title == "" {
		o.Title = "Tag cloud"
	}
	if o.Logger == nil {
		o.Logger = log.New(io.Discard)
	}
}

// ValidateForRender sets all defaults and validates the options.
func (o *Options) ValidateForRender() error {
	if err := o.ValidateForLayout(); err != nil {
		return err
	}
	o.SetRenderDefaults()
	if o.TermWidth < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "term_width cannot be negative")
	}
	return ValidateFormats(o.Formats)
}

// CloudConfig returns the layout configuration.
func (o *Options) CloudConfig() cloud.Config {
	return cloud.Config{
		ContainerWidth:   o.Width,
		MinFontSize:      o.MinFontSize,
		MaxFontSize:      o.MaxFontSize,
		FallbackFontSize: o.FallbackFontSize,
	}
}

// PackOptions returns the packing constants with defaults applied.
func (o *Options) PackOptions() layout.PackOptions {
	return layout.PackOptions{Padding: o.Padding, Margin: o.Margin, Growth: o.Growth}.WithDefaults()
}

// theme returns the configured theme or the default one.
func (o *Options) theme() styles.Theme {
	if o.Theme == nil {
		return styles.DefaultTheme()
	}
	return *o.Theme
}

// LayoutKeyOpts returns cache key options for the layout stage.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	k := cache.LayoutKeyOpts{
		Width:            o.Width,
		MinFontSize:      o.MinFontSize,
		MaxFontSize:      o.MaxFontSize,
		FallbackFontSize: o.FallbackFontSize,
		Padding:          o.Padding,
		Margin:           o.Margin,
		Growth:           o.Growth,
		Measurer:         o.Measurer,
		Theme:            themeHash(o.theme()),
		SkipInvalid:      o.SkipInvalid,
	}
	if len(o.FontData) > 0 {
		k.Font = cache.Hash(o.FontData)
	}
	return k
}

// ArtifactKeyOpts returns cache key options for one rendered format.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format:      format,
		Theme:       themeHash(o.theme()),
		Title:       o.Title,
		Standalone:  o.Standalone,
		Transparent: o.Transparent,
		TermWidth:   o.TermWidth,
	}
}

func themeHash(th styles.Theme) string {
	h, err := cache.HashValue(th)
	if err != nil {
		panic(fmt.Sprintf("pipeline: hash theme: %v", err))
	}
	return h
}
