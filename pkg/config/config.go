// Package config loads tag cloud settings from TOML files.
//
// A file has four parts, all optional:
//
//	background_colors = ["#ff9655", "#92a8cd"]
//
//	[container]
//	width = 500
//	background_color = "#f0f0f0"
//	color = "#666666"
//	padding = "10px 5px"
//	font_family = "Helvetica, Arial, sans-serif"
//
//	[tag]
//	min_font_size = 10
//	max_font_size = 40
//	color = "auto"
//	text_shadow = true
//	padding_x = 5
//	padding_y = 2
//
//	[tag.css]
//	border-radius = "3px"
//
//	[layout]
//	padding = 15
//	margin = 25
//	growth = 1.5
//	measurer = "opentype"
//	font = "fonts/Inter.ttf"
//
// Missing keys keep their defaults. Unknown keys are rejected so typos do
// not go unnoticed.
package config

import (
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/tagcloud/pkg/cloud"
	"github.com/matzehuels/tagcloud/pkg/errors"
	"github.com/matzehuels/tagcloud/pkg/render/cloud/layout"
	"github.com/matzehuels/tagcloud/pkg/render/cloud/measure"
	"github.com/matzehuels/tagcloud/pkg/render/cloud/styles"
)

// Measurer names.
const (
	MeasurerEstimate = "estimate"
	MeasurerOpenType = "opentype"
	MeasurerCells    = "cells"
)

// Measurers lists the accepted measurer names.
var Measurers = []string{MeasurerEstimate, MeasurerOpenType, MeasurerCells}

// File is the content of a config file.
type File struct {
	Palette   []string  `toml:"background_colors"`
	Container Container `toml:"container"`
	Tag       Tag       `toml:"tag"`
	Layout    Layout    `toml:"layout"`
}

// Container configures the block holding the cloud.
type Container struct {
	Width      float64 `toml:"width"`
	Background string  `toml:"background_color"`
	Color      string  `toml:"color"`
	Padding    string  `toml:"padding"`
	FontFamily string  `toml:"font_family"`
}

// Tag configures tag sizing and styling.
type Tag struct {
	MinFontSize      float64           `toml:"min_font_size"`
	MaxFontSize      float64           `toml:"max_font_size"`
	FallbackFontSize float64           `toml:"fallback_font_size,omitempty"`
	Color            string            `toml:"color"`
	Background       string            `toml:"background_color,omitempty"`
	TextShadow       bool              `toml:"text_shadow"`
	PaddingX         float64           `toml:"padding_x"`
	PaddingY         float64           `toml:"padding_y"`
	Border           float64           `toml:"border"`
	CSS              map[string]string `toml:"css,omitempty"`
}

// Layout configures row packing and measurement.
type Layout struct {
	Padding  float64 `toml:"padding"`
	Margin   float64 `toml:"margin"`
	Growth   float64 `toml:"growth"`
	Measurer string  `toml:"measurer"`
	// Font is a TrueType or OpenType file for the opentype measurer. Empty
	// means Go Regular.
	Font string `toml:"font,omitempty"`
}

// Default returns the built-in settings.
func Default() File {
	th := styles.DefaultTheme()
	cfg := cloud.DefaultConfig()
	pack := layout.DefaultPackOptions()
	return File{
		Palette: th.Palette,
		Container: Container{
			Width:      cfg.ContainerWidth,
			Background: th.Container.Background,
			Color:      th.Container.Color,
			Padding:    th.Container.Padding,
			FontFamily: th.Container.FontFamily,
		},
		Tag: Tag{
			MinFontSize: cfg.MinFontSize,
			MaxFontSize: cfg.MaxFontSize,
			Color:       th.Tag.Color,
			PaddingX:    th.Tag.Box.PaddingX,
			PaddingY:    th.Tag.Box.PaddingY,
			Border:      th.Tag.Box.Border,
		},
		Layout: Layout{
			Padding:  pack.Padding,
			Margin:   pack.Margin,
			Growth:   pack.Growth,
			Measurer: MeasurerEstimate,
		},
	}
}

// Load reads a config file over the defaults.
func Load(path string) (File, error) {
	if err := errors.ValidatePath(path); err != nil {
		return File{}, err
	}
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return File{}, errors.New(errors.ErrCodeFileNotFound, "config file not found: %s", path)
	}
	if err != nil {
		return File{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "open %s", path)
	}
	defer f.Close()

	cfg, err := Decode(f)
	if err != nil {
		return File{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Decode reads TOML from r over the defaults and validates the result.
func Decode(r io.Reader) (File, error) {
	cfg := Default()
	md, err := toml.NewDecoder(r).Decode(&cfg)
	if err != nil {
		return File{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse TOML")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return File{}, errors.New(errors.ErrCodeInvalidConfig, "unknown keys: %s", strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return File{}, err
	}
	return cfg, nil
}

// Encode writes f as TOML.
func (f File) Encode(w io.Writer) error {
	enc := toml.NewEncoder(w)
	enc.Indent = ""
	return enc.Encode(f)
}

// Validate checks every section.
func (f File) Validate() error {
	if err := f.CloudConfig().Validate(); err != nil {
		return err
	}
	if err := f.Theme().Validate(); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "theme")
	}
	for name, v := range map[string]float64{
		"tag padding_x":  f.Tag.PaddingX,
		"tag padding_y":  f.Tag.PaddingY,
		"tag border":     f.Tag.Border,
		"layout padding": f.Layout.Padding,
		"layout margin":  f.Layout.Margin,
		"layout growth":  f.Layout.Growth,
	} {
		if v < 0 {
			return errors.New(errors.ErrCodeInvalidConfig, "%s cannot be negative, got %v", name, v)
		}
	}
	if f.Layout.Measurer != "" && !slices.Contains(Measurers, f.Layout.Measurer) {
		return errors.New(errors.ErrCodeInvalidConfig, "unknown measurer %q (want one of %s)",
			f.Layout.Measurer, strings.Join(Measurers, ", "))
	}
	if f.Layout.Font != "" {
		if err := errors.ValidatePath(f.Layout.Font); err != nil {
			return err
		}
	}
	return nil
}

// CloudConfig returns the layout configuration.
func (f File) CloudConfig() cloud.Config {
	return cloud.Config{
		ContainerWidth:   f.Container.Width,
		MinFontSize:      f.Tag.MinFontSize,
		MaxFontSize:      f.Tag.MaxFontSize,
		FallbackFontSize: f.Tag.FallbackFontSize,
	}
}

// Theme returns the presentation settings.
func (f File) Theme() styles.Theme {
	return styles.Theme{
		Container: styles.Container{
			Background: f.Container.Background,
			Color:      f.Container.Color,
			Padding:    f.Container.Padding,
			FontFamily: f.Container.FontFamily,
		},
		Tag: styles.TagStyle{
			Color:      f.Tag.Color,
			Background: f.Tag.Background,
			TextShadow: f.Tag.TextShadow,
			Box:        measure.Box{PaddingX: f.Tag.PaddingX, PaddingY: f.Tag.PaddingY, Border: f.Tag.Border},
			CSS:        f.Tag.CSS,
		},
		Palette: slices.Clone(f.Palette),
	}
}

// PackOptions returns the row packing constants.
func (f File) PackOptions() layout.PackOptions {
	return layout.PackOptions{
		Padding: f.Layout.Padding,
		Margin:  f.Layout.Margin,
		Growth:  f.Layout.Growth,
	}.WithDefaults()
}
