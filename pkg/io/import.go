package io

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/tagcloud/pkg/cloud"
	"github.com/matzehuels/tagcloud/pkg/errors"
)

// Format names an input format.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatHTML Format = "html"
)

var formatByExt = map[string]Format{
	".json": FormatJSON,
	".yaml": FormatYAML,
	".yml":  FormatYAML,
	".html": FormatHTML,
	".htm":  FormatHTML,
}

// DetectFormat returns the format implied by a file extension.
func DetectFormat(path string) (Format, error) {
	if f, ok := formatByExt[strings.ToLower(filepath.Ext(path))]; ok {
		return f, nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "cannot tell the format of %q (want .json, .yaml or .html)", path)
}

// ParseFormat validates a format name given on the command line.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatJSON, FormatYAML, FormatHTML:
		return f, nil
	case "yml":
		return FormatYAML, nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "unknown input format %q", s)
}

// Read decodes records in the given format.
func Read(r io.Reader, f Format) ([]cloud.Record, error) {
	switch f {
	case FormatJSON:
		return ReadJSON(r)
	case FormatYAML:
		return ReadYAML(r)
	case FormatHTML:
		return ReadHTML(r)
	}
	return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown input format %q", f)
}

// Import reads records from a file, choosing the format by extension.
func Import(path string) ([]cloud.Record, error) {
	f, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}
	return ImportFormat(path, f)
}

// ImportFormat reads records from a file in an explicit format.
func ImportFormat(path string, format Format) ([]cloud.Record, error) {
	if err := errors.ValidatePath(path); err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	recs, err := Read(f, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return recs, nil
}

type recordSet struct {
	Tags []cloud.Record `json:"tags" yaml:"tags"`
}

// ReadJSON decodes records from a JSON array or an object with a "tags"
// array. Numbers are kept as json.Number so no precision is lost before
// validation.
func ReadJSON(r io.Reader) ([]cloud.Record, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "empty JSON input")
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	if data[0] == '[' {
		var recs []cloud.Record
		if err := dec.Decode(&recs); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode JSON records")
		}
		return recs, nil
	}

	var set recordSet
	if err := dec.Decode(&set); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode JSON records")
	}
	return set.Tags, nil
}

// ReadYAML decodes records from a YAML sequence or a mapping with a "tags"
// sequence.
func ReadYAML(r io.Reader) ([]cloud.Record, error) {
	var doc yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if err == io.EOF {
			return nil, errors.New(errors.ErrCodeInvalidFormat, "empty YAML input")
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse YAML")
	}

	root := &doc
	if root.Kind == yaml.DocumentNode && len(root.Content) > 0 {
		root = root.Content[0]
	}

	switch root.Kind {
	case yaml.SequenceNode:
		var recs []cloud.Record
		if err := root.Decode(&recs); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode YAML records")
		}
		return recs, nil
	case yaml.MappingNode:
		var set recordSet
		if err := root.Decode(&set); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode YAML records")
		}
		return set.Tags, nil
	}
	return nil, errors.New(errors.ErrCodeInvalidFormat, "YAML input must be a list of tags or a mapping with a tags list")
}
